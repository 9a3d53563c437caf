// Package sound 把引擎事件转成合成音效，通过 Ebitengine 播放
package sound

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	synth "github.com/decker502/bubblehunter/internal/audio"
	"github.com/decker502/bubblehunter/pkg/game"
)

// maxPitchStep 音高阶梯上限，超过后复用同一段 PCM
const maxPitchStep = 12

// soundKey 缓存键：音效种类 + 音高阶梯
type soundKey struct {
	kind synth.Sound
	step int
}

// AudioManager 音频管理器
//
// 职责：
//   - 作为 game.Handler 订阅 Popped / Combo / LevelUp / NewRecord 事件
//   - 首次播放时合成 PCM 并缓存
//   - 从 SettingsManager 读取音量和开关
//
// 播放是"发出即忘"：引擎不关心播放结果
type AudioManager struct {
	ctx             *audio.Context
	settingsManager *game.SettingsManager
	synth           *synth.Synth
	pcm             map[soundKey][]byte
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - ctx: Ebitengine 音频上下文，采样率需为 synth.SampleRate；为 nil 时静音
//   - sm: SettingsManager 实例（可为 nil，使用默认音量）
func NewAudioManager(ctx *audio.Context, sm *game.SettingsManager) *AudioManager {
	return &AudioManager{
		ctx:             ctx,
		settingsManager: sm,
		synth:           synth.NewSynth(synth.SampleRate),
		pcm:             make(map[soundKey][]byte),
	}
}

// EventTypes 实现 game.Handler
func (am *AudioManager) EventTypes() []game.EventType {
	return []game.EventType{game.EventPopped, game.EventCombo, game.EventLevelUp, game.EventNewRecord}
}

// HandleEvent 实现 game.Handler
func (am *AudioManager) HandleEvent(gs *game.GameState, ev game.Event) {
	switch ev.Type {
	case game.EventPopped:
		am.Play(synth.SoundPop, gs.ComboCount)
	case game.EventCombo:
		am.Play(synth.SoundCombo, ev.Count)
	case game.EventLevelUp:
		am.Play(synth.SoundLevelUp, 0)
	case game.EventNewRecord:
		am.Play(synth.SoundRecord, 0)
	}
}

// Play 播放音效
//
// 返回：
//   - bool: 是否实际播放（静音、无音频上下文时返回 false）
func (am *AudioManager) Play(kind synth.Sound, step int) bool {
	if am.ctx == nil {
		return false
	}
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	player := am.ctx.NewPlayerFromBytes(am.pcmFor(kind, step))
	player.SetVolume(am.volume())
	player.Play()
	return true
}

// pcmFor 取缓存的 PCM，缺失时合成
func (am *AudioManager) pcmFor(kind synth.Sound, step int) []byte {
	key := soundKey{kind: kind, step: min(max(step, 0), maxPitchStep)}
	if data, ok := am.pcm[key]; ok {
		return data
	}

	data := am.synth.Render(key.kind, key.step).Bytes()
	am.pcm[key] = data
	log.Printf("[AudioManager] Synthesized %s/%d (%d bytes)", kind, key.step, len(data))
	return data
}

// SetSoundVolume 设置音效音量
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
}

// ToggleSound 切换静音并持久化
func (am *AudioManager) ToggleSound() bool {
	if am.settingsManager == nil {
		return true
	}
	enabled := am.settingsManager.ToggleSound()
	if err := am.settingsManager.Save(); err != nil {
		log.Printf("[AudioManager] Warning: %v", err)
	}
	return enabled
}

// volume 当前音量
func (am *AudioManager) volume() float64 {
	if am.settingsManager == nil {
		return game.DefaultSettings().SoundVolume
	}
	return am.settingsManager.GetSettings().SoundVolume
}
