package terminal

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	synth "github.com/decker502/bubblehunter/internal/audio"
	"github.com/decker502/bubblehunter/pkg/game"
)

// Speaker 终端前端的音效输出
// 直接把合成的 beep.Streamer 交给 beep/speaker，不经过 PCM 缓存
type Speaker struct {
	synth    *synth.Synth
	settings *game.SettingsManager
	ready    bool
}

// NewSpeaker 初始化声卡输出
// 初始化失败不影响游戏，此后 Play 全部返回 false
func NewSpeaker(sm *game.SettingsManager) *Speaker {
	s := &Speaker{
		synth:    synth.NewSynth(synth.SampleRate),
		settings: sm,
	}

	rate := beep.SampleRate(synth.SampleRate)
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		log.Printf("[Speaker] Audio initialization failed: %v (running silent)", err)
		return s
	}
	s.ready = true
	return s
}

// EventTypes 实现 game.Handler
func (s *Speaker) EventTypes() []game.EventType {
	return []game.EventType{game.EventPopped, game.EventCombo, game.EventLevelUp, game.EventNewRecord}
}

// HandleEvent 实现 game.Handler
func (s *Speaker) HandleEvent(gs *game.GameState, ev game.Event) {
	switch ev.Type {
	case game.EventPopped:
		s.Play(synth.SoundPop, gs.ComboCount)
	case game.EventCombo:
		s.Play(synth.SoundCombo, ev.Count)
	case game.EventLevelUp:
		s.Play(synth.SoundLevelUp, 0)
	case game.EventNewRecord:
		s.Play(synth.SoundRecord, 0)
	}
}

// Play 播放音效
//
// 返回：
//   - bool: 是否实际播放（未初始化或已静音时返回 false）
func (s *Speaker) Play(kind synth.Sound, step int) bool {
	if !s.ready {
		return false
	}
	vol := 1.0
	if s.settings != nil {
		settings := s.settings.GetSettings()
		if !settings.SoundEnabled {
			return false
		}
		vol = settings.SoundVolume
	}

	// Gain 为相对增益：输出 = 输入 * (1 + Gain)
	speaker.Play(&effects.Gain{Streamer: s.synth.Create(kind, step), Gain: vol - 1})
	return true
}

// Close 关闭声卡输出
func (s *Speaker) Close() {
	if s.ready {
		speaker.Close()
		s.ready = false
	}
}
