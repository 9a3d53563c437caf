// Package audio 合成游戏音效
//
// 音效全部由振荡器实时合成，不依赖音频资源文件：
// voice 生成带包络的单个音符，beep 负责混音和拼接，Render 把结果渲染为 16 位立体声 PCM，
// 供 Ebitengine 的 audio.Player 播放
package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
)

// SampleRate 合成采样率，与 Ebitengine 音频上下文一致
const SampleRate = 44100

// WaveType 振荡器波形
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

// Sound 音效种类
type Sound int

const (
	SoundPop Sound = iota
	SoundCombo
	SoundLevelUp
	SoundRecord
)

// String 返回音效名称
func (s Sound) String() string {
	switch s {
	case SoundPop:
		return "pop"
	case SoundCombo:
		return "combo"
	case SoundLevelUp:
		return "levelup"
	case SoundRecord:
		return "record"
	default:
		return "unknown"
	}
}

// voice 一个音符：波形乘以增益和线性起音/释音包络，时长结束即停止
// 音符之间的拼接与叠加交给 beep.Seq / beep.Mix
type voice struct {
	wave  WaveType
	gain  float64
	inc   float64 // 每个采样的相位增量（周期的比例）
	phase float64

	pos     int
	total   int
	attack  int
	release int
}

// newVoice 创建音符
//
// 参数:
//   - freq: 频率（Hz），噪声波形忽略
//   - d: 时长
//   - attack, release: 包络起音和释音时长，释音在时长末尾
//   - gain: 线性增益，0 为静音
func newVoice(freq float64, d, attack, release time.Duration, wave WaveType, gain float64, rate beep.SampleRate) *voice {
	return &voice{
		wave:    wave,
		gain:    gain,
		inc:     freq / float64(rate),
		total:   rate.N(d),
		attack:  rate.N(attack),
		release: rate.N(release),
	}
}

// tone 常用包络：起音占 1/20，释音占后一半
func tone(freq float64, d time.Duration, wave WaveType, gain float64, rate beep.SampleRate) *voice {
	return newVoice(freq, d, d/20, d/2, wave, gain, rate)
}

// level 当前采样的包络值 [0, 1]
func (v *voice) level() float64 {
	lvl := 1.0
	if v.attack > 0 && v.pos < v.attack {
		lvl = float64(v.pos) / float64(v.attack)
	}
	if v.release > 0 && v.pos >= v.total-v.release {
		lvl = math.Min(lvl, float64(v.total-v.pos)/float64(v.release))
	}
	return lvl
}

// waveform 当前相位的波形值 [-1, 1]
func (v *voice) waveform() float64 {
	switch v.wave {
	case WaveSquare:
		if v.phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 4*math.Abs(v.phase-0.5) - 1
	case WaveNoise:
		return rand.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * v.phase)
	}
}

// Stream 实现 beep.Streamer
func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	for n = range samples {
		if v.pos >= v.total {
			return n, n > 0
		}
		val := v.waveform() * v.level() * v.gain
		samples[n][0], samples[n][1] = val, val

		_, v.phase = math.Modf(v.phase + v.inc)
		v.pos++
	}
	return len(samples), true
}

// Err 实现 beep.Streamer
func (v *voice) Err() error { return nil }

// Synth 音效合成器
type Synth struct {
	rate beep.SampleRate
}

// NewSynth 创建合成器
func NewSynth(sampleRate int) *Synth {
	return &Synth{rate: beep.SampleRate(sampleRate)}
}

// Create 生成音效流
//
// 参数:
//   - kind: 音效种类
//   - step: 音高阶梯（连击数或关卡数），用于让连续事件的音高递增
func (s *Synth) Create(kind Sound, step int) beep.Streamer {
	if step < 0 {
		step = 0
	}
	// 最多升高一个八度
	pitch := math.Pow(2, float64(min(step, 12))/12)

	switch kind {
	case SoundPop:
		d := 90 * time.Millisecond
		body := tone(520*pitch, d, WaveSine, 0.8, s.rate)
		click := tone(0, 25*time.Millisecond, WaveNoise, 0.25, s.rate)
		return beep.Take(s.rate.N(d), beep.Mix(body, click))

	case SoundCombo:
		return beep.Seq(
			tone(660*pitch, 60*time.Millisecond, WaveSquare, 0.35, s.rate),
			tone(880*pitch, 90*time.Millisecond, WaveSquare, 0.35, s.rate),
		)

	case SoundLevelUp:
		// 大三和弦琶音
		notes := []float64{523.25, 659.25, 783.99, 1046.5}
		parts := make([]beep.Streamer, 0, len(notes))
		for _, f := range notes {
			parts = append(parts, tone(f, 110*time.Millisecond, WaveTriangle, 0.7, s.rate))
		}
		return beep.Seq(parts...)

	case SoundRecord:
		// 基音加八度泛音，泛音衰减更快
		d := 600 * time.Millisecond
		fund := newVoice(880, d, 5*time.Millisecond, 550*time.Millisecond, WaveSine, 0.7, s.rate)
		over := newVoice(1760, d, 5*time.Millisecond, 300*time.Millisecond, WaveSine, 0.3, s.rate)
		return beep.Take(s.rate.N(d), beep.Mix(fund, over))
	}

	return beep.Silence(0)
}

// Render 生成音效并渲染为 PCM
func (s *Synth) Render(kind Sound, step int) *PCMStream {
	return RenderPCM(s.Create(kind, step), int64(s.rate))
}
