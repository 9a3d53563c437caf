package sound

import (
	"testing"

	synth "github.com/decker502/bubblehunter/internal/audio"
	"github.com/decker502/bubblehunter/pkg/config"
	"github.com/decker502/bubblehunter/pkg/game"
)

// TestAudioManagerNoContext 无音频上下文时静默
func TestAudioManagerNoContext(t *testing.T) {
	am := NewAudioManager(nil, nil)
	if am.Play(synth.SoundPop, 1) {
		t.Error("Play() without context should return false")
	}

	gs := game.NewGameState(config.DefaultGameConfig(), 0)
	for _, et := range am.EventTypes() {
		am.HandleEvent(gs, game.Event{Type: et, Count: 2})
	}
}

// TestAudioManagerPCMCache 相同种类与阶梯复用 PCM，超出上限的阶梯合并
func TestAudioManagerPCMCache(t *testing.T) {
	am := NewAudioManager(nil, nil)

	a := am.pcmFor(synth.SoundCombo, 2)
	b := am.pcmFor(synth.SoundCombo, 2)
	if len(a) == 0 || &a[0] != &b[0] {
		t.Error("PCM should be cached")
	}

	am.pcmFor(synth.SoundCombo, 40)
	am.pcmFor(synth.SoundCombo, 99)
	if len(am.pcm) != 2 {
		t.Errorf("cache entries: got %d, want 2", len(am.pcm))
	}
}

// TestAudioManagerSettings 音量与开关来自 SettingsManager
func TestAudioManagerSettings(t *testing.T) {
	sm := game.NewSettingsManager(nil)
	am := NewAudioManager(nil, sm)

	am.SetSoundVolume(0.2)
	if am.volume() != 0.2 {
		t.Errorf("volume(): got %v, want 0.2", am.volume())
	}
	if am.ToggleSound() {
		t.Error("ToggleSound() should disable sound")
	}
	if sm.GetSettings().SoundEnabled {
		t.Error("settings should reflect toggle")
	}
}
