package systems

import (
	"fmt"
	"image/color"
	"math"

	"github.com/decker502/bubblehunter/pkg/components"
	"github.com/decker502/bubblehunter/pkg/game"
)

// EffectsSystem 纯视觉特效：粒子爆发、浮动文字、屏幕震动、关卡横幅
// 由事件驱动创建，Update 逐帧推进并回收
type EffectsSystem struct {
	rng game.RandomSource
}

// NewEffectsSystem 创建特效系统
func NewEffectsSystem(rng game.RandomSource) *EffectsSystem {
	return &EffectsSystem{rng: rng}
}

// EventTypes 实现 game.Handler
func (s *EffectsSystem) EventTypes() []game.EventType {
	return []game.EventType{
		game.EventPopped,
		game.EventNewRecord,
		game.EventLevelUp,
		game.EventGameCompleted,
	}
}

// HandleEvent 实现 game.Handler
func (s *EffectsSystem) HandleEvent(gs *game.GameState, ev game.Event) {
	cfg := gs.Config
	ft := cfg.FloatingText

	switch ev.Type {
	case game.EventPopped:
		s.burst(gs, ev)

		if gs.ComboCount >= cfg.Combo.Threshold {
			s.addText(gs, fmt.Sprintf("COMBO x%d!", gs.ComboCount), ev.X, ev.Y, ft.ComboSize, components.ColorGold)
		} else {
			s.addText(gs, "+1", ev.X, ev.Y, ft.Size, components.ColorWhite)
		}
		gs.ScreenShake = math.Max(gs.ScreenShake, cfg.Shake.Pop)

	case game.EventNewRecord:
		s.addText(gs, "NEW RECORD!", cfg.Canvas.Width/2, cfg.Canvas.Height/3, ft.BigSize, components.ColorPink)
		gs.ScreenShake = math.Max(gs.ScreenShake, cfg.Shake.Record)

	case game.EventLevelUp:
		label := LevelLabel(ev.Level)
		gs.Banner = components.NewBanner(label, "", cfg.Banner.Duration, false)
		s.addText(gs, label, cfg.Canvas.Width/2, cfg.Canvas.Height/2+ft.BigSize, ft.BigSize, components.ColorCyan)

	case game.EventGameCompleted:
		gs.Banner = components.NewBanner(
			"ALL CLEAR!",
			fmt.Sprintf("Score %d / High %d", gs.EliminatedCount, gs.HighScore),
			cfg.Banner.Duration, true,
		)
	}
}

// burst 在消除位置生成一圈随机方向的粒子
func (s *EffectsSystem) burst(gs *game.GameState, ev game.Event) {
	pc := gs.Config.Particles
	clr := components.Lighten(ev.Color, 0.15)

	for i := 0; i < pc.Count; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		speed := game.RandRange(s.rng, pc.MinSpeed, pc.MaxSpeed)
		sin, cos := math.Sincos(angle)

		gs.Particles = append(gs.Particles, &components.Particle{
			X:         ev.X,
			Y:         ev.Y,
			VelocityX: cos * speed,
			VelocityY: sin * speed,
			Radius:    game.RandRange(s.rng, pc.MinRadius, pc.MaxRadius),
			Color:     clr,
			Opacity:   1,
			Friction:  pc.Friction,
			Gravity:   pc.Gravity,
			FadeStep:  pc.FadeStep,
		})
	}
}

func (s *EffectsSystem) addText(gs *game.GameState, text string, x, y, size float64, clr color.RGBA) {
	ft := gs.Config.FloatingText
	gs.Texts = append(gs.Texts, components.NewFloatingText(text, x, y, size, clr, ft.Life, ft.FadeTicks, ft.RiseSpeed))
}

// Update 推进全部特效
//
// 参数:
//   - dt: 帧时间（秒），仅横幅补间使用；粒子/文字/震动按帧推进
func (s *EffectsSystem) Update(gs *game.GameState, dt float64) {
	gs.Particles = updateEffects(gs.Particles)
	gs.Texts = updateEffects(gs.Texts)

	shake := gs.Config.Shake
	gs.ScreenShake *= shake.Decay
	if gs.ScreenShake < shake.Epsilon {
		gs.ScreenShake = 0
	}

	if gs.Banner != nil {
		gs.Banner.Update(dt)
		if gs.Banner.Done {
			gs.Banner = nil
		}
	}
}

// updateEffects 更新并交换删除过期特效（不保持顺序）
func updateEffects[T components.Effect](items []T) []T {
	var zero T
	for i := 0; i < len(items); {
		items[i].Update()
		if !items[i].Expired() {
			i++
			continue
		}
		last := len(items) - 1
		items[i] = items[last]
		items[last] = zero
		items = items[:last]
	}
	return items
}
