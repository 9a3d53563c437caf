package systems

import (
	"log"

	"github.com/decker502/bubblehunter/pkg/components"
	"github.com/decker502/bubblehunter/pkg/game"
)

// SpawnSystem 生成调度系统
//
// 每帧按固定概率尝试在画布下方生成一个气泡，
// 与任何存活气泡重叠时放弃本次尝试（下一帧重试，不计入本关配额）
type SpawnSystem struct {
	rng game.RandomSource
}

// NewSpawnSystem 创建生成调度系统
//
// 参数:
//   - rng: 随机数来源（生成判定、半径、位置、横向抖动、色相）
func NewSpawnSystem(rng game.RandomSource) *SpawnSystem {
	return &SpawnSystem{rng: rng}
}

// Update 执行一次生成尝试
// 返回新生成的气泡，未生成时返回 nil
func (s *SpawnSystem) Update(gs *game.GameState) *components.Circle {
	cfg := gs.Config.Spawn
	if gs.IsCompleted() || gs.SpawnedInLevel >= cfg.GroupSize {
		return nil
	}
	if s.rng.Float64() >= cfg.SpawnChance {
		return nil
	}

	width := gs.Config.Canvas.Width
	radius := game.RandRange(s.rng, cfg.MinRadius, cfg.MaxRadius)
	x := s.rng.Float64()*(width-radius*2) + radius
	y := gs.Config.Canvas.Height + radius + s.rng.Float64()*cfg.SpawnDepth

	if s.blocked(gs, x, y, radius) {
		return nil
	}

	vx := (s.rng.Float64() - 0.5) * 2 * cfg.LateralJitter
	vy := -(cfg.BaseSpeed + float64(gs.CurrentLevel)*cfg.LevelSpeedFactor)
	clr := components.HueColor(s.rng.Float64() * 360)

	return Place(gs, components.NewCircle(x, y, radius, vx, vy, clr))
}

// Place 将气泡加入存活集合并计入本关配额
// 不做概率和重叠判定，供生成流程和测试使用
func Place(gs *game.GameState, c *components.Circle) *components.Circle {
	gs.Circles = append(gs.Circles, c)
	gs.SpawnedInLevel++
	return c
}

// blocked 候选位置是否与存活气泡重叠
func (s *SpawnSystem) blocked(gs *game.GameState, x, y, radius float64) bool {
	candidate := components.Circle{X: x, Y: y, Radius: radius}
	for _, c := range gs.Circles {
		if !c.IsAlive() {
			continue
		}
		if candidate.Overlaps(c) {
			log.Printf("[SpawnSystem] Spawn at (%.1f, %.1f) blocked, retrying next tick", x, y)
			return true
		}
	}
	return false
}
