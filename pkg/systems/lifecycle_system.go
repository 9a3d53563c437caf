package systems

import (
	"github.com/decker502/bubblehunter/pkg/components"
	"github.com/decker502/bubblehunter/pkg/game"
)

// LifecycleSystem 管理气泡生命周期：Alive → Fading → Removed
type LifecycleSystem struct{}

// NewLifecycleSystem 创建生命周期系统
func NewLifecycleSystem() *LifecycleSystem {
	return &LifecycleSystem{}
}

// Update 推进淡出动画并移除标记删除的气泡
// 返回本帧完成消除的数量
func (s *LifecycleSystem) Update(gs *game.GameState) int {
	pop := gs.Config.Pop
	popped := 0

	for _, c := range gs.Circles {
		if !c.IsFading || c.MarkedForDeletion {
			continue
		}

		c.Opacity -= pop.FadeStep
		c.Radius += pop.GrowStep
		if c.Opacity > 0 {
			continue
		}

		c.Opacity = 0
		c.MarkedForDeletion = true
		gs.EliminatedCount++
		popped++
		gs.Publish(game.Event{
			Type:   game.EventPopped,
			X:      c.X,
			Y:      c.Y,
			Radius: c.Radius,
			Color:  c.Color,
			Count:  gs.EliminatedCount,
		})
	}

	gs.Circles = removeMarked(gs.Circles)
	return popped
}

// removeMarked 原地过滤，保持绘制顺序（命中测试依赖此顺序）
func removeMarked(circles []*components.Circle) []*components.Circle {
	live := circles[:0]
	for _, c := range circles {
		if !c.MarkedForDeletion {
			live = append(live, c)
		}
	}
	for i := len(live); i < len(circles); i++ {
		circles[i] = nil
	}
	return live
}
