package components

import (
	"image/color"
	"math"
)

// Circle 气泡实体
//
// 状态机：Alive -> Fading -> Removed
//   - Alive: 参与碰撞和移动
//   - Fading: 被点击后进入，跳过碰撞和移动，仅做淡出动画
//   - Removed: MarkedForDeletion 为 true，帧末从存活集合移除
//
// 质量恒等于半径（见 Mass），碰撞计算依赖这一点
type Circle struct {
	X, Y float64

	// 速度（像素/帧）
	VelocityX float64
	VelocityY float64

	Radius  float64
	Color   color.RGBA
	Opacity float64 // 0-1

	IsFading          bool
	MarkedForDeletion bool
}

// NewCircle 创建一个存活状态的气泡
func NewCircle(x, y, radius, vx, vy float64, clr color.RGBA) *Circle {
	return &Circle{
		X:         x,
		Y:         y,
		VelocityX: vx,
		VelocityY: vy,
		Radius:    radius,
		Color:     clr,
		Opacity:   1,
	}
}

// Mass 返回质量（等于半径）
func (c *Circle) Mass() float64 {
	return c.Radius
}

// Speed 返回速度大小
func (c *Circle) Speed() float64 {
	return math.Hypot(c.VelocityX, c.VelocityY)
}

// IsAlive 气泡是否仍参与物理模拟
func (c *Circle) IsAlive() bool {
	return !c.IsFading && !c.MarkedForDeletion
}

// Contains 判断点是否落在气泡内部（严格小于半径）
func (c *Circle) Contains(x, y float64) bool {
	return math.Hypot(c.X-x, c.Y-y) < c.Radius
}

// Overlaps 判断与另一个气泡是否重叠
func (c *Circle) Overlaps(other *Circle) bool {
	return math.Hypot(c.X-other.X, c.Y-other.Y) < c.Radius+other.Radius
}

// StartFadeOut 开始消除动画
// 已经在淡出中的气泡不受影响，返回 false
func (c *Circle) StartFadeOut() bool {
	if c.IsFading || c.MarkedForDeletion {
		return false
	}
	c.IsFading = true
	c.VelocityX = 0
	c.VelocityY = 0
	return true
}

// RenderData 实现 Renderable
func (c *Circle) RenderData() RenderData {
	return RenderData{
		Kind:     RenderCircle,
		X:        c.X,
		Y:        c.Y,
		Radius:   c.Radius,
		Color:    c.Color,
		Opacity:  c.Opacity,
		Poppable: c.IsAlive(),
	}
}
