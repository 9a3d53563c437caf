package systems

import (
	"math"

	"github.com/decker502/bubblehunter/pkg/components"
	"github.com/decker502/bubblehunter/pkg/config"
	"github.com/decker502/bubblehunter/pkg/game"
)

// PhysicsSystem 气泡物理系统
//
// 每帧顺序：
//  1. 两两碰撞检测与解算（仅存活气泡）
//  2. 侧墙与地面反弹
//  3. 积分位移
//  4. 速度上限截断
//  5. 顶部飞出判定
//
// 淡出中的气泡不参与碰撞和移动
type PhysicsSystem struct{}

// NewPhysicsSystem 创建物理系统
func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

// Update 执行一帧物理
// 返回本帧碰撞解算的气泡对数量
func (ps *PhysicsSystem) Update(gs *game.GameState) int {
	cfg := gs.Config
	collisions := 0

	// O(n²) 碰撞扫描，写回在扫描内同步完成
	for i := 0; i < len(gs.Circles); i++ {
		a := gs.Circles[i]
		if !a.IsAlive() {
			continue
		}
		for j := i + 1; j < len(gs.Circles); j++ {
			b := gs.Circles[j]
			if !b.IsAlive() {
				continue
			}
			if ResolvePair(a, b, &cfg.Physics) {
				collisions++
			}
		}
	}

	for _, c := range gs.Circles {
		if !c.IsAlive() {
			continue
		}

		bounceWalls(c, cfg)

		c.X += c.VelocityX
		c.Y += c.VelocityY

		ClampSpeed(c, cfg.Physics.MaxSpeed)

		if c.Y+c.Radius < 0 {
			c.MarkedForDeletion = true
			gs.EscapedCount++
			gs.Publish(game.Event{Type: game.EventEscaped, X: c.X, Y: c.Y, Radius: c.Radius})
		}
	}

	return collisions
}

// ResolvePair 检测并解算一对气泡的碰撞
//
// 参数:
//   - a, b: 两个存活气泡
//   - p: 物理配置（修正比例、弹性系数、零距离位移）
//
// 返回:
//   - bool: 两者重叠时返回 true（无论是否进行了速度解算）
func ResolvePair(a, b *components.Circle, p *config.PhysicsConfig) bool {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Hypot(dx, dy)
	minDist := a.Radius + b.Radius
	if dist >= minDist {
		return false
	}

	// 圆心重合时法线未定义，只做固定位移
	if dist == 0 {
		b.X += p.ZeroDistanceNudge
		return true
	}

	// 软修正：每帧只分离重叠量的一部分
	nx := dx / dist
	ny := dy / dist
	correction := (minDist - dist) * p.CorrectionFactor / 2
	a.X -= nx * correction
	a.Y -= ny * correction
	b.X += nx * correction
	b.Y += ny * correction

	// 已经在分离的气泡对不做速度交换
	if (a.VelocityX-b.VelocityX)*dx+(a.VelocityY-b.VelocityY)*dy < 0 {
		return true
	}

	angle := -math.Atan2(dy, dx)
	m1 := a.Mass()
	m2 := b.Mass()

	u1x, u1y := rotate(a.VelocityX, a.VelocityY, angle)
	u2x, u2y := rotate(b.VelocityX, b.VelocityY, angle)

	// 法线方向一维弹性碰撞，切向分量不变
	v1x := (u1x*(m1-m2) + u2x*2*m2) / (m1 + m2)
	v2x := (u2x*(m2-m1) + u1x*2*m1) / (m1 + m2)

	f1x, f1y := rotate(v1x, u1y, -angle)
	f2x, f2y := rotate(v2x, u2y, -angle)

	a.VelocityX = f1x * p.Elasticity
	a.VelocityY = f1y * p.Elasticity
	b.VelocityX = f2x * p.Elasticity
	b.VelocityY = f2y * p.Elasticity
	return true
}

// ClampSpeed 速度超过上限时等比缩放到上限
func ClampSpeed(c *components.Circle, maxSpeed float64) {
	speed := c.Speed()
	if speed <= maxSpeed || speed == 0 {
		return
	}
	scale := maxSpeed / speed
	c.VelocityX *= scale
	c.VelocityY *= scale
}

// bounceWalls 侧墙与地面
// 只在朝墙运动时反向，避免被夹在墙内来回翻转
func bounceWalls(c *components.Circle, cfg *config.GameConfig) {
	width := cfg.Canvas.Width
	height := cfg.Canvas.Height

	if c.X-c.Radius <= 0 {
		c.X = c.Radius
		if c.VelocityX < 0 {
			c.VelocityX = -c.VelocityX
		}
	} else if c.X+c.Radius >= width {
		c.X = width - c.Radius
		if c.VelocityX > 0 {
			c.VelocityX = -c.VelocityX
		}
	}

	// 上升中的气泡穿过地面区域（生成点在画布下方）
	if c.Y+c.Radius >= height && c.VelocityY > 0 {
		c.VelocityY = -c.VelocityY * cfg.Physics.FloorRestitution
		c.Y = height - c.Radius
	}
}

func rotate(x, y, angle float64) (float64, float64) {
	sin, cos := math.Sincos(angle)
	return x*cos - y*sin, x*sin + y*cos
}
