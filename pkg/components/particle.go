package components

import "image/color"

// Particle 爆炸粒子
// 纯装饰，不参与碰撞；透明度降到 0 后移除
type Particle struct {
	X, Y      float64
	VelocityX float64
	VelocityY float64
	Radius    float64
	Color     color.RGBA
	Opacity   float64

	Friction float64 // 每帧速度乘数
	Gravity  float64 // 每帧 Y 方向加速度
	FadeStep float64 // 每帧透明度衰减
}

// Update 推进一帧：摩擦 -> 重力 -> 位移 -> 淡出
func (p *Particle) Update() {
	p.VelocityX *= p.Friction
	p.VelocityY *= p.Friction
	p.VelocityY += p.Gravity

	p.X += p.VelocityX
	p.Y += p.VelocityY

	p.Opacity -= p.FadeStep
	if p.Opacity < 0 {
		p.Opacity = 0
	}
}

// Expired 实现 Effect
func (p *Particle) Expired() bool {
	return p.Opacity <= 0
}

// RenderData 实现 Renderable
func (p *Particle) RenderData() RenderData {
	return RenderData{
		Kind:    RenderParticle,
		X:       p.X,
		Y:       p.Y,
		Radius:  p.Radius,
		Color:   p.Color,
		Opacity: p.Opacity,
	}
}
