package components

import "image/color"

// RenderKind 渲染数据的实体类别
type RenderKind int

const (
	// RenderCircle 气泡（填充圆）
	RenderCircle RenderKind = iota
	// RenderParticle 粒子（小填充圆，无描边）
	RenderParticle
	// RenderText 浮动文字
	RenderText
)

// RenderData 渲染协作方消费的只读快照
// 渲染器（ebiten / 终端）只依赖这个结构，不直接访问实体内部状态
type RenderData struct {
	Kind    RenderKind
	X, Y    float64
	Radius  float64 // Circle / Particle 使用
	Color   color.RGBA
	Opacity float64
	Text    string  // RenderText 使用
	Size    float64 // RenderText 字号

	// Poppable 为 true 表示该气泡仍可被点击（未进入淡出状态）
	Poppable bool
}

// Renderable 可被渲染的实体
type Renderable interface {
	RenderData() RenderData
}

// Effect 纯视觉特效实体（粒子、浮动文字）
// 每帧 Update 一次，Expired 返回 true 后由特效系统移除
type Effect interface {
	Renderable
	Update()
	Expired() bool
}
