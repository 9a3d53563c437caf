package components

import "image/color"

// FloatingText 浮动文字（"+1"、"COMBO x3!"、"LEVEL 2" 等）
//
// 以固定速度上升，Life 帧后消失；进入最后 FadeTicks 帧时线性淡出
type FloatingText struct {
	Text    string
	X, Y    float64
	Size    float64
	Color   color.RGBA
	Opacity float64

	Life      int     // 剩余帧数
	FadeTicks int     // 淡出段长度
	VelocityY float64 // 负值向上
}

// NewFloatingText 创建浮动文字
func NewFloatingText(text string, x, y, size float64, clr color.RGBA, life, fadeTicks int, riseSpeed float64) *FloatingText {
	return &FloatingText{
		Text:      text,
		X:         x,
		Y:         y,
		Size:      size,
		Color:     clr,
		Opacity:   1,
		Life:      life,
		FadeTicks: fadeTicks,
		VelocityY: -riseSpeed,
	}
}

// Update 推进一帧
func (ft *FloatingText) Update() {
	ft.Y += ft.VelocityY
	ft.Life--

	if ft.FadeTicks > 0 && ft.Life < ft.FadeTicks {
		ft.Opacity = float64(ft.Life) / float64(ft.FadeTicks)
	}
	if ft.Opacity < 0 {
		ft.Opacity = 0
	}
}

// Expired 实现 Effect
func (ft *FloatingText) Expired() bool {
	return ft.Life <= 0 || ft.Opacity <= 0
}

// RenderData 实现 Renderable
func (ft *FloatingText) RenderData() RenderData {
	return RenderData{
		Kind:    RenderText,
		X:       ft.X,
		Y:       ft.Y,
		Color:   ft.Color,
		Opacity: ft.Opacity,
		Text:    ft.Text,
		Size:    ft.Size,
	}
}
