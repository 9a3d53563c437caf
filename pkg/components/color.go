package components

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// 常用文字颜色
var (
	ColorWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ColorGold  = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	ColorCyan  = color.RGBA{R: 51, G: 255, B: 245, A: 255}
	ColorPink  = color.RGBA{R: 255, G: 51, B: 161, A: 255}
)

// HueColor 按色相生成气泡颜色（饱和度 70%，亮度 50%）
// hue 范围 [0, 360)
func HueColor(hue float64) color.RGBA {
	r, g, b := colorful.Hsl(hue, 0.7, 0.5).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Lighten 提亮颜色，用于粒子
func Lighten(c color.RGBA, amount float64) color.RGBA {
	base := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	h, s, l := base.Hsl()
	l += amount
	if l > 1 {
		l = 1
	}
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: c.A}
}

// ParseHexColor 解析 "#rrggbb" 颜色
func ParseHexColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
