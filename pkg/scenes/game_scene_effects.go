package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/bubblehunter/pkg/components"
	"github.com/decker502/bubblehunter/pkg/game"
)

// faceHeight basicfont.Face7x13 的行高，字号按此缩放
const faceHeight = 13.0

// withOpacity 转为非预乘颜色并应用透明度
func withOpacity(c color.RGBA, opacity float64) color.NRGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A) * opacity)}
}

// drawEntities 按 Renderables 顺序绘制：气泡、粒子、文字
func (s *GameScene) drawEntities(screen *ebiten.Image, gs *game.GameState, ox, oy float64) {
	hovered := gs.Hovered()

	for _, r := range gs.Renderables() {
		d := r.RenderData()
		x := float32(d.X + ox)
		y := float32(d.Y + oy)

		switch d.Kind {
		case components.RenderCircle:
			if hovered != nil && r == components.Renderable(hovered) {
				vector.DrawFilledCircle(screen, x, y, float32(d.Radius), withOpacity(s.hoverColor, d.Opacity), true)
				vector.StrokeCircle(screen, x, y, float32(d.Radius), 2, hoverStroke, true)
				continue
			}
			vector.DrawFilledCircle(screen, x, y, float32(d.Radius), withOpacity(d.Color, d.Opacity), true)

		case components.RenderParticle:
			vector.DrawFilledCircle(screen, x, y, float32(d.Radius), withOpacity(d.Color, d.Opacity), true)

		case components.RenderText:
			s.drawText(screen, d.Text, d.X+ox, d.Y+oy, d.Size, withOpacity(d.Color, d.Opacity), text.AlignCenter)
		}
	}
}

// drawText 按字号缩放绘制文字
func (s *GameScene) drawText(screen *ebiten.Image, str string, x, y, size float64, clr color.Color, align text.Align) {
	scale := size / faceHeight

	op := &text.DrawOptions{}
	op.PrimaryAlign = align
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, s.face, op)
}
