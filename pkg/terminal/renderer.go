// Package terminal 气泡猎人的终端前端
//
// 画布按比例映射到字符网格：第 0 行是 HUD，其余行是游戏区域。
// 渲染只读取 GameState 和 RenderData，与 Ebitengine 前端共享同一个引擎
package terminal

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/bubblehunter/pkg/components"
	"github.com/decker502/bubblehunter/pkg/game"
)

// hudRows 顶部保留给 HUD 的行数
const hudRows = 1

// 字符
const (
	runeCircle   = '█'
	runeFading   = '▒'
	runeHover    = '▓'
	runeParticle = '·'
)

var (
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleBar    = tcell.StyleDefault.Foreground(tcell.Color(51))
	styleBanner = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleHint   = tcell.StyleDefault.Foreground(tcell.ColorLightGray)
)

// Renderer 把 GameState 绘制到 tcell 屏幕
type Renderer struct {
	screen     tcell.Screen
	hoverColor color.RGBA
}

// NewRenderer 创建终端渲染器
func NewRenderer(screen tcell.Screen, hoverColor color.RGBA) *Renderer {
	return &Renderer{screen: screen, hoverColor: hoverColor}
}

// viewport 游戏区域的列数和行数
func (r *Renderer) viewport() (cols, rows int) {
	w, h := r.screen.Size()
	rows = h - hudRows
	if rows < 1 {
		rows = 1
	}
	if w < 1 {
		w = 1
	}
	return w, rows
}

// CellToCanvas 把字符坐标换算为画布坐标（取格子中心）
//
// 返回：
//   - ok: 该格子是否位于游戏区域内（HUD 行返回 false）
func (r *Renderer) CellToCanvas(col, row int, width, height float64) (x, y float64, ok bool) {
	cols, rows := r.viewport()
	row -= hudRows
	if col < 0 || row < 0 || col >= cols || row >= rows {
		return 0, 0, false
	}
	x = (float64(col) + 0.5) * width / float64(cols)
	y = (float64(row) + 0.5) * height / float64(rows)
	return x, y, true
}

// CanvasToCell 把画布坐标换算为字符坐标
func (r *Renderer) CanvasToCell(x, y, width, height float64) (col, row int) {
	cols, rows := r.viewport()
	col = int(math.Floor(x * float64(cols) / width))
	row = int(math.Floor(y*float64(rows)/height)) + hudRows
	return col, row
}

// Draw 绘制一帧：气泡 → 粒子 → 文字 → HUD → 横幅
func (r *Renderer) Draw(gs *game.GameState) {
	r.screen.Clear()

	hovered := gs.Hovered()
	for _, c := range gs.Circles {
		r.drawCircle(gs, c, c == hovered)
	}
	for _, p := range gs.Particles {
		d := p.RenderData()
		col, row := r.CanvasToCell(d.X, d.Y, gs.Config.Canvas.Width, gs.Config.Canvas.Height)
		r.setCell(col, row, runeParticle, styleFor(d.Color, d.Opacity))
	}
	for _, t := range gs.Texts {
		d := t.RenderData()
		col, row := r.CanvasToCell(d.X, d.Y, gs.Config.Canvas.Width, gs.Config.Canvas.Height)
		r.drawString(col-len(d.Text)/2, row, d.Text, styleFor(d.Color, d.Opacity).Bold(true))
	}

	r.drawHUD(gs)
	r.drawBanner(gs)
	r.screen.Show()
}

// drawCircle 填充所有中心落在气泡内的格子；比格子还小的气泡至少占一格
func (r *Renderer) drawCircle(gs *game.GameState, c *components.Circle, hovered bool) {
	w, h := gs.Config.Canvas.Width, gs.Config.Canvas.Height
	d := c.RenderData()

	ch := runeCircle
	style := styleFor(d.Color, d.Opacity)
	switch {
	case !d.Poppable:
		ch = runeFading
	case hovered:
		ch = runeHover
		style = styleFor(r.hoverColor, 1)
	}

	minCol, minRow := r.CanvasToCell(d.X-d.Radius, d.Y-d.Radius, w, h)
	maxCol, maxRow := r.CanvasToCell(d.X+d.Radius, d.Y+d.Radius, w, h)
	filled := false
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			x, y, ok := r.CellToCanvas(col, row, w, h)
			if ok && c.Contains(x, y) {
				r.screen.SetContent(col, row, ch, nil, style)
				filled = true
			}
		}
	}
	if !filled {
		col, row := r.CanvasToCell(d.X, d.Y, w, h)
		r.setCell(col, row, ch, style)
	}
}

// hudLine 单行 HUD 文字
func hudLine(gs *game.GameState) string {
	line := fmt.Sprintf("LEVEL %d/%d  SCORE %d  %d%%  HIGH %d",
		gs.CurrentLevel, gs.TotalLevels, gs.Score(), int(math.Round(gs.CompletionPercent())), gs.HighScore)
	if gs.ComboCount >= 2 {
		line += fmt.Sprintf("  COMBO x%d", gs.ComboCount)
	}
	if gs.EscapedCount > 0 {
		line += fmt.Sprintf("  ESCAPED %d", gs.EscapedCount)
	}
	return line
}

// drawHUD HUD 文字后接进度条，进度条占满剩余宽度
func (r *Renderer) drawHUD(gs *game.GameState) {
	cols, _ := r.viewport()
	line := hudLine(gs) + "  "
	r.drawString(0, 0, line, styleHUD)

	barWidth := cols - len(line)
	if barWidth <= 2 {
		return
	}
	inner := barWidth - 2
	fill := int(math.Round(float64(inner) * gs.CompletionPercent() / 100))
	r.setCell(len(line), 0, '[', styleBar)
	for i := 0; i < inner; i++ {
		ch := '.'
		if i < fill {
			ch = '#'
		}
		r.setCell(len(line)+1+i, 0, ch, styleBar)
	}
	r.setCell(len(line)+1+inner, 0, ']', styleBar)
}

// drawBanner 横幅居中显示
func (r *Renderer) drawBanner(gs *game.GameState) {
	b := gs.Banner
	if b == nil || b.Alpha <= 0 {
		return
	}
	cols, rows := r.viewport()
	mid := hudRows + rows/2
	r.drawString((cols-len(b.Text))/2, mid-1, b.Text, styleBanner)
	if b.Subtext != "" {
		r.drawString((cols-len(b.Subtext))/2, mid, b.Subtext, styleHint)
	}
	if gs.IsCompleted() {
		hint := "click or press R to play again, Q to quit"
		r.drawString((cols-len(hint))/2, mid+2, hint, styleHint)
	}
}

func (r *Renderer) drawString(col, row int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		r.setCell(col+i, row, ch, style)
	}
}

// setCell 越界的格子直接忽略
func (r *Renderer) setCell(col, row int, ch rune, style tcell.Style) {
	w, h := r.screen.Size()
	if col < 0 || row < 0 || col >= w || row >= h {
		return
	}
	r.screen.SetContent(col, row, ch, nil, style)
}

// styleFor 按透明度把颜色压暗（终端背景视为黑色）
func styleFor(c color.RGBA, opacity float64) tcell.Style {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	scale := func(v uint8) int32 { return int32(math.Round(float64(v) * opacity)) }
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(scale(c.R), scale(c.G), scale(c.B)))
}
