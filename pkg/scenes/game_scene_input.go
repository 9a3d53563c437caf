package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// frameInput 一帧的输入快照（逻辑坐标）
type frameInput struct {
	X, Y       float64
	Inside     bool // 指针在画布内；false 视为指针离开
	Clicked    bool // 本帧刚按下（鼠标左键或触摸）
	Restart    bool
	ToggleMute bool
	// ToggleDebug 切换调试叠加层（F3）
	ToggleDebug bool
}

// inputReader 输入来源，测试中可替换
type inputReader interface {
	Read(width, height float64) frameInput
}

// ebitenInput 从 Ebitengine 读取鼠标、触摸和键盘
// 同时支持鼠标和触摸，优先检测触摸
type ebitenInput struct{}

func (ebitenInput) Read(width, height float64) frameInput {
	var in frameInput
	var x, y int

	if touchIDs := inpututil.AppendJustPressedTouchIDs(nil); len(touchIDs) > 0 {
		x, y = ebiten.TouchPosition(touchIDs[0])
		in.Clicked = true
		in.Inside = true
	} else if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		x, y = ebiten.TouchPosition(touchIDs[0])
		in.Inside = true
	} else {
		x, y = ebiten.CursorPosition()
		in.Clicked = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
		in.Inside = true
	}

	in.X, in.Y = float64(x), float64(y)
	if in.X < 0 || in.Y < 0 || in.X >= width || in.Y >= height {
		in.Inside = false
	}

	in.Restart = inpututil.IsKeyJustPressed(ebiten.KeyR)
	in.ToggleMute = inpututil.IsKeyJustPressed(ebiten.KeyM)
	in.ToggleDebug = inpututil.IsKeyJustPressed(ebiten.KeyF3)
	return in
}
