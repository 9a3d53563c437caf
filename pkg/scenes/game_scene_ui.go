package scenes

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/bubblehunter/pkg/components"
	"github.com/decker502/bubblehunter/pkg/game"
	"github.com/decker502/bubblehunter/pkg/utils"
)

// HUD 布局
const (
	hudMarginX      = 12.0
	hudLineHeight   = 20.0
	hudFontSize     = 16.0
	progressBarH    = 6.0
	bannerFontSize  = 48.0
	bannerSubSize   = 20.0
	restartHintSize = 16.0
)

// hudLines HUD 左上角文字
func hudLines(gs *game.GameState) []string {
	lines := []string{
		fmt.Sprintf("LEVEL %d/%d", gs.CurrentLevel, gs.TotalLevels),
		fmt.Sprintf("SCORE %d  %d%%", gs.Score(), int(math.Round(gs.CompletionPercent()))),
		fmt.Sprintf("HIGH  %d", gs.HighScore),
	}
	if gs.ComboCount >= 2 {
		lines = append(lines, fmt.Sprintf("COMBO x%d", gs.ComboCount))
	}
	return lines
}

// drawHUD 绘制进度条和统计文字（不受屏幕震动影响）
func (s *GameScene) drawHUD(screen *ebiten.Image, gs *game.GameState) {
	width := float32(gs.Config.Canvas.Width)
	vector.DrawFilledRect(screen, 0, 0, width, progressBarH, progressBack, false)
	vector.DrawFilledRect(screen, 0, 0, width*float32(gs.CompletionPercent()/100), progressBarH, progressFill, false)

	for i, line := range hudLines(gs) {
		y := progressBarH + hudLineHeight*(float64(i)+0.8)
		s.drawText(screen, line, hudMarginX, y, hudFontSize, hudColor, text.AlignStart)
	}
}

// drawBanner 关卡横幅与通关画面
func (s *GameScene) drawBanner(screen *ebiten.Image, gs *game.GameState) {
	cfg := gs.Config
	cx := cfg.Canvas.Width / 2
	cy := cfg.Canvas.Height / 2

	if gs.IsCompleted() {
		vector.DrawFilledRect(screen, 0, 0, float32(cfg.Canvas.Width), float32(cfg.Canvas.Height), overlayColor, false)
	}

	b := gs.Banner
	if b == nil || b.Alpha <= 0 {
		return
	}

	s.drawText(screen, b.Text, cx, cy-bannerSubSize, bannerFontSize*b.Scale, withOpacity(components.ColorGold, b.Alpha), text.AlignCenter)
	if b.Subtext != "" {
		s.drawText(screen, b.Subtext, cx, cy+bannerSubSize, bannerSubSize, withOpacity(components.ColorWhite, b.Alpha), text.AlignCenter)
	}
	if gs.IsCompleted() {
		s.drawText(screen, utils.RestartHint(), cx, cy+bannerSubSize*3, restartHintSize,
			withOpacity(hudColor, b.Alpha), text.AlignCenter)
	}
}
