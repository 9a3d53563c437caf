package scenes

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/decker502/bubblehunter/pkg/game"
)

// debugLineHeight ebitenutil 调试字体行高
const debugLineHeight = 16

// debugLines 调试信息：实体数量、帧计数、连击计时、指针
func debugLines(gs *game.GameState, tps, fps float64) []string {
	pointer := "none"
	if gs.Pointer.Valid {
		pointer = fmt.Sprintf("%.0f,%.0f", gs.Pointer.X, gs.Pointer.Y)
	}
	return []string{
		fmt.Sprintf("TPS %.1f  FPS %.1f  tick %d", tps, fps, gs.TickCount),
		fmt.Sprintf("circles %d  particles %d  texts %d", len(gs.Circles), len(gs.Particles), len(gs.Texts)),
		fmt.Sprintf("spawned %d/%d  escaped %d", gs.SpawnedInLevel, gs.Config.Spawn.GroupSize, gs.EscapedCount),
		fmt.Sprintf("combo %d (%d)  shake %.2f  pointer %s", gs.ComboCount, gs.ComboTimer, gs.ScreenShake, pointer),
	}
}

// drawDebug 左下角调试信息（F3 切换）
func (s *GameScene) drawDebug(screen *ebiten.Image, gs *game.GameState) {
	if !s.debug {
		return
	}
	lines := debugLines(gs, ebiten.ActualTPS(), ebiten.ActualFPS())
	y := int(gs.Config.Canvas.Height) - debugLineHeight*len(lines) - 4
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 4, y)
}
