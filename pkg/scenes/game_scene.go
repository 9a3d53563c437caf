package scenes

import (
	"image/color"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/bubblehunter/pkg/components"
	"github.com/decker502/bubblehunter/pkg/engine"
	"github.com/decker502/bubblehunter/pkg/game"
	"github.com/decker502/bubblehunter/pkg/sound"
)

// SceneGame 游戏场景名
const SceneGame = "game"

// 画面常量
var (
	backgroundColor = color.RGBA{R: 18, G: 24, B: 38, A: 255}
	hoverStroke     = color.RGBA{R: 51, G: 51, B: 51, A: 255}
	hudColor        = color.RGBA{R: 230, G: 236, B: 245, A: 255}
	progressBack    = color.RGBA{R: 255, G: 255, B: 255, A: 40}
	progressFill    = color.RGBA{R: 76, G: 175, B: 80, A: 255}
	overlayColor    = color.RGBA{R: 0, G: 0, B: 0, A: 160}
)

// GameScene 唯一的游戏场景
//
// 职责：
//   - 每帧读取输入并转发给引擎（指针移动/离开、点击、重新开始）
//   - 驱动 engine.Tick
//   - 按 GameState 绘制气泡、粒子、文字、HUD、横幅
//
// 场景不修改 GameState，所有状态变化都经由引擎
type GameScene struct {
	engine          *engine.Engine
	settingsManager *game.SettingsManager
	audioManager    *sound.AudioManager
	scoreManager    *game.ScoreManager

	face       *text.GoXFace
	hoverColor color.RGBA
	jitter     *rand.Rand // 屏幕震动偏移，仅视觉使用

	input inputReader
	debug bool // 调试信息叠加层
}

// NewGameScene 创建游戏场景
//
// 参数：
//   - eng: 引擎
//   - sm: 设置管理器（可为 nil）
//   - am: 音频管理器（可为 nil，静音）
//   - scores: 最高分管理器（可为 nil）
func NewGameScene(eng *engine.Engine, sm *game.SettingsManager, am *sound.AudioManager, scores *game.ScoreManager) *GameScene {
	hover, err := components.ParseHexColor(eng.Config().HoverColor)
	if err != nil {
		log.Printf("[GameScene] Warning: %v (using default hover color)", err)
		hover = color.RGBA{R: 255, G: 193, B: 7, A: 255}
	}

	return &GameScene{
		engine:          eng,
		settingsManager: sm,
		audioManager:    am,
		scoreManager:    scores,
		face:            text.NewGoXFace(basicfont.Face7x13),
		hoverColor:      hover,
		jitter:          rand.New(rand.NewPCG(1, 2)),
		input:           ebitenInput{},
	}
}

// Update 读取输入并推进一帧
func (s *GameScene) Update(deltaTime float64) {
	cfg := s.engine.Config()
	s.applyInput(s.input.Read(cfg.Canvas.Width, cfg.Canvas.Height))
	s.engine.Tick(deltaTime)
}

// applyInput 将一帧输入转成引擎调用
func (s *GameScene) applyInput(in frameInput) {
	if in.ToggleMute && s.audioManager != nil {
		enabled := s.audioManager.ToggleSound()
		log.Printf("[GameScene] Sound enabled: %v", enabled)
	}

	if in.ToggleDebug {
		s.debug = !s.debug
	}

	if in.Inside {
		s.engine.PointerMove(in.X, in.Y)
	} else {
		s.engine.PointerLeave()
	}

	if s.engine.Finished() {
		// 通关画面：点击或 R 键开始新一局
		if in.Clicked || in.Restart {
			s.restart()
		}
		return
	}

	if in.Restart {
		s.restart()
		return
	}
	if in.Clicked && in.Inside {
		s.engine.Click(in.X, in.Y)
	}
}

func (s *GameScene) restart() {
	s.engine.Restart()
	if s.scoreManager != nil {
		s.scoreManager.RecordGameStart()
	}
}

// Draw 绘制整帧
func (s *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	gs := s.engine.State()
	ox, oy := s.shakeOffset(gs.ScreenShake)

	s.drawEntities(screen, gs, ox, oy)
	s.drawHUD(screen, gs)
	s.drawBanner(screen, gs)
	s.drawDebug(screen, gs)
}

// shakeOffset 每帧随机的震动偏移
func (s *GameScene) shakeOffset(magnitude float64) (float64, float64) {
	if magnitude <= 0 {
		return 0, 0
	}
	return (s.jitter.Float64()*2 - 1) * magnitude, (s.jitter.Float64()*2 - 1) * magnitude
}

// SaveOnExit 实现 Saveable：保存设置
func (s *GameScene) SaveOnExit() bool {
	if s.settingsManager == nil {
		return true
	}
	if err := s.settingsManager.Save(); err != nil {
		log.Printf("[GameScene] Warning: failed to save settings on exit: %v", err)
		return false
	}
	return true
}
