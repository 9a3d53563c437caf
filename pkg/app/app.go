// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	synth "github.com/decker502/bubblehunter/internal/audio"
	"github.com/decker502/bubblehunter/pkg/config"
	"github.com/decker502/bubblehunter/pkg/embedded"
	"github.com/decker502/bubblehunter/pkg/engine"
	"github.com/decker502/bubblehunter/pkg/game"
	"github.com/decker502/bubblehunter/pkg/scenes"
	"github.com/decker502/bubblehunter/pkg/sound"
	"github.com/decker502/bubblehunter/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 外部配置文件路径，为空时使用内嵌的 data/config/game.yaml
	ConfigPath string
	// Seed 随机种子，0 表示每次不同
	Seed uint64
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *scenes.SceneManager
	settings     *game.SettingsManager
	gameConfig   *config.GameConfig
	verbose      bool
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameConfig, err := loadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	// 存储不可用时降级为内存模式，不中断启动
	storage := game.OpenStorage(game.AppName)
	settingsManager := game.NewSettingsManager(storage)
	scoreManager := game.NewScoreManager(storage)
	scoreManager.RecordGameStart()

	audioContext := audio.NewContext(synth.SampleRate)
	audioManager := sound.NewAudioManager(audioContext, settingsManager)

	eng := engine.New(gameConfig, scoreManager, game.NewRandomSource(cfg.Seed))
	eng.Register(audioManager)
	eng.Register(game.HandlerFunc{
		Types: []game.EventType{game.EventLevelUp, game.EventGameCompleted},
		Fn: func(_ *game.GameState, ev game.Event) {
			scoreManager.RecordLevel(ev.Level)
		},
	})
	log.Printf("[App] Engine ready: %d levels x %d bubbles", gameConfig.TotalLevels(), gameConfig.Spawn.GroupSize)

	sceneManager := scenes.NewSceneManager()
	sceneManager.SetSceneFactory(func(name string) scenes.Scene {
		if name != scenes.SceneGame {
			return nil
		}
		return scenes.NewGameScene(eng, settingsManager, audioManager, scoreManager)
	})
	if !sceneManager.Load(scenes.SceneGame) {
		return nil, fmt.Errorf("无法创建游戏场景")
	}

	if settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager: sceneManager,
		settings:     settingsManager,
		gameConfig:   gameConfig,
		verbose:      cfg.Verbose,
	}, nil
}

// loadConfig 外部文件优先，否则读取内嵌默认配置
func loadConfig(path string) (*config.GameConfig, error) {
	if path != "" {
		return config.LoadGameConfig(path)
	}

	data, err := embedded.ReadFile(config.DefaultConfigPath)
	if err != nil {
		log.Printf("[App] Warning: embedded config unavailable: %v (using defaults)", err)
		return config.DefaultGameConfig(), nil
	}
	return config.ParseGameConfig(data)
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.sceneManager.SaveOnExit()
		return ebiten.Termination
	}

	// F11 切换全屏（移动端始终全屏）
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		a.settings.SetFullscreen(fullscreen)
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.WindowSize()
}

// WindowSize 画布尺寸（像素）
func (a *App) WindowSize() (int, int) {
	return int(a.gameConfig.Canvas.Width), int(a.gameConfig.Canvas.Height)
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *scenes.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
