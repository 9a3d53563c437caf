// bubblehunter-tui 在终端里运行气泡猎人（需要支持鼠标的终端）
//
// 用法:
//
//	go run ./cmd/bubblehunter-tui [--config path] [--seed N] [--log file]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/bubblehunter/pkg/components"
	"github.com/decker502/bubblehunter/pkg/config"
	"github.com/decker502/bubblehunter/pkg/engine"
	"github.com/decker502/bubblehunter/pkg/game"
	"github.com/decker502/bubblehunter/pkg/terminal"
)

var (
	configPath = flag.String("config", "", "配置文件路径（默认读取 "+config.DefaultConfigPath+"，不存在时使用内置默认值）")
	seed       = flag.Uint64("seed", 0, "随机种子，0 表示每次不同")
	logPath    = flag.String("log", "", "日志文件路径（终端被占用，日志默认丢弃）")
	mute       = flag.Bool("mute", false, "关闭音效")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig 显式路径优先；否则读取工作目录下随发行附带的配置，与桌面端内嵌的是同一个文件
func loadConfig(path string) (*config.GameConfig, error) {
	if path != "" {
		return config.LoadGameConfig(path)
	}
	if _, err := os.Stat(config.DefaultConfigPath); err == nil {
		return config.LoadGameConfig(config.DefaultConfigPath)
	}
	log.Printf("[Main] %s not found, using built-in defaults", config.DefaultConfigPath)
	return config.DefaultGameConfig(), nil
}

func run() error {
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("打开日志文件失败: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("配置加载失败: %w", err)
	}

	hover, err := components.ParseHexColor(cfg.HoverColor)
	if err != nil {
		return err
	}

	storage := game.OpenStorage(game.AppName)
	settingsManager := game.NewSettingsManager(storage)
	scoreManager := game.NewScoreManager(storage)
	scoreManager.RecordGameStart()

	eng := engine.New(cfg, scoreManager, game.NewRandomSource(*seed))
	if !*mute {
		spk := terminal.NewSpeaker(settingsManager)
		defer spk.Close()
		eng.Register(spk)
	}
	eng.Register(game.HandlerFunc{
		Types: []game.EventType{game.EventLevelUp, game.EventGameCompleted},
		Fn: func(_ *game.GameState, ev game.Event) {
			scoreManager.RecordLevel(ev.Level)
		},
	})

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("创建终端屏幕失败: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("初始化终端失败: %w", err)
	}
	defer screen.Fini()

	runner := terminal.NewRunner(screen, eng, terminal.NewRenderer(screen, hover))
	runner.OnRestart = scoreManager.RecordGameStart

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
