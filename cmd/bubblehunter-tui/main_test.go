package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/decker502/bubblehunter/pkg/config"
)

// TestLoadConfig 未指定 --config 时读取工作目录下的 data/config/game.yaml
func TestLoadConfig(t *testing.T) {
	t.Run("读取随发行附带的配置", func(t *testing.T) {
		dir := t.TempDir()
		cfgPath := filepath.Join(dir, config.DefaultConfigPath)
		if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(cfgPath, []byte("combo:\n  window: 90\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		t.Chdir(dir)

		cfg, err := loadConfig("")
		if err != nil {
			t.Fatalf("loadConfig failed: %v", err)
		}
		if cfg.Combo.Window != 90 {
			t.Errorf("Combo.Window: got %d, want 90", cfg.Combo.Window)
		}
	})

	t.Run("文件不存在时使用内置默认值", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := loadConfig("")
		if err != nil {
			t.Fatalf("loadConfig failed: %v", err)
		}
		if *cfg != *config.DefaultGameConfig() {
			t.Error("expected built-in defaults")
		}
	})

	t.Run("显式路径不存在时报错", func(t *testing.T) {
		if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Error("expected error for missing explicit config")
		}
	})

	t.Run("与仓库内的配置一致", func(t *testing.T) {
		cfg, err := loadConfig(filepath.Join("..", "..", config.DefaultConfigPath))
		if err != nil {
			t.Fatalf("loadConfig failed: %v", err)
		}
		if cfg.Combo.Window != config.DefaultGameConfig().Combo.Window {
			t.Errorf("Combo.Window: got %d", cfg.Combo.Window)
		}
	})
}
