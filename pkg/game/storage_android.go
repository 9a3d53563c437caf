//go:build android

package game

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// prepareStorageDir gdata 在 Android 上写入 /data/data/{package}/，
// 但不会预先创建子目录，需要在 gdata.Open 之前建好
func prepareStorageDir() error {
	cmdline, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return fmt.Errorf("failed to detect Android package: %w", err)
	}

	// cmdline 以 \x00 分隔，第一段即包名
	pkg := string(bytes.TrimRight(bytes.SplitN(cmdline, []byte{0}, 2)[0], "\n"))
	if pkg == "" {
		return fmt.Errorf("empty Android package name")
	}

	dir := filepath.Join("/data/data", pkg, "saves")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create storage dir %s: %w", dir, err)
	}
	return nil
}
