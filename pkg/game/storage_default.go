//go:build !android

package game

// prepareStorageDir 非 Android 平台由 gdata 自行创建目录
func prepareStorageDir() error {
	return nil
}
