//go:build mobile

package utils

// IsMobile 检测当前是否在移动设备上运行
// 移动端编译时返回 true
func IsMobile() bool {
	return true
}

// RestartHint 通关画面的重新开始提示
func RestartHint() string {
	return "Tap to play again"
}
