//go:build !mobile

package utils

import "os"

// IsMobile 检测当前是否在移动设备上运行
// 桌面端编译时返回 false
// 可以通过设置环境变量 BUBBLEHUNTER_MOBILE_EMULATE=1 强制启用移动模式（用于本地调试）
func IsMobile() bool {
	return os.Getenv("BUBBLEHUNTER_MOBILE_EMULATE") == "1"
}

// RestartHint 通关画面的重新开始提示
// 移动端没有键盘，只提示点击
func RestartHint() string {
	if IsMobile() {
		return "Tap to play again"
	}
	return "Click or press R to play again"
}
