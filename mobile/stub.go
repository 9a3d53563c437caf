//go:build !mobile

// stub.go - 桌面端构建时的占位文件
//
// mobile.go 和 embed.go 只在 -tags mobile 下编译，
// 没有这个文件时 go build ./... 会把 mobile 目录视为空包。
package mobile

// Dummy 与移动端构建导出相同的符号
func Dummy() {}
