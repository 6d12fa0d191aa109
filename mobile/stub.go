//go:build !mobile

// Package mobile 的桌面端占位
//
// 实际的绑定入口在 mobile.go 和 embed.go 中，仅在 -tags mobile 时编译。
package mobile

// Dummy 使包在桌面端构建时也能被引用
func Dummy() {}
