//go:build mobile

package utils

// IsMobile 移动端编译时始终返回 true
// 触摸设备上没有悬停，只有按住时才有光标
func IsMobile() bool {
	return true
}
