// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// PointerState 存储当前帧的指针状态
// 用于统一处理鼠标和触摸输入
type PointerState struct {
	// X, Y 指针位置（屏幕坐标）
	X, Y int
	// Pressed 主指针是否按下（鼠标左键或任意触摸）
	Pressed bool
	// IsTouching 是否有活动的触摸
	IsTouching bool
	// Focused 窗口是否获得焦点
	Focused bool
}

// GetPointerState 获取当前帧的指针状态
// 同时支持鼠标和触摸输入，优先检测触摸
func GetPointerState() PointerState {
	state := PointerState{Focused: ebiten.IsFocused()}

	// 首先检查触摸输入（移动设备）
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		state.Pressed = true
		state.IsTouching = true
		return state
	}

	// 其次检查鼠标输入（桌面设备）
	state.X, state.Y = ebiten.CursorPosition()
	state.Pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	return state
}

// InBounds 指针是否位于 [0, width) x [0, height) 范围内
func (p PointerState) InBounds(width, height float64) bool {
	x, y := float64(p.X), float64(p.Y)
	return x >= 0 && y >= 0 && x < width && y < height
}
