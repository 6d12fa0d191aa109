package components

import (
	"github.com/decker502/hovertip/pkg/ecs"
	"github.com/decker502/hovertip/pkg/types"
)

// CameraComponent 描述一个渲染 UI 的相机。
// 每个相机渲染到一个窗口，可选地只占用窗口中的一块视口（多视口分屏）。
type CameraComponent struct {
	// Window 渲染目标窗口实体（拥有 WindowComponent）
	Window ecs.EntityID

	// Viewport 物理像素视口矩形，nil 表示整个窗口
	Viewport *types.Rect

	// Order 相机顺序，越小越先参与光标检测
	Order int

	// IsDefaultUI 是否为默认 UI 相机（没有 TargetCameraComponent 的节点使用它）
	IsDefaultUI bool
}

// TargetCameraComponent 指定 UI 节点使用的相机
type TargetCameraComponent struct {
	Camera ecs.EntityID
}

// WindowComponent 窗口状态，由窗口输入系统每帧更新
type WindowComponent struct {
	// Primary 是否为主窗口
	Primary bool

	// Focused 窗口是否获得焦点
	Focused bool

	// Cursor 光标在窗口中的位置，nil 表示光标不在窗口内
	Cursor *types.Vec2

	// Width, Height 窗口物理像素尺寸
	Width  float64
	Height float64

	// ScaleFactor 逻辑像素到物理像素的缩放系数
	ScaleFactor float64

	// Pressed 主指针（鼠标左键或触摸）是否按下
	Pressed bool
}

// SetCursor 更新光标位置
func (w *WindowComponent) SetCursor(x, y float64) {
	w.Cursor = &types.Vec2{X: x, Y: y}
}

// ClearCursor 光标离开窗口
func (w *WindowComponent) ClearCursor() {
	w.Cursor = nil
}

// Scale 返回有效缩放系数（未设置时为 1）
func (w *WindowComponent) Scale() float64 {
	if w.ScaleFactor <= 0 {
		return 1
	}
	return w.ScaleFactor
}
