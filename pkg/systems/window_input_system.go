package systems

import (
	"github.com/decker502/hovertip/pkg/components"
	"github.com/decker502/hovertip/pkg/ecs"
	"github.com/decker502/hovertip/pkg/utils"
)

// WindowInputSystem 把 ebiten 的窗口和指针状态写入 WindowComponent
//
// 光标坐标与 Layout 返回的屏幕尺寸一致（物理像素）；
// 指针离开窗口范围或窗口失去焦点时光标按不存在处理。
type WindowInputSystem struct {
	entityManager *ecs.EntityManager
	window        ecs.EntityID
	pointer       func() utils.PointerState
}

// NewWindowInputSystem 创建窗口输入系统
// 参数:
//   - em: 实体管理器
//   - window: 主窗口实体（拥有 WindowComponent）
func NewWindowInputSystem(em *ecs.EntityManager, window ecs.EntityID) *WindowInputSystem {
	return &WindowInputSystem{
		entityManager: em,
		window:        window,
		pointer:       utils.GetPointerState,
	}
}

// SetPointerSource 替换指针状态来源（测试和无界面运行使用）
func (s *WindowInputSystem) SetPointerSource(source func() utils.PointerState) {
	if source == nil {
		source = utils.GetPointerState
	}
	s.pointer = source
}

// Resize 更新窗口尺寸（由 ebiten Layout 调用）
// 参数:
//   - width, height: 屏幕物理像素尺寸
//   - scale: 设备缩放系数
func (s *WindowInputSystem) Resize(width, height, scale float64) {
	window, ok := ecs.GetComponent[*components.WindowComponent](s.entityManager, s.window)
	if !ok {
		return
	}
	window.Width = width
	window.Height = height
	window.ScaleFactor = scale
}

// Update 读取本帧指针状态
func (s *WindowInputSystem) Update() {
	window, ok := ecs.GetComponent[*components.WindowComponent](s.entityManager, s.window)
	if !ok {
		return
	}

	state := s.pointer()
	window.Focused = state.Focused
	window.Pressed = state.Pressed
	if state.Focused && state.InBounds(window.Width, window.Height) {
		window.SetCursor(float64(state.X), float64(state.Y))
	} else {
		window.ClearCursor()
	}
}
