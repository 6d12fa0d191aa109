package systems

import (
	"sort"

	"github.com/decker502/hovertip/pkg/components"
	"github.com/decker502/hovertip/pkg/ecs"
	"github.com/decker502/hovertip/pkg/types"
)

// maxNodeDepth 沿父节点链向上查找的最大深度（防止父子关系成环）
const maxNodeDepth = 64

// camerasInOrder 返回所有相机实体，按 (Order, EntityID) 升序
func camerasInOrder(em *ecs.EntityManager) []ecs.EntityID {
	cameras := ecs.GetEntitiesWith1[*components.CameraComponent](em)
	sort.SliceStable(cameras, func(i, j int) bool {
		ci, _ := ecs.GetComponent[*components.CameraComponent](em, cameras[i])
		cj, _ := ecs.GetComponent[*components.CameraComponent](em, cameras[j])
		return ci.Order < cj.Order
	})
	return cameras
}

// primaryWindow 查找主窗口实体
func primaryWindow(em *ecs.EntityManager) (ecs.EntityID, bool) {
	for _, id := range ecs.GetEntitiesWith1[*components.WindowComponent](em) {
		window, _ := ecs.GetComponent[*components.WindowComponent](em, id)
		if window.Primary {
			return id, true
		}
	}
	return ecs.InvalidEntity, false
}

// cameraWindow 返回相机的渲染目标窗口
// Camera.Window 为 InvalidEntity 时使用主窗口
func cameraWindow(em *ecs.EntityManager, camera *components.CameraComponent) (*components.WindowComponent, bool) {
	windowEntity := camera.Window
	if windowEntity == ecs.InvalidEntity {
		var ok bool
		if windowEntity, ok = primaryWindow(em); !ok {
			return nil, false
		}
	}
	return ecs.GetComponent[*components.WindowComponent](em, windowEntity)
}

// focusedCursor 返回第一个渲染到已聚焦且光标在内的窗口的相机，以及光标位置
// 其余相机不参与光标检测
func focusedCursor(em *ecs.EntityManager) (ecs.EntityID, types.Vec2, bool) {
	for _, cameraEntity := range camerasInOrder(em) {
		camera, _ := ecs.GetComponent[*components.CameraComponent](em, cameraEntity)
		window, ok := cameraWindow(em, camera)
		if !ok || !window.Focused || window.Cursor == nil {
			continue
		}
		return cameraEntity, *window.Cursor, true
	}
	return ecs.InvalidEntity, types.Vec2{}, false
}

// defaultUICamera 返回默认 UI 相机
// 优先选择 IsDefaultUI 的相机，否则选择渲染到主窗口的第一个相机
func defaultUICamera(em *ecs.EntityManager) (ecs.EntityID, bool) {
	cameras := camerasInOrder(em)
	for _, id := range cameras {
		camera, _ := ecs.GetComponent[*components.CameraComponent](em, id)
		if camera.IsDefaultUI {
			return id, true
		}
	}

	primary, hasPrimary := primaryWindow(em)
	for _, id := range cameras {
		camera, _ := ecs.GetComponent[*components.CameraComponent](em, id)
		if camera.Window == ecs.InvalidEntity || (hasPrimary && camera.Window == primary) {
			return id, true
		}
	}
	return ecs.InvalidEntity, false
}

// nodeCamera 返回 UI 节点使用的相机
// 沿父节点链查找最近的 TargetCameraComponent，找不到时使用默认 UI 相机
func nodeCamera(em *ecs.EntityManager, node ecs.EntityID) (ecs.EntityID, bool) {
	for depth := 0; depth < maxNodeDepth; depth++ {
		if target, ok := ecs.GetComponent[*components.TargetCameraComponent](em, node); ok {
			if ecs.HasComponent[*components.CameraComponent](em, target.Camera) {
				return target.Camera, true
			}
			return ecs.InvalidEntity, false
		}
		parent, ok := ecs.GetComponent[*components.ParentComponent](em, node)
		if !ok {
			break
		}
		node = parent.Parent
	}
	return defaultUICamera(em)
}

// cameraViewport 返回相机的物理像素视口和缩放系数
// 相机没有设置 Viewport 时使用整个窗口
func cameraViewport(em *ecs.EntityManager, cameraEntity ecs.EntityID) (types.Rect, float64, bool) {
	camera, ok := ecs.GetComponent[*components.CameraComponent](em, cameraEntity)
	if !ok {
		return types.Rect{}, 0, false
	}
	window, ok := cameraWindow(em, camera)
	if !ok {
		return types.Rect{}, 0, false
	}
	if camera.Viewport != nil {
		return *camera.Viewport, window.Scale(), true
	}
	return types.NewRect(0, 0, window.Width, window.Height), window.Scale(), true
}
