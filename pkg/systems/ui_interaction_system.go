package systems

import (
	"github.com/decker502/hovertip/pkg/components"
	"github.com/decker502/hovertip/pkg/ecs"
	"github.com/decker502/hovertip/pkg/types"
)

// UIInteractionSystem UI 命中检测系统
//
// 每帧完成两件事：
//  1. 按绘制顺序（从底到顶）重建 UIStack，只包含实际可见的节点
//  2. 自顶向下检测光标，更新 InteractionComponent 的状态
//
// 命中规则与 AABB 悬停检测一致：光标落在节点矩形内（含边界）即命中。
// 最上层命中的可交互节点会挡住下面的节点，除非它设置了 PassThrough。
type UIInteractionSystem struct {
	entityManager *ecs.EntityManager
	stack         *UIStack
}

// NewUIInteractionSystem 创建命中检测系统
// stack 会在每帧 Update 时被原地重建
func NewUIInteractionSystem(em *ecs.EntityManager, stack *UIStack) *UIInteractionSystem {
	return &UIInteractionSystem{
		entityManager: em,
		stack:         stack,
	}
}

// Stack 返回交互栈
func (s *UIInteractionSystem) Stack() *UIStack {
	return s.stack
}

// Update 重建交互栈并更新交互状态
func (s *UIInteractionSystem) Update() {
	s.rebuildStack()

	blocked := false
	for i := len(s.stack.Nodes) - 1; i >= 0; i-- {
		entity := s.stack.Nodes[i]
		interaction, ok := ecs.GetComponent[*components.InteractionComponent](s.entityManager, entity)
		if !ok {
			continue
		}
		if blocked {
			interaction.State = components.InteractionNone
			continue
		}
		hit, pressed := s.hitTest(entity)
		switch {
		case !hit:
			interaction.State = components.InteractionNone
		case pressed:
			interaction.State = components.InteractionPressed
		default:
			interaction.State = components.InteractionHovered
		}
		if hit && !interaction.PassThrough {
			blocked = true
		}
	}

	// 不可见节点不参与命中
	for _, entity := range ecs.GetEntitiesWith1[*components.InteractionComponent](s.entityManager) {
		if !s.inStack(entity) {
			interaction, _ := ecs.GetComponent[*components.InteractionComponent](s.entityManager, entity)
			interaction.State = components.InteractionNone
		}
	}
}

// rebuildStack 按绘制顺序重建交互栈
func (s *UIInteractionSystem) rebuildStack() {
	s.stack.Nodes = appendVisibleNodes(s.stack.Nodes[:0], s.entityManager)
}

// inStack 节点是否在本帧的交互栈中
func (s *UIInteractionSystem) inStack(entity ecs.EntityID) bool {
	for _, id := range s.stack.Nodes {
		if id == entity {
			return true
		}
	}
	return false
}

// hitTest 检测光标是否落在节点内，以及主指针是否按下
func (s *UIInteractionSystem) hitTest(entity ecs.EntityID) (hit bool, pressed bool) {
	transform, ok := ecs.GetComponent[*components.UITransformComponent](s.entityManager, entity)
	if !ok {
		return false, false
	}
	computed, ok := ecs.GetComponent[*components.ComputedNodeComponent](s.entityManager, entity)
	if !ok {
		return false, false
	}
	cameraEntity, ok := nodeCamera(s.entityManager, entity)
	if !ok {
		return false, false
	}
	camera, _ := ecs.GetComponent[*components.CameraComponent](s.entityManager, cameraEntity)
	window, ok := cameraWindow(s.entityManager, camera)
	if !ok || window.Cursor == nil {
		return false, false
	}
	viewport, _, ok := cameraViewport(s.entityManager, cameraEntity)
	if !ok || !viewport.Contains(*window.Cursor) {
		return false, false
	}

	local := cursorInViewport(*window.Cursor, viewport)
	rect := transform.Rect(computed.Size)
	if !rect.Contains(local) {
		return false, false
	}
	return true, window.Pressed
}

// cursorInViewport 把窗口坐标转换为视口坐标
func cursorInViewport(cursor types.Vec2, viewport types.Rect) types.Vec2 {
	return cursor.Sub(viewport.Min)
}
