package systems

import (
	"math"

	"github.com/decker502/hovertip/pkg/components"
	"github.com/decker502/hovertip/pkg/ecs"
	"github.com/decker502/hovertip/pkg/types"
)

// TooltipPlacementSystem Tooltip 位置系统
//
// 在布局之后运行，只在 Tooltip 激活时工作：
// 计算 Tooltip 中心位置（目标点 → 自身锚点 → 偏移 → 视口钳制 → 像素取整），
// 写回 UITransformComponent 和 NodeComponent 的 Left/Top，
// 然后重新定位 Tooltip 子树，使新位置在本帧生效。
//
// 任何查找失败（目标尚未布局、Tooltip 实体不存在、找不到相机）都静默跳过本帧。
type TooltipPlacementSystem struct {
	entityManager *ecs.EntityManager
	context       *TooltipContextSystem
	layout        *UILayoutSystem
}

// NewTooltipPlacementSystem 创建 Tooltip 位置系统
// 参数:
//   - em: 实体管理器
//   - context: 状态机系统（只读取其上下文）
//   - layout: 布局系统（用于子树重新定位，可为 nil）
func NewTooltipPlacementSystem(em *ecs.EntityManager, context *TooltipContextSystem, layout *UILayoutSystem) *TooltipPlacementSystem {
	return &TooltipPlacementSystem{
		entityManager: em,
		context:       context,
		layout:        layout,
	}
}

// Update 放置当前激活的 Tooltip
func (s *TooltipPlacementSystem) Update() {
	ctx := s.context.Context()
	if ctx.State != TooltipActive {
		return
	}

	targetTransform, ok := ecs.GetComponent[*components.UITransformComponent](s.entityManager, ctx.Target)
	if !ok {
		return
	}
	targetComputed, ok := ecs.GetComponent[*components.ComputedNodeComponent](s.entityManager, ctx.Target)
	if !ok {
		return
	}
	entity := contentEntity(ctx.Tooltip.Content, s.context.Primary())
	computed, ok := ecs.GetComponent[*components.ComputedNodeComponent](s.entityManager, entity)
	if !ok {
		return
	}

	// 相机与视口
	camera, ok := nodeCamera(s.entityManager, ctx.Target)
	if !ok {
		return
	}
	viewport, scale, ok := cameraViewport(s.entityManager, camera)
	if !ok {
		return
	}
	// Tooltip 实体原本可能没有相机关联，直接覆盖
	ecs.AddComponent(s.entityManager, entity, &components.TargetCameraComponent{Camera: camera})

	// 光标位置是窗口坐标，UI 变换是视口坐标
	cursor := cursorInViewport(ctx.CursorPos, viewport)
	targetRect := targetTransform.Rect(targetComputed.Size)
	center := ComputeTooltipCenter(ctx.Tooltip.Placement, targetRect, cursor, computed.Size, viewport.Size(), scale)
	center = SnapToPixelGrid(center, computed.Size)

	transform, ok := ecs.GetComponent[*components.UITransformComponent](s.entityManager, entity)
	if !ok {
		return
	}
	transform.Translation = center

	node, ok := ecs.GetComponent[*components.NodeComponent](s.entityManager, entity)
	if !ok {
		return
	}
	topLeft := center.Sub(computed.Size.Scale(0.5))
	node.Left = types.Px(topLeft.X / scale)
	node.Top = types.Px(topLeft.Y / scale)

	if s.layout != nil {
		s.layout.PropagateSubtree(entity)
	}
}

// ComputeTooltipCenter 计算 Tooltip 的中心位置（未取整）
//
// 参数:
//   - placement: 位置配置
//   - targetRect: 目标元素的视口矩形
//   - cursor: 光标/激活点（视口坐标）
//   - size: Tooltip 尺寸
//   - viewport: 视口尺寸
//   - scale: 缩放系数
//
// 返回:
//   - types.Vec2: 钳制后的中心位置（视口坐标）
func ComputeTooltipCenter(placement components.TooltipPlacement, targetRect types.Rect, cursor, size, viewport types.Vec2, scale float64) types.Vec2 {
	// 目标点
	var pos types.Vec2
	if placement.TargetPoint.Kind == components.TargetFixed {
		pos = targetRect.Center().Add(placement.TargetPoint.Anchor.Offset(targetRect.Size()))
	} else {
		pos = cursor
	}

	// Tooltip 自身锚点落在目标点上
	pos = pos.Sub(placement.AnchorPoint.Offset(size))

	// 偏移
	pos.X += placement.OffsetX.ResolveOrZero(scale, viewport.X, viewport)
	pos.Y += placement.OffsetY.ResolveOrZero(scale, viewport.Y, viewport)

	// 钳制到视口内；可用区域不足时收缩到中点
	pad := resolveInsets(placement.ClampPadding, scale, viewport)
	half := size.Scale(0.5)
	lo := types.Vec2{X: half.X + pad.Left, Y: half.Y + pad.Top}
	hi := types.Vec2{X: viewport.X - half.X - pad.Right, Y: viewport.Y - half.Y - pad.Bottom}
	if lo.X > hi.X {
		mid := (lo.X + hi.X) / 2
		lo.X, hi.X = mid, mid
	}
	if lo.Y > hi.Y {
		mid := (lo.Y + hi.Y) / 2
		lo.Y, hi.Y = mid, mid
	}
	return pos.Clamp(lo, hi)
}

// SnapToPixelGrid 把中心位置对齐到像素网格
// 尺寸为偶数时中心落在整数像素上，为奇数时落在半像素上，使边缘对齐整数像素
func SnapToPixelGrid(center, size types.Vec2) types.Vec2 {
	return types.Vec2{
		X: snapAxis(center.X, size.X),
		Y: snapAxis(center.Y, size.Y),
	}
}

// snapAxis 单轴像素对齐
func snapAxis(value, size float64) float64 {
	if math.Mod(math.Round(size), 2) == 0 {
		return roundTiesUp(value)
	}
	return roundTiesUp(value+0.5) - 0.5
}

// roundTiesUp 四舍五入，.5 始终向正无穷取整（-2.5 -> -2）
func roundTiesUp(value float64) float64 {
	return math.Floor(value + 0.5)
}
