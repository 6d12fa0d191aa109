package systems

import (
	"github.com/decker502/hovertip/pkg/components"
	"github.com/decker502/hovertip/pkg/ecs"
	"github.com/decker502/hovertip/pkg/types"
	"github.com/zyedidia/generic/mapset"
)

// TextMeasurer 文本测量接口
// 返回富文本在给定换行宽度和缩放下占用的物理像素尺寸（maxWidth <= 0 表示不换行）
type TextMeasurer interface {
	MeasureText(text components.RichText, maxWidth, scale float64) types.Vec2
}

// UILayoutSystem UI 布局系统
//
// 一个极简的纵向流式布局：
//   - 尺寸自底向上计算：固定尺寸直接解析，Auto 由文本和相对定位子节点决定
//   - 位置自顶向下计算：相对定位子节点在父节点内容区内依次向下排列，
//     绝对定位节点使用 Left/Top（根节点相对视口，子节点相对父节点内容区）
//
// 所有输出均为所属相机视口内的物理像素坐标。
type UILayoutSystem struct {
	entityManager *ecs.EntityManager
	measurer      TextMeasurer

	// textSizes 本帧测量出的文本尺寸，供子树重新定位时复用
	textSizes map[ecs.EntityID]types.Vec2
}

// NewUILayoutSystem 创建布局系统
// measurer 为 nil 时文本节点尺寸按 0 处理
func NewUILayoutSystem(em *ecs.EntityManager, measurer TextMeasurer) *UILayoutSystem {
	return &UILayoutSystem{
		entityManager: em,
		measurer:      measurer,
		textSizes:     make(map[ecs.EntityID]types.Vec2),
	}
}

// Update 重新计算所有 UI 树的尺寸和位置
func (s *UILayoutSystem) Update() {
	s.textSizes = make(map[ecs.EntityID]types.Vec2)

	for _, root := range uiRoots(s.entityManager) {
		viewport, scale, ok := s.rootViewport(root)
		if !ok {
			continue
		}
		vpSize := viewport.Size()

		measured := mapset.New[ecs.EntityID]()
		s.measure(root, scale, vpSize, &measured)

		node, _ := ecs.GetComponent[*components.NodeComponent](s.entityManager, root)
		topLeft := types.Vec2{
			X: node.Left.ResolveOrZero(scale, vpSize.X, vpSize),
			Y: node.Top.ResolveOrZero(scale, vpSize.Y, vpSize),
		}
		positioned := mapset.New[ecs.EntityID]()
		s.position(root, topLeft, scale, vpSize, &positioned)
	}
}

// PropagateSubtree 只重新定位一棵子树
//
// 以 entity 当前的 UITransformComponent 为准（位置系统已经写入），
// 把位置变化传递给所有子节点，使修正后的位置在本帧即可生效。
func (s *UILayoutSystem) PropagateSubtree(entity ecs.EntityID) {
	transform, ok := ecs.GetComponent[*components.UITransformComponent](s.entityManager, entity)
	if !ok {
		return
	}
	computed, ok := ecs.GetComponent[*components.ComputedNodeComponent](s.entityManager, entity)
	if !ok {
		return
	}
	viewport, scale, ok := s.rootViewport(s.rootOf(entity))
	if !ok {
		return
	}
	topLeft := transform.Translation.Sub(computed.Size.Scale(0.5))
	positioned := mapset.New[ecs.EntityID]()
	s.position(entity, topLeft, scale, viewport.Size(), &positioned)
}

// rootOf 沿父节点链找到根节点
func (s *UILayoutSystem) rootOf(entity ecs.EntityID) ecs.EntityID {
	seen := mapset.New[ecs.EntityID]()
	for !seen.Has(entity) {
		seen.Put(entity)
		parent, ok := ecs.GetComponent[*components.ParentComponent](s.entityManager, entity)
		if !ok || !ecs.HasComponent[*components.NodeComponent](s.entityManager, parent.Parent) {
			return entity
		}
		entity = parent.Parent
	}
	return entity
}

// rootViewport 根节点所属相机的视口和缩放
func (s *UILayoutSystem) rootViewport(root ecs.EntityID) (types.Rect, float64, bool) {
	camera, ok := nodeCamera(s.entityManager, root)
	if !ok {
		return types.Rect{}, 0, false
	}
	return cameraViewport(s.entityManager, camera)
}

// children 返回节点的 UI 子节点
func (s *UILayoutSystem) children(entity ecs.EntityID) []ecs.EntityID {
	children, ok := ecs.GetComponent[*components.ChildrenComponent](s.entityManager, entity)
	if !ok {
		return nil
	}
	return children.Children
}

// measure 计算节点尺寸并写入 ComputedNodeComponent
func (s *UILayoutSystem) measure(entity ecs.EntityID, scale float64, vp types.Vec2, visited *mapset.Set[ecs.EntityID]) types.Vec2 {
	if visited.Has(entity) {
		return types.Vec2{}
	}
	visited.Put(entity)

	node, ok := ecs.GetComponent[*components.NodeComponent](s.entityManager, entity)
	if !ok {
		return types.Vec2{}
	}

	// 内容尺寸：文本在上，相对定位子节点依次向下
	var content types.Vec2
	rows := 0
	if text, ok := ecs.GetComponent[*components.TextComponent](s.entityManager, entity); ok && s.measurer != nil {
		maxWidth := 0.0
		if node.MaxTextWidth > 0 && !text.Text.NoWrap {
			maxWidth = node.MaxTextWidth * scale
		}
		size := s.measurer.MeasureText(text.Text, maxWidth, scale)
		s.textSizes[entity] = size
		content = size
		rows++
	}
	gap := node.RowGap * scale
	for _, child := range s.children(entity) {
		size := s.measure(child, scale, vp, visited)
		if !s.inFlow(child) {
			continue
		}
		if rows > 0 {
			content.Y += gap
		}
		content.Y += size.Y
		if size.X > content.X {
			content.X = size.X
		}
		rows++
	}

	pad := s.resolvePadding(node.Padding, scale, vp)
	size := types.Vec2{
		X: content.X + pad.Left + pad.Right,
		Y: content.Y + pad.Top + pad.Bottom,
	}
	if w, err := node.Width.Resolve(scale, vp.X, vp); err == nil {
		size.X = w
	}
	if h, err := node.Height.Resolve(scale, vp.Y, vp); err == nil {
		size.Y = h
	}

	if computed, ok := ecs.GetComponent[*components.ComputedNodeComponent](s.entityManager, entity); ok {
		computed.Size = size
	} else {
		ecs.AddComponent(s.entityManager, entity, &components.ComputedNodeComponent{Size: size})
	}
	return size
}

// position 根据左上角位置写入 UITransformComponent，并递归定位子节点
func (s *UILayoutSystem) position(entity ecs.EntityID, topLeft types.Vec2, scale float64, vp types.Vec2, visited *mapset.Set[ecs.EntityID]) {
	if visited.Has(entity) {
		return
	}
	visited.Put(entity)

	node, ok := ecs.GetComponent[*components.NodeComponent](s.entityManager, entity)
	if !ok {
		return
	}
	computed, ok := ecs.GetComponent[*components.ComputedNodeComponent](s.entityManager, entity)
	if !ok {
		return
	}

	center := topLeft.Add(computed.Size.Scale(0.5))
	if transform, ok := ecs.GetComponent[*components.UITransformComponent](s.entityManager, entity); ok {
		transform.Translation = center
	} else {
		ecs.AddComponent(s.entityManager, entity, &components.UITransformComponent{Translation: center})
	}

	pad := s.resolvePadding(node.Padding, scale, vp)
	origin := topLeft.Add(types.Vec2{X: pad.Left, Y: pad.Top})
	cursorY := origin.Y
	rows := 0
	if size, ok := s.textSizes[entity]; ok {
		cursorY += size.Y
		rows++
	}
	gap := node.RowGap * scale
	for _, child := range s.children(entity) {
		childNode, ok := ecs.GetComponent[*components.NodeComponent](s.entityManager, child)
		if !ok {
			continue
		}
		offset := types.Vec2{
			X: childNode.Left.ResolveOrZero(scale, vp.X, vp),
			Y: childNode.Top.ResolveOrZero(scale, vp.Y, vp),
		}
		if childNode.PositionType == components.PositionAbsolute {
			s.position(child, origin.Add(offset), scale, vp, visited)
			continue
		}
		if rows > 0 {
			cursorY += gap
		}
		s.position(child, types.Vec2{X: origin.X + offset.X, Y: cursorY + offset.Y}, scale, vp, visited)
		if childComputed, ok := ecs.GetComponent[*components.ComputedNodeComponent](s.entityManager, child); ok {
			cursorY += childComputed.Size.Y
		}
		rows++
	}
}

// inFlow 节点是否参与父节点的流式布局
func (s *UILayoutSystem) inFlow(entity ecs.EntityID) bool {
	node, ok := ecs.GetComponent[*components.NodeComponent](s.entityManager, entity)
	return ok && node.PositionType == components.PositionRelative
}

// resolvedInsets 解析后的四边距（物理像素）
type resolvedInsets struct {
	Left, Right, Top, Bottom float64
}

// resolvePadding 解析内边距：左右按视口宽度，上下按视口高度
func (s *UILayoutSystem) resolvePadding(rect types.UIRect, scale float64, vp types.Vec2) resolvedInsets {
	return resolveInsets(rect, scale, vp)
}

// resolveInsets 解析 UIRect，Auto 视为 0
func resolveInsets(rect types.UIRect, scale float64, vp types.Vec2) resolvedInsets {
	return resolvedInsets{
		Left:   rect.Left.ResolveOrZero(scale, vp.X, vp),
		Right:  rect.Right.ResolveOrZero(scale, vp.X, vp),
		Top:    rect.Top.ResolveOrZero(scale, vp.Y, vp),
		Bottom: rect.Bottom.ResolveOrZero(scale, vp.Y, vp),
	}
}
