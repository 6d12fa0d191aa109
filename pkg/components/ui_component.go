package components

import (
	"github.com/decker502/hovertip/pkg/ecs"
	"github.com/decker502/hovertip/pkg/types"
)

// Interaction represents the pointer interaction state of a UI node.
// It is written by the hit-testing system every frame.
type Interaction int

const (
	// InteractionNone indicates the pointer is not over the node.
	InteractionNone Interaction = iota
	// InteractionHovered indicates the pointer is over the node.
	InteractionHovered
	// InteractionPressed indicates the node is being pressed.
	InteractionPressed
)

// String returns a readable name of the interaction state.
func (i Interaction) String() string {
	switch i {
	case InteractionHovered:
		return "Hovered"
	case InteractionPressed:
		return "Pressed"
	default:
		return "None"
	}
}

// InteractionComponent marks an entity as an interactive UI node
// and tracks its current interaction state.
type InteractionComponent struct {
	// State is the current interaction state of the node.
	State Interaction
	// PassThrough lets nodes below this one receive hover as well.
	// By default the topmost interactive node under the pointer blocks the rest.
	PassThrough bool
}

// Visibility 节点可见性
type Visibility int

const (
	// VisibilityInherited 继承父节点的可见性（根节点视为可见）
	VisibilityInherited Visibility = iota
	// VisibilityHidden 隐藏（连同所有子节点）
	VisibilityHidden
	// VisibilityVisible 显示
	VisibilityVisible
)

// VisibilityComponent 节点可见性组件
type VisibilityComponent struct {
	Visibility Visibility
}

// PositionType 节点定位方式
type PositionType int

const (
	// PositionRelative 由父节点的布局流决定位置
	PositionRelative PositionType = iota
	// PositionAbsolute 由 Left/Top 决定位置（相对父节点内容区，根节点相对视口）
	PositionAbsolute
)

// NodeComponent UI 节点的布局输入
//
// 布局系统读取这些字段计算 ComputedNodeComponent 和 UITransformComponent。
// Tooltip 位置系统在每帧布局之后写回 Left/Top。
type NodeComponent struct {
	PositionType PositionType
	Left         types.Val
	Top          types.Val
	Width        types.Val // Auto 表示由内容决定
	Height       types.Val // Auto 表示由内容决定
	Padding      types.UIRect
	RowGap       float64 // 子节点纵向间距（像素）
	ZIndex       int     // 越大越靠前
	MaxTextWidth float64 // 文本自动换行宽度，0 表示不换行
}

// NewNodeComponent 创建尺寸由内容决定的节点
func NewNodeComponent() *NodeComponent {
	return &NodeComponent{
		Left:    types.Auto,
		Top:     types.Auto,
		Width:   types.Auto,
		Height:  types.Auto,
		Padding: types.UIRectZero,
	}
}

// NewAbsoluteNode 创建绝对定位、固定尺寸的节点
func NewAbsoluteNode(x, y, width, height float64) *NodeComponent {
	return &NodeComponent{
		PositionType: PositionAbsolute,
		Left:         types.Px(x),
		Top:          types.Px(y),
		Width:        types.Px(width),
		Height:       types.Px(height),
		Padding:      types.UIRectZero,
	}
}

// ComputedNodeComponent 布局计算出的节点尺寸（物理像素）
type ComputedNodeComponent struct {
	Size types.Vec2
}

// UITransformComponent 节点的屏幕变换
// Translation 为节点中心点的屏幕坐标（原点左上角，Y 轴向下）
type UITransformComponent struct {
	Translation types.Vec2
}

// Rect 根据中心点和尺寸返回节点的屏幕矩形
func (t *UITransformComponent) Rect(size types.Vec2) types.Rect {
	half := size.Scale(0.5)
	return types.Rect{Min: t.Translation.Sub(half), Max: t.Translation.Add(half)}
}

// ParentComponent 父节点引用
type ParentComponent struct {
	Parent ecs.EntityID
}

// ChildrenComponent 子节点列表（按布局顺序）
type ChildrenComponent struct {
	Children []ecs.EntityID
}
