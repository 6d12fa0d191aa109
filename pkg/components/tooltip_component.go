package components

import (
	"github.com/decker502/hovertip/pkg/ecs"
	"github.com/decker502/hovertip/pkg/types"
)

// ContentKind Tooltip 内容类型
type ContentKind int

const (
	// ContentPrimary 使用全局共享的主 Tooltip 实体，显示 Text
	ContentPrimary ContentKind = iota
	// ContentCustom 使用完全自定义的实体作为 Tooltip
	ContentCustom
)

// TooltipContent Tooltip 要显示的内容
//
// Kind 决定哪个字段有效：
//   - ContentPrimary: Text
//   - ContentCustom:  Entity
type TooltipContent struct {
	Kind   ContentKind
	Text   RichText
	Entity ecs.EntityID
}

// PrimaryContent 使用主 Tooltip 显示富文本
func PrimaryContent(text RichText) TooltipContent {
	return TooltipContent{Kind: ContentPrimary, Text: text}
}

// TextContent 使用主 Tooltip 显示默认样式的纯文本
func TextContent(value string) TooltipContent {
	return PrimaryContent(RichTextFromSection(value, DefaultTextStyle()))
}

// CustomContent 使用自定义实体
func CustomContent(entity ecs.EntityID) TooltipContent {
	return TooltipContent{Kind: ContentCustom, Entity: entity}
}

// Clone 深拷贝内容（富文本不共享底层切片）
func (c TooltipContent) Clone() TooltipContent {
	c.Text = c.Text.Clone()
	return c
}

// TooltipComponent 悬停提示组件
//
// 挂载在可交互的 UI 节点上（需要同时拥有 InteractionComponent），
// 描述该节点的 Tooltip 内容、位置、激活/关闭/转移规则。
//
// 每当该节点成为新的悬停目标时，上下文系统会重新读取并快照整个组件，
// 因此应用可以在帧与帧之间随时修改它。
//
// 默认行为:
//   - ActivationIdle
//   - DismissalOnClick
//   - TransferNone
//   - PlacementCursor
type TooltipComponent struct {
	Content    TooltipContent
	Placement  TooltipPlacement
	Activation TooltipActivation
	Dismissal  TooltipDismissal
	Transfer   TooltipTransfer
}

// NewTooltip 使用给定内容和默认行为创建 Tooltip
func NewTooltip(content TooltipContent) *TooltipComponent {
	return &TooltipComponent{
		Content:    content,
		Placement:  PlacementCursor,
		Activation: ActivationIdle,
		Dismissal:  DismissalOnClick,
		Transfer:   TransferNone,
	}
}

// NewTextTooltip 显示默认样式纯文本的 Tooltip
func NewTextTooltip(value string) *TooltipComponent {
	return NewTooltip(TextContent(value))
}

// NewCustomTooltip 显示自定义实体的 Tooltip
func NewCustomTooltip(entity ecs.EntityID) *TooltipComponent {
	return NewTooltip(CustomContent(entity))
}

// NewCursorTooltip 在光标处显示的 Tooltip
func NewCursorTooltip(content TooltipContent) *TooltipComponent {
	return NewTooltip(content).WithPlacement(PlacementCursor)
}

// NewFollowCursorTooltip 跟随光标移动的 Tooltip
func NewFollowCursorTooltip(content TooltipContent) *TooltipComponent {
	return NewTooltip(content).WithPlacement(PlacementFollowCursor)
}

// NewFixedTooltip 固定在目标元素指定方位的 Tooltip
func NewFixedTooltip(anchor types.Anchor, content TooltipContent) *TooltipComponent {
	return NewTooltip(content).WithPlacement(PlacementFromAnchor(anchor))
}

// WithActivation 设置激活条件
func (t *TooltipComponent) WithActivation(activation TooltipActivation) *TooltipComponent {
	t.Activation = activation
	return t
}

// WithDismissal 设置关闭条件
func (t *TooltipComponent) WithDismissal(dismissal TooltipDismissal) *TooltipComponent {
	t.Dismissal = dismissal
	return t
}

// WithTransfer 设置转移条件
func (t *TooltipComponent) WithTransfer(transfer TooltipTransfer) *TooltipComponent {
	t.Transfer = transfer
	return t
}

// WithPlacement 设置位置配置
func (t *TooltipComponent) WithPlacement(placement TooltipPlacement) *TooltipComponent {
	t.Placement = placement
	return t
}

// Snapshot 返回组件的完整值拷贝
// 上下文持有快照而不是引用，目标元素修改组件不会影响进行中的激活
func (t *TooltipComponent) Snapshot() TooltipComponent {
	snap := *t
	snap.Content = t.Content.Clone()
	return snap
}

// PrimaryTooltip 全局共享的主 Tooltip 实体
//
// 所有 ContentPrimary 类型的 Tooltip 共用这一对实体：
// 显示时把快照中的富文本写入 Text 实体，并显示 Container 实体。
type PrimaryTooltip struct {
	// Container 主 Tooltip 的根节点（绝对定位，初始隐藏）
	Container ecs.EntityID
	// Text 主 Tooltip 的文本节点（Container 的子节点）
	Text ecs.EntityID
}
