package components

import "github.com/decker502/hovertip/pkg/types"

// TargetKind 目标点类型
type TargetKind int

const (
	// TargetCursor 以光标位置为目标点
	TargetCursor TargetKind = iota
	// TargetFixed 以目标元素上的固定锚点为目标点
	TargetFixed
)

// TargetPoint Tooltip 锚点要对齐到的目标点
type TargetPoint struct {
	Kind TargetKind
	// Anchor 目标元素上的锚点（仅 TargetFixed）
	Anchor types.Anchor
	// Follow 激活后持续跟随光标（仅 TargetCursor），否则只在激活时取一次
	Follow bool
}

// FixedTarget 目标元素上的固定锚点
func FixedTarget(anchor types.Anchor) TargetPoint {
	return TargetPoint{Kind: TargetFixed, Anchor: anchor}
}

// CursorTarget 光标位置
func CursorTarget(follow bool) TargetPoint {
	return TargetPoint{Kind: TargetCursor, Follow: follow}
}

// TooltipPlacement Tooltip 位置配置
type TooltipPlacement struct {
	// AnchorPoint Tooltip 自身的锚点
	AnchorPoint types.Anchor
	// TargetPoint AnchorPoint 要对齐到的目标点
	TargetPoint TargetPoint
	// OffsetX 额外的水平偏移
	OffsetX types.Val
	// OffsetY 额外的垂直偏移
	OffsetY types.Val
	// ClampPadding 将 Tooltip 限制在视口内时四边保留的边距
	ClampPadding types.UIRect
}

// 位置预设
var (
	// PlacementCursorCentered Tooltip 中心对齐光标
	PlacementCursorCentered = TooltipPlacement{
		AnchorPoint:  types.AnchorCenter,
		TargetPoint:  CursorTarget(false),
		OffsetX:      types.Zero,
		OffsetY:      types.Zero,
		ClampPadding: types.UIRectZero,
	}

	// PlacementCursor Tooltip 左上角位于光标右下方 16px
	PlacementCursor = TooltipPlacement{
		AnchorPoint:  types.AnchorTopLeft,
		TargetPoint:  CursorTarget(false),
		OffsetX:      types.Px(16),
		OffsetY:      types.Px(16),
		ClampPadding: types.UIRectZero,
	}

	// PlacementFollowCursorCentered Tooltip 中心跟随光标移动
	PlacementFollowCursorCentered = TooltipPlacement{
		AnchorPoint:  types.AnchorCenter,
		TargetPoint:  CursorTarget(true),
		OffsetX:      types.Zero,
		OffsetY:      types.Zero,
		ClampPadding: types.UIRectZero,
	}

	// PlacementFollowCursor Tooltip 左上角跟随光标移动
	PlacementFollowCursor = TooltipPlacement{
		AnchorPoint:  types.AnchorTopLeft,
		TargetPoint:  CursorTarget(true),
		OffsetX:      types.Px(16),
		OffsetY:      types.Px(16),
		ClampPadding: types.UIRectZero,
	}
)

// PlacementFromAnchor 在目标元素的固定锚点外侧显示
// 例如 AnchorTopCenter：Tooltip 的下边缘中点对齐目标的上边缘中点
func PlacementFromAnchor(anchor types.Anchor) TooltipPlacement {
	return TooltipPlacement{
		AnchorPoint:  anchor.Flip(),
		TargetPoint:  FixedTarget(anchor),
		OffsetX:      types.Zero,
		OffsetY:      types.Zero,
		ClampPadding: types.UIRectZero,
	}
}

// PlacementFromOffset Tooltip 左上角位于光标加指定偏移处
func PlacementFromOffset(offset types.Vec2) TooltipPlacement {
	return TooltipPlacement{
		AnchorPoint:  types.AnchorTopLeft,
		TargetPoint:  CursorTarget(false),
		OffsetX:      types.Px(offset.X),
		OffsetY:      types.Px(offset.Y),
		ClampPadding: types.UIRectZero,
	}
}

// WithClampPadding 设置钳制边距
func (p TooltipPlacement) WithClampPadding(padding types.UIRect) TooltipPlacement {
	p.ClampPadding = padding
	return p
}

// WithOffset 设置偏移
func (p TooltipPlacement) WithOffset(x, y types.Val) TooltipPlacement {
	p.OffsetX = x
	p.OffsetY = y
	return p
}

// PlacementPreset 根据名称获取位置预设
// 除光标类预设外，九个方位名称（如 "top_center"）返回 PlacementFromAnchor
func PlacementPreset(name string) (TooltipPlacement, bool) {
	switch name {
	case "cursor_centered":
		return PlacementCursorCentered, true
	case "cursor":
		return PlacementCursor, true
	case "follow_cursor_centered":
		return PlacementFollowCursorCentered, true
	case "follow_cursor":
		return PlacementFollowCursor, true
	}
	if anchor, ok := types.AnchorByName(name); ok {
		return PlacementFromAnchor(anchor), true
	}
	return TooltipPlacement{}, false
}

// PlacementPresetNames 返回所有位置预设名称
func PlacementPresetNames() []string {
	names := []string{"cursor_centered", "cursor", "follow_cursor_centered", "follow_cursor"}
	return append(names, types.AnchorNames()...)
}
