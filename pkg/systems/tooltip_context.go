package systems

import (
	"github.com/decker502/hovertip/pkg/components"
	"github.com/decker502/hovertip/pkg/ecs"
	"github.com/decker502/hovertip/pkg/types"
)

// TooltipState Tooltip 状态机的当前状态
type TooltipState int

const (
	// TooltipInactive 没有正在交互的目标，也没有显示中的 Tooltip
	// （Timer 可能保留着上一个目标的转移窗口）
	TooltipInactive TooltipState = iota
	// TooltipDelayed 目标被悬停，激活延迟倒计时中
	TooltipDelayed
	// TooltipActive 目标被悬停，Tooltip 显示中
	TooltipActive
	// TooltipDismissed 目标仍在交互中（例如被按下），但 Tooltip 已被关闭，直到目标改变
	TooltipDismissed
)

// String 返回状态名称
func (s TooltipState) String() string {
	switch s {
	case TooltipDelayed:
		return "Delayed"
	case TooltipActive:
		return "Active"
	case TooltipDismissed:
		return "Dismissed"
	default:
		return "Inactive"
	}
}

// TooltipContext Tooltip 系统的当前上下文
//
// 整个进程只有一个上下文，由 TooltipContextSystem 独占写入；
// 位置系统和显示/隐藏步骤只读取它。
//
// 不变式：Target 只在 State != TooltipInactive 时有意义
// （Inactive 时保留的是刚离开的目标，仅用于转移判断）。
type TooltipContext struct {
	// State 当前状态
	State TooltipState
	// Target 当前（或上一个）交互目标
	Target ecs.EntityID
	// Timer 剩余激活延迟或转移窗口（毫秒），含义取决于 State
	Timer int
	// CursorPos 当前光标位置或激活点（窗口坐标）
	CursorPos types.Vec2
	// Tooltip 当前 Tooltip 参数的完整快照
	// 注意：Dismissal.OnDistance 存储的是半径的平方
	Tooltip components.TooltipComponent
}

// NewTooltipContext 创建初始上下文（Inactive）
func NewTooltipContext() *TooltipContext {
	return &TooltipContext{
		State:  TooltipInactive,
		Target: ecs.InvalidEntity,
		Tooltip: components.TooltipComponent{
			Content:    components.CustomContent(ecs.InvalidEntity),
			Placement:  components.PlacementCursor,
			Activation: components.ActivationImmediate,
			Dismissal:  components.DismissalNone,
			Transfer:   components.TransferNone,
		},
	}
}

// IsActive 当前 Tooltip 是否显示中
func (c *TooltipContext) IsActive() bool {
	return c.State == TooltipActive
}

// FollowsCursor 当前 Tooltip 激活后是否持续跟随光标
func (c *TooltipContext) FollowsCursor() bool {
	target := c.Tooltip.Placement.TargetPoint
	return target.Kind == components.TargetCursor && target.Follow
}

// TooltipTransition 一次状态或目标变化（用于调试日志和验证工具）
type TooltipTransition struct {
	From       TooltipState
	To         TooltipState
	FromTarget ecs.EntityID
	ToTarget   ecs.EntityID
}

// UIStack 当前帧的交互栈
// Nodes 按绘制顺序排列：从最底层到最顶层
type UIStack struct {
	Nodes []ecs.EntityID
}

// contentEntity 返回 Tooltip 内容实际使用的实体
func contentEntity(content components.TooltipContent, primary components.PrimaryTooltip) ecs.EntityID {
	if content.Kind == components.ContentPrimary {
		return primary.Container
	}
	return content.Entity
}
