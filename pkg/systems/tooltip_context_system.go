package systems

import (
	"math"

	"github.com/decker502/hovertip/pkg/components"
	"github.com/decker502/hovertip/pkg/ecs"
	"github.com/zyedidia/generic/mapset"
)

// TooltipContextSystem Tooltip 交互状态机
//
// 每帧根据光标、经过的时间和交互栈推进 TooltipContext，
// 并在同一次 Update 中完成隐藏旧内容、显示新内容两个步骤。
//
// 执行顺序（每帧）:
//  1. 光标跟踪：重置延迟 / 距离关闭 / 更新激活点
//  2. 计时器递减（Inactive / Delayed），Delayed 计时结束进入 Active
//  3. 自顶向下扫描交互栈，只处理第一个命中的元素
//  4. 没有命中时回到 Inactive，并设置转移窗口
//  5. 比较前后的激活状态和目标，隐藏旧内容、显示新内容
//
// 上下文只由本系统写入；位置系统只读取。
type TooltipContextSystem struct {
	entityManager *ecs.EntityManager
	primary       components.PrimaryTooltip
	uiStack       *UIStack
	ctx           *TooltipContext

	// delayScale 激活延迟倍率（用户设置），在快照时生效
	delayScale float64

	// 本帧待处理的显示/隐藏（隐藏按实体去重）
	pendingHide mapset.Set[ecs.EntityID]
	pendingShow bool

	// OnTransition 状态或目标变化时的回调（可选，用于调试日志和验证工具）
	OnTransition func(TooltipTransition)
}

// NewTooltipContextSystem 创建 Tooltip 状态机系统
// 参数:
//   - em: 实体管理器
//   - primary: 主 Tooltip 实体（ContentPrimary 使用）
//   - stack: 交互栈，由命中检测系统每帧更新
func NewTooltipContextSystem(em *ecs.EntityManager, primary components.PrimaryTooltip, stack *UIStack) *TooltipContextSystem {
	return &TooltipContextSystem{
		entityManager: em,
		primary:       primary,
		uiStack:       stack,
		ctx:           NewTooltipContext(),
		delayScale:    1,
		pendingHide:   mapset.New[ecs.EntityID](),
	}
}

// Context 返回当前上下文（只读使用）
func (s *TooltipContextSystem) Context() *TooltipContext {
	return s.ctx
}

// Primary 返回主 Tooltip 实体
func (s *TooltipContextSystem) Primary() components.PrimaryTooltip {
	return s.primary
}

// SetDelayScale 设置激活延迟倍率（<= 0 视为 1）
// 只影响之后快照的 Tooltip
func (s *TooltipContextSystem) SetDelayScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	s.delayScale = scale
}

// Update 推进一帧
// 参数:
//   - deltaTime: 时间增量（秒），四舍五入为整数毫秒
func (s *TooltipContextSystem) Update(deltaTime float64) {
	elapsed := int(math.Round(deltaTime * 1000))
	if elapsed < 0 {
		elapsed = 0
	}
	s.UpdateMillis(elapsed)
}

// UpdateMillis 推进一帧，elapsed 为经过的毫秒数
func (s *TooltipContextSystem) UpdateMillis(elapsed int) {
	ctx := s.ctx
	oldState := ctx.State
	oldActive := ctx.State == TooltipActive
	oldTarget := ctx.Target
	oldEntity := contentEntity(ctx.Tooltip.Content, s.primary)

	s.trackCursor()

	// 转移窗口 / 激活延迟计时
	if ctx.State == TooltipInactive || ctx.State == TooltipDelayed {
		ctx.Timer -= elapsed
		if ctx.Timer < 0 {
			ctx.Timer = 0
		}
		if ctx.State == TooltipDelayed && ctx.Timer == 0 {
			ctx.State = TooltipActive
		}
	}

	found, refreshed := s.scanTargets()

	// 目标消失
	if !found && ctx.State != TooltipInactive {
		if ctx.State == TooltipActive || !ctx.Tooltip.Transfer.FromActive {
			ctx.Timer = ctx.Tooltip.Transfer.Timeout
		} else {
			ctx.Timer = 0
		}
		ctx.State = TooltipInactive
	}

	newActive := ctx.State == TooltipActive
	if oldActive != newActive || oldTarget != ctx.Target {
		s.pendingHide.Put(oldEntity)
		if newActive {
			s.pendingShow = true
		}
	} else if refreshed && newActive {
		s.refreshContent(oldEntity)
	}

	s.hideTooltips()
	s.showTooltip()

	if s.OnTransition != nil && (oldState != ctx.State || oldTarget != ctx.Target) {
		s.OnTransition(TooltipTransition{
			From:       oldState,
			To:         ctx.State,
			FromTarget: oldTarget,
			ToTarget:   ctx.Target,
		})
	}
}

// trackCursor 光标跟踪
// 只有第一个渲染到已聚焦窗口且光标在窗口内的相机参与
func (s *TooltipContextSystem) trackCursor() {
	ctx := s.ctx
	_, cursor, ok := focusedCursor(s.entityManager)
	if !ok {
		return
	}

	// 延迟期间光标移动：重新计时
	if ctx.CursorPos != cursor && ctx.State == TooltipDelayed && ctx.Tooltip.Activation.ResetDelayOnCursorMove {
		ctx.Timer = ctx.Tooltip.Activation.Delay
	}

	// 光标离开激活半径：关闭
	if ctx.State == TooltipActive && ctx.CursorPos.DistanceSquared(cursor) > ctx.Tooltip.Dismissal.OnDistance {
		ctx.State = TooltipDismissed
	}

	// 激活后固定激活点，除非 Tooltip 跟随光标
	if ctx.State != TooltipActive || ctx.FollowsCursor() {
		ctx.CursorPos = cursor
	}
}

// scanTargets 自顶向下扫描交互栈，处理第一个带 Tooltip 且正在交互的元素
// 返回:
//   - found: 是否找到目标
//   - refreshed: 是否为同一目标的持续悬停（快照已刷新）
func (s *TooltipContextSystem) scanTargets() (found bool, refreshed bool) {
	if s.uiStack == nil {
		return false, false
	}
	ctx := s.ctx
	nodes := s.uiStack.Nodes
	for i := len(nodes) - 1; i >= 0; i-- {
		entity := nodes[i]
		tooltip, ok := ecs.GetComponent[*components.TooltipComponent](s.entityManager, entity)
		if !ok {
			continue
		}
		interaction, ok := ecs.GetComponent[*components.InteractionComponent](s.entityManager, entity)
		if !ok {
			continue
		}

		switch interaction.State {
		case components.InteractionNone:
			continue
		case components.InteractionPressed:
			if tooltip.Dismissal.OnClick {
				ctx.Target = entity
				ctx.State = TooltipDismissed
				ctx.Tooltip.Transfer = tooltip.Transfer
				return true, false
			}
		}

		// 同一目标持续悬停：刷新快照，不重置状态和计时
		if ctx.State != TooltipInactive && ctx.Target == entity {
			ctx.Tooltip = s.snapshot(tooltip)
			return true, true
		}

		// 切换到新目标
		if tooltip.Activation.Delay == 0 || s.canTransfer(entity, tooltip) {
			ctx.State = TooltipActive
		} else {
			ctx.State = TooltipDelayed
		}
		ctx.Tooltip = s.snapshot(tooltip)
		ctx.Timer = ctx.Tooltip.Activation.Delay
		ctx.Target = entity
		return true, false
	}
	return false, false
}

// canTransfer 新目标是否可以跳过激活延迟
// 条件：处于转移窗口内，新目标层级不低于旧目标，并且同组（或回到旧目标自身）
func (s *TooltipContextSystem) canTransfer(entity ecs.EntityID, tooltip *components.TooltipComponent) bool {
	ctx := s.ctx
	if ctx.State != TooltipInactive || ctx.Timer <= 0 {
		return false
	}
	old := ctx.Tooltip.Transfer
	if tooltip.Transfer.Layer < old.Layer {
		return false
	}
	return old.SameGroup(tooltip.Transfer) || ctx.Target == entity
}

// snapshot 快照 Tooltip 组件
// 关闭距离存为平方，激活延迟乘以用户设置的倍率
func (s *TooltipContextSystem) snapshot(tooltip *components.TooltipComponent) components.TooltipComponent {
	snap := tooltip.Snapshot()
	snap.Dismissal.OnDistance *= snap.Dismissal.OnDistance
	if s.delayScale != 1 && snap.Activation.Delay > 0 {
		snap.Activation.Delay = int(math.Round(float64(snap.Activation.Delay) * s.delayScale))
	}
	return snap
}

// refreshContent 同一目标保持激活时同步内容
// 内容实体变化时（自定义实体被替换，或在主/自定义之间切换）走隐藏+显示；
// 否则直接把主 Tooltip 文本写入文本实体，不触发显示/隐藏
func (s *TooltipContextSystem) refreshContent(oldEntity ecs.EntityID) {
	content := &s.ctx.Tooltip.Content
	if newEntity := contentEntity(*content, s.primary); newEntity != oldEntity {
		s.pendingHide.Put(oldEntity)
		s.pendingShow = true
		return
	}
	if content.Kind != components.ContentPrimary {
		return
	}
	s.drainPrimaryText()
}

// drainPrimaryText 把快照中的主 Tooltip 文本移交给文本实体
func (s *TooltipContextSystem) drainPrimaryText() {
	content := &s.ctx.Tooltip.Content
	if text, ok := ecs.GetComponent[*components.TextComponent](s.entityManager, s.primary.Text); ok {
		if !text.Text.Equal(content.Text) {
			text.Text = content.Text
		}
	}
	content.Text = components.RichText{}
}

// hideTooltips 隐藏本帧待隐藏的内容实体（已销毁的实体忽略）
func (s *TooltipContextSystem) hideTooltips() {
	if s.pendingHide.Size() == 0 {
		return
	}
	s.pendingHide.Each(func(entity ecs.EntityID) {
		if vis, ok := ecs.GetComponent[*components.VisibilityComponent](s.entityManager, entity); ok {
			vis.Visibility = components.VisibilityHidden
		}
	})
	s.pendingHide = mapset.New[ecs.EntityID]()
}

// showTooltip 显示当前内容实体
// 主 Tooltip 内容会先写入文本实体，快照中的文本随之清空
func (s *TooltipContextSystem) showTooltip() {
	if !s.pendingShow {
		return
	}
	s.pendingShow = false

	content := s.ctx.Tooltip.Content
	entity := contentEntity(content, s.primary)
	if content.Kind == components.ContentPrimary {
		s.drainPrimaryText()
	}
	if vis, ok := ecs.GetComponent[*components.VisibilityComponent](s.entityManager, entity); ok {
		vis.Visibility = components.VisibilityVisible
	}
}
