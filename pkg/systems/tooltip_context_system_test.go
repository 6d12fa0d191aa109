package systems

import (
	"math"
	"testing"

	"github.com/decker502/hovertip/pkg/components"
	"github.com/decker502/hovertip/pkg/ecs"
	"github.com/decker502/hovertip/pkg/types"
)

// TestTooltipDelayActivation 悬停恰好累计 D 毫秒时进入 Active，不会更早
func TestTooltipDelayActivation(t *testing.T) {
	tests := []struct {
		name       string
		frameMs    int
		activateAt int // 首次 Active 的累计时间
	}{
		{"50ms 帧", 50, 200},
		{"40ms 帧", 40, 200},
		{"30ms 帧（跨过 200）", 30, 210},
		{"单帧 200ms", 200, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTooltipHarness(t, 400, 300)
			tooltip := components.NewTextTooltip("tip").WithActivation(components.ActivationShortDelay)
			h.addTarget(100, 100, 40, 40, tooltip)

			h.moveCursor(120, 120)
			h.step(0)
			h.expectState(TooltipDelayed)

			for elapsed := tt.frameMs; elapsed < tt.activateAt; elapsed += tt.frameMs {
				h.step(tt.frameMs)
				h.expectState(TooltipDelayed)
			}
			h.step(tt.frameMs)
			h.expectState(TooltipActive)
		})
	}
}

// TestTooltipResetDelayOnCursorMove 延迟期间移动光标会把倒计时重置为完整延迟
func TestTooltipResetDelayOnCursorMove(t *testing.T) {
	h := newTooltipHarness(t, 400, 300)
	tooltip := components.NewTextTooltip("tip").WithActivation(components.ActivationShortIdle)
	h.addTarget(100, 100, 40, 40, tooltip)

	h.moveCursor(120, 120)
	h.step(0)
	h.step(50)
	h.step(50)
	h.step(50)
	if got := h.ctx().Timer; got != 50 {
		t.Fatalf("timer before move = %d, want 50", got)
	}

	// 移动光标（仍在元素内），本帧不计时：倒计时回到完整延迟
	h.moveCursor(125, 121)
	h.step(0)
	if got := h.ctx().Timer; got != 200 {
		t.Fatalf("timer after move = %d, want 200", got)
	}
	h.expectState(TooltipDelayed)

	for i := 0; i < 3; i++ {
		h.step(50)
		h.expectState(TooltipDelayed)
	}
	h.step(50)
	h.expectState(TooltipActive)
}

// TestTooltipNoResetWithoutIdle 未设置重置时移动光标不影响倒计时
func TestTooltipNoResetWithoutIdle(t *testing.T) {
	h := newTooltipHarness(t, 400, 300)
	tooltip := components.NewTextTooltip("tip").WithActivation(components.ActivationShortDelay)
	h.addTarget(100, 100, 40, 40, tooltip)

	h.moveCursor(120, 120)
	h.step(0)
	h.step(100)
	h.moveCursor(130, 130)
	h.step(50)
	if got := h.ctx().Timer; got != 50 {
		t.Fatalf("timer = %d, want 50", got)
	}
	h.step(50)
	h.expectState(TooltipActive)
}

// TestTooltipDismissalByDistance 光标离开激活半径时关闭，离开元素后回到 Inactive
func TestTooltipDismissalByDistance(t *testing.T) {
	h := newTooltipHarness(t, 400, 300)
	tooltip := components.NewTextTooltip("tip").
		WithActivation(components.ActivationImmediate).
		WithDismissal(components.TooltipDismissal{OnDistance: 10})
	target := h.addTarget(100, 100, 40, 40, tooltip)

	h.moveCursor(120, 120)
	h.step(16)
	h.expectState(TooltipActive)
	if h.visibility(h.primary.Container) != components.VisibilityVisible {
		t.Fatalf("primary tooltip should be visible")
	}
	// 平方距离阈值
	if got := h.ctx().Tooltip.Dismissal.OnDistance; got != 100 {
		t.Errorf("stored dismissal distance = %v, want 100 (squared)", got)
	}

	// 半径内移动：保持激活，激活点不变
	h.moveCursor(125, 120)
	h.step(16)
	h.expectState(TooltipActive)
	if got := h.ctx().CursorPos; got != types.NewVec2(120, 120) {
		t.Errorf("activation point = %+v, want (120, 120)", got)
	}

	// 超出半径：关闭，但目标不变
	h.moveCursor(131, 120)
	h.step(16)
	h.expectState(TooltipDismissed)
	if h.ctx().Target != target {
		t.Errorf("target changed on dismissal")
	}
	if h.visibility(h.primary.Container) != components.VisibilityHidden {
		t.Errorf("primary tooltip should be hidden after dismissal")
	}

	// 仍悬停在同一目标上：保持关闭
	h.step(16)
	h.expectState(TooltipDismissed)

	// 离开目标
	h.moveCursor(300, 250)
	h.step(16)
	h.expectState(TooltipInactive)
	if got := h.ctx().Timer; got != 0 {
		t.Errorf("timer after leaving dismissed target = %d, want 0", got)
	}
}

// TestTooltipDismissalOnClick 按下目标时关闭，直到目标改变
func TestTooltipDismissalOnClick(t *testing.T) {
	h := newTooltipHarness(t, 400, 300)
	tooltip := components.NewTextTooltip("tip").WithActivation(components.ActivationImmediate)
	h.addTarget(100, 100, 40, 40, tooltip)

	h.moveCursor(120, 120)
	h.step(16)
	h.expectState(TooltipActive)

	h.setPressed(true)
	h.step(16)
	h.expectState(TooltipDismissed)
	if h.visibility(h.primary.Container) != components.VisibilityHidden {
		t.Errorf("primary tooltip should be hidden after click")
	}

	// 松开后仍然悬停：不重新激活
	h.setPressed(false)
	h.step(16)
	h.step(1000)
	h.expectState(TooltipDismissed)

	// 离开再回来：重新激活
	h.moveCursor(300, 250)
	h.step(16)
	h.expectState(TooltipInactive)
	h.moveCursor(120, 120)
	h.step(16)
	h.expectState(TooltipActive)
}

// TestTooltipPressWithoutClickDismissal 没有点击关闭时按下等同于悬停
func TestTooltipPressWithoutClickDismissal(t *testing.T) {
	h := newTooltipHarness(t, 400, 300)
	tooltip := components.NewTextTooltip("tip").
		WithActivation(components.ActivationImmediate).
		WithDismissal(components.DismissalNone)
	h.addTarget(100, 100, 40, 40, tooltip)

	h.moveCursor(120, 120)
	h.setPressed(true)
	h.step(16)
	h.expectState(TooltipActive)
}

// transferHarness 创建相邻的 A、B 两个元素（中间有空隙），A 已激活
func transferHarness(t *testing.T, a, b components.TooltipTransfer) (*tooltipHarness, ecs.EntityID, ecs.EntityID) {
	t.Helper()
	h := newTooltipHarness(t, 400, 300)
	tipA := components.NewTextTooltip("A").WithActivation(components.ActivationDelay).WithTransfer(a)
	tipB := components.NewTextTooltip("B").WithActivation(components.ActivationDelay).WithTransfer(b)
	entityA := h.addTarget(100, 100, 40, 40, tipA)
	entityB := h.addTarget(160, 100, 40, 40, tipB)

	h.moveCursor(120, 120)
	h.step(0)
	h.step(400)
	h.expectState(TooltipActive)
	if h.ctx().Target != entityA {
		t.Fatalf("target = %d, want A (%d)", h.ctx().Target, entityA)
	}
	return h, entityA, entityB
}

// TestTooltipTransferWithinTimeout 超时前进入同组元素时立即激活
func TestTooltipTransferWithinTimeout(t *testing.T) {
	h, _, entityB := transferHarness(t, components.TransferShort, components.TransferShort)

	// 进入空隙：回到 Inactive，开启转移窗口
	h.moveCursor(150, 120)
	h.step(20)
	h.expectState(TooltipInactive)
	if got := h.ctx().Timer; got != 100 {
		t.Fatalf("transfer window = %d, want 100", got)
	}

	h.moveCursor(180, 120)
	h.step(20)
	h.expectState(TooltipActive)
	if h.ctx().Target != entityB {
		t.Errorf("target = %d, want B (%d)", h.ctx().Target, entityB)
	}
	if got := h.primaryText(); got != "B" {
		t.Errorf("primary text = %q, want %q", got, "B")
	}
}

// TestTooltipTransferAfterTimeout 超时后进入同组元素时使用自身延迟
func TestTooltipTransferAfterTimeout(t *testing.T) {
	h, _, _ := transferHarness(t, components.TransferShort, components.TransferShort)

	h.moveCursor(150, 120)
	h.step(20)
	h.step(60)
	h.step(60)
	if got := h.ctx().Timer; got != 0 {
		t.Fatalf("transfer window = %d, want 0", got)
	}

	h.moveCursor(180, 120)
	h.step(20)
	h.expectState(TooltipDelayed)
	if got := h.ctx().Timer; got != 400 {
		t.Errorf("timer = %d, want full delay 400", got)
	}
}

// TestTooltipTransferGroups 不同组或未设置组时不转移
func TestTooltipTransferGroups(t *testing.T) {
	tests := []struct {
		name string
		a, b components.TooltipTransfer
		want TooltipState
	}{
		{"同组", components.TransferShort, components.TransferShort, TooltipActive},
		{"不同组", components.TransferShort, components.TransferShort.WithGroup(1), TooltipDelayed},
		{"新目标无组", components.TransferShort, components.TooltipTransfer{Timeout: 100, FromActive: true}, TooltipDelayed},
		{"旧目标不转移", components.TransferNone, components.TransferShort, TooltipDelayed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, _ := transferHarness(t, tt.a, tt.b)
			h.moveCursor(150, 120)
			h.step(20)
			h.moveCursor(180, 120)
			h.step(20)
			h.expectState(tt.want)
		})
	}
}

// TestTooltipTransferLayerGating 只能转移到层级不低于旧目标的元素
func TestTooltipTransferLayerGating(t *testing.T) {
	tests := []struct {
		name   string
		layerA int8
		layerB int8
		want   TooltipState
	}{
		{"1 -> 0 拒绝", 1, 0, TooltipDelayed},
		{"0 -> 1 允许", 0, 1, TooltipActive},
		{"同层允许", 1, 1, TooltipActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, _ := transferHarness(t,
				components.TransferShort.WithLayer(tt.layerA),
				components.TransferShort.WithLayer(tt.layerB))
			h.moveCursor(150, 120)
			h.step(20)
			h.moveCursor(180, 120)
			h.step(20)
			h.expectState(tt.want)
		})
	}
}

// TestTooltipTransferFromDelayed 旧 Tooltip 未激活时，FromActive 决定是否开启转移窗口
func TestTooltipTransferFromDelayed(t *testing.T) {
	tests := []struct {
		name       string
		fromActive bool
		wantTimer  int
	}{
		{"需要已激活", true, 0},
		{"不需要已激活", false, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTooltipHarness(t, 400, 300)
			transfer := components.TransferShort
			transfer.FromActive = tt.fromActive
			h.addTarget(100, 100, 40, 40, components.NewTextTooltip("A").
				WithActivation(components.ActivationDelay).WithTransfer(transfer))

			h.moveCursor(120, 120)
			h.step(0)
			h.expectState(TooltipDelayed)

			h.moveCursor(300, 250)
			h.step(16)
			h.expectState(TooltipInactive)
			if got := h.ctx().Timer; got != tt.wantTimer {
				t.Errorf("timer = %d, want %d", got, tt.wantTimer)
			}
		})
	}
}

// TestTooltipIdempotentRehover 持续悬停时不重置计时、不重新显示/隐藏，但同步内容
func TestTooltipIdempotentRehover(t *testing.T) {
	h := newTooltipHarness(t, 400, 300)
	tooltip := components.NewTextTooltip("first").WithActivation(components.ActivationShortDelay)
	h.addTarget(100, 100, 40, 40, tooltip)

	var transitions []TooltipTransition
	h.context.OnTransition = func(tr TooltipTransition) {
		transitions = append(transitions, tr)
	}

	h.moveCursor(120, 120)
	h.step(0)
	h.step(200)
	h.expectState(TooltipActive)
	if got := h.primaryText(); got != "first" {
		t.Fatalf("primary text = %q, want %q", got, "first")
	}
	if len(transitions) != 2 {
		t.Fatalf("transitions = %d, want 2 (Inactive->Delayed->Active)", len(transitions))
	}

	// 显示/隐藏都会写 Visibility；改成 Inherited 作为哨兵
	vis, _ := ecs.GetComponent[*components.VisibilityComponent](h.em, h.primary.Container)
	vis.Visibility = components.VisibilityInherited

	for i := 0; i < 5; i++ {
		h.step(16)
		h.expectState(TooltipActive)
	}
	if got := h.visibility(h.primary.Container); got != components.VisibilityInherited {
		t.Errorf("visibility was rewritten: %v", got)
	}
	if len(transitions) != 2 {
		t.Errorf("unexpected transitions while hovering: %+v", transitions[2:])
	}
	if got := h.ctx().Timer; got != 0 {
		t.Errorf("timer = %d, want 0", got)
	}

	// 应用修改文本：下一帧同步到主 Tooltip
	tooltip.Content = components.TextContent("second")
	h.step(16)
	h.expectState(TooltipActive)
	if got := h.primaryText(); got != "second" {
		t.Errorf("primary text = %q, want %q", got, "second")
	}
	if got := h.visibility(h.primary.Container); got != components.VisibilityInherited {
		t.Errorf("content update should not trigger hide/show, visibility = %v", got)
	}
}

// TestTooltipRehoverKeepsTimer 持续悬停时刷新快照，但不会按新的延迟重新计时
func TestTooltipRehoverKeepsTimer(t *testing.T) {
	h := newTooltipHarness(t, 400, 300)
	tooltip := components.NewTextTooltip("tip").WithActivation(components.ActivationShortDelay)
	h.addTarget(100, 100, 40, 40, tooltip)

	h.moveCursor(120, 120)
	h.step(0)
	tooltip.Activation.Delay = 5000
	h.step(100)
	if got := h.ctx().Timer; got != 100 {
		t.Errorf("timer = %d, want 100", got)
	}
}

// TestTooltipCustomContent 自定义内容实体的显示、隐藏和替换
func TestTooltipCustomContent(t *testing.T) {
	h := newTooltipHarness(t, 400, 300)

	newCustom := func() ecs.EntityID {
		entity := h.em.CreateEntity()
		node := components.NewAbsoluteNode(0, 0, 80, 30)
		ecs.AddComponent(h.em, entity, node)
		ecs.AddComponent(h.em, entity, &components.VisibilityComponent{Visibility: components.VisibilityHidden})
		return entity
	}
	custom := newCustom()
	tooltip := components.NewCustomTooltip(custom).WithActivation(components.ActivationImmediate)
	h.addTarget(100, 100, 40, 40, tooltip)

	h.moveCursor(120, 120)
	h.step(16)
	h.expectState(TooltipActive)
	if h.visibility(custom) != components.VisibilityVisible {
		t.Fatalf("custom tooltip should be visible")
	}
	if h.visibility(h.primary.Container) != components.VisibilityHidden {
		t.Errorf("primary tooltip should stay hidden")
	}
	if camera, ok := ecs.GetComponent[*components.TargetCameraComponent](h.em, custom); !ok || camera.Camera != h.camera {
		t.Errorf("custom tooltip should be associated with the target camera")
	}

	// 替换自定义实体：隐藏旧的，显示新的
	replacement := newCustom()
	tooltip.Content = components.CustomContent(replacement)
	h.step(16)
	if h.visibility(custom) != components.VisibilityHidden {
		t.Errorf("old custom tooltip should be hidden")
	}
	if h.visibility(replacement) != components.VisibilityVisible {
		t.Errorf("replacement custom tooltip should be visible")
	}

	// 离开：隐藏
	h.moveCursor(300, 250)
	h.step(16)
	h.expectState(TooltipInactive)
	if h.visibility(replacement) != components.VisibilityHidden {
		t.Errorf("custom tooltip should be hidden after leaving")
	}
}

// TestTooltipDespawnedContent 内容实体被销毁时静默跳过
func TestTooltipDespawnedContent(t *testing.T) {
	h := newTooltipHarness(t, 400, 300)
	custom := h.em.CreateEntity()
	ecs.AddComponent(h.em, custom, &components.VisibilityComponent{Visibility: components.VisibilityHidden})
	h.addTarget(100, 100, 40, 40, components.NewCustomTooltip(custom).WithActivation(components.ActivationImmediate))

	h.em.DestroyEntity(custom)
	h.em.RemoveMarkedEntities()

	h.moveCursor(120, 120)
	h.step(16)
	h.expectState(TooltipActive)

	h.moveCursor(300, 250)
	h.step(16)
	h.expectState(TooltipInactive)
}

// TestTooltipTopmostTargetWins 重叠元素只处理最上层的
func TestTooltipTopmostTargetWins(t *testing.T) {
	h := newTooltipHarness(t, 400, 300)
	h.addTarget(100, 100, 100, 100, components.NewTextTooltip("below").WithActivation(components.ActivationImmediate))
	top := h.addTarget(120, 120, 40, 40, components.NewTextTooltip("above").WithActivation(components.ActivationImmediate))

	h.moveCursor(130, 130)
	h.step(16)
	h.expectState(TooltipActive)
	if h.ctx().Target != top {
		t.Errorf("target = %d, want topmost %d", h.ctx().Target, top)
	}
	if got := h.primaryText(); got != "above" {
		t.Errorf("primary text = %q, want %q", got, "above")
	}
}

// TestTooltipUnfocusedWindow 窗口失去焦点时不跟踪光标
func TestTooltipUnfocusedWindow(t *testing.T) {
	h := newTooltipHarness(t, 400, 300)
	h.addTarget(100, 100, 40, 40, components.NewTextTooltip("tip").WithActivation(components.ActivationShortIdle))

	h.moveCursor(120, 120)
	h.step(0)
	h.step(50)
	h.windowComp().Focused = false
	h.windowComp().SetCursor(121, 121)
	h.context.UpdateMillis(50)
	if got := h.ctx().Timer; got != 100 {
		t.Errorf("timer = %d, want 100 (cursor move ignored while unfocused)", got)
	}
	if got := h.ctx().CursorPos; got != types.NewVec2(120, 120) {
		t.Errorf("cursor = %+v, want (120, 120)", got)
	}
}

// TestTooltipDelayScale 延迟倍率在快照时生效
func TestTooltipDelayScale(t *testing.T) {
	h := newTooltipHarness(t, 400, 300)
	h.context.SetDelayScale(0.5)
	h.addTarget(100, 100, 40, 40, components.NewTextTooltip("tip").WithActivation(components.ActivationDelay))

	h.moveCursor(120, 120)
	h.step(0)
	if got := h.ctx().Timer; got != 200 {
		t.Fatalf("timer = %d, want 200", got)
	}
	h.step(200)
	h.expectState(TooltipActive)

	h.context.SetDelayScale(-1)
	if h.context.delayScale != 1 {
		t.Errorf("non-positive scale should reset to 1, got %v", h.context.delayScale)
	}
}

// TestTooltipUpdateSeconds 秒转换为四舍五入的毫秒
func TestTooltipUpdateSeconds(t *testing.T) {
	h := newTooltipHarness(t, 400, 300)
	h.addTarget(100, 100, 40, 40, components.NewTextTooltip("tip").WithActivation(components.ActivationShortDelay))

	h.moveCursor(120, 120)
	h.interaction.Update()
	h.context.Update(0)
	h.context.Update(1.0 / 60) // 16.67ms -> 17
	if got := h.ctx().Timer; got != 183 {
		t.Errorf("timer = %d, want 183", got)
	}
	h.context.Update(-1)
	if got := h.ctx().Timer; got != 183 {
		t.Errorf("negative dt should not change timer, got %d", got)
	}
}

// TestTooltipContextDefaults 初始上下文
func TestTooltipContextDefaults(t *testing.T) {
	ctx := NewTooltipContext()
	if ctx.State != TooltipInactive || ctx.Target != ecs.InvalidEntity || ctx.Timer != 0 {
		t.Errorf("unexpected initial context: %+v", ctx)
	}
	if ctx.IsActive() || ctx.FollowsCursor() {
		t.Errorf("initial context should be inactive and not follow the cursor")
	}
	if !math.IsInf(ctx.Tooltip.Dismissal.OnDistance, 1) {
		t.Errorf("initial dismissal distance should be +Inf")
	}

	names := map[TooltipState]string{
		TooltipInactive:  "Inactive",
		TooltipDelayed:   "Delayed",
		TooltipActive:    "Active",
		TooltipDismissed: "Dismissed",
	}
	for state, want := range names {
		if got := state.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", state, got, want)
		}
	}
}
