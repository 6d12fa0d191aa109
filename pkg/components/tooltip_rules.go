package components

import "math"

// TooltipActivation Tooltip 激活条件
type TooltipActivation struct {
	// Delay 悬停多久后激活（毫秒），0 表示立即激活
	Delay int
	// ResetDelayOnCursorMove 延迟期间光标移动时是否重新开始计时
	ResetDelayOnCursorMove bool
}

// 激活条件预设
var (
	// ActivationImmediate 悬停立即显示
	ActivationImmediate = TooltipActivation{Delay: 0}
	// ActivationShortDelay 悬停一小会儿后显示
	ActivationShortDelay = TooltipActivation{Delay: 200}
	// ActivationDelay 悬停一会儿后显示
	ActivationDelay = TooltipActivation{Delay: 400}
	// ActivationLongDelay 悬停较长时间后显示
	ActivationLongDelay = TooltipActivation{Delay: 600}
	// ActivationShortIdle 光标静止一小会儿后显示
	ActivationShortIdle = TooltipActivation{Delay: 200, ResetDelayOnCursorMove: true}
	// ActivationIdle 光标静止一会儿后显示
	ActivationIdle = TooltipActivation{Delay: 400, ResetDelayOnCursorMove: true}
	// ActivationLongIdle 光标静止较长时间后显示
	ActivationLongIdle = TooltipActivation{Delay: 600, ResetDelayOnCursorMove: true}
)

// TooltipDismissal Tooltip 关闭条件
type TooltipDismissal struct {
	// OnDistance 光标离开激活点超过该半径时关闭（像素），+Inf 表示从不
	OnDistance float64
	// OnClick 点击目标时立即关闭
	OnClick bool
}

// 关闭条件预设
var (
	// DismissalNone 不主动关闭
	DismissalNone = TooltipDismissal{OnDistance: math.Inf(1)}
	// DismissalOnClick 点击目标时关闭
	DismissalOnClick = TooltipDismissal{OnDistance: math.Inf(1), OnClick: true}
)

// TooltipTransfer Tooltip 转移条件
//
// 发生转移时，下一个 Tooltip 跳过激活延迟直接显示。
type TooltipTransfer struct {
	// HasGroup 为 false 时只能转移给自身
	HasGroup bool
	// Group 只在同组元素之间转移
	Group int8
	// Layer 只能转移到层级 >= 当前层级的元素（更具体的嵌套元素）
	Layer int8
	// Timeout 离开旧目标后多久内可以转移（毫秒）
	Timeout int
	// FromActive 只有旧 Tooltip 已激活时才允许转移
	FromActive bool
}

// 转移条件预设
var (
	// TransferNone 不转移
	TransferNone = TooltipTransfer{Timeout: 0, FromActive: true}
	// TransferShort 短时间内转移（组 0）
	TransferShort = TooltipTransfer{HasGroup: true, Group: 0, Timeout: 100, FromActive: true}
)

// WithGroup 设置转移组
func (t TooltipTransfer) WithGroup(group int8) TooltipTransfer {
	t.HasGroup = true
	t.Group = group
	return t
}

// WithLayer 设置转移层级
func (t TooltipTransfer) WithLayer(layer int8) TooltipTransfer {
	t.Layer = layer
	return t
}

// SameGroup 两个转移条件是否属于同一组（未设置组的不属于任何组）
func (t TooltipTransfer) SameGroup(o TooltipTransfer) bool {
	return t.HasGroup && o.HasGroup && t.Group == o.Group
}

// ActivationPreset 根据名称获取激活条件预设
func ActivationPreset(name string) (TooltipActivation, bool) {
	switch name {
	case "immediate":
		return ActivationImmediate, true
	case "short_delay":
		return ActivationShortDelay, true
	case "delay":
		return ActivationDelay, true
	case "long_delay":
		return ActivationLongDelay, true
	case "short_idle":
		return ActivationShortIdle, true
	case "idle":
		return ActivationIdle, true
	case "long_idle":
		return ActivationLongIdle, true
	}
	return TooltipActivation{}, false
}

// ActivationPresetNames 返回所有激活预设名称
func ActivationPresetNames() []string {
	return []string{"immediate", "short_delay", "delay", "long_delay", "short_idle", "idle", "long_idle"}
}

// TransferPreset 根据名称获取转移条件预设
func TransferPreset(name string) (TooltipTransfer, bool) {
	switch name {
	case "none":
		return TransferNone, true
	case "short":
		return TransferShort, true
	}
	return TooltipTransfer{}, false
}

// TransferPresetNames 返回所有转移预设名称
func TransferPresetNames() []string {
	return []string{"none", "short"}
}

// DismissalPreset 根据名称获取关闭条件预设
func DismissalPreset(name string) (TooltipDismissal, bool) {
	switch name {
	case "none":
		return DismissalNone, true
	case "on_click":
		return DismissalOnClick, true
	}
	return TooltipDismissal{}, false
}
