package config

import (
	"fmt"

	"github.com/decker502/hovertip/pkg/components"
)

// TooltipPresets 按名称查找的预设表
//
// 由 TooltipConfig.Presets 生成，包含 components 包的默认预设和配置中的覆盖值。
// 每个模块持有自己的预设表，components 包的预设变量保持不变。
type TooltipPresets struct {
	activation map[string]components.TooltipActivation
	transfer   map[string]components.TooltipTransfer
	placement  map[string]components.TooltipPlacement
}

// DefaultTooltipPresets 返回不含任何覆盖的预设表
func DefaultTooltipPresets() *TooltipPresets {
	p := &TooltipPresets{
		activation: make(map[string]components.TooltipActivation),
		transfer:   make(map[string]components.TooltipTransfer),
		placement:  make(map[string]components.TooltipPlacement),
	}
	for _, name := range components.ActivationPresetNames() {
		p.activation[name], _ = components.ActivationPreset(name)
	}
	for _, name := range components.TransferPresetNames() {
		p.transfer[name], _ = components.TransferPreset(name)
	}
	for _, name := range components.PlacementPresetNames() {
		p.placement[name], _ = components.PlacementPreset(name)
	}
	return p
}

// Presets 生成应用了配置覆盖的预设表
//
// 返回:
//   - *TooltipPresets: 新的预设表（每次调用都是独立副本）
//   - error: 预设名称未知或偏移值无法解析
func (c *TooltipConfig) Presets() (*TooltipPresets, error) {
	p := DefaultTooltipPresets()

	for _, name := range sortedKeys(c.Activation) {
		if _, ok := p.activation[name]; !ok {
			return nil, fmt.Errorf("unknown activation preset %q", name)
		}
		a := c.Activation[name]
		p.activation[name] = components.TooltipActivation{
			Delay:                  a.Delay,
			ResetDelayOnCursorMove: a.ResetOnMove,
		}
	}

	for _, name := range sortedKeys(c.Transfer) {
		if _, ok := p.transfer[name]; !ok {
			return nil, fmt.Errorf("unknown transfer preset %q", name)
		}
		t := c.Transfer[name]
		transfer := components.TooltipTransfer{
			Layer:      t.Layer,
			Timeout:    t.Timeout,
			FromActive: t.FromActive,
		}
		if t.Group != nil {
			transfer = transfer.WithGroup(*t.Group)
		}
		p.transfer[name] = transfer
	}

	for _, name := range sortedKeys(c.Placement) {
		base, ok := p.placement[name]
		if !ok || base.TargetPoint.Kind != components.TargetCursor {
			return nil, fmt.Errorf("unknown cursor placement preset %q", name)
		}
		placement, err := c.Placement[name].apply(base)
		if err != nil {
			return nil, fmt.Errorf("placement %s: %w", name, err)
		}
		p.placement[name] = placement
	}

	return p, nil
}

// Activation 根据名称获取激活条件
func (p *TooltipPresets) Activation(name string) (components.TooltipActivation, bool) {
	a, ok := p.activation[name]
	return a, ok
}

// Transfer 根据名称获取转移条件
func (p *TooltipPresets) Transfer(name string) (components.TooltipTransfer, bool) {
	t, ok := p.transfer[name]
	return t, ok
}

// Placement 根据名称获取位置（光标类预设或九个方位名称）
func (p *TooltipPresets) Placement(name string) (components.TooltipPlacement, bool) {
	pl, ok := p.placement[name]
	return pl, ok
}

// Dismissal 根据名称获取关闭条件（不可配置）
func (p *TooltipPresets) Dismissal(name string) (components.TooltipDismissal, bool) {
	return components.DismissalPreset(name)
}

// NewTooltip 创建使用本表默认预设的 Tooltip
// 与 components.NewTooltip 相同：光标处显示、idle 激活、点击关闭、不转移
func (p *TooltipPresets) NewTooltip(content components.TooltipContent) *components.TooltipComponent {
	tooltip := components.NewTooltip(content)
	tooltip.Placement = p.placement["cursor"]
	tooltip.Activation = p.activation["idle"]
	tooltip.Transfer = p.transfer["none"]
	return tooltip
}
