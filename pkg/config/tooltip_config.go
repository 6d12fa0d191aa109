package config

import (
	"fmt"
	"image/color"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/decker502/hovertip/pkg/components"
	"github.com/decker502/hovertip/pkg/embedded"
	"github.com/decker502/hovertip/pkg/types"
	"gopkg.in/yaml.v3"
)

// TooltipConfig Tooltip 配置
//
// 包含主 Tooltip 的外观和各类预设的覆盖值。
// 预设覆盖按名称匹配（如 activation.idle、transfer.short、placement.cursor），
// 未出现的预设保持默认值。覆盖只进入 Presets 生成的预设表。
//
// 配置文件位置: data/tooltip_config.yaml
type TooltipConfig struct {
	// Primary 主 Tooltip 外观
	Primary PrimaryTooltipConfig `yaml:"primary"`

	// Activation 激活条件预设覆盖
	// key: 预设名称（immediate, short_delay, delay, long_delay, short_idle, idle, long_idle）
	Activation map[string]ActivationConfig `yaml:"activation"`

	// Transfer 转移条件预设覆盖
	// key: 预设名称（none, short）
	Transfer map[string]TransferConfig `yaml:"transfer"`

	// Placement 光标类位置预设覆盖
	// key: 预设名称（cursor_centered, cursor, follow_cursor_centered, follow_cursor）
	Placement map[string]PlacementConfig `yaml:"placement"`
}

// PrimaryTooltipConfig 主 Tooltip 外观配置
type PrimaryTooltipConfig struct {
	// Padding 内边距（如 "8px"、"1vw"）
	Padding string `yaml:"padding"`

	// BackgroundColor 背景色（#RRGGBB 或 #RRGGBBAA）
	BackgroundColor string `yaml:"backgroundColor"`

	// BorderColor 边框色，留空表示无边框
	BorderColor string `yaml:"borderColor"`

	// BorderWidth 边框宽度（像素）
	BorderWidth float64 `yaml:"borderWidth"`

	// ZIndex 绘制层级
	ZIndex int `yaml:"zIndex"`

	// MaxTextWidth 文本自动换行宽度（像素），0 表示不换行
	MaxTextWidth float64 `yaml:"maxTextWidth"`

	// FontSize 默认字号
	FontSize float64 `yaml:"fontSize"`

	// TextColor 默认文本颜色
	TextColor string `yaml:"textColor"`
}

// ActivationConfig 激活条件配置
type ActivationConfig struct {
	// Delay 激活延迟（毫秒）
	Delay int `yaml:"delay"`

	// ResetOnMove 延迟期间光标移动时重新计时
	ResetOnMove bool `yaml:"resetOnMove"`
}

// TransferConfig 转移条件配置
type TransferConfig struct {
	// Group 转移组，留空表示只能转移给自身
	Group *int8 `yaml:"group"`

	// Layer 转移层级
	Layer int8 `yaml:"layer"`

	// Timeout 转移窗口（毫秒）
	Timeout int `yaml:"timeout"`

	// FromActive 只有旧 Tooltip 已激活时才允许转移
	FromActive bool `yaml:"fromActive"`
}

// PlacementConfig 光标类位置预设的偏移和钳制配置
type PlacementConfig struct {
	// OffsetX, OffsetY 偏移（如 "16px"、"2vw"）
	OffsetX string `yaml:"offsetX"`
	OffsetY string `yaml:"offsetY"`

	// ClampPadding 四边钳制边距
	ClampPadding string `yaml:"clampPadding"`
}

// PrimaryTooltipStyle 解析后的主 Tooltip 外观
type PrimaryTooltipStyle struct {
	Padding      types.Val
	Background   color.Color
	Border       color.Color // nil 表示无边框
	BorderWidth  float64
	ZIndex       int
	MaxTextWidth float64
	Text         components.TextStyle
}

// DefaultTooltipConfig 返回默认配置（不覆盖任何预设）
func DefaultTooltipConfig() *TooltipConfig {
	return &TooltipConfig{
		Primary: PrimaryTooltipConfig{
			Padding:         "8px",
			BackgroundColor: "#33334CF2",
			ZIndex:          999,
			FontSize:        20,
			TextColor:       "#FFFFFF",
		},
	}
}

// LoadTooltipConfig 加载 Tooltip 配置
//
// 参数:
//   - path: 配置文件路径（如 "data/tooltip_config.yaml"）
//
// 返回:
//   - *TooltipConfig: 加载成功后的配置结构
//   - error: 加载失败时返回错误
func LoadTooltipConfig(path string) (*TooltipConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tooltip config: %w", err)
	}
	return ParseTooltipConfig(data)
}

// LoadEmbeddedTooltipConfig 从嵌入资源加载 Tooltip 配置
// 路径必须以 "data/" 开头（如 "data/tooltip_config.yaml"）
func LoadEmbeddedTooltipConfig(path string) (*TooltipConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded tooltip config: %w", err)
	}
	return ParseTooltipConfig(data)
}

// ParseTooltipConfig 从 YAML 数据解析 Tooltip 配置（用于嵌入资源）
// 未填写的主 Tooltip 字段使用默认值
func ParseTooltipConfig(data []byte) (*TooltipConfig, error) {
	config := DefaultTooltipConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse tooltip config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tooltip config: %w", err)
	}

	return config, nil
}

// Validate 验证配置有效性
//
// 检查:
//   - 颜色和尺寸字符串可以解析
//   - 数值非负
//   - 预设名称存在
//
// 返回:
//   - error: 验证失败时返回错误，成功返回 nil
func (c *TooltipConfig) Validate() error {
	if _, err := c.Primary.Style(); err != nil {
		return fmt.Errorf("primary: %w", err)
	}

	for _, name := range sortedKeys(c.Activation) {
		if c.Activation[name].Delay < 0 {
			return fmt.Errorf("activation %s: delay must be >= 0, got %d", name, c.Activation[name].Delay)
		}
	}

	for _, name := range sortedKeys(c.Transfer) {
		if c.Transfer[name].Timeout < 0 {
			return fmt.Errorf("transfer %s: timeout must be >= 0, got %d", name, c.Transfer[name].Timeout)
		}
	}

	if _, err := c.Presets(); err != nil {
		return err
	}

	return nil
}

// apply 在基础预设上应用偏移和钳制配置
func (p PlacementConfig) apply(base components.TooltipPlacement) (components.TooltipPlacement, error) {
	if p.OffsetX != "" {
		v, err := types.ParseVal(p.OffsetX)
		if err != nil {
			return base, fmt.Errorf("offsetX: %w", err)
		}
		base.OffsetX = v
	}
	if p.OffsetY != "" {
		v, err := types.ParseVal(p.OffsetY)
		if err != nil {
			return base, fmt.Errorf("offsetY: %w", err)
		}
		base.OffsetY = v
	}
	if p.ClampPadding != "" {
		v, err := types.ParseVal(p.ClampPadding)
		if err != nil {
			return base, fmt.Errorf("clampPadding: %w", err)
		}
		base.ClampPadding = types.UIRectAll(v)
	}
	return base, nil
}

// Style 解析主 Tooltip 外观
func (p PrimaryTooltipConfig) Style() (PrimaryTooltipStyle, error) {
	style := PrimaryTooltipStyle{
		Padding:      types.Px(8),
		BorderWidth:  p.BorderWidth,
		ZIndex:       p.ZIndex,
		MaxTextWidth: p.MaxTextWidth,
		Text:         components.DefaultTextStyle(),
	}

	if p.Padding != "" {
		v, err := types.ParseVal(p.Padding)
		if err != nil {
			return style, fmt.Errorf("padding: %w", err)
		}
		style.Padding = v
	}

	bg, err := ParseColor(p.BackgroundColor)
	if err != nil {
		return style, fmt.Errorf("backgroundColor: %w", err)
	}
	style.Background = bg

	if p.BorderColor != "" {
		border, err := ParseColor(p.BorderColor)
		if err != nil {
			return style, fmt.Errorf("borderColor: %w", err)
		}
		style.Border = border
	}

	if p.TextColor != "" {
		textColor, err := ParseColor(p.TextColor)
		if err != nil {
			return style, fmt.Errorf("textColor: %w", err)
		}
		style.Text.Color = textColor
	}

	if p.FontSize < 0 || p.BorderWidth < 0 || p.MaxTextWidth < 0 {
		return style, fmt.Errorf("fontSize, borderWidth and maxTextWidth must be >= 0")
	}
	if p.FontSize > 0 {
		style.Text.FontSize = p.FontSize
	}

	return style, nil
}

// ParseColor 解析 #RRGGBB 或 #RRGGBBAA 格式的颜色
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: expected #RRGGBB or #RRGGBBAA", s)
	}
	if len(hex) == 6 {
		hex += "FF"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// sortedKeys 返回排序后的 map 键（保证错误信息和覆盖顺序稳定）
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
