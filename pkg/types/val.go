package types

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValUnit 定义 Val 的单位
type ValUnit int

const (
	// ValAuto 自动（无法解析为具体数值）
	ValAuto ValUnit = iota
	// ValPx 逻辑像素（乘以缩放系数后得到物理像素）
	ValPx
	// ValPercent 相对于基准值的百分比
	ValPercent
	// ValVw 视口宽度的百分比
	ValVw
	// ValVh 视口高度的百分比
	ValVh
	// ValVMin 视口较短边的百分比
	ValVMin
	// ValVMax 视口较长边的百分比
	ValVMax
)

// ErrUnresolvable Val 无法解析为具体数值（如 Auto）
var ErrUnresolvable = errors.New("val cannot be resolved")

// Val 可解析的长度值（像素或百分比）
type Val struct {
	Unit  ValUnit
	Value float64
}

// 常用的 Val 构造函数
var (
	// Auto 自动
	Auto = Val{Unit: ValAuto}
	// Zero 零像素
	Zero = Val{Unit: ValPx}
)

// Px 创建像素值
func Px(v float64) Val { return Val{Unit: ValPx, Value: v} }

// Percent 创建百分比值
func Percent(v float64) Val { return Val{Unit: ValPercent, Value: v} }

// Vw 创建视口宽度百分比值
func Vw(v float64) Val { return Val{Unit: ValVw, Value: v} }

// Vh 创建视口高度百分比值
func Vh(v float64) Val { return Val{Unit: ValVh, Value: v} }

// VMin 创建视口短边百分比值
func VMin(v float64) Val { return Val{Unit: ValVMin, Value: v} }

// VMax 创建视口长边百分比值
func VMax(v float64) Val { return Val{Unit: ValVMax, Value: v} }

// Resolve 将 Val 解析为物理像素
//
// 参数:
//   - scale: 缩放系数（Px 会乘以该系数）
//   - base: Percent 的基准值
//   - viewport: 视口尺寸（Vw/Vh/VMin/VMax 的基准）
//
// 返回:
//   - float64: 解析后的像素值
//   - error: Auto 返回 ErrUnresolvable
func (v Val) Resolve(scale, base float64, viewport Vec2) (float64, error) {
	switch v.Unit {
	case ValPx:
		return v.Value * scale, nil
	case ValPercent:
		return base * v.Value / 100, nil
	case ValVw:
		return viewport.X * v.Value / 100, nil
	case ValVh:
		return viewport.Y * v.Value / 100, nil
	case ValVMin:
		return math.Min(viewport.X, viewport.Y) * v.Value / 100, nil
	case ValVMax:
		return math.Max(viewport.X, viewport.Y) * v.Value / 100, nil
	default:
		return 0, ErrUnresolvable
	}
}

// ResolveOrZero 解析 Val，无法解析时返回 0
func (v Val) ResolveOrZero(scale, base float64, viewport Vec2) float64 {
	resolved, err := v.Resolve(scale, base, viewport)
	if err != nil {
		return 0
	}
	return resolved
}

// String 返回 Val 的字符串表示（与 ParseVal 互逆）
func (v Val) String() string {
	switch v.Unit {
	case ValPx:
		return fmt.Sprintf("%gpx", v.Value)
	case ValPercent:
		return fmt.Sprintf("%g%%", v.Value)
	case ValVw:
		return fmt.Sprintf("%gvw", v.Value)
	case ValVh:
		return fmt.Sprintf("%gvh", v.Value)
	case ValVMin:
		return fmt.Sprintf("%gvmin", v.Value)
	case ValVMax:
		return fmt.Sprintf("%gvmax", v.Value)
	default:
		return "auto"
	}
}

// ParseVal 解析字符串形式的 Val
// 支持 "auto"、"16px"、"16"（视为像素）、"50%"、"10vw"、"10vh"、"5vmin"、"5vmax"
func ParseVal(s string) (Val, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "auto" {
		return Auto, nil
	}

	suffixes := []struct {
		suffix string
		unit   ValUnit
	}{
		{"vmin", ValVMin},
		{"vmax", ValVMax},
		{"px", ValPx},
		{"vw", ValVw},
		{"vh", ValVh},
		{"%", ValPercent},
	}

	unit := ValPx
	number := s
	for _, sf := range suffixes {
		if strings.HasSuffix(s, sf.suffix) {
			unit = sf.unit
			number = strings.TrimSpace(strings.TrimSuffix(s, sf.suffix))
			break
		}
	}

	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return Val{}, fmt.Errorf("invalid val %q: %w", s, err)
	}
	return Val{Unit: unit, Value: value}, nil
}

// UIRect 四边各自独立的 Val（用于内边距、钳制边距等）
type UIRect struct {
	Left   Val
	Right  Val
	Top    Val
	Bottom Val
}

// UIRectZero 四边均为 0 像素
var UIRectZero = UIRect{Left: Zero, Right: Zero, Top: Zero, Bottom: Zero}

// UIRectAll 四边使用相同的值
func UIRectAll(v Val) UIRect {
	return UIRect{Left: v, Right: v, Top: v, Bottom: v}
}
