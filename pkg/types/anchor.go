package types

// Anchor 归一化锚点向量，取值范围 [-1, 1]
//
// 采用数学坐标约定（Y 轴向上）：
//   - (-1,  1) 左上角
//   - ( 0,  0) 中心
//   - ( 1, -1) 右下角
//
// 与屏幕坐标（Y 轴向下）之间的转换由 Offset 完成。
type Anchor struct {
	X float64
	Y float64
}

// 九个方位锚点
var (
	AnchorTopLeft      = Anchor{X: -1, Y: 1}
	AnchorTopCenter    = Anchor{X: 0, Y: 1}
	AnchorTopRight     = Anchor{X: 1, Y: 1}
	AnchorCenterLeft   = Anchor{X: -1, Y: 0}
	AnchorCenter       = Anchor{X: 0, Y: 0}
	AnchorCenterRight  = Anchor{X: 1, Y: 0}
	AnchorBottomLeft   = Anchor{X: -1, Y: -1}
	AnchorBottomCenter = Anchor{X: 0, Y: -1}
	AnchorBottomRight  = Anchor{X: 1, Y: -1}
)

// Flip 返回关于中心对称的锚点（左上 -> 右下）
func (a Anchor) Flip() Anchor {
	return Anchor{X: -a.X, Y: -a.Y}
}

// Offset 返回锚点相对于矩形中心的屏幕坐标偏移
//
// 参数:
//   - size: 矩形尺寸
//
// 返回:
//   - Vec2: 屏幕坐标系（Y 轴向下）下的偏移量
func (a Anchor) Offset(size Vec2) Vec2 {
	return Vec2{
		X: size.X / 2 * a.X,
		Y: -size.Y / 2 * a.Y,
	}
}

// anchorNames 锚点名称表（用于配置文件和调试输出）
var anchorNames = map[string]Anchor{
	"top_left":      AnchorTopLeft,
	"top_center":    AnchorTopCenter,
	"top_right":     AnchorTopRight,
	"center_left":   AnchorCenterLeft,
	"center":        AnchorCenter,
	"center_right":  AnchorCenterRight,
	"bottom_left":   AnchorBottomLeft,
	"bottom_center": AnchorBottomCenter,
	"bottom_right":  AnchorBottomRight,
}

// AnchorByName 根据名称查找锚点
func AnchorByName(name string) (Anchor, bool) {
	a, ok := anchorNames[name]
	return a, ok
}

// AnchorNames 返回所有锚点名称（固定顺序：从左上到右下）
func AnchorNames() []string {
	return []string{
		"top_left", "top_center", "top_right",
		"center_left", "center", "center_right",
		"bottom_left", "bottom_center", "bottom_right",
	}
}
