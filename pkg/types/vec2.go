// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "math"

// Vec2 二维向量（屏幕坐标系：原点左上角，Y 轴向下）
type Vec2 struct {
	X float64
	Y float64
}

// NewVec2 创建二维向量
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add 向量相加
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub 向量相减
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul 逐分量相乘
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{X: v.X * o.X, Y: v.Y * o.Y}
}

// Scale 标量缩放
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// DistanceSquared 返回两点距离的平方
func (v Vec2) DistanceSquared(o Vec2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

// Clamp 将每个分量独立限制在 [lo, hi] 范围内
// 注意：调用方需保证 lo <= hi
func (v Vec2) Clamp(lo, hi Vec2) Vec2 {
	return Vec2{
		X: math.Max(lo.X, math.Min(hi.X, v.X)),
		Y: math.Max(lo.Y, math.Min(hi.Y, v.Y)),
	}
}

// Rect 轴对齐矩形
type Rect struct {
	Min Vec2
	Max Vec2
}

// NewRect 根据左上角和尺寸创建矩形
func NewRect(x, y, width, height float64) Rect {
	return Rect{
		Min: Vec2{X: x, Y: y},
		Max: Vec2{X: x + width, Y: y + height},
	}
}

// Size 返回矩形尺寸
func (r Rect) Size() Vec2 {
	return r.Max.Sub(r.Min)
}

// Center 返回矩形中心点
func (r Rect) Center() Vec2 {
	return Vec2{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Contains 检查点是否在矩形内（包含边界）
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}
