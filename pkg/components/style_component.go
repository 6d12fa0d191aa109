package components

import "image/color"

// BackgroundComponent 节点背景
type BackgroundComponent struct {
	Color color.Color
}

// BorderComponent 节点边框
//
// 样式参考：
//   - 边框色: 黑色或白色
//   - 宽度: 1-4px 实线
type BorderComponent struct {
	Color color.Color
	Width float64
}
