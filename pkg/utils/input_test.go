package utils

import (
	"testing"
)

// TestPointerStateInBounds 测试指针边界判断
func TestPointerStateInBounds(t *testing.T) {
	tests := []struct {
		name   string
		state  PointerState
		width  float64
		height float64
		want   bool
	}{
		{"原点", PointerState{X: 0, Y: 0}, 400, 300, true},
		{"内部", PointerState{X: 120, Y: 120}, 400, 300, true},
		{"右边界外", PointerState{X: 400, Y: 10}, 400, 300, false},
		{"下边界外", PointerState{X: 10, Y: 300}, 400, 300, false},
		{"负坐标", PointerState{X: -1, Y: 10}, 400, 300, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.InBounds(tt.width, tt.height); got != tt.want {
				t.Errorf("InBounds() = %v, want %v", got, tt.want)
			}
		})
	}
}
