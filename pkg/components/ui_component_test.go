package components

import (
	"testing"

	"github.com/decker502/hovertip/pkg/types"
)

// TestInteraction tests that Interaction constants and names are defined correctly.
func TestInteraction(t *testing.T) {
	tests := []struct {
		name  string
		state Interaction
		value int
		str   string
	}{
		{"InteractionNone should be 0", InteractionNone, 0, "None"},
		{"InteractionHovered should be 1", InteractionHovered, 1, "Hovered"},
		{"InteractionPressed should be 2", InteractionPressed, 2, "Pressed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if int(tt.state) != tt.value {
				t.Errorf("Expected %s to be %d, got %d", tt.name, tt.value, int(tt.state))
			}
			if tt.state.String() != tt.str {
				t.Errorf("Expected String() %q, got %q", tt.str, tt.state.String())
			}
		})
	}
}

// TestInteractionComponent tests the InteractionComponent defaults.
func TestInteractionComponent(t *testing.T) {
	component := InteractionComponent{}
	if component.State != InteractionNone {
		t.Errorf("Expected default state None, got %v", component.State)
	}
	if component.PassThrough {
		t.Error("Expected PassThrough to default to false")
	}
}

// TestNodeConstructors tests the node constructors.
func TestNodeConstructors(t *testing.T) {
	auto := NewNodeComponent()
	if auto.PositionType != PositionRelative {
		t.Errorf("Expected relative node, got %v", auto.PositionType)
	}
	if auto.Width != types.Auto || auto.Height != types.Auto {
		t.Errorf("Expected auto size, got %v x %v", auto.Width, auto.Height)
	}

	abs := NewAbsoluteNode(10, 20, 30, 40)
	if abs.PositionType != PositionAbsolute {
		t.Errorf("Expected absolute node, got %v", abs.PositionType)
	}
	if abs.Left != types.Px(10) || abs.Top != types.Px(20) || abs.Width != types.Px(30) || abs.Height != types.Px(40) {
		t.Errorf("Unexpected absolute node: %+v", abs)
	}
}

// TestUITransformRect tests the rect derived from the center translation.
func TestUITransformRect(t *testing.T) {
	transform := &UITransformComponent{Translation: types.NewVec2(50, 40)}
	got := transform.Rect(types.NewVec2(20, 10))
	want := types.NewRect(40, 35, 20, 10)
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

// TestWindowScale tests the effective window scale factor.
func TestWindowScale(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		want  float64
	}{
		{"unset scale defaults to 1", 0, 1},
		{"negative scale defaults to 1", -2, 1},
		{"explicit scale", 1.5, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &WindowComponent{ScaleFactor: tt.scale}
			if got := w.Scale(); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}

	w := &WindowComponent{}
	w.SetCursor(3, 4)
	if w.Cursor == nil || *w.Cursor != types.NewVec2(3, 4) {
		t.Errorf("Expected cursor (3, 4), got %v", w.Cursor)
	}
	w.ClearCursor()
	if w.Cursor != nil {
		t.Errorf("Expected no cursor, got %v", *w.Cursor)
	}
}
