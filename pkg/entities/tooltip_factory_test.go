package entities

import (
	"testing"

	"github.com/decker502/hovertip/pkg/components"
	"github.com/decker502/hovertip/pkg/ecs"
	"github.com/decker502/hovertip/pkg/types"
)

func TestNewDefaultPrimaryTooltip(t *testing.T) {
	em := ecs.NewEntityManager()
	primary := NewDefaultPrimaryTooltip(em)

	node, ok := ecs.GetComponent[*components.NodeComponent](em, primary.Container)
	if !ok {
		t.Fatal("container should have NodeComponent")
	}
	if node.PositionType != components.PositionAbsolute {
		t.Errorf("container should be absolutely positioned")
	}
	if node.ZIndex != 999 {
		t.Errorf("expected zIndex 999, got %d", node.ZIndex)
	}
	if node.Padding != types.UIRectAll(types.Px(8)) {
		t.Errorf("expected 8px padding, got %+v", node.Padding)
	}

	vis, ok := ecs.GetComponent[*components.VisibilityComponent](em, primary.Container)
	if !ok || vis.Visibility != components.VisibilityHidden {
		t.Errorf("container should start hidden")
	}
	if !ecs.HasComponent[*components.BackgroundComponent](em, primary.Container) {
		t.Errorf("container should have a background")
	}
	if ecs.HasComponent[*components.BorderComponent](em, primary.Container) {
		t.Errorf("default style has no border")
	}

	parent, ok := ecs.GetComponent[*components.ParentComponent](em, primary.Text)
	if !ok || parent.Parent != primary.Container {
		t.Errorf("text should be a child of the container")
	}
	children, ok := ecs.GetComponent[*components.ChildrenComponent](em, primary.Container)
	if !ok || len(children.Children) != 1 || children.Children[0] != primary.Text {
		t.Errorf("container children = %+v", children)
	}
	if !ecs.HasComponent[*components.TextComponent](em, primary.Text) {
		t.Errorf("text entity should have TextComponent")
	}
}

func TestNewTooltipTarget(t *testing.T) {
	em := ecs.NewEntityManager()
	tooltip := components.NewTextTooltip("hello")
	entity := NewTooltipTarget(em, 10, 20, 30, 40, tooltip)

	node, ok := ecs.GetComponent[*components.NodeComponent](em, entity)
	if !ok {
		t.Fatal("target should have NodeComponent")
	}
	if node.Left != types.Px(10) || node.Top != types.Px(20) || node.Width != types.Px(30) || node.Height != types.Px(40) {
		t.Errorf("unexpected node geometry: %+v", node)
	}
	if !ecs.HasComponent[*components.InteractionComponent](em, entity) {
		t.Errorf("target should be interactive")
	}
	got, ok := ecs.GetComponent[*components.TooltipComponent](em, entity)
	if !ok || got != tooltip {
		t.Errorf("target should carry the given tooltip")
	}

	plain := NewTooltipTarget(em, 0, 0, 1, 1, nil)
	if ecs.HasComponent[*components.TooltipComponent](em, plain) {
		t.Errorf("nil tooltip should not add TooltipComponent")
	}
}

func TestAddChildAppends(t *testing.T) {
	em := ecs.NewEntityManager()
	parent := em.CreateEntity()
	a := em.CreateEntity()
	b := em.CreateEntity()

	AddChild(em, parent, a)
	AddChild(em, parent, b)

	children, _ := ecs.GetComponent[*components.ChildrenComponent](em, parent)
	if len(children.Children) != 2 || children.Children[0] != a || children.Children[1] != b {
		t.Errorf("children = %v, want [%d %d]", children.Children, a, b)
	}
}
