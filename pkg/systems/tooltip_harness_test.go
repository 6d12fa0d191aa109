package systems

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/decker502/hovertip/pkg/components"
	"github.com/decker502/hovertip/pkg/ecs"
	"github.com/decker502/hovertip/pkg/entities"
	"github.com/decker502/hovertip/pkg/types"
)

// fixedTextMeasurer 等宽测试度量：每个字符宽度为字号的一半，行高等于字号
type fixedTextMeasurer struct{}

func (fixedTextMeasurer) MeasureText(rt components.RichText, maxWidth, scale float64) types.Vec2 {
	var size types.Vec2
	for _, section := range rt.Sections {
		fontSize := section.Style.FontSize * scale
		for i, line := range strings.Split(section.Value, "\n") {
			w := float64(utf8.RuneCountInString(line)) * fontSize / 2
			if w > size.X {
				size.X = w
			}
			if i == 0 && size.Y < fontSize {
				size.Y = fontSize
			} else if i > 0 {
				size.Y += fontSize
			}
		}
	}
	return size
}

// tooltipHarness 无界面的完整 Tooltip 管线
// 每帧顺序：命中检测 → 状态机 → 布局 → 位置
type tooltipHarness struct {
	t           *testing.T
	em          *ecs.EntityManager
	window      ecs.EntityID
	camera      ecs.EntityID
	primary     components.PrimaryTooltip
	stack       *UIStack
	interaction *UIInteractionSystem
	context     *TooltipContextSystem
	layout      *UILayoutSystem
	placement   *TooltipPlacementSystem
	elapsed     int
}

// newTooltipHarness 创建一个 width x height 的单窗口单相机环境
func newTooltipHarness(t *testing.T, width, height float64) *tooltipHarness {
	t.Helper()
	em := ecs.NewEntityManager()

	window := em.CreateEntity()
	ecs.AddComponent(em, window, &components.WindowComponent{
		Primary:     true,
		Focused:     true,
		Width:       width,
		Height:      height,
		ScaleFactor: 1,
	})
	camera := em.CreateEntity()
	ecs.AddComponent(em, camera, &components.CameraComponent{Window: window, IsDefaultUI: true})

	primary := entities.NewDefaultPrimaryTooltip(em)
	stack := &UIStack{}
	layout := NewUILayoutSystem(em, fixedTextMeasurer{})
	context := NewTooltipContextSystem(em, primary, stack)

	return &tooltipHarness{
		t:           t,
		em:          em,
		window:      window,
		camera:      camera,
		primary:     primary,
		stack:       stack,
		interaction: NewUIInteractionSystem(em, stack),
		context:     context,
		layout:      layout,
		placement:   NewTooltipPlacementSystem(em, context, layout),
	}
}

// addTarget 添加一个带 Tooltip 的元素并立即布局
func (h *tooltipHarness) addTarget(x, y, w, hgt float64, tooltip *components.TooltipComponent) ecs.EntityID {
	entity := entities.NewTooltipTarget(h.em, x, y, w, hgt, tooltip)
	h.layout.Update()
	return entity
}

// windowComp 返回窗口组件
func (h *tooltipHarness) windowComp() *components.WindowComponent {
	w, ok := ecs.GetComponent[*components.WindowComponent](h.em, h.window)
	if !ok {
		h.t.Fatal("window component missing")
	}
	return w
}

func (h *tooltipHarness) moveCursor(x, y float64) {
	h.windowComp().SetCursor(x, y)
}

func (h *tooltipHarness) clearCursor() {
	h.windowComp().ClearCursor()
}

func (h *tooltipHarness) setPressed(pressed bool) {
	h.windowComp().Pressed = pressed
}

// step 推进一帧
func (h *tooltipHarness) step(ms int) {
	h.elapsed += ms
	h.interaction.Update()
	h.context.UpdateMillis(ms)
	h.layout.Update()
	h.placement.Update()
}

// ctx 返回状态机上下文
func (h *tooltipHarness) ctx() *TooltipContext {
	return h.context.Context()
}

// expectState 断言当前状态
func (h *tooltipHarness) expectState(want TooltipState) {
	h.t.Helper()
	if got := h.ctx().State; got != want {
		h.t.Fatalf("t=%dms: state = %v, want %v", h.elapsed, got, want)
	}
}

// visibility 返回实体的可见性
func (h *tooltipHarness) visibility(entity ecs.EntityID) components.Visibility {
	vis, ok := ecs.GetComponent[*components.VisibilityComponent](h.em, entity)
	if !ok {
		return components.VisibilityInherited
	}
	return vis.Visibility
}

// topLeft 返回节点的视口左上角
func (h *tooltipHarness) topLeft(entity ecs.EntityID) types.Vec2 {
	h.t.Helper()
	transform, ok := ecs.GetComponent[*components.UITransformComponent](h.em, entity)
	if !ok {
		h.t.Fatalf("entity %d has no transform", entity)
	}
	computed, ok := ecs.GetComponent[*components.ComputedNodeComponent](h.em, entity)
	if !ok {
		h.t.Fatalf("entity %d has no computed size", entity)
	}
	return transform.Rect(computed.Size).Min
}

// primaryText 返回主 Tooltip 文本节点当前显示的内容
func (h *tooltipHarness) primaryText() string {
	text, ok := ecs.GetComponent[*components.TextComponent](h.em, h.primary.Text)
	if !ok {
		return ""
	}
	return text.Text.String()
}
