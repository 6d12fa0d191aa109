package main

import (
	"fmt"
	"os"

	"github.com/decker502/hovertip/pkg/components"
	"github.com/decker502/hovertip/pkg/config"
	"github.com/decker502/hovertip/pkg/ecs"
	"github.com/decker502/hovertip/pkg/entities"
	"github.com/decker502/hovertip/pkg/modules"
	"github.com/decker502/hovertip/pkg/systems"
	"github.com/decker502/hovertip/pkg/types"
	"github.com/decker502/hovertip/pkg/utils"
	"gopkg.in/yaml.v3"
)

// Scenario 无界面验证场景
//
// 示例:
//
//	viewport: {width: 800, height: 600, scale: 1}
//	elements:
//	  - name: save
//	    rect: [100, 100, 120, 40]
//	    text: "Save the game"
//	    placement: top_center
//	    activation: idle
//	frames:
//	  - {dt: 16, pointer: [150, 120], repeat: 30}
type Scenario struct {
	Viewport ScenarioViewport  `yaml:"viewport"`
	Elements []ScenarioElement `yaml:"elements"`
	Frames   []ScenarioFrame   `yaml:"frames"`
}

// ScenarioViewport 窗口尺寸（逻辑像素）和缩放系数
type ScenarioViewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Scale  float64 `yaml:"scale"`
}

// ScenarioElement 一个带 Tooltip 的矩形元素
type ScenarioElement struct {
	Name string `yaml:"name"`
	// Rect [x, y, width, height]（逻辑像素）
	Rect [4]float64 `yaml:"rect"`
	Text string     `yaml:"text"`

	// 预设名称，留空使用默认值
	Placement  string `yaml:"placement"`
	Activation string `yaml:"activation"`
	Dismissal  string `yaml:"dismissal"`
	Transfer   string `yaml:"transfer"`

	// 覆盖预设的字段
	Group       *int8    `yaml:"group"`
	Layer       int8     `yaml:"layer"`
	DismissDist *float64 `yaml:"dismissDistance"`
	PassThrough bool     `yaml:"passThrough"`
	ZIndex      int      `yaml:"zIndex"`
}

// ScenarioFrame 一帧（或重复多帧）的输入
type ScenarioFrame struct {
	// DT 帧时长（毫秒）
	DT int `yaml:"dt"`
	// Pointer 光标位置（物理像素），留空表示光标不在窗口内
	Pointer *[2]int `yaml:"pointer"`
	Pressed bool    `yaml:"pressed"`
	// Repeat 重复次数，0 视为 1
	Repeat int `yaml:"repeat"`
}

// FrameResult 一帧结束时的状态
type FrameResult struct {
	Frame   int
	Time    int // 累计毫秒
	State   systems.TooltipState
	Target  string // 目标元素名称（Inactive 时为空）
	Visible bool
	// TopLeft, Size Tooltip 矩形（物理像素），仅 Visible 时有效
	TopLeft types.Vec2
	Size    types.Vec2
}

// LoadScenario 从 YAML 文件加载场景
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario 解析并验证场景
func ParseScenario(data []byte) (*Scenario, error) {
	s := &Scenario{Viewport: ScenarioViewport{Width: 800, Height: 600, Scale: 1}}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return nil, fmt.Errorf("viewport size must be > 0")
	}
	if s.Viewport.Scale <= 0 {
		s.Viewport.Scale = 1
	}

	presets := config.DefaultTooltipPresets()
	names := make(map[string]bool, len(s.Elements))
	for i, el := range s.Elements {
		if el.Name == "" {
			return nil, fmt.Errorf("element %d: name is required", i)
		}
		if names[el.Name] {
			return nil, fmt.Errorf("element %d: duplicate name %q", i, el.Name)
		}
		names[el.Name] = true
		if _, err := el.tooltip(presets); err != nil {
			return nil, fmt.Errorf("element %s: %w", el.Name, err)
		}
	}
	for i, f := range s.Frames {
		if f.DT < 0 || f.Repeat < 0 {
			return nil, fmt.Errorf("frame %d: dt and repeat must be >= 0", i)
		}
	}
	return s, nil
}

// tooltip 根据预设名称和覆盖字段创建 Tooltip 组件
func (el ScenarioElement) tooltip(presets *config.TooltipPresets) (*components.TooltipComponent, error) {
	tooltip := presets.NewTooltip(components.TextContent(el.Text))

	if el.Placement != "" {
		placement, ok := presets.Placement(el.Placement)
		if !ok {
			return nil, fmt.Errorf("unknown placement %q", el.Placement)
		}
		tooltip.Placement = placement
	}
	if el.Activation != "" {
		activation, ok := presets.Activation(el.Activation)
		if !ok {
			return nil, fmt.Errorf("unknown activation %q", el.Activation)
		}
		tooltip.Activation = activation
	}
	if el.Dismissal != "" {
		dismissal, ok := presets.Dismissal(el.Dismissal)
		if !ok {
			return nil, fmt.Errorf("unknown dismissal %q", el.Dismissal)
		}
		tooltip.Dismissal = dismissal
	}
	if el.Transfer != "" {
		transfer, ok := presets.Transfer(el.Transfer)
		if !ok {
			return nil, fmt.Errorf("unknown transfer %q", el.Transfer)
		}
		tooltip.Transfer = transfer
	}

	if el.Group != nil {
		tooltip.Transfer = tooltip.Transfer.WithGroup(*el.Group)
	}
	if el.Layer != 0 {
		tooltip.Transfer = tooltip.Transfer.WithLayer(el.Layer)
	}
	if el.DismissDist != nil {
		if *el.DismissDist < 0 {
			return nil, fmt.Errorf("dismissDistance must be >= 0")
		}
		tooltip.Dismissal.OnDistance = *el.DismissDist
	}
	return tooltip, nil
}

// Runner 逐帧运行场景
type Runner struct {
	scenario *Scenario
	em       *ecs.EntityManager
	module   *modules.TooltipModule
	names    map[ecs.EntityID]string
	pointer  utils.PointerState

	// Transitions 运行过程中的状态切换（按发生顺序）
	Transitions []systems.TooltipTransition
}

// NewRunner 创建场景运行器
// measurer 为 nil 时使用内置字体度量文本
func NewRunner(s *Scenario, cfg *config.TooltipConfig, measurer systems.TextMeasurer) (*Runner, error) {
	em := ecs.NewEntityManager()
	scale := s.Viewport.Scale
	module, err := modules.NewTooltipModule(em, modules.TooltipModuleOptions{
		Config:   cfg,
		Measurer: measurer,
		Width:    s.Viewport.Width * scale,
		Height:   s.Viewport.Height * scale,
		Scale:    scale,
	})
	if err != nil {
		return nil, err
	}

	r := &Runner{
		scenario: s,
		em:       em,
		module:   module,
		names:    make(map[ecs.EntityID]string, len(s.Elements)),
	}
	module.SetPointerSource(func() utils.PointerState { return r.pointer })
	module.OnTransition(func(tr systems.TooltipTransition) {
		r.Transitions = append(r.Transitions, tr)
	})

	for _, el := range s.Elements {
		tooltip, err := el.tooltip(module.Presets())
		if err != nil {
			return nil, fmt.Errorf("element %s: %w", el.Name, err)
		}
		entity := entities.NewTooltipTarget(em, el.Rect[0], el.Rect[1], el.Rect[2], el.Rect[3], tooltip)
		if el.PassThrough || el.ZIndex != 0 {
			interaction, _ := ecs.GetComponent[*components.InteractionComponent](em, entity)
			interaction.PassThrough = el.PassThrough
			node, _ := ecs.GetComponent[*components.NodeComponent](em, entity)
			node.ZIndex = el.ZIndex
		}
		r.names[entity] = el.Name
	}
	module.Relayout()
	return r, nil
}

// Run 运行所有帧，每帧结束后调用 report（可为 nil）
func (r *Runner) Run(report func(FrameResult)) []FrameResult {
	var results []FrameResult
	frame, elapsed := 0, 0
	for _, f := range r.scenario.Frames {
		repeat := f.Repeat
		if repeat == 0 {
			repeat = 1
		}
		for i := 0; i < repeat; i++ {
			r.pointer = utils.PointerState{Pressed: f.Pressed}
			if f.Pointer != nil {
				r.pointer.X, r.pointer.Y = f.Pointer[0], f.Pointer[1]
				r.pointer.Focused = true
			}
			r.module.Update(float64(f.DT) / 1000)
			frame++
			elapsed += f.DT

			result := r.snapshot(frame, elapsed)
			results = append(results, result)
			if report != nil {
				report(result)
			}
		}
	}
	return results
}

// snapshot 读取当前帧的上下文和 Tooltip 矩形
func (r *Runner) snapshot(frame, elapsed int) FrameResult {
	ctx := r.module.Context()
	result := FrameResult{Frame: frame, Time: elapsed, State: ctx.State}
	if ctx.State != systems.TooltipInactive {
		result.Target = r.names[ctx.Target]
	}

	container := r.module.Primary().Container
	if ctx.Tooltip.Content.Kind == components.ContentCustom {
		container = ctx.Tooltip.Content.Entity
	}
	vis, ok := ecs.GetComponent[*components.VisibilityComponent](r.em, container)
	if !ok || vis.Visibility == components.VisibilityHidden {
		return result
	}
	computed, ok := ecs.GetComponent[*components.ComputedNodeComponent](r.em, container)
	if !ok {
		return result
	}
	transform, ok := ecs.GetComponent[*components.UITransformComponent](r.em, container)
	if !ok {
		return result
	}
	result.Visible = true
	result.Size = computed.Size
	result.TopLeft = transform.Translation.Sub(computed.Size.Scale(0.5))
	return result
}

// Name 返回实体对应的元素名称
func (r *Runner) Name(entity ecs.EntityID) string {
	if name, ok := r.names[entity]; ok {
		return name
	}
	return "-"
}
