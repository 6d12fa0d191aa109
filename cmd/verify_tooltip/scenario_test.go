package main

import (
	"strings"
	"testing"

	"github.com/decker502/hovertip/pkg/components"
	"github.com/decker502/hovertip/pkg/config"
	"github.com/decker502/hovertip/pkg/systems"
	"github.com/decker502/hovertip/pkg/types"
)

// fixedMeasurer 每个字符 10x20 像素
type fixedMeasurer struct{}

func (fixedMeasurer) MeasureText(text components.RichText, maxWidth, scale float64) types.Vec2 {
	return types.Vec2{X: float64(len(text.String())) * 10 * scale, Y: 20 * scale}
}

func TestParseScenario(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		errContains string
	}{
		{
			name: "有效场景",
			yaml: `
elements:
  - {name: a, rect: [0, 0, 10, 10], placement: cursor, activation: idle}
frames:
  - {dt: 16}
`,
		},
		{
			name:        "缺少名称",
			yaml:        "elements:\n  - {rect: [0, 0, 10, 10]}\n",
			errContains: "name is required",
		},
		{
			name:        "重复名称",
			yaml:        "elements:\n  - {name: a}\n  - {name: a}\n",
			errContains: "duplicate name",
		},
		{
			name:        "未知预设",
			yaml:        "elements:\n  - {name: a, placement: sideways}\n",
			errContains: "unknown placement",
		},
		{
			name:        "负的帧时长",
			yaml:        "frames:\n  - {dt: -1}\n",
			errContains: "must be >= 0",
		},
		{
			name:        "视口无效",
			yaml:        "viewport: {width: 0, height: 100}\n",
			errContains: "viewport size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseScenario([]byte(tt.yaml))
			if tt.errContains == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if s.Viewport.Width != 800 || s.Viewport.Scale != 1 {
					t.Errorf("viewport defaults = %+v", s.Viewport)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error = %v, want containing %q", err, tt.errContains)
			}
		})
	}
}

func TestElementTooltipOverrides(t *testing.T) {
	group := int8(3)
	dist := 12.0
	el := ScenarioElement{
		Name:        "a",
		Text:        "hi",
		Transfer:    "none",
		Group:       &group,
		Layer:       2,
		DismissDist: &dist,
		Dismissal:   "none",
	}
	tooltip, err := el.tooltip(config.DefaultTooltipPresets())
	if err != nil {
		t.Fatalf("tooltip() error: %v", err)
	}
	if !tooltip.Transfer.HasGroup || tooltip.Transfer.Group != 3 || tooltip.Transfer.Layer != 2 {
		t.Errorf("transfer = %+v", tooltip.Transfer)
	}
	if tooltip.Dismissal.OnDistance != 12 || tooltip.Dismissal.OnClick {
		t.Errorf("dismissal = %+v", tooltip.Dismissal)
	}
	if tooltip.Content.Text.String() != "hi" {
		t.Errorf("text = %q", tooltip.Content.Text.String())
	}
}

// TestRunTransferScenario 运行 testdata 中的转移场景
func TestRunTransferScenario(t *testing.T) {
	s, err := LoadScenario("testdata/transfer.yaml")
	if err != nil {
		t.Fatalf("LoadScenario() error: %v", err)
	}
	runner, err := NewRunner(s, nil, fixedMeasurer{})
	if err != nil {
		t.Fatalf("NewRunner() error: %v", err)
	}
	results := runner.Run(nil)
	if len(results) != 11 {
		t.Fatalf("frames = %d, want 11", len(results))
	}

	// 第 1-4 帧：A 延迟中
	for i := 0; i < 4; i++ {
		if results[i].State != systems.TooltipDelayed || results[i].Target != "a" {
			t.Errorf("frame %d = %v %q, want Delayed a", i+1, results[i].State, results[i].Target)
		}
	}

	// 第 5 帧：A 激活，"First" 50x20 + 8px 内边距 = 66x36，位于 A 上方居中
	a := results[4]
	if a.State != systems.TooltipActive || !a.Visible {
		t.Fatalf("frame 5 = %+v, want visible Active", a)
	}
	if a.Size != (types.Vec2{X: 66, Y: 36}) {
		t.Errorf("size = %v, want (66, 36)", a.Size)
	}
	if a.TopLeft != (types.Vec2{X: 97, Y: 64}) {
		t.Errorf("top-left = %v, want (97, 64)", a.TopLeft)
	}

	// 第 6 帧：离开 A，进入转移窗口
	if results[5].State != systems.TooltipInactive || results[5].Visible {
		t.Errorf("frame 6 = %+v, want hidden Inactive", results[5])
	}

	// 第 7 帧：转移窗口内进入 B，立即激活
	b := results[6]
	if b.State != systems.TooltipActive || b.Target != "b" || !b.Visible {
		t.Fatalf("frame 7 = %+v, want visible Active b", b)
	}
	// "Second" 60x20 -> 76x36，中心 (230, 82)
	if b.TopLeft != (types.Vec2{X: 192, Y: 64}) {
		t.Errorf("top-left = %v, want (192, 64)", b.TopLeft)
	}

	// 第 10 帧：点击关闭
	if results[9].State != systems.TooltipDismissed || results[9].Visible {
		t.Errorf("frame 10 = %+v, want hidden Dismissed", results[9])
	}

	// 第 11 帧：光标离开窗口
	if results[10].State != systems.TooltipInactive {
		t.Errorf("frame 11 = %v, want Inactive", results[10].State)
	}

	wantTransitions := []systems.TooltipState{
		systems.TooltipDelayed,
		systems.TooltipActive,
		systems.TooltipInactive,
		systems.TooltipActive,
		systems.TooltipDismissed,
		systems.TooltipInactive,
	}
	if len(runner.Transitions) != len(wantTransitions) {
		t.Fatalf("transitions = %d, want %d", len(runner.Transitions), len(wantTransitions))
	}
	for i, want := range wantTransitions {
		if runner.Transitions[i].To != want {
			t.Errorf("transition %d to %v, want %v", i, runner.Transitions[i].To, want)
		}
	}
	if runner.Name(runner.Transitions[3].ToTarget) != "b" {
		t.Errorf("transition 3 target = %s, want b", runner.Name(runner.Transitions[3].ToTarget))
	}
}

// TestRunnerUsesConfigPresets 场景元素的预设名称按配置中的预设表解析
func TestRunnerUsesConfigPresets(t *testing.T) {
	s, err := ParseScenario([]byte(`
viewport: {width: 400, height: 300}
elements:
  - {name: a, rect: [100, 100, 40, 40], text: "A", activation: immediate}
frames:
  - {dt: 16, pointer: [120, 120], repeat: 2}
`))
	if err != nil {
		t.Fatalf("ParseScenario() error: %v", err)
	}

	cfg, err := config.ParseTooltipConfig([]byte("activation:\n  immediate:\n    delay: 300\n"))
	if err != nil {
		t.Fatalf("ParseTooltipConfig() error: %v", err)
	}
	configured, err := NewRunner(s, cfg, fixedMeasurer{})
	if err != nil {
		t.Fatalf("NewRunner() error: %v", err)
	}
	for i, r := range configured.Run(nil) {
		if r.State != systems.TooltipDelayed {
			t.Errorf("configured frame %d = %v, want Delayed", i+1, r.State)
		}
	}

	// 默认配置的运行器不受前一个配置影响
	plain, err := NewRunner(s, nil, fixedMeasurer{})
	if err != nil {
		t.Fatalf("NewRunner() error: %v", err)
	}
	if r := plain.Run(nil)[0]; r.State != systems.TooltipActive {
		t.Errorf("default frame 1 = %v, want Active", r.State)
	}
	if components.ActivationImmediate.Delay != 0 {
		t.Errorf("ActivationImmediate.Delay = %d, want 0", components.ActivationImmediate.Delay)
	}
}

func TestSameResult(t *testing.T) {
	a := FrameResult{Frame: 1, Time: 16, State: systems.TooltipActive, Target: "a"}
	b := a
	b.Frame, b.Time = 2, 32
	if !sameResult(a, b) {
		t.Error("frames differing only in number and time should be the same")
	}
	b.Target = "b"
	if sameResult(a, b) {
		t.Error("frames with different targets should differ")
	}
}
