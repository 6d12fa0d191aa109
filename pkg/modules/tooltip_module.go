package modules

import (
	"fmt"
	"log"

	"github.com/decker502/hovertip/pkg/components"
	"github.com/decker502/hovertip/pkg/config"
	"github.com/decker502/hovertip/pkg/ecs"
	"github.com/decker502/hovertip/pkg/entities"
	"github.com/decker502/hovertip/pkg/game"
	"github.com/decker502/hovertip/pkg/systems"
	"github.com/decker502/hovertip/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// TooltipModule Tooltip 模块
// 封装 Tooltip 运行所需的全部系统，包括：
//   - 主窗口和默认 UI 相机实体的创建
//   - 主 Tooltip 实体的创建（使用配置中的外观）
//   - 每帧系统调度：窗口输入 → 命中检测 → 状态机 → 布局 → 位置
//   - UI 节点的渲染
//
// 应用只需要创建带 TooltipComponent 的 UI 节点，然后每帧调用 Update 和 Draw。
type TooltipModule struct {
	// ECS 框架
	entityManager *ecs.EntityManager

	// 窗口和相机实体
	windowEntity ecs.EntityID
	cameraEntity ecs.EntityID

	// 系统（内部管理，按执行顺序）
	windowInputSystem *systems.WindowInputSystem
	interactionSystem *systems.UIInteractionSystem
	contextSystem     *systems.TooltipContextSystem
	layoutSystem      *systems.UILayoutSystem
	placementSystem   *systems.TooltipPlacementSystem
	renderSystem      *systems.UIRenderSystem

	// 交互栈（命中检测写入，状态机读取）
	stack *systems.UIStack

	// 配置生成的预设表
	presets *config.TooltipPresets

	// 外部依赖（可为 nil）
	settings *game.SettingsManager

	// Debug 输出状态切换日志
	Debug bool

	// 内部状态（用于检测设置变化）
	wasEnabled bool
}

// TooltipModuleOptions Tooltip 模块创建参数
type TooltipModuleOptions struct {
	// Config Tooltip 配置，nil 表示使用默认配置
	Config *config.TooltipConfig

	// Settings 用户设置，nil 表示 Tooltip 始终启用、延迟倍率为 1
	Settings *game.SettingsManager

	// Fonts 文本度量和绘制使用的字体，nil 时使用内置字体
	Fonts *utils.FontMeasurer

	// Measurer 覆盖布局使用的文本度量（测试使用），nil 时使用 Fonts
	Measurer systems.TextMeasurer

	// Width, Height 初始窗口尺寸（物理像素）
	Width, Height float64

	// Scale 初始缩放系数，0 表示 1
	Scale float64
}

// NewTooltipModule 创建一个新的 Tooltip 模块
//
// 参数:
//   - em: EntityManager 实例
//   - opts: 创建参数
//
// 返回:
//   - *TooltipModule: 新创建的模块实例
//   - error: 配置无效或字体加载失败
//
// 注意：
//   - 配置中的预设覆盖只进入本模块的预设表（见 Presets）
//   - 主 Tooltip 初始为隐藏状态
func NewTooltipModule(em *ecs.EntityManager, opts TooltipModuleOptions) (*TooltipModule, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultTooltipConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tooltip config: %w", err)
	}
	presets, err := cfg.Presets()
	if err != nil {
		return nil, fmt.Errorf("failed to build tooltip presets: %w", err)
	}
	style, err := cfg.Primary.Style()
	if err != nil {
		return nil, fmt.Errorf("invalid primary tooltip style: %w", err)
	}

	fonts := opts.Fonts
	if fonts == nil {
		if fonts, err = utils.NewDefaultFontMeasurer(); err != nil {
			return nil, fmt.Errorf("failed to load default font: %w", err)
		}
	}
	var measurer systems.TextMeasurer = fonts
	if opts.Measurer != nil {
		measurer = opts.Measurer
	}

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	// 1. 主窗口和默认 UI 相机
	windowEntity := em.CreateEntity()
	ecs.AddComponent(em, windowEntity, &components.WindowComponent{
		Primary:     true,
		Width:       opts.Width,
		Height:      opts.Height,
		ScaleFactor: scale,
	})
	cameraEntity := em.CreateEntity()
	ecs.AddComponent(em, cameraEntity, &components.CameraComponent{
		Window:      windowEntity,
		IsDefaultUI: true,
	})

	// 2. 主 Tooltip
	primary := entities.NewPrimaryTooltip(em, style)

	// 3. 系统
	stack := &systems.UIStack{}
	contextSystem := systems.NewTooltipContextSystem(em, primary, stack)
	layoutSystem := systems.NewUILayoutSystem(em, measurer)

	module := &TooltipModule{
		entityManager:     em,
		windowEntity:      windowEntity,
		cameraEntity:      cameraEntity,
		windowInputSystem: systems.NewWindowInputSystem(em, windowEntity),
		interactionSystem: systems.NewUIInteractionSystem(em, stack),
		contextSystem:     contextSystem,
		layoutSystem:      layoutSystem,
		placementSystem:   systems.NewTooltipPlacementSystem(em, contextSystem, layoutSystem),
		renderSystem:      systems.NewUIRenderSystem(em, fonts),
		stack:             stack,
		presets:           presets,
		settings:          opts.Settings,
		wasEnabled:        true,
	}
	contextSystem.OnTransition = module.logTransition

	if module.settings != nil {
		module.Debug = module.settings.GetSettings().DebugTransitions
	}

	log.Printf("[TooltipModule] Initialized (window %.0fx%.0f, scale %.2f)", opts.Width, opts.Height, scale)
	return module, nil
}

// Update 推进一帧
//
// 参数:
//   - deltaTime: 时间增量（秒）
func (m *TooltipModule) Update(deltaTime float64) {
	enabled, delayScale := m.currentSettings()
	if enabled != m.wasEnabled {
		log.Printf("[TooltipModule] Tooltips enabled: %v", enabled)
		m.wasEnabled = enabled
	}
	m.contextSystem.SetDelayScale(delayScale)

	m.windowInputSystem.Update()
	m.interactionSystem.Update()
	if !enabled {
		// 空交互栈：状态机回到 Inactive 并隐藏当前 Tooltip
		m.stack.Nodes = m.stack.Nodes[:0]
	}
	m.contextSystem.Update(deltaTime)
	m.layoutSystem.Update()
	m.placementSystem.Update()
}

// Draw 绘制所有可见 UI 节点（包括 Tooltip）
func (m *TooltipModule) Draw(screen *ebiten.Image) {
	m.renderSystem.Draw(screen)
}

// Layout 更新窗口尺寸（由 ebiten Game.Layout 调用）
//
// 参数:
//   - width, height: 屏幕物理像素尺寸
//   - scale: 设备缩放系数
func (m *TooltipModule) Layout(width, height, scale float64) {
	m.windowInputSystem.Resize(width, height, scale)
}

// Relayout 立即重新计算布局（创建或修改 UI 节点后调用，使命中检测在下一帧之前可用）
func (m *TooltipModule) Relayout() {
	m.layoutSystem.Update()
}

// SetPointerSource 替换指针输入来源（无界面运行和测试使用）
func (m *TooltipModule) SetPointerSource(source func() utils.PointerState) {
	m.windowInputSystem.SetPointerSource(source)
}

// Context 返回 Tooltip 状态机上下文（只读）
func (m *TooltipModule) Context() *systems.TooltipContext {
	return m.contextSystem.Context()
}

// Primary 返回主 Tooltip 实体
func (m *TooltipModule) Primary() components.PrimaryTooltip {
	return m.contextSystem.Primary()
}

// Presets 返回配置生成的预设表
// 应用使用它按名称创建 Tooltip，使配置中的覆盖生效
func (m *TooltipModule) Presets() *config.TooltipPresets {
	return m.presets
}

// Window 返回主窗口实体
func (m *TooltipModule) Window() ecs.EntityID {
	return m.windowEntity
}

// Camera 返回默认 UI 相机实体
func (m *TooltipModule) Camera() ecs.EntityID {
	return m.cameraEntity
}

// OnTransition 注册额外的状态切换回调（调试日志之外）
func (m *TooltipModule) OnTransition(callback func(systems.TooltipTransition)) {
	m.contextSystem.OnTransition = func(tr systems.TooltipTransition) {
		m.logTransition(tr)
		if callback != nil {
			callback(tr)
		}
	}
}

// currentSettings 读取当前的启用状态和延迟倍率
func (m *TooltipModule) currentSettings() (bool, float64) {
	if m.settings == nil {
		return true, 1
	}
	settings := m.settings.GetSettings()
	return settings.TooltipsEnabled, settings.DelayScale
}

// logTransition 输出状态切换日志（仅 Debug 模式）
func (m *TooltipModule) logTransition(tr systems.TooltipTransition) {
	if !m.Debug {
		return
	}
	log.Printf("[TooltipModule] %v -> %v (target %d -> %d)", tr.From, tr.To, tr.FromTarget, tr.ToTarget)
}
