// Package app 提供 Tooltip 演示应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/hovertip/pkg/config"
	"github.com/decker502/hovertip/pkg/ecs"
	"github.com/decker502/hovertip/pkg/game"
	"github.com/decker502/hovertip/pkg/modules"
	"github.com/decker502/hovertip/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 逻辑窗口尺寸（缩放系数为 1 时的像素）
const (
	WindowWidth  = 800
	WindowHeight = 600
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Debug 输出 Tooltip 状态切换日志（覆盖用户设置）
	Debug bool
	// Language 界面语言（如 "en"、"zh_CN"），为空则使用用户设置
	Language string
	// ConfigPath Tooltip 配置路径（嵌入资源）
	ConfigPath string
}

// App 是演示应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	entityManager *ecs.EntityManager
	tooltips      *modules.TooltipModule
	settings      *game.SettingsManager
	demo          *Demo
	verbose       bool
}

// NewApp 创建并初始化演示应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = "data/tooltip_config.yaml"
	}
	tooltipConfig, err := config.LoadEmbeddedTooltipConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("Tooltip 配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载 Tooltip 配置: %s", configPath)

	settings := game.OpenSettingsManager("hovertip")
	if cfg.Debug {
		settings.SetDebugTransitions(true)
	}
	language := cfg.Language
	if language == "" {
		language = settings.GetSettings().Language
	}

	texts, err := game.NewTooltipStrings(language)
	if err != nil {
		return nil, fmt.Errorf("文本加载失败: %w", err)
	}
	log.Printf("[App] Language: %s", texts.Language())

	em := ecs.NewEntityManager()
	scale := deviceScale()
	tooltips, err := modules.NewTooltipModule(em, modules.TooltipModuleOptions{
		Config:   tooltipConfig,
		Settings: settings,
		Width:    WindowWidth * scale,
		Height:   WindowHeight * scale,
		Scale:    scale,
	})
	if err != nil {
		return nil, fmt.Errorf("Tooltip 模块初始化失败: %w", err)
	}

	demo := NewDemo(em, texts, tooltips.Presets())
	demo.SetDisabledNotice(!settings.GetSettings().TooltipsEnabled)
	tooltips.Relayout()

	return &App{
		entityManager: em,
		tooltips:      tooltips,
		settings:      settings,
		demo:          demo,
		verbose:       cfg.Verbose,
	}, nil
}

// Update 更新应用逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 触摸设备没有键盘快捷键
	if !utils.IsMobile() {
		a.handleKeys()
	}

	a.tooltips.Update(1.0 / float64(ebiten.TPS()))
	a.entityManager.RemoveMarkedEntities()
	return nil
}

// handleKeys 处理快捷键
func (a *App) handleKeys() {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	// D 切换调试日志，T 切换 Tooltip 开关
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		a.tooltips.Debug = !a.tooltips.Debug
		a.settings.SetDebugTransitions(a.tooltips.Debug)
		a.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		enabled := !a.settings.GetSettings().TooltipsEnabled
		a.settings.SetTooltipsEnabled(enabled)
		a.demo.SetDisabledNotice(!enabled)
		a.saveSettings()
	}

	// [ 和 ] 调整激活延迟倍率
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		a.adjustDelayScale(-0.25)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		a.adjustDelayScale(0.25)
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 26, B: 38, A: 255})
	a.tooltips.Draw(screen)
}

// Layout 返回物理像素尺寸，并同步窗口尺寸和缩放系数
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := deviceScale()
	width := int(float64(outsideWidth) * scale)
	height := int(float64(outsideHeight) * scale)
	a.tooltips.Layout(float64(width), float64(height), scale)
	return width, height
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// adjustDelayScale 调整激活延迟倍率并保存
func (a *App) adjustDelayScale(delta float64) {
	a.settings.SetDelayScale(a.settings.GetSettings().DelayScale + delta)
	log.Printf("[App] Delay scale: %.2f", a.settings.GetSettings().DelayScale)
	a.saveSettings()
}

// saveSettings 保存用户设置（失败只记录日志）
func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Failed to save settings: %v", err)
	}
}

// deviceScale 返回当前显示器的缩放系数
func deviceScale() float64 {
	if monitor := ebiten.Monitor(); monitor != nil {
		if scale := monitor.DeviceScaleFactor(); scale > 0 {
			return scale
		}
	}
	return 1
}
