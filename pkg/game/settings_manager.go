package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 激活延迟倍率范围
const (
	MinDelayScale = 0.25
	MaxDelayScale = 4.0
)

// TooltipSettings 用户的 Tooltip 偏好设置
// 注意：这些设置是全局的，对所有 Tooltip 生效
type TooltipSettings struct {
	// TooltipsEnabled Tooltip 总开关
	TooltipsEnabled bool `yaml:"tooltipsEnabled"`

	// DelayScale 激活延迟倍率 0.25 ~ 4.0（1.0 表示使用 Tooltip 自身的延迟）
	DelayScale float64 `yaml:"delayScale"`

	// DebugTransitions 是否在日志中输出状态切换
	DebugTransitions bool `yaml:"debugTransitions"`

	// Language 界面语言（如 "en"、"zh_CN"），留空表示跟随系统
	Language string `yaml:"language"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *TooltipSettings {
	return &TooltipSettings{
		TooltipsEnabled:  true,
		DelayScale:       1.0,
		DebugTransitions: false,
		Language:         "",
	}
}

// SettingsManager 设置管理器
// 负责 Tooltip 设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager   // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *TooltipSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "tooltips"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方检查（加载失败不影响创建）
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	// 尝试加载已保存的设置
	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// OpenSettingsManager 打开应用的 gdata 存储并创建设置管理器
// 存储打开失败时退回降级模式
func OpenSettingsManager(appName string) *SettingsManager {
	gdataManager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SettingsManager] Warning: Failed to open storage: %v (settings will not persist)", err)
		gdataManager = nil
	}
	sm, _ := NewSettingsManager(gdataManager)
	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
//
// 返回：
//   - error: 如果反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 缺失字段保持默认值
	loadedSettings := DefaultSettings()
	if err := yaml.Unmarshal(data, loadedSettings); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loadedSettings.DelayScale = clampDelayScale(loadedSettings.DelayScale)

	sm.settings = loadedSettings
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
//
// 返回：
//   - error: 如果序列化或保存失败返回错误
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *TooltipSettings {
	return sm.settings
}

// SetTooltipsEnabled 设置 Tooltip 总开关
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetTooltipsEnabled(enabled bool) {
	sm.settings.TooltipsEnabled = enabled
}

// SetDelayScale 设置激活延迟倍率
//
// 倍率会被限制在 0.25 ~ 4.0 范围内
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
//
// 参数：
//   - scale: 延迟倍率
func (sm *SettingsManager) SetDelayScale(scale float64) {
	sm.settings.DelayScale = clampDelayScale(scale)
}

// SetDebugTransitions 设置是否输出状态切换日志
func (sm *SettingsManager) SetDebugTransitions(enabled bool) {
	sm.settings.DebugTransitions = enabled
}

// SetLanguage 设置界面语言
func (sm *SettingsManager) SetLanguage(language string) {
	sm.settings.Language = language
}

// clampDelayScale 将倍率限制在 0.25 ~ 4.0 范围内（0 或负数视为 1.0）
func clampDelayScale(scale float64) float64 {
	if scale <= 0 {
		return 1.0
	}
	if scale < MinDelayScale {
		return MinDelayScale
	}
	if scale > MaxDelayScale {
		return MaxDelayScale
	}
	return scale
}
