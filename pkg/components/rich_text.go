package components

import "image/color"

// JustifyText 文本对齐方式
type JustifyText int

const (
	// JustifyLeft 左对齐
	JustifyLeft JustifyText = iota
	// JustifyCenter 居中
	JustifyCenter
	// JustifyRight 右对齐
	JustifyRight
)

// TextStyle 文本样式
type TextStyle struct {
	FontSize float64
	Color    color.Color
}

// DefaultTextStyle 默认文本样式：20px 白色
func DefaultTextStyle() TextStyle {
	return TextStyle{
		FontSize: 20,
		Color:    color.White,
	}
}

// TextSection 一段带样式的文本
type TextSection struct {
	Value string
	Style TextStyle
}

// NewTextSection 创建文本段
func NewTextSection(value string, style TextStyle) TextSection {
	return TextSection{Value: value, Style: style}
}

// RichText 多段富文本
//
// 每段文本独立设置字号和颜色，段与段之间不插入换行；
// 需要换行时在 Value 中使用 "\n"。
type RichText struct {
	Sections []TextSection
	Justify  JustifyText
	NoWrap   bool // 禁止自动换行（忽略节点的 MaxTextWidth）
}

// RichTextFromSection 使用单段文本创建富文本
func RichTextFromSection(value string, style TextStyle) RichText {
	return RichText{Sections: []TextSection{NewTextSection(value, style)}}
}

// RichTextFromSections 使用多段文本创建富文本
func RichTextFromSections(sections ...TextSection) RichText {
	return RichText{Sections: append([]TextSection(nil), sections...)}
}

// WithJustify 设置对齐方式
func (t RichText) WithJustify(justify JustifyText) RichText {
	t.Justify = justify
	return t
}

// WithNoWrap 禁止自动换行
func (t RichText) WithNoWrap() RichText {
	t.NoWrap = true
	return t
}

// Clone 深拷贝（Sections 切片不与原值共享）
func (t RichText) Clone() RichText {
	t.Sections = append([]TextSection(nil), t.Sections...)
	return t
}

// String 返回所有文本段拼接后的纯文本
func (t RichText) String() string {
	s := ""
	for _, section := range t.Sections {
		s += section.Value
	}
	return s
}

// IsEmpty 是否没有任何文本
func (t RichText) IsEmpty() bool {
	return len(t.Sections) == 0
}

// Equal 比较两段富文本内容和样式是否一致
func (t RichText) Equal(o RichText) bool {
	if t.Justify != o.Justify || t.NoWrap != o.NoWrap || len(t.Sections) != len(o.Sections) {
		return false
	}
	for i := range t.Sections {
		a, b := t.Sections[i], o.Sections[i]
		if a.Value != b.Value || a.Style.FontSize != b.Style.FontSize || !colorEqual(a.Style.Color, b.Style.Color) {
			return false
		}
	}
	return true
}

// colorEqual 比较两个颜色的 RGBA 值
func colorEqual(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

// TextComponent 文本节点组件
// 节点尺寸由布局系统根据文本测量结果计算
type TextComponent struct {
	Text RichText
}
