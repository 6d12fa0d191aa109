package utils

import (
	"image/color"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/decker502/hovertip/pkg/components"
	"github.com/decker502/hovertip/pkg/types"
)

// RunMeasurer 文本度量接口
// size 为物理像素字号
type RunMeasurer interface {
	// Advance 返回文本的水平宽度
	Advance(textStr string, size float64) float64
	// LineHeight 返回该字号的行高
	LineHeight(size float64) float64
}

// TextRun 排版后的一段同样式文本
type TextRun struct {
	Text  string
	Size  float64     // 物理像素字号
	Color color.Color // 文本颜色
	X, Y  float64     // 相对文本框左上角的位置（Y 为行顶部）
	Width float64

	section int
}

// TextBlock 排版结果
type TextBlock struct {
	Runs []TextRun
	Size types.Vec2
}

// textLine 排版中的一行
type textLine struct {
	runs   []TextRun
	width  float64
	height float64
}

// LayoutRichText 排版富文本
// 参数:
//   - rt: 富文本
//   - m: 文本度量
//   - maxWidth: 自动换行宽度（物理像素），<= 0 或 rt.NoWrap 时只在 "\n" 处换行
//   - scale: 字号缩放系数
//
// 返回:
//   - TextBlock: 每段文本的位置和整个文本框的尺寸
//
// 换行规则:
//   - 优先在空白处断行
//   - 单词本身超过最大宽度时按字符强制断行
func LayoutRichText(rt components.RichText, m RunMeasurer, maxWidth, scale float64) TextBlock {
	if m == nil || rt.IsEmpty() {
		return TextBlock{}
	}
	if scale <= 0 {
		scale = 1
	}
	wrap := maxWidth > 0 && !rt.NoWrap

	var lines []*textLine
	cur := &textLine{}
	breakLine := func() {
		trimLineEnd(cur, m)
		lines = append(lines, cur)
		cur = &textLine{}
	}
	appendRun := func(section int, value string, size float64, clr color.Color) {
		width := m.Advance(value, size)
		if n := len(cur.runs); n > 0 && cur.runs[n-1].section == section {
			last := &cur.runs[n-1]
			last.Text += value
			last.Width += width
		} else {
			cur.runs = append(cur.runs, TextRun{Text: value, Size: size, Color: clr, X: cur.width, Width: width, section: section})
		}
		cur.width += width
		if lh := m.LineHeight(size); lh > cur.height {
			cur.height = lh
		}
	}

	for si, section := range rt.Sections {
		size := section.Style.FontSize * scale
		lineHeight := m.LineHeight(size)
		for pi, para := range strings.Split(section.Value, "\n") {
			if pi > 0 {
				if cur.height < lineHeight {
					cur.height = lineHeight
				}
				breakLine()
			}
			for _, token := range splitWords(para) {
				if wrap && cur.width > 0 && cur.width+m.Advance(strings.TrimRightFunc(token, unicode.IsSpace), size) > maxWidth {
					breakLine()
					token = strings.TrimLeftFunc(token, unicode.IsSpace)
					if token == "" {
						continue
					}
				}
				if wrap && m.Advance(token, size) > maxWidth {
					pieces := WrapText(token, m, size, maxWidth)
					for i, piece := range pieces {
						if i > 0 {
							breakLine()
						}
						appendRun(si, piece, size, section.Style.Color)
					}
					continue
				}
				appendRun(si, token, size, section.Style.Color)
			}
		}
	}
	if len(cur.runs) > 0 || cur.height > 0 {
		breakLine()
	}

	block := TextBlock{}
	for _, line := range lines {
		if line.width > block.Size.X {
			block.Size.X = line.width
		}
	}
	y := 0.0
	for _, line := range lines {
		shift := 0.0
		switch rt.Justify {
		case components.JustifyCenter:
			shift = (block.Size.X - line.width) / 2
		case components.JustifyRight:
			shift = block.Size.X - line.width
		}
		for _, run := range line.runs {
			run.X += shift
			run.Y = y + line.height - m.LineHeight(run.Size)
			block.Runs = append(block.Runs, run)
		}
		y += line.height
	}
	block.Size.Y = y
	return block
}

// trimLineEnd 去掉行尾空白
func trimLineEnd(line *textLine, m RunMeasurer) {
	n := len(line.runs)
	if n == 0 {
		return
	}
	last := &line.runs[n-1]
	trimmed := strings.TrimRightFunc(last.Text, unicode.IsSpace)
	if trimmed == last.Text {
		return
	}
	width := m.Advance(trimmed, last.Size)
	line.width -= last.Width - width
	last.Text = trimmed
	last.Width = width
}

// splitWords 把文本拆分为单词，每个单词保留其后的空白
func splitWords(s string) []string {
	var words []string
	start := 0
	inSpace := false
	for i, r := range s {
		space := unicode.IsSpace(r)
		if inSpace && !space {
			words = append(words, s[start:i])
			start = i
		}
		inSpace = space
	}
	if start < len(s) {
		words = append(words, s[start:])
	}
	return words
}

// WrapText 将文本按指定宽度逐字符换行
// 参数:
//   - textStr: 要换行的文本
//   - m: 文本度量
//   - size: 字号
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 如果单个字符就超过最大宽度，该字符独占一行
//   - 支持中文和英文混合文本
func WrapText(textStr string, m RunMeasurer, size, maxWidth float64) []string {
	if textStr == "" || m == nil || maxWidth <= 0 {
		return []string{textStr}
	}

	// 如果文本宽度小于最大宽度，直接返回
	if m.Advance(textStr, size) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	currentLine := ""

	// 按字符遍历（支持多字节字符）
	for len(textStr) > 0 {
		r, n := utf8.DecodeRuneInString(textStr)
		char := string(r)

		testLine := currentLine + char
		if m.Advance(testLine, size) > maxWidth {
			// 当前行为空说明单个字符就超宽，强制添加
			if currentLine == "" {
				lines = append(lines, char)
				textStr = textStr[n:]
				continue
			}
			lines = append(lines, currentLine)
			currentLine = char
		} else {
			currentLine = testLine
		}

		textStr = textStr[n:]
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	return lines
}
