package utils

import (
	"bytes"
	"fmt"

	"github.com/decker502/hovertip/pkg/components"
	"github.com/decker502/hovertip/pkg/types"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// FontMeasurer 基于 ebiten text/v2 的文本度量
// 同一字号的 GoTextFace 会被缓存复用
type FontMeasurer struct {
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
}

// NewFontMeasurer 使用 TTF/OTF 字体数据创建文本度量
func NewFontMeasurer(fontData []byte) (*FontMeasurer, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source: %w", err)
	}
	return &FontMeasurer{
		source: source,
		faces:  make(map[float64]*text.GoTextFace),
	}, nil
}

// NewDefaultFontMeasurer 使用内置的 Go Regular 字体
func NewDefaultFontMeasurer() (*FontMeasurer, error) {
	return NewFontMeasurer(goregular.TTF)
}

// Face 返回指定字号的字体
func (f *FontMeasurer) Face(size float64) *text.GoTextFace {
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := &text.GoTextFace{Source: f.source, Size: size}
	f.faces[size] = face
	return face
}

// Advance 返回文本宽度
func (f *FontMeasurer) Advance(textStr string, size float64) float64 {
	if textStr == "" {
		return 0
	}
	width, _ := text.Measure(textStr, f.Face(size), 0)
	return width
}

// LineHeight 返回行高
func (f *FontMeasurer) LineHeight(size float64) float64 {
	metrics := f.Face(size).Metrics()
	return metrics.HAscent + metrics.HDescent
}

// MeasureText 返回富文本排版后的尺寸
func (f *FontMeasurer) MeasureText(rt components.RichText, maxWidth, scale float64) types.Vec2 {
	return LayoutRichText(rt, f, maxWidth, scale).Size
}
