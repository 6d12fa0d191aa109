package systems

import (
	"github.com/decker502/hovertip/pkg/components"
	"github.com/decker502/hovertip/pkg/ecs"
	"github.com/decker502/hovertip/pkg/types"
	"github.com/decker502/hovertip/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// UIRenderSystem 绘制 UI 节点
//
// 按绘制顺序（从底到顶）绘制所有可见节点：
//  1. 背景（BackgroundComponent）
//  2. 边框（BorderComponent，实线）
//  3. 文本（TextComponent，从内容区左上角开始）
//
// 只读取组件，不修改任何状态。
type UIRenderSystem struct {
	entityManager *ecs.EntityManager
	fonts         *utils.FontMeasurer
	nodes         []ecs.EntityID
}

// NewUIRenderSystem 创建 UI 渲染系统
// fonts 为 nil 时不绘制文本
func NewUIRenderSystem(em *ecs.EntityManager, fonts *utils.FontMeasurer) *UIRenderSystem {
	return &UIRenderSystem{
		entityManager: em,
		fonts:         fonts,
	}
}

// Draw 绘制所有可见 UI 节点
func (s *UIRenderSystem) Draw(screen *ebiten.Image) {
	s.nodes = appendVisibleNodes(s.nodes[:0], s.entityManager)
	for _, entity := range s.nodes {
		s.drawNode(screen, entity)
	}
}

// drawNode 绘制单个节点
func (s *UIRenderSystem) drawNode(screen *ebiten.Image, entity ecs.EntityID) {
	transform, ok := ecs.GetComponent[*components.UITransformComponent](s.entityManager, entity)
	if !ok {
		return
	}
	computed, ok := ecs.GetComponent[*components.ComputedNodeComponent](s.entityManager, entity)
	if !ok {
		return
	}
	camera, ok := nodeCamera(s.entityManager, entity)
	if !ok {
		return
	}
	viewport, scale, ok := cameraViewport(s.entityManager, camera)
	if !ok {
		return
	}

	// 视口坐标 → 屏幕坐标
	rect := transform.Rect(computed.Size)
	x := float32(viewport.Min.X + rect.Min.X)
	y := float32(viewport.Min.Y + rect.Min.Y)
	w := float32(computed.Size.X)
	h := float32(computed.Size.Y)

	// 1. 背景
	if bg, ok := ecs.GetComponent[*components.BackgroundComponent](s.entityManager, entity); ok && bg.Color != nil {
		vector.DrawFilledRect(screen, x, y, w, h, bg.Color, false)
	}

	// 2. 边框
	if border, ok := ecs.GetComponent[*components.BorderComponent](s.entityManager, entity); ok && border.Color != nil && border.Width > 0 {
		bw := float32(border.Width * scale)
		vector.StrokeRect(screen, x+bw/2, y+bw/2, w-bw, h-bw, bw, border.Color, false)
	}

	// 3. 文本
	textComp, ok := ecs.GetComponent[*components.TextComponent](s.entityManager, entity)
	if !ok || s.fonts == nil || textComp.Text.IsEmpty() {
		return
	}
	node, ok := ecs.GetComponent[*components.NodeComponent](s.entityManager, entity)
	if !ok {
		return
	}
	vp := viewport.Size()
	pad := resolveInsets(node.Padding, scale, vp)
	origin := types.Vec2{X: float64(x) + pad.Left, Y: float64(y) + pad.Top}

	maxWidth := 0.0
	if node.MaxTextWidth > 0 && !textComp.Text.NoWrap {
		maxWidth = node.MaxTextWidth * scale
	}
	block := utils.LayoutRichText(textComp.Text, s.fonts, maxWidth, scale)
	for _, run := range block.Runs {
		op := &text.DrawOptions{}
		op.GeoM.Translate(origin.X+run.X, origin.Y+run.Y)
		if run.Color != nil {
			op.ColorScale.ScaleWithColor(run.Color)
		}
		text.Draw(screen, run.Text, s.fonts.Face(run.Size), op)
	}
}
