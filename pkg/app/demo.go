package app

import (
	"image/color"
	"strings"

	"github.com/decker502/hovertip/pkg/components"
	"github.com/decker502/hovertip/pkg/config"
	"github.com/decker502/hovertip/pkg/ecs"
	"github.com/decker502/hovertip/pkg/entities"
	"github.com/decker502/hovertip/pkg/game"
	"github.com/decker502/hovertip/pkg/types"
	"github.com/decker502/hovertip/pkg/utils"
)

// 演示布局参数（逻辑像素）
const (
	gridLeft    = 40
	gridTop     = 90
	tileWidth   = 130
	tileHeight  = 56
	tileSpacing = 16

	transferTop    = 420
	transferTiles  = 5
	transferWidth  = 100
	transferHeight = 44
)

var (
	tileColor     = color.RGBA{R: 70, G: 90, B: 140, A: 255}
	cursorColor   = color.RGBA{R: 60, G: 120, B: 90, A: 255}
	customColor   = color.RGBA{R: 130, G: 80, B: 120, A: 255}
	transferColor = color.RGBA{R: 140, G: 100, B: 50, A: 255}
	noticeColor   = color.RGBA{R: 255, G: 140, B: 120, A: 255}
)

// Demo 演示场景的 UI 实体
type Demo struct {
	entityManager *ecs.EntityManager
	texts         *game.TooltipStrings
	presets       *config.TooltipPresets

	// Tiles 所有带 Tooltip 的方块（按创建顺序）
	Tiles []ecs.EntityID
	// Custom 自定义 Tooltip 内容实体
	Custom ecs.EntityID
	// notice 提示已关闭 Tooltip 的文本节点
	notice ecs.EntityID
}

// NewDemo 创建演示场景
//
// 包含：
//   - 九个固定锚点方块（3x3 网格）
//   - 光标位置和跟随光标方块
//   - 自定义内容方块
//   - 一排同组的转移方块
//
// 方块的 Tooltip 参数从 presets 按名称查找，配置中的预设覆盖在这里生效。
func NewDemo(em *ecs.EntityManager, texts *game.TooltipStrings, presets *config.TooltipPresets) *Demo {
	d := &Demo{entityManager: em, texts: texts, presets: presets}

	d.label(gridLeft, 24, texts.GetString("DEMO_TITLE"), 24, color.White)
	hint := "DEMO_HINT"
	if utils.IsMobile() {
		hint = "DEMO_HINT_TOUCH"
	}
	d.label(gridLeft, 560, texts.GetString(hint), 14, color.Gray{Y: 180})
	d.notice = d.label(gridLeft, 56, texts.GetString("TOOLTIPS_DISABLED"), 14, noticeColor)

	// 九个锚点方块：方块在网格中的位置与锚点方向一致
	for i, name := range types.AnchorNames() {
		x := float64(gridLeft + (i%3)*(tileWidth+tileSpacing))
		y := float64(gridTop + (i/3)*(tileHeight+tileSpacing))
		tooltip := d.tooltip(components.TextContent(texts.GetString("TOOLTIP_ANCHOR", name)), name)
		d.tile(x, y, tileWidth, tileHeight, displayName(name), tileColor, tooltip)
	}

	// 光标类方块
	sideLeft := float64(gridLeft + 3*(tileWidth+tileSpacing) + 40)
	d.tile(sideLeft, gridTop, 220, tileHeight, "cursor", cursorColor,
		d.tooltip(components.TextContent(texts.GetString("TOOLTIP_CURSOR")), "cursor"))
	followCursor := d.tooltip(components.TextContent(texts.GetString("TOOLTIP_FOLLOW_CURSOR")), "follow_cursor")
	if shortIdle, ok := presets.Activation("short_idle"); ok {
		followCursor.WithActivation(shortIdle)
	}
	d.tile(sideLeft, gridTop+tileHeight+tileSpacing, 220, tileHeight, "follow_cursor", cursorColor, followCursor)

	// 自定义内容
	d.Custom = d.customContent()
	d.tile(sideLeft, gridTop+2*(tileHeight+tileSpacing), 220, tileHeight, "custom", customColor,
		d.tooltip(components.CustomContent(d.Custom), "bottom_center"))

	// 转移方块：同组内移动时跳过激活延迟
	transfer, _ := presets.Transfer("short")
	transfer = transfer.WithGroup(1)
	transfer.Timeout = 300
	delay, _ := presets.Activation("delay")
	for i := 0; i < transferTiles; i++ {
		x := float64(gridLeft + i*(transferWidth+tileSpacing))
		tooltip := d.tooltip(components.TextContent(texts.GetString("TOOLTIP_TRANSFER", i+1)), "top_center").
			WithActivation(delay).
			WithTransfer(transfer)
		d.tile(x, transferTop, transferWidth, transferHeight, "transfer", transferColor, tooltip)
	}

	return d
}

// SetDisabledNotice 显示或隐藏 "Tooltip 已关闭" 提示
func (d *Demo) SetDisabledNotice(show bool) {
	vis, ok := ecs.GetComponent[*components.VisibilityComponent](d.entityManager, d.notice)
	if !ok {
		return
	}
	if show {
		vis.Visibility = components.VisibilityVisible
	} else {
		vis.Visibility = components.VisibilityHidden
	}
}

// tooltip 使用预设表的默认值创建 Tooltip，并设置名称对应的位置
func (d *Demo) tooltip(content components.TooltipContent, placement string) *components.TooltipComponent {
	tooltip := d.presets.NewTooltip(content)
	if p, ok := d.presets.Placement(placement); ok {
		tooltip.WithPlacement(p)
	}
	return tooltip
}

// tile 创建带 Tooltip 的方块
func (d *Demo) tile(x, y, width, height float64, label string, bg color.Color, tooltip *components.TooltipComponent) ecs.EntityID {
	entity := entities.NewLabeledTooltipTarget(d.entityManager, x, y, width, height, label, bg, tooltip)
	d.Tiles = append(d.Tiles, entity)
	return entity
}

// label 创建绝对定位的文本节点
func (d *Demo) label(x, y float64, value string, size float64, c color.Color) ecs.EntityID {
	entity := d.entityManager.CreateEntity()
	node := components.NewNodeComponent()
	node.PositionType = components.PositionAbsolute
	node.Left = types.Px(x)
	node.Top = types.Px(y)
	ecs.AddComponent(d.entityManager, entity, node)
	ecs.AddComponent(d.entityManager, entity, &components.VisibilityComponent{Visibility: components.VisibilityInherited})
	ecs.AddComponent(d.entityManager, entity, &components.TextComponent{
		Text: components.RichTextFromSection(value, components.TextStyle{FontSize: size, Color: c}),
	})
	return entity
}

// customContent 创建自定义 Tooltip 实体（标题 + 说明，初始隐藏）
func (d *Demo) customContent() ecs.EntityID {
	em := d.entityManager
	container := em.CreateEntity()
	node := components.NewNodeComponent()
	node.PositionType = components.PositionAbsolute
	node.Padding = types.UIRectAll(types.Px(10))
	node.RowGap = 6
	node.ZIndex = 1000
	ecs.AddComponent(em, container, node)
	ecs.AddComponent(em, container, &components.VisibilityComponent{Visibility: components.VisibilityHidden})
	ecs.AddComponent(em, container, &components.BackgroundComponent{Color: color.RGBA{R: 40, G: 20, B: 40, A: 240}})
	ecs.AddComponent(em, container, &components.BorderComponent{Color: customColor, Width: 2})

	title := em.CreateEntity()
	ecs.AddComponent(em, title, components.NewNodeComponent())
	ecs.AddComponent(em, title, &components.TextComponent{
		Text: components.RichTextFromSection(d.texts.GetString("TOOLTIP_CUSTOM"),
			components.TextStyle{FontSize: 18, Color: color.RGBA{R: 255, G: 210, B: 120, A: 255}}),
	})
	entities.AddChild(em, container, title)

	detailNode := components.NewNodeComponent()
	detailNode.MaxTextWidth = 240
	detail := em.CreateEntity()
	ecs.AddComponent(em, detail, detailNode)
	ecs.AddComponent(em, detail, &components.TextComponent{
		Text: components.RichTextFromSection(d.texts.GetString("TOOLTIP_CUSTOM_DETAIL"),
			components.TextStyle{FontSize: 14, Color: color.White}),
	})
	entities.AddChild(em, container, detail)

	return container
}

// displayName 把锚点名称转换为方块标签（"top_left" -> "top left"）
func displayName(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}
