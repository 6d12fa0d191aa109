package entities

import (
	"image/color"

	"github.com/decker502/hovertip/pkg/components"
	"github.com/decker502/hovertip/pkg/config"
	"github.com/decker502/hovertip/pkg/ecs"
	"github.com/decker502/hovertip/pkg/types"
)

// NewPrimaryTooltip 创建主 Tooltip 实体（容器 + 文本子节点）
//
// 容器为绝对定位的根节点，初始隐藏，使用配置中的背景、边框、内边距和层级；
// 文本节点使用配置中的默认字号和颜色，内容在显示时由状态机写入。
//
// 参数:
//   - em: 实体管理器
//   - style: 主 Tooltip 外观（config.PrimaryTooltipConfig.Style 的结果）
//
// 返回:
//   - components.PrimaryTooltip: 容器和文本实体
func NewPrimaryTooltip(em *ecs.EntityManager, style config.PrimaryTooltipStyle) components.PrimaryTooltip {
	container := em.CreateEntity()
	node := components.NewNodeComponent()
	node.PositionType = components.PositionAbsolute
	node.Padding = types.UIRectAll(style.Padding)
	node.ZIndex = style.ZIndex
	ecs.AddComponent(em, container, node)
	ecs.AddComponent(em, container, &components.VisibilityComponent{Visibility: components.VisibilityHidden})
	if style.Background != nil {
		ecs.AddComponent(em, container, &components.BackgroundComponent{Color: style.Background})
	}
	if style.Border != nil && style.BorderWidth > 0 {
		ecs.AddComponent(em, container, &components.BorderComponent{Color: style.Border, Width: style.BorderWidth})
	}

	text := em.CreateEntity()
	textNode := components.NewNodeComponent()
	textNode.MaxTextWidth = style.MaxTextWidth
	ecs.AddComponent(em, text, textNode)
	ecs.AddComponent(em, text, &components.TextComponent{
		Text: components.RichTextFromSection("", style.Text),
	})
	AddChild(em, container, text)

	return components.PrimaryTooltip{Container: container, Text: text}
}

// NewDefaultPrimaryTooltip 使用默认外观创建主 Tooltip
func NewDefaultPrimaryTooltip(em *ecs.EntityManager) components.PrimaryTooltip {
	style, _ := config.DefaultTooltipConfig().Primary.Style()
	return NewPrimaryTooltip(em, style)
}

// NewTooltipTarget 创建带 Tooltip 的可交互节点
//
// 参数:
//   - em: 实体管理器
//   - x, y, width, height: 节点矩形（逻辑像素，绝对定位）
//   - tooltip: Tooltip 组件（nil 表示只创建可交互节点）
//
// 返回:
//   - ecs.EntityID: 节点实体ID
func NewTooltipTarget(em *ecs.EntityManager, x, y, width, height float64, tooltip *components.TooltipComponent) ecs.EntityID {
	entity := em.CreateEntity()
	ecs.AddComponent(em, entity, components.NewAbsoluteNode(x, y, width, height))
	ecs.AddComponent(em, entity, &components.InteractionComponent{})
	if tooltip != nil {
		ecs.AddComponent(em, entity, tooltip)
	}
	return entity
}

// NewLabeledTooltipTarget 创建带背景和文字标签的 Tooltip 目标（演示和验证工具使用）
func NewLabeledTooltipTarget(em *ecs.EntityManager, x, y, width, height float64, label string, bg color.Color, tooltip *components.TooltipComponent) ecs.EntityID {
	entity := NewTooltipTarget(em, x, y, width, height, tooltip)
	ecs.AddComponent(em, entity, &components.BackgroundComponent{Color: bg})

	node, _ := ecs.GetComponent[*components.NodeComponent](em, entity)
	node.Padding = types.UIRectAll(types.Px(6))

	text := em.CreateEntity()
	ecs.AddComponent(em, text, components.NewNodeComponent())
	ecs.AddComponent(em, text, &components.TextComponent{
		Text: components.RichTextFromSection(label, components.TextStyle{FontSize: 14, Color: color.White}),
	})
	AddChild(em, entity, text)
	return entity
}

// AddChild 建立父子关系（同时维护 ParentComponent 和 ChildrenComponent）
func AddChild(em *ecs.EntityManager, parent, child ecs.EntityID) {
	ecs.AddComponent(em, child, &components.ParentComponent{Parent: parent})
	if children, ok := ecs.GetComponent[*components.ChildrenComponent](em, parent); ok {
		children.Children = append(children.Children, child)
		return
	}
	ecs.AddComponent(em, parent, &components.ChildrenComponent{Children: []ecs.EntityID{child}})
}
