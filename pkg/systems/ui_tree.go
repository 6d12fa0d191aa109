package systems

import (
	"sort"

	"github.com/decker502/hovertip/pkg/components"
	"github.com/decker502/hovertip/pkg/ecs"
	"github.com/zyedidia/generic/mapset"
)

// appendVisibleNodes 按绘制顺序（从底到顶）追加所有实际可见的 UI 节点
// 根节点按 ZIndex 升序（相同时按实体 ID），子树先父后子
func appendVisibleNodes(dst []ecs.EntityID, em *ecs.EntityManager) []ecs.EntityID {
	roots := uiRoots(em)
	sort.SliceStable(roots, func(i, j int) bool {
		return nodeZIndex(em, roots[i]) < nodeZIndex(em, roots[j])
	})

	visited := mapset.New[ecs.EntityID]()
	for _, root := range roots {
		dst = appendVisibleSubtree(dst, em, root, true, &visited)
	}
	return dst
}

// uiRoots 返回所有根节点（没有 UI 父节点的节点），按实体 ID 升序
func uiRoots(em *ecs.EntityManager) []ecs.EntityID {
	var roots []ecs.EntityID
	for _, id := range ecs.GetEntitiesWith1[*components.NodeComponent](em) {
		if parent, ok := ecs.GetComponent[*components.ParentComponent](em, id); ok &&
			ecs.HasComponent[*components.NodeComponent](em, parent.Parent) {
			continue
		}
		roots = append(roots, id)
	}
	return roots
}

// appendVisibleSubtree 深度优先追加可见节点
func appendVisibleSubtree(dst []ecs.EntityID, em *ecs.EntityManager, entity ecs.EntityID, parentVisible bool, visited *mapset.Set[ecs.EntityID]) []ecs.EntityID {
	if visited.Has(entity) || !ecs.HasComponent[*components.NodeComponent](em, entity) {
		return dst
	}
	visited.Put(entity)

	visible := parentVisible
	if vis, ok := ecs.GetComponent[*components.VisibilityComponent](em, entity); ok {
		switch vis.Visibility {
		case components.VisibilityHidden:
			visible = false
		case components.VisibilityVisible:
			visible = true
		}
	}
	if !visible {
		return dst
	}
	dst = append(dst, entity)

	if children, ok := ecs.GetComponent[*components.ChildrenComponent](em, entity); ok {
		for _, child := range children.Children {
			dst = appendVisibleSubtree(dst, em, child, visible, visited)
		}
	}
	return dst
}

// nodeZIndex 节点的 ZIndex
func nodeZIndex(em *ecs.EntityManager, entity ecs.EntityID) int {
	if node, ok := ecs.GetComponent[*components.NodeComponent](em, entity); ok {
		return node.ZIndex
	}
	return 0
}
