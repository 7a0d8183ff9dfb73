package hierarchy

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/skill-taxonomy/internal/types"
)

// balance wraps oversized child lists into "Group N" batches of at most
// maxChildren, bottom-up so freshly created groups are themselves in bounds.
func balance(node *types.TaxonomyNode, maxChildren int) {
	for _, child := range node.Children {
		balance(child, maxChildren)
	}
	if maxChildren <= 0 || len(node.Children) <= maxChildren {
		return
	}

	var groups []*types.TaxonomyNode
	for start := 0; start < len(node.Children); start += maxChildren {
		end := start + maxChildren
		if end > len(node.Children) {
			end = len(node.Children)
		}
		groups = append(groups, &types.TaxonomyNode{
			ID:        uuid.NewString(),
			Name:      fmt.Sprintf("Group %d", len(groups)+1),
			Kind:      types.NodeSkillGroup,
			ClusterID: types.NoiseLabel,
			Children:  node.Children[start:end],
		})
	}
	node.Children = groups
}

// flattenAtDepth pulls every descendant skill up into nodes sitting at the
// depth limit, so the tree never exceeds maxDepth. The root is at depth 1.
func flattenAtDepth(root *types.TaxonomyNode, maxDepth int) {
	if maxDepth <= 0 {
		return
	}
	flattenFrom(root, 1, maxDepth)
}

func flattenFrom(node *types.TaxonomyNode, depth, maxDepth int) {
	if depth >= maxDepth {
		if len(node.Children) > 0 {
			node.SkillIDs = append(node.SkillIDs, collectSkillIDs(node.Children)...)
			node.Children = nil
		}
		return
	}
	for _, child := range node.Children {
		flattenFrom(child, depth+1, maxDepth)
	}
}

func collectSkillIDs(nodes []*types.TaxonomyNode) []string {
	var ids []string
	for _, node := range nodes {
		ids = append(ids, node.SkillIDs...)
		ids = append(ids, collectSkillIDs(node.Children)...)
	}
	return ids
}

// pruneEmpty removes subtrees carrying no skills at all, post-order.
func pruneEmpty(node *types.TaxonomyNode) {
	kept := node.Children[:0]
	for _, child := range node.Children {
		pruneEmpty(child)
		if len(child.Children) > 0 || len(child.SkillIDs) > 0 {
			kept = append(kept, child)
		}
	}
	node.Children = kept
	if len(node.Children) == 0 {
		node.Children = nil
	}
}
