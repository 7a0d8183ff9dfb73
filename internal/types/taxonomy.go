package types

import "time"

// NodeKind identifies the role of a node within the taxonomy tree.
type NodeKind string

// Node kinds, ordered roughly from root to leaf.
const (
	NodeRoot        NodeKind = "root"
	NodeLevelBand   NodeKind = "level_band"
	NodeCategory    NodeKind = "category"
	NodeSubcategory NodeKind = "subcategory"
	NodeCluster     NodeKind = "cluster"
	NodeSkillGroup  NodeKind = "skill_group"
)

// TaxonomyNode is one node of the taxonomy tree. Interior nodes carry
// children; leaf nodes carry skill ids. Cluster and skill-group nodes record
// the cluster id they were derived from.
type TaxonomyNode struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Kind      NodeKind        `json:"kind"`
	ClusterID int             `json:"cluster_id,omitempty"` // NoiseLabel for non-cluster nodes
	Children  []*TaxonomyNode `json:"children,omitempty"`
	SkillIDs  []string        `json:"skill_ids,omitempty"`
}

// SkillCount returns the total number of skills in this subtree.
func (n *TaxonomyNode) SkillCount() int {
	count := len(n.SkillIDs)
	for _, child := range n.Children {
		count += child.SkillCount()
	}
	return count
}

// Depth returns the height of this subtree; a node with no children has depth 1.
func (n *TaxonomyNode) Depth() int {
	depth := 1
	for _, child := range n.Children {
		if d := child.Depth() + 1; d > depth {
			depth = d
		}
	}
	return depth
}

// Walk visits this node and every descendant in depth-first order.
func (n *TaxonomyNode) Walk(visit func(node *TaxonomyNode, depth int)) {
	n.walk(visit, 0)
}

func (n *TaxonomyNode) walk(visit func(node *TaxonomyNode, depth int), depth int) {
	visit(n, depth)
	for _, child := range n.Children {
		child.walk(visit, depth+1)
	}
}

// TaxonomyMetadata captures summary figures and the build configuration snapshot.
type TaxonomyMetadata struct {
	TotalSkills   int       `json:"total_skills"`
	TotalClusters int       `json:"total_clusters"`
	OrphanSkills  int       `json:"orphan_skills"`
	MaxDepth      int       `json:"max_depth"`
	Strategy      string    `json:"strategy"`
	Config        any       `json:"config,omitempty"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// Taxonomy is the rooted tree produced by the hierarchy builder.
type Taxonomy struct {
	Root     *TaxonomyNode    `json:"root"`
	Metadata TaxonomyMetadata `json:"metadata"`
}
