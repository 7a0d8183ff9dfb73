package hierarchy

import (
	"fmt"
	"strings"

	"github.com/jonathan/skill-taxonomy/internal/types"
)

// ExportText renders the taxonomy as an indented text outline for inspection.
func ExportText(taxonomy *types.Taxonomy) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\n", taxonomy.Root.Name))
	sb.WriteString(fmt.Sprintf("  skills: %d  clusters: %d  orphans: %d  depth: %d\n\n",
		taxonomy.Metadata.TotalSkills,
		taxonomy.Metadata.TotalClusters,
		taxonomy.Metadata.OrphanSkills,
		taxonomy.Metadata.MaxDepth,
	))

	for _, child := range taxonomy.Root.Children {
		writeNode(&sb, child, 0)
	}
	return sb.String()
}

func writeNode(sb *strings.Builder, node *types.TaxonomyNode, indent int) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(node.Name)
	if count := node.SkillCount(); count > 0 {
		sb.WriteString(fmt.Sprintf(" (%d skills)", count))
	}
	sb.WriteString("\n")
	for _, child := range node.Children {
		writeNode(sb, child, indent+1)
	}
}
