// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/skill-taxonomy/internal/preprocess"
	"github.com/jonathan/skill-taxonomy/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintPreprocessReport outputs what preprocessing kept and dropped.
func (p *Printer) PrintPreprocessReport(report *preprocess.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Input records:   %d\n", report.Input))
	sb.WriteString(fmt.Sprintf("Low confidence:  %d\n", report.LowConfidence))
	sb.WriteString(fmt.Sprintf("Bad name length: %d\n", report.NameLength))
	sb.WriteString(fmt.Sprintf("Duplicates:      %d\n", report.Duplicates))
	sb.WriteString(fmt.Sprintf("Kept:            %d", report.Output))

	p.printBox("PREPROCESSING", sb.String())
}

// PrintClusterStats outputs a summary of the largest clusters.
func (p *Printer) PrintClusterStats(stats types.ClusterStatsMap) {
	if len(stats) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total clusters: %d\n\n", len(stats)))

	ids := stats.IDs()
	count := min(len(ids), maxItemsToShow)
	for i := 0; i < count; i++ {
		cs := stats[ids[i]]
		sb.WriteString(fmt.Sprintf("#%d  size=%d level=%d ctx=%s\n", cs.ID, cs.Size, cs.Level.Dominant, cs.Context.Dominant))
		sb.WriteString(fmt.Sprintf("    cohesion=%.2f coherence=%.2f\n", cs.Cohesion, cs.Coherence))
		if len(cs.TopKeywords) > 0 {
			keywords := strings.Join(cs.TopKeywords, ", ")
			if len(keywords) > 40 {
				keywords = keywords[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    keywords: %s\n", keywords))
		}
	}
	if len(ids) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(ids)-maxItemsToShow))
	}

	p.printBox("CLUSTER STATISTICS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTaxonomy outputs the top of the taxonomy tree with summary figures.
func (p *Printer) PrintTaxonomy(taxonomy *types.Taxonomy) {
	if taxonomy == nil || taxonomy.Root == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skills:   %d\n", taxonomy.Metadata.TotalSkills))
	sb.WriteString(fmt.Sprintf("Clusters: %d\n", taxonomy.Metadata.TotalClusters))
	sb.WriteString(fmt.Sprintf("Orphans:  %d\n", taxonomy.Metadata.OrphanSkills))
	sb.WriteString(fmt.Sprintf("Depth:    %d\n", taxonomy.Metadata.MaxDepth))
	sb.WriteString("\n")

	count := min(len(taxonomy.Root.Children), maxItemsToShow)
	for i := 0; i < count; i++ {
		child := taxonomy.Root.Children[i]
		sb.WriteString(fmt.Sprintf("• %s (%d skills)\n", child.Name, child.SkillCount()))
	}
	if len(taxonomy.Root.Children) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(taxonomy.Root.Children)-maxItemsToShow))
	}

	p.printBox("TAXONOMY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidation outputs the validation verdict, metrics, and issues.
func (p *Printer) PrintValidation(result *types.ValidationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	verdict := "VALID"
	if !result.IsValid {
		verdict = "INVALID"
	}
	sb.WriteString(fmt.Sprintf("Verdict: %s\n\n", verdict))

	for _, key := range []string{
		types.MetricCoverage,
		types.MetricCoherence,
		types.MetricDistinctiveness,
		types.MetricBalance,
		types.MetricOrphanSkills,
		types.MetricMaxDepth,
	} {
		if value, ok := result.Metrics[key]; ok {
			sb.WriteString(fmt.Sprintf("%-22s %.2f\n", key, value))
		}
	}

	if len(result.Errors) > 0 {
		sb.WriteString("\nErrors:\n")
		for _, msg := range result.Errors {
			sb.WriteString(fmt.Sprintf("  ✗ %s\n", msg))
		}
	}
	if len(result.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		count := min(len(result.Warnings), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  ! %s\n", result.Warnings[i]))
		}
		if len(result.Warnings) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Warnings)-maxItemsToShow))
		}
	}

	p.printBox("VALIDATION REPORT", strings.TrimSuffix(sb.String(), "\n"))
}
