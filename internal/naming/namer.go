// Package naming produces display names for clusters via a pluggable
// delegate, with a deterministic fallback so the pipeline never blocks on an
// external service.
package naming

import (
	"context"
	"fmt"

	"github.com/jonathan/skill-taxonomy/internal/hierarchy"
	"github.com/jonathan/skill-taxonomy/internal/types"
)

// Namer generates a display name for a cluster from its representative skills.
type Namer interface {
	NameCluster(ctx context.Context, clusterID int, representatives []types.Skill) (string, error)
	Close() error
}

// NameClusters runs the delegate over every cluster with representatives.
// A delegate failure for one cluster falls back to the deterministic name
// rather than failing the batch.
func NameClusters(ctx context.Context, namer Namer, representatives map[int][]types.Skill) map[int]string {
	names := make(map[int]string, len(representatives))
	for id, reps := range representatives {
		if namer == nil {
			names[id] = hierarchy.FallbackName(id)
			continue
		}
		name, err := namer.NameCluster(ctx, id, reps)
		if err != nil || name == "" {
			fmt.Printf("Warning: naming cluster %d failed: %v. Using fallback name.\n", id, err)
			name = hierarchy.FallbackName(id)
		}
		names[id] = name
	}
	return names
}
