package repair

import (
	"sort"

	"github.com/jonathan/skill-taxonomy/internal/types"
)

// splitByLevel breaks every cluster whose level range exceeds the threshold
// into per-band clusters. The band holding the most members keeps the
// original id (smallest band on ties); the others receive fresh ids above the
// current maximum.
func splitByLevel(labeling types.Labeling, skills []types.Skill, stats types.ClusterStatsMap) {
	nextID := labeling.MaxID() + 1

	for _, id := range stats.IDs() {
		if stats[id].Level.Range() <= splitLevelRange {
			continue
		}

		members := labeling.Members(id)
		if len(members) == 0 {
			continue
		}

		byBand := make(map[int][]int)
		for _, m := range members {
			b := band(skills[m].Level)
			byBand[b] = append(byBand[b], m)
		}
		if len(byBand) < 2 {
			continue
		}

		bands := make([]int, 0, len(byBand))
		for b := range byBand {
			bands = append(bands, b)
		}
		sort.Ints(bands)

		modeBand := bands[0]
		for _, b := range bands[1:] {
			if len(byBand[b]) > len(byBand[modeBand]) {
				modeBand = b
			}
		}

		for _, b := range bands {
			if b == modeBand {
				continue
			}
			for _, m := range byBand[b] {
				labeling.Labels[m] = nextID
			}
			nextID++
		}
	}
}
