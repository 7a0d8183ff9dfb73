package types

import "sort"

// LevelStats summarizes the proficiency levels within a cluster.
type LevelStats struct {
	Dominant int     `json:"dominant"` // mode; smallest level wins ties
	Mean     float64 `json:"mean"`
	Std      float64 `json:"std"`
	Min      int     `json:"min"`
	Max      int     `json:"max"`
}

// Range returns the spread between the highest and lowest level.
func (s LevelStats) Range() int {
	return s.Max - s.Min
}

// ContextStats summarizes the application contexts within a cluster.
type ContextStats struct {
	Dominant     Context         `json:"dominant"` // mode; lexicographically first wins ties
	Distribution map[Context]int `json:"distribution"`
	Diversity    float64         `json:"diversity"` // distinct contexts / 3
}

// ClusterStats holds the per-cluster metrics computed after clustering.
// Centroid and distances are in fused-feature space.
type ClusterStats struct {
	ID            int          `json:"id"`
	Size          int          `json:"size"`
	Centroid      []float64    `json:"centroid,omitempty"`
	AvgDistance   float64      `json:"avg_distance"`
	StdDistance   float64      `json:"std_distance"`
	Cohesion      float64      `json:"cohesion"` // 1 / (1 + avg distance)
	Level         LevelStats   `json:"level"`
	Context       ContextStats `json:"context"`
	TopKeywords   []string     `json:"top_keywords,omitempty"`
	AvgConfidence float64      `json:"avg_confidence"`
	Coherence     float64      `json:"coherence"`
}

// ClusterStatsMap indexes cluster statistics by cluster id.
type ClusterStatsMap map[int]*ClusterStats

// IDs returns the cluster ids in ascending order.
func (m ClusterStatsMap) IDs() []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
