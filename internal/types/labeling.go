package types

import "sort"

// NoiseLabel marks a skill that belongs to no cluster.
const NoiseLabel = -1

// Labeling assigns each skill (by position) to a cluster. Labels are
// non-negative cluster ids or NoiseLabel. A Labeling is treated as immutable
// once produced; transforms return a fresh value.
type Labeling struct {
	Labels []int `json:"labels"`
}

// NewLabeling wraps a label slice without copying.
func NewLabeling(labels []int) Labeling {
	return Labeling{Labels: labels}
}

// Clone returns a deep copy of the labeling.
func (l Labeling) Clone() Labeling {
	out := make([]int, len(l.Labels))
	copy(out, l.Labels)
	return Labeling{Labels: out}
}

// Len returns the number of labeled positions.
func (l Labeling) Len() int {
	return len(l.Labels)
}

// NumClusters returns the number of distinct non-noise cluster ids.
func (l Labeling) NumClusters() int {
	return len(l.ClusterIDs())
}

// NoiseCount returns how many positions carry the noise label.
func (l Labeling) NoiseCount() int {
	count := 0
	for _, label := range l.Labels {
		if label == NoiseLabel {
			count++
		}
	}
	return count
}

// MaxID returns the largest cluster id, or NoiseLabel if every position is noise.
func (l Labeling) MaxID() int {
	maxID := NoiseLabel
	for _, label := range l.Labels {
		if label > maxID {
			maxID = label
		}
	}
	return maxID
}

// ClusterIDs returns the distinct non-noise cluster ids in ascending order.
func (l Labeling) ClusterIDs() []int {
	seen := make(map[int]bool)
	for _, label := range l.Labels {
		if label != NoiseLabel {
			seen[label] = true
		}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Members returns the positions assigned to the given cluster id, in order.
func (l Labeling) Members(id int) []int {
	var members []int
	for i, label := range l.Labels {
		if label == id {
			members = append(members, i)
		}
	}
	return members
}
