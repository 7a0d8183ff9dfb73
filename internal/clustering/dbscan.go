package clustering

// DBSCAN is a density-based delegate over euclidean distance. When Eps is
// zero it is estimated as half the mean pairwise distance of the input.
// Clusters smaller than minClusterSize are relabeled as noise.
type DBSCAN struct {
	Eps float64
}

// Cluster implements the Clusterer delegate contract.
func (d *DBSCAN) Cluster(features [][]float64, minClusterSize, minSamples int) ([]int, error) {
	n := len(features)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}
	if n == 0 {
		return labels, nil
	}

	eps := d.Eps
	if eps <= 0 {
		eps = estimateEps(features)
	}
	if minSamples < 1 {
		minSamples = 1
	}

	visited := make([]bool, n)
	nextID := 0

	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		visited[i] = true

		neighbors := regionQuery(features, i, eps)
		if len(neighbors) < minSamples {
			continue // border or noise; may be claimed by a later expansion
		}

		labels[i] = nextID
		// Expand the cluster over density-reachable points.
		for idx := 0; idx < len(neighbors); idx++ {
			j := neighbors[idx]
			if !visited[j] {
				visited[j] = true
				more := regionQuery(features, j, eps)
				if len(more) >= minSamples {
					neighbors = append(neighbors, more...)
				}
			}
			if labels[j] == -1 {
				labels[j] = nextID
			}
		}
		nextID++
	}

	demoteSmallClusters(labels, minClusterSize)
	return labels, nil
}

// regionQuery returns the indices within eps of point i, including i itself.
func regionQuery(features [][]float64, i int, eps float64) []int {
	var neighbors []int
	for j := range features {
		if euclidean(features[i], features[j]) <= eps {
			neighbors = append(neighbors, j)
		}
	}
	return neighbors
}

// estimateEps returns half the mean pairwise distance.
func estimateEps(features [][]float64) float64 {
	n := len(features)
	if n < 2 {
		return 1.0
	}
	total := 0.0
	pairs := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			total += euclidean(features[i], features[j])
			pairs++
		}
	}
	return total / float64(pairs) / 2
}

// demoteSmallClusters relabels clusters below the size floor as noise.
func demoteSmallClusters(labels []int, minClusterSize int) {
	if minClusterSize <= 1 {
		return
	}
	sizes := make(map[int]int)
	for _, label := range labels {
		if label >= 0 {
			sizes[label]++
		}
	}
	for i, label := range labels {
		if label >= 0 && sizes[label] < minClusterSize {
			labels[i] = -1
		}
	}
}
