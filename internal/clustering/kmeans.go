package clustering

import (
	"math"
	"math/rand"
)

// KMeans is a centroid-based delegate. k is derived from the data size as
// max(1, n/minClusterSize); the fixed seed keeps runs reproducible.
type KMeans struct {
	Seed    int64
	MaxIter int
}

// Cluster implements the Clusterer delegate contract. Every row receives a
// cluster id; the centroid delegate never emits noise.
func (k *KMeans) Cluster(features [][]float64, minClusterSize, minSamples int) ([]int, error) {
	n := len(features)
	if n == 0 {
		return []int{}, nil
	}
	if minClusterSize < 1 {
		minClusterSize = 1
	}

	numClusters := n / minClusterSize
	if numClusters < 1 {
		numClusters = 1
	}

	seed := k.Seed
	if seed == 0 {
		seed = DefaultSeed
	}
	maxIter := k.MaxIter
	if maxIter == 0 {
		maxIter = 100
	}

	rng := rand.New(rand.NewSource(seed))
	dim := len(features[0])

	// Initialize centroids from distinct random rows.
	centroids := make([][]float64, numClusters)
	for i, idx := range rng.Perm(n)[:numClusters] {
		centroids[i] = append([]float64(nil), features[idx]...)
	}

	labels := make([]int, n)
	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, vec := range features {
			best := 0
			bestDist := math.Inf(1)
			for c, centroid := range centroids {
				if d := euclidean(vec, centroid); d < bestDist {
					bestDist = d
					best = c
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		// Recompute centroids; empty clusters keep their previous position.
		sums := make([][]float64, numClusters)
		counts := make([]int, numClusters)
		for c := range sums {
			sums[c] = make([]float64, dim)
		}
		for i, vec := range features {
			c := labels[i]
			counts[c]++
			for d, v := range vec {
				sums[c][d] += v
			}
		}
		for c := range centroids {
			if counts[c] == 0 {
				continue
			}
			for d := range centroids[c] {
				centroids[c][d] = sums[c][d] / float64(counts[c])
			}
		}
	}

	return labels, nil
}
