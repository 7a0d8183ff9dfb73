// Package clustering groups fused skill vectors and computes per-cluster statistics.
package clustering

import (
	"fmt"
	"math"
)

// Clusterer is the pluggable clustering delegate. Implementations return one
// label per input row: a non-negative cluster id or -1 for noise.
type Clusterer interface {
	Cluster(features [][]float64, minClusterSize, minSamples int) ([]int, error)
}

// Algorithm names accepted by NewClusterer.
const (
	AlgorithmDBSCAN = "dbscan"
	AlgorithmKMeans = "kmeans"
)

// DefaultSeed is the fixed seed for the centroid-based delegate.
const DefaultSeed = 42

// NewClusterer returns the built-in delegate for the given algorithm name.
func NewClusterer(algorithm string, seed int64) (Clusterer, error) {
	switch algorithm {
	case AlgorithmDBSCAN, "":
		return &DBSCAN{}, nil
	case AlgorithmKMeans:
		return &KMeans{Seed: seed}, nil
	default:
		return nil, fmt.Errorf("unknown clustering algorithm %q", algorithm)
	}
}

// DelegateError reports a delegate that violated the labeling contract.
type DelegateError struct {
	Message string
}

func (e *DelegateError) Error() string {
	return fmt.Sprintf("clustering delegate contract violation: %s", e.Message)
}

// checkLabels validates a delegate's output against the labeling contract.
func checkLabels(labels []int, n int) error {
	if len(labels) != n {
		return &DelegateError{Message: fmt.Sprintf("returned %d labels for %d rows", len(labels), n)}
	}
	for i, label := range labels {
		if label < -1 {
			return &DelegateError{Message: fmt.Sprintf("label %d at row %d is below -1", label, i)}
		}
	}
	return nil
}

// euclidean returns the euclidean distance between two equal-length vectors.
func euclidean(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
