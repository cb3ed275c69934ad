package segmentation

import (
	"math/rand"
	"testing"
)

func TestKMeansEveryClusterNonEmpty(t *testing.T) {
	// Identical points force the degenerate case where assignment alone
	// would leave clusters empty.
	points := make([][]float64, 10)
	for i := range points {
		points[i] = []float64{1, 1}
	}

	labels := kMeans(points, 3, 50, rand.New(rand.NewSource(1)))

	counts := map[int]int{}
	for _, l := range labels {
		if l < 0 || l >= 3 {
			t.Fatalf("label %d out of range", l)
		}
		counts[l]++
	}
	for cluster := 0; cluster < 3; cluster++ {
		if counts[cluster] == 0 {
			t.Errorf("cluster %d left empty", cluster)
		}
	}
}

func TestKMeansSeparatesObviousPair(t *testing.T) {
	points := [][]float64{
		{0, 0}, {0.1, 0}, {0, 0.1},
		{10, 10}, {10.1, 10}, {10, 10.1},
	}

	labels := kMeans(points, 2, 50, rand.New(rand.NewSource(1)))

	if labels[0] != labels[1] || labels[1] != labels[2] {
		t.Errorf("low group split: %v", labels)
	}
	if labels[3] != labels[4] || labels[4] != labels[5] {
		t.Errorf("high group split: %v", labels)
	}
	if labels[0] == labels[3] {
		t.Errorf("both groups collapsed into one cluster: %v", labels)
	}
}

func TestFillEmptyClustersDonates(t *testing.T) {
	points := [][]float64{{0}, {1}, {2}, {3}}
	labels := []int{0, 0, 0, 0}

	fillEmptyClusters(points, labels, 3)

	counts := map[int]int{}
	for _, l := range labels {
		counts[l]++
	}
	for cluster := 0; cluster < 3; cluster++ {
		if counts[cluster] == 0 {
			t.Errorf("cluster %d still empty after fill: %v", cluster, labels)
		}
	}
}
