package segmentation

import (
	"math"
	"math/rand"
)

// kMeans runs Lloyd's algorithm with k-means++ seeding. All randomness
// comes from the caller's generator, so a fixed seed gives fixed labels.
// Every cluster is guaranteed at least one member.
func kMeans(points [][]float64, k, maxIter int, rng *rand.Rand) []int {
	centroids := seedCentroids(points, k, rng)
	labels := make([]int, len(points))

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, p := range points {
			best := nearestCentroid(p, centroids)
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}

		fillEmptyClusters(points, labels, k)
		recomputeCentroids(points, labels, centroids)

		if !changed && iter > 0 {
			break
		}
	}

	return labels
}

// seedCentroids picks initial centers k-means++ style: each next center
// is drawn proportionally to its squared distance from the closest
// existing one.
func seedCentroids(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	dim := len(points[0])
	centroids := make([][]float64, 0, k)

	first := append([]float64(nil), points[rng.Intn(len(points))]...)
	centroids = append(centroids, first)

	dists := make([]float64, len(points))
	for len(centroids) < k {
		var total float64
		for i, p := range points {
			d := math.Inf(1)
			for _, c := range centroids {
				if dd := sqDist(p, c); dd < d {
					d = dd
				}
			}
			dists[i] = d
			total += d
		}

		idx := 0
		if total > 0 {
			target := rng.Float64() * total
			var cum float64
			for i, d := range dists {
				cum += d
				if cum >= target {
					idx = i
					break
				}
			}
		} else {
			idx = rng.Intn(len(points))
		}

		c := make([]float64, dim)
		copy(c, points[idx])
		centroids = append(centroids, c)
	}

	return centroids
}

func nearestCentroid(p []float64, centroids [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for j, c := range centroids {
		if d := sqDist(p, c); d < bestDist {
			bestDist = d
			best = j
		}
	}
	return best
}

// fillEmptyClusters donates the member farthest from its centroid to
// any cluster that ended up empty.
func fillEmptyClusters(points [][]float64, labels []int, k int) {
	counts := make([]int, k)
	for _, l := range labels {
		counts[l]++
	}

	for cluster := 0; cluster < k; cluster++ {
		if counts[cluster] > 0 {
			continue
		}

		donor := -1
		for i, l := range labels {
			if counts[l] > 1 {
				donor = i
				break
			}
		}
		if donor < 0 {
			continue
		}

		counts[labels[donor]]--
		labels[donor] = cluster
		counts[cluster]++
	}
}

func recomputeCentroids(points [][]float64, labels []int, centroids [][]float64) {
	dim := len(points[0])
	counts := make([]int, len(centroids))
	for j := range centroids {
		for d := 0; d < dim; d++ {
			centroids[j][d] = 0
		}
	}

	for i, p := range points {
		j := labels[i]
		counts[j]++
		for d := 0; d < dim; d++ {
			centroids[j][d] += p[d]
		}
	}

	for j := range centroids {
		if counts[j] == 0 {
			continue
		}
		for d := 0; d < dim; d++ {
			centroids[j][d] /= float64(counts[j])
		}
	}
}

func sqDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}
