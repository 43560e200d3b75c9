package insights

import (
	"math"
	"math/rand"
)

// CosineSimilarity returns the cosine of the angle between two equal-length
// vectors, or 0 when either vector is zero or the lengths differ.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func euclideanDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// KMeansResult is the outcome of one k-means run.
type KMeansResult struct {
	Assignments []int
	Centroids   [][]float64
	Iterations  int
}

// KMeans clusters data into k groups using Lloyd's algorithm with k-means++
// seeding. k is clamped to len(data). The seeding is randomized; callers that
// need reproducibility should pin the global rand seed.
func KMeans(data [][]float64, k, maxIterations int, tolerance float64) KMeansResult {
	if len(data) == 0 || k <= 0 {
		return KMeansResult{}
	}
	if k > len(data) {
		k = len(data)
	}
	if maxIterations <= 0 {
		maxIterations = 100
	}

	n := len(data)
	dims := len(data[0])

	centroids := seedCentroids(data, k)
	assignments := make([]int, n)

	iteration := 0
	for ; iteration < maxIterations; iteration++ {
		changed := false
		for i := 0; i < n; i++ {
			best := 0
			minDist := math.Inf(1)
			for j := 0; j < k; j++ {
				if d := euclideanDistance(data[i], centroids[j]); d < minDist {
					minDist = d
					best = j
				}
			}
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}

		newCentroids := make([][]float64, k)
		counts := make([]int, k)
		for j := range newCentroids {
			newCentroids[j] = make([]float64, dims)
		}
		for i := 0; i < n; i++ {
			c := assignments[i]
			counts[c]++
			for d := 0; d < dims; d++ {
				newCentroids[c][d] += data[i][d]
			}
		}

		maxShift := 0.0
		for j := 0; j < k; j++ {
			if counts[j] == 0 {
				// Empty cluster: reseed from a random point.
				copy(newCentroids[j], data[rand.Intn(n)])
			} else {
				for d := 0; d < dims; d++ {
					newCentroids[j][d] /= float64(counts[j])
				}
			}
			if shift := euclideanDistance(centroids[j], newCentroids[j]); shift > maxShift {
				maxShift = shift
			}
		}
		centroids = newCentroids

		if maxShift < tolerance {
			break
		}
	}

	return KMeansResult{
		Assignments: assignments,
		Centroids:   centroids,
		Iterations:  iteration + 1,
	}
}

func seedCentroids(data [][]float64, k int) [][]float64 {
	n := len(data)
	centroids := make([][]float64, 0, k)
	used := make(map[int]bool, k)

	first := rand.Intn(n)
	centroids = append(centroids, append([]float64(nil), data[first]...))
	used[first] = true

	for len(centroids) < k {
		distances := make([]float64, n)
		var sum float64
		for j := 0; j < n; j++ {
			if used[j] {
				continue
			}
			minDist := math.Inf(1)
			for _, c := range centroids {
				if d := euclideanDistance(data[j], c); d < minDist {
					minDist = d
				}
			}
			distances[j] = minDist * minDist
			sum += distances[j]
		}

		next := 0
		r := rand.Float64() * sum
		for j := 0; j < n; j++ {
			r -= distances[j]
			if r <= 0 && !used[j] {
				next = j
				break
			}
		}
		centroids = append(centroids, append([]float64(nil), data[next]...))
		used[next] = true
	}
	return centroids
}
