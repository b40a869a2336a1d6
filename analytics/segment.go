package analytics

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"shopai/models"
)

const (
	maxClusters    = 4
	kmeansSeed     = 42
	kmeansMaxIters = 100
)

// Spend-rank labels, highest mean Monetary first. They are a quartile
// reading and only apply when exactly four clusters form; smaller customer
// bases get generic group names instead.
var segmentLabels = [maxClusters]string{
	"VIP (High Spender)",
	"Potential Customer",
	"Regular Customer",
	"At Risk of Churn",
}

// CustomerStats is one customer's completed-order aggregate.
type CustomerStats struct {
	UserID       int
	Frequency    int
	Monetary     float64
	LastPurchase time.Time
}

// SegmentCustomers computes RFM features, standardizes them, clusters
// customers into min(4, N) cohorts with a seeded k-means and labels each
// cluster by spend rank. Output is deterministic for identical input.
func SegmentCustomers(customers []CustomerStats) ([]models.SegmentCount, []models.CustomerSegment) {
	if len(customers) == 0 {
		return []models.SegmentCount{}, []models.CustomerSegment{}
	}

	// Recency is measured against the freshest purchase in the data set plus
	// one day, not wall-clock now, so results reproduce on identical input.
	snapshot := customers[0].LastPurchase
	for _, c := range customers[1:] {
		if c.LastPurchase.After(snapshot) {
			snapshot = c.LastPurchase
		}
	}
	snapshot = snapshot.AddDate(0, 0, 1)

	n := len(customers)
	recency := make([]float64, n)
	frequency := make([]float64, n)
	monetary := make([]float64, n)
	for i, c := range customers {
		recency[i] = math.Floor(snapshot.Sub(c.LastPurchase).Hours() / 24)
		frequency[i] = float64(c.Frequency)
		monetary[i] = c.Monetary
	}

	points := make([][]float64, n)
	for i := range points {
		points[i] = make([]float64, 3)
	}
	for col, feature := range [][]float64{recency, frequency, monetary} {
		scaled := standardize(feature)
		for i, v := range scaled {
			points[i][col] = v
		}
	}

	k := maxClusters
	if n < k {
		k = n
	}
	assignment := kmeans(points, k)

	// Rank clusters by mean spend, richest first.
	sums := make([]float64, k)
	counts := make([]int, k)
	for i, cluster := range assignment {
		sums[cluster] += monetary[i]
		counts[cluster]++
	}
	means := make([]float64, k)
	for i := range means {
		// A cluster can end up empty when customers coincide; rank it last.
		means[i] = math.Inf(-1)
		if counts[i] > 0 {
			means[i] = sums[i] / float64(counts[i])
		}
	}
	order := make([]int, k)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return means[order[a]] > means[order[b]]
	})

	labelByCluster := make(map[int]string, k)
	for rank, cluster := range order {
		if k >= maxClusters {
			labelByCluster[cluster] = segmentLabels[rank]
		} else {
			labelByCluster[cluster] = fmt.Sprintf("Group %d", rank+1)
		}
	}

	details := make([]models.CustomerSegment, n)
	countByLabel := make(map[string]int, k)
	for i, c := range customers {
		label := labelByCluster[assignment[i]]
		countByLabel[label]++
		details[i] = models.CustomerSegment{
			UserID:    c.UserID,
			Label:     label,
			Recency:   int(recency[i]),
			Frequency: c.Frequency,
			Monetary:  c.Monetary,
		}
	}

	// Chart entries in spend-rank order.
	chart := make([]models.SegmentCount, 0, k)
	for _, cluster := range order {
		label := labelByCluster[cluster]
		if countByLabel[label] == 0 {
			continue
		}
		chart = append(chart, models.SegmentCount{Name: label, Value: countByLabel[label]})
	}

	return chart, details
}

// standardize rescales a feature to zero mean and unit variance. A feature
// with no spread is left centered (scale 1), matching the usual
// StandardScaler treatment of zero variance.
func standardize(values []float64) []float64 {
	mean, std := stat.MeanStdDev(values, nil)
	if std == 0 || math.IsNaN(std) {
		std = 1
	}
	scaled := make([]float64, len(values))
	for i, v := range values {
		scaled[i] = (v - mean) / std
	}
	return scaled
}

// kmeans runs Lloyd's algorithm with k-means++ seeding and a fixed seed, so
// identical input always yields identical assignments.
func kmeans(points [][]float64, k int) []int {
	rng := rand.New(rand.NewSource(kmeansSeed))
	centroids := seedCentroids(points, k, rng)
	assignment := make([]int, len(points))

	for iter := 0; iter < kmeansMaxIters; iter++ {
		changed := false
		for i, p := range points {
			best, bestDist := 0, math.Inf(1)
			for j, c := range centroids {
				if d := sqDist(p, c); d < bestDist {
					best, bestDist = j, d
				}
			}
			if assignment[i] != best {
				assignment[i] = best
				changed = true
			}
		}
		if iter > 0 && !changed {
			break
		}

		counts := make([]int, k)
		sums := make([][]float64, k)
		for j := range sums {
			sums[j] = make([]float64, len(points[0]))
		}
		for i, p := range points {
			counts[assignment[i]]++
			for d, v := range p {
				sums[assignment[i]][d] += v
			}
		}
		for j := range centroids {
			if counts[j] == 0 {
				// An emptied cluster restarts on a random point.
				centroids[j] = clone(points[rng.Intn(len(points))])
				continue
			}
			for d := range centroids[j] {
				centroids[j][d] = sums[j][d] / float64(counts[j])
			}
		}
	}
	return assignment
}

// seedCentroids picks initial centres k-means++ style: each new centre is
// drawn proportionally to its squared distance from the nearest existing
// one.
func seedCentroids(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, clone(points[rng.Intn(len(points))]))

	for len(centroids) < k {
		weights := make([]float64, len(points))
		var total float64
		for i, p := range points {
			nearest := math.Inf(1)
			for _, c := range centroids {
				if d := sqDist(p, c); d < nearest {
					nearest = d
				}
			}
			weights[i] = nearest
			total += nearest
		}

		if total == 0 {
			// All points coincide with existing centres.
			centroids = append(centroids, clone(points[rng.Intn(len(points))]))
			continue
		}

		target := rng.Float64() * total
		idx := len(points) - 1
		for i, w := range weights {
			target -= w
			if target <= 0 {
				idx = i
				break
			}
		}
		centroids = append(centroids, clone(points[idx]))
	}
	return centroids
}

func sqDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func clone(p []float64) []float64 {
	return append([]float64(nil), p...)
}
