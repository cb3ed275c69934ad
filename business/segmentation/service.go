package segmentation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/mnajjaa/banking-agent-simulation-platform/domain"
	"github.com/mnajjaa/banking-agent-simulation-platform/pkg/logger"
	"github.com/mnajjaa/banking-agent-simulation-platform/pkg/metrics"
)

const (
	MinClusters = 2
	MaxClusters = 8

	clusterSeed   = 42
	maxIterations = 100
)

// ResultCache caches full clustering results per cluster count. The
// feature table is immutable for the process lifetime, so the result is
// a pure function of n_clusters.
type ResultCache interface {
	Get(ctx context.Context, nClusters int) (*domain.Segmentation, error)
	Set(ctx context.Context, nClusters int, seg *domain.Segmentation) error
}

// featureRow keeps the raw display values next to the standardized
// clustering vector.
type featureRow struct {
	capital     float64
	employees   float64
	creditIndex float64
	loyalty     float64
	digital     float64
}

type Service struct {
	rows     []featureRow
	features [][]float64
	cache    ResultCache
}

// NewService precomputes the standardized feature matrix: capital,
// employees, a credit index blended from both z-scores (0.6/0.4),
// loyalty and digital adoption. cache may be nil.
func NewService(customers []domain.Customer, cache ResultCache) *Service {
	kept := make([]domain.Customer, 0, len(customers))
	for _, c := range customers {
		if c.CapitalTND == 0 && c.Employees == 0 {
			continue
		}
		kept = append(kept, c)
	}

	capZ := zscores(kept, func(c domain.Customer) float64 { return c.CapitalTND })
	empZ := zscores(kept, func(c domain.Customer) float64 { return float64(c.Employees) })

	rows := make([]featureRow, len(kept))
	for i, c := range kept {
		rows[i] = featureRow{
			capital:     c.CapitalTND,
			employees:   float64(c.Employees),
			creditIndex: 0.6*capZ[i] + 0.4*empZ[i],
			loyalty:     c.ConversionProbability,
			digital:     c.DigitalAdoption,
		}
	}

	return &Service{
		rows:     rows,
		features: buildFeatureMatrix(rows),
		cache:    cache,
	}
}

// Cluster partitions the feature table into nClusters groups. Fixed
// seed, so results are deterministic for a fixed table.
func (s *Service) Cluster(ctx context.Context, nClusters int) (*domain.Segmentation, error) {
	if nClusters < MinClusters || nClusters > MaxClusters {
		return nil, fmt.Errorf("%w: n_clusters must be in [%d,%d], got %d",
			domain.ErrInvalidClusterCount, MinClusters, MaxClusters, nClusters)
	}
	if nClusters > len(s.rows) {
		return nil, fmt.Errorf("%w: n_clusters %d exceeds %d available rows",
			domain.ErrInvalidClusterCount, nClusters, len(s.rows))
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, nClusters); err != nil {
			logger.Debug("segmentation cache read failed", "error", err)
		} else if cached != nil {
			metrics.SegmentationCacheHits.Inc()
			return cached, nil
		}
	}

	rng := rand.New(rand.NewSource(clusterSeed))
	labels := kMeans(s.features, nClusters, maxIterations, rng)

	seg := &domain.Segmentation{
		Points:  s.points(labels),
		Summary: s.summarize(labels, nClusters),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, nClusters, seg); err != nil {
			logger.Debug("segmentation cache write failed", "error", err)
		}
	}

	return seg, nil
}

func (s *Service) Rows() int {
	return len(s.rows)
}

// points projects every row to the three display axes: raw capital,
// raw employee count and the credit index.
func (s *Service) points(labels []int) []domain.ClusterPoint {
	out := make([]domain.ClusterPoint, len(s.rows))
	for i, r := range s.rows {
		out[i] = domain.ClusterPoint{
			X:       r.capital,
			Y:       r.employees,
			Z:       r.creditIndex,
			Cluster: labels[i],
		}
	}
	return out
}

func (s *Service) summarize(labels []int, k int) []domain.ClusterSummary {
	byCluster := make([][]featureRow, k)
	for i, r := range s.rows {
		byCluster[labels[i]] = append(byCluster[labels[i]], r)
	}

	out := make([]domain.ClusterSummary, 0, k)
	for cluster, members := range byCluster {
		if len(members) == 0 {
			continue
		}

		var loySum, digSum float64
		caps := make([]float64, len(members))
		emps := make([]float64, len(members))
		credits := make([]float64, len(members))
		for i, m := range members {
			caps[i] = m.capital
			emps[i] = m.employees
			credits[i] = m.creditIndex
			loySum += m.loyalty
			digSum += m.digital
		}

		n := float64(len(members))
		out = append(out, domain.ClusterSummary{
			Cluster:         cluster,
			CapitalTND:      median(caps),
			Employees:       median(emps),
			CreditIndex:     median(credits),
			LoyaltyScore:    loySum / n,
			DigitalAdoption: digSum / n,
			Count:           len(members),
		})
	}

	return out
}

func buildFeatureMatrix(rows []featureRow) [][]float64 {
	raw := make([][]float64, len(rows))
	for i, r := range rows {
		raw[i] = []float64{r.capital, r.employees, r.creditIndex, r.loyalty, r.digital}
	}
	if len(raw) == 0 {
		return raw
	}

	// Standardize each column so capital does not dominate the distance.
	dim := len(raw[0])
	for d := 0; d < dim; d++ {
		var sum float64
		for _, p := range raw {
			sum += p[d]
		}
		mean := sum / float64(len(raw))

		var varSum float64
		for _, p := range raw {
			diff := p[d] - mean
			varSum += diff * diff
		}
		std := math.Sqrt(varSum / float64(len(raw)))
		if std == 0 {
			std = 1
		}

		for _, p := range raw {
			p[d] = (p[d] - mean) / std
		}
	}

	return raw
}

func zscores(customers []domain.Customer, get func(domain.Customer) float64) []float64 {
	out := make([]float64, len(customers))
	if len(customers) == 0 {
		return out
	}

	var sum float64
	for _, c := range customers {
		sum += get(c)
	}
	mean := sum / float64(len(customers))

	var varSum float64
	for _, c := range customers {
		diff := get(c) - mean
		varSum += diff * diff
	}
	std := math.Sqrt(varSum / float64(len(customers)))
	if std == 0 {
		std = 1
	}

	for i, c := range customers {
		out[i] = (get(c) - mean) / std
	}
	return out
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
