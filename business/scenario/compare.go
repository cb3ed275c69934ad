package scenario

import (
	"context"
	"time"

	"github.com/mnajjaa/banking-agent-simulation-platform/domain"
	"github.com/mnajjaa/banking-agent-simulation-platform/pkg/metrics"
)

// Baseline runs are shared across scenarios within one request: two
// configs differing only in scenario must be scaled against the same
// baseline.
type baselineKey struct {
	region   string
	segment  string
	duration int
}

type baselineCache struct {
	project func(domain.ScenarioConfig) (domain.SimulationResult, error)
	entries map[baselineKey]domain.SimulationResult
}

func newBaselineCache(project func(domain.ScenarioConfig) (domain.SimulationResult, error)) *baselineCache {
	return &baselineCache{
		project: project,
		entries: make(map[baselineKey]domain.SimulationResult),
	}
}

func (c *baselineCache) get(cfg domain.ScenarioConfig) (domain.SimulationResult, error) {
	key := baselineKey{region: cfg.Region, segment: cfg.Segment, duration: cfg.DurationMonths}
	if res, ok := c.entries[key]; ok {
		return res, nil
	}

	base := cfg
	base.Scenario = ScenarioBaseline
	res, err := c.project(base)
	if err != nil {
		return domain.SimulationResult{}, err
	}

	c.entries[key] = res
	return res, nil
}

// Compare runs the projector for each config against its baseline and
// returns index-aligned rows. Any failure fails the whole batch.
func (s *Service) Compare(ctx context.Context, cfgs []domain.ScenarioConfig) ([]domain.ComparisonRow, error) {
	details, err := s.compareAll(ctx, cfgs)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.ComparisonRow, len(details))
	for i, d := range details {
		rows[i] = d.ComparisonRow
	}
	return rows, nil
}

// CompareDetail is the batched variant carrying each scenario's full
// projection, so callers do not fan out into per-scenario /simulate
// calls afterwards.
func (s *Service) CompareDetail(ctx context.Context, cfgs []domain.ScenarioConfig) ([]domain.ComparisonDetail, error) {
	return s.compareAll(ctx, cfgs)
}

func (s *Service) compareAll(ctx context.Context, cfgs []domain.ScenarioConfig) ([]domain.ComparisonDetail, error) {
	start := time.Now()
	baselines := newBaselineCache(s.Project)
	baseRevenue := s.pop.BaselineRevenue(s.knobs.RevenuePerClient)

	out := make([]domain.ComparisonDetail, 0, len(cfgs))
	for _, cfg := range cfgs {
		cfg = cfg.WithDefaults()

		base, err := baselines.get(cfg)
		if err != nil {
			return nil, err
		}

		res, err := s.Project(cfg)
		if err != nil {
			return nil, err
		}

		var revenueImpact float64
		for _, seg := range res.Segments {
			revenueImpact += seg.RevenueImpactTND
		}

		var revenueChange float64
		if baseRevenue > 0 {
			revenueChange = revenueImpact / baseRevenue
		}

		out = append(out, domain.ComparisonDetail{
			ComparisonRow: domain.ComparisonRow{
				Scenario:       cfg.Scenario,
				AdoptionChange: res.Kpis.DigitalAdoption - base.Kpis.DigitalAdoption,
				RevenueChange:  revenueChange,
			},
			Result: res,
		})
	}

	metrics.SimulateLatency.Observe(time.Since(start).Seconds())
	metrics.SimulationRuns.WithLabelValues("compare").Add(float64(len(cfgs)))

	return out, nil
}
