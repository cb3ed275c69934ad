package abm

import (
	"context"
	"math/rand"

	"github.com/mnajjaa/banking-agent-simulation-platform/business/scenario"
	"github.com/mnajjaa/banking-agent-simulation-platform/domain"
	"github.com/mnajjaa/banking-agent-simulation-platform/pkg/metrics"
)

// Service runs the seeded agent-based preview. The population and knobs
// are the same immutable state the projector uses, so both views
// aggregate regional and segment deltas identically.
type Service struct {
	pop   *scenario.Population
	cfg   Config
	knobs scenario.Knobs
}

func NewService(pop *scenario.Population, cfg Config, knobs scenario.Knobs) *Service {
	return &Service{
		pop:   pop,
		cfg:   cfg,
		knobs: knobs,
	}
}

// Run simulates the full population for duration_months monthly steps.
// Identical (config, seed) pairs reproduce identical trajectories: the
// run owns its generator, so concurrent runs cannot perturb each other.
func (s *Service) Run(ctx context.Context, cfg domain.ScenarioConfig) (domain.AbmResult, error) {
	cfg = cfg.WithDefaults()

	coeff, err := scenario.Lookup(cfg.Scenario, cfg.Intensity)
	if err != nil {
		return domain.AbmResult{}, err
	}

	seed := s.cfg.DefaultSeed
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	agents := s.buildAgents(rng, cfg, coeff)

	for month := 0; month < cfg.DurationMonths; month++ {
		for i := range agents {
			s.stepAgent(rng, &agents[i], coeff)
		}
	}
	metrics.AbmAgentSteps.Add(float64(len(agents) * cfg.DurationMonths))
	metrics.SimulationRuns.WithLabelValues("simulate_abm").Inc()

	return s.aggregate(agents), nil
}

// Preview runs the model and keeps only the aggregate KPIs.
func (s *Service) Preview(ctx context.Context, cfg domain.ScenarioConfig) (domain.AbmPreview, error) {
	res, err := s.Run(ctx, cfg)
	if err != nil {
		return domain.AbmPreview{}, err
	}

	return res.AbmPreview, nil
}

// buildAgents instantiates one agent per customer row. Initial adoption
// is a seeded draw against the customer's adoption score, so the initial
// population is reproducible per seed too.
func (s *Service) buildAgents(rng *rand.Rand, cfg domain.ScenarioConfig, coeff scenario.CoefficientBundle) []agent {
	agents := make([]agent, len(s.pop.Customers))
	for i, c := range s.pop.Customers {
		segmentMatch := cfg.Segment == scenario.SegmentAll || cfg.Segment == c.Segment
		regionMatch := !coeff.Localized || cfg.Region == c.Governorate

		agents[i] = agent{
			region:       c.Governorate,
			segment:      c.Segment,
			satisfaction: clamp01(c.ConversionProbability),
			adopted:      rng.Float64() < c.DigitalAdoption,
			affected:     segmentMatch && regionMatch,
		}
	}
	return agents
}

func (s *Service) aggregate(agents []agent) domain.AbmResult {
	population := len(agents)

	var active, churned, adoptedActive int
	var satSum float64
	regionStart := make(map[string]int)
	regionActive := make(map[string]int)
	segmentStart := make(map[string]int)
	segmentActive := make(map[string]int)

	for _, a := range agents {
		regionStart[a.region]++
		segmentStart[a.segment]++

		if a.churned {
			churned++
			continue
		}

		active++
		satSum += a.satisfaction
		regionActive[a.region]++
		segmentActive[a.segment]++
		if a.adopted {
			adoptedActive++
		}
	}

	preview := domain.AbmPreview{
		TotalClients: active,
		Churn:        ratio(churned, population),
	}
	if active > 0 {
		preview.Satisfaction = satSum / float64(active)
		preview.Digital = ratio(adoptedActive, active)
	}

	regional := make([]domain.RegionalImpact, 0, len(scenario.Regions()))
	for _, name := range scenario.Regions() {
		current := regionStart[name]
		delta := regionActive[name] - current
		regional = append(regional, domain.RegionalImpact{
			Region:         name,
			CurrentClients: current,
			DeltaClients:   delta,
			Risk:           s.knobs.RiskLevel(delta, current),
		})
	}

	segments := make([]domain.SegmentImpact, 0, len(scenario.Segments()))
	for _, name := range scenario.Segments() {
		current := segmentStart[name]
		delta := segmentActive[name] - current
		segments = append(segments, domain.SegmentImpact{
			Name:             name,
			CurrentClients:   current,
			DeltaClients:     delta,
			RevenueImpactTND: float64(delta) * s.knobs.RevenuePerClient[name],
		})
	}

	return domain.AbmResult{
		SimulationResult: domain.SimulationResult{
			Kpis: domain.KpiSnapshot{
				Clients:         active,
				DiffClients:     active - population,
				Satisfaction:    preview.Satisfaction,
				ChurnRate:       preview.Churn,
				DigitalAdoption: preview.Digital,
			},
			Regional: regional,
			Segments: segments,
		},
		AbmPreview: preview,
	}
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
