package scenario

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/mnajjaa/banking-agent-simulation-platform/domain"
	"github.com/mnajjaa/banking-agent-simulation-platform/pkg/logger"
	"github.com/mnajjaa/banking-agent-simulation-platform/pkg/metrics"
)

// RunRepository persists run audit records.
type RunRepository interface {
	Save(ctx context.Context, run domain.SimulationRun) error
}

type Service struct {
	pop   *Population
	knobs Knobs
	runs  RunRepository
}

// NewService wires the projector over an immutable population. runs may
// be nil when no database is configured.
func NewService(pop *Population, knobs Knobs, runs RunRepository) *Service {
	return &Service{
		pop:   pop,
		knobs: knobs,
		runs:  runs,
	}
}

func (s *Service) Population() *Population {
	return s.pop
}

func (s *Service) Knobs() Knobs {
	return s.knobs
}

func (s *Service) Simulate(ctx context.Context, cfg domain.ScenarioConfig) (domain.SimulationResult, error) {
	cfg = cfg.WithDefaults()

	start := time.Now()
	res, err := s.Project(cfg)
	if err != nil {
		return domain.SimulationResult{}, err
	}

	metrics.SimulateLatency.Observe(time.Since(start).Seconds())
	metrics.SimulationRuns.WithLabelValues("simulate").Inc()

	s.recordRun(ctx, "simulate", cfg)

	return res, nil
}

func (s *Service) Schema() domain.Schema {
	return domain.Schema{
		Scenarios:   ScenarioNames(),
		Intensities: Intensities(),
		Segments:    append([]string{SegmentAll}, Segments()...),
		Regions:     Regions(),
	}
}

// recordRun writes the audit row. Best-effort: a failed insert is a log
// line, never a failed request.
func (s *Service) recordRun(ctx context.Context, endpoint string, cfg domain.ScenarioConfig) {
	if s.runs == nil {
		return
	}

	run := domain.SimulationRun{
		ID:             uuid.NewString(),
		Endpoint:       endpoint,
		Scenario:       cfg.Scenario,
		Intensity:      cfg.Intensity,
		Segment:        cfg.Segment,
		Region:         cfg.Region,
		DurationMonths: cfg.DurationMonths,
		Seed:           cfg.Seed,
		Context: datatypes.JSONMap{
			"population_total": s.pop.Total,
		},
	}

	if err := s.runs.Save(ctx, run); err != nil {
		logger.Warn("failed to persist simulation run", "endpoint", endpoint, "error", err)
	}
}
