package scenario

import (
	"math"

	"github.com/mnajjaa/banking-agent-simulation-platform/domain"
)

// DurationFactor scales coefficients by exposure time. Saturating so a
// scenario can never cumulate past its asymptote; calibrated so the
// six-month reference window maps to exactly 1.0.
func DurationFactor(months int) float64 {
	return (1 - math.Exp(-float64(months)/6.0)) / (1 - math.Exp(-1))
}

// Project applies the catalog coefficients to the population. Pure:
// same config and population give bit-identical output.
func (s *Service) Project(cfg domain.ScenarioConfig) (domain.SimulationResult, error) {
	coeff, err := Lookup(cfg.Scenario, cfg.Intensity)
	if err != nil {
		return domain.SimulationResult{}, err
	}

	factor := DurationFactor(cfg.DurationMonths)
	clientsDeltaRatio := coeff.ClientImpactRate * factor
	satDelta := coeff.SatisfactionDelta * factor
	digitalDelta := coeff.DigitalDelta * factor

	total := s.pop.Total
	diffClients := roundClamped(float64(total)*clientsDeltaRatio, total)

	churn := s.severeChurn(coeff, factor)

	kpis := domain.KpiSnapshot{
		Clients:         total + diffClients,
		DiffClients:     diffClients,
		Satisfaction:    clamp01(s.pop.Satisfaction + satDelta),
		ChurnRate:       churn,
		DigitalAdoption: clamp01(s.pop.Digital + digitalDelta),
	}

	return domain.SimulationResult{
		Kpis:     kpis,
		Regional: s.regionalImpacts(cfg, coeff, clientsDeltaRatio),
		Segments: s.segmentImpacts(cfg, clientsDeltaRatio),
	}, nil
}

// severeChurn couples the scenario churn impulse to population
// behaviour: cash-heavy populations churn harder, digital-heavy ones
// are shielded.
func (s *Service) severeChurn(coeff CoefficientBundle, factor float64) float64 {
	impulse := coeff.ChurnDelta * factor * s.knobs.ChurnSeverity

	behaviorAdj := 1.0 + 0.6*(s.pop.CashUsage-0.5) - 0.6*(s.pop.Digital-0.5)

	if s.pop.Digital >= s.knobs.DigitalShield && impulse > 0 {
		impulse *= 0.7
	}

	return clamp01(s.pop.Churn + impulse*behaviorAdj)
}

// regionalImpacts distributes the client delta over regions. Localized
// scenarios hit the targeted region at (1+bias) and every other region
// at the spillover fraction; the rest apply uniformly.
func (s *Service) regionalImpacts(cfg domain.ScenarioConfig, coeff CoefficientBundle, deltaRatio float64) []domain.RegionalImpact {
	out := make([]domain.RegionalImpact, 0, len(regions))
	for _, name := range regions {
		current := s.pop.RegionClients[name]

		weight := 1.0
		if coeff.Localized {
			if name == cfg.Region {
				weight = 1.0 + coeff.RegionBias
			} else {
				weight = s.knobs.SpilloverFraction
			}
		}

		delta := roundClamped(float64(current)*deltaRatio*weight, current)

		out = append(out, domain.RegionalImpact{
			Region:         name,
			CurrentClients: current,
			DeltaClients:   delta,
			Risk:           s.knobs.RiskLevel(delta, current),
		})
	}
	return out
}

// segmentImpacts applies the delta to the targeted segment only (all
// segments when unfiltered); untargeted segments carry zero effect.
func (s *Service) segmentImpacts(cfg domain.ScenarioConfig, deltaRatio float64) []domain.SegmentImpact {
	out := make([]domain.SegmentImpact, 0, len(segments))
	for _, name := range segments {
		current := s.pop.SegmentClients[name]

		var delta int
		if cfg.Segment == SegmentAll || cfg.Segment == name {
			mult := 1.0
			if name == "Premium" && deltaRatio < 0 {
				mult = s.knobs.PremiumShrinkMultiplier
			}
			delta = roundClamped(float64(current)*deltaRatio*mult, current)
		}

		out = append(out, domain.SegmentImpact{
			Name:             name,
			CurrentClients:   current,
			DeltaClients:     delta,
			RevenueImpactTND: float64(delta) * s.knobs.RevenuePerClient[name],
		})
	}
	return out
}

// RiskLevel buckets |delta|/current against the configured thresholds.
func (k Knobs) RiskLevel(delta, current int) string {
	if current <= 0 {
		return domain.RiskLow
	}

	ratio := math.Abs(float64(delta)) / float64(current)
	switch {
	case ratio >= k.RiskHighThreshold:
		return domain.RiskHigh
	case ratio >= k.RiskMediumThreshold:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

// roundClamped rounds a client delta and keeps it within the live base.
func roundClamped(x float64, base int) int {
	n := int(math.Round(x))
	if n > base {
		return base
	}
	if n < -base {
		return -base
	}
	return n
}
