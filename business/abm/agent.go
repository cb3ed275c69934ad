package abm

import (
	"math"
	"math/rand"

	"github.com/mnajjaa/banking-agent-simulation-platform/business/scenario"
)

// agent is the simulation-internal customer state. Owned by exactly one
// run; never shared or persisted.
type agent struct {
	region       string
	segment      string
	satisfaction float64
	adopted      bool
	churned      bool

	// affected marks agents subject to the scenario's deltas; the rest
	// only experience baseline drift and hazards.
	affected bool
}

// stepAgent advances one agent by one month. Churn is terminal and
// adoption is one-way. All randomness comes from the run's own rng.
func (s *Service) stepAgent(rng *rand.Rand, a *agent, coeff scenario.CoefficientBundle) {
	if a.churned {
		return
	}

	target := s.pop.Satisfaction
	var churnDelta, digitalDelta float64
	if a.affected {
		target += coeff.SatisfactionDelta
		churnDelta = coeff.ChurnDelta
		digitalDelta = coeff.DigitalDelta
	}

	// Bounded drift toward the scenario-influenced target.
	drift := target - a.satisfaction
	if drift > s.cfg.MaxSatStep {
		drift = s.cfg.MaxSatStep
	} else if drift < -s.cfg.MaxSatStep {
		drift = -s.cfg.MaxSatStep
	}
	a.satisfaction = clamp01(a.satisfaction + drift)

	churnProb := s.cfg.BaseChurnHazard +
		s.cfg.ChurnHazardGain*math.Max(0, 0.5-a.satisfaction) +
		churnDelta/6
	churnProb = math.Max(0, math.Min(s.cfg.ChurnProbCap, churnProb))

	if rng.Float64() < churnProb {
		a.churned = true
		return
	}

	if !a.adopted {
		adoptProb := clamp01(s.cfg.BaseAdoptHazard + digitalDelta/3)
		if rng.Float64() < adoptProb {
			a.adopted = true
		}
	}
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
