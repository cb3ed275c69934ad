package abm

// Config holds the per-step hazard parameters of the agent model.
// The churn and adoption deltas coming from the scenario catalog are
// expressed per six-month window, so the step functions divide them
// down to monthly contributions.
type Config struct {
	// Largest monthly satisfaction move toward the scenario target.
	MaxSatStep float64

	// Monthly churn hazard floor for a content agent, and the extra
	// hazard per unit of dissatisfaction below 0.5.
	BaseChurnHazard float64
	ChurnHazardGain float64

	// Hard cap on the monthly churn probability.
	ChurnProbCap float64

	// Monthly adoption hazard floor.
	BaseAdoptHazard float64

	// Seed used when the request does not carry one.
	DefaultSeed int64
}

const (
	defaultMaxSatStep      = 0.03
	defaultBaseChurnHazard = 0.008
	defaultChurnHazardGain = 0.25
	defaultChurnProbCap    = 0.35
	defaultBaseAdoptHazard = 0.01
	defaultSeed            = 42
)

func DefaultConfig() Config {
	return Config{
		MaxSatStep:      defaultMaxSatStep,
		BaseChurnHazard: defaultBaseChurnHazard,
		ChurnHazardGain: defaultChurnHazardGain,
		ChurnProbCap:    defaultChurnProbCap,
		BaseAdoptHazard: defaultBaseAdoptHazard,
		DefaultSeed:     defaultSeed,
	}
}
