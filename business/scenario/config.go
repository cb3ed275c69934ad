package scenario

// Knobs are the projection policy parameters. Deployments override the
// risk thresholds and spillover via env config.
type Knobs struct {
	// Regional risk buckets on |delta_clients| / current_clients.
	RiskHighThreshold   float64
	RiskMediumThreshold float64

	// Fraction of the base client-impact rate applied to regions other
	// than the targeted one for localized scenarios.
	SpilloverFraction float64

	// Churn model.
	ChurnSeverity float64
	DigitalShield float64
	BaselineChurn float64

	// Premium clients leave slightly faster when the base shrinks.
	PremiumShrinkMultiplier float64

	// Average yearly revenue per client, TND.
	RevenuePerClient map[string]float64
}

const (
	defaultRiskHighThreshold   = 0.05
	defaultRiskMediumThreshold = 0.02
	defaultSpilloverFraction   = 0.25
	defaultChurnSeverity       = 2.0
	defaultDigitalShield       = 0.60
	defaultBaselineChurn       = 0.25
	defaultPremiumShrinkMult   = 1.15
)

func DefaultKnobs() Knobs {
	return Knobs{
		RiskHighThreshold:       defaultRiskHighThreshold,
		RiskMediumThreshold:     defaultRiskMediumThreshold,
		SpilloverFraction:       defaultSpilloverFraction,
		ChurnSeverity:           defaultChurnSeverity,
		DigitalShield:           defaultDigitalShield,
		BaselineChurn:           defaultBaselineChurn,
		PremiumShrinkMultiplier: defaultPremiumShrinkMult,
		RevenuePerClient: map[string]float64{
			"Premium":     26000,
			"SME":         7000,
			"Mass Market": 6700,
		},
	}
}
