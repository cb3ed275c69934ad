package domain

// ScenarioConfig identifies one simulation run. Immutable once submitted.
type ScenarioConfig struct {
	Scenario       string `json:"scenario"`
	Intensity      string `json:"intensity"`
	Segment        string `json:"segment"`
	Region         string `json:"region"`
	DurationMonths int    `json:"duration_months"`
	Seed           *int64 `json:"seed,omitempty"`
}

// WithDefaults fills the optional fields the way the API has always
// defaulted them. Zero duration means the caller omitted it.
func (c ScenarioConfig) WithDefaults() ScenarioConfig {
	if c.Intensity == "" {
		c.Intensity = "Moyenne"
	}
	if c.Segment == "" {
		c.Segment = "Tous les segments"
	}
	if c.Region == "" {
		c.Region = "Sousse"
	}
	if c.DurationMonths == 0 {
		c.DurationMonths = 6
	}

	return c
}

type KpiSnapshot struct {
	Clients         int     `json:"clients"`
	DiffClients     int     `json:"diff_clients"`
	Satisfaction    float64 `json:"satisfaction"`
	ChurnRate       float64 `json:"churn_rate"`
	DigitalAdoption float64 `json:"digital_adoption"`
}

const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

type RegionalImpact struct {
	Region         string `json:"region"`
	CurrentClients int    `json:"current_clients"`
	DeltaClients   int    `json:"delta_clients"`
	Risk           string `json:"risk"`
}

type SegmentImpact struct {
	Name             string  `json:"name"`
	CurrentClients   int     `json:"current_clients"`
	DeltaClients     int     `json:"delta_clients"`
	RevenueImpactTND float64 `json:"revenue_impact_tnd"`
}

// SimulationResult is the response shape shared by /simulate and
// /simulate_abm.
type SimulationResult struct {
	Kpis     KpiSnapshot      `json:"kpis"`
	Regional []RegionalImpact `json:"regional"`
	Segments []SegmentImpact  `json:"segments"`
}

type ComparisonRow struct {
	Scenario       string  `json:"scenario"`
	AdoptionChange float64 `json:"adoption_change"`
	RevenueChange  float64 `json:"revenue_change"`
}

// ComparisonDetail is the batched variant: one comparison row together
// with the full projection, so dashboards do not need a follow-up
// /simulate call per scenario.
type ComparisonDetail struct {
	ComparisonRow
	Result SimulationResult `json:"result"`
}

// AbmPreview aggregates the agent population at the final step of a run.
type AbmPreview struct {
	TotalClients int     `json:"total_clients"`
	Satisfaction float64 `json:"satisfaction"`
	Churn        float64 `json:"churn"`
	Digital      float64 `json:"digital"`
}

// AbmResult bundles agent-aggregated impacts with the preview KPIs.
type AbmResult struct {
	SimulationResult
	AbmPreview AbmPreview `json:"abm_preview"`
}

// Schema lists the closed sets of valid selector values. Kept in sync
// with the catalog by construction: the handler sources it from there.
type Schema struct {
	Scenarios   []string `json:"scenarios"`
	Intensities []string `json:"intensities"`
	Segments    []string `json:"segments"`
	Regions     []string `json:"regions"`
}
