package domain

// ClusterPoint is one customer projected to three display dimensions.
type ClusterPoint struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Z       float64 `json:"z"`
	Cluster int     `json:"cluster"`
}

// ClusterSummary reports per-cluster feature statistics. Capital,
// employees and credit index are medians so outliers do not skew a
// cluster's profile; loyalty and digital adoption are means.
type ClusterSummary struct {
	Cluster         int     `json:"cluster"`
	CapitalTND      float64 `json:"capital_tnd"`
	Employees       float64 `json:"employees"`
	CreditIndex     float64 `json:"credit_worthiness"`
	LoyaltyScore    float64 `json:"loyalty_score"`
	DigitalAdoption float64 `json:"digital_adoption"`
	Count           int     `json:"count"`
}

type Segmentation struct {
	Points  []ClusterPoint   `json:"points"`
	Summary []ClusterSummary `json:"summary"`
}
