package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Customer is one row of the feature table the engines run over.
// Loaded once at startup and treated as read-only afterwards.
type Customer struct {
	ID                    uint    `gorm:"primaryKey" json:"id"`
	Name                  string  `gorm:"column:name" json:"name"`
	Governorate           string  `gorm:"column:governorate;index" json:"governorate"`
	Segment               string  `gorm:"column:segment;index" json:"segment"`
	CapitalTND            float64 `gorm:"column:capital_tnd" json:"capital_tnd"`
	Employees             int     `gorm:"column:employees" json:"employees"`
	CashUsageRatio        float64 `gorm:"column:cash_usage_ratio" json:"cash_usage_ratio"`
	DigitalAdoption       float64 `gorm:"column:digital_adoption" json:"digital_adoption"`
	ConversionProbability float64 `gorm:"column:conversion_probability" json:"conversion_probability"`
}

// SimulationRun is the audit record written after each run. Persisting
// it is best-effort and never fails a request.
type SimulationRun struct {
	ID             string            `gorm:"column:id;primaryKey" json:"id"`
	Endpoint       string            `gorm:"column:endpoint;not null" json:"endpoint"`
	Scenario       string            `gorm:"column:scenario;not null" json:"scenario"`
	Intensity      string            `gorm:"column:intensity" json:"intensity"`
	Segment        string            `gorm:"column:segment" json:"segment"`
	Region         string            `gorm:"column:region" json:"region"`
	DurationMonths int               `gorm:"column:duration_months" json:"duration_months"`
	Seed           *int64            `gorm:"column:seed" json:"seed,omitempty"`
	Context        datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
