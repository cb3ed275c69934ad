package scenario

import (
	"errors"
	"testing"

	"github.com/mnajjaa/banking-agent-simulation-platform/domain"
)

func TestValidateConfigAcceptsDefaults(t *testing.T) {
	cfg := domain.ScenarioConfig{Scenario: "Energy Crisis"}.WithDefaults()
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("ValidateConfig: %v", err)
	}
}

func TestValidateConfigNamesTheField(t *testing.T) {
	base := domain.ScenarioConfig{Scenario: "Energy Crisis"}.WithDefaults()

	cases := []struct {
		name   string
		mutate func(*domain.ScenarioConfig)
		field  string
	}{
		{"scenario", func(c *domain.ScenarioConfig) { c.Scenario = "Nope" }, "scenario"},
		{"intensity", func(c *domain.ScenarioConfig) { c.Intensity = "Massive" }, "intensity"},
		{"segment", func(c *domain.ScenarioConfig) { c.Segment = "VIP" }, "segment"},
		{"region", func(c *domain.ScenarioConfig) { c.Region = "Atlantis" }, "region"},
		{"duration low", func(c *domain.ScenarioConfig) { c.DurationMonths = -3 }, "duration_months"},
		{"duration high", func(c *domain.ScenarioConfig) { c.DurationMonths = 25 }, "duration_months"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)

			err := ValidateConfig(cfg)
			var fe *domain.FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("err = %v, want FieldError", err)
			}
			if fe.Field != tc.field {
				t.Errorf("field = %q, want %q", fe.Field, tc.field)
			}
		})
	}
}

func TestValidateConfigAllSegmentsSentinel(t *testing.T) {
	cfg := domain.ScenarioConfig{Scenario: "Energy Crisis", Segment: SegmentAll}.WithDefaults()
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("ValidateConfig: %v", err)
	}
}
