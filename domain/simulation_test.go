package domain

import "testing"

func TestWithDefaults(t *testing.T) {
	cfg := ScenarioConfig{Scenario: "Energy Crisis"}.WithDefaults()

	if cfg.Intensity != "Moyenne" {
		t.Errorf("intensity = %q", cfg.Intensity)
	}
	if cfg.Segment != "Tous les segments" {
		t.Errorf("segment = %q", cfg.Segment)
	}
	if cfg.Region != "Sousse" {
		t.Errorf("region = %q", cfg.Region)
	}
	if cfg.DurationMonths != 6 {
		t.Errorf("duration_months = %d", cfg.DurationMonths)
	}
	if cfg.Seed != nil {
		t.Errorf("seed should stay unset")
	}
}

func TestWithDefaultsKeepsExplicitValues(t *testing.T) {
	seed := int64(9)
	in := ScenarioConfig{
		Scenario:       "Energy Crisis",
		Intensity:      "Forte",
		Segment:        "SME",
		Region:         "Sfax",
		DurationMonths: 12,
		Seed:           &seed,
	}
	if got := in.WithDefaults(); got != in {
		t.Errorf("explicit config mutated: %+v", got)
	}
}

func TestFieldErrorMessage(t *testing.T) {
	err := NewFieldError("region", "unknown region %q", "Atlantis")
	want := `region: unknown region "Atlantis"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
