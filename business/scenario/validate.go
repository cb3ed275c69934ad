package scenario

import (
	"github.com/mnajjaa/banking-agent-simulation-platform/domain"
)

const (
	MinDurationMonths = 1
	MaxDurationMonths = 24
)

// ValidateConfig checks a normalized config against the closed enum
// sets. Values outside them are rejected, never defaulted.
func ValidateConfig(cfg domain.ScenarioConfig) error {
	if _, ok := catalog[cfg.Scenario]; !ok {
		return domain.NewFieldError("scenario", "unknown scenario %q", cfg.Scenario)
	}

	if _, ok := intensityMultipliers[cfg.Intensity]; !ok {
		return domain.NewFieldError("intensity", "unknown intensity %q", cfg.Intensity)
	}

	if cfg.Segment != SegmentAll {
		known := false
		for _, s := range segments {
			if s == cfg.Segment {
				known = true
				break
			}
		}
		if !known {
			return domain.NewFieldError("segment", "unknown segment %q", cfg.Segment)
		}
	}

	if !KnownRegion(cfg.Region) {
		return domain.NewFieldError("region", "unknown region %q", cfg.Region)
	}

	if cfg.DurationMonths < MinDurationMonths || cfg.DurationMonths > MaxDurationMonths {
		return domain.NewFieldError("duration_months", "must be between %d and %d, got %d",
			MinDurationMonths, MaxDurationMonths, cfg.DurationMonths)
	}

	return nil
}
