package scenario

import (
	"fmt"

	"github.com/mnajjaa/banking-agent-simulation-platform/domain"
)

// CoefficientBundle holds the per-run effect rates for one
// (scenario, intensity) pair, with the intensity multiplier already
// applied. Rates are fractions of the current client base over the
// six-month reference window.
type CoefficientBundle struct {
	ClientImpactRate  float64
	SatisfactionDelta float64
	ChurnDelta        float64
	DigitalDelta      float64
	Localized         bool
	RegionBias        float64
}

type definition struct {
	clients    float64
	sat        float64
	churn      float64
	digital    float64
	localized  bool
	regionBias float64
}

const (
	ScenarioBaseline = "Baseline"
	SegmentAll       = "Tous les segments"
)

// The catalog is closed and known at build time. Loaded once, never
// mutated.
var scenarioOrder = []string{
	"Fermeture d'Agence",
	"Currency Devaluation",
	"Energy Crisis",
	"Political Uncertainty",
	"Digital Transformation",
	"Tourism Recovery",
	"Export Boom",
	"Economic Recovery",
	"Regional Instability",
	ScenarioBaseline,
}

var catalog = map[string]definition{
	"Fermeture d'Agence":     {clients: -0.04, sat: -0.02, churn: +0.03, digital: +0.01, localized: true, regionBias: 0.5},
	"Currency Devaluation":   {clients: -0.02, sat: -0.03, churn: +0.05, digital: 0},
	"Energy Crisis":          {clients: -0.05, sat: -0.04, churn: +0.06, digital: -0.01},
	"Political Uncertainty":  {clients: -0.01, sat: -0.01, churn: +0.02, digital: 0},
	"Digital Transformation": {clients: +0.01, sat: +0.01, churn: -0.02, digital: +0.05},
	"Tourism Recovery":       {clients: +0.015, sat: +0.01, churn: -0.01, digital: +0.01},
	"Export Boom":            {clients: +0.02, sat: +0.015, churn: -0.01, digital: 0},
	"Economic Recovery":      {clients: +0.01, sat: +0.01, churn: -0.01, digital: 0},
	"Regional Instability":   {clients: -0.03, sat: -0.02, churn: +0.03, digital: -0.005, localized: true},
	ScenarioBaseline:         {},
}

var intensityOrder = []string{"Faible", "Moyenne", "Forte"}

var intensityMultipliers = map[string]float64{
	"Faible":  0.6,
	"Moyenne": 1.0,
	"Forte":   1.5,
}

var segments = []string{"Premium", "SME", "Mass Market"}

// The 24 governorates. The region set is configuration, not a contract:
// spillover and baseline fallbacks iterate this slice, nothing else.
var regions = []string{
	"Tunis", "Ariana", "Ben Arous", "Manouba",
	"Nabeul", "Zaghouan", "Bizerte", "Beja", "Jendouba", "Kef", "Siliana",
	"Sousse", "Monastir", "Mahdia", "Kairouan", "Kasserine", "Sidi Bouzid",
	"Sfax", "Gabes", "Medenine", "Tataouine",
	"Gafsa", "Tozeur", "Kebili",
}

var regionSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(regions))
	for _, r := range regions {
		set[r] = struct{}{}
	}
	return set
}()

// Lookup resolves a (scenario, intensity) pair to its effect bundle.
func Lookup(scenarioName, intensity string) (CoefficientBundle, error) {
	def, ok := catalog[scenarioName]
	if !ok {
		return CoefficientBundle{}, fmt.Errorf("%w: %q", domain.ErrUnknownScenario, scenarioName)
	}

	mult, ok := intensityMultipliers[intensity]
	if !ok {
		return CoefficientBundle{}, fmt.Errorf("%w: %q", domain.ErrUnknownIntensity, intensity)
	}

	return CoefficientBundle{
		ClientImpactRate:  def.clients * mult,
		SatisfactionDelta: def.sat * mult,
		ChurnDelta:        def.churn * mult,
		DigitalDelta:      def.digital * mult,
		Localized:         def.localized,
		RegionBias:        def.regionBias,
	}, nil
}

func ScenarioNames() []string {
	out := make([]string, len(scenarioOrder))
	copy(out, scenarioOrder)
	return out
}

func Intensities() []string {
	out := make([]string, len(intensityOrder))
	copy(out, intensityOrder)
	return out
}

func Segments() []string {
	out := make([]string, len(segments))
	copy(out, segments)
	return out
}

func Regions() []string {
	out := make([]string, len(regions))
	copy(out, regions)
	return out
}

func KnownRegion(name string) bool {
	_, ok := regionSet[name]
	return ok
}

// Definitions dumps the full intensity-expanded catalog, for the admin
// endpoint and the sweep CLI.
func Definitions() map[string]map[string]CoefficientBundle {
	out := make(map[string]map[string]CoefficientBundle, len(scenarioOrder))
	for _, name := range scenarioOrder {
		perIntensity := make(map[string]CoefficientBundle, len(intensityOrder))
		for _, intensity := range intensityOrder {
			bundle, _ := Lookup(name, intensity)
			perIntensity[intensity] = bundle
		}
		out[name] = perIntensity
	}
	return out
}
