package scenario

import (
	"context"
	"errors"
	"testing"

	"github.com/mnajjaa/banking-agent-simulation-platform/domain"
)

func TestCompareRowsAlignWithInput(t *testing.T) {
	svc := testService()
	cfgs := []domain.ScenarioConfig{
		{Scenario: "Energy Crisis"},
		{Scenario: "Digital Transformation"},
		{Scenario: "Energy Crisis", Intensity: "Forte"},
	}

	rows, err := svc.Compare(context.Background(), cfgs)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(rows) != len(cfgs) {
		t.Fatalf("got %d rows, want %d", len(rows), len(cfgs))
	}
	for i, row := range rows {
		if row.Scenario != cfgs[i].Scenario {
			t.Errorf("row %d scenario = %q, want %q", i, row.Scenario, cfgs[i].Scenario)
		}
	}
}

func TestCompareBaselineRowIsNeutral(t *testing.T) {
	svc := testService()
	rows, err := svc.Compare(context.Background(), []domain.ScenarioConfig{{Scenario: ScenarioBaseline}})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if rows[0].AdoptionChange != 0 || rows[0].RevenueChange != 0 {
		t.Errorf("baseline row should be neutral, got %+v", rows[0])
	}
}

func TestCompareSigns(t *testing.T) {
	svc := testService()
	rows, err := svc.Compare(context.Background(), []domain.ScenarioConfig{
		{Scenario: "Energy Crisis"},
		{Scenario: "Digital Transformation"},
	})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	if rows[0].RevenueChange >= 0 {
		t.Errorf("Energy Crisis revenue change = %v, want negative", rows[0].RevenueChange)
	}
	if rows[0].AdoptionChange >= 0 {
		t.Errorf("Energy Crisis adoption change = %v, want negative", rows[0].AdoptionChange)
	}
	if rows[1].RevenueChange <= 0 {
		t.Errorf("Digital Transformation revenue change = %v, want positive", rows[1].RevenueChange)
	}
	if rows[1].AdoptionChange <= 0 {
		t.Errorf("Digital Transformation adoption change = %v, want positive", rows[1].AdoptionChange)
	}
}

func TestCompareFailsWholeBatch(t *testing.T) {
	svc := testService()
	_, err := svc.Compare(context.Background(), []domain.ScenarioConfig{
		{Scenario: "Energy Crisis"},
		{Scenario: "Nope"},
	})
	if !errors.Is(err, domain.ErrUnknownScenario) {
		t.Fatalf("err = %v, want ErrUnknownScenario", err)
	}
}

func TestCompareDetailCarriesProjection(t *testing.T) {
	svc := testService()
	details, err := svc.CompareDetail(context.Background(), []domain.ScenarioConfig{{Scenario: "Energy Crisis"}})
	if err != nil {
		t.Fatalf("CompareDetail: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("got %d details, want 1", len(details))
	}

	direct, err := svc.Project(domain.ScenarioConfig{Scenario: "Energy Crisis"}.WithDefaults())
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if details[0].Result.Kpis != direct.Kpis {
		t.Errorf("detail KPIs %+v differ from direct projection %+v", details[0].Result.Kpis, direct.Kpis)
	}
}

func TestBaselineCacheReusesPerKeyTriple(t *testing.T) {
	calls := 0
	cache := newBaselineCache(func(cfg domain.ScenarioConfig) (domain.SimulationResult, error) {
		calls++
		if cfg.Scenario != ScenarioBaseline {
			t.Errorf("cache projected scenario %q, want %q", cfg.Scenario, ScenarioBaseline)
		}
		return domain.SimulationResult{}, nil
	})

	a := domain.ScenarioConfig{Scenario: "Energy Crisis", Region: "Sousse", Segment: SegmentAll, DurationMonths: 6}
	b := a
	b.Scenario = "Export Boom" // same triple, different scenario
	c := a
	c.DurationMonths = 12

	for _, cfg := range []domain.ScenarioConfig{a, b, a, c} {
		if _, err := cache.get(cfg); err != nil {
			t.Fatalf("get: %v", err)
		}
	}
	if calls != 2 {
		t.Errorf("baseline projected %d times, want 2", calls)
	}
}
