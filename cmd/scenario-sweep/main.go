// Command scenario-sweep runs the whole catalog (every scenario at
// every intensity) against the builtin feature table and prints one
// line per run, for calibration checks without standing up the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/schollz/progressbar/v3"

	"github.com/mnajjaa/banking-agent-simulation-platform/business/abm"
	"github.com/mnajjaa/banking-agent-simulation-platform/business/scenario"
	"github.com/mnajjaa/banking-agent-simulation-platform/domain"
	"github.com/mnajjaa/banking-agent-simulation-platform/internal/repository/dataset"
)

func main() {
	months := flag.Int("months", 6, "Scenario duration in months (1-24)")
	region := flag.String("region", "Sousse", "Targeted region")
	segment := flag.String("segment", scenario.SegmentAll, "Targeted segment")
	size := flag.Int("size", 600, "Builtin dataset size")
	seed := flag.Int64("seed", 42, "ABM seed")
	withAbm := flag.Bool("abm", false, "Also run the agent-based preview per scenario")
	flag.Parse()

	customers := dataset.Builtin(*size)
	pop := scenario.BuildPopulation(customers, scenario.DefaultKnobs().BaselineChurn)
	knobs := scenario.DefaultKnobs()

	svc := scenario.NewService(pop, knobs, nil)
	abmSvc := abm.NewService(pop, abm.DefaultConfig(), knobs)

	scenarios := scenario.ScenarioNames()
	intensities := scenario.Intensities()

	bar := progressbar.Default(int64(len(scenarios) * len(intensities)))

	type row struct {
		scenario  string
		intensity string
		result    domain.SimulationResult
		preview   *domain.AbmPreview
	}

	rows := make([]row, 0, len(scenarios)*len(intensities))
	ctx := context.Background()

	for _, name := range scenarios {
		for _, intensity := range intensities {
			cfg := domain.ScenarioConfig{
				Scenario:       name,
				Intensity:      intensity,
				Segment:        *segment,
				Region:         *region,
				DurationMonths: *months,
				Seed:           seed,
			}

			res, err := svc.Simulate(ctx, cfg)
			if err != nil {
				log.Fatalf("simulate %s/%s: %v", name, intensity, err)
			}

			r := row{scenario: name, intensity: intensity, result: res}
			if *withAbm {
				preview, err := abmSvc.Preview(ctx, cfg)
				if err != nil {
					log.Fatalf("abm preview %s/%s: %v", name, intensity, err)
				}
				r.preview = &preview
			}

			rows = append(rows, r)
			_ = bar.Add(1)
		}
	}

	for _, r := range rows {
		var revenue float64
		for _, seg := range r.result.Segments {
			revenue += seg.RevenueImpactTND
		}

		fmt.Printf("%s ; %s ; diff_clients=%d ; churn=%.3f ; digital=%.3f ; revenue_tnd=%.0f",
			r.scenario, r.intensity, r.result.Kpis.DiffClients,
			r.result.Kpis.ChurnRate, r.result.Kpis.DigitalAdoption, revenue)
		if r.preview != nil {
			fmt.Printf(" ; abm_clients=%d ; abm_churn=%.3f", r.preview.TotalClients, r.preview.Churn)
		}
		fmt.Println()
	}
}
