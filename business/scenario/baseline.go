package scenario

import (
	"github.com/mnajjaa/banking-agent-simulation-platform/domain"
)

// Population is the immutable pre-scenario state every run projects
// from. Built once at startup from the customer feature table.
type Population struct {
	Customers []domain.Customer

	Total        int
	Satisfaction float64
	Digital      float64
	CashUsage    float64
	Churn        float64

	RegionClients  map[string]int
	SegmentClients map[string]int
}

// BuildPopulation derives the baseline aggregates. Regions absent from
// the data get a floor of max(1, total/len(regions)) clients so that
// regional breakdowns always cover the full governorate list.
func BuildPopulation(customers []domain.Customer, baselineChurn float64) *Population {
	pop := &Population{
		Customers:      customers,
		Total:          len(customers),
		Churn:          baselineChurn,
		RegionClients:  make(map[string]int, len(regions)),
		SegmentClients: make(map[string]int, len(segments)),
	}

	rawRegion := make(map[string]int)
	var sumSat, sumDig, sumCash float64
	for _, c := range customers {
		sumSat += c.ConversionProbability
		sumDig += c.DigitalAdoption
		sumCash += c.CashUsageRatio
		rawRegion[c.Governorate]++
		pop.SegmentClients[c.Segment]++
	}

	if pop.Total > 0 {
		n := float64(pop.Total)
		pop.Satisfaction = sumSat / n
		pop.Digital = sumDig / n
		pop.CashUsage = sumCash / n
	}

	regionFloor := 1
	if floor := pop.Total / len(regions); floor > 1 {
		regionFloor = floor
	}
	for _, r := range regions {
		if n := rawRegion[r]; n > 0 {
			pop.RegionClients[r] = n
		} else {
			pop.RegionClients[r] = regionFloor
		}
	}

	segmentFloor := pop.Total / 3
	for _, s := range segments {
		if pop.SegmentClients[s] == 0 {
			pop.SegmentClients[s] = segmentFloor
		}
	}

	return pop
}

// BaselineRevenue is the implied total yearly revenue the comparison
// engine normalizes against.
func (p *Population) BaselineRevenue(revenuePerClient map[string]float64) float64 {
	var total float64
	for _, s := range segments {
		total += float64(p.SegmentClients[s]) * revenuePerClient[s]
	}
	return total
}
