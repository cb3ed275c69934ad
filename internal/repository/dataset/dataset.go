package dataset

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/mnajjaa/banking-agent-simulation-platform/business/scenario"
	"github.com/mnajjaa/banking-agent-simulation-platform/domain"
)

// The builtin dataset is generated, not random: a fixed seed makes the
// feature table identical on every start, which the deterministic
// endpoints depend on.
const builtinSeed = 7

var sectors = []string{
	"Agriculture", "Textile", "Commerce", "Industrie",
	"Finance", "Banque", "Telecom", "Tech",
	"Tourisme", "Transport", "Sante", "Energie",
}

// Region draw weights; coastal economic centers dominate, every
// governorate keeps a nonzero share.
var regionWeights = map[string]int{
	"Tunis": 6, "Sfax": 4, "Sousse": 4, "Ariana": 3, "Ben Arous": 3,
	"Nabeul": 2, "Monastir": 2, "Bizerte": 2, "Medenine": 2,
}

// Builtin generates the deterministic customer feature table used when
// no Postgres or CSV source is configured.
func Builtin(size int) []domain.Customer {
	rng := rand.New(rand.NewSource(builtinSeed))
	regions := scenario.Regions()

	weights := make([]int, len(regions))
	totalWeight := 0
	for i, r := range regions {
		w := 1
		if ww, ok := regionWeights[r]; ok {
			w = ww
		}
		weights[i] = w
		totalWeight += w
	}

	customers := make([]domain.Customer, size)
	for i := range customers {
		region := regions[weightedIndex(rng, weights, totalWeight)]
		sector := sectors[rng.Intn(len(sectors))]

		employees := int(math.Exp(rng.NormFloat64()*1.1 + 3.0))
		if employees < 1 {
			employees = 1
		}
		if employees > 2000 {
			employees = 2000
		}

		capital := float64(employees) * (20000 + rng.Float64()*80000)

		cash := estimateCashUsage(sector, employees) + (rng.Float64()-0.5)*0.1
		cash = clamp01(cash)

		digital := estimateDigitalAdoption(sector, employees) + (rng.Float64()-0.5)*0.1
		digital = clamp01(digital)

		customers[i] = domain.Customer{
			ID:                    uint(i + 1),
			Name:                  fmt.Sprintf("Client %04d", i+1),
			Governorate:           region,
			Segment:               segmentForSize(employees),
			CapitalTND:            math.Round(capital),
			Employees:             employees,
			CashUsageRatio:        cash,
			DigitalAdoption:       digital,
			ConversionProbability: conversionProbability(cash, digital),
		}
	}

	return customers
}

// LoadCSV reads a customer table exported from the data team. Expected
// header: id,name,governorate,segment,capital_tnd,employees,
// cash_usage_ratio,digital_adoption,conversion_probability. The last
// column may be empty, in which case it is derived.
func LoadCSV(path string) ([]domain.Customer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("dataset csv %s has no data rows", path)
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"governorate", "segment", "capital_tnd", "employees", "cash_usage_ratio", "digital_adoption"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("dataset csv missing column %q", required)
		}
	}

	customers := make([]domain.Customer, 0, len(records)-1)
	for rowNum, rec := range records[1:] {
		cash, err := parseFloat(rec, col, "cash_usage_ratio")
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum+2, err)
		}
		digital, err := parseFloat(rec, col, "digital_adoption")
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum+2, err)
		}
		capital, err := parseFloat(rec, col, "capital_tnd")
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum+2, err)
		}
		employees, err := parseFloat(rec, col, "employees")
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum+2, err)
		}

		conversion := conversionProbability(cash, digital)
		if idx, ok := col["conversion_probability"]; ok && strings.TrimSpace(rec[idx]) != "" {
			conversion, err = parseFloat(rec, col, "conversion_probability")
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", rowNum+2, err)
			}
		}

		c := domain.Customer{
			ID:                    uint(rowNum + 1),
			Governorate:           field(rec, col, "governorate"),
			Segment:               field(rec, col, "segment"),
			CapitalTND:            capital,
			Employees:             int(employees),
			CashUsageRatio:        clamp01(cash),
			DigitalAdoption:       clamp01(digital),
			ConversionProbability: clamp01(conversion),
		}
		if idx, ok := col["id"]; ok {
			if id, err := strconv.ParseUint(strings.TrimSpace(rec[idx]), 10, 64); err == nil {
				c.ID = uint(id)
			}
		}
		if idx, ok := col["name"]; ok {
			c.Name = strings.TrimSpace(rec[idx])
		}

		customers = append(customers, c)
	}

	return customers, nil
}

// segmentForSize mirrors the business-size heuristic: micro shops are
// mass market, mid-size companies are SME, large ones are premium.
func segmentForSize(employees int) string {
	switch {
	case employees < 50:
		return "Mass Market"
	case employees < 250:
		return "SME"
	default:
		return "Premium"
	}
}

func estimateCashUsage(sector string, employees int) float64 {
	val := 0.5
	if employees < 50 {
		val += 0.2
	}
	if employees >= 250 {
		val -= 0.2
	}
	switch sector {
	case "Agriculture", "Textile", "Commerce":
		val += 0.2
	case "Finance", "Banque", "Telecom", "Tech":
		val -= 0.2
	}
	return val
}

func estimateDigitalAdoption(sector string, employees int) float64 {
	val := 0.5
	if employees >= 250 {
		val += 0.2
	}
	switch sector {
	case "Finance", "Banque", "Telecom", "Tech":
		val += 0.3
	}
	return val
}

// conversionProbability blends cash aversion and digital affinity,
// 0.4/0.6.
func conversionProbability(cash, digital float64) float64 {
	return clamp01((1-cash)*0.4 + digital*0.6)
}

func weightedIndex(rng *rand.Rand, weights []int, total int) int {
	target := rng.Intn(total)
	cum := 0
	for i, w := range weights {
		cum += w
		if target < cum {
			return i
		}
	}
	return len(weights) - 1
}

func field(rec []string, col map[string]int, name string) string {
	return strings.TrimSpace(rec[col[name]])
}

func parseFloat(rec []string, col map[string]int, name string) (float64, error) {
	raw := strings.TrimSpace(rec[col[name]])
	raw = strings.ReplaceAll(raw, ",", ".")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", name, raw)
	}
	return v, nil
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
