package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mnajjaa/banking-agent-simulation-platform/business/abm"
	"github.com/mnajjaa/banking-agent-simulation-platform/business/scenario"
	"github.com/mnajjaa/banking-agent-simulation-platform/business/segmentation"
	"github.com/mnajjaa/banking-agent-simulation-platform/domain"
	"github.com/mnajjaa/banking-agent-simulation-platform/internal/middleware"
	jsonres "github.com/mnajjaa/banking-agent-simulation-platform/pkg/response"
)

func testCustomers() []domain.Customer {
	regionNames := scenario.Regions()
	segmentNames := scenario.Segments()

	out := make([]domain.Customer, 0, 240)
	for i := 0; i < 240; i++ {
		out = append(out, domain.Customer{
			ID:                    uint(i + 1),
			Governorate:           regionNames[i%len(regionNames)],
			Segment:               segmentNames[(i/len(regionNames))%len(segmentNames)],
			CapitalTND:            float64(5000 * (1 + i%40)),
			Employees:             5 + i%300,
			CashUsageRatio:        0.4 + 0.2*float64(i%3)/2,
			DigitalAdoption:       0.3 + 0.3*float64(i%4)/3,
			ConversionProbability: 0.5 + 0.2*float64(i%5)/4,
		})
	}
	return out
}

func testServer() *echo.Echo {
	knobs := scenario.DefaultKnobs()
	customers := testCustomers()
	pop := scenario.BuildPopulation(customers, knobs.BaselineChurn)

	simService := scenario.NewService(pop, knobs, nil)
	abmService := abm.NewService(pop, abm.DefaultConfig(), knobs)
	segService := segmentation.NewService(customers, nil)

	simHandler := NewSimulationHandler(simService, abmService)
	segHandler := NewSegmentationHandler(segService)

	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.POST("/simulate", simHandler.Simulate)
	e.POST("/simulate_abm", simHandler.SimulateAbm)
	e.GET("/abm/preview", simHandler.AbmPreview)
	e.POST("/compare", simHandler.Compare)
	e.POST("/compare/detail", simHandler.CompareDetail)
	e.GET("/schema", simHandler.Schema)
	e.POST("/segments", segHandler.Segments)
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) jsonres.JSONResponse {
	t.Helper()
	var body jsonres.JSONResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v\n%s", err, rec.Body.String())
	}
	return body
}

func TestSimulateEndpoint(t *testing.T) {
	e := testServer()
	rec := doJSON(e, http.MethodPost, "/simulate", `{"scenario":"Energy Crisis","region":"Sousse"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res domain.SimulationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Kpis.DiffClients >= 0 {
		t.Errorf("diff_clients = %d, want negative", res.Kpis.DiffClients)
	}
	if len(res.Regional) != len(scenario.Regions()) {
		t.Errorf("regional rows = %d, want %d", len(res.Regional), len(scenario.Regions()))
	}
	if len(res.Segments) != len(scenario.Segments()) {
		t.Errorf("segment rows = %d, want %d", len(res.Segments), len(scenario.Segments()))
	}
}

func TestSimulateDefaultsOptionalFields(t *testing.T) {
	e := testServer()
	rec := doJSON(e, http.MethodPost, "/simulate", `{"scenario":"Baseline"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestSimulateMissingScenario(t *testing.T) {
	e := testServer()
	rec := doJSON(e, http.MethodPost, "/simulate", `{"intensity":"Forte"}`)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	body := decodeError(t, rec)
	if body.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %q, want VALIDATION_ERROR", body.Code)
	}
}

func TestSimulateUnknownEnumNamesField(t *testing.T) {
	e := testServer()
	cases := []struct {
		body  string
		field string
	}{
		{`{"scenario":"Meteor Strike"}`, "scenario"},
		{`{"scenario":"Energy Crisis","intensity":"Apocalyptic"}`, "intensity"},
		{`{"scenario":"Energy Crisis","segment":"VIP"}`, "segment"},
		{`{"scenario":"Energy Crisis","region":"Atlantis"}`, "region"},
		{`{"scenario":"Energy Crisis","duration_months":99}`, "duration_months"},
		{`{"scenario":"Energy Crisis","duration_months":-1}`, "duration_months"},
	}

	for _, tc := range cases {
		rec := doJSON(e, http.MethodPost, "/simulate", tc.body)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("%s: status = %d, want 422", tc.body, rec.Code)
			continue
		}
		body := decodeError(t, rec)
		details, _ := body.Details.(map[string]any)
		if details["field"] != tc.field {
			t.Errorf("%s: field = %v, want %q", tc.body, details["field"], tc.field)
		}
	}
}

func TestSimulateMalformedBody(t *testing.T) {
	e := testServer()
	rec := doJSON(e, http.MethodPost, "/simulate", `{"scenario":`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestSimulateAbmReproducible(t *testing.T) {
	e := testServer()
	body := `{"scenario":"Currency Devaluation","seed":7}`

	a := doJSON(e, http.MethodPost, "/simulate_abm", body)
	b := doJSON(e, http.MethodPost, "/simulate_abm", body)
	if a.Code != http.StatusOK || b.Code != http.StatusOK {
		t.Fatalf("statuses = %d, %d", a.Code, b.Code)
	}
	if a.Body.String() != b.Body.String() {
		t.Errorf("same seed produced different responses")
	}

	var res domain.AbmResult
	if err := json.Unmarshal(a.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.AbmPreview.TotalClients <= 0 {
		t.Errorf("abm_preview missing from response: %s", a.Body.String())
	}
}

func TestAbmPreviewQueryParams(t *testing.T) {
	e := testServer()
	rec := doJSON(e, http.MethodGet, "/abm/preview?scenario=Energy+Crisis&steps=3&seed=9", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var preview domain.AbmPreview
	if err := json.Unmarshal(rec.Body.Bytes(), &preview); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if preview.TotalClients <= 0 {
		t.Errorf("preview total_clients = %d", preview.TotalClients)
	}
}

func TestAbmPreviewRejectsBadSteps(t *testing.T) {
	e := testServer()
	rec := doJSON(e, http.MethodGet, "/abm/preview?steps=soon", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	body := decodeError(t, rec)
	details, _ := body.Details.(map[string]any)
	if details["field"] != "steps" {
		t.Errorf("field = %v, want steps", details["field"])
	}
}

func TestCompareEndpointAligned(t *testing.T) {
	e := testServer()
	rec := doJSON(e, http.MethodPost, "/compare",
		`{"scenarios":[{"scenario":"Energy Crisis"},{"scenario":"Export Boom"},{"scenario":"Baseline"}]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var rows []domain.ComparisonRow
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{"Energy Crisis", "Export Boom", "Baseline"}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i, w := range want {
		if rows[i].Scenario != w {
			t.Errorf("row %d scenario = %q, want %q", i, rows[i].Scenario, w)
		}
	}
}

func TestCompareEmptyList(t *testing.T) {
	e := testServer()
	rec := doJSON(e, http.MethodPost, "/compare", `{"scenarios":[]}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestCompareDetailEndpoint(t *testing.T) {
	e := testServer()
	rec := doJSON(e, http.MethodPost, "/compare/detail",
		`{"scenarios":[{"scenario":"Energy Crisis"}]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var details []domain.ComparisonDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &details); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("got %d details, want 1", len(details))
	}
	if len(details[0].Result.Regional) != len(scenario.Regions()) {
		t.Errorf("detail result missing regional breakdown")
	}
}

func TestSchemaEndpoint(t *testing.T) {
	e := testServer()
	rec := doJSON(e, http.MethodGet, "/schema", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var schema domain.Schema
	if err := json.Unmarshal(rec.Body.Bytes(), &schema); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(schema.Scenarios) != 10 {
		t.Errorf("schema lists %d scenarios, want 10", len(schema.Scenarios))
	}
	if len(schema.Regions) != 24 {
		t.Errorf("schema lists %d regions, want 24", len(schema.Regions))
	}
	if schema.Segments[0] != scenario.SegmentAll {
		t.Errorf("segments should lead with %q, got %q", scenario.SegmentAll, schema.Segments[0])
	}
}

func TestSegmentsEndpoint(t *testing.T) {
	e := testServer()
	rec := doJSON(e, http.MethodPost, "/segments", `{"n_clusters":4}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var seg domain.Segmentation
	if err := json.Unmarshal(rec.Body.Bytes(), &seg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(seg.Summary) != 4 {
		t.Errorf("summary rows = %d, want 4", len(seg.Summary))
	}
	if len(seg.Points) != 240 {
		t.Errorf("points = %d, want 240", len(seg.Points))
	}
}

func TestSegmentsInvalidClusterCount(t *testing.T) {
	e := testServer()
	for _, body := range []string{`{"n_clusters":1}`, `{"n_clusters":9}`, `{}`} {
		rec := doJSON(e, http.MethodPost, "/segments", body)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("%s: status = %d, want 422", body, rec.Code)
			continue
		}
		resp := decodeError(t, rec)
		details, _ := resp.Details.(map[string]any)
		if details["field"] != "n_clusters" {
			t.Errorf("%s: field = %v, want n_clusters", body, details["field"])
		}
	}
}

func TestUnknownRouteUsesHTTPTaxonomy(t *testing.T) {
	e := testServer()
	rec := doJSON(e, http.MethodGet, "/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if body := decodeError(t, rec); body.Code != "HTTP_ERROR" {
		t.Errorf("code = %q, want HTTP_ERROR", body.Code)
	}
}
