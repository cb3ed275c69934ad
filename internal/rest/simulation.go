package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/mnajjaa/banking-agent-simulation-platform/business/scenario"
	"github.com/mnajjaa/banking-agent-simulation-platform/domain"
)

type (
	SimulationService interface {
		Simulate(ctx context.Context, cfg domain.ScenarioConfig) (domain.SimulationResult, error)
		Compare(ctx context.Context, cfgs []domain.ScenarioConfig) ([]domain.ComparisonRow, error)
		CompareDetail(ctx context.Context, cfgs []domain.ScenarioConfig) ([]domain.ComparisonDetail, error)
		Schema() domain.Schema
	}

	AbmService interface {
		Run(ctx context.Context, cfg domain.ScenarioConfig) (domain.AbmResult, error)
		Preview(ctx context.Context, cfg domain.ScenarioConfig) (domain.AbmPreview, error)
	}

	SimulationHandler struct {
		simService SimulationService
		abmService AbmService
		validate   *validator.Validate
		timeout    time.Duration
	}

	SimulateRequest struct {
		Scenario       string `json:"scenario" validate:"required"`
		Intensity      string `json:"intensity"`
		Segment        string `json:"segment"`
		Region         string `json:"region"`
		DurationMonths int    `json:"duration_months"`
		Seed           *int64 `json:"seed,omitempty"`
	}

	CompareRequest struct {
		Scenarios []SimulateRequest `json:"scenarios" validate:"required,min=1"`
	}
)

func NewSimulationHandler(simService SimulationService, abmService AbmService) *SimulationHandler {
	return &SimulationHandler{
		simService: simService,
		abmService: abmService,
		validate:   validator.New(),
		timeout:    10 * time.Second,
	}
}

func (r SimulateRequest) toConfig() domain.ScenarioConfig {
	return domain.ScenarioConfig{
		Scenario:       r.Scenario,
		Intensity:      r.Intensity,
		Segment:        r.Segment,
		Region:         r.Region,
		DurationMonths: r.DurationMonths,
		Seed:           r.Seed,
	}
}

// bindConfig binds, defaults and validates one scenario config. Enum
// values outside the closed sets are rejected, never defaulted.
func (h *SimulationHandler) bindConfig(c echo.Context) (domain.ScenarioConfig, error) {
	var req SimulateRequest
	if err := c.Bind(&req); err != nil {
		return domain.ScenarioConfig{}, domain.NewFieldError("body", "malformed request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return domain.ScenarioConfig{}, domain.NewFieldError("scenario", "scenario is required")
	}

	cfg := req.toConfig().WithDefaults()
	if err := scenario.ValidateConfig(cfg); err != nil {
		return domain.ScenarioConfig{}, err
	}

	return cfg, nil
}

// POST /simulate
func (h *SimulationHandler) Simulate(c echo.Context) error {
	cfg, err := h.bindConfig(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	res, err := h.simService.Simulate(ctx, cfg)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, res)
}

// POST /simulate_abm
func (h *SimulationHandler) SimulateAbm(c echo.Context) error {
	cfg, err := h.bindConfig(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	res, err := h.abmService.Run(ctx, cfg)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, res)
}

// GET /abm/preview?scenario=&intensity=&steps=&seed=
func (h *SimulationHandler) AbmPreview(c echo.Context) error {
	cfg := domain.ScenarioConfig{
		Scenario:  queryDefault(c, "scenario", scenario.ScenarioBaseline),
		Intensity: queryDefault(c, "intensity", "Moyenne"),
	}

	if raw := c.QueryParam("steps"); raw != "" {
		steps, err := strconv.Atoi(raw)
		if err != nil {
			return domain.NewFieldError("steps", "must be an integer, got %q", raw)
		}
		cfg.DurationMonths = steps
	}
	if raw := c.QueryParam("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return domain.NewFieldError("seed", "must be an integer, got %q", raw)
		}
		cfg.Seed = &seed
	}

	cfg = cfg.WithDefaults()
	if err := scenario.ValidateConfig(cfg); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	preview, err := h.abmService.Preview(ctx, cfg)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, preview)
}

// POST /compare
func (h *SimulationHandler) Compare(c echo.Context) error {
	cfgs, err := h.bindCompare(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rows, err := h.simService.Compare(ctx, cfgs)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, rows)
}

// POST /compare/detail
func (h *SimulationHandler) CompareDetail(c echo.Context) error {
	cfgs, err := h.bindCompare(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	details, err := h.simService.CompareDetail(ctx, cfgs)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, details)
}

func (h *SimulationHandler) bindCompare(c echo.Context) ([]domain.ScenarioConfig, error) {
	var req CompareRequest
	if err := c.Bind(&req); err != nil {
		return nil, domain.NewFieldError("body", "malformed request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return nil, domain.NewFieldError("scenarios", "at least one scenario is required")
	}

	cfgs := make([]domain.ScenarioConfig, len(req.Scenarios))
	for i, r := range req.Scenarios {
		cfg := r.toConfig().WithDefaults()
		if err := scenario.ValidateConfig(cfg); err != nil {
			return nil, err
		}
		cfgs[i] = cfg
	}

	return cfgs, nil
}

// GET /schema
func (h *SimulationHandler) Schema(c echo.Context) error {
	return c.JSON(http.StatusOK, h.simService.Schema())
}

func queryDefault(c echo.Context, name, fallback string) string {
	if v := c.QueryParam(name); v != "" {
		return v
	}
	return fallback
}
