package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/mnajjaa/banking-agent-simulation-platform/domain"
)

type (
	SegmentationService interface {
		Cluster(ctx context.Context, nClusters int) (*domain.Segmentation, error)
	}

	SegmentationHandler struct {
		segService SegmentationService
		validate   *validator.Validate
		timeout    time.Duration
	}

	SegmentsRequest struct {
		NClusters int `json:"n_clusters" validate:"required"`
	}
)

func NewSegmentationHandler(segService SegmentationService) *SegmentationHandler {
	return &SegmentationHandler{
		segService: segService,
		validate:   validator.New(),
		timeout:    15 * time.Second,
	}
}

// POST /segments
func (h *SegmentationHandler) Segments(c echo.Context) error {
	var req SegmentsRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewFieldError("body", "malformed request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return domain.NewFieldError("n_clusters", "n_clusters is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	seg, err := h.segService.Cluster(ctx, req.NClusters)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, seg)
}
