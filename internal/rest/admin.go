package rest

import (
	"net/http"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"

	"github.com/mnajjaa/banking-agent-simulation-platform/business/scenario"
)

// DatasetInfo describes where the feature table came from, surfaced on
// the admin route for operators checking a deployment.
type DatasetInfo struct {
	Source string `json:"source"`
	Path   string `json:"path,omitempty"`
	Rows   int    `json:"rows"`
}

type AdminHandler struct {
	dataset DatasetInfo
}

func NewAdminHandler(dataset DatasetInfo) *AdminHandler {
	return &AdminHandler{
		dataset: dataset,
	}
}

// GET /admin/catalog
func (h *AdminHandler) Catalog(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]any{
		"catalog": scenario.Definitions(),
		"dataset": h.dataset,
	}))
}

// GET /health
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
