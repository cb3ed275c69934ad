package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mnajjaa/banking-agent-simulation-platform/internal/rest"
)

// The simulation endpoints are the dashboard contract; they live at the
// root, unversioned, matching what the front end calls.
func SetupSimulationRoutes(e *echo.Echo, handler *rest.SimulationHandler) {
	e.POST("/simulate", handler.Simulate)
	e.POST("/simulate_abm", handler.SimulateAbm)
	e.POST("/compare", handler.Compare)
	e.POST("/compare/detail", handler.CompareDetail)
	e.GET("/schema", handler.Schema)
	e.GET("/abm/preview", handler.AbmPreview)
}

func SetupSegmentationRoutes(e *echo.Echo, handler *rest.SegmentationHandler) {
	e.POST("/segments", handler.Segments)
}

func SetupAdminRoutes(e *echo.Echo, handler *rest.AdminHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	admin := e.Group("/admin", authRequired, adminOnly)
	admin.GET("/catalog", handler.Catalog)
}
