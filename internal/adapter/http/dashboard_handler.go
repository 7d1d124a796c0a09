package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lendtracker/internal/usecase/dashboard"
)

type DashboardHandler struct{ agg *dashboard.Aggregator }

func NewDashboardHandler(agg *dashboard.Aggregator) *DashboardHandler {
	return &DashboardHandler{agg: agg}
}

func (h *DashboardHandler) Dashboard(c echo.Context) error {
	stats, err := h.agg.Stats(c.Request().Context(), ownerID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
