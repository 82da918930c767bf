package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bistroboss/bistro-api/internal/core/ports"
)

type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// AdminStats godoc
//
// @Summary      Store totals
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.AdminStats
// @Failure      403  {object}  map[string]string
// @Router       /admin-stats [get]
func (h *StatsHandler) AdminStats(c echo.Context) error {
	stats, err := h.service.AdminStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// OrderStats godoc
//
// @Summary      Sales per menu category
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.CategoryStat
// @Failure      403  {object}  map[string]string
// @Router       /order-stats [get]
func (h *StatsHandler) OrderStats(c echo.Context) error {
	stats, err := h.service.OrderStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
