package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"drilltrack/internal/services"
	"drilltrack/pkg/utils"
)

type ScheduleController struct {
	scheduleService *services.ScheduleService
	logger          *zap.Logger
}

func NewScheduleController(scheduleService *services.ScheduleService, logger *zap.Logger) *ScheduleController {
	return &ScheduleController{scheduleService: scheduleService, logger: logger}
}

func (c *ScheduleController) Queue(ctx echo.Context) error {
	orders, err := c.scheduleService.Queue(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, orders, "queue retrieved", http.StatusOK)
}

func (c *ScheduleController) Board(ctx echo.Context) error {
	board, err := c.scheduleService.Board(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, board, "crew board retrieved", http.StatusOK)
}

func (c *ScheduleController) Timeline(ctx echo.Context) error {
	dayWidth := 0
	if raw := ctx.QueryParam("day_width"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			dayWidth = parsed
		}
	}

	timeline, err := c.scheduleService.Timeline(ctx.Request().Context(), dayWidth)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, timeline, "timeline retrieved", http.StatusOK)
}
