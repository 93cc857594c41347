package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"drilltrack/internal/dto"
	"drilltrack/internal/services"
	apperrors "drilltrack/pkg/errors"
	"drilltrack/pkg/utils"
)

type CrewController struct {
	crewService *services.CrewService
	logger      *zap.Logger
}

func NewCrewController(crewService *services.CrewService, logger *zap.Logger) *CrewController {
	return &CrewController{crewService: crewService, logger: logger}
}

func (c *CrewController) GetCrews(ctx echo.Context) error {
	crews, err := c.crewService.GetCrews(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, crews, "crews retrieved", http.StatusOK)
}

func (c *CrewController) FindCrew(ctx echo.Context) error {
	crew, err := c.crewService.FindCrew(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, crew, "crew retrieved", http.StatusOK)
}

func (c *CrewController) CreateCrew(ctx echo.Context) error {
	var payload dto.CreateCrewDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	crew, err := c.crewService.CreateCrew(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, crew, "crew created", http.StatusCreated)
}

func (c *CrewController) UpdateCrew(ctx echo.Context) error {
	var payload dto.UpdateCrewDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	crew, err := c.crewService.UpdateCrew(ctx.Request().Context(), ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, crew, "crew updated", http.StatusOK)
}

func (c *CrewController) DeleteCrew(ctx echo.Context) error {
	if err := c.crewService.DeleteCrew(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.NoContent(http.StatusNoContent)
}
