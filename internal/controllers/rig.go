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

type RigController struct {
	rigService *services.RigService
	logger     *zap.Logger
}

func NewRigController(rigService *services.RigService, logger *zap.Logger) *RigController {
	return &RigController{rigService: rigService, logger: logger}
}

func (c *RigController) GetRigs(ctx echo.Context) error {
	activeOnly := ctx.QueryParam("active") == "true"
	rigs, err := c.rigService.GetRigs(ctx.Request().Context(), activeOnly)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, rigs, "rigs retrieved", http.StatusOK)
}

func (c *RigController) FindRig(ctx echo.Context) error {
	rig, err := c.rigService.FindRig(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, rig, "rig retrieved", http.StatusOK)
}

func (c *RigController) CreateRig(ctx echo.Context) error {
	var payload dto.CreateRigDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	rig, err := c.rigService.CreateRig(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, rig, "rig created", http.StatusCreated)
}

func (c *RigController) UpdateRig(ctx echo.Context) error {
	var payload dto.UpdateRigDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	rig, err := c.rigService.UpdateRig(ctx.Request().Context(), ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, rig, "rig updated", http.StatusOK)
}

func (c *RigController) DeleteRig(ctx echo.Context) error {
	if err := c.rigService.DeleteRig(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.NoContent(http.StatusNoContent)
}
