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

type StaffController struct {
	staffService *services.StaffService
	logger       *zap.Logger
}

func NewStaffController(staffService *services.StaffService, logger *zap.Logger) *StaffController {
	return &StaffController{staffService: staffService, logger: logger}
}

func (c *StaffController) GetStaff(ctx echo.Context) error {
	members, err := c.staffService.GetStaff(ctx.Request().Context(), ctx.QueryParam("role"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, members, "staff retrieved", http.StatusOK)
}

func (c *StaffController) FindStaff(ctx echo.Context) error {
	member, err := c.staffService.FindStaff(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, member, "staff member retrieved", http.StatusOK)
}

func (c *StaffController) CreateStaff(ctx echo.Context) error {
	var payload dto.CreateStaffDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	member, err := c.staffService.CreateStaff(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, member, "staff member created", http.StatusCreated)
}

func (c *StaffController) UpdateStaff(ctx echo.Context) error {
	var payload dto.UpdateStaffDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	member, err := c.staffService.UpdateStaff(ctx.Request().Context(), ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, member, "staff member updated", http.StatusOK)
}

func (c *StaffController) DeleteStaff(ctx echo.Context) error {
	if err := c.staffService.DeleteStaff(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.NoContent(http.StatusNoContent)
}
