package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"drilltrack/internal/dto"
	"drilltrack/internal/services"
	apperrors "drilltrack/pkg/errors"
	"drilltrack/pkg/types"
	"drilltrack/pkg/utils"
)

type WorkOrderController struct {
	workOrderService *services.WorkOrderService
	logger           *zap.Logger
}

func NewWorkOrderController(workOrderService *services.WorkOrderService, logger *zap.Logger) *WorkOrderController {
	return &WorkOrderController{workOrderService: workOrderService, logger: logger}
}

func (c *WorkOrderController) GetWorkOrders(ctx echo.Context) error {
	var filter dto.WorkOrderListFilterDTO
	if err := ctx.Bind(&filter); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	limit, offset, page := utils.ParsePaginationParams(ctx.QueryParams())
	pagination := types.Pagination{Limit: limit, Offset: offset, Page: page}

	orders, total, err := c.workOrderService.GetWorkOrders(ctx.Request().Context(), filter, pagination)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, orders, "work orders retrieved", http.StatusOK, total)
}

func (c *WorkOrderController) FindWorkOrder(ctx echo.Context) error {
	wo, err := c.workOrderService.FindWorkOrder(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, wo, "work order retrieved", http.StatusOK)
}

func (c *WorkOrderController) CreateWorkOrder(ctx echo.Context) error {
	var payload dto.CreateWorkOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	wo, err := c.workOrderService.CreateWorkOrder(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, wo, "work order created", http.StatusCreated)
}

func (c *WorkOrderController) UpdateWorkOrder(ctx echo.Context) error {
	var payload dto.UpdateWorkOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	wo, err := c.workOrderService.UpdateWorkOrder(ctx.Request().Context(), ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, wo, "work order updated", http.StatusOK)
}

func (c *WorkOrderController) Transition(ctx echo.Context) error {
	var payload dto.TransitionWorkOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	wo, err := c.workOrderService.Transition(ctx.Request().Context(), ctx.Param("id"), payload.Status)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, wo, "work order status updated", http.StatusOK)
}

func (c *WorkOrderController) Assign(ctx echo.Context) error {
	var payload dto.AssignWorkOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	wo, err := c.workOrderService.Assign(ctx.Request().Context(), ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, wo, "work order assigned", http.StatusOK)
}

func (c *WorkOrderController) UpdateSchedule(ctx echo.Context) error {
	var payload dto.ScheduleWindowDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	wo, err := c.workOrderService.UpdateSchedule(ctx.Request().Context(), ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, wo, "schedule updated", http.StatusOK)
}

func (c *WorkOrderController) QuickUpdate(ctx echo.Context) error {
	var payload dto.QuickUpdateDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	wo, err := c.workOrderService.QuickUpdate(ctx.Request().Context(), ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, wo, "work order updated", http.StatusOK)
}

// CancelWorkOrder is the DELETE handler. Orders are never removed;
// deleting means moving to cancelled, which keeps the history and the
// reactivation edge available.
func (c *WorkOrderController) CancelWorkOrder(ctx echo.Context) error {
	wo, err := c.workOrderService.Transition(ctx.Request().Context(), ctx.Param("id"), "cancelled")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, wo, "work order cancelled", http.StatusOK)
}
