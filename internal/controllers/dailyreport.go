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

type DailyReportController struct {
	reportService *services.DailyReportService
	logger        *zap.Logger
}

func NewDailyReportController(reportService *services.DailyReportService, logger *zap.Logger) *DailyReportController {
	return &DailyReportController{reportService: reportService, logger: logger}
}

func (c *DailyReportController) GetDailyReports(ctx echo.Context) error {
	var filter dto.DailyReportListFilterDTO
	if err := ctx.Bind(&filter); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	limit, offset, page := utils.ParsePaginationParams(ctx.QueryParams())
	pagination := types.Pagination{Limit: limit, Offset: offset, Page: page}

	reports, total, err := c.reportService.GetDailyReports(ctx.Request().Context(), filter, pagination)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, reports, "daily reports retrieved", http.StatusOK, total)
}

func (c *DailyReportController) FindDailyReport(ctx echo.Context) error {
	report, err := c.reportService.FindDailyReport(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, report, "daily report retrieved", http.StatusOK)
}

func (c *DailyReportController) CreateDailyReport(ctx echo.Context) error {
	var payload dto.CreateDailyReportDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		userID = ""
	}

	report, err := c.reportService.CreateDailyReport(ctx.Request().Context(), userID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, report, "daily report created", http.StatusCreated)
}

func (c *DailyReportController) UpdateDailyReport(ctx echo.Context) error {
	var payload dto.UpdateDailyReportDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	report, err := c.reportService.UpdateDailyReport(ctx.Request().Context(), ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, report, "daily report updated", http.StatusOK)
}

func (c *DailyReportController) Transition(ctx echo.Context) error {
	var payload dto.TransitionReportDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	report, err := c.reportService.Transition(ctx.Request().Context(), ctx.Param("id"), payload.Status, payload.ReviewNotes)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, report, "daily report status updated", http.StatusOK)
}

func (c *DailyReportController) AttachPhoto(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer src.Close()

	photo, err := c.reportService.AttachPhoto(
		ctx.Request().Context(),
		ctx.Param("id"),
		fileHeader.Filename,
		ctx.FormValue("caption"),
		fileHeader.Size,
		src,
	)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, photo, "photo attached", http.StatusCreated)
}

func (c *DailyReportController) DeletePhoto(ctx echo.Context) error {
	if err := c.reportService.DeletePhoto(ctx.Request().Context(), ctx.Param("id"), ctx.Param("photoId")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (c *DailyReportController) DeleteDailyReport(ctx echo.Context) error {
	if err := c.reportService.DeleteDailyReport(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.NoContent(http.StatusNoContent)
}
