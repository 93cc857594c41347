package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"drilltrack/internal/billing"
	"drilltrack/internal/services"
	"drilltrack/pkg/utils"
)

type BillingController struct {
	billingService *services.BillingService
	logger         *zap.Logger
}

func NewBillingController(billingService *services.BillingService, logger *zap.Logger) *BillingController {
	return &BillingController{billingService: billingService, logger: logger}
}

// Rollups serves the org-wide billing tracker, as JSON or as a
// spreadsheet when format=xlsx.
func (c *BillingController) Rollups(ctx echo.Context) error {
	policy, err := billing.ParseInclusionPolicy(ctx.QueryParam("include"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if ctx.QueryParam("format") == "xlsx" {
		buf, err := c.billingService.ExportRollupsXLSX(ctx.Request().Context(), policy)
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		filename := fmt.Sprintf("billing-rollups-%s.xlsx", time.Now().Format(time.DateOnly))
		ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
		return ctx.Blob(http.StatusOK,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	}

	rollups, err := c.billingService.Rollups(ctx.Request().Context(), policy)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, rollups, "billing rollups retrieved", http.StatusOK)
}

func (c *BillingController) Rollup(ctx echo.Context) error {
	policy, err := billing.ParseInclusionPolicy(ctx.QueryParam("include"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	rollup, err := c.billingService.Rollup(ctx.Request().Context(), ctx.Param("id"), policy)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, rollup, "billing rollup retrieved", http.StatusOK)
}
