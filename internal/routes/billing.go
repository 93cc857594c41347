package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"drilltrack/internal/controllers"
	"drilltrack/internal/services"
)

func runBillingRouter(g *echo.Group, billingService *services.BillingService, logger *zap.Logger) {
	billingCtrl := controllers.NewBillingController(billingService, logger)

	billingGroup := g.Group("/billing")
	{
		billingGroup.GET("/rollups", billingCtrl.Rollups)
	}
}
