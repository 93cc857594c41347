package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"drilltrack/internal/controllers"
	"drilltrack/internal/services"
	"drilltrack/pkg/middleware"
)

func runWorkOrderRouter(g *echo.Group, workOrderService *services.WorkOrderService, billingService *services.BillingService, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	woCtrl := controllers.NewWorkOrderController(workOrderService, logger)
	billingCtrl := controllers.NewBillingController(billingService, logger)

	manage := authMW.RequireRole(RoleManager, RoleAdmin)

	woGroup := g.Group("/work-orders")
	{
		woGroup.GET("", woCtrl.GetWorkOrders)
		woGroup.GET("/:id", woCtrl.FindWorkOrder)
		woGroup.GET("/:id/rollup", billingCtrl.Rollup)
		woGroup.POST("", woCtrl.CreateWorkOrder, manage)
		woGroup.PUT("/:id", woCtrl.UpdateWorkOrder, manage)
		woGroup.PATCH("/:id", woCtrl.QuickUpdate, manage)
		woGroup.PUT("/:id/status", woCtrl.Transition, manage)
		woGroup.PUT("/:id/assign", woCtrl.Assign, manage)
		woGroup.PATCH("/:id/schedule", woCtrl.UpdateSchedule, manage)
		woGroup.DELETE("/:id", woCtrl.CancelWorkOrder, manage)
	}
}
