package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"drilltrack/internal/controllers"
	"drilltrack/internal/services"
	"drilltrack/pkg/middleware"
)

func runDailyReportRouter(g *echo.Group, reportService *services.DailyReportService, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	reportCtrl := controllers.NewDailyReportController(reportService, logger)

	// drillers file and revise reports; the state machine keeps them
	// from doing anything but submitting their own edges
	write := authMW.RequireRole(RoleDriller, RoleManager, RoleAdmin)

	reportGroup := g.Group("/daily-reports")
	{
		reportGroup.GET("", reportCtrl.GetDailyReports)
		reportGroup.GET("/:id", reportCtrl.FindDailyReport)
		reportGroup.POST("", reportCtrl.CreateDailyReport, write)
		reportGroup.PUT("/:id", reportCtrl.UpdateDailyReport, write)
		reportGroup.PUT("/:id/status", reportCtrl.Transition, write)
		reportGroup.POST("/:id/photos", reportCtrl.AttachPhoto, write)
		reportGroup.DELETE("/:id/photos/:photoId", reportCtrl.DeletePhoto, write)
		reportGroup.DELETE("/:id", reportCtrl.DeleteDailyReport, authMW.RequireRole(RoleManager, RoleAdmin))
	}
}
