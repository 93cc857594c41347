package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"drilltrack/internal/controllers"
	"drilltrack/internal/services"
)

func runScheduleRouter(g *echo.Group, scheduleService *services.ScheduleService, logger *zap.Logger) {
	scheduleCtrl := controllers.NewScheduleController(scheduleService, logger)

	scheduleGroup := g.Group("/schedule")
	{
		scheduleGroup.GET("/queue", scheduleCtrl.Queue)
		scheduleGroup.GET("/board", scheduleCtrl.Board)
		scheduleGroup.GET("/timeline", scheduleCtrl.Timeline)
	}
}
