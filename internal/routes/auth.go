package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"drilltrack/internal/controllers"
	"drilltrack/internal/services"
)

func runAuthRouter(api *echo.Group, authService *services.AuthService, logger *zap.Logger) {
	authCtrl := controllers.NewAuthController(authService, logger)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authCtrl.Login)
	}
}
