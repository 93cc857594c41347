package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"drilltrack/internal/controllers"
	"drilltrack/internal/services"
	"drilltrack/pkg/middleware"
)

func runResourceRouters(
	g *echo.Group,
	rigService *services.RigService,
	crewService *services.CrewService,
	staffService *services.StaffService,
	projectService *services.ProjectService,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	rigCtrl := controllers.NewRigController(rigService, logger)
	crewCtrl := controllers.NewCrewController(crewService, logger)
	staffCtrl := controllers.NewStaffController(staffService, logger)
	projectCtrl := controllers.NewProjectController(projectService, logger)

	manage := authMW.RequireRole(RoleManager, RoleAdmin)
	adminOnly := authMW.RequireRole(RoleAdmin)

	rigGroup := g.Group("/rigs")
	{
		rigGroup.GET("", rigCtrl.GetRigs)
		rigGroup.GET("/:id", rigCtrl.FindRig)
		rigGroup.POST("", rigCtrl.CreateRig, manage)
		rigGroup.PUT("/:id", rigCtrl.UpdateRig, manage)
		rigGroup.DELETE("/:id", rigCtrl.DeleteRig, adminOnly)
	}

	crewGroup := g.Group("/crews")
	{
		crewGroup.GET("", crewCtrl.GetCrews)
		crewGroup.GET("/:id", crewCtrl.FindCrew)
		crewGroup.POST("", crewCtrl.CreateCrew, manage)
		crewGroup.PUT("/:id", crewCtrl.UpdateCrew, manage)
		crewGroup.DELETE("/:id", crewCtrl.DeleteCrew, adminOnly)
	}

	staffGroup := g.Group("/staff")
	{
		staffGroup.GET("", staffCtrl.GetStaff)
		staffGroup.GET("/:id", staffCtrl.FindStaff)
		staffGroup.POST("", staffCtrl.CreateStaff, adminOnly)
		staffGroup.PUT("/:id", staffCtrl.UpdateStaff, adminOnly)
		staffGroup.DELETE("/:id", staffCtrl.DeleteStaff, adminOnly)
	}

	projectGroup := g.Group("/projects")
	{
		projectGroup.GET("", projectCtrl.GetProjects)
		projectGroup.GET("/:id", projectCtrl.FindProject)
		projectGroup.POST("", projectCtrl.CreateProject, manage)
		projectGroup.PUT("/:id", projectCtrl.UpdateProject, manage)
		projectGroup.DELETE("/:id", projectCtrl.DeleteProject, adminOnly)
	}
}
