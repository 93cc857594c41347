package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"drilltrack/internal/repositories"
	"drilltrack/internal/services"
	"drilltrack/pkg/config"
	"drilltrack/pkg/filestorage"
	"drilltrack/pkg/middleware"
	"drilltrack/pkg/service"
)

// Role names used for endpoint gating. Lifecycle legality itself lives
// in the workflow package and does not depend on who is calling.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleDriller = "driller"
	RoleViewer  = "viewer"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.UploadDir)
	if err != nil {
		logger.Fatal("failed to create file storage", zap.Error(err))
	}

	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	workOrderRepo := repositories.NewWorkOrderRepository(dbConn, logger)
	reportRepo := repositories.NewDailyReportRepository(dbConn, logger)
	rigRepo := repositories.NewRigRepository(dbConn, logger)
	crewRepo := repositories.NewCrewRepository(dbConn, logger)
	staffRepo := repositories.NewStaffRepository(dbConn, logger)
	projectRepo := repositories.NewProjectRepository(dbConn, logger)

	authService := services.NewAuthService(staffRepo, jwtSvc, logger)
	workOrderService := services.NewWorkOrderService(workOrderRepo, projectRepo, cacheRepo, txManager, cfg.OrgID, logger)
	reportService := services.NewDailyReportService(reportRepo, workOrderRepo, cacheRepo, txManager, fileStorage, cfg.OrgID, logger)
	scheduleService := services.NewScheduleService(workOrderRepo, crewRepo, logger)
	billingService := services.NewBillingService(workOrderRepo, reportRepo, cacheRepo, cfg.Billing.RollupCacheTTL, logger)
	rigService := services.NewRigService(rigRepo, cfg.OrgID, logger)
	crewService := services.NewCrewService(crewRepo, cfg.OrgID, logger)
	staffService := services.NewStaffService(staffRepo, cfg.OrgID, logger)
	projectService := services.NewProjectService(projectRepo, cfg.OrgID, logger)

	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, authService, logger)
	runWorkOrderRouter(secureGroup, workOrderService, billingService, logger, authMW)
	runDailyReportRouter(secureGroup, reportService, logger, authMW)
	runScheduleRouter(secureGroup, scheduleService, logger)
	runBillingRouter(secureGroup, billingService, logger)
	runResourceRouters(secureGroup, rigService, crewService, staffService, projectService, logger, authMW)
}
