package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"remodel-system/internal/controllers"
	"remodel-system/internal/entities"
	"remodel-system/internal/listeners"
	"remodel-system/internal/repositories"
	"remodel-system/internal/services"
	"remodel-system/pkg/config"
	"remodel-system/pkg/eventbus"
	"remodel-system/pkg/middleware"
	"remodel-system/pkg/service"
)

// InitRouter собирает весь граф зависимостей и регистрирует маршруты.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, bus *eventbus.Bus, logger *zap.Logger, cfg *config.Config) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	txManager := repositories.NewTxManager(dbConn)

	// --- репозитории ---
	userRepo := repositories.NewUserRepository(dbConn)
	orderRepo := repositories.NewOrderRepository(dbConn, logger)
	historyRepo := repositories.NewOrderHistoryRepository(dbConn)
	assignmentRepo := repositories.NewAssignmentRepository(dbConn)
	calendarRepo := repositories.NewCalendarRepository(dbConn)
	versionRepo := repositories.NewPlanVersionRepository(dbConn)
	directoryRepo := repositories.NewDirectoryRepository(dbConn)
	ruleRepo := repositories.NewAiRuleRepository(dbConn)
	reportRepo := repositories.NewReportRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- сервисы ---
	directoryService := services.NewDirectoryService(directoryRepo, cacheRepo, logger)
	pricingService := services.NewPricingService(directoryService, logger)
	orderService := services.NewOrderService(
		orderRepo, historyRepo, assignmentRepo, calendarRepo, versionRepo,
		userRepo, txManager, pricingService, bus, logger,
	)
	planService := services.NewPlanVersionService(versionRepo, orderRepo, userRepo, txManager, logger)
	riskEvaluator := services.NewHTTPRiskEvaluator(cfg.Analysis, logger)
	riskService := services.NewRiskAnalysisService(orderRepo, planService, ruleRepo, riskEvaluator, txManager, logger)
	calendarService := services.NewCalendarService(calendarRepo)
	reportService := services.NewReportService(reportRepo, logger)
	ruleService := services.NewAiRuleService(ruleRepo, logger)
	authService := services.NewAuthService(userRepo, jwtSvc, logger)

	listeners.NewNotificationListener(logger).Register(bus)

	// --- контроллеры ---
	authCtrl := controllers.NewAuthController(authService, logger)
	directoryCtrl := controllers.NewDirectoryController(directoryService, logger)
	clientCtrl := controllers.NewClientOrderController(orderService, planService, riskService, pricingService, logger)
	executorCtrl := controllers.NewExecutorOrderController(orderService, planService, calendarService, logger)
	adminCtrl := controllers.NewAdminOrderController(orderService, reportService, ruleService, calendarService, logger)

	runAuthRouter(api, authCtrl)

	secureGroup := api.Group("", authMW.Auth)
	runDirectoryRouter(secureGroup, directoryCtrl)
	runClientRouter(secureGroup.Group("/client", authMW.RequireRole(entities.RoleClient)), clientCtrl)
	runExecutorRouter(secureGroup.Group("/executor", authMW.RequireRole(entities.RoleExecutor)), executorCtrl)
	runAdminRouter(secureGroup.Group("/admin", authMW.RequireRole(entities.RoleAdmin)), adminCtrl)

	logger.Info("Маршруты зарегистрированы")
}
