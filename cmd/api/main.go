package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/sekolahku/presensi-api/api/swagger"
	"github.com/sekolahku/presensi-api/internal/handler"
	"github.com/sekolahku/presensi-api/internal/middleware"
	"github.com/sekolahku/presensi-api/internal/repository"
	"github.com/sekolahku/presensi-api/internal/service"
	"github.com/sekolahku/presensi-api/pkg/cache"
	"github.com/sekolahku/presensi-api/pkg/config"
	"github.com/sekolahku/presensi-api/pkg/database"
	"github.com/sekolahku/presensi-api/pkg/logger"
	corsmiddleware "github.com/sekolahku/presensi-api/pkg/middleware/cors"
	reqidmiddleware "github.com/sekolahku/presensi-api/pkg/middleware/requestid"
)

// @title Presensi Guru API
// @version 1.0.0
// @description Teacher attendance reconciliation and weekly reporting
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("postgres connection failed", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// The API stays up without Redis; caching simply degrades.
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	metricsSvc := service.NewMetricsService()

	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	cacheEnabled := cfg.Overview.CacheEnabled || cfg.Monitoring.CacheEnabled
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Overview.CacheTTL, logr, cacheEnabled)

	slotRepo := repository.NewScheduleSlotRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)

	overviewSvc := service.NewOverviewService(service.OverviewServiceParams{
		Slots:      slotRepo,
		Attendance: attendanceRepo,
		Leaves:     leaveRepo,
		Teachers:   teacherRepo,
		Cache:      cacheSvc,
		Logger:     logr,
		Config:     service.OverviewServiceConfig{CacheTTL: cfg.Overview.CacheTTL},
	})
	monitoringSvc := service.NewMonitoringService(service.MonitoringServiceParams{
		Slots:      slotRepo,
		Attendance: attendanceRepo,
		Leaves:     leaveRepo,
		Teachers:   teacherRepo,
		Cache:      cacheSvc,
		Logger:     logr,
		Config:     service.MonitoringServiceConfig{CacheTTL: cfg.Monitoring.CacheTTL},
	})
	substitutionSvc := service.NewSubstitutionService(service.SubstitutionServiceParams{
		Slots:      slotRepo,
		Teachers:   teacherRepo,
		Attendance: attendanceRepo,
		Leaves:     leaveRepo,
		Cache:      cacheSvc,
		Logger:     logr,
	})
	historySvc := service.NewHistoryService(service.HistoryServiceParams{
		Attendance: attendanceRepo,
		Slots:      slotRepo,
		Teachers:   teacherRepo,
		Logger:     logr,
	})

	overviewHandler := handler.NewOverviewHandler(overviewSvc)
	monitoringHandler := handler.NewMonitoringHandler(monitoringSvc)
	substitutionHandler := handler.NewSubstitutionHandler(substitutionSvc)
	historyHandler := handler.NewHistoryHandler(historySvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.WithResponseMeta())
	{
		api.GET("/overview/weekly", overviewHandler.Weekly)
		api.GET("/monitoring/classes", monitoringHandler.ClassManagement)
		api.GET("/monitoring/system", metricsHandler.System)
		api.POST("/substitutions", substitutionHandler.Assign)
		api.GET("/substitutions/:slotId/available", substitutionHandler.Available)
		api.GET("/history", historyHandler.List)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
