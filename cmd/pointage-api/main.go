package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ldsgroups225/yeko-pointage/api/swagger"
	"github.com/ldsgroups225/yeko-pointage/internal/handler"
	"github.com/ldsgroups225/yeko-pointage/internal/middleware"
	"github.com/ldsgroups225/yeko-pointage/internal/repository"
	"github.com/ldsgroups225/yeko-pointage/internal/service"
	"github.com/ldsgroups225/yeko-pointage/pkg/cache"
	"github.com/ldsgroups225/yeko-pointage/pkg/config"
	"github.com/ldsgroups225/yeko-pointage/pkg/database"
	"github.com/ldsgroups225/yeko-pointage/pkg/jobs"
	"github.com/ldsgroups225/yeko-pointage/pkg/logger"
	corsmiddleware "github.com/ldsgroups225/yeko-pointage/pkg/middleware/cors"
	reqidmiddleware "github.com/ldsgroups225/yeko-pointage/pkg/middleware/requestid"
)

// @title Yeko Pointage API
// @version 1.0.0
// @description Classroom attendance and participation session engine for school tablets
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
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	validate := validator.New()

	// Repositories.
	schoolRepo := repository.NewSchoolRepository(db)
	classRepo := repository.NewClassRepository(db)
	userRepo := repository.NewUserRepository(db)
	deviceRepo := repository.NewDeviceRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	participationRepo := repository.NewParticipationRepository(db)
	homeworkRepo := repository.NewHomeworkRepository(db)
	archiveRepo := repository.NewArchiveRepository(db)
	sessionStore := repository.NewSessionStateRepository(redisClient, cfg.Session.TTL, logr)

	var detailsCache service.DetailsCache
	if cfg.Cache.Enabled {
		detailsCache = repository.NewCacheRepository(redisClient, logr)
	}

	// Services.
	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "yeko-pointage",
		Audience:           []string{"tablet"},
	})
	schoolSvc := service.NewSchoolService(schoolRepo, userRepo, logr)
	classSvc := service.NewClassService(classRepo, detailsCache, cfg.Cache.TTL, metricsSvc, logr)
	deviceSvc := service.NewDeviceService(deviceRepo, classSvc, validate, logr)
	scanSvc := service.NewScanService(deviceSvc, classSvc, sessionStore, logr)
	rosterSvc := service.NewRosterService(sessionStore, logr)
	participationSvc := service.NewParticipationService(sessionStore, logr)

	var archiveSvc *service.ArchiveService
	var sessionArchiver *service.ArchiveService
	if cfg.Archive.Enabled {
		archiveSvc = service.NewArchiveService(archiveRepo, jobs.QueueConfig{
			Workers:    cfg.Archive.Workers,
			BufferSize: cfg.Archive.BufferSize,
			MaxRetries: cfg.Archive.MaxRetries,
		}, logr)
		archiveSvc.Start(context.Background())
		defer archiveSvc.Stop()
		sessionArchiver = archiveSvc
	} else {
		archiveSvc = service.NewArchiveService(archiveRepo, jobs.QueueConfig{}, logr)
	}

	sessionSvc := service.NewSessionService(
		sessionStore, sessionStore,
		attendanceRepo, participationRepo, homeworkRepo,
		archiverOrNil(sessionArchiver),
		cfg.Session.SubmitLockTTL, logr,
	)

	// Handlers.
	authHandler := handler.NewAuthHandler(authSvc)
	scanHandler := handler.NewScanHandler(scanSvc, metricsSvc)
	sessionHandler := handler.NewSessionHandler(sessionSvc, rosterSvc, participationSvc, metricsSvc)
	schoolHandler := handler.NewSchoolHandler(schoolSvc)
	deviceHandler := handler.NewDeviceHandler(deviceSvc, schoolSvc, classSvc)
	archiveHandler := handler.NewArchiveHandler(archiveSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
			return
		}
		if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "redis unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
		}

		api.POST("/scan", middleware.RequireDevice(), scanHandler.Resolve)

		session := api.Group("/session", middleware.RequireDevice())
		{
			session.GET("", sessionHandler.Get)
			session.DELETE("", sessionHandler.Abort)
			session.POST("/attendance/:studentId", sessionHandler.ToggleAttendance)
			session.POST("/attendance/finalize", sessionHandler.FinalizeAttendance)
			session.POST("/participation/:studentId", sessionHandler.ToggleParticipation)
			session.PUT("/participation/:studentId/comment", sessionHandler.SaveParticipationComment)
			session.GET("/participation/stats", sessionHandler.ParticipationStats)
			session.PUT("/homework", sessionHandler.SetHomework)
			session.DELETE("/homework", sessionHandler.ClearHomework)
			session.POST("/submit", sessionHandler.Submit)
		}

		device := api.Group("/device", middleware.RequireDevice())
		{
			device.GET("/binding", deviceHandler.GetBinding)
			device.PUT("/binding", middleware.JWT(authSvc), deviceHandler.Bind)
			device.GET("/class", deviceHandler.ClassDetails)
		}

		schools := api.Group("/schools", middleware.JWT(authSvc))
		{
			schools.GET("/:schoolId", schoolHandler.Get)
			schools.GET("/:schoolId/classes", schoolHandler.ListClasses)
			schools.GET("/:schoolId/grades", schoolHandler.ListGrades)
		}

		archives := api.Group("/archives", middleware.JWT(authSvc))
		{
			archives.GET("", archiveHandler.List)
			archives.GET("/export", archiveHandler.Export)
			archives.GET("/:archiveId", archiveHandler.Get)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Sugar().Errorw("forced shutdown", "error", err)
	}
}

// archiverOrNil keeps the session service's archiver interface nil when
// archiving is disabled, instead of a non-nil interface holding a nil value.
func archiverOrNil(svc *service.ArchiveService) service.SessionArchiver {
	if svc == nil {
		return nil
	}
	return svc
}
