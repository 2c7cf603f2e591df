package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/DatzProject/I.Teaching-Ramlan/api/swagger"
	"github.com/DatzProject/I.Teaching-Ramlan/internal/handler"
	internalmiddleware "github.com/DatzProject/I.Teaching-Ramlan/internal/middleware"
	"github.com/DatzProject/I.Teaching-Ramlan/internal/repository"
	"github.com/DatzProject/I.Teaching-Ramlan/internal/service"
	"github.com/DatzProject/I.Teaching-Ramlan/pkg/cache"
	"github.com/DatzProject/I.Teaching-Ramlan/pkg/config"
	"github.com/DatzProject/I.Teaching-Ramlan/pkg/database"
	appErrors "github.com/DatzProject/I.Teaching-Ramlan/pkg/errors"
	"github.com/DatzProject/I.Teaching-Ramlan/pkg/jobs"
	"github.com/DatzProject/I.Teaching-Ramlan/pkg/logger"
	corsmiddleware "github.com/DatzProject/I.Teaching-Ramlan/pkg/middleware/cors"
	reqidmiddleware "github.com/DatzProject/I.Teaching-Ramlan/pkg/middleware/requestid"
	"github.com/DatzProject/I.Teaching-Ramlan/pkg/sheets"
	"github.com/DatzProject/I.Teaching-Ramlan/pkg/storage"
)

// @title Absensi Siswa API
// @version 1.0.0
// @description Student attendance over a spreadsheet-backed store
// @BasePath /
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := service.NewMetricsService()
	client, err := sheets.New(sheets.Config{
		Endpoint:     cfg.Store.Endpoint,
		ReadTimeout:  cfg.Store.ReadTimeout,
		WriteTimeout: cfg.Store.WriteTimeout,
		Observer:     metrics,
		Logger:       logr,
	})
	if err != nil {
		logr.Sugar().Fatalw("store client", "error", err)
	}

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled and drafts kept in memory", "error", err)
		redisClient = nil
	} else {
		defer redisClient.Close() //nolint:errcheck
	}

	var cacheSvc *service.CacheService
	if redisClient != nil && cfg.Cache.Enabled {
		cacheSvc = service.NewCacheService(repository.NewCacheRepository(redisClient, logr), metrics, cfg.Cache.TTL, logr, true)
	}

	validate := service.NewValidator()
	studentRepo := repository.NewStudentRepository(client)
	attendanceRepo := repository.NewAttendanceRepository(client)
	calendarRepo := repository.NewCalendarRepository(client)
	scheduleRepo := repository.NewScheduleRepository(client)
	schoolRepo := repository.NewSchoolRepository(client)
	recapRepo := repository.NewRecapRepository(client)
	maintenanceRepo := repository.NewMaintenanceRepository(client, cfg.Store.ClearTimeout)
	drafts := repository.NewDraftRepository(redisClient)

	reader := service.NewStoreReader(studentRepo, attendanceRepo, calendarRepo, scheduleRepo, schoolRepo, cacheSvc)
	recaps := service.NewRecapService(reader, recapRepo, cacheSvc, logr)

	exportCfg := service.ExportConfig{
		APIPrefix:    cfg.APIPrefix,
		ResultTTL:    cfg.Reports.SignedURLTTL,
		CityFallback: cfg.School.CityFallback,
	}

	handlers := handler.Handlers{
		Students: handler.NewStudentHandler(service.NewStudentService(reader, studentRepo, validate, logr)),
		Attendance: handler.NewAttendanceHandler(
			service.NewDailyAttendanceService(reader, attendanceRepo, metrics, validate, logr),
			service.NewMonthlyAttendanceService(reader, attendanceRepo, drafts, cfg.Drafts.TTL, logr),
		),
		Drafts:   handler.NewDraftHandler(service.NewDraftService(reader, attendanceRepo, drafts, metrics, cfg.Drafts.TTL, validate, logr)),
		Recaps:   handler.NewRecapHandler(recaps),
		Calendar: handler.NewCalendarHandler(service.NewCalendarService(reader, calendarRepo, scheduleRepo, validate, logr)),
		School: handler.NewSchoolHandler(
			service.NewSchoolService(reader, schoolRepo, cfg.School.CityFallback, validate, logr),
			service.NewMaintenanceService(reader, maintenanceRepo, drafts, logr),
		),
		Exports: handler.NewExportHandler(service.NewExportService(reader, recaps, nil, nil, exportCfg, logr)),
	}

	checks := map[string]handler.ReadinessCheck{
		"store": func(ctx context.Context) error {
			_, err := reader.ClassOptions(ctx)
			return err
		},
	}
	if redisClient != nil {
		checks["redis"] = cache.HealthCheck(redisClient)
	}

	if cfg.Reports.Enabled {
		reports, db, queue, err := startReports(ctx, cfg, reader, recaps, exportCfg, metrics, logr)
		if err != nil {
			logr.Sugar().Fatalw("reports", "error", err)
		}
		defer db.Close() //nolint:errcheck
		defer queue.Stop()
		handlers.Reports = handler.NewReportHandler(reports)
		checks["database"] = db.PingContext
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metrics, "/metrics"))

	metricsHandler := handler.NewMetricsHandler(metrics, checks)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/metrics/summary", metricsHandler.Summary)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Register(r.Group(cfg.APIPrefix), handlers)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Warnw("graceful shutdown failed", "error", err)
	}
	logr.Info("server stopped")
}

// startReports wires the report job ledger, file storage and the worker
// queue, then replays jobs left queued by a previous process.
func startReports(
	ctx context.Context,
	cfg *config.Config,
	reader *service.StoreReader,
	recaps *service.RecapService,
	exportCfg service.ExportConfig,
	metrics *service.MetricsService,
	logr *zap.Logger,
) (*service.ReportService, *sqlx.DB, *jobs.Queue[string], error) {
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := database.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, nil, err
	}

	files, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
	if err != nil {
		_ = db.Close()
		return nil, nil, nil, fmt.Errorf("report storage: %w", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL)
	exporter := service.NewExportService(reader, recaps, files, signer, exportCfg, logr)

	jobRepo := repository.NewReportRepository(db)
	worker := service.NewReportWorker(jobRepo, exporter, metrics, logr)
	queue := jobs.NewQueue[string]("reports", worker.Handle, jobs.QueueConfig[string]{
		Workers:    cfg.Reports.WorkerConcurrency,
		MaxRetries: cfg.Reports.WorkerRetries,
		RetryDelay: 5 * time.Second,
		JobTimeout: 2 * time.Minute,
		OnGiveUp:   worker.GiveUp,
		Retryable:  appErrors.Retryable,
		Logger:     logr,
	})
	queue.Start(ctx)

	reports := service.NewReportService(jobRepo, queue, exporter, metrics, logr, service.ReportServiceConfig{
		ResultTTL:       cfg.Reports.SignedURLTTL,
		CleanupInterval: cfg.Reports.CleanupInterval,
	})
	reports.RecoverPendingJobs(ctx)
	reports.StartCleanup(ctx)
	return reports, db, queue, nil
}
