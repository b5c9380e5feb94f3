package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/school-admin-api/api/swagger"
	"github.com/noah-isme/school-admin-api/internal/handler"
	"github.com/noah-isme/school-admin-api/internal/repository"
	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/pkg/cache"
	"github.com/noah-isme/school-admin-api/pkg/config"
	"github.com/noah-isme/school-admin-api/pkg/database"
	"github.com/noah-isme/school-admin-api/pkg/jobs"
	"github.com/noah-isme/school-admin-api/pkg/logger"
	"github.com/noah-isme/school-admin-api/pkg/password"
	"github.com/noah-isme/school-admin-api/pkg/payload"
	"github.com/noah-isme/school-admin-api/pkg/storage"
)

// @title School Admin API
// @version 1.0.0
// @description Staff authentication, student records, terms, subjects, schedules and grades.
// @BasePath /api
// @schemes http https

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

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Database.MigrateOnBoot {
		if err := migrate(ctx, cfg.Database, logr); err != nil {
			return err
		}
	}

	cipher, err := payload.New(cfg.Payload)
	if err != nil {
		return fmt.Errorf("init payload cipher: %w", err)
	}

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	var cacheClient redis.UniversalClient
	if redisClient != nil {
		defer redisClient.Close()
		cacheClient = redisClient
	}

	mediaHost, localMedia, err := newMediaHost(ctx, cfg.Media)
	if err != nil {
		return fmt.Errorf("init media host: %w", err)
	}

	queue := jobs.NewQueue("background", jobs.QueueConfig{
		Workers:    cfg.Jobs.Workers,
		MaxRetries: cfg.Jobs.Retries,
		Logger:     logr.Named("jobs"),
	})

	validate := validator.New()
	hasher := password.NewHasher(password.DefaultParams)
	metrics := service.NewMetricsService()

	staffRepo := repository.NewStaffRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	termRepo := repository.NewTermRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	cacheRepo := repository.NewCacheRepository(cacheClient)

	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr.Named("cache"), cacheClient != nil)
	sessionSvc := service.NewSessionService(sessionRepo, cfg.Session, metrics, logr.Named("session"))
	activitySvc := service.NewActivityService(repository.NewStaffLogRepository(db), queue, logr.Named("activity"))
	mediaSvc := service.NewMediaService(mediaHost, cfg.Media, queue, metrics, logr.Named("media"))
	authSvc := service.NewAuthService(staffRepo, sessionSvc, hasher, activitySvc, metrics, validate, logr.Named("auth"))
	termSvc := service.NewTermService(termRepo, cacheSvc, validate, logr.Named("terms"))
	studentSvc := service.NewStudentService(studentRepo, validate, logr.Named("students"))
	subjectSvc := service.NewSubjectService(subjectRepo, validate, logr.Named("subjects"))
	gradeSvc := service.NewGradeService(repository.NewGradeRepository(db), studentRepo, subjectRepo, termSvc, validate, logr.Named("grades"))
	dashboardSvc := service.NewDashboardService(repository.NewDashboardRepository(db), cacheSvc, cfg.Dashboard.CacheTTL, logr.Named("dashboard"))

	queue.Handle(service.JobStaffLog, activitySvc.HandleJob)
	queue.Handle(service.JobMediaDelete, mediaSvc.HandleDeleteJob)
	stopJobs := startJobs(queue)
	defer stopJobs()

	go sessionSvc.RunPurger(ctx, cfg.Session.CleanupInterval)

	checks := map[string]handler.Pinger{"database": db}
	if cacheClient != nil {
		checks["redis"] = handler.PingFunc(cacheRepo.Ping)
	}

	cookie := handler.CookieSettings{Name: cfg.Session.CookieName, Secure: cfg.Session.CookieSecure}
	handlers := handler.Handlers{
		Auth:      handler.NewAuthHandler(authSvc, cookie),
		Setup:     handler.NewSetupHandler(service.NewSetupService(staffRepo, mediaSvc, hasher, validate, logr.Named("setup"))),
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
		Staff:     handler.NewStaffHandler(service.NewStaffService(staffRepo, cipher, hasher, validate, logr.Named("staff"))),
		Profile:   handler.NewProfileHandler(service.NewProfileService(staffRepo, mediaSvc, sessionSvc, hasher, validate, logr.Named("profile")), cookie),
		Activity:  handler.NewActivityHandler(activitySvc),
		Media:     handler.NewMediaHandler(mediaSvc, localMedia, logr.Named("media")),
		Settings:  handler.NewSettingsHandler(service.NewSettingsService(repository.NewSettingsRepository(db), validate, logr.Named("settings"))),
		Terms:     handler.NewTermHandler(termSvc),
		Catalog:   handler.NewCatalogHandler(service.NewCatalogService(repository.NewCatalogRepository(db), validate, logr.Named("catalog"))),
		Subjects:  handler.NewSubjectHandler(subjectSvc),
		Schedules: handler.NewScheduleHandler(service.NewScheduleService(repository.NewScheduleRepository(db), termSvc, validate, logr.Named("schedules"))),
		Students:  handler.NewStudentHandler(studentSvc),
		Grades:    handler.NewGradeHandler(gradeSvc),
		Reports:   handler.NewReportHandler(service.NewReportCardService(studentRepo, termSvc, gradeSvc, logr.Named("reports"))),
		Metrics:   handler.NewMetricsHandler(metrics, checks),
	}

	router := handler.NewRouter(handler.RouterConfig{
		APIPrefix:      cfg.APIPrefix,
		CookieName:     cfg.Session.CookieName,
		CookieSecure:   cfg.Session.CookieSecure,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableDocs:     cfg.Env != config.EnvProduction,
	}, handlers, handler.RouterDeps{
		Sessions:   sessionSvc,
		Metrics:    metrics,
		Invalidate: dashboardSvc.Invalidate,
		Logger:     logr,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
		logr.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logr.Info("server stopped gracefully")
	return nil
}

// startJobs runs the queue detached from the signal context: requests still
// draining in srv.Shutdown enqueue jobs that must run against a live context.
// The returned func drains the queue and only then cancels it.
func startJobs(queue *jobs.Queue) func() {
	ctx, cancel := context.WithCancel(context.Background())
	queue.Start(ctx)
	return func() {
		queue.Stop()
		cancel()
	}
}

// migrate runs on its own connection because closing the migrator closes
// the pool it was given.
func migrate(ctx context.Context, cfg config.DatabaseConfig, logr *zap.Logger) error {
	db, err := database.NewPostgres(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect database for migrations: %w", err)
	}
	migrator, err := database.NewMigrator(db, logr.Named("migrate"))
	if err != nil {
		_ = db.Close()
		return err
	}
	defer migrator.Close() //nolint:errcheck
	return migrator.Up()
}

// newMediaHost returns the configured host and, for disk hosting, the handle
// that serves signed downloads.
func newMediaHost(ctx context.Context, cfg config.MediaConfig) (storage.MediaHost, handler.SignedMediaOpener, error) {
	if cfg.Provider == config.MediaProviderS3 {
		host, err := storage.NewS3MediaHost(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return host, nil, nil
	}
	signer := storage.NewSignedURLSigner(cfg.SignedURLSecret, cfg.SignedURLTTL)
	host, err := storage.NewLocalMediaHost(cfg.LocalDir, cfg.PublicBaseURL+"/media", signer)
	if err != nil {
		return nil, nil, err
	}
	return host, host, nil
}
