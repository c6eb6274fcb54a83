package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/insurance-crm/internal/api/http"
	"github.com/spec-kit/insurance-crm/internal/api/http/handlers"
	"github.com/spec-kit/insurance-crm/internal/auth"
	"github.com/spec-kit/insurance-crm/internal/config"
	"github.com/spec-kit/insurance-crm/internal/events"
	"github.com/spec-kit/insurance-crm/internal/observability"
	"github.com/spec-kit/insurance-crm/internal/persistence"
	"github.com/spec-kit/insurance-crm/internal/repository"
	"github.com/spec-kit/insurance-crm/internal/service"
	"github.com/spec-kit/insurance-crm/internal/validation"
	"github.com/spec-kit/insurance-crm/internal/worker"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.IsDevelopment())
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, cfg.Postgres.DSN, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	redisStore := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redisStore.Close()

	pool := pg.Pool
	staffRepo := repository.NewStaffUserRepository(pool)
	companyRepo := repository.NewCompanyRepository(pool)
	profileRepo := repository.NewBusinessProfileRepository(pool)
	riskRepo := repository.NewRiskFactorRepository(pool)
	changeRepo := repository.NewChangeEventRepository(pool)
	accountRepo := repository.NewPolicyAccountRepository(pool)
	policyRepo := repository.NewPolicyRepository(pool)
	claimRepo := repository.NewClaimRepository(pool)
	contactRepo := repository.NewContactRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(staffRepo, tokens, hasher, logger)
	companyService := service.NewCompanyService(service.CompanyDependencies{
		CompanyRepo:         companyRepo,
		BusinessProfileRepo: profileRepo,
		RiskFactorRepo:      riskRepo,
		ChangeEventRepo:     changeRepo,
		PolicyAccountRepo:   accountRepo,
		Dispatcher:          dispatcher,
		Logger:              logger,
	})
	auditService := service.NewAuditService(dispatcher, changeRepo, logger)
	worker.StartAuditWorker(auditService)

	validator := validation.New()
	metrics := observability.NewMetrics("insurance_crm")

	var redisClient *redis.Client
	deps := map[string]handlers.Pinger{"postgres": pg}
	if redisStore != nil {
		redisClient = redisStore.Client
		deps["redis"] = redisStore
	}
	rateLimiter, err := httptransport.NewRateLimiter(cfg.RateLimit, redisClient)
	if err != nil {
		logger.Fatal("failed to init rate limiter", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.App.BodyLimit(),
		ErrorHandler: httptransport.ErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:      logger,
		Metrics:     metrics,
		Timeout:     cfg.App.RequestTimeout(),
		CORS:        cfg.CORS,
		RateLimiter: rateLimiter,
	})
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		APIVersion:     cfg.App.APIVersion,
		Health:         handlers.NewHealthHandler(cfg.App.Env, version, deps, logger),
		Auth:           handlers.NewAuthHandler(authService, validator),
		Companies:      handlers.NewCompanyHandler(companyService, validator),
		Contacts:       handlers.NewContactHandler(service.NewContactService(contactRepo), validator),
		Policies:       handlers.NewPolicyHandler(service.NewPolicyService(policyRepo, accountRepo), validator),
		Claims:         handlers.NewClaimHandler(service.NewClaimService(claimRepo, policyRepo), validator),
		Tasks:          handlers.NewTaskHandler(service.NewTaskService(taskRepo), validator),
		Dashboard:      handlers.NewDashboardHandler(service.NewDashboardService(dashboardRepo), service.NewReportService(reportRepo), validator),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, staffRepo),
		Metrics:        metrics,
	})

	go func() {
		logger.Info("starting server",
			zap.String("addr", cfg.App.Addr()),
			zap.String("env", cfg.App.Env),
			zap.String("api_version", cfg.App.APIVersion))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
