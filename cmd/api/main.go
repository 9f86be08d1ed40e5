package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/employee-portal/secure-api/internal/api/http"
	"github.com/employee-portal/secure-api/internal/api/http/handlers"
	"github.com/employee-portal/secure-api/internal/auth"
	"github.com/employee-portal/secure-api/internal/config"
	"github.com/employee-portal/secure-api/internal/domain"
	"github.com/employee-portal/secure-api/internal/observability"
	"github.com/employee-portal/secure-api/internal/persistence"
	"github.com/employee-portal/secure-api/internal/repository"
	"github.com/employee-portal/secure-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	keys, err := auth.NewKeyMaterial(
		cfg.Auth.JWTSecret,
		cfg.Auth.Issuer,
		cfg.Auth.Audience,
		cfg.Auth.TokenTTL(),
		cfg.Auth.ClockSkew(),
	)
	if err != nil {
		log.Fatalf("failed to initialise key material: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()
	dependencies := map[string]handlers.Pinger{}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	var employees repository.EmployeeRepository
	if pool := pg.PoolHandle(); pool != nil {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		employees = repository.NewEmployeeRepository(pool)
		dependencies["postgres"] = pg
	} else {
		employees = repository.NewMemoryEmployeeRepository(domain.StandardEmployees())
	}

	if redis := persistence.NewRedis(cfg.Redis, logger); redis != nil {
		defer redis.Close()
		employees = repository.NewCachedEmployeeRepository(employees, redis, cfg.Redis.CacheTTL(), logger)
		dependencies["redis"] = redis
	}

	knownRoles := auth.NewRoleSet(cfg.Auth.Roles...)
	if !knownRoles.Contains(cfg.Auth.DefaultRole) {
		logger.Fatal("default role is not a known role",
			zap.String("role", cfg.Auth.DefaultRole),
			zap.Strings("roles", knownRoles.Roles()),
		)
	}

	issuer := auth.NewIssuer(keys, auth.WithKnownRoles(knownRoles))
	validator := auth.NewValidator(keys)
	enforcer := auth.NewEnforcer(validator, auth.NewPolicy(cfg.Auth.OperationRoles))
	authMiddleware := auth.NewAuthMiddleware(enforcer, logger, metrics)

	authService := service.NewAuthService(issuer, auth.Identity{
		UserID: cfg.Auth.DefaultUserID,
		Role:   cfg.Auth.DefaultRole,
	})
	employeeService := service.NewEmployeeService(employees)

	app := httptransport.NewApp(cfg.App.Name, logger, metrics, cfg.App.RequestTimeout(), httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Employees:      handlers.NewEmployeeHandler(employeeService),
		AuthMiddleware: authMiddleware,
	})

	logger.Info("starting server",
		zap.String("addr", cfg.App.Addr()),
		zap.String("issuer", keys.Issuer()),
		zap.String("audience", keys.Audience()),
		zap.Duration("token_ttl", keys.TTL()),
	)

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
