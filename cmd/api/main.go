// @title           Loan Request API
// @version         1.0
// @description     Personal loan requests with applicant and manager roles.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/loandesk/loan-api/internal/api"
	"github.com/loandesk/loan-api/internal/api/metrics"
	"github.com/loandesk/loan-api/internal/core/ports"
	"github.com/loandesk/loan-api/internal/core/service"
	"github.com/loandesk/loan-api/internal/infrastructure/config"
	redisstore "github.com/loandesk/loan-api/internal/infrastructure/db/redis"
	"github.com/loandesk/loan-api/internal/infrastructure/memory"
	"github.com/loandesk/loan-api/internal/infrastructure/token"
	"github.com/loandesk/loan-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "loan-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server exited properly")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// Seed users and their static tokens
	issuer, err := token.NewIssuer(cfg.TokenSecret)
	if err != nil {
		return err
	}
	users, err := issuer.SeedUsers()
	if err != nil {
		return err
	}
	now := time.Now()
	if err := token.WriteTokenFile(cfg.TokenFile, users, now); err != nil {
		log.Warn().Err(err).Str("path", cfg.TokenFile).Msg("could not write token file")
	}
	for _, u := range users {
		log.Info().Int64("user_id", u.ID).Str("role", string(u.Role)).Str("token", u.Token).Msg("seed user")
	}

	// Idempotency keys: Redis when configured, memory otherwise
	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	var idem ports.IdempotencyStore
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		idem = redisstore.NewIdempotencyStore(rdb, cfg.IdempotencyTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("idempotency keys stored in redis")
	} else {
		idem = memory.NewIdempotencyStore(cfg.IdempotencyTTL)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	loanRepo := memory.NewLoanRepository()
	userRepo := memory.NewUserRepository(users)

	e := api.NewRouter(api.Dependencies{
		Loans:        service.NewLoanService(loanRepo, idem, m, log),
		Resolver:     service.NewIdentityService(userRepo, issuer),
		Guard:        service.NewAccessGuard(loanRepo),
		Metrics:      m,
		Registry:     reg,
		Redis:        rdb,
		Logger:       log,
		DeletePolicy: cfg.DeletePolicy,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("delete_policy", cfg.DeletePolicy).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
