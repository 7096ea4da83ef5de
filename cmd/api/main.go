// Command api is the entry point for the contest backend HTTP server.
//
// Startup order: logger, configuration, MongoDB, Redis, indexes, domain
// wiring, background contest sync, HTTP server with graceful shutdown. No
// business logic lives here; all wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/logica-uic/contest-backend/internal/api"
	"github.com/logica-uic/contest-backend/internal/core/service"
	"github.com/logica-uic/contest-backend/internal/infrastructure/config"
	mongostore "github.com/logica-uic/contest-backend/internal/infrastructure/db/mongo"
	redisstore "github.com/logica-uic/contest-backend/internal/infrastructure/db/redis"
	"github.com/logica-uic/contest-backend/internal/infrastructure/email"
	"github.com/logica-uic/contest-backend/internal/infrastructure/scheduler"
	"github.com/logica-uic/contest-backend/pkg/logger"
	"github.com/logica-uic/contest-backend/pkg/otpgen"
	"github.com/logica-uic/contest-backend/pkg/sessiontok"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Startup uses a deadline so misconfiguration fails fast instead of
	// hanging on an unreachable dependency.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	cfg, err := config.Load(startupCtx)
	if err != nil {
		// Logger options depend on config, so this one error goes to stderr raw.
		os.Stderr.WriteString("load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting contest backend")

	mongoClient, db, err := mongostore.Connect(startupCtx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	must(log, err, "connect to mongodb")
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if derr := mongoClient.Disconnect(ctx); derr != nil {
			log.Error().Err(derr).Msg("mongodb disconnect error")
		}
	}()

	rdb, err := redisstore.Connect(startupCtx, redisstore.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	must(log, err, "connect to redis")
	defer func() {
		if cerr := rdb.Close(); cerr != nil {
			log.Error().Err(cerr).Msg("redis close error")
		}
	}()

	// --- Repositories ---
	accountRepo := mongostore.NewAccountRepository(db)
	problemRepo := mongostore.NewProblemRepository(db)
	contestRepo := mongostore.NewContestRepository(db)

	must(log, accountRepo.EnsureIndexes(startupCtx), "ensure account indexes")
	must(log, problemRepo.EnsureIndexes(startupCtx), "ensure problem indexes")

	// --- Domain wiring ---
	tokens := sessiontok.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	codes := otpgen.New(cfg.OTPSecret, 0)
	sender := email.NewSMTPSender(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	throttle := redisstore.NewResetThrottle(rdb)

	authService := service.NewAuthService(accountRepo, sender, tokens, codes, throttle, log)
	problemService := service.NewProblemService(problemRepo, log)
	contestService := service.NewContestService(contestRepo, log)

	// --- Background contest live-flag sync ---
	schedCtx, schedCancel := context.WithCancel(context.Background())
	defer schedCancel()
	scheduler.NewContestScheduler(contestService, cfg.SyncInterval, log).Start(schedCtx)

	// --- HTTP server ---
	e := api.NewRouter(api.RouterConfig{
		Auth:       authService,
		Problems:   problemService,
		Contests:   contestService,
		Tokens:     tokens,
		CookiePath: cfg.CookiePath,
		DB:         db,
		Redis:      rdb,
		Log:        log,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-serverErr:
		log.Error().Err(err).Msg("server error")
	}

	schedCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
		os.Exit(1)
	}
	log.Info().Msg("server stopped cleanly")
}

// must logs a fatal startup error and terminates the process. Limited to
// wiring; after startup every error is returned and handled explicitly.
func must(log zerolog.Logger, err error, context string) {
	if err != nil {
		log.Error().Err(err).Str("context", context).Msg("startup failure")
		os.Exit(1)
	}
}
