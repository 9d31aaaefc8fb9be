package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"libraryapi/internal/auth"
	"libraryapi/internal/author"
	"libraryapi/internal/book"
	"libraryapi/internal/config"
	"libraryapi/internal/genre"
	"libraryapi/internal/httpx"
	"libraryapi/internal/loan"
	"libraryapi/internal/logging"
	"libraryapi/internal/platform/migrations"
	"libraryapi/internal/platform/postgres"
	"libraryapi/internal/reader"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		logging.New(os.Stderr, "info", "text").Error(context.Background(), "invalid configuration", "error", err)
		return err
	}
	log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := setupTracing(ctx, cfg.OTLPEndpoint)
	if err != nil {
		log.Error(ctx, "tracing setup failed", "error", err)
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	pool, err := postgres.Open(ctx, cfg.DSN, 2*time.Second)
	if err != nil {
		log.Error(ctx, "cannot open database", "dsn", config.RedactDSN(cfg.DSN), "error", err)
		return err
	}
	defer pool.Close()
	log.Info(ctx, "database connection OK")

	if cfg.AutoMigrate {
		if err := migrations.Up(ctx, pool); err != nil {
			log.Error(ctx, "migrations failed", "error", err)
			return err
		}
	}

	readerService := reader.NewService(reader.NewPostgresRepo(pool, cfg.DBTimeout), log)
	bookService := book.NewService(book.NewPostgresRepo(pool, cfg.DBTimeout), log)
	authorService := author.NewService(author.NewPostgresRepo(pool, cfg.DBTimeout), log)
	genreService := genre.NewService(genre.NewPostgresRepo(pool, cfg.DBTimeout), log)
	loanService := loan.NewService(loan.NewPostgresRepo(pool, cfg.DBTimeout), log)
	authService := auth.NewService(cfg.JWTSecret, cfg.TokenTTL, readerService, auth.NewPostgresRepo(pool, cfg.DBTimeout), log)

	if n, err := authService.PruneRevoked(ctx); err != nil {
		log.Warn(ctx, "prune revoked tokens failed", "error", err)
	} else if n > 0 {
		log.Info(ctx, "pruned revoked tokens", "count", n)
	}

	limiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	loginLimiter := httpx.NewRateLimitMiddleware(1, 5)
	go limiter.Run(ctx)
	go loginLimiter.Run(ctx)

	router := newRouter(handlers{
		readers: reader.NewHTTPHandler(readerService, log),
		books:   book.NewHTTPHandler(bookService, log),
		authors: author.NewHTTPHandler(authorService, log),
		genres:  genre.NewHTTPHandler(genreService, log),
		loans:   loan.NewHTTPHandler(loanService, log),
		auth:    auth.NewHTTPHandler(authService, log),
	}, routerOptions{
		log:          log,
		validator:    authService,
		ready:        pool.Ping,
		corsOrigins:  cfg.CORSOrigins,
		maxBodyBytes: cfg.MaxBodyBytes,
		limiter:      limiter,
		loginLimiter: loginLimiter,
	})

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting server", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		log.Error(ctx, "server error", "error", err)
		return err
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(sctx); err != nil {
		log.Error(sctx, "graceful shutdown failed", "error", err)
		return err
	}
	return nil
}
