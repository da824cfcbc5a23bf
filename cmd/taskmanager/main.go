package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"task-manager/internal/auth"
	"task-manager/internal/config"
	"task-manager/internal/httpapi"
	"task-manager/internal/repository"
	"task-manager/internal/service"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "taskmanager:", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("taskmanager", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "config.yaml", "YAML configuration file; environment variables override it")
	showVersion := flags.Bool("version", false, "print the version and exit")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: taskmanager [flags]\n\n%s\n", flags.FlagUsages())
		if text, err := config.Usage(); err == nil {
			fmt.Fprintln(os.Stderr, text)
		}
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if *showVersion {
		fmt.Println(version)
		return nil
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log := newLogger(cfg.LogLevel)

	db, err := repository.NewDB(cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("db handle: %w", err)
	}
	defer sqlDB.Close()

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTExpiry)
	opts := []service.Option{service.WithLogger(log)}

	categorySvc := service.NewCategoryService(categoryRepo, opts...)
	if cfg.SeedCategories {
		seedCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
		err := categorySvc.SeedDefaults(seedCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
	}

	handler, err := httpapi.NewRouter(log, httpapi.Deps{
		Identity:   service.NewIdentityService(userRepo, hasher, tokens, opts...),
		Users:      service.NewUserService(userRepo, hasher, opts...),
		Categories: categorySvc,
		Tasks:      service.NewTaskService(taskRepo, categoryRepo, opts...),
		Statistics: service.NewStatisticsService(taskRepo, opts...),
		Tokens:     tokens,
		Accounts:   userRepo,
		Pingers: map[string]httpapi.Pinger{
			"database": httpapi.PingFunc(sqlDB.PingContext),
		},
	}, cfg.HTTPTimeout)
	if err != nil {
		return fmt.Errorf("router: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           handler,
		ReadHeaderTimeout: cfg.HTTPTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("task manager started", "address", server.Addr, "version", version)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("shutdown complete")
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		lvl = slog.LevelDebug
	case "WARN":
		lvl = slog.LevelWarn
	case "ERROR":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
