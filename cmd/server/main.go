package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moneta/docs"
	"moneta/internal/auth"
	"moneta/internal/budget"
	"moneta/internal/cache"
	"moneta/internal/config"
	"moneta/internal/handlers"
	"moneta/internal/metrics"
	"moneta/internal/news"
	"moneta/internal/notify"
	"moneta/internal/reminder"
	"moneta/internal/repository"
	"moneta/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/vmkteam/embedlog"
)

// @title						Moneta API
// @version					1.0
// @description				Personal finance tracker: expenses, monthly budgets, reminders and finance news.
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sl := embedlog.NewLogger(cfg.LogVerbose, cfg.LogJSON)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, sl); err != nil {
		sl.Error(ctx, "server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, sl embedlog.Logger) error {
	if !cfg.LogVerbose {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := storage.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	c, err := cache.Open(cfg.CachePath)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer c.Close()

	if err := bootstrapAdmin(ctx, db, cfg, sl); err != nil {
		return err
	}
	if n, err := db.CleanExpiredSessions(ctx); err != nil {
		sl.Error(ctx, "failed to clean expired sessions", "err", err)
	} else if n > 0 {
		sl.Print(ctx, "expired sessions removed", "count", n)
	}

	pusher, err := newPusher(cfg, sl)
	if err != nil {
		return err
	}
	notifier := notify.NewService(db, pusher, sl)
	scheduler := reminder.NewScheduler(db, notifier, sl, cfg.SchedulerInterval)

	h := handlers.NewHandlers(handlers.Deps{
		DB:            db,
		Issuer:        auth.NewIssuer(cfg.JWTSecret),
		Expenses:      repository.NewExpenses(db, c, budget.NewPolicy(sl), repository.NewBroker(), sl),
		Budgets:       repository.NewBudgets(db, sl),
		Notifications: repository.NewNotifications(db, sl),
		Reminders:     reminder.NewService(db, scheduler, notifier, sl),
		News:          news.NewClient(cfg.NewsAPIURL, cfg.NewsAPIKey, &http.Client{Timeout: 15 * time.Second}),
		Log:           sl,
		SecureCookie:  cfg.Secure,
	})

	go func() {
		if err := scheduler.Run(ctx); err != nil {
			sl.Error(ctx, "scheduler stopped", "err", err)
		}
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           setupRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(h.CloseStreams)

	errCh := make(chan error, 1)
	go func() {
		sl.Print(ctx, "server starting", "addr", srv.Addr, "driver", db.Driver(), "push", pusher.Name())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sl.Print(shutdownCtx, "server shutting down")
	return srv.Shutdown(shutdownCtx)
}

func setupRouter(h *handlers.Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), metrics.Middleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.InstanceName(docs.SwaggerInfo.InstanceName())))

	h.Routes(r)
	return r
}

func newPusher(cfg config.Config, sl embedlog.Logger) (notify.Pusher, error) {
	switch cfg.PushProvider {
	case config.PushTelegram:
		p, err := notify.NewTelegramPusher(cfg.TelegramToken)
		if err != nil {
			return nil, fmt.Errorf("telegram pusher: %w", err)
		}
		return p, nil
	case config.PushWebhook:
		return notify.NewWebhookPusher(cfg.PushWebhookURL, cfg.PushWebhookKey, &http.Client{Timeout: 10 * time.Second}), nil
	default:
		return notify.NewLogPusher(sl), nil
	}
}

// bootstrapAdmin creates the configured admin account when the database has no users.
func bootstrapAdmin(ctx context.Context, db *storage.DB, cfg config.Config, sl embedlog.Logger) error {
	if cfg.AdminUser == "" || cfg.AdminPassword == "" {
		return nil
	}

	count, err := db.UserCount(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	if err := auth.ValidatePassword(cfg.AdminPassword); err != nil {
		return fmt.Errorf("ADMIN_PASSWORD: %w", err)
	}
	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	user, err := db.CreateUser(ctx, cfg.AdminUser, hash)
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	sl.Print(ctx, "admin user created", "user_id", user.ID, "username", user.Username)
	return nil
}
