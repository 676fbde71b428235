// Package server boots the shop: config, database, cache, migrations,
// workers, scheduler, gRPC health endpoint and the HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/bloom/app/controllers"
	"github.com/shashiranjanraj/bloom/app/jobs"
	"github.com/shashiranjanraj/bloom/app/models"
	"github.com/shashiranjanraj/bloom/app/repositories"
	"github.com/shashiranjanraj/bloom/app/routes"
	"github.com/shashiranjanraj/bloom/app/services"
	"github.com/shashiranjanraj/bloom/config"
	"github.com/shashiranjanraj/bloom/internal/bot"
	"github.com/shashiranjanraj/bloom/pkg/cache"
	"github.com/shashiranjanraj/bloom/pkg/database"
	"github.com/shashiranjanraj/bloom/pkg/event"
	grpcsrv "github.com/shashiranjanraj/bloom/pkg/grpc"
	"github.com/shashiranjanraj/bloom/pkg/logger"
	"github.com/shashiranjanraj/bloom/pkg/metrics"
	"github.com/shashiranjanraj/bloom/pkg/middleware"
	"github.com/shashiranjanraj/bloom/pkg/migration"
	"github.com/shashiranjanraj/bloom/pkg/notification"
	"github.com/shashiranjanraj/bloom/pkg/orm"
	"github.com/shashiranjanraj/bloom/pkg/queue"
	"github.com/shashiranjanraj/bloom/pkg/reqid"
	"github.com/shashiranjanraj/bloom/pkg/router"
	"github.com/shashiranjanraj/bloom/pkg/schedule"
	"github.com/shashiranjanraj/bloom/pkg/session"
	"github.com/shashiranjanraj/bloom/pkg/storage"
)

// cacheStore adapts pkg/cache to the orm read-through hook.
type cacheStore struct{}

func (cacheStore) Get(key string, dest interface{}) bool { return cache.Get(key, dest) }
func (cacheStore) Set(key string, value interface{}, ttl time.Duration) error {
	return cache.Set(key, value, ttl)
}

// Start boots every subsystem and serves until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if uri := config.LogMongoURI(); uri != "" {
		if _, err := logger.AttachMongo(uri, config.LogMongoDB(), "logs"); err != nil {
			logger.Warn("mongo log sink unavailable", "error", err)
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, continuing without cache", "error", err)
	}
	orm.CacheStore = cacheStore{}

	if err := migration.New(database.DB).Run(); err != nil {
		return err
	}

	storage.Connect()

	// Status notifications go out from this process, so it needs its own
	// send-only Telegram client; polling stays with the bot process.
	if token := config.TelegramToken(); token != "" {
		sender, err := bot.NewSender(token)
		if err != nil {
			logger.Warn("telegram sender unavailable", "error", err)
		} else {
			notification.SetTelegramSender(sender)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startWorkers(ctx)
	startScheduler(ctx)

	grpcServer, _, err := grpcsrv.Start(config.GRPCPort())
	if err != nil {
		return err
	}
	defer grpcsrv.Stop(grpcServer)

	go controllers.OrderFeed.Run()
	event.Listen("order.status_changed", controllers.BroadcastStatusChange)

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		session.Middleware(session.DefaultOptions()),
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(120, time.Minute),
	)
	r.HandleFunc("/metrics", metrics.Handler())
	routes.RegisterAPI(r)

	srv := &http.Server{
		Addr:         ":" + config.AppPort(),
		Handler:      r.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "port", config.AppPort())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// startWorkers registers the job types, picks the queue driver and launches
// the worker pool. Redis gives the queue durability; without it jobs run
// from the in-process memory driver.
func startWorkers(ctx context.Context) {
	jobs.Register()
	jobs.ListenEvents()
	queue.UseDB(database.DB)

	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.StartWorkers(ctx, 2)
}

// startScheduler registers recurring tasks and starts the ticker loop.
func startScheduler(ctx context.Context) {
	notifier := services.NewNotifier()
	orderRepo := repositories.NewOrderRepository()

	schedule.Hourly().Name("delivery-reminders").WithoutOverlapping().Run(func() {
		now := time.Now()
		due, err := orderRepo.UpcomingDeliveries(models.StatusInProgress, now, now.Add(time.Hour))
		if err != nil {
			logger.Error("delivery reminder query", "error", err)
			return
		}
		for _, order := range due {
			notifier.NotifyText(order,
				fmt.Sprintf("🚚 Напоминание: ваш заказ №%d будет доставлен в течение часа.", order.ID))
		}
	})

	schedule.Start(ctx)
}
