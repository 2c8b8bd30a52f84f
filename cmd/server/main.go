package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/tdnguyen2104/virtual-queue/config"
	httpDelivery "github.com/tdnguyen2104/virtual-queue/internal/delivery/http"
	"github.com/tdnguyen2104/virtual-queue/internal/delivery/kafka/producer"
	"github.com/tdnguyen2104/virtual-queue/internal/infra/redis"
	repo "github.com/tdnguyen2104/virtual-queue/internal/repository/redis"
	"github.com/tdnguyen2104/virtual-queue/internal/service"
	pkgKafka "github.com/tdnguyen2104/virtual-queue/pkg/kafka"
	pkgLog "github.com/tdnguyen2104/virtual-queue/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	l := pkgLog.InitializeZapLogger(pkgLog.ZapConfig{
		Level:    cfg.Log.Level,
		Mode:     cfg.Log.Mode,
		Encoding: cfg.Log.Encoding,
	})

	// Redis status mirror (optional)
	var mirror repo.StatusMirror
	if cfg.Redis.Enabled {
		redisCli, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			l.Fatalf(ctx, "Failed to connect to Redis: %v", err)
		}
		defer redis.Disconnect(redisCli)

		mirror = repo.NewRedisStatusMirror(redisCli, l)
	}

	// Kafka producer (optional)
	var prod producer.Producer
	if cfg.Kafka.Enabled {
		kafkaSyncProd, err := pkgKafka.NewProducer(pkgKafka.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			RetryMax:     cfg.Kafka.ProducerRetryMax,
			RequiredAcks: cfg.Kafka.ProducerRequiredAcks,
		})
		if err != nil {
			l.Fatalf(ctx, "Failed to initialize Kafka producer: %v", err)
		}

		prod = producer.NewProducer(kafkaSyncProd, l)
		defer prod.Close()
	}

	bookingSvc := service.NewBookingService(cfg.Services, prod, mirror, l)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	h := httpDelivery.NewHandler(bookingSvc, l)
	h.RegisterRoutes(e)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
		l.Infof(ctx, "HTTP server is listening on %s", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			l.Fatalf(ctx, "Failed to serve HTTP: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info(ctx, "Server shutting down...")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		l.Errorf(ctx, "HTTP server shutdown: %v", err)
	}

	l.Info(ctx, "Server exited")
}
