package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/sarangart/agrizen-gateway/api/routes"
	authsvc "github.com/sarangart/agrizen-gateway/internal/auth"
	cartsvc "github.com/sarangart/agrizen-gateway/internal/cart"
	catalogsvc "github.com/sarangart/agrizen-gateway/internal/catalog"
	checkoutsvc "github.com/sarangart/agrizen-gateway/internal/checkout"
	orderssvc "github.com/sarangart/agrizen-gateway/internal/orders"
	panelssvc "github.com/sarangart/agrizen-gateway/internal/panels"
	"github.com/sarangart/agrizen-gateway/internal/session"
	"github.com/sarangart/agrizen-gateway/pkg/config"
	"github.com/sarangart/agrizen-gateway/pkg/logger"
	"github.com/sarangart/agrizen-gateway/pkg/metrics"
	redisclient "github.com/sarangart/agrizen-gateway/pkg/redis"
	stripeclient "github.com/sarangart/agrizen-gateway/pkg/stripe"
	"github.com/sarangart/agrizen-gateway/pkg/upstream"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "gateway"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "gateway",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redisclient.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	upstreamClient, err := upstream.NewClient(cfg.Upstream, upstream.WithMetrics(httpMetrics))
	if err != nil {
		logg.Error(context.Background(), "failed to build upstream client", err)
		os.Exit(1)
	}

	sessions, err := session.NewManager(redisClient, cfg.Session)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	var tokenizer *stripeclient.Client
	if cfg.Stripe.APIKey != "" {
		tokenizer, err = stripeclient.NewClient(context.Background(), cfg.Stripe, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap stripe", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "stripe key not configured, card payments disabled")
	}

	authService := authsvc.NewService(upstreamClient, sessions, logg)
	catalogService := catalogsvc.NewService(upstreamClient, upstreamClient)
	cartService := cartsvc.NewService(upstreamClient, upstreamClient, sessions, redisClient, cfg.Cart)
	ordersService := orderssvc.NewService(upstreamClient)
	panelsService := panelssvc.NewService(upstreamClient, upstreamClient)

	var checkoutService *checkoutsvc.Service
	if tokenizer != nil {
		checkoutService = checkoutsvc.NewService(upstreamClient, sessions, tokenizer, logg)
	} else {
		checkoutService = checkoutsvc.NewService(upstreamClient, sessions, nil, logg)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting gateway")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			registry,
			httpMetrics,
			redisClient,
			upstreamClient,
			sessions,
			authService,
			catalogService,
			cartService,
			checkoutService,
			ordersService,
			panelsService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "gateway stopped unexpectedly", err)
		os.Exit(1)
	}
}
