package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"feedhub/internal/config"
	"feedhub/internal/publisher"
	"feedhub/internal/scheduler"
	"feedhub/internal/server"
	"feedhub/internal/service"
	"feedhub/internal/source/bbc"
	"feedhub/internal/source/nyt"
	"feedhub/internal/source/reddit"
	"feedhub/internal/storage/postgres"
	"feedhub/internal/token"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Initialize RabbitMQ publisher
	rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
		URL:        cfg.RabbitMQ.URL,
		Exchange:   cfg.RabbitMQ.Exchange,
		RoutingKey: cfg.RabbitMQ.RoutingKey,
		QueueName:  cfg.RabbitMQ.QueueName,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		os.Exit(1)
	}
	defer rabbitMQ.Close()

	// Initialize stores
	userStore := postgres.NewUserStore(db)
	activityStore := postgres.NewActivityStore(db)
	followStore := postgres.NewFollowStore(db)
	txManager := postgres.NewTransactionManager(db)

	tokens := token.NewIssuer(cfg.Auth.TokenSecret)

	// Initialize sources
	redditSource := reddit.New(reddit.Config{
		BaseURL:        cfg.Sources.Reddit.BaseURL,
		Limit:          cfg.Sources.Reddit.Limit,
		Timeout:        cfg.Sources.Reddit.Timeout,
		MaxAttempts:    cfg.Sources.Reddit.Retry.MaxAttempts,
		InitialBackoff: cfg.Sources.Reddit.Retry.InitialBackoff,
		MaxBackoff:     cfg.Sources.Reddit.Retry.MaxBackoff,
	}, logger)
	nytSource := nyt.New(nyt.Config{
		BaseURL:        cfg.Sources.NYT.BaseURL,
		APIKey:         cfg.Sources.NYT.APIKey,
		Timeout:        cfg.Sources.NYT.Timeout,
		MaxAttempts:    cfg.Sources.NYT.Retry.MaxAttempts,
		InitialBackoff: cfg.Sources.NYT.Retry.InitialBackoff,
		MaxBackoff:     cfg.Sources.NYT.Retry.MaxBackoff,
	}, logger)
	bbcSource := bbc.New(bbc.Config{
		FeedURL: cfg.Sources.BBC.FeedURL,
		Timeout: cfg.Sources.BBC.Timeout,
	}, logger)

	// Create an ingest service per source
	ingestServices := []*service.IngestService{
		service.NewIngestService(redditSource, userStore, activityStore, rabbitMQ, logger),
		service.NewIngestService(nytSource, userStore, activityStore, rabbitMQ, logger),
		service.NewIngestService(bbcSource, userStore, activityStore, rabbitMQ, logger),
	}

	pushService := service.NewPushService(activityStore, rabbitMQ, logger)
	registrationService := service.NewRegistrationService(
		userStore,
		followStore,
		txManager,
		tokens,
		cfg.Sources.Feeds,
		logger,
	)

	ingesters := make([]scheduler.Ingester, 0, len(ingestServices))
	pullIngesters := make([]server.PullIngester, 0, len(ingestServices))
	for _, svc := range ingestServices {
		ingesters = append(ingesters, svc)
		pullIngesters = append(pullIngesters, svc)
	}

	sched := scheduler.NewScheduler(ingesters, cfg.Ingest.Interval, logger)

	app := server.New(&server.Config{
		Registrar: registrationService,
		Ingesters: pullIngesters,
		Push:      pushService,
		Feeds:     activityStore,
		APIKey:    cfg.Auth.APIKey,
		Logger:    logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	go func() {
		if err := sched.Start(ctx); err != nil && err != context.Canceled {
			logger.Error("scheduler error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		if err := app.Shutdown(); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}()

	logger.Info("starting feedhub",
		"addr", cfg.Server.Addr,
		"interval", cfg.Ingest.Interval,
		"source_feeds", cfg.Sources.Feeds,
	)

	if err := app.Listen(cfg.Server.Addr); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
