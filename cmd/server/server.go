package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	gormlogger "gorm.io/gorm/logger"

	"creative-hub/services/messaging-api/internal/config"
	briefDomain "creative-hub/services/messaging-api/internal/domain/brief"
	"creative-hub/services/messaging-api/internal/domain/conversation"
	messageDomain "creative-hub/services/messaging-api/internal/domain/message"
	notificationDomain "creative-hub/services/messaging-api/internal/domain/notification"
	"creative-hub/services/messaging-api/internal/infrastructure/auth"
	"creative-hub/services/messaging-api/internal/infrastructure/database"
	"creative-hub/services/messaging-api/internal/infrastructure/logger"
	"creative-hub/services/messaging-api/internal/infrastructure/observability"
	"creative-hub/services/messaging-api/internal/infrastructure/realtime"
	briefrepo "creative-hub/services/messaging-api/internal/infrastructure/repository/brief"
	jobrepo "creative-hub/services/messaging-api/internal/infrastructure/repository/job"
	messagerepo "creative-hub/services/messaging-api/internal/infrastructure/repository/message"
	notificationrepo "creative-hub/services/messaging-api/internal/infrastructure/repository/notification"
	profilerepo "creative-hub/services/messaging-api/internal/infrastructure/repository/profile"
	"creative-hub/services/messaging-api/internal/interfaces/httpserver"
	"creative-hub/services/messaging-api/internal/interfaces/httpserver/handlers"
	"creative-hub/services/messaging-api/internal/webhook"
	"creative-hub/services/messaging-api/internal/worker"
)

// @title Messaging API
// @version 1.0
// @description Direct messaging, conversation previews, project briefs and notifications for the creative marketplace.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
type Application struct {
	httpServer *httpserver.HttpServer
	workerPool *worker.Pool
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, workerPool *worker.Pool, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		workerPool: workerPool,
		log:        log,
	}
}

// Start runs the HTTP server and the notification delivery pool until ctx is
// cancelled or either of them fails.
func (a *Application) Start(ctx context.Context) error {
	var eg errgroup.Group
	eg.Go(func() error {
		return a.httpServer.Run(ctx)
	})
	eg.Go(func() error {
		return a.workerPool.Run(ctx)
	})
	return eg.Wait()
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(ctx, database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.Migrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	authValidator, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth validator")
	}

	messageRepository := messagerepo.NewRepository(db)
	briefRepository := briefrepo.NewRepository(db)
	profileRepository := profilerepo.NewRepository(db)
	jobRepository := jobrepo.NewRepository(db)
	notificationRepository := notificationrepo.NewRepository(db)

	hub := realtime.NewHub(cfg.SubscriberBuffer, log)

	tracker := conversation.NewTracker(cfg.ConversationCacheTTL)
	messageService := messageDomain.NewService(messageRepository, profileRepository, jobRepository,
		messageDomain.Publishers{hub, tracker}, log)
	aggregator := conversation.NewAggregator(messageService, profileRepository, tracker, log)
	notificationService := notificationDomain.NewService(notificationRepository, log)
	briefService := briefDomain.NewService(briefRepository, profileRepository, messageService, notificationService, log)

	// Webhook delivery pipeline for notifications
	webhookService := webhook.NewHTTPService(cfg.NotifyWebhookURL, cfg.NotifyWebhookToken, log)
	workerPool := worker.NewPool(
		notificationRepository,
		webhookService,
		worker.Config{
			WorkerCount:  cfg.NotifyWorkerCount,
			TaskTimeout:  cfg.NotifyTaskTimeout,
			PollInterval: cfg.NotifyPollInterval,
		},
		log,
	)

	handlerProvider := handlers.NewProvider(
		messageService,
		aggregator,
		briefService,
		notificationService,
		profileRepository,
		hub,
		log,
	)

	httpServer := httpserver.New(cfg, log, handlerProvider, authValidator)
	app := NewApplication(httpServer, workerPool, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
