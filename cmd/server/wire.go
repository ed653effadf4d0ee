//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"creative-hub/services/messaging-api/internal/config"
	briefDomain "creative-hub/services/messaging-api/internal/domain/brief"
	"creative-hub/services/messaging-api/internal/domain/conversation"
	"creative-hub/services/messaging-api/internal/domain/job"
	messageDomain "creative-hub/services/messaging-api/internal/domain/message"
	notificationDomain "creative-hub/services/messaging-api/internal/domain/notification"
	"creative-hub/services/messaging-api/internal/domain/profile"
	"creative-hub/services/messaging-api/internal/infrastructure/auth"
	"creative-hub/services/messaging-api/internal/infrastructure/database"
	"creative-hub/services/messaging-api/internal/infrastructure/logger"
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

var messagingSet = wire.NewSet(
	messagerepo.NewRepository,
	wire.Bind(new(messageDomain.Repository), new(*messagerepo.Repository)),
	briefrepo.NewRepository,
	wire.Bind(new(briefDomain.Repository), new(*briefrepo.Repository)),
	profilerepo.NewRepository,
	wire.Bind(new(profile.Repository), new(*profilerepo.Repository)),
	jobrepo.NewRepository,
	wire.Bind(new(job.Repository), new(*jobrepo.Repository)),
	notificationrepo.NewRepository,
	wire.Bind(new(notificationDomain.Repository), new(*notificationrepo.Repository)),
	newHub,
	newTracker,
	newMessagePublisher,
	newMessageService,
	conversation.NewAggregator,
	wire.Bind(new(conversation.MessageLister), new(messageDomain.Service)),
	newNotificationService,
	newBriefService,
	newWebhookService,
	newWorkerPool,
	handlers.NewProvider,
)

// BuildApplication assembles the messaging service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newDatabaseConfig,
		newGormDB,
		newAuthValidator,
		messagingSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

func newGormDB(ctx context.Context, cfg database.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func newAuthValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*auth.Validator, error) {
	return auth.NewValidator(ctx, cfg, log)
}

func newHub(cfg *config.Config, log zerolog.Logger) *realtime.Hub {
	return realtime.NewHub(cfg.SubscriberBuffer, log)
}

func newTracker(cfg *config.Config) *conversation.Tracker {
	return conversation.NewTracker(cfg.ConversationCacheTTL)
}

func newMessagePublisher(hub *realtime.Hub, tracker *conversation.Tracker) messageDomain.Publisher {
	return messageDomain.Publishers{hub, tracker}
}

func newMessageService(
	repo messageDomain.Repository,
	profiles profile.Repository,
	jobs job.Repository,
	publisher messageDomain.Publisher,
	log zerolog.Logger,
) messageDomain.Service {
	return messageDomain.NewService(repo, profiles, jobs, publisher, log)
}

func newWebhookService(cfg *config.Config, log zerolog.Logger) webhook.Service {
	return webhook.NewHTTPService(cfg.NotifyWebhookURL, cfg.NotifyWebhookToken, log)
}

func newWorkerPool(repo notificationDomain.Repository, delivery webhook.Service, cfg *config.Config, log zerolog.Logger) *worker.Pool {
	return worker.NewPool(repo, delivery, worker.Config{
		WorkerCount:  cfg.NotifyWorkerCount,
		TaskTimeout:  cfg.NotifyTaskTimeout,
		PollInterval: cfg.NotifyPollInterval,
	}, log)
}

func newNotificationService(repo notificationDomain.Repository, log zerolog.Logger) notificationDomain.Service {
	return notificationDomain.NewService(repo, log)
}

func newBriefService(
	repo briefDomain.Repository,
	profiles profile.Repository,
	messages messageDomain.Service,
	notifications notificationDomain.Service,
	log zerolog.Logger,
) briefDomain.Service {
	return briefDomain.NewService(repo, profiles, messages, notifications, log)
}
