package handlers

import (
	"github.com/rs/zerolog"

	"creative-hub/services/messaging-api/internal/domain/brief"
	"creative-hub/services/messaging-api/internal/domain/conversation"
	"creative-hub/services/messaging-api/internal/domain/message"
	"creative-hub/services/messaging-api/internal/domain/notification"
	"creative-hub/services/messaging-api/internal/domain/profile"
	"creative-hub/services/messaging-api/internal/infrastructure/realtime"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Message      *MessageHandler
	Conversation *ConversationHandler
	Brief        *BriefHandler
	Notification *NotificationHandler
	User         *UserHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	messageService message.Service,
	aggregator *conversation.Aggregator,
	briefService brief.Service,
	notificationService notification.Service,
	profiles profile.Repository,
	hub *realtime.Hub,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Message:      NewMessageHandler(messageService, aggregator, log),
		Conversation: NewConversationHandler(aggregator, messageService, hub, log),
		Brief:        NewBriefHandler(briefService, log),
		Notification: NewNotificationHandler(notificationService, log),
		User:         NewUserHandler(profiles, log),
	}
}
