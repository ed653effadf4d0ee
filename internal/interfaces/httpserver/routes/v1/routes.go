package v1

import (
	"github.com/gin-gonic/gin"

	"creative-hub/services/messaging-api/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
}

// NewRoutes builds the v1 route registrar.
func NewRoutes(handlerProvider *handlers.Provider) *Routes {
	return &Routes{
		handlers: handlerProvider,
	}
}

// Register attaches all v1 routes under the /v1 prefix.
func (r *Routes) Register(engine *gin.Engine) {
	group := engine.Group("/v1")
	registerMessageRoutes(group, r.handlers.Message)
	registerConversationRoutes(group, r.handlers.Conversation, r.handlers.Message, r.handlers.Brief)
	registerBriefRoutes(group, r.handlers.Brief)
	registerNotificationRoutes(group, r.handlers.Notification)
	registerUserRoutes(group, r.handlers.User)
}
