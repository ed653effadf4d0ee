package v1

import (
	"github.com/gin-gonic/gin"

	"creative-hub/services/messaging-api/internal/interfaces/httpserver/handlers"
)

func registerMessageRoutes(router gin.IRoutes, handler *handlers.MessageHandler) {
	router.POST("/messages", handler.Send)
	router.POST("/messages/:message_id/read", handler.MarkRead)
	router.DELETE("/messages/:message_id", handler.Delete)
}
