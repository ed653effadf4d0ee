package v1

import (
	"github.com/gin-gonic/gin"

	"creative-hub/services/messaging-api/internal/interfaces/httpserver/handlers"
)

func registerNotificationRoutes(router gin.IRoutes, handler *handlers.NotificationHandler) {
	router.GET("/notifications", handler.List)
	router.GET("/notifications/unread-count", handler.UnreadCount)
	router.POST("/notifications/read-all", handler.MarkAllRead)
	router.POST("/notifications/:notification_id/read", handler.MarkRead)
}
