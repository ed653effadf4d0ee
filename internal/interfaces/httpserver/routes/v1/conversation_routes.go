package v1

import (
	"github.com/gin-gonic/gin"

	"creative-hub/services/messaging-api/internal/interfaces/httpserver/handlers"
)

func registerConversationRoutes(router gin.IRoutes, conv *handlers.ConversationHandler, msg *handlers.MessageHandler, brief *handlers.BriefHandler) {
	router.GET("/conversations", conv.List)
	router.GET("/conversations/stream", conv.Stream)
	router.GET("/conversations/:other_id/messages", msg.GetThread)
	router.GET("/conversations/:other_id/job-context", msg.JobContext)
	router.GET("/conversations/:other_id/briefs", brief.ListConversation)
	router.GET("/conversations/:other_id/stream", conv.StreamThread)
	router.POST("/conversations/:other_id/read", conv.MarkRead)
}
