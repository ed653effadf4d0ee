package v1

import (
	"github.com/gin-gonic/gin"

	"creative-hub/services/messaging-api/internal/interfaces/httpserver/handlers"
)

func registerBriefRoutes(router gin.IRoutes, handler *handlers.BriefHandler) {
	router.POST("/briefs", handler.Send)
	router.GET("/briefs/:brief_id", handler.Get)
	router.POST("/briefs/:brief_id/accept", handler.Accept)
	router.POST("/briefs/:brief_id/decline", handler.Decline)
	router.POST("/briefs/:brief_id/withdraw", handler.Withdraw)
}
