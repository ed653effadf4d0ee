package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"creative-hub/services/messaging-api/internal/domain/profile"
	"creative-hub/services/messaging-api/internal/infrastructure/auth"
	"creative-hub/services/messaging-api/internal/interfaces/httpserver/responses"
	"creative-hub/services/messaging-api/internal/utils/platformerrors"
)

// UserHandler exposes the user search used by the new-conversation picker.
type UserHandler struct {
	profiles profile.Repository
	log      zerolog.Logger
}

// NewUserHandler constructs the handler.
func NewUserHandler(profiles profile.Repository, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		profiles: profiles,
		log:      log.With().Str("handler", "user").Logger(),
	}
}

// Search handles GET /v1/users/search
// @Summary Search users
// @Description Matches display name or email, excluding the caller
// @Tags Users
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Max rows"
// @Success 200 {object} responses.Envelope
// @Router /v1/users/search [get]
func (h *UserHandler) Search(c *gin.Context) {
	actorID := auth.UserID(c)
	if actorID == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotAuthenticated, "authentication required", "user-search-unauthenticated")
		return
	}

	query := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, err := h.profiles.Search(c.Request.Context(), actorID, query, limit)
	if err != nil {
		responses.HandleError(c, err, "failed to search users")
		return
	}

	responses.OK(c, http.StatusOK, users)
}
