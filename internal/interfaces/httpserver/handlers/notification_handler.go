package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"creative-hub/services/messaging-api/internal/domain/notification"
	"creative-hub/services/messaging-api/internal/infrastructure/auth"
	"creative-hub/services/messaging-api/internal/interfaces/httpserver/responses"
	"creative-hub/services/messaging-api/internal/utils/platformerrors"
)

// NotificationHandler exposes HTTP entrypoints for in-app notifications.
type NotificationHandler struct {
	service notification.Service
	log     zerolog.Logger
}

// NewNotificationHandler constructs the handler.
func NewNotificationHandler(service notification.Service, log zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		log:     log.With().Str("handler", "notification").Logger(),
	}
}

// List handles GET /v1/notifications
// @Summary List notifications
// @Tags Notifications
// @Produce json
// @Param unread query bool false "Only unread"
// @Param limit query int false "Max rows"
// @Success 200 {object} responses.Envelope
// @Router /v1/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	actorID := auth.UserID(c)
	if actorID == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotAuthenticated, "authentication required", "notif-list-unauthenticated")
		return
	}

	unreadOnly := c.Query("unread") == "true"
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, err := h.service.ListForUser(c.Request.Context(), actorID, unreadOnly, limit)
	if err != nil {
		responses.HandleError(c, err, "failed to list notifications")
		return
	}

	responses.OK(c, http.StatusOK, items)
}

// UnreadCount handles GET /v1/notifications/unread-count
// @Summary Count unread notifications
// @Tags Notifications
// @Produce json
// @Success 200 {object} responses.Envelope
// @Router /v1/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	actorID := auth.UserID(c)
	if actorID == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotAuthenticated, "authentication required", "notif-count-unauthenticated")
		return
	}

	count, err := h.service.CountUnread(c.Request.Context(), actorID)
	if err != nil {
		responses.HandleError(c, err, "failed to count notifications")
		return
	}

	responses.OK(c, http.StatusOK, gin.H{"count": count})
}

// MarkRead handles POST /v1/notifications/:notification_id/read
// @Summary Mark one notification read
// @Tags Notifications
// @Produce json
// @Param notification_id path string true "Notification ID"
// @Success 200 {object} responses.Envelope
// @Failure 404 {object} responses.Envelope
// @Router /v1/notifications/{notification_id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actorID := auth.UserID(c)
	if actorID == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotAuthenticated, "authentication required", "notif-read-unauthenticated")
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), actorID, c.Param("notification_id")); err != nil {
		responses.HandleError(c, err, "failed to mark notification read")
		return
	}

	responses.OK(c, http.StatusOK, gin.H{"read": true})
}

// MarkAllRead handles POST /v1/notifications/read-all
// @Summary Mark all notifications read
// @Tags Notifications
// @Produce json
// @Success 200 {object} responses.Envelope
// @Router /v1/notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	actorID := auth.UserID(c)
	if actorID == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotAuthenticated, "authentication required", "notif-read-all-unauthenticated")
		return
	}

	updated, err := h.service.MarkAllRead(c.Request.Context(), actorID)
	if err != nil {
		responses.HandleError(c, err, "failed to mark notifications read")
		return
	}

	responses.OK(c, http.StatusOK, gin.H{"updated": updated})
}
