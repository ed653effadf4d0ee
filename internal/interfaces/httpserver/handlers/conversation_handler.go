package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"creative-hub/services/messaging-api/internal/domain/conversation"
	"creative-hub/services/messaging-api/internal/domain/message"
	"creative-hub/services/messaging-api/internal/infrastructure/auth"
	"creative-hub/services/messaging-api/internal/infrastructure/realtime"
	"creative-hub/services/messaging-api/internal/interfaces/httpserver/responses"
	"creative-hub/services/messaging-api/internal/utils/platformerrors"
)

// ConversationHandler exposes the conversation list, read-state writes and
// the SSE stream endpoints.
type ConversationHandler struct {
	aggregator *conversation.Aggregator
	messages   message.Service
	hub        *realtime.Hub
	log        zerolog.Logger
}

// NewConversationHandler constructs the handler.
func NewConversationHandler(aggregator *conversation.Aggregator, messages message.Service, hub *realtime.Hub, log zerolog.Logger) *ConversationHandler {
	return &ConversationHandler{
		aggregator: aggregator,
		messages:   messages,
		hub:        hub,
		log:        log.With().Str("handler", "conversation").Logger(),
	}
}

// List handles GET /v1/conversations
// @Summary List conversations
// @Description Returns one preview per counterparty, newest thread first
// @Tags Conversations
// @Produce json
// @Param with query string false "Ensure this user appears even with no messages yet"
// @Success 200 {object} responses.Envelope
// @Router /v1/conversations [get]
func (h *ConversationHandler) List(c *gin.Context) {
	actorID := auth.UserID(c)
	if actorID == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotAuthenticated, "authentication required", "conv-list-unauthenticated")
		return
	}

	previews, err := h.aggregator.ListForUser(c.Request.Context(), actorID)
	if err != nil {
		responses.HandleError(c, err, "failed to list conversations")
		return
	}

	if with := c.Query("with"); with != "" && with != actorID {
		previews = h.aggregator.EnsurePeer(c.Request.Context(), previews, with)
	}

	responses.OK(c, http.StatusOK, previews)
}

// MarkRead handles POST /v1/conversations/:other_id/read
// @Summary Mark a conversation read
// @Description Flips every unread message from the counterparty to the caller
// @Tags Conversations
// @Produce json
// @Param other_id path string true "Other user ID"
// @Success 200 {object} responses.Envelope
// @Router /v1/conversations/{other_id}/read [post]
func (h *ConversationHandler) MarkRead(c *gin.Context) {
	actorID := auth.UserID(c)
	if actorID == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotAuthenticated, "authentication required", "conv-read-unauthenticated")
		return
	}

	updated, err := h.messages.MarkConversationRead(c.Request.Context(), actorID, c.Param("other_id"))
	if err != nil {
		responses.HandleError(c, err, "failed to mark conversation read")
		return
	}

	h.aggregator.MarkRead(actorID, c.Param("other_id"))

	responses.OK(c, http.StatusOK, gin.H{"updated": updated})
}

// Stream handles GET /v1/conversations/stream
// @Summary Stream all message events
// @Description Server-sent events for every message involving the caller
// @Tags Conversations
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Router /v1/conversations/stream [get]
func (h *ConversationHandler) Stream(c *gin.Context) {
	actorID := auth.UserID(c)
	if actorID == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotAuthenticated, "authentication required", "conv-stream-unauthenticated")
		return
	}

	sub := h.hub.SubscribeAll(actorID)
	h.stream(c, sub)
}

// StreamThread handles GET /v1/conversations/:other_id/stream
// @Summary Stream one thread's message events
// @Tags Conversations
// @Produce text/event-stream
// @Param other_id path string true "Other user ID"
// @Success 200 {string} string "event stream"
// @Router /v1/conversations/{other_id}/stream [get]
func (h *ConversationHandler) StreamThread(c *gin.Context) {
	actorID := auth.UserID(c)
	if actorID == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotAuthenticated, "authentication required", "conv-stream-unauthenticated")
		return
	}

	sub := h.hub.SubscribeConversation(actorID, c.Param("other_id"))
	h.stream(c, sub)
}

func (h *ConversationHandler) stream(c *gin.Context, sub *realtime.Subscription) {
	defer sub.Close()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case msg, ok := <-sub.Events():
			if !ok {
				return false
			}
			c.SSEvent("message", msg)
			return true
		}
	})
}
