package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"creative-hub/services/messaging-api/internal/domain/message"
	"creative-hub/services/messaging-api/internal/infrastructure/auth"
	"creative-hub/services/messaging-api/internal/infrastructure/observability"
	"creative-hub/services/messaging-api/internal/interfaces/httpserver/requests"
	"creative-hub/services/messaging-api/internal/interfaces/httpserver/responses"
	"creative-hub/services/messaging-api/internal/utils/platformerrors"
)

// ConversationInvalidator drops a viewer's cached conversation index after a
// write the index cannot fold in incrementally.
type ConversationInvalidator interface {
	Invalidate(viewerID string)
}

// MessageHandler exposes HTTP entrypoints for the message store.
type MessageHandler struct {
	service       message.Service
	conversations ConversationInvalidator
	log           zerolog.Logger
}

// NewMessageHandler constructs the handler.
func NewMessageHandler(service message.Service, conversations ConversationInvalidator, log zerolog.Logger) *MessageHandler {
	return &MessageHandler{
		service:       service,
		conversations: conversations,
		log:           log.With().Str("handler", "message").Logger(),
	}
}

// Send handles POST /v1/messages
// @Summary Send a message
// @Description Stores a direct message and fans it out to live subscribers
// @Tags Messages
// @Accept json
// @Produce json
// @Param request body requests.SendMessageRequest true "Message"
// @Success 201 {object} responses.Envelope
// @Failure 400 {object} responses.Envelope
// @Router /v1/messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
	actorID := auth.UserID(c)
	if actorID == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotAuthenticated, "authentication required", "msg-send-unauthenticated")
		return
	}

	var req requests.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body", "msg-send-bad-body")
		return
	}

	var jobCtx *message.JobContextRef
	if req.JobContext != nil {
		jobCtx = &message.JobContextRef{
			JobID:       req.JobContext.JobID,
			ContextType: message.ContextType(req.JobContext.ContextType),
		}
	}

	ctx, span := observability.StartThreadSpan(c.Request.Context(), "send", actorID, req.RecipientID)
	defer span.End()

	msg, err := h.service.Send(ctx, actorID, req.RecipientID, req.Body, jobCtx)
	if err != nil {
		observability.RecordError(span, err)
		responses.HandleError(c, err, "failed to send message")
		return
	}

	responses.OK(c, http.StatusCreated, msg)
}

// GetThread handles GET /v1/conversations/:other_id/messages
// @Summary List a conversation thread
// @Description Returns all messages between the caller and another user, oldest first
// @Tags Messages
// @Produce json
// @Param other_id path string true "Other user ID"
// @Success 200 {object} responses.Envelope
// @Router /v1/conversations/{other_id}/messages [get]
func (h *MessageHandler) GetThread(c *gin.Context) {
	actorID := auth.UserID(c)
	if actorID == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotAuthenticated, "authentication required", "msg-thread-unauthenticated")
		return
	}
	otherID := c.Param("other_id")

	msgs, err := h.service.ListConversation(c.Request.Context(), actorID, otherID)
	if err != nil {
		responses.HandleError(c, err, "failed to list thread")
		return
	}

	responses.OK(c, http.StatusOK, msgs)
}

// MarkRead handles POST /v1/messages/:message_id/read
// @Summary Mark one message read
// @Tags Messages
// @Produce json
// @Param message_id path string true "Message ID"
// @Success 200 {object} responses.Envelope
// @Failure 403 {object} responses.Envelope
// @Router /v1/messages/{message_id}/read [post]
func (h *MessageHandler) MarkRead(c *gin.Context) {
	actorID := auth.UserID(c)
	if actorID == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotAuthenticated, "authentication required", "msg-read-unauthenticated")
		return
	}

	if err := h.service.MarkMessageRead(c.Request.Context(), actorID, c.Param("message_id")); err != nil {
		responses.HandleError(c, err, "failed to mark message read")
		return
	}

	if h.conversations != nil {
		h.conversations.Invalidate(actorID)
	}

	responses.OK(c, http.StatusOK, gin.H{"read": true})
}

// Delete handles DELETE /v1/messages/:message_id
// @Summary Delete a message
// @Description Removes a message; only its sender may delete it
// @Tags Messages
// @Produce json
// @Param message_id path string true "Message ID"
// @Success 200 {object} responses.Envelope
// @Failure 403 {object} responses.Envelope
// @Router /v1/messages/{message_id} [delete]
func (h *MessageHandler) Delete(c *gin.Context) {
	actorID := auth.UserID(c)
	if actorID == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotAuthenticated, "authentication required", "msg-delete-unauthenticated")
		return
	}

	if err := h.service.Delete(c.Request.Context(), actorID, c.Param("message_id")); err != nil {
		responses.HandleError(c, err, "failed to delete message")
		return
	}

	if h.conversations != nil {
		h.conversations.Invalidate(actorID)
	}

	responses.OK(c, http.StatusOK, gin.H{"deleted": true})
}

// JobContext handles GET /v1/conversations/:other_id/job-context
// @Summary Get the job banner for a thread
// @Description Resolves the job posting referenced by the thread's earliest job-tagged message
// @Tags Messages
// @Produce json
// @Param other_id path string true "Other user ID"
// @Success 200 {object} responses.Envelope
// @Router /v1/conversations/{other_id}/job-context [get]
func (h *MessageHandler) JobContext(c *gin.Context) {
	actorID := auth.UserID(c)
	if actorID == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotAuthenticated, "authentication required", "msg-jobctx-unauthenticated")
		return
	}

	jobCtx, err := h.service.JobContextFor(c.Request.Context(), actorID, c.Param("other_id"))
	if err != nil {
		responses.HandleError(c, err, "failed to resolve job context")
		return
	}

	responses.OK(c, http.StatusOK, jobCtx)
}
