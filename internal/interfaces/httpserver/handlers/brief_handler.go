package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"creative-hub/services/messaging-api/internal/domain/brief"
	"creative-hub/services/messaging-api/internal/infrastructure/auth"
	"creative-hub/services/messaging-api/internal/infrastructure/observability"
	"creative-hub/services/messaging-api/internal/interfaces/httpserver/requests"
	"creative-hub/services/messaging-api/internal/interfaces/httpserver/responses"
	"creative-hub/services/messaging-api/internal/utils/platformerrors"
)

// BriefHandler exposes HTTP entrypoints for the brief lifecycle.
type BriefHandler struct {
	service brief.Service
	log     zerolog.Logger
}

// NewBriefHandler constructs the handler.
func NewBriefHandler(service brief.Service, log zerolog.Logger) *BriefHandler {
	return &BriefHandler{
		service: service,
		log:     log.With().Str("handler", "brief").Logger(),
	}
}

// Send handles POST /v1/briefs
// @Summary Send a project brief
// @Tags Briefs
// @Accept json
// @Produce json
// @Param request body requests.SendBriefRequest true "Brief"
// @Success 201 {object} responses.Envelope
// @Failure 400 {object} responses.Envelope
// @Router /v1/briefs [post]
func (h *BriefHandler) Send(c *gin.Context) {
	actorID := auth.UserID(c)
	if actorID == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotAuthenticated, "authentication required", "brief-send-unauthenticated")
		return
	}

	var req requests.SendBriefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body", "brief-send-bad-body")
		return
	}

	var budget *decimal.Decimal
	if req.Budget != nil {
		parsed, err := decimal.NewFromString(*req.Budget)
		if err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "budget must be a decimal number", "brief-send-bad-budget")
			return
		}
		budget = &parsed
	}

	b, err := h.service.Send(c.Request.Context(), actorID, brief.SendInput{
		RecipientID: req.RecipientID,
		Title:       req.Title,
		Description: req.Description,
		Budget:      budget,
		Deadline:    req.Deadline,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to send brief")
		return
	}

	responses.OK(c, http.StatusCreated, b)
}

// Get handles GET /v1/briefs/:brief_id
// @Summary Get a brief
// @Tags Briefs
// @Produce json
// @Param brief_id path string true "Brief ID"
// @Success 200 {object} responses.Envelope
// @Failure 404 {object} responses.Envelope
// @Router /v1/briefs/{brief_id} [get]
func (h *BriefHandler) Get(c *gin.Context) {
	actorID := auth.UserID(c)
	if actorID == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotAuthenticated, "authentication required", "brief-get-unauthenticated")
		return
	}

	b, err := h.service.Get(c.Request.Context(), actorID, c.Param("brief_id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get brief")
		return
	}

	responses.OK(c, http.StatusOK, b)
}

// Accept handles POST /v1/briefs/:brief_id/accept
// @Summary Accept a pending brief
// @Tags Briefs
// @Accept json
// @Produce json
// @Param brief_id path string true "Brief ID"
// @Param request body requests.RespondBriefRequest false "Optional note"
// @Success 200 {object} responses.Envelope
// @Failure 409 {object} responses.Envelope
// @Router /v1/briefs/{brief_id}/accept [post]
func (h *BriefHandler) Accept(c *gin.Context) {
	h.respond(c, "accept", h.service.Accept)
}

// Decline handles POST /v1/briefs/:brief_id/decline
// @Summary Decline a pending brief
// @Tags Briefs
// @Accept json
// @Produce json
// @Param brief_id path string true "Brief ID"
// @Param request body requests.RespondBriefRequest false "Optional note"
// @Success 200 {object} responses.Envelope
// @Failure 409 {object} responses.Envelope
// @Router /v1/briefs/{brief_id}/decline [post]
func (h *BriefHandler) Decline(c *gin.Context) {
	h.respond(c, "decline", h.service.Decline)
}

// Withdraw handles POST /v1/briefs/:brief_id/withdraw
// @Summary Withdraw a pending brief
// @Tags Briefs
// @Produce json
// @Param brief_id path string true "Brief ID"
// @Success 200 {object} responses.Envelope
// @Failure 409 {object} responses.Envelope
// @Router /v1/briefs/{brief_id}/withdraw [post]
func (h *BriefHandler) Withdraw(c *gin.Context) {
	actorID := auth.UserID(c)
	if actorID == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotAuthenticated, "authentication required", "brief-withdraw-unauthenticated")
		return
	}
	briefID := c.Param("brief_id")

	ctx, span := observability.StartBriefSpan(c.Request.Context(), "withdraw", briefID)
	defer span.End()

	b, err := h.service.Withdraw(ctx, actorID, briefID)
	if err != nil {
		observability.RecordError(span, err)
		responses.HandleError(c, err, "failed to withdraw brief")
		return
	}
	observability.AddStatusTransition(span, string(brief.StatusPending), string(b.Status))

	responses.OK(c, http.StatusOK, b)
}

// ListConversation handles GET /v1/conversations/:other_id/briefs
// @Summary List briefs in a conversation
// @Tags Briefs
// @Produce json
// @Param other_id path string true "Other user ID"
// @Success 200 {object} responses.Envelope
// @Router /v1/conversations/{other_id}/briefs [get]
func (h *BriefHandler) ListConversation(c *gin.Context) {
	actorID := auth.UserID(c)
	if actorID == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotAuthenticated, "authentication required", "brief-list-unauthenticated")
		return
	}

	briefs, err := h.service.ListConversation(c.Request.Context(), actorID, c.Param("other_id"))
	if err != nil {
		responses.HandleError(c, err, "failed to list briefs")
		return
	}

	responses.OK(c, http.StatusOK, briefs)
}

type respondFunc func(ctx context.Context, actorID, briefID string, note *string) (*brief.Brief, error)

func (h *BriefHandler) respond(c *gin.Context, operation string, fn respondFunc) {
	actorID := auth.UserID(c)
	if actorID == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotAuthenticated, "authentication required", "brief-respond-unauthenticated")
		return
	}
	briefID := c.Param("brief_id")

	var req requests.RespondBriefRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body", "brief-respond-bad-body")
			return
		}
	}

	ctx, span := observability.StartBriefSpan(c.Request.Context(), operation, briefID)
	defer span.End()

	b, err := fn(ctx, actorID, briefID, req.Note)
	if err != nil {
		observability.RecordError(span, err)
		responses.HandleError(c, err, "failed to "+operation+" brief")
		return
	}
	observability.AddStatusTransition(span, string(brief.StatusPending), string(b.Status))

	responses.OK(c, http.StatusOK, b)
}
