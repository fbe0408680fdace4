package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/visapath-backend/internal/http/response"
	"github.com/yungbote/visapath-backend/internal/platform/ctxutil"
	"github.com/yungbote/visapath-backend/internal/services"
)

type SuggestionHandler struct {
	suggestions services.SuggestionService
}

func NewSuggestionHandler(suggestions services.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestions: suggestions}
}

// POST /api/suggestions/generate
func (h *SuggestionHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()
	drafts, err := h.suggestions.GenerateForUser(ctx, ctxutil.UserID(ctx))
	if err != nil {
		response.RespondAPIError(c, err, "generate_suggestions_failed")
		return
	}
	response.RespondOK(c, gin.H{"suggestions": drafts, "count": len(drafts)})
}

// GET /api/suggestions
func (h *SuggestionHandler) ListActive(c *gin.Context) {
	ctx := c.Request.Context()
	list, err := h.suggestions.ListActive(ctx, ctxutil.UserID(ctx))
	if err != nil {
		response.RespondAPIError(c, err, "list_suggestions_failed")
		return
	}
	response.RespondOK(c, gin.H{"suggestions": list})
}

// GET /api/suggestions/counts
func (h *SuggestionHandler) Counts(c *gin.Context) {
	ctx := c.Request.Context()
	counts, err := h.suggestions.CountByPriority(ctx, ctxutil.UserID(ctx))
	if err != nil {
		response.RespondAPIError(c, err, "count_suggestions_failed")
		return
	}
	response.RespondOK(c, counts)
}

// POST /api/suggestions/:id/complete
func (h *SuggestionHandler) Complete(c *gin.Context) {
	id, ok := suggestionID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if err := h.suggestions.MarkCompleted(ctx, ctxutil.UserID(ctx), id); err != nil {
		response.RespondAPIError(c, err, "complete_suggestion_failed")
		return
	}
	response.RespondOK(c, gin.H{"id": id, "status": "completed"})
}

// POST /api/suggestions/:id/dismiss
func (h *SuggestionHandler) Dismiss(c *gin.Context) {
	id, ok := suggestionID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if err := h.suggestions.Dismiss(ctx, ctxutil.UserID(ctx), id); err != nil {
		response.RespondAPIError(c, err, "dismiss_suggestion_failed")
		return
	}
	response.RespondOK(c, gin.H{"id": id, "status": "dismissed"})
}

func suggestionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_suggestion_id", err)
		return uuid.Nil, false
	}
	return id, true
}
