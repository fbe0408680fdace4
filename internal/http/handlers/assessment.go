package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/visapath-backend/internal/http/response"
	"github.com/yungbote/visapath-backend/internal/platform/ctxutil"
	"github.com/yungbote/visapath-backend/internal/services"
)

type AssessmentHandler struct {
	assessments services.AssessmentService
}

func NewAssessmentHandler(assessments services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessments: assessments}
}

// GET /api/assessment?refresh=true
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	force, _ := strconv.ParseBool(c.Query("refresh"))
	h.respond(c, force)
}

// POST /api/assessment/refresh
func (h *AssessmentHandler) RefreshAssessment(c *gin.Context) {
	h.respond(c, true)
}

func (h *AssessmentHandler) respond(c *gin.Context, force bool) {
	ctx := c.Request.Context()
	a, err := h.assessments.AssessProfile(ctx, ctxutil.UserID(ctx), force)
	if err != nil {
		response.RespondAPIError(c, err, "assessment_failed")
		return
	}
	response.RespondOK(c, gin.H{"assessment": a})
}
