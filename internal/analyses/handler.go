package analyses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobmatch-backend/internal/resumes"
	"jobmatch-backend/internal/shared/server/middleware"
	"jobmatch-backend/internal/shared/server/respond"
	"jobmatch-backend/match/scoring"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches scoring routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.analyze)
	rg.POST("/score/quick", h.quickScore)
	rg.POST("/score/batch", h.batchScore)
}

func (h *Handler) analyze(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}

	result, err := h.Svc.Analyze(c.Request.Context(), userID, req)
	if err != nil {
		writeScoringError(c, err, "failed to analyze")
		return
	}

	respond.OK(c, result)
}

func (h *Handler) quickScore(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req QuickScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}

	score, err := h.Svc.Quick(c.Request.Context(), userID, req)
	if err != nil {
		writeScoringError(c, err, "failed to score")
		return
	}

	respond.OK(c, score)
}

func (h *Handler) batchScore(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req BatchScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}

	items, err := h.Svc.Batch(c.Request.Context(), userID, req)
	if err != nil {
		writeScoringError(c, err, "failed to score batch")
		return
	}

	respond.OK(c, items)
}

func writeScoringError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrResumeRequired),
		errors.Is(err, ErrJobDescriptionRequired),
		errors.Is(err, ErrJobRequired),
		errors.Is(err, ErrNoJobs),
		errors.Is(err, ErrBatchTooLarge):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, scoring.ErrInvalidWeights):
		respond.Error(c, http.StatusBadRequest, "validation_error", "custom weights must sum to 1", nil)
	case errors.Is(err, resumes.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
