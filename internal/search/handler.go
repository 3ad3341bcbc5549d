package search

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobmatch-backend/internal/resumes"
	"jobmatch-backend/internal/shared/server/middleware"
	"jobmatch-backend/internal/shared/server/respond"
	"jobmatch-backend/internal/usage"
	"jobmatch-backend/match/model"
	"jobmatch-backend/match/scoring"
)

// Handler wires HTTP handlers to the search service.
type Handler struct {
	Svc  *Service
	poll *pollLimiter
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{
		Svc:  svc,
		poll: newPollLimiter(pollLimitWindow, nil),
	}
}

// RegisterRoutes attaches search routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/search", h.startSearch)
	rg.GET("/search/:id", h.getSearch)
}

type startSearchRequest struct {
	Keyword         string         `json:"keyword" binding:"required"`
	Location        string         `json:"location"`
	Company         string         `json:"company"`
	Platform        string         `json:"platform"`
	ExperienceLevel string         `json:"experienceLevel"`
	ResumeID        string         `json:"resumeId"`
	CustomWeights   *model.Weights `json:"customWeights"`
}

func (h *Handler) startSearch(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req startSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "keyword is required", nil)
		return
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	task, err := h.Svc.Create(ctx, userID, Request{
		Keyword:         req.Keyword,
		Location:        req.Location,
		Company:         req.Company,
		Platform:        req.Platform,
		ExperienceLevel: req.ExperienceLevel,
		ResumeID:        req.ResumeID,
		CustomWeights:   req.CustomWeights,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrKeywordRequired):
			respond.Error(c, http.StatusBadRequest, "validation_error", "keyword is required", nil)
		case errors.Is(err, scoring.ErrInvalidWeights):
			respond.Error(c, http.StatusBadRequest, "validation_error", "custom weights must sum to 1", nil)
		case errors.Is(err, resumes.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, usage.ErrLimitReached):
			respond.Error(c, http.StatusTooManyRequests, "limit_reached", "You've reached your search limit for this period.", []map[string]string{
				{"field": "usage", "issue": "limit_reached"},
			})
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start search", nil)
		}
		return
	}

	respond.Accepted(c, gin.H{
		"taskId": task.ID,
		"status": task.Status,
	})
}

func (h *Handler) getSearch(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "task id is required", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	if !h.poll.Allow(userID, taskID) {
		c.Header("Retry-After", strconv.Itoa(h.poll.RetryAfterSeconds()))
		respond.Error(c, http.StatusTooManyRequests, "poll_too_fast", "Poll at most once per second per task", nil)
		return
	}

	task, err := h.Svc.Get(c.Request.Context(), taskID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "task not found or expired", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch task", nil)
		}
		return
	}

	respond.OK(c, task)
}
