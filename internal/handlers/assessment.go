package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"moodcheck/internal/assessment"
	"moodcheck/internal/models"
	"moodcheck/internal/store"
)

type AssessmentHandler struct {
	log     *zap.Logger
	store   store.Store
	catalog *models.Catalog
}

func NewAssessmentHandler(log *zap.Logger, st store.Store, catalog *models.Catalog) *AssessmentHandler {
	return &AssessmentHandler{log: log, store: st, catalog: catalog}
}

// Questions returns the question set for the caller's next check-in.
// Unauthenticated callers get the base set; authenticated callers may get
// follow-up pairs based on their most recent summary.
func (h *AssessmentHandler) Questions(c *gin.Context) {
	var prior *models.Summary
	if user, ok := CurrentUserFrom(c); ok {
		latest, err := h.store.LatestRecord(c.Request.Context(), user.ID)
		switch {
		case err == nil:
			prior = &latest.Summary
		case errors.Is(err, store.ErrNotFound):
			// First check-in.
		default:
			h.log.Error("Failed to load latest record", zap.String("userID", user.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load questions"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"questions": assessment.QuestionsFor(h.catalog, prior)})
}

type submitRequest struct {
	Answers []models.Answer `json:"answers"`
}

// Submit scores the answers, derives recommendations, and appends the
// resulting record to the caller's history. The summary and the
// recommendations shown are both part of the stored snapshot.
func (h *AssessmentHandler) Submit(c *gin.Context) {
	user, ok := CurrentUserFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Answers == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answers"})
		return
	}

	summary := assessment.Summarize(req.Answers)
	recommendations := assessment.AdviceFor(summary)

	record := &models.Record{
		ID:              uuid.NewString(),
		UserID:          user.ID,
		Answers:         req.Answers,
		Summary:         summary,
		Recommendations: recommendations,
		CreatedAt:       time.Now().UTC(),
	}
	if err := h.store.AppendRecord(c.Request.Context(), record); err != nil {
		h.log.Error("Failed to append record", zap.String("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save check-in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recordId": record.ID,
		"advice": gin.H{
			"summary":         summary,
			"recommendations": recommendations,
		},
	})
}

// Latest returns the caller's most recent summary with recommendations
// re-derived from it, or JSON null when no history exists.
func (h *AssessmentHandler) Latest(c *gin.Context) {
	user, ok := CurrentUserFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	latest, err := h.store.LatestRecord(c.Request.Context(), user.ID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		h.log.Error("Failed to load latest record", zap.String("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load check-in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":         latest.Summary,
		"recommendations": assessment.AdviceFor(latest.Summary),
	})
}
