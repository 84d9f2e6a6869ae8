package delivery

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	lessondomain "melodica-backend/internal/lesson/domain"
	"melodica-backend/internal/sync/usecase"
	"melodica-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	syncUsecase usecase.SyncUsecase
	reviewQueue *usecase.ReviewQueue
	config      *config.Config
}

func NewSyncHandler(syncUsecase usecase.SyncUsecase, reviewQueue *usecase.ReviewQueue, cfg *config.Config) *SyncHandler {
	return &SyncHandler{
		syncUsecase: syncUsecase,
		reviewQueue: reviewQueue,
		config:      cfg,
	}
}

// syncWindow resolves the time range for an on-demand pass; days_past and
// days_future query params override the configured window.
func (h *SyncHandler) syncWindow(c *gin.Context) (time.Time, time.Time) {
	now := time.Now()
	timeMin := now.Add(-h.config.SyncWindowPast)
	timeMax := now.Add(h.config.SyncWindowFuture)

	if daysStr := c.Query("days_past"); daysStr != "" {
		if days, err := strconv.Atoi(daysStr); err == nil && days >= 0 {
			timeMin = now.AddDate(0, 0, -days)
		}
	}
	if daysStr := c.Query("days_future"); daysStr != "" {
		if days, err := strconv.Atoi(daysStr); err == nil && days >= 0 {
			timeMax = now.AddDate(0, 0, days)
		}
	}
	return timeMin, timeMax
}

func (h *SyncHandler) SyncCalendar(c *gin.Context) {
	teacherID := c.GetString("userID")
	timeMin, timeMax := h.syncWindow(c)

	summary, err := h.syncUsecase.SyncCalendar(c.Request.Context(), teacherID, timeMin, timeMax)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *SyncHandler) ReconcileCalendar(c *gin.Context) {
	teacherID := c.GetString("userID")
	timeMin, timeMax := h.syncWindow(c)

	summary, err := h.syncUsecase.ReconcileCalendar(c.Request.Context(), teacherID, timeMin, timeMax)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *SyncHandler) ListConflicts(c *gin.Context) {
	teacherID := c.GetString("userID")
	conflicts := h.reviewQueue.ListPending(teacherID)
	c.JSON(http.StatusOK, gin.H{"conflicts": conflicts})
}

type resolveConflictRequest struct {
	Resolution lessondomain.ConflictResolution `json:"resolution" binding:"required"`
}

func (h *SyncHandler) ResolveConflict(c *gin.Context) {
	var req resolveConflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.reviewQueue.ResolveManually(c.Param("id"), req.Resolution)
	if err != nil {
		if errors.Is(err, usecase.ErrConflictNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Conflict not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "conflict resolved"})
}
