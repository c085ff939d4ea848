package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/billyribeiro-ux/cognition-os/internal/models"
	"github.com/billyribeiro-ux/cognition-os/internal/protocol"
	"github.com/billyribeiro-ux/cognition-os/internal/repository"
	"github.com/billyribeiro-ux/cognition-os/internal/streak"
	"github.com/billyribeiro-ux/cognition-os/internal/timeutil"
)

type DayHandler struct {
	log   *zap.Logger
	clock timeutil.Clock
}

func NewDayHandler(log *zap.Logger, clock timeutil.Clock) *DayHandler {
	return &DayHandler{log: log, clock: clock}
}

type dayLogRequest struct {
	Date              string   `json:"date" binding:"required,len=10"`
	Level             int      `json:"level" binding:"required,min=1,max=5"`
	CompletionPercent int      `json:"completionPercent" binding:"min=0,max=100"`
	ItemsCompleted    int      `json:"itemsCompleted" binding:"min=0"`
	ItemsTotal        int      `json:"itemsTotal" binding:"min=0"`
	WaterOz           int      `json:"waterOz" binding:"min=0"`
	TaskSwitches      int      `json:"taskSwitches" binding:"min=0"`
	CompletedItemIDs  []string `json:"completedItemIds"`
}

// SubmitLog records a day's summary. A day completed above the streak
// threshold also advances the streak, at most once per calendar day.
func (h *DayHandler) SubmitLog(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dayLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log := &models.DailyLog{
		UserID:            user.ID,
		Date:              req.Date,
		Level:             req.Level,
		CompletionPercent: req.CompletionPercent,
		ItemsCompleted:    req.ItemsCompleted,
		ItemsTotal:        req.ItemsTotal,
		WaterOz:           req.WaterOz,
		TaskSwitches:      req.TaskSwitches,
		CompletedItemIDs:  pq.StringArray(req.CompletedItemIDs),
	}
	if err := repository.UpsertDailyLog(c.Request.Context(), log); err != nil {
		h.log.Error("Failed to save daily log", zap.Uint("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save daily log"})
		return
	}

	tracker := streak.NewTracker(h.clock, repository.NewUserKV(user.ID))
	tracker.CheckDaily()
	if req.CompletionPercent >= protocol.StreakCompletionThreshold &&
		tracker.Record().LastCompletedDate != h.clock.Today() {
		tracker.IncrementDay()
		if tracker.ReadyToLevelUp() {
			tracker.LevelUp()
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"log":    log,
		"streak": tracker.Record(),
	})
}

// Logs returns the user's recent day summaries.
func (h *DayHandler) Logs(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	logs, err := repository.GetDailyLogs(c.Request.Context(), user.ID, limit)
	if err != nil {
		h.log.Error("Failed to load daily logs", zap.Uint("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load daily logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
