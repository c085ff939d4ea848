package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/billyribeiro-ux/cognition-os/internal/repository"
	"github.com/billyribeiro-ux/cognition-os/internal/streak"
	"github.com/billyribeiro-ux/cognition-os/internal/timeutil"
)

type StreakHandler struct {
	log   *zap.Logger
	clock timeutil.Clock
}

func NewStreakHandler(log *zap.Logger, clock timeutil.Clock) *StreakHandler {
	return &StreakHandler{log: log, clock: clock}
}

func (h *StreakHandler) tracker(userID uint) *streak.Tracker {
	return streak.NewTracker(h.clock, repository.NewUserKV(userID))
}

func streakResponse(t *streak.Tracker) gin.H {
	return gin.H{
		"streak":        t.Record(),
		"levelName":     t.LevelName(),
		"daysRequired":  t.DaysRequired(),
		"daysRemaining": t.DaysRemaining(),
		"levelProgress": t.LevelProgress(),
		"readyToLevel":  t.ReadyToLevelUp(),
	}
}

// Get returns the streak record with its derived level metadata.
func (h *StreakHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, streakResponse(h.tracker(user.ID)))
}

// Check runs the first-of-the-day rule, breaking the streak when more
// than one calendar day has passed since the last completion.
func (h *StreakHandler) Check(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	tracker := h.tracker(user.ID)
	before := tracker.Record().CurrentStreak
	tracker.CheckDaily()
	after := tracker.Record().CurrentStreak
	if after < before {
		h.log.Info("Streak broken by daily check",
			zap.Uint("userID", user.ID),
			zap.Int("lostStreak", before),
		)
	}

	resp := streakResponse(tracker)
	resp["broken"] = after < before
	c.JSON(http.StatusOK, resp)
}

// LevelUp advances the curriculum level once the day requirement is met.
func (h *StreakHandler) LevelUp(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	tracker := h.tracker(user.ID)
	if !tracker.ReadyToLevelUp() {
		c.JSON(http.StatusConflict, gin.H{"error": "level requirement not met"})
		return
	}
	tracker.LevelUp()
	h.log.Info("User advanced a level",
		zap.Uint("userID", user.ID),
		zap.Int("level", tracker.Record().CurrentLevel),
	)
	c.JSON(http.StatusOK, streakResponse(tracker))
}
