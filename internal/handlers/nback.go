package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/billyribeiro-ux/cognition-os/internal/config"
	"github.com/billyribeiro-ux/cognition-os/internal/models"
	"github.com/billyribeiro-ux/cognition-os/internal/nback"
	"github.com/billyribeiro-ux/cognition-os/internal/repository"
	"github.com/billyribeiro-ux/cognition-os/internal/timeutil"
)

// DrillHandler runs live dual n-back sessions, one per user. Sessions
// are in-memory; only the adaptive state and the finished scores touch
// the database.
type DrillHandler struct {
	log   *zap.Logger
	clock timeutil.Clock

	mu       sync.Mutex
	sessions map[uint]*nback.Session
}

func NewDrillHandler(log *zap.Logger, clock timeutil.Clock) *DrillHandler {
	return &DrillHandler{
		log:      log,
		clock:    clock,
		sessions: make(map[uint]*nback.Session),
	}
}

func drillConfig() nback.Config {
	cfg := nback.DefaultConfig()
	if config.Conf != nil {
		if config.Conf.Drill.Rounds > 0 {
			cfg.Rounds = config.Conf.Drill.Rounds
		}
		if config.Conf.Drill.RoundIntervalMS > 0 {
			cfg.RoundInterval = time.Duration(config.Conf.Drill.RoundIntervalMS) * time.Millisecond
		}
	}
	return cfg
}

// session returns the user's live session, creating it on first use.
func (h *DrillHandler) session(userID uint) *nback.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.sessions[userID]; ok {
		return s
	}
	s := nback.NewSession(drillConfig(),
		nback.WithClock(h.clock),
		nback.WithStorage(repository.NewUserKV(userID)),
	)
	h.sessions[userID] = s
	return s
}

type startRequest struct {
	Rounds int `json:"rounds"`
}

// Start begins a session at the user's current difficulty. A session
// already in flight is restarted.
func (h *DrillHandler) Start(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	rounds := req.Rounds
	if rounds <= 0 {
		rounds = drillConfig().Rounds
	}

	session := h.session(user.ID)
	session.Start(rounds)
	h.log.Debug("Drill session started",
		zap.Uint("userID", user.ID),
		zap.Int("level", session.Level()),
		zap.Int("rounds", rounds),
	)
	c.JSON(http.StatusOK, h.stateResponse(session))
}

type pressRequest struct {
	Channel string `json:"channel" binding:"required,oneof=position symbol"`
}

// Press registers a match claim on one channel for the current round.
func (h *DrillHandler) Press(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req pressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := h.session(user.ID)
	switch req.Channel {
	case "position":
		session.PressPosition()
	case "symbol":
		session.PressSymbol()
	}
	c.JSON(http.StatusOK, h.stateResponse(session))
}

// State reports the live session for polling hosts.
func (h *DrillHandler) State(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.stateResponse(h.session(user.ID)))
}

// Reset abandons the session in flight and returns to idle.
func (h *DrillHandler) Reset(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	session := h.session(user.ID)
	session.Reset()
	c.JSON(http.StatusOK, h.stateResponse(session))
}

// SubmitScore persists the finished session as a training score.
func (h *DrillHandler) SubmitScore(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	session := h.session(user.ID)
	if session.Phase() != nback.PhaseResults {
		c.JSON(http.StatusConflict, gin.H{"error": "no finished session to score"})
		return
	}

	result := session.Result()
	history := session.History()
	recent := make(pq.Int64Array, len(history))
	for i, v := range history {
		recent[i] = int64(v)
	}

	score := &models.TrainingScore{
		UserID:           user.ID,
		SessionDate:      result.SessionDate,
		NLevel:           result.Level,
		Rounds:           result.Rounds,
		DurationSeconds:  result.DurationSeconds,
		PositionAccuracy: result.PositionAccuracy,
		SymbolAccuracy:   result.SymbolAccuracy,
		OverallAccuracy:  result.Accuracy,
		RecentAccuracy:   recent,
	}
	if err := repository.SaveTrainingScore(c.Request.Context(), score); err != nil {
		h.log.Error("Failed to save training score", zap.Uint("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save score"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"score": score})
}

// Scores returns the user's recent training scores, newest first.
func (h *DrillHandler) Scores(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	scores, err := repository.GetRecentTrainingScores(c.Request.Context(), user.ID, 50)
	if err != nil {
		h.log.Error("Failed to load training scores", zap.Uint("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load scores"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scores": scores})
}

// stateResponse snapshots the session. The current round exposes the
// stimulus only; the match flags stay server-side until evaluation.
func (h *DrillHandler) stateResponse(s *nback.Session) gin.H {
	resp := gin.H{
		"phase":     s.Phase(),
		"level":     s.Level(),
		"history":   s.History(),
		"countdown": s.CountdownValue(),
		"progress":  s.Progress(),
	}
	if round, ok := s.CurrentRound(); ok {
		resp["round"] = gin.H{
			"position": round.Position,
			"symbol":   round.Symbol,
		}
	}
	if s.Phase() == nback.PhaseResults {
		resp["result"] = s.Result()
		resp["accuracy"] = s.Accuracy()
	}
	return resp
}
