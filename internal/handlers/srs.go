package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/billyribeiro-ux/cognition-os/internal/repository"
	"github.com/billyribeiro-ux/cognition-os/internal/srs"
	"github.com/billyribeiro-ux/cognition-os/internal/timeutil"
)

type SRSHandler struct {
	log   *zap.Logger
	clock timeutil.Clock
	seeds *srs.SeedFile
}

func NewSRSHandler(log *zap.Logger, clock timeutil.Clock, seeds *srs.SeedFile) *SRSHandler {
	return &SRSHandler{log: log, clock: clock, seeds: seeds}
}

// store builds the per-user card store, seeding the starter decks on
// first contact.
func (h *SRSHandler) store(userID uint) *srs.Store {
	store := srs.NewStore(h.clock, repository.NewUserKV(userID))
	if h.seeds != nil {
		store.SeedIfEmpty(h.seeds.SeedCards(h.clock))
	}
	return store
}

// Decks lists the user's decks with total and due counts.
func (h *SRSHandler) Decks(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	store := h.store(user.ID)
	c.JSON(http.StatusOK, gin.H{
		"decks":    store.Decks(),
		"dueCount": store.DueCount(),
	})
}

// Due returns the cards due for review today.
func (h *SRSHandler) Due(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	store := h.store(user.ID)
	due := store.DueCards()
	c.JSON(http.StatusOK, gin.H{"cards": due, "dueCount": len(due)})
}

type createCardRequest struct {
	Deck  string `json:"deck" binding:"required"`
	Front string `json:"front" binding:"required"`
	Back  string `json:"back" binding:"required"`
}

// CreateCard authors a new card, due immediately.
func (h *SRSHandler) CreateCard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card := h.store(user.ID).AddCard(req.Deck, req.Front, req.Back)
	c.JSON(http.StatusCreated, gin.H{"card": card})
}

type reviewRequest struct {
	ID     string     `json:"id" binding:"required"`
	Rating srs.Rating `json:"rating" binding:"required"`
}

// Review grades a card and returns its rescheduled state.
func (h *SRSHandler) Review(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store := h.store(user.ID)
	card, found, err := store.RateCard(req.ID, req.Rating)
	if err != nil {
		if errors.Is(err, srs.ErrInvalidRating) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("Failed to review card", zap.String("cardID", req.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to review card"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"card":             card,
		"nextIntervalText": srs.FormatInterval(card.IntervalDays),
		"sessionReviewed":  store.SessionReviewed(),
		"sessionAccuracy":  store.SessionAccuracy(),
	})
}

// Projections captions the rating buttons with the interval each grade
// would schedule.
func (h *SRSHandler) Projections(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	card, found := h.store(user.ID).Get(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
		return
	}

	labels := make(map[srs.Rating]string)
	for rating, days := range srs.ProjectIntervals(card) {
		labels[rating] = srs.FormatInterval(days)
	}
	c.JSON(http.StatusOK, gin.H{"projections": labels})
}

// DeleteCard removes a card permanently.
func (h *SRSHandler) DeleteCard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	store := h.store(user.ID)
	id := c.Param("id")
	if _, found := store.Get(id); !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
		return
	}
	store.DeleteCard(id)
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
