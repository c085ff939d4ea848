package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/billyribeiro-ux/cognition-os/internal/protocol"
)

type ProtocolHandler struct {
	log      *zap.Logger
	validate *validator.Validate
}

func NewProtocolHandler(log *zap.Logger) *ProtocolHandler {
	return &ProtocolHandler{
		log:      log,
		validate: validator.New(),
	}
}

type generateRequest struct {
	Profile protocol.Profile `json:"profile"`
	Level   int              `json:"level"`
}

// Generate builds the day's schedule for a profile and curriculum level.
func (h *ProtocolHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(req.Profile); err != nil {
		h.log.Warn("Profile failed validation", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	level := req.Level
	if level < 1 {
		level = 1
	}
	if level > protocol.MaxLevel {
		level = protocol.MaxLevel
	}

	items := protocol.Generate(req.Profile, level)
	h.log.Debug("Generated protocol",
		zap.Int("level", level),
		zap.Int("items", len(items)),
	)

	c.JSON(http.StatusOK, gin.H{
		"level":       level,
		"levelConfig": protocol.LevelFor(level),
		"items":       items,
	})
}

// Levels returns the metadata for all curriculum levels.
func (h *ProtocolHandler) Levels(c *gin.Context) {
	levels := make(map[int]protocol.LevelConfig, protocol.MaxLevel)
	for l := 1; l <= protocol.MaxLevel; l++ {
		levels[l] = protocol.LevelFor(l)
	}
	c.JSON(http.StatusOK, gin.H{"levels": levels, "maxLevel": protocol.MaxLevel})
}
