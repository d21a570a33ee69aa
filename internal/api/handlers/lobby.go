package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"giochi_web/internal/repository"
	"giochi_web/internal/service"
)

// LobbyHandler serves the REST views over the live registry and the match
// history.
type LobbyHandler struct {
	gameService *service.GameService
	matches     repository.MatchRepository
}

func NewLobbyHandler(gameService *service.GameService, matches repository.MatchRepository) *LobbyHandler {
	return &LobbyHandler{gameService: gameService, matches: matches}
}

func (h *LobbyHandler) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": h.gameService.Rooms().Summaries()})
}

func (h *LobbyHandler) ListMatches(c *gin.Context) {
	limit := 50
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 500 {
		limit = v
	}
	matches, err := h.matches.FindRecent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load match history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}
