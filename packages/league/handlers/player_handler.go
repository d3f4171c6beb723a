package handlers

import (
	"net/http"
	"strconv"

	"liga-api/packages/league/models"
	"liga-api/packages/league/services"

	"github.com/gin-gonic/gin"
)

type PlayerHandler struct {
	playerService *services.PlayerService
}

func NewPlayerHandler(playerService *services.PlayerService) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
	}
}

// GetPlayers retrieves players, optionally filtered by team
// @Summary Get players
// @Description Get all players, or one club's squad with the team filter
// @Tags players
// @Produce json
// @Param team query string false "Filter by team" Enums(AEK,Real)
// @Success 200 {array} models.Player
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players [get]
func (h *PlayerHandler) GetPlayers(c *gin.Context) {
	team := c.Query("team")

	var players []models.Player
	var err error

	if team != "" {
		if !models.ValidTeam(team) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team. Must be AEK or Real"})
			return
		}
		players, err = h.playerService.GetPlayersByTeam(team)
	} else {
		players, err = h.playerService.GetAllPlayers()
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve players"})
		return
	}

	c.JSON(http.StatusOK, players)
}

// CreatePlayer adds a player to a squad
// @Summary Create a player
// @Description Add a player to one of the two squads
// @Tags players
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param player body models.CreatePlayerRequest true "Player data"
// @Success 201 {object} models.Player
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players [post]
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	var req models.CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	player, err := h.playerService.CreatePlayer(req)
	if err != nil {
		if err.Error() == "player already exists" {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create player"})
		return
	}

	c.JSON(http.StatusCreated, player)
}

// GetTopScorers retrieves the leading scorers
// @Summary Get top scorers
// @Description Get the players with the highest lifetime goal tallies
// @Tags players
// @Produce json
// @Param limit query int false "Number of players to retrieve (default: 10)"
// @Success 200 {array} models.Player
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/top [get]
func (h *PlayerHandler) GetTopScorers(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}

	players, err := h.playerService.GetTopScorers(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve top scorers"})
		return
	}

	c.JSON(http.StatusOK, players)
}
