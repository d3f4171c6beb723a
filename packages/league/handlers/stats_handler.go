package handlers

import (
	"net/http"

	"liga-api/packages/league/services"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetStats retrieves aggregated league statistics
// @Summary Get league statistics
// @Description Get aggregated statistics: match counts, per-club records, top scorers, SdS leaders and active bans
// @Tags stats
// @Produce json
// @Success 200 {object} models.Stats
// @Failure 500 {object} map[string]string
// @Router /stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetSdSTable retrieves the player of the match standings
// @Summary Get SdS standings
// @Description Get the Spieler des Spiels award counts, highest first
// @Tags stats
// @Produce json
// @Success 200 {array} models.SpielerDesSpiels
// @Failure 500 {object} map[string]string
// @Router /sds [get]
func (h *StatsHandler) GetSdSTable(c *gin.Context) {
	table, err := h.statsService.GetSdSTable()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve SdS standings"})
		return
	}

	c.JSON(http.StatusOK, table)
}
