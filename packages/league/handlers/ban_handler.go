package handlers

import (
	"net/http"
	"strconv"

	"liga-api/packages/league/models"
	"liga-api/packages/league/services"

	"github.com/gin-gonic/gin"
)

type BanHandler struct {
	banService *services.BanService
}

func NewBanHandler(banService *services.BanService) *BanHandler {
	return &BanHandler{
		banService: banService,
	}
}

// GetBans retrieves bans
// @Summary Get bans
// @Description Get all bans, or only the active ones
// @Tags bans
// @Produce json
// @Param active query bool false "Only bans with matches left to serve"
// @Success 200 {array} models.Ban
// @Failure 500 {object} map[string]string
// @Router /bans [get]
func (h *BanHandler) GetBans(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	bans, err := h.banService.GetBans(activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bans"})
		return
	}

	c.JSON(http.StatusOK, bans)
}

// CreateBan suspends a player
// @Summary Create a ban
// @Description Suspend a player for a number of matches
// @Tags bans
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param ban body models.CreateBanRequest true "Ban data"
// @Success 201 {object} models.Ban
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /bans [post]
func (h *BanHandler) CreateBan(c *gin.Context) {
	var req models.CreateBanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ban, err := h.banService.CreateBan(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ban"})
		return
	}

	c.JSON(http.StatusCreated, ban)
}

// DeleteBan removes a ban
// @Summary Delete a ban
// @Description Remove a ban regardless of matches served. Admin only.
// @Tags bans
// @Security BearerAuth
// @Produce json
// @Param id path int true "Ban ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /bans/{id} [delete]
func (h *BanHandler) DeleteBan(c *gin.Context) {
	banID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ban ID"})
		return
	}

	if err := h.banService.DeleteBan(uint(banID)); err != nil {
		if err.Error() == "ban not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ban not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete ban"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ban deleted"})
}
