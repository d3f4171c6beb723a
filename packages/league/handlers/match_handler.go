package handlers

import (
	"net/http"
	"strconv"
	"time"

	"liga-api/packages/league/cache"
	"liga-api/packages/league/models"
	"liga-api/packages/league/services"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchService *services.MatchService
	dataCache    *cache.Cache
}

func NewMatchHandler(matchService *services.MatchService, dataCache *cache.Cache) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
		dataCache:    dataCache,
	}
}

// validation and guard errors the service reports with stable messages
var matchBadRequestErrors = map[string]bool{
	"invalid date format":                  true,
	"scorer goals exceed team goals":       true,
	"scorer goals must be positive":        true,
	"man of the match not in either squad": true,
}

// GetRecentMatches retrieves the N most recent matches
// @Summary Get recent matches
// @Description Get the N most recent matches ordered by date (newest first)
// @Tags matches
// @Produce json
// @Param limit query int false "Number of matches to retrieve (default: 10, max: 100)"
// @Success 200 {array} models.Match
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/recent [get]
func (h *MatchHandler) GetRecentMatches(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}

	if limit > 100 {
		limit = 100
	}

	matches, err := h.matchService.GetRecentMatches(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recent matches"})
		return
	}

	c.JSON(http.StatusOK, matches)
}

// GetMatches retrieves matches with pagination and date filters
// @Summary Get matches with pagination and filters
// @Description Get matches with optional date range filters, newest first
// @Tags matches
// @Produce json
// @Param page query int false "Page number (default: 1)" default(1)
// @Param per_page query int false "Items per page (default: 10, max: 100)" default(10)
// @Param date_from query string false "Filter from date (YYYY-MM-DD format)"
// @Param date_to query string false "Filter to date (YYYY-MM-DD format)"
// @Success 200 {object} models.PaginatedMatchResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches [get]
func (h *MatchHandler) GetMatches(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	perPageStr := c.DefaultQuery("per_page", "10")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page parameter"})
		return
	}

	perPage, err := strconv.Atoi(perPageStr)
	if err != nil || perPage < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid per_page parameter"})
		return
	}
	if perPage > 100 {
		perPage = 100
	}

	filters := services.MatchFilters{
		Page:    page,
		PerPage: perPage,
	}

	if dateFrom := c.Query("date_from"); dateFrom != "" {
		if _, err := time.Parse("2006-01-02", dateFrom); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_from format. Use YYYY-MM-DD"})
			return
		}
		filters.DateFrom = &dateFrom
	}

	if dateTo := c.Query("date_to"); dateTo != "" {
		if _, err := time.Parse("2006-01-02", dateTo); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_to format. Use YYYY-MM-DD"})
			return
		}
		filters.DateTo = &dateTo
	}

	result, err := h.matchService.GetMatches(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve matches"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMatch retrieves a single match with its display number
// @Summary Get a match
// @Description Get one match by id, including its display number within the full history
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matches/{id} [get]
func (h *MatchHandler) GetMatch(c *gin.Context) {
	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID"})
		return
	}

	match, err := h.matchService.GetMatch(uint(matchID))
	if err != nil {
		if err.Error() == "match not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve match"})
		return
	}

	response := gin.H{"match": match}
	if number, ok := h.dataCache.MatchNumber(match.ID); ok {
		response["number"] = number
	}

	c.JSON(http.StatusOK, response)
}

// CreateMatch creates a new match
// @Summary Create a new match
// @Description Submit a match result; prize money, SdS bonus, debt settlement, goal tallies and bans are applied automatically
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param match body models.CreateMatchRequest true "Match data"
// @Success 201 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches [post]
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req models.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	match, err := h.matchService.CreateMatch(req)
	if err != nil {
		if matchBadRequestErrors[err.Error()] {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, match)
}

// UpdateMatch replaces a match
// @Summary Edit a match
// @Description Fully reverses the stored match's effects and creates the replacement (a new id is issued)
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param match body models.CreateMatchRequest true "Replacement match data"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/{id} [put]
func (h *MatchHandler) UpdateMatch(c *gin.Context) {
	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID"})
		return
	}

	var req models.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	match, err := h.matchService.UpdateMatch(uint(matchID), req)
	if err != nil {
		if err.Error() == "match not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return
		}
		if matchBadRequestErrors[err.Error()] {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, match)
}

// DeleteMatch deletes a match and reverses all its effects
// @Summary Delete a match
// @Description Reverses the match's financial and statistical effects and removes the record. Admin only.
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/{id} [delete]
func (h *MatchHandler) DeleteMatch(c *gin.Context) {
	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID"})
		return
	}

	if err := h.matchService.DeleteMatch(uint(matchID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Match deleted"})
}
