package handlers

import (
	"net/http"
	"strconv"

	"liga-api/packages/league/models"
	"liga-api/packages/league/services"

	"github.com/gin-gonic/gin"
)

type FinanceHandler struct {
	financeService *services.FinanceService
}

func NewFinanceHandler(financeService *services.FinanceService) *FinanceHandler {
	return &FinanceHandler{
		financeService: financeService,
	}
}

// GetFinances retrieves both clubs' balances and debts
// @Summary Get club finances
// @Description Get balance and real-money debt for both clubs
// @Tags finances
// @Produce json
// @Success 200 {array} models.Finance
// @Failure 500 {object} map[string]string
// @Router /finances [get]
func (h *FinanceHandler) GetFinances(c *gin.Context) {
	finances, err := h.financeService.GetFinances()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve finances"})
		return
	}

	c.JSON(http.StatusOK, finances)
}

// GetTransactions retrieves the transaction ledger
// @Summary Get transactions
// @Description Get the transaction ledger with pagination and optional team/type filters, newest first
// @Tags finances
// @Produce json
// @Param page query int false "Page number (default: 1)" default(1)
// @Param per_page query int false "Items per page (default: 20, max: 100)" default(20)
// @Param team query string false "Filter by team" Enums(AEK,Real)
// @Param type query string false "Filter by transaction type"
// @Success 200 {object} models.PaginatedTransactionResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /transactions [get]
func (h *FinanceHandler) GetTransactions(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page parameter"})
		return
	}

	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if err != nil || perPage < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid per_page parameter"})
		return
	}
	if perPage > 100 {
		perPage = 100
	}

	filters := services.TransactionFilters{
		Page:    page,
		PerPage: perPage,
	}

	if team := c.Query("team"); team != "" {
		if !models.ValidTeam(team) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team. Must be AEK or Real"})
			return
		}
		filters.Team = &team
	}

	if txType := c.Query("type"); txType != "" {
		filters.Type = &txType
	}

	result, err := h.financeService.GetTransactions(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transactions"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateBookEntry records a manual ledger entry
// @Summary Create a manual book entry
// @Description Record a manual balance change (deposit, fine) outside match settlement. Admin only.
// @Tags finances
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param entry body models.BookEntryRequest true "Book entry"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /finances/book [post]
func (h *FinanceHandler) CreateBookEntry(c *gin.Context) {
	var req models.BookEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	entry, err := h.financeService.BookEntry(req)
	if err != nil {
		if err.Error() == "invalid date format" {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create book entry"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}
