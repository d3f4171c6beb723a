package services

import (
	"testing"

	"liga-api/packages/league/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookEntryAdjustsBalance(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFinanceService(db)

	entry, err := svc.BookEntry(models.BookEntryRequest{
		Team:   models.TeamAEK,
		Amount: 250000,
		Date:   "2025-04-01",
		Info:   "Sponsor deposit",
	})
	require.NoError(t, err)

	assert.Equal(t, models.TxOther, entry.Type)
	assert.Nil(t, entry.MatchID)
	assert.Equal(t, 2250000, getFinance(t, db, models.TeamAEK).Balance)
}

func TestBookEntryClampsBalanceAtZero(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFinanceService(db)

	setFinance(t, db, models.TeamReal, 100000, 0)

	_, err := svc.BookEntry(models.BookEntryRequest{
		Team:   models.TeamReal,
		Amount: -500000,
		Date:   "2025-04-01",
		Info:   "Fine",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, getFinance(t, db, models.TeamReal).Balance)
}

func TestBookEntryRejectsBadDate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFinanceService(db)

	_, err := svc.BookEntry(models.BookEntryRequest{
		Team:   models.TeamAEK,
		Amount: 1000,
		Date:   "April 1st",
	})
	require.Error(t, err)
	assert.Equal(t, "invalid date format", err.Error())
}

func TestGetTransactionsFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFinanceService(db)

	entries := []models.BookEntryRequest{
		{Team: models.TeamAEK, Amount: 100, Date: "2025-04-01", Info: "a"},
		{Team: models.TeamReal, Amount: 200, Date: "2025-04-02", Info: "b"},
		{Team: models.TeamAEK, Amount: 300, Date: "2025-04-03", Info: "c"},
	}
	for _, entry := range entries {
		_, err := svc.BookEntry(entry)
		require.NoError(t, err)
	}

	result, err := svc.GetTransactions(TransactionFilters{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Total)
	// Newest first
	assert.Equal(t, "2025-04-03", result.Data[0].Date)

	team := models.TeamAEK
	result, err = svc.GetTransactions(TransactionFilters{Page: 1, PerPage: 10, Team: &team})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)

	txType := models.TxOther
	result, err = svc.GetTransactions(TransactionFilters{Page: 1, PerPage: 1, Type: &txType})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Total)
	assert.Equal(t, 3, result.TotalPages)
	require.Len(t, result.Data, 1)
}
