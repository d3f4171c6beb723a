package services

import (
	"errors"
	"testing"

	"liga-api/packages/league/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func aekWinRequest() models.CreateMatchRequest {
	return models.CreateMatchRequest{
		Date:      "2025-03-01",
		GoalsAEK:  3,
		GoalsReal: 1,
		ScorersAEK: []models.Scorer{
			{Player: "Stavros", Count: 2},
			{Player: "Niko", Count: 1},
		},
		ScorersReal: []models.Scorer{
			{Player: "Carlos", Count: 1},
		},
		ManOfTheMatch:     "Stavros",
		ManOfTheMatchTeam: models.TeamAEK,
	}
}

func TestCreateMatchAppliesSettlement(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestMatchService(db)

	match, err := svc.CreateMatch(aekWinRequest())
	require.NoError(t, err)
	require.NotZero(t, match.ID)

	assert.Equal(t, 950000, match.PrizeAEK)
	assert.Equal(t, -650000, match.PrizeReal)

	// Bonus then prize on the winner, prize only on the loser
	assert.Equal(t, 3050000, getFinance(t, db, models.TeamAEK).Balance)
	assert.Equal(t, 1350000, getFinance(t, db, models.TeamReal).Balance)

	// Loser's balance covered the penalty, so only the base amount
	assert.Equal(t, 0, getFinance(t, db, models.TeamAEK).Debt)
	assert.Equal(t, 5, getFinance(t, db, models.TeamReal).Debt)

	var rows []models.Transaction
	require.NoError(t, db.Where("match_id = ?", match.ID).Order("id ASC").Find(&rows).Error)
	require.Len(t, rows, 4)
	for _, row := range rows {
		assert.Equal(t, "Match 1", row.Info)
		assert.Equal(t, match.Date, row.Date)
	}
	assert.Equal(t, models.TxSdSBonus, rows[0].Type)
	assert.Equal(t, 100000, rows[0].Amount)
	assert.Equal(t, models.TxPrizeMoney, rows[1].Type)
	assert.Equal(t, 950000, rows[1].Amount)
	assert.Equal(t, models.TxPrizeMoney, rows[2].Type)
	assert.Equal(t, -650000, rows[2].Amount)
	assert.Equal(t, models.TxSettlement, rows[3].Type)
	assert.Equal(t, 5, rows[3].Amount)
	assert.Equal(t, models.TeamReal, rows[3].Team)

	// Lifetime goal tallies
	assert.Equal(t, 2, getPlayer(t, db, "Stavros", models.TeamAEK).Goals)
	assert.Equal(t, 1, getPlayer(t, db, "Niko", models.TeamAEK).Goals)
	assert.Equal(t, 1, getPlayer(t, db, "Carlos", models.TeamReal).Goals)

	var sds models.SpielerDesSpiels
	require.NoError(t, db.Where("name = ? AND team = ?", "Stavros", models.TeamAEK).First(&sds).Error)
	assert.Equal(t, 1, sds.Count)
}

func TestDeleteMatchRestoresEverything(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestMatchService(db)

	match, err := svc.CreateMatch(aekWinRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMatch(match.ID))

	assert.Equal(t, 2000000, getFinance(t, db, models.TeamAEK).Balance)
	assert.Equal(t, 2000000, getFinance(t, db, models.TeamReal).Balance)
	assert.Equal(t, 0, getFinance(t, db, models.TeamAEK).Debt)
	assert.Equal(t, 0, getFinance(t, db, models.TeamReal).Debt)

	var rowCount int64
	require.NoError(t, db.Model(&models.Transaction{}).Where("match_id = ?", match.ID).Count(&rowCount).Error)
	assert.Zero(t, rowCount)

	assert.Equal(t, 0, getPlayer(t, db, "Stavros", models.TeamAEK).Goals)
	assert.Equal(t, 0, getPlayer(t, db, "Niko", models.TeamAEK).Goals)
	assert.Equal(t, 0, getPlayer(t, db, "Carlos", models.TeamReal).Goals)

	var sds models.SpielerDesSpiels
	require.NoError(t, db.Where("name = ?", "Stavros").First(&sds).Error)
	assert.Equal(t, 0, sds.Count)

	err = db.First(&models.Match{}, match.ID).Error
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestDeleteMatchMissingIsNoop(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestMatchService(db)

	assert.NoError(t, svc.DeleteMatch(12345))
}

func TestUpdateMatchReversesThenCreates(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestMatchService(db)

	original, err := svc.CreateMatch(aekWinRequest())
	require.NoError(t, err)

	replacement, err := svc.UpdateMatch(original.ID, models.CreateMatchRequest{
		Date:        "2025-03-01",
		GoalsAEK:    1,
		GoalsReal:   1,
		ScorersAEK:  []models.Scorer{{Player: "Stavros", Count: 1}},
		ScorersReal: []models.Scorer{{Player: "Carlos", Count: 1}},
	})
	require.NoError(t, err)
	assert.NotEqual(t, original.ID, replacement.ID)

	// A draw settles nothing, so the original effects must be fully gone
	assert.Equal(t, 2000000, getFinance(t, db, models.TeamAEK).Balance)
	assert.Equal(t, 2000000, getFinance(t, db, models.TeamReal).Balance)
	assert.Equal(t, 0, getFinance(t, db, models.TeamReal).Debt)

	var rowCount int64
	require.NoError(t, db.Model(&models.Transaction{}).Count(&rowCount).Error)
	assert.Zero(t, rowCount)

	assert.Equal(t, 1, getPlayer(t, db, "Stavros", models.TeamAEK).Goals)
	assert.Equal(t, 0, getPlayer(t, db, "Niko", models.TeamAEK).Goals)
	assert.Equal(t, 1, getPlayer(t, db, "Carlos", models.TeamReal).Goals)

	err = db.First(&models.Match{}, original.ID).Error
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUpdateMatchMissing(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestMatchService(db)

	_, err := svc.UpdateMatch(999, aekWinRequest())
	require.Error(t, err)
	assert.Equal(t, "match not found", err.Error())
}

func TestCreateMatchRejectsBadScorers(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestMatchService(db)

	req := aekWinRequest()
	req.GoalsAEK = 2 // scorers still sum to 3

	_, err := svc.CreateMatch(req)
	require.Error(t, err)
	assert.Equal(t, "scorer goals exceed team goals", err.Error())

	// Validation failed before anything was written
	var matchCount, rowCount int64
	require.NoError(t, db.Model(&models.Match{}).Count(&matchCount).Error)
	require.NoError(t, db.Model(&models.Transaction{}).Count(&rowCount).Error)
	assert.Zero(t, matchCount)
	assert.Zero(t, rowCount)
	assert.Equal(t, 2000000, getFinance(t, db, models.TeamAEK).Balance)
}

func TestCreateMatchRejectsNonPositiveScorerCount(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestMatchService(db)

	req := aekWinRequest()
	req.ScorersAEK = []models.Scorer{{Player: "Stavros", Count: 0}}

	_, err := svc.CreateMatch(req)
	require.Error(t, err)
	assert.Equal(t, "scorer goals must be positive", err.Error())
}

func TestCreateMatchRejectsBadDate(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestMatchService(db)

	req := aekWinRequest()
	req.Date = "01.03.2025"

	_, err := svc.CreateMatch(req)
	require.Error(t, err)
	assert.Equal(t, "invalid date format", err.Error())
}

func TestCreateMatchResolvesSdSTeam(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestMatchService(db)

	// Team omitted, resolved from the scorer lists
	req := aekWinRequest()
	req.ManOfTheMatch = "Carlos"
	req.ManOfTheMatchTeam = ""

	match, err := svc.CreateMatch(req)
	require.NoError(t, err)
	assert.Equal(t, models.TeamReal, match.ManOfTheMatchTeam)
}

func TestCreateMatchResolvesSdSTeamFromRoster(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestMatchService(db)

	// Not a scorer, but on the Real roster
	req := aekWinRequest()
	req.ManOfTheMatch = "Sergio"
	req.ManOfTheMatchTeam = ""

	match, err := svc.CreateMatch(req)
	require.NoError(t, err)
	assert.Equal(t, models.TeamReal, match.ManOfTheMatchTeam)
}

func TestCreateMatchRejectsUnknownSdS(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestMatchService(db)

	req := aekWinRequest()
	req.ManOfTheMatch = "Nobody"
	req.ManOfTheMatchTeam = ""

	_, err := svc.CreateMatch(req)
	require.Error(t, err)
	assert.Equal(t, "man of the match not in either squad", err.Error())
}

func TestCreateMatchFloorsBalanceAndBuildsDebt(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestMatchService(db)

	setFinance(t, db, models.TeamReal, 0, 0)
	setFinance(t, db, models.TeamAEK, 2000000, 4)

	_, err := svc.CreateMatch(models.CreateMatchRequest{
		Date:       "2025-03-08",
		GoalsAEK:   2,
		GoalsReal:  1,
		ScorersAEK: []models.Scorer{{Player: "Stavros", Count: 2}},
	})
	require.NoError(t, err)

	// Loser penalty of 600,000 against an empty balance: clamped at zero
	real := getFinance(t, db, models.TeamReal)
	assert.Equal(t, 0, real.Balance)

	// amount = 5 + round(600,000 / 100,000) = 11, of which 4 clear the
	// winner's outstanding debt and 7 land on the loser
	assert.Equal(t, 0, getFinance(t, db, models.TeamAEK).Debt)
	assert.Equal(t, 7, real.Debt)

	var cleared models.Transaction
	require.NoError(t, db.Where("type = ?", models.TxSettlementCleared).First(&cleared).Error)
	assert.Equal(t, models.TeamAEK, cleared.Team)
	assert.Equal(t, -4, cleared.Amount)

	var settlement models.Transaction
	require.NoError(t, db.Where("type = ?", models.TxSettlement).First(&settlement).Error)
	assert.Equal(t, models.TeamReal, settlement.Team)
	assert.Equal(t, 7, settlement.Amount)
}

func TestCreateMatchOffsetsWinnerDebtFully(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestMatchService(db)

	// Winner already owes more than the loser's settlement amount
	setFinance(t, db, models.TeamAEK, 2000000, 8)

	match, err := svc.CreateMatch(models.CreateMatchRequest{
		Date:       "2025-03-08",
		GoalsAEK:   2,
		GoalsReal:  1,
		ScorersAEK: []models.Scorer{{Player: "Stavros", Count: 2}},
	})
	require.NoError(t, err)

	// Loser balance covers the penalty, so the amount is the base 5: it
	// clears 5 of the winner's debt and leaves the loser debt-free
	assert.Equal(t, 3, getFinance(t, db, models.TeamAEK).Debt)
	assert.Equal(t, 0, getFinance(t, db, models.TeamReal).Debt)

	var cleared models.Transaction
	require.NoError(t, db.Where("type = ?", models.TxSettlementCleared).First(&cleared).Error)
	assert.Equal(t, models.TeamAEK, cleared.Team)
	assert.Equal(t, -5, cleared.Amount)

	var settlementCount int64
	require.NoError(t, db.Model(&models.Transaction{}).
		Where("match_id = ? AND type = ?", match.ID, models.TxSettlement).
		Count(&settlementCount).Error)
	assert.Zero(t, settlementCount)
}

func TestLedgerNotesCarryMatchNumbers(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestMatchService(db)

	first, err := svc.CreateMatch(models.CreateMatchRequest{Date: "2025-03-01", GoalsAEK: 1, GoalsReal: 0})
	require.NoError(t, err)
	second, err := svc.CreateMatch(models.CreateMatchRequest{Date: "2025-03-08", GoalsAEK: 0, GoalsReal: 1})
	require.NoError(t, err)

	var row models.Transaction
	require.NoError(t, db.Where("match_id = ? AND type = ?", first.ID, models.TxPrizeMoney).First(&row).Error)
	assert.Equal(t, "Match 1", row.Info)

	row = models.Transaction{}
	require.NoError(t, db.Where("match_id = ? AND type = ?", second.ID, models.TxPrizeMoney).First(&row).Error)
	assert.Equal(t, "Match 2", row.Info)
}

func TestGetMatchesPaginationAndFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestMatchService(db)

	dates := []string{"2025-03-01", "2025-03-08", "2025-03-15"}
	for _, date := range dates {
		_, err := svc.CreateMatch(models.CreateMatchRequest{Date: date, GoalsAEK: 1, GoalsReal: 1})
		require.NoError(t, err)
	}

	result, err := svc.GetMatches(MatchFilters{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Total)
	assert.Equal(t, 2, result.TotalPages)
	require.Len(t, result.Data, 2)
	assert.Equal(t, "2025-03-15", result.Data[0].Date)

	from := "2025-03-05"
	to := "2025-03-10"
	result, err = svc.GetMatches(MatchFilters{Page: 1, PerPage: 10, DateFrom: &from, DateTo: &to})
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "2025-03-08", result.Data[0].Date)
}
