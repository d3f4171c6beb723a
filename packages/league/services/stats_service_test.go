package services

import (
	"testing"

	"liga-api/packages/league/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStats(t *testing.T) {
	db := setupTestDB(t)
	matchSvc := newTestMatchService(db)
	svc := NewStatsService(db)

	_, err := matchSvc.CreateMatch(aekWinRequest())
	require.NoError(t, err)
	_, err = matchSvc.CreateMatch(models.CreateMatchRequest{Date: "2025-03-02", GoalsAEK: 2, GoalsReal: 2})
	require.NoError(t, err)
	_, err = matchSvc.CreateMatch(models.CreateMatchRequest{Date: "2025-03-03", GoalsAEK: 0, GoalsReal: 1})
	require.NoError(t, err)

	banSvc := NewBanService(db)
	_, err = banSvc.CreateBan(models.CreateBanRequest{
		PlayerName:   "Carlos",
		Team:         models.TeamReal,
		Reason:       "Red card",
		TotalMatches: 10,
	})
	require.NoError(t, err)

	stats, err := svc.GetStats()
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalMatches)
	assert.Equal(t, int64(1), stats.Draws)
	assert.Equal(t, int64(1), stats.Teams[models.TeamAEK].Wins)
	assert.Equal(t, int64(1), stats.Teams[models.TeamReal].Wins)
	assert.Equal(t, int64(5), stats.Teams[models.TeamAEK].Goals)
	assert.Equal(t, int64(4), stats.Teams[models.TeamReal].Goals)
	assert.Equal(t, int64(1), stats.ActiveBans)

	require.NotEmpty(t, stats.TopScorers)
	assert.Equal(t, "Stavros", stats.TopScorers[0].Name)
	require.Len(t, stats.SdSLeaders, 1)
	assert.Equal(t, "Stavros", stats.SdSLeaders[0].Name)
}

func TestGetSdSTableOrdering(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStatsService(db)

	rows := []models.SpielerDesSpiels{
		{Name: "Carlos", Team: models.TeamReal, Count: 2},
		{Name: "Stavros", Team: models.TeamAEK, Count: 5},
		{Name: "Niko", Team: models.TeamAEK, Count: 2},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	table, err := svc.GetSdSTable()
	require.NoError(t, err)
	require.Len(t, table, 3)
	assert.Equal(t, "Stavros", table[0].Name)
	// Ties break alphabetically
	assert.Equal(t, "Carlos", table[1].Name)
	assert.Equal(t, "Niko", table[2].Name)
}

func TestBanLifecycle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBanService(db)
	matchSvc := newTestMatchService(db)

	ban, err := svc.CreateBan(models.CreateBanRequest{
		PlayerName:   "Sergio",
		Team:         models.TeamReal,
		Reason:       "Second booking",
		TotalMatches: 2,
	})
	require.NoError(t, err)
	assert.True(t, ban.Active())

	// Booking matches serves the suspension one match at a time
	for i := 0; i < 2; i++ {
		_, err = matchSvc.CreateMatch(models.CreateMatchRequest{
			Date:     "2025-05-01",
			GoalsAEK: 1 + i,
		})
		require.NoError(t, err)
		waitForBanDecrement(t, db, ban.ID, i+1)
	}

	active, err := svc.GetBans(true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.GetBans(false)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.DeleteBan(ban.ID))
	err = svc.DeleteBan(ban.ID)
	require.Error(t, err)
	assert.Equal(t, "ban not found", err.Error())
}
