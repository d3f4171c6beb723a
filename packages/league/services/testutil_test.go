package services

import (
	"fmt"
	"testing"
	"time"

	"liga-api/packages/league/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database with both clubs'
// finance rows and small squads seeded.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Match{},
		&models.Player{},
		&models.Finance{},
		&models.SpielerDesSpiels{},
		&models.Transaction{},
		&models.Ban{},
	)
	require.NoError(t, err)

	for _, team := range []string{models.TeamAEK, models.TeamReal} {
		require.NoError(t, db.Create(&models.Finance{Team: team, Balance: 2000000, Debt: 0}).Error)
	}

	for _, name := range []string{"Stavros", "Niko", "Dimitri"} {
		require.NoError(t, db.Create(&models.Player{Name: name, Team: models.TeamAEK}).Error)
	}
	for _, name := range []string{"Carlos", "Sergio", "Luka"} {
		require.NoError(t, db.Create(&models.Player{Name: name, Team: models.TeamReal}).Error)
	}

	return db
}

func newTestMatchService(db *gorm.DB) *MatchService {
	finance := NewFinanceService(db)
	stats := NewStatsService(db)
	bans := NewBanService(db)
	return NewMatchService(db, finance, stats, bans)
}

func getFinance(t *testing.T, db *gorm.DB, team string) models.Finance {
	t.Helper()
	var finance models.Finance
	require.NoError(t, db.Where("team = ?", team).First(&finance).Error)
	return finance
}

func setFinance(t *testing.T, db *gorm.DB, team string, balance, debt int) {
	t.Helper()
	require.NoError(t, db.Model(&models.Finance{}).Where("team = ?", team).
		Updates(map[string]interface{}{"balance": balance, "debt": debt}).Error)
}

// waitForBanDecrement polls until the async post-match decrement lands.
func waitForBanDecrement(t *testing.T, db *gorm.DB, banID uint, served int) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		var ban models.Ban
		require.NoError(t, db.First(&ban, banID).Error)
		if ban.MatchesServed >= served {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("ban %d never reached %d served matches", banID, served)
}

func getPlayer(t *testing.T, db *gorm.DB, name, team string) models.Player {
	t.Helper()
	var player models.Player
	require.NoError(t, db.Where("name = ? AND team = ?", name, team).First(&player).Error)
	return player
}
