package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"liga-api/packages/league/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupCache(t *testing.T) (*gorm.DB, *Notifier, *Cache) {
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

	notifier := NewNotifier()
	require.NoError(t, notifier.Register(db))

	return db, notifier, New(db, notifier)
}

func seedMatches(t *testing.T, db *gorm.DB, dates ...string) []models.Match {
	t.Helper()
	matches := make([]models.Match, 0, len(dates))
	for _, date := range dates {
		m := models.Match{Date: date}
		require.NoError(t, db.Create(&m).Error)
		matches = append(matches, m)
	}
	return matches
}

func TestReloadBuildsSnapshot(t *testing.T) {
	db, _, c := setupCache(t)

	seedMatches(t, db, "2025-03-01", "2025-03-08")
	require.NoError(t, db.Create(&models.Finance{Team: models.TeamAEK, Balance: 100}).Error)
	require.NoError(t, db.Create(&models.Player{Name: "Stavros", Team: models.TeamAEK}).Error)
	require.NoError(t, db.Create(&models.Player{Name: "Carlos", Team: models.TeamReal}).Error)

	assert.Nil(t, c.Snapshot())

	snap, err := c.Reload(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)

	require.Len(t, snap.Matches, 2)
	// Most recent first
	assert.Equal(t, "2025-03-08", snap.Matches[0].Date)
	assert.Len(t, snap.AEKPlayers, 1)
	assert.Len(t, snap.RealPlayers, 1)
	assert.Equal(t, 100, snap.Finances[models.TeamAEK].Balance)

	assert.Same(t, snap, c.Snapshot())
}

func TestReloadSingleFlight(t *testing.T) {
	db, _, c := setupCache(t)
	seedMatches(t, db, "2025-03-01")

	const callers = 16
	snaps := make([]*Snapshot, callers)

	var wg sync.WaitGroup
	var start sync.WaitGroup
	start.Add(1)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			start.Wait()
			snap, err := c.Reload(context.Background())
			assert.NoError(t, err)
			snaps[i] = snap
		}(i)
	}

	start.Done()
	wg.Wait()

	for _, snap := range snaps {
		require.NotNil(t, snap)
	}
}

func TestMatchNumber(t *testing.T) {
	db, _, c := setupCache(t)

	// No snapshot yet
	_, ok := c.MatchNumber(1)
	assert.False(t, ok)

	matches := seedMatches(t, db,
		"2025-03-01", "2025-03-08", "2025-03-15", "2025-03-22", "2025-03-29")

	_, err := c.Reload(context.Background())
	require.NoError(t, err)

	// Third match of the history sits at descending index 2
	number, ok := c.MatchNumber(matches[2].ID)
	require.True(t, ok)
	assert.Equal(t, 3, number)

	number, ok = c.MatchNumber(matches[4].ID)
	require.True(t, ok)
	assert.Equal(t, 5, number)

	_, ok = c.MatchNumber(9999)
	assert.False(t, ok)
}

func TestSubscribeReloadsOnTableChange(t *testing.T) {
	db, _, c := setupCache(t)

	changed := make(chan *Snapshot, 1)
	c.Subscribe(func(snap *Snapshot) {
		select {
		case changed <- snap:
		default:
		}
	})
	defer c.Unsubscribe()

	// A write through the ORM publishes a table change, which must end in
	// one debounced reload
	require.NoError(t, db.Create(&models.Match{Date: "2025-04-05"}).Error)

	select {
	case snap := <-changed:
		require.NotNil(t, snap)
		assert.Len(t, snap.Matches, 1)
	case <-time.After(3 * time.Second):
		t.Fatal("expected a cache reload after the table change")
	}
}

func TestNotifierIgnoresUnwatchedTables(t *testing.T) {
	notifier := NewNotifier()

	ch, unsub := notifier.Subscribe("matches")
	defer unsub()

	notifier.Publish("users")
	notifier.Publish("matches")

	select {
	case table := <-ch:
		assert.Equal(t, "matches", table)
	case <-time.After(time.Second):
		t.Fatal("expected an event for the watched table")
	}

	select {
	case table := <-ch:
		t.Fatalf("unexpected extra event: %s", table)
	default:
	}
}

func TestReset(t *testing.T) {
	db, _, c := setupCache(t)
	seedMatches(t, db, "2025-03-01")

	_, err := c.Reload(context.Background())
	require.NoError(t, err)
	require.NotNil(t, c.Snapshot())

	c.Reset()
	assert.Nil(t, c.Snapshot())
}
