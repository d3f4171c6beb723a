package cache

import (
	"context"
	"log"
	"sync"
	"time"

	"liga-api/packages/league/models"

	"gorm.io/gorm"
)

// WatchedTables are the tables whose changes trigger a cache reload.
var WatchedTables = []string{
	"matches",
	"players",
	"finances",
	"spieler_des_spiels",
	"transactions",
	"bans",
}

// Snapshot is one consistent read of all league tables. Matches are
// ordered most recent first (date, then insertion order).
type Snapshot struct {
	Matches      []models.Match
	AEKPlayers   []models.Player
	RealPlayers  []models.Player
	Finances     map[string]models.Finance
	Bans         []models.Ban
	SdSCounters  []models.SpielerDesSpiels
	Transactions []models.Transaction
}

type reloadCall struct {
	done chan struct{}
	snap *Snapshot
	err  error
}

// Cache mirrors the league tables in memory. Reloads are single-flight:
// while a load is in flight every further Reload call attaches to it and
// observes the same result. Change notifications arm a short debounce
// timer so bursts of writes collapse into one reload.
type Cache struct {
	db       *gorm.DB
	notifier *Notifier

	mu         sync.Mutex
	snap       *Snapshot
	call       *reloadCall
	generation int

	debounce      *time.Timer
	debounceDelay time.Duration

	unsubscribe func()
	onChange    func(*Snapshot)
}

func New(db *gorm.DB, notifier *Notifier) *Cache {
	return &Cache{
		db:            db,
		notifier:      notifier,
		debounceDelay: 100 * time.Millisecond,
	}
}

// Snapshot returns the latest completed snapshot, or nil before the
// first successful reload.
func (c *Cache) Snapshot() *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// Reload loads all tables. Concurrent callers share a single in-flight
// load and all receive its result.
func (c *Cache) Reload(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	if c.call == nil {
		c.call = &reloadCall{done: make(chan struct{})}
		go c.run(c.call, c.generation)
	}
	call := c.call
	c.mu.Unlock()

	select {
	case <-call.done:
		return call.snap, call.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) run(call *reloadCall, generation int) {
	snap, err := c.load()

	c.mu.Lock()
	if err == nil && generation == c.generation {
		c.snap = snap
	}
	c.call = nil
	c.mu.Unlock()

	call.snap = snap
	call.err = err
	close(call.done)
}

func (c *Cache) load() (*Snapshot, error) {
	snap := &Snapshot{
		Finances: make(map[string]models.Finance),
	}

	if err := c.db.Order("date DESC, id DESC").Find(&snap.Matches).Error; err != nil {
		return nil, err
	}

	var players []models.Player
	if err := c.db.Order("name ASC").Find(&players).Error; err != nil {
		return nil, err
	}
	for _, p := range players {
		if p.Team == models.TeamAEK {
			snap.AEKPlayers = append(snap.AEKPlayers, p)
		} else {
			snap.RealPlayers = append(snap.RealPlayers, p)
		}
	}

	var finances []models.Finance
	if err := c.db.Find(&finances).Error; err != nil {
		return nil, err
	}
	for _, f := range finances {
		snap.Finances[f.Team] = f
	}

	if err := c.db.Order("created_at DESC").Find(&snap.Bans).Error; err != nil {
		return nil, err
	}

	if err := c.db.Order("count DESC, name ASC").Find(&snap.SdSCounters).Error; err != nil {
		return nil, err
	}

	if err := c.db.Order("date DESC, id DESC").Find(&snap.Transactions).Error; err != nil {
		return nil, err
	}

	return snap, nil
}

// MatchNumber resolves a match id to its display ordinal: with matches
// ordered most recent first, ordinal = total - index. Returns false if
// the id is unknown or no snapshot has been loaded yet.
func (c *Cache) MatchNumber(id uint) (int, bool) {
	c.mu.Lock()
	snap := c.snap
	c.mu.Unlock()

	if snap == nil || len(snap.Matches) == 0 {
		return 0, false
	}

	for i, m := range snap.Matches {
		if m.ID == id {
			return len(snap.Matches) - i, true
		}
	}
	return 0, false
}

// Subscribe starts listening for table changes. Every burst of changes
// triggers one debounced reload; onChange (optional) runs after each
// successful reload with the fresh snapshot.
func (c *Cache) Subscribe(onChange func(*Snapshot)) {
	c.mu.Lock()
	if c.unsubscribe != nil {
		c.mu.Unlock()
		return
	}
	c.onChange = onChange
	ch, unsub := c.notifier.Subscribe(WatchedTables...)
	c.unsubscribe = unsub
	c.mu.Unlock()

	go func() {
		for range ch {
			c.scheduleReload()
		}
	}()
}

func (c *Cache) scheduleReload() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.debounce != nil {
		c.debounce.Reset(c.debounceDelay)
		return
	}
	c.debounce = time.AfterFunc(c.debounceDelay, c.reloadAndNotify)
}

func (c *Cache) reloadAndNotify() {
	c.mu.Lock()
	c.debounce = nil
	onChange := c.onChange
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snap, err := c.Reload(ctx)
	if err != nil {
		log.Printf("Cache reload failed: %v", err)
		return
	}
	if onChange != nil {
		onChange(snap)
	}
}

// Unsubscribe tears down the change subscription.
func (c *Cache) Unsubscribe() {
	c.mu.Lock()
	unsub := c.unsubscribe
	c.unsubscribe = nil
	c.onChange = nil
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
	c.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

// Reset clears all cached state and unsubscribes. An in-flight load
// finishes but its result is discarded.
func (c *Cache) Reset() {
	c.Unsubscribe()

	c.mu.Lock()
	c.snap = nil
	c.generation++
	c.mu.Unlock()
}
