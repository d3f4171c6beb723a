package cache

import (
	"sync"

	"gorm.io/gorm"
)

// Notifier turns row-level writes into "table changed" events. It hooks
// gorm's create/update/delete callbacks, so every write through the ORM
// publishes the affected table name to all interested subscribers. The
// payload is only the table name; subscribers reload, they do not diff.
type Notifier struct {
	mu   sync.RWMutex
	subs map[int]*subscriber
	next int
}

type subscriber struct {
	tables map[string]struct{}
	ch     chan string
}

func NewNotifier() *Notifier {
	return &Notifier{
		subs: make(map[int]*subscriber),
	}
}

// Register hooks the notifier into the gorm callback chain.
func (n *Notifier) Register(db *gorm.DB) error {
	if err := db.Callback().Create().After("gorm:create").Register("liga:notify_create", n.afterWrite); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("liga:notify_update", n.afterWrite); err != nil {
		return err
	}
	return db.Callback().Delete().After("gorm:delete").Register("liga:notify_delete", n.afterWrite)
}

func (n *Notifier) afterWrite(db *gorm.DB) {
	if db.Error != nil || db.Statement == nil || db.Statement.Table == "" {
		return
	}
	n.Publish(db.Statement.Table)
}

// Publish delivers a change event for the given table. Slow subscribers
// lose events rather than block the write path; a lost event only means
// a reload is already pending.
func (n *Notifier) Publish(table string) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for _, sub := range n.subs {
		if _, ok := sub.tables[table]; !ok {
			continue
		}
		select {
		case sub.ch <- table:
		default:
		}
	}
}

// Subscribe returns a channel receiving the names of changed tables and
// a function tearing the subscription down.
func (n *Notifier) Subscribe(tables ...string) (<-chan string, func()) {
	sub := &subscriber{
		tables: make(map[string]struct{}, len(tables)),
		ch:     make(chan string, 16),
	}
	for _, t := range tables {
		sub.tables[t] = struct{}{}
	}

	n.mu.Lock()
	id := n.next
	n.next++
	n.subs[id] = sub
	n.mu.Unlock()

	unsubscribe := func() {
		n.mu.Lock()
		if _, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(sub.ch)
		}
		n.mu.Unlock()
	}

	return sub.ch, unsubscribe
}
