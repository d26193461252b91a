package attendance

import (
	"hash/fnv"
	"sync"
)

// =============================================================================
// DAY LOCKS - Per-(user, date) mutual exclusion
// =============================================================================

// DayLocks serializes read-check-then-write sequences on a single
// (user, date) cell of the ledger. Striped so unrelated users never
// contend. The stamp state machine and the reconciliation engine share
// one instance; the multi-day reconciliation loop takes and releases the
// lock per day, never across the whole span.
type DayLocks struct {
	stripes [64]sync.Mutex
}

func NewDayLocks() *DayLocks { return &DayLocks{} }

func (l *DayLocks) lockFor(userID UserID, date Date) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(userID))
	h.Write([]byte(date.String()))
	return &l.stripes[h.Sum32()%uint32(len(l.stripes))]
}

// WithDay runs fn while holding the stripe for (userID, date).
func (l *DayLocks) WithDay(userID UserID, date Date, fn func() error) error {
	mu := l.lockFor(userID, date)
	mu.Lock()
	defer mu.Unlock()
	return fn()
}
