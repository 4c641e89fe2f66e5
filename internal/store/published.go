package store

import (
	"sync/atomic"
	"time"
)

// Published is the reader-facing snapshot holder. The ingestion worker
// builds a candidate Store off to the side and commits it with Swap, so
// HTTP readers never observe a partially-built cycle.
type Published struct {
	current   atomic.Pointer[Store]
	committed atomic.Pointer[time.Time]
}

func NewPublished() *Published {
	p := &Published{}
	p.current.Store(New())

	return p
}

// Load returns the last committed snapshot. Never nil.
func (p *Published) Load() *Store {
	return p.current.Load()
}

// Swap atomically replaces the published snapshot and records the
// commit time.
func (p *Published) Swap(s *Store) {
	now := time.Now()
	p.current.Store(s)
	p.committed.Store(&now)
}

// CommittedAt returns the time of the last commit, or zero if no cycle
// has committed yet.
func (p *Published) CommittedAt() time.Time {
	t := p.committed.Load()
	if t == nil {
		return time.Time{}
	}

	return *t
}
