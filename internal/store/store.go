// Package store holds decoded auctions bucketed by item identity and
// attribute key. A Store is not safe for concurrent writers; the
// ingestion workers serialize writes and publish finished snapshots
// through Published.
package store

import (
	"ah_market/internal/domain/entity"
	"ah_market/internal/domain/value"
)

// RetentionLimit caps bucket length in limited mode, oldest evicted first.
const RetentionLimit = 15

type Buckets map[string][]entity.ParsedAuction

type Store struct {
	byItem map[string]Buckets
}

func New() *Store {
	return &Store{
		byItem: make(map[string]Buckets),
	}
}

// Add appends an auction under its item and attribute bucket. An empty
// attribute key collapses to the "default" bucket, so every item always
// has a uniform bucket map. With limited retention the bucket keeps the
// newest RetentionLimit entries in insertion order.
func (s *Store) Add(a entity.ParsedAuction, limited bool) {
	key := a.AttrKey
	if key == "" {
		key = value.DefaultBucket
	}

	buckets, ok := s.byItem[a.ItemName]
	if !ok {
		buckets = make(Buckets)
		s.byItem[a.ItemName] = buckets
	}

	bucket := append(buckets[key], a)
	if limited && len(bucket) > RetentionLimit {
		bucket = bucket[len(bucket)-RetentionLimit:]
	}

	buckets[key] = bucket
}

// Buckets returns the bucket map for an item, or false if the item is
// unknown. The map is shared; callers must not mutate it.
func (s *Store) Buckets(itemName string) (Buckets, bool) {
	buckets, ok := s.byItem[itemName]
	return buckets, ok
}

// Items returns every item identity currently present.
func (s *Store) Items() []string {
	items := make([]string, 0, len(s.byItem))
	for name := range s.byItem {
		items = append(items, name)
	}

	return items
}

// Clear resets the store to empty.
func (s *Store) Clear() {
	s.byItem = make(map[string]Buckets)
}

// Len returns the total number of stored auctions.
func (s *Store) Len() int {
	var n int
	for _, buckets := range s.byItem {
		for _, bucket := range buckets {
			n += len(bucket)
		}
	}

	return n
}
