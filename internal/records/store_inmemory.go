package records

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryStore is a simple in-process store for local/dev use and tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	byID   []Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1}
}

func (s *InMemoryStore) Append(_ context.Context, rec Record) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.nextID
	s.nextID++
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	s.byID = append(s.byID, rec)
	return rec.ID, nil
}

func (s *InMemoryStore) Query(_ context.Context, groupID string, kind KindFilter, spk SpeakerFilter) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0, len(s.byID))
	for _, rec := range s.byID {
		if rec.GroupID != groupID {
			continue
		}
		if !matchKind(rec, kind) || !matchSpeaker(rec, spk) {
			continue
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemoryStore) Close() error { return nil }

func matchKind(rec Record, f KindFilter) bool {
	switch f {
	case FilterKindAll, "":
		return true
	default:
		return string(rec.Kind) == string(f)
	}
}

func matchSpeaker(rec Record, f SpeakerFilter) bool {
	switch f {
	case FilterSpeakerAll, "":
		return true
	default:
		return string(rec.SpeakerCategory) == string(f)
	}
}
