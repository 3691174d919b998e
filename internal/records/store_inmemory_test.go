package records

import (
	"context"
	"testing"
	"time"
)

func TestInMemoryAppendAssignsSerialIDs(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	id1, err := s.Append(ctx, Record{GroupID: "g1", SpeakerCategory: CategoryPrincipal, Kind: KindStatement})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	id2, err := s.Append(ctx, Record{GroupID: "g1", SpeakerCategory: CategoryPrincipal, Kind: KindStatement})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if id1 != 1 || id2 != 2 {
		t.Fatalf("ids = %d, %d, want 1, 2", id1, id2)
	}
}

func TestInMemoryAppendSetsCreatedAt(t *testing.T) {
	s := NewInMemoryStore()
	if _, err := s.Append(context.Background(), Record{GroupID: "g1", Kind: KindStatement}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	got, err := s.Query(context.Background(), "g1", FilterKindAll, FilterSpeakerAll)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(got) != 1 || got[0].CreatedAt.IsZero() {
		t.Fatalf("expected one record with CreatedAt set, got %+v", got)
	}
}

func TestInMemoryQueryScopesToGroup(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()
	mustAppend(t, s, Record{GroupID: "g1", SpeakerCategory: CategoryPrincipal, Kind: KindStatement})
	mustAppend(t, s, Record{GroupID: "g2", SpeakerCategory: CategoryPrincipal, Kind: KindStatement})

	got, err := s.Query(ctx, "g1", FilterKindAll, FilterSpeakerAll)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(got) != 1 || got[0].GroupID != "g1" {
		t.Fatalf("expected only g1 records, got %+v", got)
	}
}

func TestInMemoryQuerySpeakerFilterPrincipalOnly(t *testing.T) {
	s := NewInMemoryStore()
	mustAppend(t, s, Record{GroupID: "g1", SpeakerCategory: CategoryPrincipal, Kind: KindTask, TaskDescription: "x", Priority: PriorityNormal})
	mustAppend(t, s, Record{GroupID: "g1", SpeakerCategory: CategoryDelegate, Kind: KindStatement})
	mustAppend(t, s, Record{GroupID: "g1", SpeakerCategory: CategoryRelay, Kind: KindStatement})

	for _, kind := range []KindFilter{FilterKindAll, FilterKindStatement, FilterKindTask} {
		got, err := s.Query(context.Background(), "g1", kind, FilterSpeakerPrincipal)
		if err != nil {
			t.Fatalf("Query(kind=%s) error = %v", kind, err)
		}
		for _, rec := range got {
			if rec.SpeakerCategory != CategoryPrincipal {
				t.Fatalf("kind=%s returned non-principal record %+v", kind, rec)
			}
		}
	}
}

func TestInMemoryQueryKindFilter(t *testing.T) {
	s := NewInMemoryStore()
	mustAppend(t, s, Record{GroupID: "g1", SpeakerCategory: CategoryPrincipal, Kind: KindTask, TaskDescription: "x", Priority: PriorityHigh})
	mustAppend(t, s, Record{GroupID: "g1", SpeakerCategory: CategoryPrincipal, Kind: KindStatement})

	got, err := s.Query(context.Background(), "g1", FilterKindTask, FilterSpeakerAll)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(got) != 1 || got[0].Kind != KindTask {
		t.Fatalf("expected single task record, got %+v", got)
	}
}

func TestInMemoryQueryOrdersMostRecentFirst(t *testing.T) {
	s := NewInMemoryStore()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	mustAppend(t, s, Record{GroupID: "g1", Kind: KindStatement, MessageContent: "old", CreatedAt: base})
	mustAppend(t, s, Record{GroupID: "g1", Kind: KindStatement, MessageContent: "new", CreatedAt: base.Add(time.Hour)})

	got, err := s.Query(context.Background(), "g1", FilterKindAll, FilterSpeakerAll)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(got) != 2 || got[0].MessageContent != "new" || got[1].MessageContent != "old" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestInMemoryQueryIsStableAcrossRepeats(t *testing.T) {
	s := NewInMemoryStore()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		mustAppend(t, s, Record{GroupID: "g1", Kind: KindStatement, CreatedAt: base.Add(time.Duration(i) * time.Minute)})
	}

	first, err := s.Query(context.Background(), "g1", FilterKindAll, FilterSpeakerAll)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	second, err := s.Query(context.Background(), "g1", FilterKindAll, FilterSpeakerAll)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("repeat query length changed: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("repeat query order changed at %d: %d vs %d", i, first[i].ID, second[i].ID)
		}
	}
}

func mustAppend(t *testing.T, s Store, rec Record) {
	t.Helper()
	if _, err := s.Append(context.Background(), rec); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
}
