package records

import "context"

// KindFilter narrows a query to one record kind.
type KindFilter string

const (
	FilterKindAll       KindFilter = "all"
	FilterKindStatement KindFilter = "statement"
	FilterKindTask      KindFilter = "task"
)

// SpeakerFilter narrows a query to one speaker category.
type SpeakerFilter string

const (
	FilterSpeakerAll       SpeakerFilter = "all"
	FilterSpeakerPrincipal SpeakerFilter = "principal"
	FilterSpeakerDelegate  SpeakerFilter = "delegate"
	FilterSpeakerRelay     SpeakerFilter = "relay"
)

// Store persists and queries captured records. Append assigns the id and
// CreatedAt and must not silently drop valid input; storage errors are
// returned to the caller. Query always scopes to exactly one group and
// returns records most recent first.
type Store interface {
	Append(ctx context.Context, rec Record) (int64, error)
	Query(ctx context.Context, groupID string, kind KindFilter, spk SpeakerFilter) ([]Record, error)
	Close() error
}
