package records

import (
	"context"
	"strings"
)

// NewStore creates a postgres-backed store when configured, otherwise in-memory.
func NewStore(ctx context.Context, databaseURL string) (Store, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return NewInMemoryStore(), nil
	}
	return NewPostgresStore(ctx, databaseURL)
}

// StoreMode names the active backend for health reporting.
func StoreMode(databaseURL string) string {
	if strings.TrimSpace(databaseURL) == "" {
		return "in-memory"
	}
	return "postgres"
}
