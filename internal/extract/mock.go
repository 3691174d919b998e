package extract

import (
	"context"
	"strings"
)

// MockClassifier provides deterministic local replies when no external
// classifier endpoint is configured. It flags messages that look like a
// direct assignment and treats everything else as plain speech.
type MockClassifier struct{}

func NewMockClassifier() *MockClassifier { return &MockClassifier{} }

func (c *MockClassifier) Complete(ctx context.Context, _ string, userText string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	t := strings.ToLower(userText)
	for _, kw := range []string{"prepare", "submit", "complete", "arrange", "by tomorrow", "by friday"} {
		if strings.Contains(t, kw) {
			return TaskMarker + ResponseDelimiter + strings.TrimSpace(userText) + ResponseDelimiter + "normal", nil
		}
	}
	return StatementSentinel, nil
}
