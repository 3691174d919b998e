package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Classifier is the boundary to the external natural-language service that
// judges whether text encodes a task. It returns the raw free-text response;
// parsing and all failure absorption happen in the Extractor.
type Classifier interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}

// Config controls classifier construction.
type Config struct {
	Mode    string
	HTTPURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// NewClassifier builds a classifier adapter for the configured mode.
func NewClassifier(cfg Config) (Classifier, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == "" {
		mode = "auto"
	}

	switch mode {
	case "auto":
		if strings.TrimSpace(cfg.HTTPURL) != "" {
			return NewHTTPClassifier(cfg), nil
		}
		return NewMockClassifier(), nil
	case "http":
		if strings.TrimSpace(cfg.HTTPURL) == "" {
			return nil, errors.New("classifier HTTP url is required for http mode")
		}
		return NewHTTPClassifier(cfg), nil
	case "mock":
		return NewMockClassifier(), nil
	default:
		return nil, fmt.Errorf("unsupported classifier mode %q", cfg.Mode)
	}
}
