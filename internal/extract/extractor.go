// Package extract decides whether a captured message encodes an actionable
// task. Semantic judgment is delegated to an external natural-language
// classifier; this package owns the role-specific prompting, the response
// parsing, and the failure policy. Classifier failures and malformed output
// always degrade to a plain statement: a capture is never dropped and never
// errors out because the classifier misbehaved.
package extract

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/kn713606pp/Lne-task-bot/internal/records"
	"github.com/kn713606pp/Lne-task-bot/internal/speaker"
)

// Wire format agreed with the external classifier.
const (
	StatementSentinel = "NOT_TASK"
	TaskMarker        = "TASK"
	ResponseDelimiter = "|"
)

const principalPrompt = `You screen messages written by a group's principal authority figure.
Decide whether the message gives a direct instruction that someone must act on.
If it does, answer exactly: TASK|<short task description>|<priority: high, normal or low>
If it does not, answer exactly: NOT_TASK
Answer with nothing else.`

const relayPrompt = `You screen messages written by a member of a group chat.
Decide whether the message reports or relays an instruction from the group's
principal authority figure that someone must act on.
If it does, answer exactly: TASK|<short task description>|<priority: high, normal or low>
If it does not, answer exactly: NOT_TASK
Answer with nothing else.`

// Classification is the extractor's verdict for one message. Description and
// Priority are set iff Kind == records.KindTask.
type Classification struct {
	Kind        records.Kind
	Description string
	Priority    records.Priority
}

// Extractor wraps the external classifier with role-aware prompting and the
// degrade-to-statement failure policy.
type Extractor struct {
	classifier Classifier
	observe    func(d time.Duration, failed bool)
}

func NewExtractor(classifier Classifier) *Extractor {
	return &Extractor{classifier: classifier}
}

// SetObserver installs a latency/outcome hook, used for metrics.
func (e *Extractor) SetObserver(fn func(d time.Duration, failed bool)) {
	e.observe = fn
}

// Extract classifies one message. It never returns an error: any classifier
// failure or unparseable response is reported as a plain statement.
func (e *Extractor) Extract(ctx context.Context, text string, category speaker.Category) Classification {
	prompt := relayPrompt
	if category == speaker.CategoryPrincipal {
		prompt = principalPrompt
	}

	start := time.Now()
	raw, err := e.classifier.Complete(ctx, prompt, text)
	if e.observe != nil {
		e.observe(time.Since(start), err != nil)
	}
	if err != nil {
		log.Printf("classifier call failed, degrading to statement: %v", err)
		return Classification{Kind: records.KindStatement}
	}
	return parseResponse(raw, text)
}

// parseResponse maps the classifier's free-text reply onto a Classification.
// Only two shapes are accepted: the exact statement sentinel, or a delimited
// triple starting with the task marker. Everything else, including a task
// marker with fewer than three fields, is a parse failure and degrades to
// statement.
func parseResponse(raw, originalText string) Classification {
	raw = strings.TrimSpace(raw)
	if raw == StatementSentinel {
		return Classification{Kind: records.KindStatement}
	}

	fields := strings.Split(raw, ResponseDelimiter)
	if len(fields) < 3 || strings.TrimSpace(fields[0]) != TaskMarker {
		return Classification{Kind: records.KindStatement}
	}

	description := strings.TrimSpace(fields[1])
	if description == "" {
		description = originalText
	}

	return Classification{
		Kind:        records.KindTask,
		Description: description,
		Priority:    mapPriority(fields[2]),
	}
}

func mapPriority(field string) records.Priority {
	f := strings.ToLower(field)
	switch {
	case strings.Contains(f, "high") || strings.Contains(f, "urgent"):
		return records.PriorityHigh
	case strings.Contains(f, "low"):
		return records.PriorityLow
	default:
		return records.PriorityNormal
	}
}
