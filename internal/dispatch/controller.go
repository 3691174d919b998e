// Package dispatch routes each inbound webhook event to exactly one terminal
// outcome: a silent no-op, a query reply, or an appended record. Every error
// downstream of command recognition is absorbed into a silent no-op; the bot
// never surfaces an internal failure into the conversation.
package dispatch

import (
	"context"
	"log"
	"strings"

	"github.com/kn713606pp/Lne-task-bot/internal/extract"
	"github.com/kn713606pp/Lne-task-bot/internal/line"
	"github.com/kn713606pp/Lne-task-bot/internal/observability"
	"github.com/kn713606pp/Lne-task-bot/internal/records"
	"github.com/kn713606pp/Lne-task-bot/internal/report"
	"github.com/kn713606pp/Lne-task-bot/internal/speaker"
)

// Outcome is the terminal result for one processed event.
type Outcome string

const (
	OutcomeIgnored  Outcome = "ignored"
	OutcomeReplied  Outcome = "replied"
	OutcomeRecorded Outcome = "recorded"
)

// ProfileSource resolves a group member's display name.
type ProfileSource interface {
	DisplayName(ctx context.Context, groupID, userID string) (string, error)
}

// Replier delivers a text reply into the originating conversation.
type Replier interface {
	Reply(ctx context.Context, replyToken, text string) error
}

// Publisher receives every appended record, used for the live operator feed.
type Publisher interface {
	Publish(rec records.Record)
}

type command struct {
	kind records.KindFilter
	spk  records.SpeakerFilter
}

// Fixed query command set. Matched on the exact trimmed, lowercased text.
var commands = map[string]command{
	"record list":    {records.FilterKindAll, records.FilterSpeakerAll},
	"task list":      {records.FilterKindTask, records.FilterSpeakerAll},
	"statement list": {records.FilterKindStatement, records.FilterSpeakerAll},
	"principal list": {records.FilterKindAll, records.FilterSpeakerPrincipal},
	"delegate list":  {records.FilterKindAll, records.FilterSpeakerDelegate},
	"relay list":     {records.FilterKindAll, records.FilterSpeakerRelay},
}

// Deps wires the controller's collaborators. Metrics and Feed may be nil.
type Deps struct {
	Roster    *speaker.Roster
	Detector  *speaker.Detector
	Extractor *extract.Extractor
	Store     records.Store
	Profiles  ProfileSource
	Replier   Replier
	Metrics   *observability.Metrics
	Feed      Publisher
}

type Controller struct {
	deps Deps
}

func NewController(deps Deps) *Controller {
	return &Controller{deps: deps}
}

// Handle runs one event through the pipeline and returns its terminal
// outcome. It never returns an error.
func (c *Controller) Handle(ctx context.Context, ev line.Event) Outcome {
	if ev.Type != line.EventTypeMessage || ev.Message.Type != line.MessageTypeText {
		return c.done(OutcomeIgnored)
	}
	if ev.Source.Type != line.SourceTypeGroup {
		return c.done(OutcomeIgnored)
	}

	text := ev.Message.Text
	if cmd, ok := commands[strings.ToLower(strings.TrimSpace(text))]; ok {
		return c.done(c.handleQuery(ctx, ev, cmd))
	}
	return c.done(c.handleCapture(ctx, ev, text))
}

func (c *Controller) handleQuery(ctx context.Context, ev line.Event, cmd command) Outcome {
	recs, err := c.deps.Store.Query(ctx, ev.Source.GroupID, cmd.kind, cmd.spk)
	if err != nil {
		log.Printf("record query failed for group %s: %v", ev.Source.GroupID, err)
		c.countProviderError("store", "query")
		return OutcomeIgnored
	}
	if err := c.deps.Replier.Reply(ctx, ev.ReplyToken, report.Format(recs)); err != nil {
		log.Printf("query reply failed for group %s: %v", ev.Source.GroupID, err)
		c.countProviderError("line", "reply")
		return OutcomeIgnored
	}
	return OutcomeReplied
}

func (c *Controller) handleCapture(ctx context.Context, ev line.Event, text string) Outcome {
	displayName, err := c.deps.Profiles.DisplayName(ctx, ev.Source.GroupID, ev.Source.UserID)
	if err != nil {
		log.Printf("profile lookup failed for user %s: %v", ev.Source.UserID, err)
		c.countProviderError("line", "profile")
		return OutcomeIgnored
	}

	res := c.deps.Roster.Classify(displayName)

	var category records.Category
	switch {
	case res.Relevant:
		category = records.Category(res.Category)
	case c.deps.Detector.ContainsTrigger(text):
		category = records.CategoryRelay
	default:
		return OutcomeIgnored
	}

	// The relay path prompts like a delegate: the speaker is reporting the
	// principal's words, not issuing their own instruction.
	cls := c.deps.Extractor.Extract(ctx, text, res.Category)

	rec := records.Record{
		GroupID:          ev.Source.GroupID,
		SpeakerName:      displayName,
		SpeakerCategory:  category,
		SpeakerRoleLabel: category.RoleLabel(),
		MessageContent:   text,
		Kind:             cls.Kind,
		TaskDescription:  cls.Description,
		Priority:         cls.Priority,
	}

	id, err := c.deps.Store.Append(ctx, rec)
	if err != nil {
		log.Printf("record append failed for group %s: %v", ev.Source.GroupID, err)
		c.countProviderError("store", "append")
		return OutcomeIgnored
	}
	rec.ID = id

	if c.deps.Metrics != nil {
		c.deps.Metrics.RecordsAppended.WithLabelValues(string(rec.Kind), string(rec.SpeakerCategory)).Inc()
	}
	if c.deps.Feed != nil {
		c.deps.Feed.Publish(rec)
	}
	return OutcomeRecorded
}

func (c *Controller) done(outcome Outcome) Outcome {
	if c.deps.Metrics != nil {
		c.deps.Metrics.DispatchOutcomes.WithLabelValues(string(outcome)).Inc()
	}
	return outcome
}

func (c *Controller) countProviderError(provider, stage string) {
	if c.deps.Metrics != nil {
		c.deps.Metrics.ProviderErrors.WithLabelValues(provider, stage).Inc()
	}
}
