package records

import "time"

// Category is the speaker bucket a record was captured under. Unlike the
// speaker classifier, relay is a valid value here: it is assigned by the
// dispatch relay path, never inferred from the message content itself.
type Category string

const (
	CategoryPrincipal Category = "principal"
	CategoryDelegate  Category = "delegate"
	CategoryRelay     Category = "relay"
)

// RoleLabel is the human-readable label derived 1:1 from the category.
func (c Category) RoleLabel() string {
	switch c {
	case CategoryPrincipal:
		return "Principal"
	case CategoryDelegate:
		return "Delegate"
	case CategoryRelay:
		return "Relay"
	default:
		return string(c)
	}
}

// Kind distinguishes plain captured speech from an actionable task.
type Kind string

const (
	KindStatement Kind = "statement"
	KindTask      Kind = "task"
)

// Priority of a task record.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

// Record is one persisted, classified message. Append-only: records are
// never updated or deleted. TaskDescription and Priority are set iff
// Kind == KindTask.
type Record struct {
	ID               int64     `json:"id"`
	GroupID          string    `json:"group_id"`
	SpeakerName      string    `json:"speaker_name"`
	SpeakerCategory  Category  `json:"speaker_category"`
	SpeakerRoleLabel string    `json:"speaker_role_label"`
	MessageContent   string    `json:"message_content"`
	Kind             Kind      `json:"record_kind"`
	TaskDescription  string    `json:"task_description,omitempty"`
	Priority         Priority  `json:"priority,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// IsTask reports whether the record carries a task payload.
func (r Record) IsTask() bool { return r.Kind == KindTask }
