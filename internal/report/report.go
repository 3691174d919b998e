// Package report renders record query results into the text replied to a
// group. Pure presentation: same input sequence, same output bytes.
package report

import (
	"fmt"
	"strings"

	"github.com/kn713606pp/Lne-task-bot/internal/records"
)

const NoRecordsMessage = "No records yet."

const timestampLayout = "2006-01-02 15:04"

var kindIcons = map[records.Kind]string{
	records.KindStatement: "💬",
	records.KindTask:      "📌",
}

var categoryIcons = map[records.Category]string{
	records.CategoryPrincipal: "👑",
	records.CategoryDelegate:  "🤝",
	records.CategoryRelay:     "📣",
}

// Format renders the record sequence as a numbered list followed by a
// summary block. An empty sequence yields the fixed no-records message.
func Format(recs []records.Record) string {
	if len(recs) == 0 {
		return NoRecordsMessage
	}

	var b strings.Builder
	var statements, tasks int
	counts := map[records.Category]int{}

	for i, rec := range recs {
		fmt.Fprintf(&b, "%d. %s%s [%s] %s %s\n",
			i+1,
			kindIcons[rec.Kind],
			categoryIcons[rec.SpeakerCategory],
			rec.CreatedAt.Format(timestampLayout),
			rec.SpeakerRoleLabel,
			rec.SpeakerName,
		)
		if rec.IsTask() {
			fmt.Fprintf(&b, "   Task: %s (priority: %s)\n", rec.TaskDescription, rec.Priority)
			fmt.Fprintf(&b, "   Original: %s\n", rec.MessageContent)
			tasks++
		} else {
			fmt.Fprintf(&b, "   %s\n", rec.MessageContent)
			statements++
		}
		counts[rec.SpeakerCategory]++
	}

	b.WriteString("---\n")
	fmt.Fprintf(&b, "Statements: %d | Tasks: %d\n", statements, tasks)
	fmt.Fprintf(&b, "Principal: %d | Delegate: %d", counts[records.CategoryPrincipal], counts[records.CategoryDelegate])
	if n := counts[records.CategoryRelay]; n > 0 {
		fmt.Fprintf(&b, " | Relay: %d", n)
	}
	return b.String()
}
