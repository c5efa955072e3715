package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/ajramos/mailbrief/internal/api"
)

// TaskTitle returns the single-line title of t
func TaskTitle(t api.Task, width int) string {
	title := OneLine(SanitizeForTerminal(t.Title))
	if title == "" {
		title = "(untitled)"
	}
	if width > 0 {
		return Truncate(title, width)
	}
	return title
}

// TaskMeta returns "assignee: X • due: Y • 80%" for t. Missing parts are left out.
func TaskMeta(t api.Task) string {
	parts := []string{"assignee: " + strings.TrimSpace(t.Assignee)}
	if due := strings.TrimSpace(api.StringValue(t.DueISO)); due != "" {
		parts = append(parts, "due: "+due)
	}
	if c := ConfidenceLabel(t.Confidence); c != "" {
		parts = append(parts, c)
	}
	return strings.Join(parts, " • ")
}

// ConfidenceLabel formats a 0..1 confidence as a percentage. Zero is omitted.
func ConfidenceLabel(c float64) string {
	if c <= 0 || math.IsNaN(c) {
		return ""
	}
	if c > 1 {
		c = 1
	}
	return fmt.Sprintf("%d%%", int(math.Round(c*100)))
}

// HighlightLine formats a summary bullet
func HighlightLine(h string) string {
	return "• " + OneLine(SanitizeForTerminal(h))
}
