package render

import (
	"fmt"
	"strings"

	"github.com/ajramos/mailbrief/internal/api"
)

// NoSubject is shown for messages without a subject
const NoSubject = "(no subject)"

// Subject returns the display subject of e
func Subject(e api.EmailMessage) string {
	s := OneLine(SanitizeForTerminal(api.StringValue(e.Subject)))
	if s == "" {
		return NoSubject
	}
	return s
}

// Body returns the readable body of e, converting markup to text
func Body(e api.EmailMessage) string {
	raw := api.StringValue(e.BodyText)
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	if LooksLikeHTML(raw) {
		if txt, err := HTMLToText(raw); err == nil && txt != "" {
			return txt
		}
	}
	return strings.TrimSpace(SanitizeForTerminal(normalizeNewlines(raw)))
}

// EmailDetail renders the full text shown in the preview pane
func EmailDetail(e api.EmailMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Subject: %s\n", Subject(e))
	fmt.Fprintf(&b, "From:    %s\n", e.FromEmail)
	if tid := api.StringValue(e.ThreadID); tid != "" {
		fmt.Fprintf(&b, "Thread:  %s\n", tid)
	}
	b.WriteString("\n")
	if body := Body(e); body != "" {
		b.WriteString(body)
	} else {
		b.WriteString("(no body)")
	}
	return b.String()
}
