package services

import (
	"context"

	"github.com/ajramos/mailbrief/internal/api"
)

// AssistantAPI is the remote triage backend
type AssistantAPI interface {
	ListEmails(ctx context.Context, start, end string) ([]api.EmailMessage, error)
	GetHighlights(ctx context.Context, start, end string) ([]string, error)
	SummarizeEmail(ctx context.Context, body string) (string, error)
	ExtractActions(ctx context.Context, body string) ([]api.Task, error)
	AuthStatus(ctx context.Context) (bool, error)
	StartAuth(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
}

// CacheService memoizes per-email summaries for the current session
type CacheService interface {
	GetSummary(ctx context.Context, body string) (string, bool, error)
	SaveSummary(ctx context.Context, body, summary string) error
	ClearCache(ctx context.Context) error
}

// LinkService hands URLs to the system browser
type LinkService interface {
	OpenLink(ctx context.Context, url string) error
	ValidateURL(url string) error
}

// Notifier receives user-facing notices that are not failures
type Notifier interface {
	Notify(ctx context.Context, notice Notice)
}

// NoticeLevel classifies a Notice
type NoticeLevel int

const (
	// NoticeUsage reports an action that could not be attempted (no remote call made)
	NoticeUsage NoticeLevel = iota
	// NoticeNoResult reports a successful call that found nothing
	NoticeNoResult
	// NoticeSummary carries a generated summary to show the user
	NoticeSummary
)

// String returns a short name for the level
func (l NoticeLevel) String() string {
	switch l {
	case NoticeUsage:
		return "usage"
	case NoticeNoResult:
		return "no-result"
	case NoticeSummary:
		return "summary"
	default:
		return "unknown"
	}
}

// Notice is a message for the user
type Notice struct {
	Level   NoticeLevel
	Message string
}

// User-facing notice texts
const (
	MsgNoBodyToSummarize = "No email body available to summarize."
	MsgNoActionItems     = "No clear action items detected"
	MsgTasksDiscarded    = "The email list changed while extracting, so those tasks were discarded."
)

// NotifierFunc adapts a plain function to Notifier
type NotifierFunc func(ctx context.Context, notice Notice)

// Notify implements Notifier
func (f NotifierFunc) Notify(ctx context.Context, notice Notice) { f(ctx, notice) }
