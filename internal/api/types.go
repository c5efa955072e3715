package api

// EmailMessage is a single message returned by the assistant for a date range.
// Optional fields are pointers so an absent value is distinguishable from "".
type EmailMessage struct {
	ID        string  `json:"id"`
	ThreadID  *string `json:"thread_id,omitempty"`
	Subject   *string `json:"subject,omitempty"`
	FromEmail string  `json:"from_email"`
	BodyText  *string `json:"body_text,omitempty"`
}

// Task is an action item extracted from an email body.
type Task struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Assignee   string  `json:"assignee"`
	DueISO     *string `json:"due_iso,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// EmailsResponse is the payload of GET /emails/range
type EmailsResponse struct {
	Count    int            `json:"count"`
	Messages []EmailMessage `json:"messages"`
}

// SummaryResponse is the payload of GET /summary
type SummaryResponse struct {
	Highlights []string `json:"highlights"`
	Count      int      `json:"count"`
}

// SummarizeRequest is the body of POST /summarize/email and POST /extract/actions
type SummarizeRequest struct {
	Text string `json:"text"`
}

// SummarizeResponse is the payload of POST /summarize/email
type SummarizeResponse struct {
	TLDR string `json:"tldr"`
}

// ExtractResponse is the payload of POST /extract/actions
type ExtractResponse struct {
	Tasks []Task `json:"tasks"`
}

// AuthStatusResponse is the payload of GET /auth/status
type AuthStatusResponse struct {
	Connected Truthy `json:"connected"`
}

// StartAuthResponse is the payload of GET /auth/google/start
type StartAuthResponse struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}

// AckResponse is returned by /auth/logout and /health
type AckResponse struct {
	OK bool `json:"ok"`
}

// StringValue dereferences an optional string, returning "" when absent.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
