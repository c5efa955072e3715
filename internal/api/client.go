package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
)

const defaultMaxResults = 50

// Client talks to the assistant backend over HTTP+JSON
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	maxResults int
}

// NewClient creates a client for the backend rooted at baseURL.
// A nil httpClient gets a plain client with a 20s timeout.
func NewClient(baseURL string, httpClient *http.Client, maxResults int) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("api base URL cannot be empty")
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported api URL scheme: %q", u.Scheme)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	return &Client{baseURL: u, httpClient: httpClient, maxResults: maxResults}, nil
}

// BaseURL returns the backend root the client was created with
func (c *Client) BaseURL() string { return c.baseURL.String() }

// ListEmails returns the messages between start and end (inclusive, YYYY-MM-DD)
func (c *Client) ListEmails(ctx context.Context, start, end string) ([]EmailMessage, error) {
	var out EmailsResponse
	if err := c.get(ctx, "/emails/range", c.rangeQuery(start, end), &out); err != nil {
		return nil, err
	}
	if out.Messages == nil {
		return []EmailMessage{}, nil
	}
	return out.Messages, nil
}

// GetHighlights returns the highlight bullets for the range
func (c *Client) GetHighlights(ctx context.Context, start, end string) ([]string, error) {
	var out SummaryResponse
	if err := c.get(ctx, "/summary", c.rangeQuery(start, end), &out); err != nil {
		return nil, err
	}
	if out.Highlights == nil {
		return []string{}, nil
	}
	return out.Highlights, nil
}

// SummarizeEmail returns a one-line summary of body
func (c *Client) SummarizeEmail(ctx context.Context, body string) (string, error) {
	var out SummarizeResponse
	if err := c.post(ctx, "/summarize/email", SummarizeRequest{Text: body}, &out); err != nil {
		return "", err
	}
	return out.TLDR, nil
}

// ExtractActions returns the action items found in body. The slice may be empty.
func (c *Client) ExtractActions(ctx context.Context, body string) ([]Task, error) {
	var out ExtractResponse
	if err := c.post(ctx, "/extract/actions", SummarizeRequest{Text: body}, &out); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

// AuthStatus reports whether the backend holds mailbox credentials
func (c *Client) AuthStatus(ctx context.Context) (bool, error) {
	var out AuthStatusResponse
	if err := c.get(ctx, "/auth/status", nil, &out); err != nil {
		return false, err
	}
	return bool(out.Connected), nil
}

// StartAuth asks the backend for the provider consent URL
func (c *Client) StartAuth(ctx context.Context) (string, error) {
	var out StartAuthResponse
	if err := c.get(ctx, "/auth/google/start", nil, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.AuthURL) == "" {
		return "", fmt.Errorf("auth start: backend returned no auth_url")
	}
	return out.AuthURL, nil
}

// Logout drops the backend session. The acknowledgment body is ignored.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil)
}

// Health checks that the backend is reachable
func (c *Client) Health(ctx context.Context) error {
	var out AckResponse
	if err := c.get(ctx, "/health", nil, &out); err != nil {
		return err
	}
	if !out.OK {
		return fmt.Errorf("health: backend reported not ok")
	}
	return nil
}

func (c *Client) rangeQuery(start, end string) url.Values {
	q := url.Values{}
	q.Set("start", start)
	q.Set("end", end)
	q.Set("max_results", strconv.Itoa(c.maxResults))
	return q
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, q, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, in, out)
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, in, out any) error {
	u := c.baseURL.JoinPath(path)
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s %s: encode request: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}
