package services

import (
	"context"
	"log"
	"strings"

	"github.com/ajramos/mailbrief/internal/api"
)

// ActionService runs per-email actions: summarize and extract action items
type ActionService struct {
	api      AssistantAPI
	state    *State
	tasks    *TaskService
	cache    CacheService
	notifier Notifier
	logger   *log.Logger
}

// NewActionService creates an action dispatcher. cache may be nil.
func NewActionService(remote AssistantAPI, state *State, tasks *TaskService, cache CacheService, notifier Notifier) *ActionService {
	return &ActionService{
		api:      remote,
		state:    state,
		tasks:    tasks,
		cache:    cache,
		notifier: notifier,
	}
}

// SetLogger sets an optional debug logger
func (s *ActionService) SetLogger(logger *log.Logger) {
	s.logger = logger
}

// Summarize shows a one-line summary of body. A missing or blank body
// produces a usage notice and no remote call.
func (s *ActionService) Summarize(ctx context.Context, body *string) error {
	text := api.StringValue(body)
	if strings.TrimSpace(text) == "" {
		s.notify(ctx, Notice{Level: NoticeUsage, Message: MsgNoBodyToSummarize})
		return nil
	}

	if s.cache != nil {
		if cached, found, err := s.cache.GetSummary(ctx, text); err == nil && found {
			s.debugf("summary served from cache")
			s.notify(ctx, Notice{Level: NoticeSummary, Message: cached})
			return nil
		} else if err != nil {
			s.debugf("summary cache lookup failed: %v", err)
		}
	}

	tldr, err := s.api.SummarizeEmail(ctx, text)
	if err != nil {
		return ClassifyRemoteError(err)
	}

	if s.cache != nil && strings.TrimSpace(tldr) != "" {
		if err := s.cache.SaveSummary(ctx, text, tldr); err != nil {
			s.debugf("summary cache save failed: %v", err)
		}
	}
	s.notify(ctx, Notice{Level: NoticeSummary, Message: tldr})
	return nil
}

// ExtractActions extracts action items from body and prepends them to the
// task list. A missing or blank body is ignored silently. If the displayed
// emails change while the request is in flight the result is dropped and
// the user is told.
func (s *ActionService) ExtractActions(ctx context.Context, body *string) error {
	text := api.StringValue(body)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	epoch := s.state.Epoch()
	found, err := s.api.ExtractActions(ctx, text)
	if err != nil {
		return ClassifyRemoteError(err)
	}

	if len(found) == 0 {
		s.notify(ctx, Notice{Level: NoticeNoResult, Message: MsgNoActionItems})
		return nil
	}

	if !s.tasks.MergeAt(epoch, found) {
		s.debugf("dropping %d extracted tasks for a view that is no longer shown", len(found))
		s.notify(ctx, Notice{Level: NoticeNoResult, Message: MsgTasksDiscarded})
		return nil
	}
	s.debugf("merged %d extracted tasks", len(found))
	return nil
}

func (s *ActionService) notify(ctx context.Context, n Notice) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, n)
	}
}

func (s *ActionService) debugf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
