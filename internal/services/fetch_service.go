package services

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/ajramos/mailbrief/internal/api"
)

// FetchService loads emails and highlights for the active range
type FetchService struct {
	api    AssistantAPI
	state  *State
	logger *log.Logger
}

// NewFetchService creates a fetch orchestrator
func NewFetchService(remote AssistantAPI, state *State) *FetchService {
	return &FetchService{api: remote, state: state}
}

// SetLogger sets an optional debug logger
func (s *FetchService) SetLogger(logger *log.Logger) {
	s.logger = logger
}

// Run fetches the email list and the highlights for the current range in
// parallel and commits them together. On success the task list is cleared.
// On failure nothing is replaced. The loading flag is lowered on every exit
// unless a newer fetch has started, in which case this one's outcome is
// dropped and ErrSuperseded is returned.
func (s *FetchService) Run(ctx context.Context) error {
	rng := s.state.Range()
	token := s.state.beginFetch()
	defer s.state.endFetch(token)

	var (
		emails     []api.EmailMessage
		highlights []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		emails, err = s.api.ListEmails(gctx, rng.Start, rng.End)
		if err != nil {
			return fmt.Errorf("list emails: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		highlights, err = s.api.GetHighlights(gctx, rng.Start, rng.End)
		if err != nil {
			return fmt.Errorf("get highlights: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		if !s.state.isLatest(token) {
			s.debugf("fetch %d failed after being superseded: %v", token, err)
			return fmt.Errorf("%w: %w", ErrSuperseded, err)
		}
		return ClassifyRemoteError(err)
	}

	if !s.state.commitFetch(token, emails, highlights) {
		s.debugf("fetch %d superseded, dropping %d emails", token, len(emails))
		return ErrSuperseded
	}
	s.debugf("fetch %d committed: %d emails, %d highlights (%s..%s)", token, len(emails), len(highlights), rng.Start, rng.End)
	return nil
}

func (s *FetchService) debugf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
