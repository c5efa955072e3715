package services

import (
	"context"
	"fmt"
	"log"
)

// SessionService tracks whether the backend holds mailbox credentials
type SessionService struct {
	api    AssistantAPI
	state  *State
	links  LinkService
	cache  CacheService
	logger *log.Logger
}

// NewSessionService creates a session tracker. links and cache may be nil.
func NewSessionService(remote AssistantAPI, state *State, links LinkService, cache CacheService) *SessionService {
	return &SessionService{api: remote, state: state, links: links, cache: cache}
}

// SetLogger sets an optional debug logger
func (s *SessionService) SetLogger(logger *log.Logger) {
	s.logger = logger
}

// Probe asks the backend whether a session exists. Any failure means
// disconnected; the error is logged and never returned.
func (s *SessionService) Probe(ctx context.Context) bool {
	connected, err := s.api.AuthStatus(ctx)
	if err != nil {
		s.debugf("auth status probe failed, treating as disconnected: %v", err)
		connected = false
	}
	s.state.SetConnected(connected)
	return connected
}

// Logout ends the session. Local state is reset whether or not the remote
// call succeeds; a remote failure is still returned for reporting.
func (s *SessionService) Logout(ctx context.Context) error {
	remoteErr := s.api.Logout(ctx)

	s.state.Reset()
	if s.cache != nil {
		if err := s.cache.ClearCache(ctx); err != nil {
			s.debugf("failed to clear summary cache on logout: %v", err)
		}
	}

	if remoteErr != nil {
		return ClassifyRemoteError(remoteErr)
	}
	return nil
}

// Connect starts the provider consent flow and hands the URL to the browser.
// It returns as soon as the browser has been launched; completion is only
// observed by a later Probe.
func (s *SessionService) Connect(ctx context.Context) error {
	authURL, err := s.api.StartAuth(ctx)
	if err != nil {
		return ClassifyRemoteError(err)
	}
	s.debugf("opening consent page %s", authURL)
	if s.links == nil {
		return nil
	}
	if err := s.links.OpenLink(ctx, authURL); err != nil {
		return fmt.Errorf("open consent page: %w", err)
	}
	return nil
}

func (s *SessionService) debugf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
