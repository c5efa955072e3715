package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"google.golang.org/api/googleapi"
)

var (
	// Network and connectivity errors
	ErrNetworkUnavailable = errors.New("network unavailable")
	ErrTimeout            = errors.New("operation timed out")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrForbidden          = errors.New("access forbidden")

	// Data errors
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidInput  = errors.New("invalid input provided")
	ErrInvalidFormat = errors.New("invalid format")
	ErrInvalidDate   = errors.New("invalid calendar date")

	// Service errors
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrRateLimited        = errors.New("rate limited")
	ErrRemote             = errors.New("remote request failed")

	// ErrSuperseded marks a fetch whose results were discarded because a newer
	// fetch (or a logout) happened while it was in flight.
	ErrSuperseded = errors.New("superseded by a newer request")
)

// ClassifyRemoteError wraps err with the sentinel that best describes it,
// keeping the original error in the chain.
func ClassifyRemoteError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == http.StatusUnauthorized:
			return fmt.Errorf("%w: %w", ErrUnauthorized, err)
		case gerr.Code == http.StatusForbidden:
			return fmt.Errorf("%w: %w", ErrForbidden, err)
		case gerr.Code == http.StatusNotFound:
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		case gerr.Code == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %w", ErrRateLimited, err)
		case gerr.Code == http.StatusBadRequest || gerr.Code == http.StatusUnprocessableEntity:
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		case gerr.Code >= 500:
			return fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
		}
		return fmt.Errorf("%w: %w", ErrRemote, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	var nerr net.Error
	if errors.As(err, &nerr) {
		if nerr.Timeout() {
			return fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return fmt.Errorf("%w: %w", ErrNetworkUnavailable, err)
	}
	return fmt.Errorf("%w: %w", ErrRemote, err)
}
