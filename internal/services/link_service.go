package services

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// LinkServiceImpl implements LinkService
type LinkServiceImpl struct {
	// start launches the command; swapped in tests
	start func(cmd *exec.Cmd) error
}

// NewLinkService creates a new link service
func NewLinkService() *LinkServiceImpl {
	return &LinkServiceImpl{start: func(cmd *exec.Cmd) error { return cmd.Start() }}
}

// OpenLink opens a URL using the system default browser. It does not wait
// for the browser to exit.
func (s *LinkServiceImpl) OpenLink(ctx context.Context, rawURL string) error {
	if err := s.ValidateURL(rawURL); err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	cmd, err := browserCommand(ctx, runtime.GOOS, rawURL)
	if err != nil {
		return err
	}
	if err := s.start(cmd); err != nil {
		return fmt.Errorf("failed to open URL: %w", err)
	}
	return nil
}

// ValidateURL accepts only absolute http(s) URLs with a host
func (s *LinkServiceImpl) ValidateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return fmt.Errorf("URL cannot be empty")
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}

	switch strings.ToLower(parsedURL.Scheme) {
	case "http", "https":
	case "":
		return fmt.Errorf("URL missing scheme")
	default:
		return fmt.Errorf("unsupported URL scheme: %s", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("URL missing host")
	}
	return nil
}

func browserCommand(ctx context.Context, goos, rawURL string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.CommandContext(ctx, "open", rawURL), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.CommandContext(ctx, "xdg-open", rawURL), nil
	case "windows":
		return exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", rawURL), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
