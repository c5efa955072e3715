package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/ajramos/mailbrief/internal/services"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// LogLevel represents the severity of a message
type LogLevel int

const (
	LogLevelInfo LogLevel = iota
	LogLevelWarning
	LogLevelError
	LogLevelSuccess
)

// statusClearDelay is how long a transient status message stays up
const statusClearDelay = 5 * time.Second

// ErrorHandler provides consistent error handling and user feedback
type ErrorHandler struct {
	mu         sync.RWMutex
	app        *tview.Application
	appRef     *App // baseline status and theme colors
	statusView *tview.TextView
	logger     *log.Logger

	currentStatus    string
	persistentStatus string
	statusTimer      *time.Timer
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(app *tview.Application, appRef *App, statusView *tview.TextView, logger *log.Logger) *ErrorHandler {
	return &ErrorHandler{
		app:        app,
		appRef:     appRef,
		statusView: statusView,
		logger:     logger,
	}
}

// HandleError logs err and shows userMsg. Superseded fetches are only logged.
func (eh *ErrorHandler) HandleError(ctx context.Context, err error, userMsg string) {
	if err == nil {
		return
	}

	if errors.Is(err, services.ErrSuperseded) {
		if eh.logger != nil {
			eh.logger.Printf("DEBUG: ignored: %v", err)
		}
		return
	}

	if eh.logger != nil {
		eh.logger.Printf("ERROR: %v", err)
	}

	if userMsg == "" {
		userMsg = "An error occurred"
	}
	if hint := errorHint(err); hint != "" {
		userMsg = fmt.Sprintf("%s (%s)", userMsg, hint)
	}

	eh.ShowMessage(ctx, userMsg, LogLevelError)
}

// errorHint names the failure class for the status bar
func errorHint(err error) string {
	switch {
	case errors.Is(err, services.ErrNetworkUnavailable):
		return "backend unreachable"
	case errors.Is(err, services.ErrTimeout):
		return "timed out"
	case errors.Is(err, services.ErrUnauthorized), errors.Is(err, services.ErrForbidden):
		return "not connected"
	case errors.Is(err, services.ErrRateLimited):
		return "rate limited"
	case errors.Is(err, services.ErrServiceUnavailable):
		return "backend error"
	default:
		return ""
	}
}

// ShowMessage displays a message to the user
func (eh *ErrorHandler) ShowMessage(ctx context.Context, msg string, level LogLevel) {
	if strings.TrimSpace(msg) == "" {
		return
	}

	formattedMsg := eh.formatMessage(msg, level)

	if eh.logger != nil {
		eh.logger.Printf("%s: %s", eh.levelToString(level), msg)
	}

	if eh.app != nil {
		eh.app.QueueUpdateDraw(func() {
			eh.updateStatusMessage(formattedMsg, level)
		})
	}
}

// ShowProgress shows a status message that stays until ClearProgress
func (eh *ErrorHandler) ShowProgress(ctx context.Context, msg string) {
	formattedMsg := eh.formatMessage(msg, LogLevelInfo)

	eh.mu.Lock()
	eh.persistentStatus = formattedMsg
	eh.mu.Unlock()

	if eh.app != nil {
		eh.app.QueueUpdateDraw(func() {
			eh.mu.Lock()
			defer eh.mu.Unlock()
			eh.refreshStatusDisplay()
		})
	}
}

// ClearProgress clears any progress message
func (eh *ErrorHandler) ClearProgress() {
	eh.mu.Lock()
	eh.persistentStatus = ""
	eh.mu.Unlock()

	if eh.app != nil {
		eh.app.QueueUpdateDraw(func() {
			eh.mu.Lock()
			defer eh.mu.Unlock()
			eh.refreshStatusDisplay()
		})
	}
}

// formatMessage prefixes a message with its level marker
func (eh *ErrorHandler) formatMessage(msg string, level LogLevel) string {
	var marker string

	switch level {
	case LogLevelInfo:
		marker = "•"
	case LogLevelWarning:
		marker = "!"
	case LogLevelError:
		marker = "✗"
	case LogLevelSuccess:
		marker = "✓"
	default:
		marker = "-"
	}

	return fmt.Sprintf("%s %s", marker, tview.Escape(msg))
}

func (eh *ErrorHandler) levelToString(level LogLevel) string {
	switch level {
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarning:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelSuccess:
		return "SUCCESS"
	default:
		return "UNKNOWN"
	}
}

func (eh *ErrorHandler) levelToColor(level LogLevel) tcell.Color {
	switch level {
	case LogLevelWarning:
		return eh.appRef.getStatusColor("warning")
	case LogLevelError:
		return eh.appRef.getStatusColor("error")
	case LogLevelSuccess:
		return eh.appRef.getStatusColor("success")
	default:
		return eh.appRef.getStatusColor("info")
	}
}

// updateStatusMessage shows msg and schedules it to clear
func (eh *ErrorHandler) updateStatusMessage(msg string, level LogLevel) {
	if eh.statusView == nil {
		return
	}

	eh.mu.Lock()
	defer eh.mu.Unlock()

	if eh.statusTimer != nil {
		eh.statusTimer.Stop()
	}

	eh.currentStatus = msg
	eh.statusView.SetTextColor(eh.levelToColor(level))
	eh.refreshStatusDisplay()

	expected := msg
	eh.statusTimer = time.AfterFunc(statusClearDelay, func() {
		eh.clearCurrentStatus(expected)
	})
}

// clearCurrentStatus clears the status only if no newer message replaced it
func (eh *ErrorHandler) clearCurrentStatus(expectedMsg string) {
	if eh.app == nil {
		return
	}
	eh.app.QueueUpdateDraw(func() {
		eh.mu.Lock()
		defer eh.mu.Unlock()
		if eh.currentStatus == expectedMsg {
			eh.currentStatus = ""
			if eh.statusView != nil {
				eh.statusView.SetTextColor(eh.appRef.getStatusColor("info"))
			}
			eh.refreshStatusDisplay()
		}
	})
}

// refreshStatusDisplay must be called with mu held
func (eh *ErrorHandler) refreshStatusDisplay() {
	if eh.statusView == nil {
		return
	}

	var displayText string
	switch {
	case eh.currentStatus != "":
		displayText = eh.currentStatus
	case eh.persistentStatus != "":
		displayText = eh.persistentStatus
	default:
		displayText = eh.getBaselineStatus()
	}

	eh.statusView.SetText(displayText)
}

func (eh *ErrorHandler) getBaselineStatus() string {
	if eh.appRef != nil {
		return eh.appRef.statusBaseline()
	}
	return "mailbrief • ? help • q quit"
}

// ShowInfo shows an info message
func (eh *ErrorHandler) ShowInfo(ctx context.Context, msg string) {
	eh.ShowMessage(ctx, msg, LogLevelInfo)
}

// ShowWarning shows a warning message
func (eh *ErrorHandler) ShowWarning(ctx context.Context, msg string) {
	eh.ShowMessage(ctx, msg, LogLevelWarning)
}

// ShowSuccess shows a success message
func (eh *ErrorHandler) ShowSuccess(ctx context.Context, msg string) {
	eh.ShowMessage(ctx, msg, LogLevelSuccess)
}

// ShowRemoteError reports a failed backend call for operation
func (eh *ErrorHandler) ShowRemoteError(ctx context.Context, operation string, err error) {
	eh.HandleError(ctx, err, fmt.Sprintf("%s failed", operation))
}
