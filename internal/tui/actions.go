package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ajramos/mailbrief/internal/api"
	"github.com/ajramos/mailbrief/internal/services"
	"github.com/derailed/tview"
)

// Network calls run off the UI goroutine. Results reach the screen through
// the state change listener or the ErrorHandler, both of which queue draws.

// generate applies the form range and starts a fetch
func (a *App) generate() {
	if err := a.applyRange(); err != nil {
		a.errorHandler.ShowWarning(a.ctx, err.Error())
		return
	}

	go a.runFetch(a.snap.Connected)
}

// runFetch re-checks a signed-out session, since sign-in finishes in the
// browser, then fetches the range and reports the outcome on the status bar.
func (a *App) runFetch(connected bool) {
	if !connected {
		a.probeSession()
	}

	a.errorHandler.ShowProgress(a.ctx, "Fetching emails and highlights…")
	err := a.fetch.Run(a.ctx)
	if errors.Is(err, services.ErrSuperseded) {
		a.errorHandler.HandleError(a.ctx, err, "")
		// a newer fetch owns the progress message; after a logout nobody does
		if !a.state.Loading() {
			a.errorHandler.ClearProgress()
		}
		return
	}
	a.errorHandler.ClearProgress()
	if err != nil {
		a.errorHandler.ShowRemoteError(a.ctx, "Fetch", err)
		return
	}

	snap := a.state.Snapshot()
	a.errorHandler.ShowSuccess(a.ctx, fmt.Sprintf("%d emails, %d highlights", len(snap.Emails), len(snap.Highlights)))
}

// applyRange copies the form fields into the state
func (a *App) applyRange() error {
	start, _ := a.views["startField"].(*tview.InputField)
	end, _ := a.views["endField"].(*tview.InputField)
	if start == nil || end == nil {
		return nil
	}

	if err := a.state.SetStart(strings.TrimSpace(start.GetText())); err != nil {
		return fmt.Errorf("start date must be YYYY-MM-DD")
	}
	if err := a.state.SetEnd(strings.TrimSpace(end.GetText())); err != nil {
		return fmt.Errorf("end date must be YYYY-MM-DD")
	}
	return nil
}

// selectedEmail returns the email under the cursor in the emails pane
func (a *App) selectedEmail() (api.EmailMessage, bool) {
	table, ok := a.views[paneEmails].(*tview.Table)
	if !ok {
		return api.EmailMessage{}, false
	}
	row, _ := table.GetSelection()
	if row < 0 || row >= len(a.snap.Emails) {
		return api.EmailMessage{}, false
	}
	return a.snap.Emails[row], true
}

// summarizeSelected summarizes the selected email
func (a *App) summarizeSelected() {
	email, ok := a.selectedEmail()
	if !ok {
		a.errorHandler.ShowWarning(a.ctx, "No email selected")
		return
	}
	body := email.BodyText

	go func() {
		a.errorHandler.ShowProgress(a.ctx, "Summarizing…")
		err := a.actions.Summarize(a.ctx, body)
		a.errorHandler.ClearProgress()
		if err != nil {
			a.errorHandler.ShowRemoteError(a.ctx, "Summarize", err)
		}
	}()
}

// extractSelected extracts action items from the selected email
func (a *App) extractSelected() {
	email, ok := a.selectedEmail()
	if !ok {
		a.errorHandler.ShowWarning(a.ctx, "No email selected")
		return
	}
	body := email.BodyText

	go func() {
		before := len(a.tasks.Tasks())
		a.errorHandler.ShowProgress(a.ctx, "Extracting tasks…")
		err := a.actions.ExtractActions(a.ctx, body)
		a.errorHandler.ClearProgress()
		if err != nil {
			a.errorHandler.ShowRemoteError(a.ctx, "Extract", err)
			return
		}
		if added := len(a.tasks.Tasks()) - before; added > 0 {
			a.errorHandler.ShowSuccess(a.ctx, fmt.Sprintf("%d tasks added", added))
		}
	}()
}

// toggleSession is the header button: Connect when signed out, Logout when signed in
func (a *App) toggleSession() {
	if a.snap.Connected {
		a.logout()
	} else {
		a.connect()
	}
}

func (a *App) connect() {
	go func() {
		if err := a.session.Connect(a.ctx); err != nil {
			a.errorHandler.ShowRemoteError(a.ctx, "Connect", err)
			return
		}
		a.errorHandler.ShowInfo(a.ctx, fmt.Sprintf("Finish sign-in in your browser, then press %s", a.Keys.Generate))
	}()
}

func (a *App) logout() {
	go func() {
		if err := a.session.Logout(a.ctx); err != nil {
			a.errorHandler.ShowRemoteError(a.ctx, "Logout", err)
			return
		}
		a.errorHandler.ShowSuccess(a.ctx, "Logged out")
	}()
}

// probeSession refreshes the connected flag
func (a *App) probeSession() {
	connected := a.session.Probe(a.ctx)
	if a.logger != nil {
		a.logger.Printf("session probe: connected=%t", connected)
	}
}
