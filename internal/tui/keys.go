package tui

import (
	"github.com/ajramos/mailbrief/internal/config"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// keyAction names a configurable shortcut
type keyAction int

const (
	actionNone keyAction = iota
	actionGenerate
	actionSummarize
	actionExtract
	actionConnect
	actionLogout
	actionFocusDate
	actionHelp
	actionQuit
)

// resolveKey maps a rune to the configured action. Connect and Logout share
// the toggle semantics of the header button, so each only fires in the
// session state where it makes sense.
func resolveKey(keys config.KeyBindings, r rune, connected bool) keyAction {
	key := string(r)
	switch key {
	case "":
		return actionNone
	case keys.Quit:
		return actionQuit
	case keys.Help:
		return actionHelp
	case keys.Generate:
		return actionGenerate
	case keys.Summarize:
		return actionSummarize
	case keys.Extract:
		return actionExtract
	case keys.FocusDate:
		return actionFocusDate
	}
	if key == keys.Logout && connected {
		return actionLogout
	}
	if key == keys.Connect && !connected {
		return actionConnect
	}
	return actionNone
}

// bindKeys installs the global input capture
func (a *App) bindKeys() {
	a.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// Overlays own the keyboard
		if a.noticeOpen || a.helpOpen {
			return event
		}

		switch event.Key() {
		case tcell.KeyTab:
			a.cycleFocus(1)
			return nil
		case tcell.KeyBacktab:
			a.cycleFocus(-1)
			return nil
		case tcell.KeyCtrlC:
			a.quit()
			return nil
		case tcell.KeyEscape:
			if a.focusRing[a.focusIdx] == paneForm {
				a.focusView(paneEmails)
				return nil
			}
			return event
		case tcell.KeyRune:
		default:
			return event
		}

		// Typing into the date fields
		if _, ok := a.GetFocus().(*tview.InputField); ok {
			return event
		}

		switch resolveKey(a.Keys, event.Rune(), a.snap.Connected) {
		case actionQuit:
			a.quit()
		case actionHelp:
			a.showHelp()
		case actionGenerate:
			a.generate()
		case actionSummarize:
			a.summarizeSelected()
		case actionExtract:
			a.extractSelected()
		case actionConnect:
			a.connect()
		case actionLogout:
			a.logout()
		case actionFocusDate:
			a.focusView(paneForm)
		default:
			return event
		}
		return nil
	})
}
