package tui

import (
	"fmt"
	"strings"

	"github.com/ajramos/mailbrief/internal/config"
)

// statusBaseline is shown when no message is active
func (a *App) statusBaseline() string {
	return baselineText(a.Keys)
}

func baselineText(keys config.KeyBindings) string {
	return fmt.Sprintf("mailbrief • %s generate • %s summarize • %s extract • Tab panes • %s help • %s quit",
		keys.Generate, keys.Summarize, keys.Extract, keys.Help, keys.Quit)
}

// helpText lists every shortcut
func helpText(keys config.KeyBindings) string {
	rows := [][2]string{
		{keys.Generate, "Fetch emails and highlights for the range"},
		{keys.Summarize, "Summarize the selected email"},
		{keys.Extract, "Extract tasks from the selected email"},
		{keys.Connect, "Connect account (when signed out)"},
		{keys.Logout, "Log out (when signed in)"},
		{keys.FocusDate, "Edit the date range"},
		{"Tab", "Next pane"},
		{"Shift+Tab", "Previous pane"},
		{"Enter", "Open email / run button"},
		{keys.Help, "Show this help"},
		{keys.Quit, "Quit"},
	}

	var b strings.Builder
	b.WriteString("[::b]Shortcuts[::-]\n\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "  [::b]%-10s[::-] %s\n", r[0], r[1])
	}
	return b.String()
}
