package tui

import (
	"fmt"
	"strings"

	"github.com/ajramos/mailbrief/internal/render"
	"github.com/ajramos/mailbrief/internal/services"
	"github.com/derailed/tview"
)

// Empty-state hints
const (
	HintChooseRange = "Choose a date range and press Generate."
	HintNoEmails    = "No emails listed yet."
	HintNoTasks     = "Choose Extract tasks on any email."
	HintLoading     = "Loading…"
)

// sessionLabel is the header button caption for a session state
func sessionLabel(connected bool) string {
	if connected {
		return "Logout"
	}
	return "Connect"
}

// paneTitle formats "Name (n)"; the count is hidden while empty
func paneTitle(name string, n int) string {
	if n == 0 {
		return name
	}
	return fmt.Sprintf("%s (%d)", name, n)
}

// summaryLines returns the summary pane content as plain lines
func summaryLines(s services.Snapshot) []string {
	if s.Loading {
		return []string{HintLoading}
	}
	if len(s.Highlights) == 0 {
		return []string{HintChooseRange}
	}
	lines := make([]string, 0, len(s.Highlights))
	for _, h := range s.Highlights {
		lines = append(lines, render.HighlightLine(h))
	}
	return lines
}

// render draws a snapshot. Must run on the UI goroutine.
func (a *App) render(s services.Snapshot) {
	a.snap = s

	if header, ok := a.views["header"].(*tview.TextView); ok {
		header.SetText(a.headerText(s))
	}
	if btn, ok := a.views["session"].(*tview.Button); ok {
		btn.SetLabel(sessionLabel(s.Connected))
	}

	a.renderSummary(s)
	a.renderEmails(s)
	a.renderTasks(s)
}

// headerText shows the app name, session state and the active range
func (a *App) headerText(s services.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%smailbrief%s  ", a.GetColorTag("logo"), a.GetEndTag())
	if s.Connected {
		fmt.Fprintf(&b, "%s● connected%s", a.GetColorTag("connected"), a.GetEndTag())
	} else {
		fmt.Fprintf(&b, "%s○ not connected%s", a.GetColorTag("disconnected"), a.GetEndTag())
	}
	fmt.Fprintf(&b, "  %s%s → %s%s", a.GetColorTag("hint"), s.Range.Start, s.Range.End, a.GetEndTag())
	if s.Loading {
		fmt.Fprintf(&b, "  %s%s%s", a.GetColorTag("highlight"), HintLoading, a.GetEndTag())
	}
	return b.String()
}

func (a *App) renderSummary(s services.Snapshot) {
	view, ok := a.views[paneSummary].(*tview.TextView)
	if !ok {
		return
	}
	a.setPaneTitle(paneSummary, paneTitle("Summary", len(s.Highlights)))

	lines := summaryLines(s)
	tag := a.GetColorTag("highlight")
	if s.Loading || len(s.Highlights) == 0 {
		tag = a.GetColorTag("hint")
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(tag + tview.Escape(l) + a.GetEndTag() + "\n")
	}
	view.SetText(b.String())
	view.ScrollToBeginning()
}

func (a *App) renderEmails(s services.Snapshot) {
	table, ok := a.views[paneEmails].(*tview.Table)
	if !ok {
		return
	}
	a.setPaneTitle(paneEmails, paneTitle("Emails", len(s.Emails)))

	prevRow, _ := table.GetSelection()
	table.Clear()

	if s.Loading || len(s.Emails) == 0 {
		hint := HintNoEmails
		if s.Loading {
			hint = HintLoading
		}
		table.SetCell(0, 0, tview.NewTableCell(hint).
			SetSelectable(false).
			SetTextColor(a.getHintColor()).
			SetExpansion(1))
		a.showPreview(-1)
		return
	}

	_, _, width, _ := table.GetInnerRect()
	if width <= 0 {
		width = 60
	}
	subjectColor, fromColor := a.fgColor(), a.getHintColor()
	if a.currentTheme != nil {
		subjectColor = a.currentTheme.List.SubjectColor.Color()
		fromColor = a.currentTheme.List.FromColor.Color()
	}
	for i, e := range s.Emails {
		table.SetCell(i, 0, tview.NewTableCell(render.Subject(e)).
			SetTextColor(subjectColor).
			SetExpansion(1).
			SetMaxWidth(max(width*2/3, 1)))
		table.SetCell(i, 1, tview.NewTableCell(render.Truncate(e.FromEmail, max(width/3, 1))).
			SetTextColor(fromColor).
			SetAlign(tview.AlignRight))
	}

	row := min(max(prevRow, 0), len(s.Emails)-1)
	table.Select(row, 0)
	a.showPreview(row)
}

// showPreview renders the email at row in the preview pane; -1 clears it
func (a *App) showPreview(row int) {
	view, ok := a.views[panePreview].(*tview.TextView)
	if !ok {
		return
	}
	if row < 0 || row >= len(a.snap.Emails) {
		view.SetText("")
		a.setPaneTitle(panePreview, "Email")
		return
	}
	e := a.snap.Emails[row]
	a.setPaneTitle(panePreview, render.Truncate(render.Subject(e), 40))
	view.SetText(render.EmailDetail(e))
	view.ScrollToBeginning()
}

func (a *App) renderTasks(s services.Snapshot) {
	table, ok := a.views[paneTasks].(*tview.Table)
	if !ok {
		return
	}
	a.setPaneTitle(paneTasks, paneTitle("Tasks", len(s.Tasks)))

	table.Clear()
	if len(s.Tasks) == 0 {
		table.SetCell(0, 0, tview.NewTableCell(HintNoTasks).
			SetSelectable(false).
			SetTextColor(a.getHintColor()).
			SetExpansion(1))
		return
	}

	taskColor, metaColor := a.fgColor(), a.getHintColor()
	if a.currentTheme != nil {
		taskColor = a.currentTheme.List.TaskColor.Color()
		metaColor = a.currentTheme.List.TaskMetaColor.Color()
	}
	for i, t := range s.Tasks {
		table.SetCell(i, 0, tview.NewTableCell(render.TaskTitle(t, 0)).
			SetTextColor(taskColor).
			SetExpansion(1))
		table.SetCell(i, 1, tview.NewTableCell(render.TaskMeta(t)).
			SetTextColor(metaColor).
			SetAlign(tview.AlignRight))
	}
	table.Select(0, 0)
}
