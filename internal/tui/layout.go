package tui

import (
	"fmt"
	"unicode"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// Pane names, in focus order
const (
	paneForm    = "form"
	paneSummary = "summary"
	paneEmails  = "emails"
	panePreview = "preview"
	paneTasks   = "tasks"
)

// Fixed pane heights
const (
	summaryHeight = 8
	tasksHeight   = 9
)

// initComponents builds the main page
func (a *App) initComponents() {
	rng := a.state.Range()

	header := tview.NewTextView().SetDynamicColors(true)
	header.SetBackgroundColor(a.bgColor())

	// Date range form
	start := a.newDateField("Start ", rng.Start)
	end := a.newDateField("End ", rng.End)
	form := tview.NewForm().
		SetHorizontal(true).
		AddFormItem(start).
		AddFormItem(end).
		AddButton("Generate", a.generate)
	form.SetBackgroundColor(a.bgColor())
	form.SetFieldBackgroundColor(a.borderColor(false))
	form.SetFieldTextColor(a.fgColor())
	form.SetLabelColor(a.getTitleColor())
	form.SetButtonBackgroundColor(a.borderColor(false))
	form.SetButtonTextColor(a.fgColor())
	a.framePane(form.Box, "Date range")

	sessionBtn := tview.NewButton(sessionLabel(false)).SetSelectedFunc(a.toggleSession)
	sessionBtn.SetBackgroundColor(a.borderColor(false))
	sessionBtn.SetLabelColor(a.fgColor())

	topRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(form, 0, 1, true).
		AddItem(tview.NewBox().SetBackgroundColor(a.bgColor()), 1, 0, false).
		AddItem(sessionBtn, 12, 0, false)

	summary := tview.NewTextView().SetDynamicColors(true).SetWrap(true).SetScrollable(true)
	summary.SetBackgroundColor(a.bgColor())
	a.framePane(summary.Box, "Summary")

	emails := tview.NewTable().SetSelectable(true, false)
	emails.SetBackgroundColor(a.bgColor())
	emails.SetSelectedStyle(a.getSelectionStyle())
	a.framePane(emails.Box, "Emails")
	emails.SetSelectionChangedFunc(func(row, _ int) {
		a.showPreview(row)
	})
	emails.SetSelectedFunc(func(row, _ int) {
		a.focusView(panePreview)
	})

	preview := tview.NewTextView().SetDynamicColors(false).SetWrap(true).SetWordWrap(true).SetScrollable(true)
	preview.SetBackgroundColor(a.bgColor())
	preview.SetTextColor(a.fgColor())
	a.framePane(preview.Box, "Email")

	middle := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(emails, 0, 1, false).
		AddItem(preview, 0, 1, false)

	tasks := tview.NewTable().SetSelectable(true, false)
	tasks.SetBackgroundColor(a.bgColor())
	tasks.SetSelectedStyle(a.getSelectionStyle())
	a.framePane(tasks.Box, "Tasks")

	status := tview.NewTextView().SetDynamicColors(true)
	status.SetBackgroundColor(a.bgColor())
	status.SetTextColor(a.GetStatusColor("info"))
	status.SetText(a.statusBaseline())

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(topRow, 3, 0, true).
		AddItem(summary, summaryHeight, 0, false).
		AddItem(middle, 0, 1, false).
		AddItem(tasks, tasksHeight, 0, false).
		AddItem(status, 1, 0, false)
	root.SetBackgroundColor(a.bgColor())

	a.views["header"] = header
	a.views["startField"] = start
	a.views["endField"] = end
	a.views[paneForm] = form
	a.views["session"] = sessionBtn
	a.views[paneSummary] = summary
	a.views[paneEmails] = emails
	a.views[panePreview] = preview
	a.views[paneTasks] = tasks
	a.views["status"] = status
	a.views["root"] = root

	a.focusRing = []string{paneForm, paneSummary, paneEmails, panePreview, paneTasks}
	a.focusIdx = 2

	a.Pages.AddPage(pageMain, root, true, true)
}

// newDateField builds a YYYY-MM-DD input
func (a *App) newDateField(label, value string) *tview.InputField {
	field := tview.NewInputField().
		SetLabel(label).
		SetText(value).
		SetFieldWidth(12).
		SetAcceptanceFunc(acceptDateRune)
	field.SetPlaceholder("YYYY-MM-DD")
	field.SetPlaceholderTextColor(a.getHintColor())
	return field
}

// acceptDateRune limits date input to digits and dashes, ten characters
func acceptDateRune(text string, last rune) bool {
	if len(text) > 10 {
		return false
	}
	return unicode.IsDigit(last) || last == '-'
}

// framePane applies the shared border and title style
func (a *App) framePane(box *tview.Box, title string) {
	box.SetBorder(a.Config.Layout.ShowBorders).
		SetBorderColor(a.borderColor(false)).
		SetBorderAttributes(tcell.AttrBold).
		SetTitleColor(a.getTitleColor()).
		SetTitleAlign(tview.AlignLeft)
	if a.Config.Layout.ShowTitles {
		box.SetTitle(fmt.Sprintf(" %s ", title))
	}
}

// setPaneTitle updates a pane title if titles are shown
func (a *App) setPaneTitle(name, title string) {
	if !a.Config.Layout.ShowTitles {
		return
	}
	if box := a.paneBox(name); box != nil {
		box.SetTitle(fmt.Sprintf(" %s ", title))
	}
}

func (a *App) paneBox(name string) *tview.Box {
	switch v := a.views[name].(type) {
	case *tview.Form:
		return v.Box
	case *tview.TextView:
		return v.Box
	case *tview.Table:
		return v.Box
	default:
		return nil
	}
}

// focusView focuses a pane and highlights its border
func (a *App) focusView(name string) {
	for i, pane := range a.focusRing {
		focused := pane == name
		if box := a.paneBox(pane); box != nil {
			box.SetBorderColor(a.borderColor(focused))
		}
		if focused {
			a.focusIdx = i
		}
	}
	if p, ok := a.views[name]; ok {
		a.SetFocus(p)
	}
}

// cycleFocus moves focus forward (delta 1) or back (delta -1)
func (a *App) cycleFocus(delta int) {
	n := len(a.focusRing)
	a.focusIdx = ((a.focusIdx+delta)%n + n) % n
	a.focusView(a.focusRing[a.focusIdx])
}
