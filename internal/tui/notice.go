package tui

import (
	"github.com/ajramos/mailbrief/internal/services"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// noticeTitle returns the overlay title for a notice level
func noticeTitle(level services.NoticeLevel) string {
	switch level {
	case services.NoticeSummary:
		return "Summary"
	case services.NoticeNoResult:
		return "Nothing found"
	default:
		return "Notice"
	}
}

// showNotice opens a blocking overlay; Enter or Esc dismisses it
func (a *App) showNotice(n services.Notice) {
	if a.helpOpen {
		a.closeOverlay(pageHelp)
	}
	body := tview.NewTextView().SetWrap(true).SetWordWrap(true).SetScrollable(true)
	body.SetBackgroundColor(a.bgColor())
	body.SetTextColor(a.fgColor())
	body.SetText(n.Message)

	a.presentOverlay(pageNotice, noticeTitle(n.Level), body, 60, 12)
	a.noticeOpen = true
	body.SetDoneFunc(func(tcell.Key) { a.closeOverlay(pageNotice) })
}

// showHelp lists the configured shortcuts
func (a *App) showHelp() {
	body := tview.NewTextView().SetDynamicColors(true).SetWrap(true).SetScrollable(true)
	body.SetBackgroundColor(a.bgColor())
	body.SetTextColor(a.fgColor())
	body.SetText(helpText(a.Keys))

	a.presentOverlay(pageHelp, "Help", body, 56, 18)
	a.helpOpen = true
	body.SetDoneFunc(func(tcell.Key) { a.closeOverlay(pageHelp) })
}

// presentOverlay centers content above the main page
func (a *App) presentOverlay(page, title string, content *tview.TextView, width, height int) {
	content.SetBorder(true).
		SetBorderColor(a.borderColor(true)).
		SetTitle(" " + title + " ").
		SetTitleColor(a.getTitleColor())

	hint := tview.NewTextView().SetTextAlign(tview.AlignRight)
	hint.SetBackgroundColor(a.bgColor())
	hint.SetTextColor(a.getHintColor())
	hint.SetText(" Enter/Esc to close ")

	box := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(content, 0, 1, true).
		AddItem(hint, 1, 0, false)

	centered := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(box, height, 0, true).
			AddItem(nil, 0, 1, false), width, 0, true).
		AddItem(nil, 0, 1, false)

	if a.Pages.HasPage(page) {
		a.Pages.RemovePage(page)
	}
	a.Pages.AddPage(page, centered, true, true)
	a.SetFocus(content)
}

// closeOverlay removes an overlay and restores pane focus
func (a *App) closeOverlay(page string) {
	a.Pages.RemovePage(page)
	switch page {
	case pageNotice:
		a.noticeOpen = false
	case pageHelp:
		a.helpOpen = false
	}
	if a.noticeOpen {
		return
	}
	a.focusView(a.focusRing[a.focusIdx])
}
