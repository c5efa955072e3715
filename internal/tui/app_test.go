package tui

import (
	"bytes"
	"context"
	"io"
	"log"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ajramos/mailbrief/internal/api"
	"github.com/ajramos/mailbrief/internal/config"
	"github.com/ajramos/mailbrief/internal/services"
	"github.com/derailed/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRemote answers nothing; render tests never reach the network
type stubRemote struct{}

func (stubRemote) ListEmails(context.Context, string, string) ([]api.EmailMessage, error) {
	return nil, nil
}
func (stubRemote) GetHighlights(context.Context, string, string) ([]string, error) { return nil, nil }
func (stubRemote) SummarizeEmail(context.Context, string) (string, error)          { return "", nil }
func (stubRemote) ExtractActions(context.Context, string) ([]api.Task, error)      { return nil, nil }
func (stubRemote) AuthStatus(context.Context) (bool, error)                        { return false, nil }
func (stubRemote) StartAuth(context.Context) (string, error)                       { return "", nil }
func (stubRemote) Logout(context.Context) error                                    { return nil }

// fetchRemote blocks ListEmails until release is closed
type fetchRemote struct {
	stubRemote
	started chan struct{}
	release chan struct{}
}

func (r *fetchRemote) ListEmails(context.Context, string, string) ([]api.EmailMessage, error) {
	close(r.started)
	<-r.release
	return []api.EmailMessage{{ID: "late", FromEmail: "late@example.com"}}, nil
}

// signedInRemote reports a connected session and counts status checks
type signedInRemote struct {
	stubRemote
	statusCalls atomic.Int32
}

func (r *signedInRemote) AuthStatus(context.Context) (bool, error) {
	r.statusCalls.Add(1)
	return true, nil
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	return newTestAppWith(t, stubRemote{})
}

func newTestAppWith(t *testing.T, remote services.AssistantAPI) *App {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	app, err := NewApp(config.DefaultConfig(), Deps{
		Remote: remote,
		Logger: log.New(io.Discard, LogPrefix, LogFlags),
		Now:    func() time.Time { return time.Date(2024, 1, 8, 15, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return app
}

func TestNewApp_RequiresDeps(t *testing.T) {
	_, err := NewApp(nil, Deps{Remote: stubRemote{}})
	assert.Error(t, err)

	_, err = NewApp(config.DefaultConfig(), Deps{})
	assert.Error(t, err)
}

func TestNewApp_InitialView(t *testing.T) {
	app := newTestApp(t)

	rng := app.State().Range()
	assert.Equal(t, services.DateRange{Start: "2024-01-01", End: "2024-01-08"}, rng)

	start := app.views["startField"].(*tview.InputField)
	end := app.views["endField"].(*tview.InputField)
	assert.Equal(t, "2024-01-01", start.GetText())
	assert.Equal(t, "2024-01-08", end.GetText())

	emails := app.views[paneEmails].(*tview.Table)
	assert.Equal(t, HintNoEmails, emails.GetCell(0, 0).Text)
	tasks := app.views[paneTasks].(*tview.Table)
	assert.Equal(t, HintNoTasks, tasks.GetCell(0, 0).Text)

	btn := app.views["session"].(*tview.Button)
	assert.Equal(t, "Connect", btn.GetLabel())

	assert.NotNil(t, app.GetErrorHandler())
	assert.FileExists(t, config.DefaultThemesDir()+"/default.yaml")
}

func TestApp_RenderSnapshot(t *testing.T) {
	app := newTestApp(t)

	snap := services.Snapshot{
		Range:      services.DateRange{Start: "2024-01-01", End: "2024-01-08"},
		Connected:  true,
		Highlights: []string{"Quarterly report due", "Team offsite moved"},
		Emails: []api.EmailMessage{
			{ID: "1", Subject: api.StringPtr("Report"), FromEmail: "boss@example.com", BodyText: api.StringPtr("Please send the report by Friday")},
			{ID: "2", FromEmail: "news@example.com"},
		},
		Tasks: []api.Task{
			{ID: "t1", Title: "Send the report", Assignee: "me", DueISO: api.StringPtr("2024-01-12")},
		},
	}
	app.render(snap)

	emails := app.views[paneEmails].(*tview.Table)
	assert.Equal(t, 2, emails.GetRowCount())
	assert.Equal(t, "Report", emails.GetCell(0, 0).Text)
	assert.Equal(t, "(no subject)", emails.GetCell(1, 0).Text)

	preview := app.views[panePreview].(*tview.TextView)
	assert.Contains(t, preview.GetText(false), "Please send the report by Friday")

	tasks := app.views[paneTasks].(*tview.Table)
	assert.Equal(t, "Send the report", tasks.GetCell(0, 0).Text)
	assert.Equal(t, "assignee: me • due: 2024-01-12", tasks.GetCell(0, 1).Text)

	btn := app.views["session"].(*tview.Button)
	assert.Equal(t, "Logout", btn.GetLabel())

	summary := app.views[paneSummary].(*tview.TextView)
	assert.Contains(t, summary.GetText(true), "• Quarterly report due")

	email, ok := app.selectedEmail()
	require.True(t, ok)
	assert.Equal(t, "1", email.ID)
}

func TestApp_RenderLoading(t *testing.T) {
	app := newTestApp(t)

	app.render(services.Snapshot{Loading: true})

	emails := app.views[paneEmails].(*tview.Table)
	assert.Equal(t, HintLoading, emails.GetCell(0, 0).Text)
	_, ok := app.selectedEmail()
	assert.False(t, ok)
}

func TestApp_ApplyRange(t *testing.T) {
	app := newTestApp(t)
	start := app.views["startField"].(*tview.InputField)
	end := app.views["endField"].(*tview.InputField)

	start.SetText("2024-02-30")
	assert.EqualError(t, app.applyRange(), "start date must be YYYY-MM-DD")

	start.SetText("2024-02-01")
	end.SetText("2024-02")
	assert.EqualError(t, app.applyRange(), "end date must be YYYY-MM-DD")

	end.SetText("2024-02-10")
	require.NoError(t, app.applyRange())
	assert.Equal(t, services.DateRange{Start: "2024-02-01", End: "2024-02-10"}, app.State().Range())
}

func TestResolveKey(t *testing.T) {
	keys := config.DefaultKeyBindings()

	testCases := []struct {
		r         rune
		connected bool
		want      keyAction
	}{
		{'g', false, actionGenerate},
		{'s', true, actionSummarize},
		{'e', true, actionExtract},
		{'c', false, actionConnect},
		{'c', true, actionNone},
		{'L', true, actionLogout},
		{'L', false, actionNone},
		{'d', false, actionFocusDate},
		{'?', false, actionHelp},
		{'q', true, actionQuit},
		{'z', true, actionNone},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, resolveKey(keys, tc.r, tc.connected), string(tc.r))
	}
}

func TestResolveKey_CustomBindings(t *testing.T) {
	keys := config.DefaultKeyBindings()
	keys.Generate = "r"
	keys.Connect = "L"

	assert.Equal(t, actionGenerate, resolveKey(keys, 'r', false))
	assert.Equal(t, actionNone, resolveKey(keys, 'g', false))
	// same key toggles the session
	assert.Equal(t, actionConnect, resolveKey(keys, 'L', false))
	assert.Equal(t, actionLogout, resolveKey(keys, 'L', true))
}

func TestSummaryLines(t *testing.T) {
	assert.Equal(t, []string{HintLoading}, summaryLines(services.Snapshot{Loading: true, Highlights: []string{"x"}}))
	assert.Equal(t, []string{HintChooseRange}, summaryLines(services.Snapshot{}))
	assert.Equal(t, []string{"• a", "• b"}, summaryLines(services.Snapshot{Highlights: []string{"a", "b"}}))
}

func TestPaneTitle(t *testing.T) {
	assert.Equal(t, "Emails", paneTitle("Emails", 0))
	assert.Equal(t, "Emails (3)", paneTitle("Emails", 3))
}

func TestSessionLabel(t *testing.T) {
	assert.Equal(t, "Connect", sessionLabel(false))
	assert.Equal(t, "Logout", sessionLabel(true))
}

func TestNoticeTitle(t *testing.T) {
	assert.Equal(t, "Summary", noticeTitle(services.NoticeSummary))
	assert.Equal(t, "Nothing found", noticeTitle(services.NoticeNoResult))
	assert.Equal(t, "Notice", noticeTitle(services.NoticeUsage))
}

func TestAcceptDateRune(t *testing.T) {
	assert.True(t, acceptDateRune("2024", '4'))
	assert.True(t, acceptDateRune("2024-", '-'))
	assert.False(t, acceptDateRune("2024a", 'a'))
	assert.False(t, acceptDateRune("2024-01-011", '1'))
}

func TestHelpAndBaselineText(t *testing.T) {
	keys := config.DefaultKeyBindings()

	base := baselineText(keys)
	assert.Contains(t, base, "g generate")
	assert.Contains(t, base, "q quit")

	help := helpText(keys)
	assert.Contains(t, help, "Summarize the selected email")
	assert.Contains(t, help, "Log out (when signed in)")
}

func TestApp_ShowAndCloseNotice(t *testing.T) {
	app := newTestApp(t)

	app.showNotice(services.Notice{Level: services.NoticeUsage, Message: services.MsgNoBodyToSummarize})
	assert.True(t, app.noticeOpen)
	assert.True(t, app.Pages.HasPage(pageNotice))

	app.closeOverlay(pageNotice)
	assert.False(t, app.noticeOpen)
	assert.False(t, app.Pages.HasPage(pageNotice))
}

func TestApp_NoticeClosesHelp(t *testing.T) {
	app := newTestApp(t)

	app.showHelp()
	require.True(t, app.helpOpen)

	app.showNotice(services.Notice{Level: services.NoticeSummary, Message: "tl;dr"})
	assert.False(t, app.helpOpen)
	assert.False(t, app.Pages.HasPage(pageHelp))
	assert.True(t, app.noticeOpen)
}

// detachStatus keeps status updates off the tview queue, which only drains
// while the event loop runs
func detachStatus(app *App) {
	app.errorHandler = NewErrorHandler(nil, app, nil, app.logger)
}

func progressText(eh *ErrorHandler) string {
	eh.mu.RLock()
	defer eh.mu.RUnlock()
	return eh.persistentStatus
}

func TestApp_RunFetch_LogoutDuringFetchClearsProgress(t *testing.T) {
	remote := &fetchRemote{started: make(chan struct{}), release: make(chan struct{})}
	app := newTestAppWith(t, remote)
	detachStatus(app)

	done := make(chan struct{})
	go func() {
		app.runFetch(true)
		close(done)
	}()

	<-remote.started
	assert.NotEmpty(t, progressText(app.errorHandler))
	assert.True(t, app.State().Loading())

	require.NoError(t, app.session.Logout(app.ctx))
	close(remote.release)
	<-done

	assert.Empty(t, progressText(app.errorHandler))
	snap := app.State().Snapshot()
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Emails)
}

func TestApp_RunFetch_RechecksSignedOutSession(t *testing.T) {
	remote := &signedInRemote{}
	app := newTestAppWith(t, remote)
	detachStatus(app)

	app.runFetch(false)
	assert.Equal(t, int32(1), remote.statusCalls.Load())
	assert.True(t, app.State().Connected())
	assert.Empty(t, progressText(app.errorHandler))

	app.runFetch(true)
	assert.Equal(t, int32(1), remote.statusCalls.Load())
}

func TestApp_RenderLatestReadsCurrentState(t *testing.T) {
	app := newTestApp(t)

	app.State().SetConnected(true)
	app.renderLatest()

	btn := app.views["session"].(*tview.Button)
	assert.Equal(t, "Logout", btn.GetLabel())
	assert.True(t, app.snap.Connected)
}

func TestApp_MissingThemeListsAvailable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := config.DefaultConfig()
	cfg.Layout.CurrentTheme = "solarized"
	var buf bytes.Buffer

	app, err := NewApp(cfg, Deps{Remote: stubRemote{}, Logger: log.New(&buf, "", 0)})
	require.NoError(t, err)

	assert.Equal(t, config.DefaultColors(), app.currentTheme)
	assert.Contains(t, buf.String(), `theme: "solarized" not found (available: default)`)
}
