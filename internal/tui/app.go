package tui

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/ajramos/mailbrief/internal/config"
	"github.com/ajramos/mailbrief/internal/services"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// Page names
const (
	pageMain   = "main"
	pageNotice = "notice"
	pageHelp   = "help"
)

// Deps are the collaborators the App is built from
type Deps struct {
	Remote services.AssistantAPI
	Cache  services.CacheService // nil disables the summary cache
	Links  services.LinkService  // nil disables Connect
	Logger *log.Logger           // nil opens the default log file
	Now    func() time.Time
}

// App is the terminal UI. It renders services.State and forwards user
// actions to the services layer.
type App struct {
	*tview.Application
	Pages  *tview.Pages
	Config *config.Config
	Keys   config.KeyBindings

	ctx    context.Context
	cancel context.CancelFunc
	views  map[string]tview.Primitive

	// Focus cycling
	focusRing []string
	focusIdx  int

	// Core
	state   *services.State
	fetch   *services.FetchService
	tasks   *services.TaskService
	actions *services.ActionService
	session *services.SessionService

	// Last rendered snapshot, read by key handlers on the UI goroutine
	snap services.Snapshot

	noticeOpen bool
	helpOpen   bool
	uiReady    bool

	currentTheme *config.ColorsConfig
	errorHandler *ErrorHandler

	logger  *log.Logger
	logFile *os.File
}

// NewApp builds the UI and the services behind it
func NewApp(cfg *config.Config, deps Deps) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if deps.Remote == nil {
		return nil, errors.New("assistant API client is required")
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		Application: tview.NewApplication(),
		Pages:       tview.NewPages(),
		Config:      cfg,
		Keys:        cfg.Keys,
		ctx:         ctx,
		cancel:      cancel,
		views:       make(map[string]tview.Primitive),
		logger:      deps.Logger,
	}

	app.initLogger()
	app.currentTheme = app.loadTheme()
	app.applyTheme()

	app.initServices(deps, now())
	app.initComponents()
	app.initErrorHandler()
	app.bindKeys()

	app.SetBeforeDrawFunc(func(screen tcell.Screen) bool {
		if !app.uiReady {
			app.uiReady = true
		}
		return false
	})

	app.render(app.state.Snapshot())

	return app, nil
}

// initServices wires the orchestration core
func (a *App) initServices(deps Deps, now time.Time) {
	a.state = services.NewState(services.DefaultRange(now, a.Config.RangeDays))
	a.tasks = services.NewTaskService(a.state)

	a.fetch = services.NewFetchService(deps.Remote, a.state)
	a.fetch.SetLogger(a.logger)

	a.actions = services.NewActionService(deps.Remote, a.state, a.tasks, deps.Cache, services.NotifierFunc(a.Notify))
	a.actions.SetLogger(a.logger)

	a.session = services.NewSessionService(deps.Remote, a.state, deps.Links, deps.Cache)
	a.session.SetLogger(a.logger)
}

// initErrorHandler initializes the centralized error handler
func (a *App) initErrorHandler() {
	var statusView *tview.TextView
	if tv, ok := a.views["status"].(*tview.TextView); ok {
		statusView = tv
	}
	a.errorHandler = NewErrorHandler(a.Application, a, statusView, a.logger)
}

// GetErrorHandler returns the error handler
func (a *App) GetErrorHandler() *ErrorHandler {
	return a.errorHandler
}

// State returns the view state the UI renders
func (a *App) State() *services.State {
	return a.state
}

// Run probes the session and starts the event loop
func (a *App) Run() error {
	defer a.closeLogger()
	defer a.cancel()

	a.state.OnChange(a.onStateChange)

	a.SetRoot(a.Pages, true)
	a.focusView(a.focusRing[a.focusIdx])

	go a.probeSession()

	if a.logger != nil {
		a.logger.Printf("mailbrief UI started, range %s..%s", a.state.Range().Start, a.state.Range().End)
	}
	return a.Application.Run()
}

// onStateChange schedules a redraw. The state is read again on the UI
// goroutine so a queued draw never shows an older state than a later one.
func (a *App) onStateChange(services.Snapshot) {
	a.QueueUpdateDraw(a.renderLatest)
}

// renderLatest renders the current state; UI goroutine only
func (a *App) renderLatest() {
	a.render(a.state.Snapshot())
}

// Notify implements services.Notifier
func (a *App) Notify(ctx context.Context, n services.Notice) {
	if a.logger != nil {
		a.logger.Printf("notice (%s): %s", n.Level, n.Message)
	}
	a.QueueUpdateDraw(func() { a.showNotice(n) })
}

// quit stops the event loop
func (a *App) quit() {
	a.cancel()
	a.Stop()
}
