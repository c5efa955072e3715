package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/ajramos/mailbrief/internal/api"
)

// DateLayout is the calendar date format used for ranges
const DateLayout = "2006-01-02"

// DateRange is the active [Start, End] window. Start <= End is not enforced.
type DateRange struct {
	Start string
	End   string
}

// DefaultRange returns the window of `days` days ending on now's UTC date
func DefaultRange(now time.Time, days int) DateRange {
	if days <= 0 {
		days = 7
	}
	end := now.UTC()
	return DateRange{
		Start: end.AddDate(0, 0, -days).Format(DateLayout),
		End:   end.Format(DateLayout),
	}
}

// ValidateDate reports whether s is a YYYY-MM-DD calendar date
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return nil
}

// Snapshot is a read-only copy of the view state
type Snapshot struct {
	Range      DateRange
	Loading    bool
	Connected  bool
	Highlights []string
	Emails     []api.EmailMessage
	Tasks      []api.Task
}

// State owns all session and view state. Mutation only happens through its
// methods; listeners are called after every change, outside the state lock.
// Deliveries are serialized and each carries the state as of its delivery,
// so the last snapshot a listener sees is never older than the state.
// Listeners must not mutate the State.
type State struct {
	mu         sync.RWMutex
	rng        DateRange
	loading    bool
	connected  bool
	highlights []string
	emails     []api.EmailMessage
	tasks      []api.Task

	// fetchSeq is the token of the most recently issued fetch
	fetchSeq uint64
	// epoch changes whenever the displayed email set is replaced or cleared
	epoch uint64

	listenersMu sync.RWMutex
	listeners   []func(Snapshot)

	// notifyMu orders snapshot-and-deliver across goroutines
	notifyMu sync.Mutex
}

// NewState creates a state holder with the given initial range
func NewState(rng DateRange) *State {
	return &State{
		rng:        rng,
		highlights: []string{},
		emails:     []api.EmailMessage{},
		tasks:      []api.Task{},
	}
}

// OnChange registers fn to be called with a fresh snapshot after each change
func (s *State) OnChange(fn func(Snapshot)) {
	if fn == nil {
		return
	}
	s.listenersMu.Lock()
	s.listeners = append(s.listeners, fn)
	s.listenersMu.Unlock()
}

func (s *State) notify() {
	s.listenersMu.RLock()
	ls := make([]func(Snapshot), len(s.listeners))
	copy(ls, s.listeners)
	s.listenersMu.RUnlock()
	if len(ls) == 0 {
		return
	}

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	snap := s.Snapshot()
	for _, fn := range ls {
		fn(snap)
	}
}

// Snapshot returns a copy of the current state
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Range:      s.rng,
		Loading:    s.loading,
		Connected:  s.connected,
		Highlights: append([]string{}, s.highlights...),
		Emails:     append([]api.EmailMessage{}, s.emails...),
		Tasks:      append([]api.Task{}, s.tasks...),
	}
}

// Range returns the active date window
func (s *State) Range() DateRange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rng
}

// SetStart updates the window start
func (s *State) SetStart(date string) error {
	if err := ValidateDate(date); err != nil {
		return err
	}
	s.mu.Lock()
	s.rng.Start = date
	s.mu.Unlock()
	s.notify()
	return nil
}

// SetEnd updates the window end
func (s *State) SetEnd(date string) error {
	if err := ValidateDate(date); err != nil {
		return err
	}
	s.mu.Lock()
	s.rng.End = date
	s.mu.Unlock()
	s.notify()
	return nil
}

// Connected reports the session flag
func (s *State) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// SetConnected records the session flag
func (s *State) SetConnected(connected bool) {
	s.mu.Lock()
	changed := s.connected != connected
	s.connected = connected
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// Loading reports whether the latest fetch is still outstanding
func (s *State) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Epoch identifies the currently displayed email set
func (s *State) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// beginFetch issues a new fetch token and raises the loading flag
func (s *State) beginFetch() uint64 {
	s.mu.Lock()
	s.fetchSeq++
	token := s.fetchSeq
	s.loading = true
	s.mu.Unlock()
	s.notify()
	return token
}

// isLatest reports whether token is still the most recently issued fetch
func (s *State) isLatest(token uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return token == s.fetchSeq
}

// commitFetch replaces emails and highlights and clears tasks in one step.
// It returns false without touching anything when token is stale.
func (s *State) commitFetch(token uint64, emails []api.EmailMessage, highlights []string) bool {
	s.mu.Lock()
	if token != s.fetchSeq {
		s.mu.Unlock()
		return false
	}
	s.emails = append([]api.EmailMessage{}, emails...)
	s.highlights = append([]string{}, highlights...)
	s.tasks = []api.Task{}
	s.epoch++
	s.mu.Unlock()
	s.notify()
	return true
}

// endFetch lowers the loading flag if token is still the latest fetch
func (s *State) endFetch(token uint64) {
	s.mu.Lock()
	if token != s.fetchSeq || !s.loading {
		s.mu.Unlock()
		return
	}
	s.loading = false
	s.mu.Unlock()
	s.notify()
}

// mergeTasksAt prepends batch ahead of the existing tasks, keeping batch
// order, but only while the displayed email set is still epoch. No
// deduplication is performed. An empty batch changes nothing.
func (s *State) mergeTasksAt(epoch uint64, batch []api.Task) bool {
	if len(batch) == 0 {
		return true
	}
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return false
	}
	s.tasks = prependTasks(batch, s.tasks)
	s.mu.Unlock()
	s.notify()
	return true
}

// Tasks returns a copy of the accumulated tasks, newest batch first
func (s *State) Tasks() []api.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]api.Task{}, s.tasks...)
}

// Reset ends the session: disconnected, all fetched data and tasks cleared,
// and any outstanding fetch invalidated.
func (s *State) Reset() {
	s.mu.Lock()
	s.connected = false
	s.highlights = []string{}
	s.emails = []api.EmailMessage{}
	s.tasks = []api.Task{}
	s.fetchSeq++
	s.loading = false
	s.epoch++
	s.mu.Unlock()
	s.notify()
}

func prependTasks(batch, existing []api.Task) []api.Task {
	out := make([]api.Task, 0, len(batch)+len(existing))
	out = append(out, batch...)
	return append(out, existing...)
}
