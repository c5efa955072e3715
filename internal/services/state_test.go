package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajramos/mailbrief/internal/api"
)

func TestDefaultRange(t *testing.T) {
	now := time.Date(2024, 1, 8, 23, 30, 0, 0, time.UTC)

	rng := DefaultRange(now, 7)
	assert.Equal(t, "2024-01-01", rng.Start)
	assert.Equal(t, "2024-01-08", rng.End)

	// non-positive falls back to a week
	assert.Equal(t, rng, DefaultRange(now, 0))
}

func TestDefaultRange_UsesUTCDate(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	// 2024-01-09 05:00 local is still 2024-01-08 in UTC
	now := time.Date(2024, 1, 9, 5, 0, 0, 0, loc)

	rng := DefaultRange(now, 7)
	assert.Equal(t, "2024-01-08", rng.End)
	assert.Equal(t, "2024-01-01", rng.Start)
}

func TestState_SetStartEnd(t *testing.T) {
	s := NewState(testRange())

	require.NoError(t, s.SetStart("2024-02-01"))
	require.NoError(t, s.SetEnd("2024-02-10"))
	assert.Equal(t, DateRange{Start: "2024-02-01", End: "2024-02-10"}, s.Range())

	// start after end is accepted
	require.NoError(t, s.SetStart("2024-03-01"))
	assert.Equal(t, "2024-03-01", s.Range().Start)
}

func TestState_SetStart_Invalid(t *testing.T) {
	s := NewState(testRange())

	for _, bad := range []string{"", "2024-1-1", "01/02/2024", "2024-02-30", "yesterday"} {
		t.Run(bad, func(t *testing.T) {
			err := s.SetStart(bad)
			assert.ErrorIs(t, err, ErrInvalidDate)
			assert.Equal(t, "2024-01-01", s.Range().Start)
		})
	}
	assert.ErrorIs(t, s.SetEnd("nope"), ErrInvalidDate)
	assert.Equal(t, "2024-01-08", s.Range().End)
}

func TestState_MergeTasksAt_PrependsBatch(t *testing.T) {
	s := NewState(testRange())
	t1 := api.Task{ID: "1", Title: "one"}
	t2 := api.Task{ID: "2", Title: "two"}
	t3 := api.Task{ID: "3", Title: "three"}

	s.mergeTasksAt(s.Epoch(), []api.Task{t1, t2})
	s.mergeTasksAt(s.Epoch(), []api.Task{t3})

	assert.Equal(t, []api.Task{t3, t1, t2}, s.Tasks())
}

func TestState_MergeTasksAt_NoDedup(t *testing.T) {
	s := NewState(testRange())
	t1 := api.Task{ID: "1", Title: "same"}

	s.mergeTasksAt(s.Epoch(), []api.Task{t1})
	s.mergeTasksAt(s.Epoch(), []api.Task{t1})

	assert.Len(t, s.Tasks(), 2)
}

func TestState_MergeTasksAt_EmptyIsNoop(t *testing.T) {
	s := NewState(testRange())
	s.mergeTasksAt(s.Epoch(), []api.Task{{ID: "1"}})

	calls := 0
	s.OnChange(func(Snapshot) { calls++ })

	s.mergeTasksAt(s.Epoch(), nil)
	s.mergeTasksAt(s.Epoch(), []api.Task{})

	assert.Equal(t, 0, calls)
	assert.Len(t, s.Tasks(), 1)
}

func TestState_SnapshotIsCopy(t *testing.T) {
	s := NewState(testRange())
	s.mergeTasksAt(s.Epoch(), []api.Task{{ID: "1", Title: "one"}})

	snap := s.Snapshot()
	snap.Tasks[0].Title = "changed"

	assert.Equal(t, "one", s.Tasks()[0].Title)
}

func TestState_FetchTokens(t *testing.T) {
	s := NewState(testRange())

	first := s.beginFetch()
	second := s.beginFetch()
	assert.Greater(t, second, first)
	assert.True(t, s.Loading())

	// stale commit is rejected and does not lower loading
	assert.False(t, s.commitFetch(first, []api.EmailMessage{email("a", "A", "x")}, nil))
	s.endFetch(first)
	assert.True(t, s.Loading())
	assert.Empty(t, s.Snapshot().Emails)

	assert.True(t, s.commitFetch(second, []api.EmailMessage{email("b", "B", "y")}, []string{"h"}))
	s.endFetch(second)
	assert.False(t, s.Loading())

	snap := s.Snapshot()
	assert.Len(t, snap.Emails, 1)
	assert.Equal(t, []string{"h"}, snap.Highlights)
}

func TestState_CommitClearsTasksAndBumpsEpoch(t *testing.T) {
	s := NewState(testRange())
	s.mergeTasksAt(s.Epoch(), []api.Task{{ID: "1"}})
	epoch := s.Epoch()

	token := s.beginFetch()
	require.True(t, s.commitFetch(token, nil, nil))

	assert.Empty(t, s.Tasks())
	assert.NotEqual(t, epoch, s.Epoch())
	assert.False(t, s.mergeTasksAt(epoch, []api.Task{{ID: "late"}}))
	assert.Empty(t, s.Tasks())
}

func TestState_Reset(t *testing.T) {
	s := NewState(testRange())
	s.SetConnected(true)
	token := s.beginFetch()
	require.True(t, s.commitFetch(token, []api.EmailMessage{email("a", "A", "x")}, []string{"h"}))
	s.mergeTasksAt(s.Epoch(), []api.Task{{ID: "1"}})
	pending := s.beginFetch()

	s.Reset()

	snap := s.Snapshot()
	assert.False(t, snap.Connected)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Emails)
	assert.Empty(t, snap.Highlights)
	assert.Empty(t, snap.Tasks)
	assert.Equal(t, testRange(), snap.Range)

	// a fetch issued before the reset can no longer commit
	assert.False(t, s.commitFetch(pending, []api.EmailMessage{email("b", "B", "y")}, nil))
}

func TestState_OnChangeReceivesSnapshot(t *testing.T) {
	s := NewState(testRange())

	var got []Snapshot
	s.OnChange(func(snap Snapshot) { got = append(got, snap) })
	s.OnChange(nil)

	s.SetConnected(true)
	s.SetConnected(true) // unchanged, no notification

	require.Len(t, got, 1)
	assert.True(t, got[0].Connected)
}

func TestState_NotifyDeliversLatestLast(t *testing.T) {
	s := NewState(testRange())
	token := s.beginFetch()

	var (
		mu        sync.Mutex
		delivered []Snapshot
		first     = true
	)
	entered := make(chan struct{})
	release := make(chan struct{})
	s.OnChange(func(snap Snapshot) {
		mu.Lock()
		block := first
		first = false
		mu.Unlock()
		if block {
			close(entered)
			<-release
		}
		mu.Lock()
		delivered = append(delivered, snap)
		mu.Unlock()
	})

	// a task merge lands while the fetch is still loading
	merged := make(chan struct{})
	go func() {
		s.mergeTasksAt(s.Epoch(), []api.Task{{ID: "t1"}})
		close(merged)
	}()
	<-entered

	// the fetch finishes while that delivery is still in progress
	ended := make(chan struct{})
	go func() {
		s.endFetch(token)
		close(ended)
	}()
	assert.Eventually(t, func() bool { return !s.Loading() }, time.Second, time.Millisecond)

	close(release)
	<-merged
	<-ended

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, delivered, 2)
	last := delivered[len(delivered)-1]
	assert.False(t, last.Loading)
	assert.Len(t, last.Tasks, 1)
}
