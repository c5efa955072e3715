package services

import (
	"strings"

	"github.com/google/uuid"

	"github.com/ajramos/mailbrief/internal/api"
)

// TaskService accumulates extracted action items for the displayed emails
type TaskService struct {
	state *State
}

// NewTaskService creates a task accumulator over state
func NewTaskService(state *State) *TaskService {
	return &TaskService{state: state}
}

// MergeAt prepends batch to the task list, newest batch first, but only
// while the email set identified by epoch is still displayed. It reports
// whether the batch was kept. An empty batch changes nothing.
func (s *TaskService) MergeAt(epoch uint64, batch []api.Task) bool {
	return s.state.mergeTasksAt(epoch, withIDs(batch))
}

// Tasks returns the accumulated tasks, newest batch first
func (s *TaskService) Tasks() []api.Task {
	return s.state.Tasks()
}

// withIDs copies batch, filling blank ids so every row is addressable
func withIDs(batch []api.Task) []api.Task {
	if len(batch) == 0 {
		return nil
	}
	out := make([]api.Task, len(batch))
	copy(out, batch)
	for i := range out {
		if strings.TrimSpace(out[i].ID) == "" {
			out[i].ID = uuid.NewString()
		}
	}
	return out
}
