package store

import (
	"github.com/harrisonrobin/studyboard/pkg/derive"
	"github.com/harrisonrobin/studyboard/pkg/model"
)

// AddTask stores a new task and returns it with its id and derived fields.
func (s *Store) AddTask(in model.TaskInput) model.Task {
	t := model.Task{
		ID:          s.newID(),
		Title:       in.Title,
		Category:    in.Category,
		Subject:     in.Subject,
		Deadline:    in.Deadline,
		Progress:    model.ClampProgress(in.Progress),
		Description: in.Description,
		SourceType:  in.SourceType,
		SourceID:    in.SourceID,
		Status:      model.StatusPending,
		Priority:    model.PriorityLow,
	}
	t = derive.Apply(t, s.clock.Now())
	s.tasks.add(t)
	return t
}

// UpdateTask merges p into the task and re-derives it. ok is false, and
// nothing changes, when no task has that id.
func (s *Store) UpdateTask(id string, p model.TaskPatch) (model.Task, bool) {
	now := s.clock.Now()
	return s.tasks.update(id, func(t *model.Task) {
		p.Apply(t)
		t.Progress = model.ClampProgress(t.Progress)
		*t = derive.Apply(*t, now)
	})
}

// DeleteTask removes a task. Deleting an unknown id is a no-op.
func (s *Store) DeleteTask(id string) bool {
	_, ok := s.tasks.remove(id)
	return ok
}

func (s *Store) Task(id string) (model.Task, bool) {
	return s.tasks.get(id)
}

// Tasks returns the tasks in insertion order.
func (s *Store) Tasks() []model.Task {
	return s.tasks.snapshot(nil)
}

// Refresh re-derives every task at the current time. Status and priority
// drift as deadlines approach without any edit, so views call this first.
func (s *Store) Refresh() {
	now := s.clock.Now()
	for i := range s.tasks.items {
		s.tasks.items[i] = derive.Apply(s.tasks.items[i], now)
	}
}
