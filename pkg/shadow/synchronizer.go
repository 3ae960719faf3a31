// Package shadow keeps shadow tasks in step with the entities they mirror.
//
// Assignments and hackathons get a shadow task when they are added. Project
// steps get one lazily, the first time a project update sees the step with a
// deadline and no task yet. Updates relay the mirrored fields; deletes
// cascade. Exams, subjects and timetable entries never produce tasks.
//
// The back-references (TaskID on the source, SourceID on the task) are
// lookup keys only. A task deleted out of band leaves a dangling TaskID and
// later relays to it are dropped.
package shadow

import (
	"fmt"
	"math"

	"github.com/harrisonrobin/studyboard/pkg/model"
	"github.com/harrisonrobin/studyboard/pkg/store"
)

// Synchronizer is the single mutation entry point for every collection.
type Synchronizer struct {
	store *store.Store
}

func New(s *store.Store) *Synchronizer {
	return &Synchronizer{store: s}
}

// Store exposes the underlying store for reads.
func (sy *Synchronizer) Store() *store.Store {
	return sy.store
}

// AddTask, UpdateTask and DeleteTask act on tasks directly. Edits to a
// shadow task do not flow back to its source.
func (sy *Synchronizer) AddTask(in model.TaskInput) model.Task {
	return sy.store.AddTask(in)
}

func (sy *Synchronizer) UpdateTask(id string, p model.TaskPatch) (model.Task, bool) {
	return sy.store.UpdateTask(id, p)
}

func (sy *Synchronizer) DeleteTask(id string) bool {
	return sy.store.DeleteTask(id)
}

// relay updates a linked task, ignoring links that no longer resolve.
func (sy *Synchronizer) relay(taskID string, p model.TaskPatch) {
	if taskID == "" {
		return
	}
	sy.store.UpdateTask(taskID, p)
}

func (sy *Synchronizer) cascade(taskID string) {
	if taskID == "" {
		return
	}
	sy.store.DeleteTask(taskID)
}

func (sy *Synchronizer) AddHandwrittenAssignment(a model.HandwrittenAssignment) model.HandwrittenAssignment {
	if a.ID == "" {
		a.ID = sy.store.NewID()
	}
	task := sy.store.AddTask(model.TaskInput{
		Title:      a.Title,
		Category:   model.CategoryAssignment,
		Subject:    a.Subject,
		Deadline:   a.Deadline,
		Progress:   a.Progress,
		SourceType: model.SourceAssignment,
		SourceID:   a.ID,
	})
	a.TaskID = task.ID
	return sy.store.AddHandwrittenAssignment(a)
}

func (sy *Synchronizer) UpdateHandwrittenAssignment(id string, p model.HandwrittenAssignmentPatch) (model.HandwrittenAssignment, bool) {
	a, ok := sy.store.UpdateHandwrittenAssignment(id, p)
	if !ok {
		return a, false
	}
	sy.relay(a.TaskID, model.TaskPatch{
		Title:    model.Ptr(a.Title),
		Subject:  model.Ptr(a.Subject),
		Deadline: model.Ptr(a.Deadline),
		Progress: model.Ptr(a.Progress),
	})
	return a, true
}

func (sy *Synchronizer) DeleteHandwrittenAssignment(id string) bool {
	a, ok := sy.store.HandwrittenAssignment(id)
	if !ok {
		return false
	}
	sy.cascade(a.TaskID)
	sy.store.DeleteHandwrittenAssignment(id)
	return true
}

func (sy *Synchronizer) AddOnlineAssignment(a model.OnlineAssignment) model.OnlineAssignment {
	if a.ID == "" {
		a.ID = sy.store.NewID()
	}
	task := sy.store.AddTask(model.TaskInput{
		Title:      a.Title,
		Category:   model.CategoryAssignment,
		Subject:    a.Subject,
		Deadline:   a.Deadline,
		Progress:   a.Progress,
		SourceType: model.SourceAssignment,
		SourceID:   a.ID,
	})
	a.TaskID = task.ID
	return sy.store.AddOnlineAssignment(a)
}

func (sy *Synchronizer) UpdateOnlineAssignment(id string, p model.OnlineAssignmentPatch) (model.OnlineAssignment, bool) {
	a, ok := sy.store.UpdateOnlineAssignment(id, p)
	if !ok {
		return a, false
	}
	sy.relay(a.TaskID, model.TaskPatch{
		Title:    model.Ptr(a.Title),
		Subject:  model.Ptr(a.Subject),
		Deadline: model.Ptr(a.Deadline),
		Progress: model.Ptr(a.Progress),
	})
	return a, true
}

func (sy *Synchronizer) DeleteOnlineAssignment(id string) bool {
	a, ok := sy.store.OnlineAssignment(id)
	if !ok {
		return false
	}
	sy.cascade(a.TaskID)
	sy.store.DeleteOnlineAssignment(id)
	return true
}

// ChecklistProgress is the rounded percentage of completed items, 0 for an
// empty checklist.
func ChecklistProgress(items []model.ChecklistItem) int {
	if len(items) == 0 {
		return 0
	}
	done := 0
	for _, item := range items {
		if item.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(items)) * 100))
}

func (sy *Synchronizer) AddHackathon(h model.Hackathon) model.Hackathon {
	if h.ID == "" {
		h.ID = sy.store.NewID()
	}
	task := sy.store.AddTask(model.TaskInput{
		Title:      h.Name,
		Category:   model.CategoryHackathon,
		Deadline:   h.EndDate,
		Progress:   ChecklistProgress(h.Checklist),
		SourceType: model.SourceHackathon,
		SourceID:   h.ID,
	})
	h.TaskID = task.ID
	return sy.store.AddHackathon(h)
}

func (sy *Synchronizer) UpdateHackathon(id string, p model.HackathonPatch) (model.Hackathon, bool) {
	h, ok := sy.store.UpdateHackathon(id, p)
	if !ok {
		return h, false
	}
	sy.relay(h.TaskID, model.TaskPatch{
		Title:    model.Ptr(h.Name),
		Deadline: model.Ptr(h.EndDate),
		Progress: model.Ptr(ChecklistProgress(h.Checklist)),
	})
	return h, true
}

func (sy *Synchronizer) DeleteHackathon(id string) bool {
	h, ok := sy.store.Hackathon(id)
	if !ok {
		return false
	}
	sy.cascade(h.TaskID)
	sy.store.DeleteHackathon(id)
	return true
}

// AddProject stores the project without creating any shadow task, even for
// steps that already carry a deadline.
func (sy *Synchronizer) AddProject(p model.Project) model.Project {
	return sy.store.AddProject(p)
}

func projectTaskTitle(project, step string) string {
	return fmt.Sprintf("%s: %s", project, step)
}

// UpdateProject applies the patch and then walks every step: a step with a
// deadline and no task is linked to a new shadow task, a linked step relays
// its title, deadline and completion, and a linked step that the patch
// dropped has its task deleted.
func (sy *Synchronizer) UpdateProject(id string, patch model.ProjectPatch) (model.Project, bool) {
	before, ok := sy.store.Project(id)
	if !ok {
		return before, false
	}
	p, _ := sy.store.UpdateProject(id, patch)

	keptSteps := make(map[string]bool, len(p.Tasks))
	keptTasks := make(map[string]bool, len(p.Tasks))
	linked := false
	for i := range p.Tasks {
		step := &p.Tasks[i]
		keptSteps[step.ID] = true
		if step.TaskID != "" {
			keptTasks[step.TaskID] = true
		}

		title := projectTaskTitle(p.Name, step.Title)
		switch {
		case step.TaskID != "":
			tp := model.TaskPatch{
				Title:    model.Ptr(title),
				Progress: model.Ptr(step.Progress()),
			}
			if step.Deadline != nil {
				tp.Deadline = model.Ptr(*step.Deadline)
			}
			sy.relay(step.TaskID, tp)
		case step.Deadline != nil:
			task := sy.store.AddTask(model.TaskInput{
				Title:      title,
				Category:   model.CategoryProjectTask,
				Deadline:   *step.Deadline,
				Progress:   step.Progress(),
				SourceType: model.SourceProject,
				SourceID:   step.ID,
			})
			step.TaskID = task.ID
			linked = true
		}
	}

	for _, step := range before.Tasks {
		if !keptSteps[step.ID] && !keptTasks[step.TaskID] {
			sy.cascade(step.TaskID)
		}
	}

	if linked {
		p, _ = sy.store.UpdateProject(id, model.ProjectPatch{Tasks: &p.Tasks})
	}
	return p, true
}

func (sy *Synchronizer) DeleteProject(id string) bool {
	p, ok := sy.store.Project(id)
	if !ok {
		return false
	}
	for _, step := range p.Tasks {
		sy.cascade(step.TaskID)
	}
	sy.store.DeleteProject(id)
	return true
}

// Exams, subjects and timetable entries are plain store mutations.

func (sy *Synchronizer) AddExam(e model.Exam) model.Exam {
	return sy.store.AddExam(e)
}

func (sy *Synchronizer) UpdateExam(id string, p model.ExamPatch) (model.Exam, bool) {
	return sy.store.UpdateExam(id, p)
}

func (sy *Synchronizer) DeleteExam(id string) bool {
	_, ok := sy.store.DeleteExam(id)
	return ok
}

func (sy *Synchronizer) AddSubject(s model.Subject) model.Subject {
	return sy.store.AddSubject(s)
}

func (sy *Synchronizer) UpdateSubject(id string, p model.SubjectPatch) (model.Subject, bool) {
	return sy.store.UpdateSubject(id, p)
}

func (sy *Synchronizer) DeleteSubject(id string) bool {
	_, ok := sy.store.DeleteSubject(id)
	return ok
}

func (sy *Synchronizer) AddTimetableEntry(e model.TimetableEntry) model.TimetableEntry {
	return sy.store.AddTimetableEntry(e)
}

func (sy *Synchronizer) UpdateTimetableEntry(id string, p model.TimetableEntryPatch) (model.TimetableEntry, bool) {
	return sy.store.UpdateTimetableEntry(id, p)
}

func (sy *Synchronizer) DeleteTimetableEntry(id string) bool {
	_, ok := sy.store.DeleteTimetableEntry(id)
	return ok
}
