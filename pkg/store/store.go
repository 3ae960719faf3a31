// Package store owns every collection of the tracker: tasks, assignments,
// exams, projects, subjects, the timetable and hackathons.
//
// Tasks can only be written through AddTask and UpdateTask, both of which
// recompute the derived status and priority. Read accessors return copies.
// A Store is not safe for concurrent use; callers serialise mutations.
package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/harrisonrobin/studyboard/pkg/clock"
	"github.com/harrisonrobin/studyboard/pkg/derive"
	"github.com/harrisonrobin/studyboard/pkg/model"
)

type Store struct {
	clock clock.Clock
	newID func() string

	tasks       collection[model.Task]
	handwritten collection[model.HandwrittenAssignment]
	online      collection[model.OnlineAssignment]
	exams       collection[model.Exam]
	projects    collection[model.Project]
	subjects    collection[model.Subject]
	timetable   collection[model.TimetableEntry]
	hackathons  collection[model.Hackathon]
}

type Option func(*Store)

// WithIDFunc replaces the uuid generator, mostly for tests.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// New returns an empty store reading time from clk.
func New(clk clock.Clock, opts ...Option) *Store {
	s := &Store{
		clock:       clk,
		newID:       uuid.NewString,
		tasks:       collection[model.Task]{name: "task"},
		handwritten: collection[model.HandwrittenAssignment]{name: "handwritten assignment"},
		online:      collection[model.OnlineAssignment]{name: "online assignment"},
		exams:       collection[model.Exam]{name: "exam"},
		projects:    collection[model.Project]{name: "project"},
		subjects:    collection[model.Subject]{name: "subject"},
		timetable:   collection[model.TimetableEntry]{name: "timetable entry"},
		hackathons:  collection[model.Hackathon]{name: "hackathon"},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewID returns a fresh identifier. The synchroniser uses it to name an
// entity before its shadow task is created.
func (s *Store) NewID() string {
	return s.newID()
}

// Clock returns the time source used for derivation.
func (s *Store) Clock() clock.Clock {
	return s.clock
}

func (s *Store) idOr(id string) string {
	if id != "" {
		return id
	}
	return s.newID()
}

// Seed replaces every collection with the contents of ds. Seeded tasks are
// always derived; any status or priority in ds is ignored.
func (s *Store) Seed(ds model.Dataset) error {
	now := s.clock.Now()
	tasks := make([]model.Task, len(ds.Tasks))
	for i, t := range ds.Tasks {
		t.Progress = model.ClampProgress(t.Progress)
		tasks[i] = derive.Apply(t, now)
	}

	// Validate into scratch collections first so a bad bundle leaves s untouched.
	next := New(s.clock)
	steps := []func() error{
		func() error { return next.tasks.reset(tasks, nil) },
		func() error { return next.handwritten.reset(ds.HandwrittenAssignments, nil) },
		func() error { return next.online.reset(ds.OnlineAssignments, nil) },
		func() error { return next.exams.reset(ds.Exams, model.Exam.Clone) },
		func() error { return next.projects.reset(ds.Projects, model.Project.Clone) },
		func() error { return next.subjects.reset(ds.Subjects, model.Subject.Clone) },
		func() error { return next.timetable.reset(ds.Timetable, nil) },
		func() error { return next.hackathons.reset(ds.Hackathons, model.Hackathon.Clone) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return fmt.Errorf("invalid seed: %w", err)
		}
	}

	// nested ids are filled on the scratch copies, like Add* does
	for i := range next.exams.items {
		s.fillTopicIDs(next.exams.items[i].Topics)
	}
	for i := range next.projects.items {
		s.fillProjectTaskIDs(next.projects.items[i].Tasks)
	}
	for i := range next.subjects.items {
		s.fillTopicIDs(next.subjects.items[i].Topics)
		s.fillNoteIDs(next.subjects.items[i].Notes)
	}
	for i := range next.hackathons.items {
		s.fillChecklistIDs(next.hackathons.items[i].Checklist)
	}

	s.tasks.items = next.tasks.items
	s.handwritten.items = next.handwritten.items
	s.online.items = next.online.items
	s.exams.items = next.exams.items
	s.projects.items = next.projects.items
	s.subjects.items = next.subjects.items
	s.timetable.items = next.timetable.items
	s.hackathons.items = next.hackathons.items
	return nil
}

// Snapshot copies every collection.
func (s *Store) Snapshot() model.Dataset {
	return model.Dataset{
		Tasks:                  s.Tasks(),
		HandwrittenAssignments: s.HandwrittenAssignments(),
		OnlineAssignments:      s.OnlineAssignments(),
		Exams:                  s.Exams(),
		Projects:               s.Projects(),
		Subjects:               s.Subjects(),
		Timetable:              s.Timetable(),
		Hackathons:             s.Hackathons(),
	}
}
