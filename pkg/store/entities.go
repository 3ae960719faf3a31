package store

import "github.com/harrisonrobin/studyboard/pkg/model"

// The Add methods keep a caller-supplied id (it must be unused) and
// generate one otherwise. Nested items without an id get one too. Update
// and Delete on an unknown id change nothing and report false.

func (s *Store) AddHandwrittenAssignment(a model.HandwrittenAssignment) model.HandwrittenAssignment {
	a.ID = s.idOr(a.ID)
	a.Progress = model.ClampProgress(a.Progress)
	s.handwritten.add(a)
	return a
}

func (s *Store) UpdateHandwrittenAssignment(id string, p model.HandwrittenAssignmentPatch) (model.HandwrittenAssignment, bool) {
	return s.handwritten.update(id, func(a *model.HandwrittenAssignment) {
		p.Apply(a)
		a.Progress = model.ClampProgress(a.Progress)
	})
}

func (s *Store) DeleteHandwrittenAssignment(id string) (model.HandwrittenAssignment, bool) {
	return s.handwritten.remove(id)
}

func (s *Store) HandwrittenAssignment(id string) (model.HandwrittenAssignment, bool) {
	return s.handwritten.get(id)
}

func (s *Store) HandwrittenAssignments() []model.HandwrittenAssignment {
	return s.handwritten.snapshot(nil)
}

func (s *Store) AddOnlineAssignment(a model.OnlineAssignment) model.OnlineAssignment {
	a.ID = s.idOr(a.ID)
	a.Progress = model.ClampProgress(a.Progress)
	s.online.add(a)
	return a
}

func (s *Store) UpdateOnlineAssignment(id string, p model.OnlineAssignmentPatch) (model.OnlineAssignment, bool) {
	return s.online.update(id, func(a *model.OnlineAssignment) {
		p.Apply(a)
		a.Progress = model.ClampProgress(a.Progress)
	})
}

func (s *Store) DeleteOnlineAssignment(id string) (model.OnlineAssignment, bool) {
	return s.online.remove(id)
}

func (s *Store) OnlineAssignment(id string) (model.OnlineAssignment, bool) {
	return s.online.get(id)
}

func (s *Store) OnlineAssignments() []model.OnlineAssignment {
	return s.online.snapshot(nil)
}

func (s *Store) AddExam(e model.Exam) model.Exam {
	e = e.Clone()
	e.ID = s.idOr(e.ID)
	s.fillTopicIDs(e.Topics)
	s.exams.add(e)
	return e.Clone()
}

func (s *Store) UpdateExam(id string, p model.ExamPatch) (model.Exam, bool) {
	e, ok := s.exams.update(id, func(e *model.Exam) {
		p.Apply(e)
		s.fillTopicIDs(e.Topics)
	})
	return e.Clone(), ok
}

func (s *Store) DeleteExam(id string) (model.Exam, bool) {
	return s.exams.remove(id)
}

func (s *Store) Exam(id string) (model.Exam, bool) {
	e, ok := s.exams.get(id)
	return e.Clone(), ok
}

func (s *Store) Exams() []model.Exam {
	return s.exams.snapshot(model.Exam.Clone)
}

func (s *Store) AddProject(p model.Project) model.Project {
	p = p.Clone()
	p.ID = s.idOr(p.ID)
	s.fillProjectTaskIDs(p.Tasks)
	s.projects.add(p)
	return p.Clone()
}

func (s *Store) UpdateProject(id string, patch model.ProjectPatch) (model.Project, bool) {
	p, ok := s.projects.update(id, func(p *model.Project) {
		patch.Apply(p)
		s.fillProjectTaskIDs(p.Tasks)
	})
	return p.Clone(), ok
}

func (s *Store) DeleteProject(id string) (model.Project, bool) {
	return s.projects.remove(id)
}

func (s *Store) Project(id string) (model.Project, bool) {
	p, ok := s.projects.get(id)
	return p.Clone(), ok
}

func (s *Store) Projects() []model.Project {
	return s.projects.snapshot(model.Project.Clone)
}

func (s *Store) AddSubject(sub model.Subject) model.Subject {
	sub = sub.Clone()
	sub.ID = s.idOr(sub.ID)
	s.fillTopicIDs(sub.Topics)
	s.fillNoteIDs(sub.Notes)
	s.subjects.add(sub)
	return sub.Clone()
}

func (s *Store) UpdateSubject(id string, p model.SubjectPatch) (model.Subject, bool) {
	sub, ok := s.subjects.update(id, func(sub *model.Subject) {
		p.Apply(sub)
		s.fillTopicIDs(sub.Topics)
		s.fillNoteIDs(sub.Notes)
	})
	return sub.Clone(), ok
}

func (s *Store) DeleteSubject(id string) (model.Subject, bool) {
	return s.subjects.remove(id)
}

func (s *Store) Subject(id string) (model.Subject, bool) {
	sub, ok := s.subjects.get(id)
	return sub.Clone(), ok
}

func (s *Store) Subjects() []model.Subject {
	return s.subjects.snapshot(model.Subject.Clone)
}

func (s *Store) AddTimetableEntry(e model.TimetableEntry) model.TimetableEntry {
	e.ID = s.idOr(e.ID)
	s.timetable.add(e)
	return e
}

func (s *Store) UpdateTimetableEntry(id string, p model.TimetableEntryPatch) (model.TimetableEntry, bool) {
	return s.timetable.update(id, p.Apply)
}

func (s *Store) DeleteTimetableEntry(id string) (model.TimetableEntry, bool) {
	return s.timetable.remove(id)
}

func (s *Store) TimetableEntry(id string) (model.TimetableEntry, bool) {
	return s.timetable.get(id)
}

func (s *Store) Timetable() []model.TimetableEntry {
	return s.timetable.snapshot(nil)
}

func (s *Store) AddHackathon(h model.Hackathon) model.Hackathon {
	h = h.Clone()
	h.ID = s.idOr(h.ID)
	s.fillChecklistIDs(h.Checklist)
	s.hackathons.add(h)
	return h.Clone()
}

func (s *Store) UpdateHackathon(id string, p model.HackathonPatch) (model.Hackathon, bool) {
	h, ok := s.hackathons.update(id, func(h *model.Hackathon) {
		p.Apply(h)
		s.fillChecklistIDs(h.Checklist)
	})
	return h.Clone(), ok
}

func (s *Store) DeleteHackathon(id string) (model.Hackathon, bool) {
	return s.hackathons.remove(id)
}

func (s *Store) Hackathon(id string) (model.Hackathon, bool) {
	h, ok := s.hackathons.get(id)
	return h.Clone(), ok
}

func (s *Store) Hackathons() []model.Hackathon {
	return s.hackathons.snapshot(model.Hackathon.Clone)
}

func (s *Store) fillTopicIDs(topics []model.Topic) {
	for i := range topics {
		topics[i].ID = s.idOr(topics[i].ID)
	}
}

func (s *Store) fillNoteIDs(notes []model.Note) {
	for i := range notes {
		notes[i].ID = s.idOr(notes[i].ID)
	}
}

func (s *Store) fillProjectTaskIDs(tasks []model.ProjectTask) {
	for i := range tasks {
		tasks[i].ID = s.idOr(tasks[i].ID)
	}
}

func (s *Store) fillChecklistIDs(items []model.ChecklistItem) {
	for i := range items {
		items[i].ID = s.idOr(items[i].ID)
	}
}
