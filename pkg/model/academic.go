package model

import (
	"slices"
	"time"
)

type HandwrittenAssignment struct {
	ID       string    `yaml:"id" json:"id"`
	Subject  string    `yaml:"subject" json:"subject"`
	Title    string    `yaml:"title" json:"title"`
	Deadline time.Time `yaml:"deadline" json:"deadline"`
	Progress int       `yaml:"progress" json:"progress"`
	// TaskID identifies the shadow task. It is a lookup key only.
	TaskID string `yaml:"task_id,omitempty" json:"taskId,omitempty"`
}

func (a HandwrittenAssignment) EntityID() string { return a.ID }

type HandwrittenAssignmentPatch struct {
	Subject  *string
	Title    *string
	Deadline *time.Time
	Progress *int
	TaskID   *string
}

func (p HandwrittenAssignmentPatch) Apply(a *HandwrittenAssignment) {
	if p.Subject != nil {
		a.Subject = *p.Subject
	}
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Deadline != nil {
		a.Deadline = *p.Deadline
	}
	if p.Progress != nil {
		a.Progress = *p.Progress
	}
	if p.TaskID != nil {
		a.TaskID = *p.TaskID
	}
}

// OnlineAssignment is a submitted assignment. File fields describe the
// upload; no content is kept.
type OnlineAssignment struct {
	ID       string    `yaml:"id" json:"id"`
	Subject  string    `yaml:"subject" json:"subject"`
	Title    string    `yaml:"title" json:"title"`
	Deadline time.Time `yaml:"deadline" json:"deadline"`
	Progress int       `yaml:"progress" json:"progress"`
	FileName string    `yaml:"file_name,omitempty" json:"fileName,omitempty"`
	FileType string    `yaml:"file_type,omitempty" json:"fileType,omitempty"`
	TaskID   string    `yaml:"task_id,omitempty" json:"taskId,omitempty"`
}

func (a OnlineAssignment) EntityID() string { return a.ID }

type OnlineAssignmentPatch struct {
	Subject  *string
	Title    *string
	Deadline *time.Time
	Progress *int
	FileName *string
	FileType *string
	TaskID   *string
}

func (p OnlineAssignmentPatch) Apply(a *OnlineAssignment) {
	if p.Subject != nil {
		a.Subject = *p.Subject
	}
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Deadline != nil {
		a.Deadline = *p.Deadline
	}
	if p.Progress != nil {
		a.Progress = *p.Progress
	}
	if p.FileName != nil {
		a.FileName = *p.FileName
	}
	if p.FileType != nil {
		a.FileType = *p.FileType
	}
	if p.TaskID != nil {
		a.TaskID = *p.TaskID
	}
}

// Topic is a studiable unit inside an exam or a subject.
type Topic struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	Studied bool   `yaml:"studied" json:"studied"`
}

type Exam struct {
	ID      string    `yaml:"id" json:"id"`
	Subject string    `yaml:"subject" json:"subject"`
	Date    time.Time `yaml:"date" json:"date"`
	// Time is free text, "10:00" or "10:00 AM".
	Time   string  `yaml:"time" json:"time"`
	Topics []Topic `yaml:"topics" json:"topics"`
}

func (e Exam) EntityID() string { return e.ID }

func (e Exam) Clone() Exam {
	e.Topics = slices.Clone(e.Topics)
	return e
}

type ExamPatch struct {
	Subject *string
	Date    *time.Time
	Time    *string
	Topics  *[]Topic
}

func (p ExamPatch) Apply(e *Exam) {
	if p.Subject != nil {
		e.Subject = *p.Subject
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.Topics != nil {
		e.Topics = slices.Clone(*p.Topics)
	}
}

type ProjectCategory string

const (
	ProjectSubject  ProjectCategory = "Subject"
	ProjectPersonal ProjectCategory = "Personal"
	ProjectMinor    ProjectCategory = "Minor"
	ProjectMajor    ProjectCategory = "Major"
)

// ProjectTask is a step of a project. A step with a deadline gets a shadow
// task the first time the project is updated with that deadline present.
type ProjectTask struct {
	ID        string     `yaml:"id" json:"id"`
	Title     string     `yaml:"title" json:"title"`
	Completed bool       `yaml:"completed" json:"completed"`
	Deadline  *time.Time `yaml:"deadline,omitempty" json:"deadline,omitempty"`
	TaskID    string     `yaml:"task_id,omitempty" json:"taskId,omitempty"`
}

// Progress is the binary progress mirrored to the shadow task.
func (pt ProjectTask) Progress() int {
	if pt.Completed {
		return 100
	}
	return 0
}

type Project struct {
	ID        string          `yaml:"id" json:"id"`
	Name      string          `yaml:"name" json:"name"`
	Category  ProjectCategory `yaml:"category" json:"category"`
	GithubURL string          `yaml:"github_url,omitempty" json:"githubUrl,omitempty"`
	LocalPath string          `yaml:"local_path,omitempty" json:"localPath,omitempty"`
	Tasks     []ProjectTask   `yaml:"tasks" json:"tasks"`
}

func (p Project) EntityID() string { return p.ID }

func (p Project) Clone() Project {
	p.Tasks = cloneProjectTasks(p.Tasks)
	return p
}

func cloneProjectTasks(in []ProjectTask) []ProjectTask {
	if in == nil {
		return nil
	}
	out := make([]ProjectTask, len(in))
	for i, pt := range in {
		if pt.Deadline != nil {
			d := *pt.Deadline
			pt.Deadline = &d
		}
		out[i] = pt
	}
	return out
}

type ProjectPatch struct {
	Name      *string
	Category  *ProjectCategory
	GithubURL *string
	LocalPath *string
	Tasks     *[]ProjectTask
}

func (p ProjectPatch) Apply(pr *Project) {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Category != nil {
		pr.Category = *p.Category
	}
	if p.GithubURL != nil {
		pr.GithubURL = *p.GithubURL
	}
	if p.LocalPath != nil {
		pr.LocalPath = *p.LocalPath
	}
	if p.Tasks != nil {
		pr.Tasks = cloneProjectTasks(*p.Tasks)
	}
}

type Note struct {
	ID         string    `yaml:"id" json:"id"`
	Title      string    `yaml:"title" json:"title"`
	FileName   string    `yaml:"file_name,omitempty" json:"fileName,omitempty"`
	UploadDate time.Time `yaml:"upload_date" json:"uploadDate"`
}

type Subject struct {
	ID     string  `yaml:"id" json:"id"`
	Name   string  `yaml:"name" json:"name"`
	Code   string  `yaml:"code" json:"code"`
	Topics []Topic `yaml:"topics" json:"topics"`
	Notes  []Note  `yaml:"notes" json:"notes"`
}

func (s Subject) EntityID() string { return s.ID }

func (s Subject) Clone() Subject {
	s.Topics = slices.Clone(s.Topics)
	s.Notes = slices.Clone(s.Notes)
	return s
}

type SubjectPatch struct {
	Name   *string
	Code   *string
	Topics *[]Topic
	Notes  *[]Note
}

func (p SubjectPatch) Apply(s *Subject) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Code != nil {
		s.Code = *p.Code
	}
	if p.Topics != nil {
		s.Topics = slices.Clone(*p.Topics)
	}
	if p.Notes != nil {
		s.Notes = slices.Clone(*p.Notes)
	}
}

// Day is a teaching day. Sunday is not one.
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
)

var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// DayOf maps a weekday to a teaching day. ok is false for Sunday.
func DayOf(w time.Weekday) (d Day, ok bool) {
	if w == time.Sunday {
		return "", false
	}
	return Days[int(w)-1], true
}

type ClassType string

const (
	ClassLecture  ClassType = "Lecture"
	ClassLab      ClassType = "Lab"
	ClassTutorial ClassType = "Tutorial"
)

// TimetableEntry is a weekly class slot. Start and end are zero-padded
// 24h "HH:MM" strings, so they order correctly as plain strings.
type TimetableEntry struct {
	ID        string    `yaml:"id" json:"id"`
	Subject   string    `yaml:"subject" json:"subject"`
	Day       Day       `yaml:"day" json:"day"`
	StartTime string    `yaml:"start_time" json:"startTime"`
	EndTime   string    `yaml:"end_time" json:"endTime"`
	Type      ClassType `yaml:"type" json:"type"`
}

func (e TimetableEntry) EntityID() string { return e.ID }

type TimetableEntryPatch struct {
	Subject   *string
	Day       *Day
	StartTime *string
	EndTime   *string
	Type      *ClassType
}

func (p TimetableEntryPatch) Apply(e *TimetableEntry) {
	if p.Subject != nil {
		e.Subject = *p.Subject
	}
	if p.Day != nil {
		e.Day = *p.Day
	}
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
}

type ChecklistItem struct {
	ID        string `yaml:"id" json:"id"`
	Label     string `yaml:"label" json:"label"`
	Completed bool   `yaml:"completed" json:"completed"`
}

type Hackathon struct {
	ID        string          `yaml:"id" json:"id"`
	Name      string          `yaml:"name" json:"name"`
	StartDate time.Time       `yaml:"start_date" json:"startDate"`
	EndDate   time.Time       `yaml:"end_date" json:"endDate"`
	Schedule  string          `yaml:"schedule,omitempty" json:"schedule,omitempty"`
	Checklist []ChecklistItem `yaml:"checklist" json:"checklist"`
	TaskID    string          `yaml:"task_id,omitempty" json:"taskId,omitempty"`
}

func (h Hackathon) EntityID() string { return h.ID }

func (h Hackathon) Clone() Hackathon {
	h.Checklist = slices.Clone(h.Checklist)
	return h
}

type HackathonPatch struct {
	Name      *string
	StartDate *time.Time
	EndDate   *time.Time
	Schedule  *string
	Checklist *[]ChecklistItem
	TaskID    *string
}

func (p HackathonPatch) Apply(h *Hackathon) {
	if p.Name != nil {
		h.Name = *p.Name
	}
	if p.StartDate != nil {
		h.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		h.EndDate = *p.EndDate
	}
	if p.Schedule != nil {
		h.Schedule = *p.Schedule
	}
	if p.Checklist != nil {
		h.Checklist = slices.Clone(*p.Checklist)
	}
	if p.TaskID != nil {
		h.TaskID = *p.TaskID
	}
}

// Dataset is a full copy of every collection, used for seeding and for
// read-only views.
type Dataset struct {
	Tasks                  []Task                  `yaml:"tasks" json:"tasks"`
	HandwrittenAssignments []HandwrittenAssignment `yaml:"handwritten_assignments" json:"handwrittenAssignments"`
	OnlineAssignments      []OnlineAssignment      `yaml:"online_assignments" json:"onlineAssignments"`
	Exams                  []Exam                  `yaml:"exams" json:"exams"`
	Projects               []Project               `yaml:"projects" json:"projects"`
	Subjects               []Subject               `yaml:"subjects" json:"subjects"`
	Timetable              []TimetableEntry        `yaml:"timetable" json:"timetable"`
	Hackathons             []Hackathon             `yaml:"hackathons" json:"hackathons"`
}
