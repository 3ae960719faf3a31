// Package seed builds the initial dataset of a session from a YAML bundle.
// Dates in a bundle may be relative to the load time so the bundled sample
// data always looks current.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harrisonrobin/studyboard/pkg/model"
)

//go:embed default.yaml
var defaultBundle []byte

type taskDoc struct {
	ID          string           `yaml:"id"`
	Title       string           `yaml:"title"`
	Category    model.Category   `yaml:"category"`
	Subject     string           `yaml:"subject,omitempty"`
	Deadline    When             `yaml:"deadline"`
	Progress    int              `yaml:"progress"`
	Description string           `yaml:"description,omitempty"`
	SourceType  model.SourceType `yaml:"source_type,omitempty"`
	SourceID    string           `yaml:"source_id,omitempty"`
}

type assignmentDoc struct {
	ID       string `yaml:"id"`
	Subject  string `yaml:"subject"`
	Title    string `yaml:"title"`
	Deadline When   `yaml:"deadline"`
	Progress int    `yaml:"progress"`
	FileName string `yaml:"file_name"`
	FileType string `yaml:"file_type"`
	TaskID   string `yaml:"task_id"`
}

type examDoc struct {
	ID      string        `yaml:"id"`
	Subject string        `yaml:"subject"`
	Date    When          `yaml:"date"`
	Time    string        `yaml:"time"`
	Topics  []model.Topic `yaml:"topics"`
}

type projectTaskDoc struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	Completed bool   `yaml:"completed"`
	Deadline  *When  `yaml:"deadline"`
	TaskID    string `yaml:"task_id"`
}

type projectDoc struct {
	ID        string                `yaml:"id"`
	Name      string                `yaml:"name"`
	Category  model.ProjectCategory `yaml:"category"`
	GithubURL string                `yaml:"github_url"`
	LocalPath string                `yaml:"local_path"`
	Tasks     []projectTaskDoc      `yaml:"tasks"`
}

type noteDoc struct {
	ID         string `yaml:"id"`
	Title      string `yaml:"title"`
	FileName   string `yaml:"file_name"`
	UploadDate When   `yaml:"upload_date"`
}

type subjectDoc struct {
	ID     string        `yaml:"id"`
	Name   string        `yaml:"name"`
	Code   string        `yaml:"code"`
	Topics []model.Topic `yaml:"topics"`
	Notes  []noteDoc     `yaml:"notes"`
}

type hackathonDoc struct {
	ID        string                `yaml:"id"`
	Name      string                `yaml:"name"`
	StartDate When                  `yaml:"start_date"`
	EndDate   When                  `yaml:"end_date"`
	Schedule  string                `yaml:"schedule"`
	Checklist []model.ChecklistItem `yaml:"checklist"`
	TaskID    string                `yaml:"task_id"`
}

// Bundle is the document layout of a seed file.
type Bundle struct {
	Tasks                  []taskDoc              `yaml:"tasks,omitempty"`
	HandwrittenAssignments []assignmentDoc        `yaml:"handwritten_assignments,omitempty"`
	OnlineAssignments      []assignmentDoc        `yaml:"online_assignments,omitempty"`
	Exams                  []examDoc              `yaml:"exams,omitempty"`
	Projects               []projectDoc           `yaml:"projects,omitempty"`
	Subjects               []subjectDoc           `yaml:"subjects,omitempty"`
	Timetable              []model.TimetableEntry `yaml:"timetable,omitempty"`
	Hackathons             []hackathonDoc         `yaml:"hackathons,omitempty"`
}

// Decode reads a bundle from r.
func Decode(r io.Reader) (*Bundle, error) {
	var b Bundle
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&b); err != nil {
		if err == io.EOF {
			return &b, nil
		}
		return nil, fmt.Errorf("failed to decode seed bundle: %w", err)
	}
	return &b, nil
}

// FromTasks builds a bundle holding tasks at their absolute deadlines.
// Derived fields are not written.
func FromTasks(tasks []model.Task) *Bundle {
	b := &Bundle{}
	for _, t := range tasks {
		b.Tasks = append(b.Tasks, taskDoc{
			ID:          t.ID,
			Title:       t.Title,
			Category:    t.Category,
			Subject:     t.Subject,
			Deadline:    At(t.Deadline),
			Progress:    t.Progress,
			Description: t.Description,
			SourceType:  t.SourceType,
			SourceID:    t.SourceID,
		})
	}
	return b
}

// Encode writes b to w as YAML.
func Encode(w io.Writer, b *Bundle) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("failed to encode seed bundle: %w", err)
	}
	return enc.Close()
}

// SaveFile writes b to path, readable by the owner only. The file is
// replaced through a rename.
func SaveFile(path string, b *Bundle) error {
	var buf bytes.Buffer
	if err := Encode(&buf, b); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create seed directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write seed file: %w", err)
	}
	return os.Rename(tmp, path)
}

// Dataset resolves every date in the bundle against now. Derived task
// fields are left empty for the store to compute.
func (b *Bundle) Dataset(now time.Time) model.Dataset {
	var ds model.Dataset

	for _, t := range b.Tasks {
		ds.Tasks = append(ds.Tasks, model.Task{
			ID:          t.ID,
			Title:       t.Title,
			Category:    t.Category,
			Subject:     t.Subject,
			Deadline:    t.Deadline.Resolve(now),
			Progress:    t.Progress,
			Description: t.Description,
			SourceType:  t.SourceType,
			SourceID:    t.SourceID,
		})
	}
	for _, a := range b.HandwrittenAssignments {
		ds.HandwrittenAssignments = append(ds.HandwrittenAssignments, model.HandwrittenAssignment{
			ID:       a.ID,
			Subject:  a.Subject,
			Title:    a.Title,
			Deadline: a.Deadline.Resolve(now),
			Progress: a.Progress,
			TaskID:   a.TaskID,
		})
	}
	for _, a := range b.OnlineAssignments {
		ds.OnlineAssignments = append(ds.OnlineAssignments, model.OnlineAssignment{
			ID:       a.ID,
			Subject:  a.Subject,
			Title:    a.Title,
			Deadline: a.Deadline.Resolve(now),
			Progress: a.Progress,
			FileName: a.FileName,
			FileType: a.FileType,
			TaskID:   a.TaskID,
		})
	}
	for _, e := range b.Exams {
		ds.Exams = append(ds.Exams, model.Exam{
			ID:      e.ID,
			Subject: e.Subject,
			Date:    e.Date.Resolve(now),
			Time:    e.Time,
			Topics:  e.Topics,
		})
	}
	for _, p := range b.Projects {
		project := model.Project{
			ID:        p.ID,
			Name:      p.Name,
			Category:  p.Category,
			GithubURL: p.GithubURL,
			LocalPath: p.LocalPath,
		}
		for _, pt := range p.Tasks {
			step := model.ProjectTask{ID: pt.ID, Title: pt.Title, Completed: pt.Completed, TaskID: pt.TaskID}
			if pt.Deadline != nil {
				d := pt.Deadline.Resolve(now)
				step.Deadline = &d
			}
			project.Tasks = append(project.Tasks, step)
		}
		ds.Projects = append(ds.Projects, project)
	}
	for _, s := range b.Subjects {
		subject := model.Subject{ID: s.ID, Name: s.Name, Code: s.Code, Topics: s.Topics}
		for _, n := range s.Notes {
			subject.Notes = append(subject.Notes, model.Note{
				ID:         n.ID,
				Title:      n.Title,
				FileName:   n.FileName,
				UploadDate: n.UploadDate.Resolve(now),
			})
		}
		ds.Subjects = append(ds.Subjects, subject)
	}
	ds.Timetable = append(ds.Timetable, b.Timetable...)
	for _, h := range b.Hackathons {
		ds.Hackathons = append(ds.Hackathons, model.Hackathon{
			ID:        h.ID,
			Name:      h.Name,
			StartDate: h.StartDate.Resolve(now),
			EndDate:   h.EndDate.Resolve(now),
			Schedule:  h.Schedule,
			Checklist: h.Checklist,
			TaskID:    h.TaskID,
		})
	}
	return ds
}

// Load decodes a bundle from r and resolves it at now.
func Load(r io.Reader, now time.Time) (model.Dataset, error) {
	b, err := Decode(r)
	if err != nil {
		return model.Dataset{}, err
	}
	return b.Dataset(now), nil
}

// LoadFile loads the bundle at path.
func LoadFile(path string, now time.Time) (model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return Load(f, now)
}

// Default returns the bundled sample dataset resolved at now.
func Default(now time.Time) model.Dataset {
	ds, err := Load(bytes.NewReader(defaultBundle), now)
	if err != nil {
		panic(fmt.Sprintf("seed: embedded bundle is invalid: %v", err))
	}
	return ds
}
