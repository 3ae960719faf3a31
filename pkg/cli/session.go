package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/harrisonrobin/studyboard/pkg/config"
	"github.com/harrisonrobin/studyboard/pkg/model"
	"github.com/harrisonrobin/studyboard/pkg/seed"
	"github.com/harrisonrobin/studyboard/pkg/shadow"
	"github.com/harrisonrobin/studyboard/pkg/store"
)

// session is one run's in-memory state, seeded from the configured bundle
// plus the tasks imported in earlier runs.
type session struct {
	cfg  *config.Config
	sync *shadow.Synchronizer

	importsPath string
	imported    []string
}

func (opts *rootOptions) loadConfig() (*config.Config, error) {
	if opts.configPath != "" {
		return config.LoadFrom(opts.configPath)
	}
	return config.Load()
}

func (opts *rootOptions) saveConfig(cfg *config.Config) error {
	if opts.configPath != "" {
		return config.SaveTo(opts.configPath, cfg)
	}
	return config.Save(cfg)
}

func (opts *rootOptions) openSession() (*session, error) {
	cfg, err := opts.loadConfig()
	if err != nil {
		return nil, err
	}

	now := opts.clock.Now()
	seedFile := cfg.SeedFile
	if opts.seedFile != "" {
		seedFile = opts.seedFile
	}

	var ds model.Dataset
	if seedFile == "" {
		ds = seed.Default(now)
	} else {
		ds, err = seed.LoadFile(seedFile, now)
		if err != nil {
			return nil, err
		}
		log.Printf("loaded seed bundle %s", seedFile)
	}

	importsPath, err := cfg.ImportsPath()
	if err != nil {
		return nil, err
	}
	imports, err := seed.LoadFile(importsPath, now)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load imported tasks: %w", err)
	}
	s := &session{cfg: cfg, importsPath: importsPath}
	for _, t := range imports.Tasks {
		s.imported = append(s.imported, t.ID)
	}
	ds.Tasks = append(ds.Tasks, imports.Tasks...)

	st := store.New(opts.clock)
	if err := st.Seed(ds); err != nil {
		return nil, err
	}
	s.sync = shadow.New(st)
	return s, nil
}

func (s *session) store() *store.Store {
	return s.sync.Store()
}

// importTask adds in as a task, or refreshes an earlier import with the
// same title and deadline. It reports whether a new task was created.
func (s *session) importTask(in model.TaskInput) (model.Task, bool) {
	for _, id := range s.imported {
		prev, ok := s.store().Task(id)
		if !ok || prev.Title != in.Title || !prev.Deadline.Equal(in.Deadline) {
			continue
		}
		updated, _ := s.sync.UpdateTask(id, model.TaskPatch{
			Category:    &in.Category,
			Subject:     &in.Subject,
			Progress:    &in.Progress,
			Description: &in.Description,
		})
		return updated, false
	}

	t := s.sync.AddTask(in)
	s.imported = append(s.imported, t.ID)
	return t, true
}

// saveImports writes every imported task still in the store.
func (s *session) saveImports() error {
	var tasks []model.Task
	for _, id := range s.imported {
		if t, ok := s.store().Task(id); ok {
			tasks = append(tasks, t)
		}
	}
	if err := seed.SaveFile(s.importsPath, seed.FromTasks(tasks)); err != nil {
		return fmt.Errorf("failed to save imported tasks: %w", err)
	}
	return nil
}
