package colors

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

// NoSubjectColor is graphite, used for tasks without a subject.
const NoSubjectColor = "8"

// paletteSize is the number of Google Calendar event colors.
const paletteSize = 11

type SubjectState struct {
	ColorID  string `json:"color_id"`
	LastUsed uint64 `json:"last_used"`
}

// Palette hands out calendar colors per subject. Once every color is taken
// the least recently used subject gives its color up.
type Palette struct {
	Path     string
	Subjects map[string]*SubjectState
	tick     uint64
	dirty    bool
}

const (
	xdgAppName = "studyboard"
	cacheFile  = "subject_colors.json"
)

func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName, cacheFile), nil
}

// NewPalette loads the palette stored at path. An empty path keeps the
// palette in memory only.
func NewPalette(path string) (*Palette, error) {
	p := &Palette{
		Path:     path,
		Subjects: make(map[string]*SubjectState),
	}
	if path == "" {
		return p, nil
	}
	if _, err := os.Stat(path); err == nil {
		if err := p.Load(); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Palette) Load() error {
	f, err := os.Open(p.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&p.Subjects); err != nil {
		return err
	}
	for _, s := range p.Subjects {
		p.tick = max(p.tick, s.LastUsed)
	}
	return nil
}

func (p *Palette) Save() error {
	if !p.dirty || p.Path == "" {
		return nil
	}
	dir := filepath.Dir(p.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		log.Printf("Error creating color palette directory: %v", err)
		return err
	}

	f, err := os.Create(p.Path)
	if err != nil {
		log.Printf("Error creating color palette file: %v", err)
		return err
	}
	defer f.Close()
	err = json.NewEncoder(f).Encode(p.Subjects)
	if err == nil {
		p.dirty = false
	}
	return err
}

// ColorFor returns the color ID of subject, assigning one if needed.
func (p *Palette) ColorFor(subject string) string {
	if subject == "" {
		return NoSubjectColor
	}

	p.tick++
	p.dirty = true
	if state, ok := p.Subjects[subject]; ok {
		state.LastUsed = p.tick
		return state.ColorID
	}
	return p.assignColor(subject)
}

func (p *Palette) assignColor(subject string) string {
	used := make(map[string]bool)
	for _, s := range p.Subjects {
		used[s.ColorID] = true
	}

	for i := 1; i <= paletteSize; i++ {
		id := strconv.Itoa(i)
		if !used[id] {
			p.Subjects[subject] = &SubjectState{ColorID: id, LastUsed: p.tick}
			return id
		}
	}

	var oldest string
	for name, s := range p.Subjects {
		if oldest == "" || s.LastUsed < p.Subjects[oldest].LastUsed {
			oldest = name
		}
	}
	recycled := p.Subjects[oldest].ColorID
	delete(p.Subjects, oldest)
	p.Subjects[subject] = &SubjectState{ColorID: recycled, LastUsed: p.tick}
	return recycled
}
