// Package orgmode imports tasks from Org-mode files.
//
// A task is a top-level TODO or DONE headline with a DEADLINE. Category,
// subject and progress come from the property drawer:
//
//	* TODO [#A] Normalization worksheet :dbms:
//	  DEADLINE: <2026-03-05 Thu 14:00>
//	  :PROPERTIES:
//	  :CATEGORY: Assignment
//	  :SUBJECT:  Database Management
//	  :PROGRESS: 40
//	  :END:
//	  Third normal form exercises.
package orgmode

import (
	"bufio"
	"io"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/harrisonrobin/studyboard/pkg/model"
)

// Headline is one imported task with the tags of its headline.
type Headline struct {
	Input model.TaskInput
	Tags  []string
}

var (
	subHeadlineRegex = regexp.MustCompile(`^\*{2,}\s`)
	headlineRegex    = regexp.MustCompile(`^\* (TODO|DONE)\s*(?:\[#([A-Z])\])?\s*(.*?)(?:\s+(:(\w+(:\w+)*):))?\s*$`)
	deadlineRegex    = regexp.MustCompile(`DEADLINE:\s+<(\d{4}-\d{2}-\d{2})(?:\s+[A-Za-z]{3})?(?:\s+(\d{1,2}:\d{2}))?>`)
	propertyRegex    = regexp.MustCompile(`^:([A-Za-z_]+):\s*(.*)$`)
)

// parseFile parses an Org-mode file.
func parseFile(filePath string) ([]Headline, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file, filePath)
}

// ParseFiles parses multiple Org-mode files in order.
func ParseFiles(filePaths []string) ([]Headline, error) {
	var all []Headline
	for _, filePath := range filePaths {
		headlines, err := parseFile(filePath)
		if err != nil {
			return nil, err
		}
		all = append(all, headlines...)
	}
	return all, nil
}

type pending struct {
	headline    Headline
	done        bool
	category    string
	description []string
	inDrawer    bool
}

// Parse reads TODO and DONE headlines from r. Headlines without a deadline
// are skipped. DONE headlines import at 100% progress; missing or unknown
// categories fall back to a matching tag, then to Homework.
func Parse(r io.Reader, source string) ([]Headline, error) {
	log.Printf("parsing file: %s", source)
	scanner := bufio.NewScanner(r)
	var headlines []Headline
	var current *pending

	flush := func() {
		if current == nil {
			return
		}
		if h, ok := current.finish(); ok {
			headlines = append(headlines, h)
		} else {
			log.Printf("Warning: skipping %q in %s: no deadline", current.headline.Input.Title, source)
		}
		current = nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "* ") {
			flush()
			if matches := headlineRegex.FindStringSubmatch(line); matches != nil {
				current = &pending{done: matches[1] == "DONE"}
				current.headline.Input.Title = strings.TrimSpace(matches[3])
				if matches[4] != "" {
					current.headline.Tags = strings.Split(strings.Trim(matches[4], ":"), ":")
				}
			}
			continue
		}
		// a sub-headline closes its parent; its own body is not imported
		if subHeadlineRegex.MatchString(line) {
			flush()
			continue
		}
		if current == nil {
			continue
		}

		switch {
		case strings.HasPrefix(line, "#+"):
		case line == ":PROPERTIES:":
			current.inDrawer = true
		case line == ":END:":
			current.inDrawer = false
		case current.inDrawer:
			if matches := propertyRegex.FindStringSubmatch(line); matches != nil {
				current.property(strings.ToUpper(matches[1]), strings.TrimSpace(matches[2]))
			}
		case deadlineRegex.MatchString(line):
			current.deadline(deadlineRegex.FindStringSubmatch(line))
		case line != "" && !strings.HasPrefix(line, "SCHEDULED:") && !strings.HasPrefix(line, "CLOSED:"):
			current.description = append(current.description, line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return headlines, nil
}

func (p *pending) property(key, value string) {
	in := &p.headline.Input
	switch key {
	case "CATEGORY":
		p.category = value
	case "SUBJECT":
		in.Subject = value
	case "PROGRESS":
		n, err := strconv.Atoi(strings.TrimSuffix(value, "%"))
		if err != nil {
			log.Printf("Warning: ignoring progress %q of %q", value, in.Title)
			return
		}
		in.Progress = model.ClampProgress(n)
	}
}

func (p *pending) deadline(matches []string) {
	day, err := time.ParseInLocation("2006-01-02", matches[1], time.Local)
	if err != nil {
		return
	}
	// date-only deadlines fall due at the end of the day
	hour, minute := 23, 59
	if matches[2] != "" {
		t, err := time.Parse("15:04", matches[2])
		if err != nil {
			return
		}
		hour, minute = t.Hour(), t.Minute()
	}
	p.headline.Input.Deadline = time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.Local)
}

func (p *pending) finish() (Headline, bool) {
	in := &p.headline.Input
	if in.Title == "" || in.Deadline.IsZero() {
		return Headline{}, false
	}
	if p.done {
		in.Progress = 100
	}
	in.Category = p.resolveCategory()
	in.Description = strings.Join(p.description, "\n")
	return p.headline, true
}

func (p *pending) resolveCategory() model.Category {
	if c, ok := model.ParseCategory(p.category); ok {
		return c
	}
	if p.category != "" {
		log.Printf("Warning: unknown category %q on %q, using %s", p.category, p.headline.Input.Title, model.CategoryHomework)
	}
	for _, tag := range p.headline.Tags {
		if c, ok := model.ParseCategory(tag); ok {
			return c
		}
	}
	return model.CategoryHomework
}

// FilterTasks keeps the headlines carrying tag.
func FilterTasks(headlines []Headline, tag string) []Headline {
	var filtered []Headline
	for _, h := range headlines {
		for _, t := range h.Tags {
			if t == tag {
				filtered = append(filtered, h)
				break
			}
		}
	}
	return filtered
}

// Inputs strips the tags off headlines.
func Inputs(headlines []Headline) []model.TaskInput {
	out := make([]model.TaskInput, len(headlines))
	for i, h := range headlines {
		out[i] = h.Input
	}
	return out
}
