// Package taskwarrior imports tasks from a Taskwarrior export.
package taskwarrior

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"

	"github.com/harrisonrobin/studyboard/pkg/model"
)

type Client struct {
	// Binary is the task executable, "task" by default.
	Binary string
}

func NewClient() *Client {
	return &Client{Binary: "task"}
}

// GetTasks runs `task <filter> export` with hooks disabled.
func (c *Client) GetTasks(filter []string) ([]Task, error) {
	args := append(append([]string{}, filter...), "export", "rc.hooks=0")
	cmd := exec.Command(c.Binary, args...)

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("taskwarrior command failed: exit code %d, %s, stderr: %s",
				exitErr.ExitCode(), err, exitErr.Stderr)
		}
		return nil, fmt.Errorf("taskwarrior command failed: %w", err)
	}
	return c.ParseTasks(bytes.NewReader(output))
}

// ParseTasks decodes either a JSON array, as written by `task export`, or
// a stream of JSON objects, one per task.
func (c *Client) ParseTasks(r io.Reader) ([]Task, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	decoder := json.NewDecoder(br)
	if first == '[' {
		var tasks []Task
		if err := decoder.Decode(&tasks); err != nil {
			return nil, fmt.Errorf("failed to decode task json: %w", err)
		}
		return tasks, nil
	}

	var tasks []Task
	for {
		var task Task
		if err := decoder.Decode(&task); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to decode task json: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}

// ToInputs converts exported tasks into new task inputs. Deleted tasks
// and tasks without a due date are skipped. The first tag naming a
// category decides it, Homework otherwise.
func ToInputs(tasks []Task) []model.TaskInput {
	var inputs []model.TaskInput
	for _, t := range tasks {
		if t.Status == DELETED {
			continue
		}
		if t.Due == nil || t.Due.IsZero() {
			log.Printf("Warning: skipping taskwarrior task %s: no due date", t.UUID)
			continue
		}

		in := model.TaskInput{
			Title:    t.Description,
			Category: model.CategoryHomework,
			Subject:  t.Project,
			Deadline: t.Due.Time,
		}
		for _, tag := range t.Tags {
			if c, ok := model.ParseCategory(tag); ok {
				in.Category = c
				break
			}
		}
		if t.Progress != nil {
			in.Progress = model.ClampProgress(*t.Progress)
		}
		if t.Status == COMPLETED {
			in.Progress = 100
		}

		var notes []string
		for _, ann := range t.Annotations {
			notes = append(notes, ann.Description)
		}
		in.Description = strings.Join(notes, "\n")
		inputs = append(inputs, in)
	}
	return inputs
}
