// Package scenario loads YAML descriptions of buckets, task transitions and
// queries, and replays them against the tracker.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/riordanpawley/walrus/internal/core/bucket"
	"github.com/riordanpawley/walrus/internal/domain"
)

// Query kinds
const (
	KindAll       = "all"
	KindActive    = "active"
	KindClosed    = "closed"
	KindNonActive = "nonactive"
	KindPriority  = "priority"
)

// File is a parsed scenario
type File struct {
	Clock   Clock    `yaml:"clock"`
	Buckets []Bucket `yaml:"buckets"`
	Queries []Query  `yaml:"queries"`
}

// Clock optionally pins the scenario to a stepping clock
type Clock struct {
	Start string `yaml:"start"`
	Step  string `yaml:"step"`
}

// Bucket describes one bucket and the tasks added to it, in order
type Bucket struct {
	Name     string `yaml:"name"`
	Strategy string `yaml:"strategy"`
	Tasks    []Task `yaml:"tasks"`
}

// Task describes a task created in its bucket and the transitions applied
// after it was queued
type Task struct {
	Name        string       `yaml:"name"`
	Size        string       `yaml:"size"`
	Transitions []Transition `yaml:"transitions"`
}

// Transition is one state change. A nil Descriptor records no descriptor.
type Transition struct {
	State      string  `yaml:"state"`
	Activity   string  `yaml:"activity"`
	Descriptor *string `yaml:"descriptor"`
}

// Query asks a bucket for tasks. Criteria use the loose criteria keys.
type Query struct {
	Bucket   string            `yaml:"bucket"`
	Kind     string            `yaml:"kind"`
	Task     string            `yaml:"task"`
	Criteria map[string]string `yaml:"criteria"`
}

// Load reads and validates the scenario at path
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes a scenario document. Unknown fields are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, &domain.ScenarioError{Op: "parse", Err: err}
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks names, labels and references without replaying anything
func (f *File) Validate() error {
	if _, _, err := f.Clock.parse(); err != nil {
		return &domain.ScenarioError{Op: "clock", Err: err}
	}

	seen := make(map[string]bool, len(f.Buckets))
	for _, b := range f.Buckets {
		if b.Name == "" {
			return &domain.ScenarioError{Op: "bucket", Err: errors.New("bucket name is required")}
		}
		if seen[b.Name] {
			return &domain.ScenarioError{Op: "bucket", Bucket: b.Name, Err: errors.New("duplicate bucket name")}
		}
		seen[b.Name] = true

		if b.Strategy != "" {
			if _, err := bucket.ParseStrategy(b.Strategy); err != nil {
				return &domain.ScenarioError{Op: "bucket", Bucket: b.Name, Err: err}
			}
		}

		for _, t := range b.Tasks {
			if _, err := domain.ParseSize(t.Size); err != nil {
				return &domain.ScenarioError{Op: "task", Bucket: b.Name, Task: t.Name, Err: err}
			}
			for _, tr := range t.Transitions {
				if tr.State == "" {
					return &domain.ScenarioError{Op: "transition", Bucket: b.Name, Task: t.Name, Err: errors.New("state name is required")}
				}
				if _, err := domain.ParseActivity(tr.Activity); err != nil {
					return &domain.ScenarioError{Op: "transition", Bucket: b.Name, Task: t.Name, Err: err}
				}
			}
		}
	}

	for _, q := range f.Queries {
		if !seen[q.Bucket] {
			return &domain.ScenarioError{Op: "query", Bucket: q.Bucket, Err: fmt.Errorf("bucket %w", domain.ErrNotFound)}
		}
		switch q.Kind {
		case KindAll, KindActive, KindClosed, KindNonActive:
		case KindPriority:
			if q.Task == "" {
				return &domain.ScenarioError{Op: "query", Bucket: q.Bucket, Err: errors.New("priority query needs a task")}
			}
		default:
			return &domain.ScenarioError{Op: "query", Bucket: q.Bucket, Err: fmt.Errorf("unknown query kind %q", q.Kind)}
		}
		if _, err := domain.CriteriaFromMap(q.Criteria); err != nil {
			return &domain.ScenarioError{Op: "query", Bucket: q.Bucket, Err: err}
		}
	}

	return nil
}

// parse returns the stepping clock settings, if a start is given
func (c Clock) parse() (start time.Time, step time.Duration, err error) {
	if c.Start == "" {
		return time.Time{}, 0, nil
	}
	start, err = domain.ParseTime(c.Start)
	if err != nil {
		return time.Time{}, 0, err
	}
	step = 24 * time.Hour
	if c.Step != "" {
		step, err = time.ParseDuration(c.Step)
		if err != nil {
			return time.Time{}, 0, err
		}
	}
	return start, step, nil
}
