package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrNotFound            = errors.New("not found")
	ErrNoProvider          = errors.New("no provider registered")
	ErrUnsupportedCriteria = errors.New("unsupported criteria key")
	ErrInvalidCriteria     = errors.New("invalid criteria value")
)

// ProviderError reports a container lookup that could not be satisfied
type ProviderError struct {
	Op   string // Operation: "build", "resolve"
	Name string // Provider identifier
	Err  error  // Underlying error
}

func (e *ProviderError) Error() string {
	if e.Err == ErrNoProvider {
		return fmt.Sprintf("no %q provider registered", e.Name)
	}
	if e.Err != nil {
		return fmt.Sprintf("container %s [%s]: %v", e.Op, e.Name, e.Err)
	}
	return fmt.Sprintf("container %s [%s] failed", e.Op, e.Name)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// CriteriaError reports a filter criterion that is not supported or whose
// value cannot be parsed
type CriteriaError struct {
	Key   string
	Value string
	Err   error
}

func (e *CriteriaError) Error() string {
	if errors.Is(e.Err, ErrUnsupportedCriteria) {
		return fmt.Sprintf("%q is not part of task filter criteria", e.Key)
	}
	if e.Value != "" {
		return fmt.Sprintf("criteria %s [%s]: %v", e.Key, e.Value, e.Err)
	}
	return fmt.Sprintf("criteria %s: %v", e.Key, e.Err)
}

func (e *CriteriaError) Unwrap() error {
	return e.Err
}

// ScenarioError reports a scenario step that could not be replayed
type ScenarioError struct {
	Op     string // Operation: "parse", "bucket", "task", "transition", "query"
	Bucket string
	Task   string
	Err    error
}

func (e *ScenarioError) Error() string {
	where := e.Op
	if e.Bucket != "" {
		where += fmt.Sprintf(" [%s]", e.Bucket)
	}
	if e.Task != "" {
		where += fmt.Sprintf(" task %q", e.Task)
	}
	if e.Err != nil {
		return fmt.Sprintf("scenario %s: %v", where, e.Err)
	}
	return fmt.Sprintf("scenario %s failed", where)
}

func (e *ScenarioError) Unwrap() error {
	return e.Err
}
