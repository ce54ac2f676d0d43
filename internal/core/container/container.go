// Package container is the registry of named providers used to wire the
// tracker together. Defaults are installed by New; Register overrides a
// default (or adds a new name) until Deregister removes the override.
package container

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/riordanpawley/walrus/internal/core/bucket"
	"github.com/riordanpawley/walrus/internal/domain"
	"github.com/riordanpawley/walrus/internal/services/clock"
	"github.com/riordanpawley/walrus/internal/services/guid"
	"github.com/riordanpawley/walrus/internal/services/output"
)

// Provider names
const (
	NameClock        = "Clock"
	NameIDSource     = "Guid"
	NameStateChange  = "StateChange"
	NameTask         = "Task"
	NameTaskFilter   = "TaskFilter"
	NameTeamBucket   = "TeamBucket"
	NameWalrusBucket = "WalrusBucket"
	NameBucket       = "Bucket"
	NameConsole      = "Console"
	NameWriter       = "Writer"
)

// Provider produces the value registered under a name. It receives the
// container so it can resolve its own dependencies.
type Provider func(c *Container) (any, error)

// Container maps names to providers
type Container struct {
	defaults  map[string]Provider
	overrides map[string]Provider
	logger    *slog.Logger
}

// Option customizes a new container
type Option func(*Container)

// New creates a container holding the default providers
func New(logger *slog.Logger, opts ...Option) *Container {
	c := &Container{
		defaults:  defaultProviders(),
		overrides: make(map[string]Provider),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register installs p under name, taking precedence over any default
func (c *Container) Register(name string, p Provider) {
	c.logger.Debug("registering provider", "name", name)
	c.overrides[name] = p
}

// Deregister removes the override for name. Removing a name that was never
// registered is a no-op.
func (c *Container) Deregister(name string) {
	c.logger.Debug("deregistering provider", "name", name)
	delete(c.overrides, name)
}

// Build runs the provider for name, preferring an override to the default
func (c *Container) Build(name string) (any, error) {
	p, overridden := c.overrides[name]
	if !overridden {
		p = c.defaults[name]
	}
	if p == nil {
		return nil, &domain.ProviderError{Op: "build", Name: name, Err: domain.ErrNoProvider}
	}

	c.logger.Debug("building provider", "name", name, "override", overridden)
	v, err := p(c)
	if err != nil {
		return nil, &domain.ProviderError{Op: "build", Name: name, Err: err}
	}
	return v, nil
}

// Resolve builds name and asserts the result to T
func Resolve[T any](c *Container, name string) (T, error) {
	var zero T
	v, err := c.Build(name)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, &domain.ProviderError{
			Op:   "resolve",
			Name: name,
			Err:  fmt.Errorf("provider returned %T, want %T", v, zero),
		}
	}
	return t, nil
}

// Value returns a provider that always yields v
func Value(v any) Provider {
	return func(*Container) (any, error) { return v, nil }
}

// WithClock replaces the clock
func WithClock(clk domain.Clock) Option {
	return func(c *Container) { c.overrides[NameClock] = Value(clk) }
}

// WithIDSource replaces the task key supplier
func WithIDSource(ids domain.IDSource) Option {
	return func(c *Container) { c.overrides[NameIDSource] = Value(ids) }
}

// WithConsole replaces the console reports are written to
func WithConsole(console output.Console) Option {
	return func(c *Container) { c.overrides[NameConsole] = Value(console) }
}

// WithStrategy makes NameBucket build buckets of the given strategy
func WithStrategy(strategy bucket.Strategy) Option {
	name := NameWalrusBucket
	if strategy == bucket.StrategyTeam {
		name = NameTeamBucket
	}
	return func(c *Container) {
		c.overrides[NameBucket] = func(inner *Container) (any, error) {
			return inner.Build(name)
		}
	}
}

func defaultProviders() map[string]Provider {
	return map[string]Provider{
		NameClock:    Value(domain.Clock(clock.System{})),
		NameIDSource: Value(domain.IDSource(guid.UUIDSource{})),
		NameStateChange: func(c *Container) (any, error) {
			clk, err := Resolve[domain.Clock](c, NameClock)
			if err != nil {
				return nil, err
			}
			return domain.NewStateChangeBuilder(clk), nil
		},
		NameTask: func(c *Container) (any, error) {
			states, err := Resolve[domain.StateChangeBuilder](c, NameStateChange)
			if err != nil {
				return nil, err
			}
			ids, err := Resolve[domain.IDSource](c, NameIDSource)
			if err != nil {
				return nil, err
			}
			return domain.NewTaskBuilder(states, ids), nil
		},
		NameTaskFilter: Value(domain.NewFilterBuilder()),
		NameTeamBucket: func(c *Container) (any, error) {
			return bucketBuilder(c, bucket.StrategyTeam)
		},
		NameWalrusBucket: func(c *Container) (any, error) {
			return bucketBuilder(c, bucket.StrategyWalrus)
		},
		NameBucket: func(c *Container) (any, error) {
			return c.Build(NameWalrusBucket)
		},
		NameConsole: Value(output.Console(output.NewStreamConsole(os.Stdout))),
		NameWriter: func(c *Container) (any, error) {
			console, err := Resolve[output.Console](c, NameConsole)
			if err != nil {
				return nil, err
			}
			return output.NewWriter(console), nil
		},
	}
}

func bucketBuilder(c *Container, strategy bucket.Strategy) (bucket.Builder, error) {
	newTask, err := Resolve[domain.TaskBuilder](c, NameTask)
	if err != nil {
		return nil, err
	}
	newFilter, err := Resolve[domain.FilterBuilder](c, NameTaskFilter)
	if err != nil {
		return nil, err
	}
	return bucket.NewBuilder(strategy, newTask, newFilter)
}
