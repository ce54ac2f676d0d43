package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/riordanpawley/walrus/internal/core/bucket"
	"github.com/riordanpawley/walrus/internal/core/container"
	"github.com/riordanpawley/walrus/internal/domain"
	"github.com/riordanpawley/walrus/internal/services/clock"
	"github.com/riordanpawley/walrus/internal/services/output"
)

// Result holds the state left behind by a replay
type Result struct {
	Buckets []bucket.Bucket
	Queries []QueryResult

	tasks map[string]*domain.Task
}

// QueryResult is the answer to one query. Priority is set for priority
// queries only.
type QueryResult struct {
	Query    Query
	Tasks    []*domain.Task
	Priority int
}

// Task returns the most recently created task with the given name
func (r *Result) Task(name string) (*domain.Task, error) {
	t, ok := r.tasks[name]
	if !ok {
		return nil, fmt.Errorf("task %q: %w", name, domain.ErrNotFound)
	}
	return t, nil
}

// Bucket returns the bucket with the given name
func (r *Result) Bucket(name string) (bucket.Bucket, error) {
	for _, b := range r.Buckets {
		if b.Name() == name {
			return b, nil
		}
	}
	return nil, fmt.Errorf("bucket %q: %w", name, domain.ErrNotFound)
}

// Runner replays scenarios using the providers of a container
type Runner struct {
	container *container.Container
	logger    *slog.Logger
}

// NewRunner creates a runner
func NewRunner(c *container.Container, logger *slog.Logger) *Runner {
	return &Runner{container: c, logger: logger}
}

// Run replays f. When the scenario pins a clock it is registered on the
// container before any bucket is built.
func (r *Runner) Run(ctx context.Context, f *File) (*Result, error) {
	start, step, err := f.Clock.parse()
	if err != nil {
		return nil, &domain.ScenarioError{Op: "clock", Err: err}
	}
	if !start.IsZero() {
		r.logger.Debug("using stepping clock", "start", start, "step", step)
		r.container.Register(container.NameClock, container.Value(domain.Clock(clock.NewStepping(start, step))))
	}

	res := &Result{tasks: make(map[string]*domain.Task)}
	for _, def := range f.Buckets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		b, err := r.newBucket(def)
		if err != nil {
			return nil, err
		}
		res.Buckets = append(res.Buckets, b)

		for _, ts := range def.Tasks {
			t, err := r.replayTask(b, ts)
			if err != nil {
				return nil, err
			}
			if _, dup := res.tasks[ts.Name]; dup {
				r.logger.Warn("task name reused; history lookups see the latest", "task", ts.Name)
			}
			res.tasks[ts.Name] = t
		}
	}

	for _, q := range f.Queries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		qr, err := r.query(res, q)
		if err != nil {
			return nil, err
		}
		res.Queries = append(res.Queries, qr)
	}

	return res, nil
}

func (r *Runner) newBucket(def Bucket) (bucket.Bucket, error) {
	name := container.NameBucket
	switch bucket.Strategy(def.Strategy) {
	case bucket.StrategyTeam:
		name = container.NameTeamBucket
	case bucket.StrategyWalrus:
		name = container.NameWalrusBucket
	}

	newBucket, err := container.Resolve[bucket.Builder](r.container, name)
	if err != nil {
		return nil, &domain.ScenarioError{Op: "bucket", Bucket: def.Name, Err: err}
	}

	r.logger.Debug("creating bucket", "bucket", def.Name, "provider", name)
	return newBucket(def.Name), nil
}

func (r *Runner) replayTask(b bucket.Bucket, def Task) (*domain.Task, error) {
	size, err := domain.ParseSize(def.Size)
	if err != nil {
		return nil, &domain.ScenarioError{Op: "task", Bucket: b.Name(), Task: def.Name, Err: err}
	}

	t := b.AddNew(def.Name, size)
	for _, tr := range def.Transitions {
		activity, err := domain.ParseActivity(tr.Activity)
		if err != nil {
			return nil, &domain.ScenarioError{Op: "transition", Bucket: b.Name(), Task: def.Name, Err: err}
		}
		descriptor := domain.NoDescriptor
		if tr.Descriptor != nil {
			descriptor = domain.Describe(*tr.Descriptor)
		}
		t.ChangeState(tr.State, activity, descriptor)
	}

	r.logger.Debug("replayed task", "bucket", b.Name(), "task", t.Key(), "transitions", len(def.Transitions))
	return t, nil
}

func (r *Runner) query(res *Result, q Query) (QueryResult, error) {
	b, err := res.Bucket(q.Bucket)
	if err != nil {
		return QueryResult{}, &domain.ScenarioError{Op: "query", Bucket: q.Bucket, Err: err}
	}
	criteria, err := domain.CriteriaFromMap(q.Criteria)
	if err != nil {
		return QueryResult{}, &domain.ScenarioError{Op: "query", Bucket: q.Bucket, Err: err}
	}

	qr := QueryResult{Query: q}
	switch q.Kind {
	case KindAll:
		qr.Tasks = b.AllTasks(criteria)
	case KindActive:
		qr.Tasks = b.ActiveTasks(criteria)
	case KindClosed:
		qr.Tasks = b.CompleteTasks(criteria)
	case KindNonActive:
		qr.Tasks = b.NonActiveTasks(criteria)
	case KindPriority:
		t, err := res.Task(q.Task)
		if err != nil {
			return QueryResult{}, &domain.ScenarioError{Op: "query", Bucket: q.Bucket, Task: q.Task, Err: err}
		}
		qr.Priority, err = b.Priority(t)
		if err != nil {
			return QueryResult{}, &domain.ScenarioError{Op: "query", Bucket: q.Bucket, Task: q.Task, Err: err}
		}
		qr.Tasks = []*domain.Task{t}
	default:
		return QueryResult{}, &domain.ScenarioError{Op: "query", Bucket: q.Bucket, Err: fmt.Errorf("unknown query kind %q", q.Kind)}
	}

	r.logger.Debug("ran query", "bucket", q.Bucket, "kind", q.Kind, "results", len(qr.Tasks))
	return qr, nil
}

// Report writes every bucket and query result of res. Task lists are
// ordered by order; the zero Sort keeps bucket order.
func Report(w *output.Writer, res *Result, order domain.Sort) {
	for _, b := range res.Buckets {
		w.Write("Bucket: %s (%d tasks)", b.Name(), b.Len())
		w.IncreaseIndent(func() {
			writeTasks(w, order.Apply(b.AllTasks(domain.Criteria{})))
		})
	}

	for _, qr := range res.Queries {
		w.Write("Query: %s", describeQuery(qr.Query))
		w.IncreaseIndent(func() {
			if qr.Query.Kind == KindPriority {
				w.Write("Priority: %d", qr.Priority)
				return
			}
			writeTasks(w, order.Apply(qr.Tasks))
		})
	}
}

// WriteHistory writes the state chain of t, origin first
func WriteHistory(w *output.Writer, t *domain.Task) {
	w.Write("Task: %s (%s)", t.Name(), t.Key())
	w.IncreaseIndent(func() {
		for i, s := range t.States().History() {
			w.Write("%d. %s [%s] %s: %s", i+1, s.StateName(), s.Activity(),
				s.Date().Format(time.RFC3339), s.Descriptor())
		}
	})
}

func writeTasks(w *output.Writer, tasks []*domain.Task) {
	if len(tasks) == 0 {
		w.Write("(no tasks)")
		return
	}
	for _, t := range tasks {
		w.Write("%s", t.String())
	}
}

func describeQuery(q Query) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s in %q", q.Kind, q.Bucket)
	if q.Task != "" {
		fmt.Fprintf(&sb, " for %q", q.Task)
	}
	criteria, err := domain.CriteriaFromMap(q.Criteria)
	if err == nil && !criteria.IsEmpty() {
		m := criteria.Map()
		sb.WriteString(" where")
		for _, key := range domain.CriteriaKeys {
			if v, ok := m[key]; ok {
				fmt.Fprintf(&sb, " %s=%s", key, v)
			}
		}
	}
	return sb.String()
}
