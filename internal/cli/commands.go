// Package cli implements the walrus command line: replaying scenarios,
// printing task histories and opening the interactive board.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/walrus/internal/app"
	"github.com/riordanpawley/walrus/internal/config"
	"github.com/riordanpawley/walrus/internal/core/bucket"
	"github.com/riordanpawley/walrus/internal/core/container"
	"github.com/riordanpawley/walrus/internal/domain"
	"github.com/riordanpawley/walrus/internal/services/clock"
	"github.com/riordanpawley/walrus/internal/services/output"
	"github.com/riordanpawley/walrus/internal/services/scenario"
)

// Dependencies holds all the services needed for CLI commands
type Dependencies struct {
	Config    *config.Config
	Container *container.Container
	Writer    *output.Writer
	Logger    *slog.Logger
	Out       io.Writer
}

// NewDependencies wires a container from cfg. Reports are written to out.
func NewDependencies(cfg *config.Config, logger *slog.Logger, out io.Writer) (*Dependencies, error) {
	strategy, err := bucket.ParseStrategy(cfg.Bucket.Strategy)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	opts := []container.Option{
		container.WithStrategy(strategy),
		container.WithConsole(output.NewStreamConsole(out)),
	}

	start, ok, err := cfg.ClockStart()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if ok {
		logger.Debug("using stepping clock from config", "start", start, "step", cfg.ClockStep())
		opts = append(opts, container.WithClock(clock.NewStepping(start, cfg.ClockStep())))
	}

	c := container.New(logger, opts...)
	w, err := container.Resolve[*output.Writer](c, container.NameWriter)
	if err != nil {
		return nil, err
	}

	return &Dependencies{
		Config:    cfg,
		Container: c,
		Writer:    w,
		Logger:    logger,
		Out:       out,
	}, nil
}

// replay loads and runs the scenario at path
func (d *Dependencies) replay(ctx context.Context, path string) (*scenario.Result, error) {
	f, err := scenario.Load(path)
	if err != nil {
		return nil, err
	}

	d.Logger.Debug("replaying scenario", "path", path, "buckets", len(f.Buckets), "queries", len(f.Queries))
	res, err := scenario.NewRunner(d.Container, d.Logger).Run(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to replay %s: %w", path, err)
	}
	return res, nil
}

// ExpandScenarios resolves scenario arguments. Arguments with glob
// metacharacters are expanded (with ** support) and must match at least one
// file; plain paths pass through unchanged.
func ExpandScenarios(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			paths = append(paths, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid scenario pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no scenarios match %q", arg)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

type summaryRow struct {
	scenario string
	bucket   bucket.Bucket
}

// RunCommand replays each scenario in a fresh container and reports every
// bucket and query, followed by a per-bucket summary table
func RunCommand(ctx context.Context, deps *Dependencies, paths []string, order domain.Sort) error {
	var rows []summaryRow
	for _, path := range paths {
		run := deps
		if len(paths) > 1 {
			var err error
			if run, err = NewDependencies(deps.Config, deps.Logger, deps.Out); err != nil {
				return err
			}
		}

		res, err := run.replay(ctx, path)
		if err != nil {
			return err
		}

		if len(paths) > 1 {
			run.Writer.Write("Scenario: %s", path)
			run.Writer.IncreaseIndent(func() {
				scenario.Report(run.Writer, res, order)
			})
		} else {
			scenario.Report(run.Writer, res, order)
		}

		for _, b := range res.Buckets {
			rows = append(rows, summaryRow{scenario: path, bucket: b})
		}
	}

	if len(rows) == 0 {
		return nil
	}
	return writeSummary(deps.Out, rows, len(paths) > 1)
}

func writeSummary(out io.Writer, rows []summaryRow, withScenario bool) error {
	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if withScenario {
		fmt.Fprint(w, "SCENARIO\t")
	}
	fmt.Fprintln(w, "BUCKET\tNON-ACTIVE\tACTIVE\tCLOSED\tTOTAL")

	all := domain.Criteria{}
	for _, row := range rows {
		if withScenario {
			fmt.Fprintf(w, "%s\t", row.scenario)
		}
		b := row.bucket
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n",
			b.Name(),
			len(b.NonActiveTasks(all)),
			len(b.ActiveTasks(all)),
			len(b.CompleteTasks(all)),
			b.Len(),
		)
	}
	return w.Flush()
}

// HistoryCommand replays a scenario and prints the state chain of one task
func HistoryCommand(ctx context.Context, deps *Dependencies, path, taskName string) error {
	res, err := deps.replay(ctx, path)
	if err != nil {
		return err
	}

	task, err := res.Task(taskName)
	if err != nil {
		return err
	}

	scenario.WriteHistory(deps.Writer, task)
	return nil
}

// BoardBucket returns the bucket the board opens on: the first bucket of the
// scenario at path, or an empty bucket named from config when path is empty
func BoardBucket(ctx context.Context, deps *Dependencies, path string) (bucket.Bucket, error) {
	if path == "" {
		newBucket, err := container.Resolve[bucket.Builder](deps.Container, container.NameBucket)
		if err != nil {
			return nil, err
		}
		return newBucket(deps.Config.Bucket.Name), nil
	}

	res, err := deps.replay(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(res.Buckets) == 0 {
		return nil, errors.New("scenario has no buckets to show")
	}
	if len(res.Buckets) > 1 {
		deps.Logger.Warn("scenario has several buckets; showing the first", "bucket", res.Buckets[0].Name())
	}
	return res.Buckets[0], nil
}

// BoardCommand opens the interactive board
func BoardCommand(ctx context.Context, deps *Dependencies, path string) error {
	b, err := BoardBucket(ctx, deps, path)
	if err != nil {
		return err
	}

	model := app.New(b, app.Options{ShowDescriptors: !deps.Config.Board.HideDescriptors}, deps.Logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("board: %w", err)
	}
	return nil
}
