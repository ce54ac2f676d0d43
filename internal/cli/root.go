package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	ucli "github.com/urfave/cli/v3"

	"github.com/riordanpawley/walrus/internal/config"
	"github.com/riordanpawley/walrus/internal/domain"
)

// DebugLogFile receives board logs when --debug is set
const DebugLogFile = "walrus-debug.log"

// NewRootCommand creates the walrus command tree
func NewRootCommand() *ucli.Command {
	return &ucli.Command{
		Name:  "walrus",
		Usage: "Track tasks through buckets and replay scenarios",
		Flags: []ucli.Flag{
			&ucli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file (default: ./" + config.FileName + ")",
			},
			&ucli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Commands: []*ucli.Command{
			newRunCommand(),
			newHistoryCommand(),
			newBoardCommand(),
		},
	}
}

func newRunCommand() *ucli.Command {
	return &ucli.Command{
		Name:      "run",
		Usage:     "Replay a scenario and report buckets and queries",
		ArgsUsage: "<scenario.yaml|pattern>...",
		Flags: []ucli.Flag{
			&ucli.StringFlag{
				Name:  "sort",
				Usage: "order task lists by name, size or updated",
			},
			&ucli.BoolFlag{
				Name:  "desc",
				Usage: "sort in descending order",
			},
		},
		Action: func(ctx context.Context, cmd *ucli.Command) error {
			if cmd.Args().Len() == 0 {
				return fmt.Errorf("usage: walrus run %s", cmd.ArgsUsage)
			}
			paths, err := ExpandScenarios(cmd.Args().Slice())
			if err != nil {
				return err
			}
			order, err := parseSort(cmd.String("sort"), cmd.Bool("desc"))
			if err != nil {
				return err
			}
			deps, err := loadDependencies(cmd, nil)
			if err != nil {
				return err
			}
			return RunCommand(ctx, deps, paths, order)
		},
	}
}

func newHistoryCommand() *ucli.Command {
	return &ucli.Command{
		Name:      "history",
		Usage:     "Print the state chain of one task from a scenario",
		ArgsUsage: "<scenario.yaml> <task name>",
		Action: func(ctx context.Context, cmd *ucli.Command) error {
			if cmd.Args().Len() != 2 {
				return fmt.Errorf("usage: walrus history %s", cmd.ArgsUsage)
			}
			deps, err := loadDependencies(cmd, nil)
			if err != nil {
				return err
			}
			return HistoryCommand(ctx, deps, cmd.Args().Get(0), cmd.Args().Get(1))
		},
	}
}

func newBoardCommand() *ucli.Command {
	return &ucli.Command{
		Name:      "board",
		Usage:     "Open the interactive board",
		ArgsUsage: "[scenario.yaml]",
		Action: func(ctx context.Context, cmd *ucli.Command) error {
			if cmd.Args().Len() > 1 {
				return fmt.Errorf("usage: walrus board %s", cmd.ArgsUsage)
			}

			// The board owns the terminal, so logs go to a file or nowhere.
			logOut := io.Discard
			if cmd.Bool("debug") {
				f, err := os.OpenFile(DebugLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("failed to open debug log: %w", err)
				}
				defer f.Close()
				logOut = f
			}

			deps, err := loadDependencies(cmd, logOut)
			if err != nil {
				return err
			}
			return BoardCommand(ctx, deps, cmd.Args().First())
		},
	}
}

// loadDependencies reads the config named by --config, or the one in the
// working directory, and wires the container. Logs go to logOut, or to the
// root error writer when logOut is nil.
func loadDependencies(cmd *ucli.Command, logOut io.Writer) (*Dependencies, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := cmd.String("config"); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if cmd.Bool("debug") {
		cfg.Log.Level = "debug"
	}

	root := cmd.Root()
	if logOut == nil {
		logOut = root.ErrWriter
	}
	if logOut == nil {
		logOut = os.Stderr
	}
	out := root.Writer
	if out == nil {
		out = os.Stdout
	}

	return NewDependencies(cfg, cfg.NewLogger(logOut), out)
}

func parseSort(field string, desc bool) (domain.Sort, error) {
	var order domain.Sort
	if desc {
		order.Order = domain.SortDesc
	}
	switch f := domain.SortField(strings.ToLower(field)); f {
	case "":
		if desc {
			return order, fmt.Errorf("--desc needs --sort")
		}
	case domain.SortByName, domain.SortBySize, domain.SortByUpdated:
		order.Field = f
	default:
		return order, fmt.Errorf("unknown sort field %q (want name, size or updated)", field)
	}
	return order, nil
}
