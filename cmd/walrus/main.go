// Package main provides the entry point for walrus.
//
// walrus tracks tasks through buckets. It replays YAML scenarios and opens
// an interactive board built with Bubbletea.
//
// Usage:
//
//	walrus [--config path] [--debug] run <scenario.yaml>
//	walrus history <scenario.yaml> <task name>
//	walrus board [scenario.yaml]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/riordanpawley/walrus/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
