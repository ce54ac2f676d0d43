package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/walrus/internal/config"
	"github.com/riordanpawley/walrus/internal/domain"
)

const testScenario = `
clock:
  start: 2020-01-01T00:00:00Z
  step: 1h
buckets:
  - name: team A
    strategy: walrus
    tasks:
      - name: Write docs
        size: Medium
        transitions:
          - {state: Started, activity: Active, descriptor: pairing}
      - name: Fix build
        size: Small
      - name: Ship it
        size: Large
        transitions:
          - {state: Done, activity: Closed}
queries:
  - bucket: team A
    kind: priority
    task: Fix build
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// runRoot executes the root command with a config file written to a temp dir
func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, config.FileName, `{"bucket": {"name": "inbox"}, "log": {"level": "warn"}}`)

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.Writer = &stdout
	cmd.ErrWriter = &stderr

	argv := append([]string{"walrus", "--config", cfgPath}, args...)
	err := cmd.Run(context.Background(), argv)
	return stdout.String(), stderr.String(), err
}

func testDependencies(t *testing.T, out *bytes.Buffer) *Dependencies {
	t.Helper()
	cfg := config.DefaultConfig()
	deps, err := NewDependencies(cfg, cfg.NewLogger(&bytes.Buffer{}), out)
	require.NoError(t, err)
	return deps
}

func TestRunCommand(t *testing.T) {
	path := writeFile(t, t.TempDir(), "scenario.yaml", testScenario)
	var out bytes.Buffer
	deps := testDependencies(t, &out)

	err := RunCommand(context.Background(), deps, []string{path}, domain.Sort{})
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "Bucket: team A (3 tasks)")
	assert.Contains(t, got, "\tTask: Write docs\n")
	assert.Contains(t, got, `Query: priority in "team A" for "Fix build"`)
	assert.Contains(t, got, "\tPriority: 1\n")

	assert.Contains(t, got, "BUCKET")
	assert.Contains(t, got, "NON-ACTIVE")
	lines := strings.Split(strings.TrimSpace(got), "\n")
	assert.Equal(t, []string{"team", "A", "1", "1", "1", "3"}, strings.Fields(lines[len(lines)-1]))
}

func TestRunCommand_Sorted(t *testing.T) {
	path := writeFile(t, t.TempDir(), "scenario.yaml", testScenario)
	var out bytes.Buffer
	deps := testDependencies(t, &out)

	err := RunCommand(context.Background(), deps, []string{path}, domain.Sort{Field: domain.SortByName})
	require.NoError(t, err)

	got := out.String()
	fix := strings.Index(got, "Task: Fix build")
	ship := strings.Index(got, "Task: Ship it")
	docs := strings.Index(got, "Task: Write docs")
	assert.Less(t, fix, ship)
	assert.Less(t, ship, docs)
}

func TestRunCommand_SeveralScenarios(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.yaml", testScenario)
	second := writeFile(t, dir, "b.yaml", `
buckets:
  - name: team B
    strategy: team
    tasks:
      - name: Triage
        size: Tiny
`)
	var out bytes.Buffer
	deps := testDependencies(t, &out)

	err := RunCommand(context.Background(), deps, []string{first, second}, domain.Sort{})
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "Scenario: "+first+"\n\tBucket: team A (3 tasks)")
	assert.Contains(t, got, "Scenario: "+second+"\n\tBucket: team B (1 tasks)")
	assert.Contains(t, got, "SCENARIO")

	lines := strings.Split(strings.TrimSpace(got), "\n")
	assert.Equal(t, []string{second, "team", "B", "1", "0", "0", "1"}, strings.Fields(lines[len(lines)-1]))
}

func TestExpandScenarios(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested", "deeper"), 0o755))
	a := writeFile(t, dir, "a.yaml", testScenario)
	b := writeFile(t, filepath.Join(dir, "nested", "deeper"), "b.yaml", testScenario)
	writeFile(t, dir, "notes.txt", "not a scenario")

	paths, err := ExpandScenarios([]string{filepath.Join(dir, "**", "*.yaml")})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a, b}, paths)

	paths, err = ExpandScenarios([]string{"plain.yaml", a})
	require.NoError(t, err)
	assert.Equal(t, []string{"plain.yaml", a}, paths, "plain paths pass through")

	_, err = ExpandScenarios([]string{filepath.Join(dir, "*.json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no scenarios match")

	_, err = ExpandScenarios([]string{filepath.Join(dir, "[")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scenario pattern")
}

func TestRunCommand_MissingScenario(t *testing.T) {
	var out bytes.Buffer
	deps := testDependencies(t, &out)

	err := RunCommand(context.Background(), deps, []string{filepath.Join(t.TempDir(), "nope.yaml")}, domain.Sort{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario")
	assert.Empty(t, out.String())
}

func TestHistoryCommand(t *testing.T) {
	path := writeFile(t, t.TempDir(), "scenario.yaml", testScenario)
	var out bytes.Buffer
	deps := testDependencies(t, &out)

	err := HistoryCommand(context.Background(), deps, path, "Write docs")
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "Task: Write docs (")
	assert.Contains(t, got, "\t1. Created [Non-Active] 2020-01-01T00:00:00Z")
	assert.Contains(t, got, "\t3. Started [Active] 2020-01-01T02:00:00Z: pairing")
}

func TestHistoryCommand_UnknownTask(t *testing.T) {
	path := writeFile(t, t.TempDir(), "scenario.yaml", testScenario)
	var out bytes.Buffer
	deps := testDependencies(t, &out)

	err := HistoryCommand(context.Background(), deps, path, "Nobody")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBoardBucket(t *testing.T) {
	t.Run("empty bucket from config", func(t *testing.T) {
		var out bytes.Buffer
		deps := testDependencies(t, &out)

		b, err := BoardBucket(context.Background(), deps, "")
		require.NoError(t, err)
		assert.Equal(t, "team A's queue", b.Name())
		assert.Equal(t, 0, b.Len())
	})

	t.Run("first scenario bucket", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "scenario.yaml", testScenario)
		var out bytes.Buffer
		deps := testDependencies(t, &out)

		b, err := BoardBucket(context.Background(), deps, path)
		require.NoError(t, err)
		assert.Equal(t, "team A", b.Name())
		assert.Equal(t, 3, b.Len())
	})

	t.Run("scenario without buckets", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "scenario.yaml", "queries: []\n")
		var out bytes.Buffer
		deps := testDependencies(t, &out)

		_, err := BoardBucket(context.Background(), deps, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no buckets")
	})
}

func TestNewDependencies(t *testing.T) {
	t.Run("invalid strategy", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Bucket.Strategy = "fifo"

		_, err := NewDependencies(cfg, cfg.NewLogger(&bytes.Buffer{}), &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid config")
	})

	t.Run("config clock", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Clock.Start = "2021-06-01T00:00:00Z"
		cfg.Clock.Step = "1m"
		var out bytes.Buffer

		deps, err := NewDependencies(cfg, cfg.NewLogger(&bytes.Buffer{}), &out)
		require.NoError(t, err)

		b, err := BoardBucket(context.Background(), deps, "")
		require.NoError(t, err)
		task := b.AddNew("Task", domain.SizeSmall)

		history := task.States().History()
		require.Len(t, history, 2)
		assert.Equal(t, "2021-06-01T00:00:00Z", history[0].Date().UTC().Format(time.RFC3339))
		assert.Equal(t, "2021-06-01T00:01:00Z", history[1].Date().UTC().Format(time.RFC3339))
	})
}
