package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallConfig keeps CLI runs fast.
const smallConfig = `
nodes: 60
dense_areas: 2
radius: 0.15
max_neighbors: 3
steps: 3
seed: 4
snapshot: true
`

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--quiet"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(smallConfig), 0o600))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "pubwebgen", cmd.Use)

	for _, name := range []string{"generate", "replay"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)
}

func TestGenerateFlags(t *testing.T) {
	cmd := NewRootCommand()
	gen, _, err := cmd.Find([]string{"generate"})
	require.NoError(t, err)

	for _, name := range []string{"config", "steps", "seed", "format", "out", "name", "metrics-file"} {
		assert.NotNil(t, gen.Flags().Lookup(name), name)
	}
	assert.Equal(t, "o", gen.Flags().Lookup("out").Shorthand)
}

func TestGenerate_DGSToStdout(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())

	out, err := execute(t, "generate", "-c", cfg, "--name", "cli")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "DGS004", lines[0])
	assert.Equal(t, `"cli" 0 0`, lines[1])
	assert.Equal(t, "st 4", lines[len(lines)-1], "snapshot plus three steps")
}

func TestGenerateThenReplay_JSONL(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	events := filepath.Join(dir, "events.jsonl")
	metrics := filepath.Join(dir, "metrics.prom")

	_, err := execute(t, "generate", "-c", cfg, "-f", "jsonl", "-o", events, "--metrics-file", metrics)
	require.NoError(t, err)

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "pubweb_steps_total 3")

	out, err := execute(t, "replay", "-i", events)
	require.NoError(t, err)
	assert.Contains(t, out, "steps: 4\n")
	assert.Contains(t, out, "nodes: 60\n")
}

func TestGenerateThenReplay_SQLite(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	db := filepath.Join(dir, "runs.db")

	out, err := execute(t, "generate", "-c", cfg, "-f", "sqlite", "-o", db)
	require.NoError(t, err)
	runID := strings.TrimSpace(out)
	require.NotEmpty(t, runID)

	out, err = execute(t, "replay", "-f", "sqlite", "-i", db, "--run", runID)
	require.NoError(t, err)
	assert.Contains(t, out, "steps: 4\n")

	latest, err := execute(t, "replay", "-f", "sqlite", "-i", db)
	require.NoError(t, err)
	assert.Equal(t, out, latest)
}

func TestExitCodes(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "generate", "-c", filepath.Join(dir, "missing.yaml"))
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = execute(t, "generate", "-c", writeConfig(t, dir), "-f", "sqlite")
	assert.Equal(t, ExitCommandError, GetExitCode(err), "sqlite without a path")

	_, err = execute(t, "replay", "-i", filepath.Join(dir, "missing.jsonl"))
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = execute(t, "replay", "-i", "x", "-f", "xml")
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	// a stream without its snapshot cannot be replayed
	broken := filepath.Join(dir, "broken.jsonl")
	require.NoError(t, os.WriteFile(broken, []byte(`{"type":"edge_addition","u":1,"v":2,"w":1}`+"\n"), 0o600))
	_, err = execute(t, "replay", "-i", broken)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
}

func TestExitError(t *testing.T) {
	inner := errors.New("disk full")
	err := WrapExitError(ExitFailure, "write events", inner)
	assert.Equal(t, "write events: disk full", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "bad", NewExitError(ExitCommandError, "bad").Error())
}
