package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/vlist"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const feedScenario = `name: feed
items: 100
itemHeight: 50
containerHeight: 400
steps:
  - scroll: 1000
`

func TestSimulateCommand(t *testing.T) {
	path := writeScenario(t, feedScenario)

	out, err := execute(t, "simulate", "-f", path)
	require.NoError(t, err)

	assert.Contains(t, out, "feed")
	assert.Contains(t, out, "initial")
	assert.Contains(t, out, "scroll 1000")
	assert.Contains(t, out, "17..31")
	assert.Contains(t, out, "5000px")
	assert.Contains(t, out, "replayed 1 steps, 0 loads")
}

func TestSimulateOverrides(t *testing.T) {
	path := writeScenario(t, feedScenario)

	out, err := execute(t, "simulate", "-f", path, "--overscan", "0", "--container-height", "200")
	require.NoError(t, err)
	assert.Contains(t, out, "20..24")

	_, err = execute(t, "simulate", "-f", path, "--container-height", "-5")
	assert.Error(t, err)
}

func TestSimulateErrors(t *testing.T) {
	_, err := execute(t, "simulate")
	assert.Error(t, err)

	_, err = execute(t, "simulate", "-f", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestPositionsCommand(t *testing.T) {
	out, err := execute(t, "positions", "--heights", "40,60", "-n", "4")
	require.NoError(t, err)

	assert.Contains(t, out, "Index")
	assert.Contains(t, out, "140px")
	assert.Contains(t, out, "4 items, total 200px")

	_, err = execute(t, "positions", "--height", "0")
	assert.ErrorIs(t, err, vlist.ErrNoItemHeight)

	_, err = execute(t, "positions", "-n", "-1")
	assert.ErrorIs(t, err, vlist.ErrNegativeItemCount)
}

func TestRangeCommand(t *testing.T) {
	out, err := execute(t, "range", "-n", "10", "--height", "50", "--offset", "100", "--viewport", "100", "--overscan", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "2..4")
	assert.Contains(t, out, "1..5")
}

func TestVerboseFlag(t *testing.T) {
	defer vlist.SetVerbose(false)

	_, err := execute(t, "--verbose", "version")
	require.NoError(t, err)
	assert.True(t, vlist.Verbose())
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "vlistctl version dev")
}
