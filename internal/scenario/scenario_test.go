package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/vlist"
)

const containerScenario = `name: container
items: 100
itemHeight: 50
containerHeight: 400
steps:
  - scroll: 1000
  - resize: 200
  - setCount: 50
  - frames: 1
`

func TestParseDefaults(t *testing.T) {
	s, err := Parse([]byte(containerScenario))
	require.NoError(t, err)

	assert.Equal(t, "container", s.Name)
	assert.Equal(t, 800.0, s.WindowHeight)
	require.NotNil(t, s.Overscan)
	assert.Equal(t, 3, *s.Overscan)
	assert.Equal(t, vlist.ScrollContainer, s.Target())
	assert.Len(t, s.Steps, 4)
	assert.Equal(t, "scroll 1000", s.Steps[0].String())
	assert.Equal(t, "count 50", s.Steps[2].String())
}

func TestParseSentinelDefaults(t *testing.T) {
	s, err := Parse([]byte(`items: 10
itemHeight: 20
scrollTarget: window
sentinel: {}
`))
	require.NoError(t, err)
	require.NotNil(t, s.Sentinel)
	assert.Equal(t, 100.0, *s.Sentinel.Threshold)
	assert.Equal(t, "down", s.Sentinel.Direction)
	assert.Equal(t, "0px", s.Sentinel.RootMargin)
	assert.Equal(t, 50, s.Sentinel.PageSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no height", "items: 3\ncontainerHeight: 100\n"},
		{"negative items", "items: -1\nitemHeight: 10\ncontainerHeight: 100\n"},
		{"bad heights", "items: 3\nheights: [10, 0]\ncontainerHeight: 100\n"},
		{"container without height", "items: 3\nitemHeight: 10\n"},
		{"bad target", "items: 3\nitemHeight: 10\nscrollTarget: page\n"},
		{"measured without measure", "items: 3\nitemHeight: 10\ncontainerHeight: 100\nmeasured: {0: 20}\n"},
		{"two actions", "items: 3\nitemHeight: 10\ncontainerHeight: 100\nsteps:\n  - {scroll: 10, resize: 20}\n"},
		{"empty step", "items: 3\nitemHeight: 10\ncontainerHeight: 100\nsteps:\n  - {}\n"},
		{"bad direction", "items: 3\nitemHeight: 10\ncontainerHeight: 100\nsentinel: {direction: sideways}\n"},
		{"bad margin", "items: 3\nitemHeight: 10\ncontainerHeight: 100\nsentinel: {rootMargin: wide}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	_, err := Parse([]byte("items: [oops"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse scenario")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(containerScenario), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 100, s.Items)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestHeightSourceCycles(t *testing.T) {
	s := &Scenario{Heights: []float64{40, 60}}
	src := s.HeightSource()
	assert.Equal(t, 40.0, src.At(0))
	assert.Equal(t, 60.0, src.At(3))
	assert.Equal(t, 40.0, src.At(4))
}
