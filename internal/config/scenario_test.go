package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"robot-sim/internal/simulation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func testConfig(t *testing.T, doc string) *Config {
	t.Helper()
	c, err := LoadYAML(strings.NewReader(doc))
	require.NoError(t, err)
	dir := t.TempDir()
	c.LogPath = filepath.Join(dir, "log.json")
	c.SavePath = filepath.Join(dir, "save.json")
	return c
}

func TestBuild(t *testing.T) {
	c := testConfig(t, `
scenario:
  obstacles:
    - { x: 100, y: 100 }
    - { x: 140, y: 100 }
  robots:
    - { kind: manual, id: 0, x: 50, y: 50 }
    - { kind: auto, id: 1, x: 300, y: 300, speed: 2, clockwise: false, angle: 90 }
`)
	w, err := c.NewWorld()
	require.NoError(t, err)
	require.NoError(t, c.Build(w))

	assert.Len(t, w.Obstacles(), 2)
	require.Len(t, w.Robots(), 2)
	assert.True(t, w.Robots()[0].Controlled())
	assert.Equal(t, 1.0, w.Robots()[0].Speed())

	auto, ok := w.Robots()[1].(*simulation.AutoRobot)
	require.True(t, ok)
	assert.False(t, auto.Clockwise())
	assert.Equal(t, 45.0, auto.TurnStep())
	assert.Equal(t, 90.0, auto.Angle())
	assert.Equal(t, 1, auto.ViewDistance())
}

func TestBuildSkipsUnplaceable(t *testing.T) {
	c := testConfig(t, `
scenario:
  obstacles:
    - { x: 100, y: 100 }
    - { x: 9000, y: 100 }
  robots:
    - { kind: manual, x: 100, y: 100 }
    - { kind: manual, id: 1, x: 50, y: 50 }
`)
	w, err := c.NewWorld()
	require.NoError(t, err)

	err = c.Build(w)
	require.Error(t, err)
	errs := multierr.Errors(err)
	assert.Len(t, errs, 2)
	assert.True(t, errors.Is(errs[0], simulation.ErrOutOfBounds))
	assert.True(t, errors.Is(errs[1], simulation.ErrOccupied))

	assert.Len(t, w.Obstacles(), 1)
	assert.Len(t, w.Robots(), 1)
}

func TestNewWorldUsesPaths(t *testing.T) {
	c := testConfig(t, "room: { width: 200, height: 100 }")
	w, err := c.NewWorld()
	require.NoError(t, err)
	assert.Equal(t, 200.0, w.Width())
	assert.Equal(t, c.SavePath, w.SavePath())
	assert.Equal(t, c.LogPath, w.FrameLog().Path())
}
