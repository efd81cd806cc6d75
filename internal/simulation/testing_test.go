package simulation

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestWorld creates a 700x500 room whose files live in a temp dir.
func newTestWorld(t *testing.T) *World {
	t.Helper()
	dir := t.TempDir()
	w, err := NewWorld(700, 500,
		WithLogPath(filepath.Join(dir, "log.json")),
		WithSavePath(filepath.Join(dir, "save.json")),
	)
	require.NoError(t, err)
	return w
}
