package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aniscrape/fs"
)

func writeMarker(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
}

func TestSnapshot_Prepare_FreshBase(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	snap := fs.NewSnapshot(base)
	require.NoError(t, snap.Prepare(true))

	info, err := os.Stat(snap.RecordsDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(base, "current"), snap.Dir())
}

func TestSnapshot_Prepare_Rotates(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	snap := fs.NewSnapshot(base)

	// First generation with a marker file.
	require.NoError(t, snap.Prepare(true))
	writeMarker(t, snap.Dir(), "gen1.txt")

	// Second generation: gen1 must move to previous.
	require.NoError(t, snap.Prepare(true))
	writeMarker(t, snap.Dir(), "gen2.txt")

	_, err := os.Stat(filepath.Join(base, "previous", "gen1.txt"))
	assert.NoError(t, err, "first generation should survive as previous")
	_, err = os.Stat(filepath.Join(snap.Dir(), "gen1.txt"))
	assert.True(t, os.IsNotExist(err), "current must start empty after rotation")

	// Third generation: gen1 is gone, gen2 is previous. Never more
	// than two generations on disk.
	require.NoError(t, snap.Prepare(true))

	_, err = os.Stat(filepath.Join(base, "previous", "gen2.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "previous", "gen1.txt"))
	assert.True(t, os.IsNotExist(err), "oldest generation must be deleted")
}

func TestSnapshot_Prepare_NoRotateReusesCurrent(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	snap := fs.NewSnapshot(base)

	require.NoError(t, snap.Prepare(true))
	writeMarker(t, snap.Dir(), "keep.txt")

	require.NoError(t, snap.Prepare(false))

	_, err := os.Stat(filepath.Join(snap.Dir(), "keep.txt"))
	assert.NoError(t, err, "resume must keep the existing generation")
	_, err = os.Stat(filepath.Join(base, "previous"))
	assert.True(t, os.IsNotExist(err))
}
