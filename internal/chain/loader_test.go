package chain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"SPY.json", "SPY.json.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, WriteSnapshot(path, sampleSnapshot()))

			loaded, err := LoadSnapshot(path)
			require.NoError(t, err)
			assert.Equal(t, "SPY", loaded.Underlying)
			assert.Equal(t, 580.0, loaded.Spot)
			assert.Len(t, loaded.Expirations, 2)
			assert.Equal(t, []float64{570, 580, 590}, loaded.SortedStrikes("2026-09-04"))
		})
	}
}

func TestWriteSnapshotCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2026-09-01", "SPY.json.zst")
	require.NoError(t, WriteSnapshot(path, sampleSnapshot()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadSnapshotErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadSnapshot(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{not json"), 0644))
	_, err = LoadSnapshot(corrupt)
	assert.ErrorContains(t, err, "decoding snapshot")

	// Decodes fine but fails domain validation.
	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"underlying":"SPY","spot":-1}`), 0644))
	_, err = LoadSnapshot(invalid)
	assert.ErrorContains(t, err, "spot must be positive")
}

func TestLoadDirSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()

	spy := sampleSnapshot()
	require.NoError(t, WriteSnapshot(filepath.Join(dir, "SPY.json.zst"), spy))

	qqq := sampleSnapshot()
	qqq.Underlying = "QQQ"
	qqq.Spot = 495
	require.NoError(t, WriteSnapshot(filepath.Join(dir, "QQQ.json"), qqq))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "IWM.json"), []byte("garbage"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	snaps, err := LoadDir(dir, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"QQQ", "SPY"}, Symbols(snaps))
	assert.Equal(t, 495.0, snaps["QQQ"].Spot)
}

func TestLoadDirEmpty(t *testing.T) {
	_, err := LoadDir(t.TempDir(), zap.NewNop())
	assert.ErrorContains(t, err, "no snapshot files found")
}
