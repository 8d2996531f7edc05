package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Disabled(t *testing.T) {
	c, err := Init(Options{})
	require.NoError(t, err)
	assert.NoError(t, c.Close())
	require.NotNil(t, L)
	L.Info("discarded")
}

func TestInit_WritesFile(t *testing.T) {
	dir := t.TempDir()
	c, err := Init(Options{Enabled: true, Dir: dir, Level: slog.LevelDebug})
	require.NoError(t, err)
	t.Cleanup(func() { Init(Options{}) })

	L.Debug("hello", "n", 1)
	require.NoError(t, c.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"msg":"hello"`))
}

func TestInit_MissingDir(t *testing.T) {
	_, err := Init(Options{Enabled: true})
	assert.Error(t, err)
}

func TestCleanOldLogs(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, logPrefix+"2000-01-01"+logSuffix)
	keep := filepath.Join(dir, logPrefix+"today"+logSuffix)
	other := filepath.Join(dir, "unrelated.txt")
	for _, p := range []string{old, keep, other} {
		require.NoError(t, os.WriteFile(p, nil, 0644))
	}
	past := time.Now().AddDate(0, 0, -60)
	require.NoError(t, os.Chtimes(old, past, past))
	require.NoError(t, os.Chtimes(other, past, past))

	cleanOldLogs(dir, time.Now())

	assert.NoFileExists(t, old)
	assert.FileExists(t, keep)
	assert.FileExists(t, other)
}
