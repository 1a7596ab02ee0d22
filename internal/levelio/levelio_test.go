package levelio

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/annel0/voxel-layout/internal/episode"
	"github.com/annel0/voxel-layout/internal/layout"
	"github.com/annel0/voxel-layout/internal/logging"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateLevels(t *testing.T, archetype layout.Archetype, n int) []*episode.Level {
	t.Helper()
	log, err := logging.NewLogger("levelio-test")
	require.NoError(t, err)
	log.SetOutput(io.Discard)

	env, err := episode.New(episode.Options{NumAgents: 3, Archetype: archetype, Seed: 21, Logger: log})
	require.NoError(t, err)

	levels := make([]*episode.Level, 0, n)
	for i := 0; i < n; i++ {
		level, err := env.Reset(context.Background())
		require.NoError(t, err)
		levels = append(levels, level)
	}
	return levels
}

func TestRoundTrip(t *testing.T) {
	var levels []*episode.Level
	for _, a := range layout.Archetypes {
		levels = append(levels, generateLevels(t, a, 2)...)
	}

	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)
	for _, l := range levels {
		require.NoError(t, w.Write(l))
	}
	assert.Equal(t, len(levels), w.Count())
	require.NoError(t, w.Close())

	got, err := ReadAll(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(levels))
	for i := range levels {
		assert.Equal(t, levels[i], got[i])
	}
}

func TestFileRoundTrip(t *testing.T) {
	levels := generateLevels(t, layout.Walls, 3)
	path := filepath.Join(t.TempDir(), "dumps", "walls.jsonl.zst")

	require.NoError(t, WriteFile(path, levels))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, levels, got)
}

func TestEmptyDump(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	got, err := ReadAll(&buf)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBadHeader(t *testing.T) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = enc.Write([]byte(`{"format":"something-else","version":1}` + "\n"))
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	_, err = ReadAll(&buf)
	assert.ErrorIs(t, err, ErrBadHeader)
}
