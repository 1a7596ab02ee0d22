package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, WARN, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, INFO, lvl, "пустая строка - уровень по умолчанию")

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestLogger_LevelFiltering(t *testing.T) {
	l, err := NewLogger("test")
	require.NoError(t, err)

	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.SetLevels(WARN, DEBUG)

	l.Info("скрыто %d", 1)
	l.Warn("видно %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "скрыто")
	assert.Contains(t, out, "[WARN] [test] видно 2")
}

func TestLogger_FileOutput(t *testing.T) {
	dir := t.TempDir()
	SetLogDir(dir)
	defer SetLogDir("")

	l, err := NewLogger("filetest")
	require.NoError(t, err)
	l.SetOutput(&bytes.Buffer{})

	l.Debug("в файл")
	require.NoError(t, l.Close())

	matches, err := filepath.Glob(filepath.Join(dir, "filetest_*.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG] [filetest] в файл")
}

func TestLoggerManager_ReusesComponentLogger(t *testing.T) {
	lm := GetLoggerManager()
	a := lm.MustGetLogger("reuse")
	b := lm.MustGetLogger("reuse")
	assert.Same(t, a, b, "один компонент - один логгер")

	assert.NoError(t, lm.SetLogLevel("reuse", ERROR, ERROR))
	assert.Error(t, lm.SetLogLevel("missing-component", ERROR, ERROR))
}
