package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/require"

	"github.com/dbfconv/dbfconv/internal/config"
)

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, _, err := New(config.LogConfig{Level: "loud"})
	require.Error(t, err)
}

func TestNew_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dbfconv.log")
	logger, closeLog, err := New(config.LogConfig{Level: "info", File: path})
	require.NoError(t, err)

	require.NoError(t, level.Info(logger).Log("msg", "hello"))
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "msg=hello")
	require.Contains(t, string(data), "level=info")
}

func TestNew_FiltersBelowThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dbfconv.log")
	logger, closeLog, err := New(config.LogConfig{Level: "error", File: path})
	require.NoError(t, err)

	require.NoError(t, level.Info(logger).Log("msg", "dropped"))
	require.NoError(t, level.Error(logger).Log("msg", "kept"))
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "dropped")
	require.Contains(t, string(data), "kept")
}

func TestTrace_TagsDebugOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewLogfmtLogger(&buf)

	require.NoError(t, Trace(logger).Log("msg", "walk"))
	out := buf.String()
	require.Contains(t, out, "level=debug")
	require.Contains(t, out, "trace=true")
}

func TestFatal_TagsErrorOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewLogfmtLogger(&buf)

	require.NoError(t, Fatal(logger).Log("msg", "boom"))
	out := buf.String()
	require.Contains(t, out, "level=error")
	require.Contains(t, out, "fatal=true")
}
