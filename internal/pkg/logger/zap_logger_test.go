package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestObservedLoggerFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewObservedLogger(core)

	l.Info("RenderService", "rendered", map[string]interface{}{"mode": "rich_text"})
	l.Warn("RenderService", "fallback", nil)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "rendered", entries[0].Message)
	assert.Equal(t, "RenderService", entries[0].ContextMap()["module"])
	assert.Equal(t, map[string]interface{}{"mode": "rich_text"}, entries[0].ContextMap()["details"])
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
}

func TestIsolatedLoggerWritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.log")
	l := NewIsolatedLogger(path)

	l.Info("Seed", "done", map[string]interface{}{"posts": 3})
	l.Debug("Seed", "below file level", nil)
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"message":"done"`)
	assert.Contains(t, lines[0], `"module":"Seed"`)
}

func TestNopLogger(t *testing.T) {
	var l ILogger = NewNopLogger()
	l.Error("x", "y", map[string]interface{}{"error": "boom"})
	assert.NoError(t, l.Sync())
}
