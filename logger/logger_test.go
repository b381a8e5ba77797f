package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "decimate.log")
	cfg := DefaultFileConfig(logFile)
	cfg.Compress = false
	require.NoError(t, InitWithFileConfig("info", cfg, false))
	t.Cleanup(func() { Log = zap.NewNop(); Sugar = Log.Sugar() })

	Debug("hidden")
	Warn("complex vertex kept", zap.Int32("vertex", 7), zap.String("reason", "degree"))
	Sugar.Infof("pass %d", 2)
	Sync()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "complex vertex kept", entry["msg"])
	assert.Equal(t, float64(7), entry["vertex"])
	assert.Equal(t, "degree", entry["reason"])
	assert.Contains(t, lines[1], "pass 2")
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"", "debug", "info", "warn", "error"} {
		_, err := parseLevel(s)
		assert.NoError(t, err, s)
	}
	assert.Error(t, InitWithFileConfig("loud", FileConfig{}, false))
}

func TestNopBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		Info("nobody listens")
		Sync()
	})
}
