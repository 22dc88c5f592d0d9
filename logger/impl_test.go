package logger

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"":        LevelInfo,
		"warn":    LevelWarn,
		"Warning": LevelWarn,
		"error":   LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithWriter(&buf), WithLevel(LevelWarn))
	l.now = func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC) }

	l.Debug("hidden")
	l.Infof("hidden %d", 1)
	l.Warnf("aperture %q not supported", "4")
	l.Error("boom")

	assert.Equal(t,
		"2024-05-01 09:30:00 [WARN] aperture \"4\" not supported\n"+
			"2024-05-01 09:30:00 [ERROR] boom\n",
		buf.String())
}

func TestLoggerFatalPanics(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithWriter(&buf))

	assert.PanicsWithValue(t, "settings lost", func() { l.Fatal("settings lost") })
	assert.Contains(t, buf.String(), "[FATAL] settings lost")

	assert.Panics(t, func() { Nop().Fatalf("x %d", 1) })
}
