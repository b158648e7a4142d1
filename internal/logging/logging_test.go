package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  log.Level
	}{
		{level: "", want: log.InfoLevel},
		{level: "debug", want: log.DebugLevel},
		{level: " WARN ", want: log.WarnLevel},
		{level: "error", want: log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l, err := New(&bytes.Buffer{}, tt.level)
			require.NoError(t, err)
			assert.Equal(t, tt.want, l.GetLevel())
		})
	}
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(nil, "loud")
	assert.Error(t, err)
}

func TestNewWritesPrefix(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "info")
	require.NoError(t, err)

	l.Info("feedback saved", "athlete", "at-1")
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, Prefix)
	assert.Contains(t, out, "feedback saved")
	assert.Contains(t, out, "athlete=at-1")
	assert.NotContains(t, out, "hidden")
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing to see")
	assert.Equal(t, log.FatalLevel, l.GetLevel())
}
