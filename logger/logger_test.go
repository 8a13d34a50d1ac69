package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologAdapterWritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf).WithField("provider", "ollama")
	l.Info("generated")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "generated", line["message"])
	assert.Equal(t, "ollama", line["provider"])
	assert.Contains(t, line, "time")
}

func TestNullLogger(t *testing.T) {
	l := NewNullLogger()
	assert.NotPanics(t, func() {
		l.Debug("a")
		l.WithField("k", 1).Warn("b")
	})
	assert.IsType(t, NullLogger{}, l.WithField("k", 1))
}
