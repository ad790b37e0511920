package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.Debug("hidden")
	assert.Empty(t, buf.String())

	l.SetLevel(DebugLevel)
	l.Debug("shown", Fields{"frame": 3})
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "frame=3")
}

func TestWithFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf).WithFields(Fields{"cmd": "resolve"})

	l.Error(errors.New("boom"), "failed", Fields{"row": 2})

	out := buf.String()
	assert.Contains(t, out, "cmd=resolve")
	assert.Contains(t, out, "row=2")
	assert.Contains(t, out, "error=boom")
}

func TestSetDefaultNilSilences(t *testing.T) {
	prev := Default()
	defer SetDefault(prev)

	SetDefault(nil)
	assert.IsType(t, NoOpLogger{}, Default())
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "WARN", WarnLevel.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}
