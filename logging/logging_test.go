package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("debug"))
	assert.Equal(t, WarnLevel, ParseLevel("warning"))
	assert.Equal(t, ErrorLevel, ParseLevel("error"))
	assert.Equal(t, InfoLevel, ParseLevel("nonsense"))
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", DebugLevel.String())
	assert.Equal(t, "FATAL", FatalLevel.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

func TestFormatMessage(t *testing.T) {
	d := NewDefaultLogger()
	d.useColors = false

	msg := d.formatMessage(InfoLevel, nil, "capture loaded", Fields{"samples": 64})
	assert.Contains(t, msg, "[INFO] capture loaded")
	assert.Contains(t, msg, "samples:64")

	msg = d.formatMessage(ErrorLevel, errors.New("boom"), "save failed")
	assert.Contains(t, msg, "[ERROR] save failed: boom")
}

func TestWithFieldsMerges(t *testing.T) {
	d := NewDefaultLogger()
	d.useColors = false

	child := d.WithFields(Fields{"component": "csv_exporter"}).(*DefaultLogger)
	msg := child.formatMessage(InfoLevel, nil, "table exported", Fields{"rows": 3})
	assert.Contains(t, msg, "component:csv_exporter")
	assert.Contains(t, msg, "rows:3")

	// Parent fields stay untouched.
	assert.Empty(t, d.fields)
}

func TestSetGlobalLoggerNil(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	SetGlobalLogger(nil)
	_, ok := GetGlobalLogger().(*NoOpLogger)
	assert.True(t, ok)
}
