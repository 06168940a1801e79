package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
		expectJSON  bool
	}{
		{name: "debug text", level: "debug", format: "text", expectLevel: logrus.DebugLevel},
		{name: "info json", level: "info", format: "json", expectLevel: logrus.InfoLevel, expectJSON: true},
		{name: "upper-case level", level: "WARN", format: "text", expectLevel: logrus.WarnLevel},
		{name: "invalid level defaults to info", level: "loud", format: "text", expectLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogrusAdapterWithOutput(tt.level, tt.format, &buf)

			adapter, ok := logger.(*LogrusAdapter)
			require.True(t, ok)
			assert.Equal(t, tt.expectLevel, adapter.Level())

			_, isJSON := adapter.logger.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.expectJSON, isJSON)
		})
	}
}

func TestLogrusAdapter_FieldsAndErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusAdapterWithOutput("debug", "json", &buf)

	logger.WithError(errors.New("disk full")).
		WithField(FieldFile, "tags.json").
		WithFields(F(FieldCount, 3)).
		Error("Failed to persist tags", F(FieldOperation, "append"))

	out := buf.String()
	assert.Contains(t, out, "Failed to persist tags")
	assert.Contains(t, out, "disk full")
	assert.Contains(t, out, `"file_path":"tags.json"`)
	assert.Contains(t, out, `"count":3`)
	assert.Contains(t, out, `"operation":"append"`)
}

func TestLogrusAdapter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusAdapterWithOutput("warn", "text", &buf)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLogrusAdapterFromLogger_Nil(t *testing.T) {
	logger := NewLogrusAdapterFromLogger(nil)
	adapter, ok := logger.(*LogrusAdapter)
	require.True(t, ok)
	assert.NotNil(t, adapter.logger)
}

func TestMockLogger_DerivedLoggersShareEntries(t *testing.T) {
	mock := NewMockLogger()

	mock.WithField(FieldCategory, "Groceries").Info("matched")
	mock.WithError(errors.New("boom")).Warn("embedding failed")
	mock.Debug("plain")

	entries := mock.Entries()
	require.Len(t, entries, 3)

	v, ok := entries[0].FieldValue(FieldCategory)
	assert.True(t, ok)
	assert.Equal(t, "Groceries", v)
	assert.EqualError(t, entries[1].Error, "boom")
	assert.True(t, mock.HasEntry("DEBUG", "plain"))
	assert.Len(t, mock.EntriesByLevel("WARN"), 1)
}

func TestSetDefault(t *testing.T) {
	original := GetLogger()
	t.Cleanup(func() { SetDefault(original) })

	mock := NewMockLogger()
	SetDefault(mock)
	assert.Same(t, mock, GetLogger())

	SetDefault(nil)
	assert.Same(t, mock, GetLogger())
}
