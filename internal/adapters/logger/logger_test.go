package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/autoload/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func time0() time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
}

func TestLogger_Pretty(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetOutput(buf)

	l.Info("rebuilt 3 modules")
	l.Warn("cache write failed")

	assert.Equal(t, "✓ rebuilt 3 modules\n! cache write failed\n", buf.String())
}

func TestLogger_Error_Pretty(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetOutput(buf)

	err := zerr.With(zerr.Wrap(errors.New("no such file"), "failed to read config file"), "config", "autoload.yaml")
	l.Error(err)

	assert.Equal(t,
		"✗ Error: failed to read config file\n"+
			"       config: autoload.yaml\n\n"+
			"  Caused by:\n"+
			"    → no such file\n",
		buf.String())
}

func TestLogger_Error_Nil(t *testing.T) {
	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetOutput(buf)

	l.Error(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetOutput(buf)
	l.SetJSON(true)

	l.Error(zerr.With(zerr.Wrap(errors.New("boom"), "resolve failed"), "type", `App\Widget`))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "resolve failed", record["msg"])
	assert.Equal(t, "resolve failed: boom", record["error"])
	assert.Equal(t, []any{"boom"}, record["causes"])
	assert.Equal(t, `App\Widget`, record["type"])
}

func TestLogger_SetJSON_KeepsOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetOutput(buf)
	l.SetJSON(true)
	l.Info("hello")
	l.SetJSON(false)
	l.SetOutput(nil)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
}

func TestLogger_Debug(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetOutput(buf)

	l.Debug("ignoring write of core/A.php")
	assert.Empty(t, buf.String())

	l.SetDebug(true)
	l.Debug("ignoring write of core/A.php")
	assert.Equal(t, "· ignoring write of core/A.php\n", buf.String())
}

func TestFromEnv(t *testing.T) {
	env := map[string]string{
		logger.EnvLogFormat: "JSON",
		logger.EnvLogLevel:  "debug",
	}
	l := logger.FromEnv(func(key string) string { return env[key] })

	buf := &bytes.Buffer{}
	l.SetOutput(buf)
	l.Debug("scanning core")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, "scanning core", record["msg"])
}
