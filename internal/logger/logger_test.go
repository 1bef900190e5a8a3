package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T, level string, format OutputFormat, fn func()) string {
	t.Helper()
	buf := &bytes.Buffer{}
	SetTestOutput(buf)
	defer UnsetTestOutput()

	InitLogger(level, format)
	fn()
	return buf.String()
}

const markerURL = "https://cdn.example.com/logo.png"

func TestLogger(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		logFn      func()
		text       []string
		json       []string
		suppressed bool
	}{
		{
			name:  "resolve phase at debug",
			level: "debug",
			logFn: func() {
				Debug("Resolving asset", Fields{"phase": "resolve", "marker": "download::" + markerURL + "::download", "url": markerURL})
			},
			text: []string{"level=DEBUG", `msg="Resolving asset"`, "phase=resolve", "url=" + markerURL},
			json: []string{`"level":"DEBUG"`, `"msg":"Resolving asset"`, `"phase":"resolve"`, `"url":"` + markerURL + `"`},
		},
		{
			name:  "resolve phase hidden at info",
			level: "info",
			logFn: func() {
				Debug("Resolving asset", Fields{"phase": "resolve", "url": markerURL})
			},
			suppressed: true,
		},
		{
			name:  "run summary",
			level: "info",
			logFn: func() {
				Success("Assets materialized", Fields{"markers": 4, "cached": 1, "fetched": 3, "out": "_site"})
			},
			text: []string{"level=INFO", `msg="Assets materialized"`, "markers=4", "cached=1", "fetched=3", "out=_site", "status=success"},
			json: []string{`"markers":4`, `"cached":1`, `"fetched":3`, `"out":"_site"`, `"status":"success"`},
		},
		{
			name:  "run failure",
			level: "error",
			logFn: func() {
				Error("Run failed", Fields{"phase": "error", "error": "resolve " + markerURL + ": unexpected status code: 404"})
			},
			text: []string{"level=ERROR", `msg="Run failed"`, "phase=error", `error="resolve ` + markerURL + `: unexpected status code: 404"`},
			json: []string{`"level":"ERROR"`, `"error":"resolve ` + markerURL + `: unexpected status code: 404"`},
		},
		{
			name:  "warn below error level is dropped",
			level: "error",
			logFn: func() {
				Warn("Failed to load env file", Fields{"path": ".env"})
			},
			suppressed: true,
		},
		{
			name:  "env file warning",
			level: "warn",
			logFn: func() {
				Warn("Failed to load env file", Fields{"path": ".env.local"})
			},
			text: []string{"level=WARN", "path=.env.local"},
			json: []string{`"level":"WARN"`, `"path":".env.local"`},
		},
		{
			name:  "formatted cache message",
			level: "info",
			logFn: func() {
				Successf("Removed %d cached assets", 7)
			},
			text: []string{`msg="Removed 7 cached assets"`, "status=success"},
			json: []string{`"msg":"Removed 7 cached assets"`, `"status":"success"`},
		},
		{
			name:  "formatted info",
			level: "info",
			logFn: func() {
				Infof("scanned %d files", 12)
			},
			text: []string{`msg="scanned 12 files"`},
			json: []string{`"msg":"scanned 12 files"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := captureOutput(t, tt.level, FormatText, tt.logFn)
			jsonOut := captureOutput(t, tt.level, FormatJSON, tt.logFn)
			if tt.suppressed {
				assert.Empty(t, text)
				assert.Empty(t, jsonOut)
				return
			}
			for _, want := range tt.text {
				assert.Contains(t, text, want)
			}
			for _, want := range tt.json {
				assert.Contains(t, jsonOut, want)
			}
		})
	}
}

func TestGetLogger_InitializesIfNil(t *testing.T) {
	logger.Store(nil)
	assert.NotPanics(t, func() {
		lg := GetLogger()
		assert.NotNil(t, lg)
		lg.Info("site loaded")
	})
}

func TestSetOutputFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	SetTestOutput(buf)
	defer UnsetTestOutput()

	InitLogger("debug", FormatText)
	Debug("Pipeline phase", Fields{"phase": "scan"})
	assert.Contains(t, buf.String(), "phase=scan")

	buf.Reset()
	SetOutputFormat(FormatJSON)
	Debug("Pipeline phase", Fields{"phase": "rewrite"})
	assert.Contains(t, buf.String(), `"phase":"rewrite"`)

	// The level survives a format switch.
	buf.Reset()
	SetLevel("info")
	SetOutputFormat(FormatText)
	Debug("Pipeline phase", Fields{"phase": "done"})
	assert.Empty(t, buf.String())
}

func TestJSONFormat_OneObjectPerRecord(t *testing.T) {
	output := captureOutput(t, "debug", FormatJSON, func() {
		Debug("Pipeline phase", Fields{"phase": "scan", "detail": "3 markers"})
		Success("Configuration updated", Fields{"key": "timeout", "value": "30s"})
	})

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 2)

	var first, second map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))

	assert.Equal(t, "3 markers", first["detail"])
	assert.Equal(t, "DEBUG", first["level"])
	assert.Equal(t, "timeout", second["key"])
	assert.Equal(t, "success", second["status"])
}

func TestMergeFields(t *testing.T) {
	tests := []struct {
		name   string
		fields []Fields
		expect []interface{}
	}{
		{
			name:   "none",
			expect: []interface{}{},
		},
		{
			name:   "keys sorted within a map",
			fields: []Fields{{"url": markerURL, "marker": "m", "phase": "resolve"}},
			expect: []interface{}{"marker", "m", "phase", "resolve", "url", markerURL},
		},
		{
			name:   "maps kept in argument order",
			fields: []Fields{{"run": "r1"}, {"fetched": 2, "cached": 0}},
			expect: []interface{}{"run", "r1", "cached", 0, "fetched", 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, mergeFields(tt.fields...))
		})
	}
}

func TestSetLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	SetTestOutput(buf)
	defer UnsetTestOutput()

	InitLogger("info", FormatText)
	Debug("Loaded site", Fields{"files": 1})
	SetLevel("debug")
	Debug("Loaded site", Fields{"files": 2})

	assert.NotContains(t, buf.String(), "files=1")
	assert.Contains(t, buf.String(), "files=2")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}
