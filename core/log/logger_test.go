// File: logger_test.go
// Title: Logger Tests
// Description: Tests for level filtering, cloning, formatters and error
//              logging.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	dterror "github.com/msto63/dtparse/core/error"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewWithConfig(Config{Level: level, Format: format, Output: buf}), buf
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		min       Level
		log       func(l *Logger)
		wantEmpty bool
	}{
		{"trace below debug", LevelDebug, func(l *Logger) { l.Trace("x") }, true},
		{"trace at trace", LevelTrace, func(l *Logger) { l.Trace("x") }, false},
		{"debug below info", LevelInfo, func(l *Logger) { l.Debug("x") }, true},
		{"info at info", LevelInfo, func(l *Logger) { l.Info("x") }, false},
		{"warn above info", LevelInfo, func(l *Logger) { l.Warn("x") }, false},
		{"audit always", LevelFatal, func(l *Logger) { l.Audit("x") }, false},
		{"error below fatal", LevelFatal, func(l *Logger) { l.Error("x") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(tt.min, FormatText)
			tt.log(logger)
			if (buf.Len() == 0) != tt.wantEmpty {
				t.Errorf("output = %q, wantEmpty %v", buf.String(), tt.wantEmpty)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{" WARNING ", LevelWarn, false},
		{"", LevelInfo, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWithFieldDoesNotMutateParent(t *testing.T) {
	parent, buf := newBufferLogger(LevelInfo, FormatJSON)
	child := parent.WithField("component", "datetime").WithName("parser")

	parent.Info("from parent")
	child.Info("from child")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var first, second map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line 1: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("line 2: %v", err)
	}
	if _, ok := first["component"]; ok {
		t.Error("parent picked up child field")
	}
	if second["component"] != "datetime" || second["logger"] != "parser" {
		t.Errorf("child entry = %v", second)
	}
}

func TestFormatters(t *testing.T) {
	tests := []struct {
		format Format
		want   []string
	}{
		{FormatText, []string{"[INF]", "{svc}", "hello", "[k=v]"}},
		{FormatLogfmt, []string{"level=info", `message="hello"`, `k="v"`, "logger=svc"}},
		{FormatJSON, []string{`"message":"hello"`, `"k":"v"`, `"logger":"svc"`}},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			logger, buf := newBufferLogger(LevelInfo, tt.format)
			logger.WithName("svc").Info("hello", Field("k", "v"))
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output %q missing %q", buf.String(), w)
				}
			}
		})
	}
}

func TestConsoleFormatterWithoutColors(t *testing.T) {
	f := NewConsoleFormatter()
	f.DisableColors = true

	out, err := f.Format(NewEntry(LevelWarn, "careful"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "[WRN] careful") {
		t.Errorf("Format() = %q", out)
	}
}

func TestLogErrorUsesSeverity(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatLogfmt)

	logger.LogError(dterror.New("month out of range").
		WithCode(dterror.CodeOutOfRange).
		WithDetail("month", 13))
	logger.LogError(errors.New("plain failure"))
	logger.LogError(nil)

	out := buf.String()
	if !strings.Contains(out, "level=debug") || !strings.Contains(out, "error_code=DATETIME_OUT_OF_RANGE") {
		t.Errorf("coded error not logged at debug: %q", out)
	}
	if !strings.Contains(out, "error_month=13") {
		t.Errorf("details missing: %q", out)
	}
	if !strings.Contains(out, "level=error") {
		t.Errorf("plain error not logged at error: %q", out)
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected 2 lines, got %q", out)
	}
}

func TestConcurrentWrites(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatText)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.WithField("worker", 1).Info("tick")
		}()
	}
	wg.Wait()

	if got := strings.Count(buf.String(), "\n"); got != 20 {
		t.Errorf("got %d lines, want 20", got)
	}
}

func TestFieldsMergeAndDuration(t *testing.T) {
	base := Fields{"path": "/health", "status": 200}
	merged := base.Merge(Duration("duration_ms", 1500*time.Microsecond))

	if len(base) != 2 {
		t.Errorf("Merge mutated the receiver: %v", base)
	}
	if merged["status"] != 200 || merged["duration_ms"] != 1.5 {
		t.Errorf("merged = %v", merged)
	}
	if got := base.Merge(Fields{"status": 500})["status"]; got != 500 {
		t.Errorf("conflict resolved to %v, want 500", got)
	}
}
