package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	logger := Make(nil)

	if logger.Level() != DefaultLevel {
		t.Errorf("expected default level %v, got %v", DefaultLevel, logger.Level())
	}

	if logger.Format() != DefaultFormat {
		t.Errorf("expected default format %v, got %v", DefaultFormat, logger.Format())
	}

	if logger.caller != DefaultCaller || logger.pretty != DefaultPretty {
		t.Errorf("unexpected defaults caller=%v pretty=%v", logger.caller, logger.pretty)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		log     func(Logger)
		written bool
	}{
		{"trace at trace", LevelTrace, func(l Logger) { l.Trace("m") }, true},
		{"trace at debug", LevelDebug, func(l Logger) { l.Trace("m") }, false},
		{"debug at debug", LevelDebug, func(l Logger) { l.Debug("m") }, true},
		{"info at warn", LevelWarn, func(l Logger) { l.Info("m") }, false},
		{"warn at warn", LevelWarn, func(l Logger) { l.Warn("m") }, true},
		{"error at error", LevelError, func(l Logger) { l.Error("m") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(Make(&buf, WithLevel(tt.level), WithPretty(false)))

			if got := buf.Len() > 0; got != tt.written {
				t.Errorf("written = %v, want %v: %q", got, tt.written, buf.String())
			}
		})
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelTrace), WithPretty(false), WithTimeLayout("none"))
	logger.TraceContext(context.Background(), "parse complete", slog.Int("tokens", 3))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	if rec["level"] != "TRACE" {
		t.Errorf("level = %v, want TRACE", rec["level"])
	}

	if rec["msg"] != "parse complete" || rec["tokens"] != float64(3) {
		t.Errorf("record = %v", rec)
	}

	if _, ok := rec["time"]; ok {
		t.Error("time present with layout none")
	}
}

func TestLogger_PrettyJSONIsIndented(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithPretty(true), WithFormat(FormatJSON)).Info("hello", slog.String("k", "v"))

	if !strings.Contains(buf.String(), "\n  \"msg\": \"hello\"") {
		t.Errorf("output not indented: %q", buf.String())
	}
}

func TestLogger_PrettyText(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf,
		WithFormat(FormatText),
		WithPretty(true),
		WithTimeLayout("none"),
	).With(slog.String("component", "parser")).WithGroup("req")

	logger.Warn("slow", slog.Int("ms", 12), slog.Group("user", slog.String("id", "u1")))

	out := buf.String()

	for _, want := range []string{"WARN", "slow", "component=parser", "req.ms=12", "req.user.id=u1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}

	if !strings.HasSuffix(out, "\n") || strings.Count(out, "\n") != 1 {
		t.Errorf("expected a single line, got %q", out)
	}
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithCaller(true), WithPretty(false)).Info("where")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("caller not reported: %s", buf.String())
	}
}

func TestLogger_LogValuer(t *testing.T) {
	var buf bytes.Buffer

	err := errors.New("boom")
	Make(&buf, WithPretty(false)).Error("failed", slog.Any("error", err))

	if !strings.Contains(buf.String(), `"error":"boom"`) {
		t.Errorf("error not rendered: %s", buf.String())
	}
}

func TestLogger_Wrap_KeepsBase(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithLevel(LevelError), WithFormat(FormatText))
	wrapped := base.Wrap(WithLevel(LevelDebug))

	if wrapped.Format() != FormatText {
		t.Errorf("format = %v, want text", wrapped.Format())
	}

	if base.Level() != LevelError || wrapped.Level() != LevelDebug {
		t.Errorf("levels base=%v wrapped=%v", base.Level(), wrapped.Level())
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var logger Logger

	logger.Info("discarded")
	logger.With(slog.String("k", "v")).Error("discarded")

	if logger.Level() != DefaultLevel {
		t.Errorf("zero logger level = %v", logger.Level())
	}

	logger.Slog().Info("discarded")
}

func TestLogger_ConcurrentCalls(t *testing.T) {
	var (
		buf bytes.Buffer
		wg  sync.WaitGroup
	)

	logger := Make(&buf, WithPretty(true), WithFormat(FormatText))

	for i := range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			logger.With(slog.Int("worker", i)).Info("tick")
		}()
	}

	wg.Wait()

	if got := strings.Count(buf.String(), "\n"); got != 16 {
		t.Errorf("got %d lines, want 16", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{"Info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevelText(t *testing.T) {
	for name := range Levels() {
		var l Level

		if err := l.UnmarshalText([]byte(name)); err != nil {
			t.Errorf("UnmarshalText(%q): %v", name, err)
		}

		if l.String() != name {
			t.Errorf("round trip %q = %q", name, l.String())
		}
	}

	var l Level
	if err := l.UnmarshalText([]byte("loud")); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestFormatText(t *testing.T) {
	for name := range Formats() {
		if got := ParseFormat(name).String(); got != name {
			t.Errorf("ParseFormat(%q) = %q", name, got)
		}
	}

	var f Format
	if err := f.UnmarshalText([]byte("xml")); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestTimeLayout(t *testing.T) {
	tests := []struct {
		layout string
		empty  bool
	}{
		{"RFC3339", false},
		{"rfc-3339-nano", false},
		{"kitchen", false},
		{"2006/01/02", false},
		{"none", true},
		{"  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			var buf bytes.Buffer

			Make(&buf, WithTimeLayout(tt.layout), WithPretty(false)).Info("x")

			if got := !strings.Contains(buf.String(), `"time"`); got != tt.empty {
				t.Errorf("time omitted = %v, want %v: %s", got, tt.empty, buf.String())
			}
		})
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	logger := Make(nil, WithPretty(false))

	for b.Loop() {
		logger.Info("benchmark", slog.Int("n", 1))
	}
}

func BenchmarkLogger_PrettyText(b *testing.B) {
	logger := Make(nil, WithFormat(FormatText))

	for b.Loop() {
		logger.Info("benchmark", slog.Int("n", 1))
	}
}
