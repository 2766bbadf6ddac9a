package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/argot/log"
)

func Example_basic() {
	logger := log.Make(os.Stdout, log.WithPretty(false), log.WithTimeLayout("none"))
	logger.Info("application started", slog.String("version", "1.0.0"))
	// Output:
	// {"level":"INFO","msg":"application started","version":"1.0.0"}
}

func Example_textFormat() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatText),
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	logger.Warn("slow parse", slog.Int("tokens", 42))
	// Output:
	// level=WARN msg="slow parse" tokens=42
}

func Example_levels() {
	logger := log.Make(os.Stdout, log.WithLevel(log.LevelWarn))

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warning message", slog.String("key", "value"))
	logger.Error("error message", slog.String("error", "something failed"))
}

func Example_withAttributes() {
	logger := log.Make(os.Stdout, log.WithPretty(false), log.WithTimeLayout("none")).
		With(slog.String("component", "cmdline"))

	logger.InfoContext(context.Background(), "parsed")
	// Output:
	// {"level":"INFO","msg":"parsed","component":"cmdline"}
}
