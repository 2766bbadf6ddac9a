// Package log provides structured logging on top of [log/slog].
//
// A [Logger] carries an immutable configuration applied with functional
// options when the logger is made:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//
// Loggers are values. [Logger.Wrap] derives a logger with a changed
// configuration and [Logger.With] one with extra attributes; neither affects
// the original.
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug] and is used for per-parse records that
// are too noisy for debugging sessions.
//
// # Pretty output
//
// With [WithPretty], text output is styled for the terminal (plain when the
// writer is not one) and JSON output is indented.
//
// # Default logger
//
// Package-level functions such as [Info] and [DebugContext] write to a
// process default logger, adjusted with [Config]. Functions without a context
// use [DefaultContextProvider].
package log
