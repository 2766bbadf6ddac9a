package cli

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/alecthomas/kong"

	"github.com/ardnew/argot/cmdline"
	"github.com/ardnew/argot/log"
)

// logFormat is a custom type that configures the logger format as a side
// effect of parsing via encoding.TextUnmarshaler.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-format flag, this method is called, allowing us
// to configure the logger early enough to affect error messages during parsing.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel is a custom type that configures the logger level as a side
// effect of parsing via encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"${logLevel}"  enum:"${logLevelEnum}"  help:"Set log level (${enum})."`
	Format     logFormat `default:"${logFormat}" enum:"${logFormatEnum}" help:"Set log format (${enum})."`
	TimeLayout string    `default:"RFC3339"                              help:"Set timestamp format."`
	Caller     bool      `default:"false"                                help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                                 help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevel":      log.DefaultLevel.String(),
		"logLevelEnum":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormat":     log.DefaultFormat.String(),
		"logFormatEnum": strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// logFlags is the command line grammar of the logging flags alone. Every
// other token is left unmatched.
var logFlags = sync.OnceValue(func() *cmdline.Command {
	value := func(name string) *cmdline.Argument {
		return cmdline.NewArgument(name).SetArity(cmdline.ExactlyOne)
	}

	return cmdline.NewCommand("log").
		TreatUnmatchedAsErrors(false).
		AddOption(
			cmdline.NewOption("--log-level").SetArgument(value("level")),
			cmdline.NewOption("--log-format").SetArgument(value("format")),
			cmdline.NewOption("--log-time-layout").SetArgument(value("layout")),
			cmdline.NewOption("--log-caller"),
			cmdline.NewOption("--no-log-caller"),
			cmdline.NewOption("--log-pretty"),
			cmdline.NewOption("--no-log-pretty"),
		)
})

// scan performs an early pass over command-line arguments to extract and
// apply logger configuration before Kong begins parsing. This ensures the
// logger is configured properly regardless of flag position on the command
// line.
//
// Repeated flags resolve as Kong resolves them: the last one wins.
func (f *logConfig) scan(args []string) {
	r := cmdline.Parse(logFlags(), args...)

	var level, format, layout []string

	// Conversions to []string cannot fail.
	_ = r.Bind(
		cmdline.Bind("--log-level", &level),
		cmdline.Bind("--log-format", &format),
		cmdline.Bind("--log-time-layout", &layout),
	)

	if n := len(level); n > 0 {
		_ = f.Level.UnmarshalText([]byte(level[n-1]))
	}

	if n := len(format); n > 0 {
		_ = f.Format.UnmarshalText([]byte(format[n-1]))
	}

	if n := len(layout); n > 0 {
		f.TimeLayout = layout[n-1]
		log.Config(log.WithTimeLayout(f.TimeLayout))
	}

	if on, ok := toggle(r, "caller"); ok {
		f.Caller = on
		log.Config(log.WithCaller(on))
	}

	if on, ok := toggle(r, "pretty"); ok {
		f.Pretty = on
		log.Config(log.WithPretty(on))
	}
}

// toggle returns the state of the negatable flag --log-<name>. It reports
// false if neither form was given.
func toggle(r *cmdline.ParseResult, name string) (on, ok bool) {
	last := func(alias string) int {
		res, found := r.Lookup(alias)
		if !found {
			return -1
		}

		pos := -1
		for _, tok := range res.Tokens() {
			pos = max(pos, tok.Index)
		}

		return pos
	}

	set, unset := last("--log-"+name), last("--no-log-"+name)

	return set > unset, set >= 0 || unset >= 0
}
