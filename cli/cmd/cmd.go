package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/argot/cmdline"
	"github.com/ardnew/argot/define"
	"github.com/ardnew/argot/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	definitionKey struct{}
	outputKey     struct{}
)

// WithDefinition returns a new context.Context containing the path of the
// definition file used by the subcommands.
func WithDefinition(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, definitionKey{}, path)
}

// WithOutput returns a new context.Context directing command output to w.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

// outputFrom returns the writer stored by WithOutput, or os.Stdout.
func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// definitionFrom loads the command tree of the definition file stored by
// WithDefinition.
func definitionFrom(ctx context.Context) (*cmdline.Command, error) {
	path, _ := ctx.Value(definitionKey{}).(string)
	if path == "" {
		return nil, ErrNoDefinition
	}

	root, err := define.Load(path)
	if err != nil {
		return nil, err
	}

	log.DebugContext(ctx, "definition loaded",
		slog.String("path", path),
		slog.String("root", root.Name()),
	)

	return root, nil
}

// parser returns a parser for root logging to the default logger.
func parser(root *cmdline.Command) *cmdline.Parser {
	return cmdline.NewParser(root, cmdline.WithLogger(log.Default()))
}
