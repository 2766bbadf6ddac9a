package define

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ardnew/argot/cmdline"
	"github.com/ardnew/argot/log"
)

// Build creates the command tree described by spec. The tree is checked
// with [cmdline.Command.Validate].
func Build(spec *Spec) (*cmdline.Command, error) {
	if spec == nil {
		return nil, ErrInvalidDefinition.Wrap(errors.New("no root command"))
	}

	root, err := buildCommand(spec.Command, "")
	if err != nil {
		return nil, err
	}

	if err := root.Validate(); err != nil {
		return nil, ErrInvalidDefinition.Wrap(err)
	}

	return root, nil
}

func buildCommand(c Command, parent string) (*cmdline.Command, error) {
	if c.Name == "" {
		return nil, invalid(parent, "command without name")
	}

	path := strings.TrimSpace(parent + " " + c.Name)

	cmd := cmdline.NewCommand(c.Name, c.Aliases...).Describe(c.Description)

	if c.Hidden {
		cmd.Hide()
	}

	if c.Handler {
		cmd.SetHandler(handle)
	}

	if c.TreatUnmatchedAsErrors != nil {
		cmd.TreatUnmatchedAsErrors(*c.TreatUnmatchedAsErrors)
	}

	if c.Argument != nil {
		arg, err := buildArgument(*c.Argument, path, "args")
		if err != nil {
			return nil, err
		}

		cmd.SetArgument(arg)
	}

	for _, o := range c.Options {
		opt, err := buildOption(o, path)
		if err != nil {
			return nil, err
		}

		cmd.AddOption(opt)
	}

	for _, sub := range c.Commands {
		child, err := buildCommand(sub, path)
		if err != nil {
			return nil, err
		}

		cmd.AddCommand(child)
	}

	validators, err := compile(path, c.Validate)
	if err != nil {
		return nil, err
	}

	cmd.AddValidator(validators...)

	return cmd, nil
}

func buildOption(o Option, parent string) (*cmdline.Option, error) {
	if len(o.Aliases) == 0 || o.Aliases[0] == "" {
		return nil, invalid(parent, "option without aliases")
	}

	path := parent + " " + o.Aliases[0]

	opt := cmdline.NewOption(o.Aliases[0], o.Aliases[1:]...).
		Describe(o.Description).
		Require(o.Required)

	if o.Hidden {
		opt.Hide()
	}

	if o.Argument != nil {
		arg, err := buildArgument(*o.Argument, path, strings.TrimLeft(o.Aliases[0], "-/"))
		if err != nil {
			return nil, err
		}

		opt.SetArgument(arg)
	}

	validators, err := compile(path, o.Validate)
	if err != nil {
		return nil, err
	}

	opt.AddValidator(validators...)

	return opt, nil
}

func buildArgument(a Argument, parent, fallback string) (*cmdline.Argument, error) {
	name := a.Name
	if name == "" {
		name = fallback
	}

	path := parent + " <" + name + ">"

	arity, err := argumentArity(a)
	if err != nil {
		return nil, invalid(path, err.Error())
	}

	arg := cmdline.NewArgument(name).
		Describe(a.Description).
		SetArity(arity)

	if a.Default != nil {
		arg.SetDefault(defaultValue(a.Default))
	}

	if len(a.Allowed) > 0 {
		arg.FromAmong(a.Allowed...)
	}

	if a.LegalFilePathsOnly {
		arg.LegalFilePathsOnly()
	}

	if a.ExistingFilesOnly {
		arg.ExistingFilesOnly()
	}

	if len(a.Suggestions) > 0 {
		suggestions := a.Suggestions
		arg.SetSuggestions(func(cmdline.SuggestContext) []string { return suggestions })
	}

	validators, err := compile(path, a.Validate)
	if err != nil {
		return nil, err
	}

	arg.AddValidator(validators...)

	return arg, nil
}

// argumentArity returns the declared arity. Explicit bounds take precedence
// over the arity text; a minimum without a maximum is unbounded.
func argumentArity(a Argument) (cmdline.Arity, error) {
	arity := cmdline.ExactlyOne

	if a.Arity != "" {
		var ok bool

		if arity, ok = cmdline.ParseArity(a.Arity); !ok {
			return arity, fmt.Errorf("unknown arity %q", a.Arity)
		}
	}

	if a.Min != nil || a.Max != nil {
		arity = cmdline.Arity{Max: cmdline.Unbounded}

		if a.Min != nil {
			arity.Min = *a.Min
		}

		if a.Max != nil && *a.Max >= 0 {
			arity.Max = *a.Max
		}
	}

	if !arity.Valid() {
		return arity, fmt.Errorf("invalid arity %s", arity)
	}

	return arity, nil
}

// defaultValue converts decoded sequences to []string.
func defaultValue(v any) any {
	items, ok := v.([]any)
	if !ok {
		return v
	}

	out := make([]string, len(items))
	for i, item := range items {
		out[i] = fmt.Sprint(item)
	}

	return out
}

func invalid(path, reason string) *cmdline.Error {
	return ErrInvalidDefinition.Wrap(errors.New(reason)).With(slog.String("path", path))
}

// handle is bound to commands declared with a handler. Definitions carry no
// behavior, so it only records the invocation.
func handle(ctx context.Context, r *cmdline.ParseResult) error {
	log.DebugContext(ctx, "handler invoked",
		slog.String("command", r.CommandResult().Symbol().Name()),
		slog.String("diagram", r.Diagram()),
	)

	return nil
}
