package cmdline

import (
	"encoding"
	"errors"
	"log/slog"
	"strconv"
	"time"
)

// ValueFor returns the value of the first result, in pre-order, whose symbol
// has the given name or alias, converted to T. Command and option results
// are matched before argument results, as by [ParseResult.Lookup].
//
// A symbol that was not supplied but declares a default yields the default.
// If the default is already a T it is returned as is. An option without an
// argument converts to true when present.
//
// Supported types are string, []string, bool, int, int64, uint, uint64,
// float64, time.Duration, []int and any type whose pointer implements
// [encoding.TextUnmarshaler].
func ValueFor[T any](r *ParseResult, name string) (T, error) {
	res, ok := r.Lookup(name)
	if !ok {
		return declaredDefault[T](r.root, name)
	}

	arg := res.ArgumentResult()

	switch {
	case arg.IsZero():
		// Options without an argument are flags.
		return convert[T](name, []string{"true"})

	case arg.Implicit():
		if v, ok := arg.node().defaultValue.(T); ok {
			return v, nil
		}
	}

	return convert[T](name, arg.Values())
}

// declaredDefault finds the default of a symbol that has no result.
func declaredDefault[T any](root *Command, name string) (T, error) {
	var zero T

	arg := findArgument(root, name)
	if arg == nil || !arg.hasDefault {
		return zero, ErrSymbolNotFound.With(slog.String("name", name))
	}

	v := arg.Default()
	if t, ok := v.(T); ok {
		return t, nil
	}

	return convert[T](name, defaultText(v))
}

// findArgument returns the argument of the first symbol, in pre-order, with
// the given name or alias.
func findArgument(cmd *Command, name string) *Argument {
	if cmd == nil {
		return nil
	}

	if cmd.HasAlias(name) {
		return cmd.argument
	}

	if cmd.argument != nil && cmd.argument.HasAlias(name) {
		return cmd.argument
	}

	for _, child := range cmd.children {
		switch child := child.(type) {
		case *Option:
			if child.HasAlias(name) {
				return child.argument
			}

			if child.argument != nil && child.argument.HasAlias(name) {
				return child.argument
			}
		case *Command:
			if arg := findArgument(child, name); arg != nil {
				return arg
			}
		}
	}

	return nil
}

func convert[T any](name string, values []string) (T, error) {
	var out T

	err := convertInto(&out, values)
	if err != nil {
		return out, ErrInvalidValueConversion.Wrap(err).With(
			slog.String("name", name),
			slog.Any("values", values),
		)
	}

	return out, nil
}

var errNoValue = errors.New("no value")

func single(values []string) (string, error) {
	switch len(values) {
	case 0:
		return "", errNoValue
	case 1:
		return values[0], nil
	default:
		return "", errors.New("expected a single value, got " + strconv.Itoa(len(values)))
	}
}

//nolint:cyclop
func convertInto(dst any, values []string) error {
	if dst, ok := dst.(*[]string); ok {
		*dst = append([]string(nil), values...)

		return nil
	}

	if dst, ok := dst.(*[]int); ok {
		out := make([]int, len(values))

		for i, v := range values {
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}

			out[i] = n
		}

		*dst = out

		return nil
	}

	s, err := single(values)
	if err != nil {
		return err
	}

	switch dst := dst.(type) {
	case *string:
		*dst = s

	case *bool:
		*dst, err = strconv.ParseBool(s)

	case *int:
		*dst, err = strconv.Atoi(s)

	case *int64:
		*dst, err = strconv.ParseInt(s, 10, 64)

	case *uint:
		var n uint64

		n, err = strconv.ParseUint(s, 10, 0)
		*dst = uint(n)

	case *uint64:
		*dst, err = strconv.ParseUint(s, 10, 64)

	case *float64:
		*dst, err = strconv.ParseFloat(s, 64)

	case *time.Duration:
		*dst, err = time.ParseDuration(s)

	case encoding.TextUnmarshaler:
		err = dst.UnmarshalText([]byte(s))

	default:
		err = errors.New("unsupported type")
	}

	return err
}

// Binding assigns one named value to a destination.
type Binding struct {
	name string
	bind func(*ParseResult) error
}

// Name returns the symbol name the binding reads.
func (b Binding) Name() string { return b.name }

// Bind returns a binding storing the value of the named symbol in dst.
// Symbols without a result or default leave dst unchanged.
func Bind[T any](name string, dst *T) Binding {
	return Binding{
		name: name,
		bind: func(r *ParseResult) error {
			v, err := ValueFor[T](r, name)
			if err != nil {
				if errors.Is(err, ErrSymbolNotFound) {
					return nil
				}

				return err
			}

			*dst = v

			return nil
		},
	}
}

// Bind applies the bindings in order and joins their conversion errors.
func (r *ParseResult) Bind(bindings ...Binding) error {
	var errs []error

	for _, b := range bindings {
		errs = append(errs, b.bind(r))
	}

	return errors.Join(errs...)
}
