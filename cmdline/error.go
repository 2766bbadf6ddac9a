package cmdline

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values).
//
// Every [ParseError] unwraps to the sentinel of its [ErrorKind], so callers
// can test parse errors with [errors.Is].
var (
	// ErrMissingArgument is reported when an argument received fewer values
	// than its arity requires and no default exists.
	//
	// It is also reported when a value outside an argument's allowed set
	// (see [Argument.FromAmong]) is supplied to an argument that requires at
	// least one value. An invalid choice is indistinguishable from a missing
	// value in that case; this is long-standing behavior, kept for
	// compatibility.
	ErrMissingArgument = NewError("missing argument")

	ErrTooManyArguments  = NewError("too many arguments")
	ErrUnrecognizedToken = NewError("unrecognized token")
	ErrMissingCommand    = NewError("missing command")
	ErrMissingOption     = NewError("missing option")
	ErrValidatorFailed   = NewError("validation failed")

	// ErrInvalidValueConversion is returned by [ValueFor] when raw values
	// cannot be converted to the requested type. It is never part of
	// [ParseResult.Errors].
	ErrInvalidValueConversion = NewError("invalid value conversion")

	ErrSymbolNotFound   = NewError("symbol not found")
	ErrSplitCommandLine = NewError("cannot split command line")
	ErrDuplicateAlias   = NewError("duplicate alias")
	ErrInvalidArity     = NewError("invalid arity")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// "<msg>: <err>", "<msg>", "<err>" or "", depending on which are set.
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from with
// [Error.Wrap] or [Error.With].
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.msg == "" || t.err != nil || len(t.attrs) > 0 {
		return false
	}

	return t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// ErrorKind classifies a [ParseError].
type ErrorKind int

const (
	// MissingArgument: an argument has fewer values than its minimum arity,
	// or an argument requiring a value got one outside its allowed set.
	MissingArgument ErrorKind = iota

	// TooManyArguments: an argument has more values than its maximum arity.
	TooManyArguments

	// UnrecognizedToken: a token matched no symbol in a command that treats
	// unmatched tokens as errors.
	UnrecognizedToken

	// MissingCommand: the selected command requires a subcommand.
	MissingCommand

	// ValidatorFailed: a validator rejected a symbol result.
	ValidatorFailed

	// InvalidValueConversion: a raw value could not be converted to the
	// requested type. Only returned from typed value access.
	InvalidValueConversion

	// MissingOption: a required option was not supplied.
	MissingOption
)

// String returns the name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case MissingArgument:
		return "MissingArgument"
	case TooManyArguments:
		return "TooManyArguments"
	case UnrecognizedToken:
		return "UnrecognizedToken"
	case MissingCommand:
		return "MissingCommand"
	case ValidatorFailed:
		return "ValidatorFailed"
	case InvalidValueConversion:
		return "InvalidValueConversion"
	case MissingOption:
		return "MissingOption"
	default:
		return "Unknown"
	}
}

// Sentinel returns the predefined error matching the kind.
func (k ErrorKind) Sentinel() *Error {
	switch k {
	case MissingArgument:
		return ErrMissingArgument
	case TooManyArguments:
		return ErrTooManyArguments
	case UnrecognizedToken:
		return ErrUnrecognizedToken
	case MissingCommand:
		return ErrMissingCommand
	case ValidatorFailed:
		return ErrValidatorFailed
	case InvalidValueConversion:
		return ErrInvalidValueConversion
	case MissingOption:
		return ErrMissingOption
	default:
		return nil
	}
}

// ParseError is a single diagnostic collected during a parse.
type ParseError struct {
	Kind    ErrorKind
	Message string
	// Token is the offending input text, if the error concerns one token.
	Token string

	result SymbolResult
}

func newParseError(kind ErrorKind, result SymbolResult, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		result:  result,
	}
}

// Error implements the error interface.
func (e *ParseError) Error() string { return e.Message }

// Unwrap returns the sentinel of the error's kind.
func (e *ParseError) Unwrap() error {
	if s := e.Kind.Sentinel(); s != nil {
		return s
	}

	return nil
}

// Result returns the symbol result the error is scoped to.
// The returned result is zero if the error is not scoped to a symbol.
func (e *ParseError) Result() SymbolResult { return e.result }

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("kind", e.Kind.String()),
		slog.String("message", e.Message),
	}

	if e.Token != "" {
		attrs = append(attrs, slog.String("token", e.Token))
	}

	if !e.result.IsZero() {
		attrs = append(attrs, slog.String("symbol", e.result.Symbol().Name()))
	}

	return slog.GroupValue(attrs...)
}
