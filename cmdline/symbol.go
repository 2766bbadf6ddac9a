package cmdline

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"strings"
)

// SymbolKind identifies the concrete type of a [Symbol].
type SymbolKind int

const (
	KindCommand SymbolKind = iota
	KindOption
	KindArgument
)

// String returns the name of the symbol kind.
func (k SymbolKind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindOption:
		return "option"
	case KindArgument:
		return "argument"
	default:
		return "unknown"
	}
}

// Symbol is a node of the declarative command tree: a [*Command], an
// [*Option] or an [*Argument].
//
// A symbol tree is built once and is read-only while parsing, so the same
// tree may be shared by concurrent parses.
type Symbol interface {
	Name() string
	Aliases() []string
	HasAlias(alias string) bool
	Description() string
	Hidden() bool
	Kind() SymbolKind
	Parent() Symbol
	Validators() []Validator
}

// Validator checks a fully populated symbol result. A non-nil error becomes
// one [ValidatorFailed] error whose message is the error text.
//
// Validators can inspect sibling results through [SymbolResult.Parent].
type Validator func(SymbolResult) error

// Handler is the behavior bound to a command. The parser only checks whether
// a handler is present; invoking it is left to the caller.
type Handler func(context.Context, *ParseResult) error

// SuggestContext is passed to a [SuggestFunc].
type SuggestContext struct {
	// Text is the partial word being completed.
	Text string
	// Values holds the values already resolved for the sibling symbols of
	// the argument, keyed by symbol name.
	Values map[string][]string
}

// SuggestFunc returns completion candidates for an argument.
type SuggestFunc func(SuggestContext) []string

// symbol holds the attributes shared by every symbol kind.
type symbol struct {
	name        string
	aliases     []string
	description string
	hidden      bool
	parent      Symbol
	validators  []Validator
}

func makeSymbol(name string, aliases ...string) symbol {
	all := make([]string, 0, len(aliases)+1)
	all = append(all, name)

	for _, alias := range aliases {
		if alias != "" && !slices.Contains(all, alias) {
			all = append(all, alias)
		}
	}

	return symbol{name: name, aliases: all}
}

// Name returns the canonical name, which is also the first alias.
func (s *symbol) Name() string { return s.name }

// Aliases returns every string that invokes the symbol, canonical first.
func (s *symbol) Aliases() []string { return slices.Clone(s.aliases) }

// HasAlias reports whether alias invokes the symbol.
func (s *symbol) HasAlias(alias string) bool {
	return slices.Contains(s.aliases, alias)
}

// Description returns the help text.
func (s *symbol) Description() string { return s.description }

// Hidden reports whether the symbol is omitted from help output.
func (s *symbol) Hidden() bool { return s.hidden }

// Parent returns the owning symbol, or nil for a root command.
func (s *symbol) Parent() Symbol { return s.parent }

// Validators returns the validators in declaration order.
func (s *symbol) Validators() []Validator { return slices.Clone(s.validators) }

func adopt(parent, child Symbol, cs *symbol) {
	if cs.parent != nil {
		panic(fmt.Sprintf(
			"cmdline: %s %q already belongs to %q",
			child.Kind(), child.Name(), cs.parent.Name(),
		))
	}

	cs.parent = parent
}

// Command is a symbol that selects behavior, optionally owning one
// argument, child commands and options.
type Command struct {
	symbol

	argument  *Argument
	children  []Symbol
	handler   Handler
	unmatched bool
}

// NewCommand returns a command named name with optional aliases.
// Unmatched tokens are treated as errors by default.
func NewCommand(name string, aliases ...string) *Command {
	return &Command{
		symbol:    makeSymbol(name, aliases...),
		unmatched: true,
	}
}

// Kind returns [KindCommand].
func (*Command) Kind() SymbolKind { return KindCommand }

// Describe sets the help text.
func (c *Command) Describe(description string) *Command {
	c.description = description

	return c
}

// Hide omits the command from help output.
func (c *Command) Hide() *Command {
	c.hidden = true

	return c
}

// AddCommand appends child commands.
// It panics if a child already belongs to another command.
func (c *Command) AddCommand(cmds ...*Command) *Command {
	for _, cmd := range cmds {
		adopt(c, cmd, &cmd.symbol)
		c.children = append(c.children, cmd)
	}

	return c
}

// AddOption appends options.
// It panics if an option already belongs to another command.
func (c *Command) AddOption(opts ...*Option) *Command {
	for _, opt := range opts {
		adopt(c, opt, &opt.symbol)
		c.children = append(c.children, opt)
	}

	return c
}

// SetArgument binds the command's own argument.
// It panics if the argument already belongs to another symbol.
func (c *Command) SetArgument(arg *Argument) *Command {
	adopt(c, arg, &arg.symbol)
	c.argument = arg

	return c
}

// SetHandler binds the command's behavior.
func (c *Command) SetHandler(h Handler) *Command {
	c.handler = h

	return c
}

// TreatUnmatchedAsErrors sets whether tokens left unmatched while the
// command is in scope are reported as [UnrecognizedToken] errors.
func (c *Command) TreatUnmatchedAsErrors(enable bool) *Command {
	c.unmatched = enable

	return c
}

// AddValidator appends validators run against the command's result.
func (c *Command) AddValidator(v ...Validator) *Command {
	c.validators = append(c.validators, v...)

	return c
}

// Argument returns the command's own argument, or nil.
func (c *Command) Argument() *Argument { return c.argument }

// Handler returns the bound handler, or nil.
func (c *Command) Handler() Handler { return c.handler }

// UnmatchedAsErrors reports whether unmatched tokens are errors.
func (c *Command) UnmatchedAsErrors() bool { return c.unmatched }

// Children returns child commands and options in insertion order.
func (c *Command) Children() []Symbol { return slices.Clone(c.children) }

// Subcommands returns the child commands in insertion order.
func (c *Command) Subcommands() []*Command {
	var cmds []*Command

	for _, child := range c.children {
		if cmd, ok := child.(*Command); ok {
			cmds = append(cmds, cmd)
		}
	}

	return cmds
}

// All returns c and its descendant commands in pre-order.
func (c *Command) All() iter.Seq[*Command] {
	return func(yield func(*Command) bool) {
		c.walk(yield)
	}
}

func (c *Command) walk(yield func(*Command) bool) bool {
	if !yield(c) {
		return false
	}

	for _, sub := range c.Subcommands() {
		if !sub.walk(yield) {
			return false
		}
	}

	return true
}

// Options returns the command's own options in insertion order.
func (c *Command) Options() []*Option {
	var opts []*Option

	for _, child := range c.children {
		if opt, ok := child.(*Option); ok {
			opts = append(opts, opt)
		}
	}

	return opts
}

// Subcommand returns the child command invoked by alias.
func (c *Command) Subcommand(alias string) (*Command, bool) {
	for _, child := range c.children {
		if cmd, ok := child.(*Command); ok && cmd.HasAlias(alias) {
			return cmd, true
		}
	}

	return nil, false
}

// Option returns the command's own option invoked by alias.
func (c *Command) Option(alias string) (*Option, bool) {
	for _, child := range c.children {
		if opt, ok := child.(*Option); ok && opt.HasAlias(alias) {
			return opt, true
		}
	}

	return nil, false
}

// Path returns the commands from the root down to c.
func (c *Command) Path() []*Command {
	var path []*Command

	for s := Symbol(c); s != nil; s = s.Parent() {
		if cmd, ok := s.(*Command); ok {
			path = append(path, cmd)
		}
	}

	slices.Reverse(path)

	return path
}

// Validate reports inconsistencies in the tree rooted at c: aliases shared
// by siblings and arguments with invalid arity.
func (c *Command) Validate() error {
	var errs []error

	seen := make(map[string]Symbol)

	for _, child := range c.children {
		for _, alias := range child.Aliases() {
			if prev, ok := seen[alias]; ok {
				errs = append(errs, ErrDuplicateAlias.With(
					slog.String("command", c.Name()),
					slog.String("alias", alias),
					slog.String("first", prev.Name()),
					slog.String("second", child.Name()),
				))

				continue
			}

			seen[alias] = child
		}

		switch child := child.(type) {
		case *Command:
			errs = append(errs, child.Validate())
		case *Option:
			errs = append(errs, child.argument.validate())
		}
	}

	errs = append(errs, c.argument.validate())

	return errors.Join(errs...)
}

// Usage synthesizes a usage line from the command path and the children in
// insertion order, such as "app remote add [options] <url> [command]".
func (c *Command) Usage() string {
	part := make([]string, 0, 8)

	for _, cmd := range c.Path() {
		part = append(part, cmd.Name())
	}

	if len(c.Options()) > 0 {
		part = append(part, "[options]")
	}

	if c.argument != nil {
		if u := c.argument.usage(); u != "" {
			part = append(part, u)
		}
	}

	if len(c.Subcommands()) > 0 {
		if c.handler == nil {
			part = append(part, "<command>")
		} else {
			part = append(part, "[command]")
		}
	}

	return strings.Join(part, " ")
}

// Option is a named symbol, usually dash-prefixed, optionally owning one
// argument.
type Option struct {
	symbol

	argument *Argument
	required bool
}

// NewOption returns an option invoked by alias and any further aliases.
// The first alias is the option's name.
func NewOption(alias string, aliases ...string) *Option {
	return &Option{symbol: makeSymbol(alias, aliases...)}
}

// Kind returns [KindOption].
func (*Option) Kind() SymbolKind { return KindOption }

// Describe sets the help text.
func (o *Option) Describe(description string) *Option {
	o.description = description

	return o
}

// Hide omits the option from help output.
func (o *Option) Hide() *Option {
	o.hidden = true

	return o
}

// SetArgument binds the option's argument.
// It panics if the argument already belongs to another symbol.
func (o *Option) SetArgument(arg *Argument) *Option {
	adopt(o, arg, &arg.symbol)
	o.argument = arg

	return o
}

// Require marks the option as required.
func (o *Option) Require(required bool) *Option {
	o.required = required

	return o
}

// AddValidator appends validators run against the option's result.
func (o *Option) AddValidator(v ...Validator) *Option {
	o.validators = append(o.validators, v...)

	return o
}

// Argument returns the option's argument, or nil for a flag.
func (o *Option) Argument() *Argument { return o.argument }

// Required reports whether the option must be supplied.
func (o *Option) Required() bool { return o.required }

// Argument is the value-carrying symbol bound to a command or option.
type Argument struct {
	symbol

	arity      Arity
	defaultFn  func() any
	hasDefault bool
	allowed    []string
	filters    []valueFilter
	suggest    SuggestFunc
}

// NewArgument returns an argument with display name name and arity
// [ExactlyOne].
func NewArgument(name string) *Argument {
	return &Argument{
		symbol: makeSymbol(name),
		arity:  defaultArity,
	}
}

// Kind returns [KindArgument].
func (*Argument) Kind() SymbolKind { return KindArgument }

// Describe sets the help text.
func (a *Argument) Describe(description string) *Argument {
	a.description = description

	return a
}

// SetArity sets the number of values the argument accepts.
func (a *Argument) SetArity(arity Arity) *Argument {
	a.arity = arity

	return a
}

// SetDefault sets the value used when the argument receives no values.
func (a *Argument) SetDefault(v any) *Argument {
	return a.SetDefaultFunc(func() any { return v })
}

// SetDefaultFunc sets a factory for the value used when the argument
// receives no values. The factory runs once per parse that needs it.
func (a *Argument) SetDefaultFunc(fn func() any) *Argument {
	a.defaultFn = fn
	a.hasDefault = fn != nil

	return a
}

// FromAmong restricts values to a closed, case-sensitive set.
func (a *Argument) FromAmong(values ...string) *Argument {
	a.allowed = append(a.allowed, values...)

	return a
}

// LegalFilePathsOnly moves values containing characters that are invalid in
// file paths to the unmatched tokens. Such values are not errors.
func (a *Argument) LegalFilePathsOnly() *Argument {
	a.filters = append(a.filters, rejectIllegalPaths)

	return a
}

// ExistingFilesOnly silently drops values that do not name an existing file
// or directory. Arity errors report the resulting shortfall.
func (a *Argument) ExistingFilesOnly() *Argument {
	a.filters = append(a.filters, dropMissingFiles)

	return a
}

// SetSuggestions binds a completion provider.
func (a *Argument) SetSuggestions(fn SuggestFunc) *Argument {
	a.suggest = fn

	return a
}

// AddValidator appends validators run against the argument's result.
func (a *Argument) AddValidator(v ...Validator) *Argument {
	a.validators = append(a.validators, v...)

	return a
}

// Arity returns the accepted number of values.
func (a *Argument) Arity() Arity { return a.arity }

// HasDefault reports whether a default value is set.
func (a *Argument) HasDefault() bool { return a.hasDefault }

// Default returns a new default value, or nil if none is set.
func (a *Argument) Default() any {
	if !a.hasDefault {
		return nil
	}

	return a.defaultFn()
}

// AllowedValues returns the closed set of accepted values, or nil.
func (a *Argument) AllowedValues() []string { return slices.Clone(a.allowed) }

// Suggestions returns completion candidates: the allowed values followed by
// the output of the bound provider.
func (a *Argument) Suggestions(ctx SuggestContext) []string {
	out := slices.Clone(a.allowed)

	if a.suggest != nil {
		out = append(out, a.suggest(ctx)...)
	}

	return out
}

// disallowed returns the values outside the allowed set.
func (a *Argument) disallowed(values []string) []string {
	if len(a.allowed) == 0 {
		return nil
	}

	var bad []string

	for _, v := range values {
		if !slices.Contains(a.allowed, v) {
			bad = append(bad, v)
		}
	}

	return bad
}

func (a *Argument) validate() error {
	if a == nil || a.arity.Valid() {
		return nil
	}

	return ErrInvalidArity.With(
		slog.String("argument", a.Name()),
		slog.String("arity", fmt.Sprintf("%d..%d", a.arity.Min, a.arity.Max)),
	)
}

func (a *Argument) usage() string {
	if a.arity.Max == 0 {
		return ""
	}

	u := "<" + a.Name() + ">"
	if !a.arity.Bounded() || a.arity.Max > 1 {
		u += "..."
	}

	if a.arity.Min == 0 {
		u = "[" + u + "]"
	}

	return u
}
