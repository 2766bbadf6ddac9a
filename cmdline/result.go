package cmdline

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

const noNode = -1

// node is one entry of the result arena.
type node struct {
	symbol   Symbol
	parent   int
	children []int
	// tokens are positions in ParseResult.tokens. For argument nodes they are
	// the consumed values; otherwise the tokens naming the symbol.
	tokens       []int
	implicit     bool
	defaultValue any
	arityFailed  bool
	errors       []*ParseError
}

// ParseResult is the outcome of one parse. It is never modified after the
// parse returns and may be read concurrently.
type ParseResult struct {
	root      *Command
	nodes     []node
	command   int
	tokens    []Token
	unmatched []int
	errors    []*ParseError
}

func (r *ParseResult) add(sym Symbol, parent int) int {
	id := len(r.nodes)

	r.nodes = append(r.nodes, node{symbol: sym, parent: parent})

	if parent != noNode {
		r.nodes[parent].children = append(r.nodes[parent].children, id)
	}

	return id
}

// addOwner adds a command or option result along with the result of its
// argument, if any.
func (r *ParseResult) addOwner(sym Symbol, parent int) int {
	id := r.add(sym, parent)

	var arg *Argument

	switch s := sym.(type) {
	case *Command:
		arg = s.argument
	case *Option:
		arg = s.argument
	}

	if arg != nil {
		r.add(arg, id)
	}

	return id
}

// argumentOf returns the id of the argument result owned by id, or noNode.
func (r *ParseResult) argumentOf(id int) int {
	for _, c := range r.nodes[id].children {
		if r.nodes[c].symbol.Kind() == KindArgument {
			return c
		}
	}

	return noNode
}

// childFor returns the id of the direct child result of id for sym, or noNode.
func (r *ParseResult) childFor(id int, sym Symbol) int {
	for _, c := range r.nodes[id].children {
		if r.nodes[c].symbol == sym {
			return c
		}
	}

	return noNode
}

func (r *ParseResult) fail(id int, err *ParseError) {
	if id != noNode {
		r.nodes[id].errors = append(r.nodes[id].errors, err)
	}

	r.errors = append(r.errors, err)
}

// preorder calls fn for every result reachable from id, parents first.
func (r *ParseResult) preorder(id int, fn func(int) bool) bool {
	if !fn(id) {
		return false
	}

	for _, c := range r.nodes[id].children {
		if !r.preorder(c, fn) {
			return false
		}
	}

	return true
}

func (r *ParseResult) handle(id int) SymbolResult {
	if id == noNode {
		return SymbolResult{}
	}

	return SymbolResult{tree: r, id: id}
}

// RootCommandResult returns the result of the root command.
func (r *ParseResult) RootCommandResult() SymbolResult { return r.handle(0) }

// CommandResult returns the result of the innermost selected command.
func (r *ParseResult) CommandResult() SymbolResult { return r.handle(r.command) }

// RootCommand returns the command tree the result was parsed against.
func (r *ParseResult) RootCommand() *Command { return r.root }

// Handler returns the handler of the innermost selected command, or nil.
func (r *ParseResult) Handler() Handler {
	return r.CommandResult().Command().Handler()
}

// Errors returns every parse error in the order it was detected.
func (r *ParseResult) Errors() []*ParseError { return slices.Clone(r.errors) }

// Err joins the parse errors, or returns nil if there are none.
func (r *ParseResult) Err() error {
	errs := make([]error, len(r.errors))
	for i, err := range r.errors {
		errs[i] = err
	}

	return errors.Join(errs...)
}

// Tokens returns the token sequence with its final classification.
func (r *ParseResult) Tokens() []Token { return slices.Clone(r.tokens) }

// UnmatchedTokens returns the text of tokens claimed by no symbol, in input
// order.
func (r *ParseResult) UnmatchedTokens() []string {
	out := make([]string, len(r.unmatched))
	for i, pos := range r.unmatched {
		out[i] = r.tokens[pos].Text
	}

	return out
}

// FindResultFor returns the first result, in pre-order, of sym. The result
// is zero if sym was not matched.
func (r *ParseResult) FindResultFor(sym Symbol) SymbolResult {
	return r.RootCommandResult().FindResultFor(sym)
}

// Lookup returns the first result, in pre-order, whose symbol has the given
// name or alias. Commands and options are preferred over arguments, so an
// argument named like an option alias never shadows the option.
func (r *ParseResult) Lookup(name string) (SymbolResult, bool) {
	found, arg := noNode, noNode

	r.preorder(0, func(id int) bool {
		sym := r.nodes[id].symbol
		if sym.Name() != name && !sym.HasAlias(name) {
			return true
		}

		if sym.Kind() != KindArgument {
			found = id

			return false
		}

		if arg == noNode {
			arg = id
		}

		return true
	})

	if found == noNode {
		found = arg
	}

	return r.handle(found), found != noNode
}

// LogValue implements slog.LogValuer.
func (r *ParseResult) LogValue() slog.Value {
	errs := make([]any, len(r.errors))
	for i, err := range r.errors {
		errs[i] = err.Message
	}

	return slog.GroupValue(
		slog.String("command", r.CommandResult().Symbol().Name()),
		slog.Int("tokens", len(r.tokens)),
		slog.Any("unmatched", r.UnmatchedTokens()),
		slog.Any("errors", errs),
	)
}

// Summary is a serializable digest of a [ParseResult].
type Summary struct {
	Command   []string            `json:"command"             yaml:"command"`
	Values    map[string][]string `json:"values,omitempty"    yaml:"values,omitempty"`
	Implicit  []string            `json:"implicit,omitempty"  yaml:"implicit,omitempty"`
	Unmatched []string            `json:"unmatched,omitempty" yaml:"unmatched,omitempty"`
	Errors    []SummaryError      `json:"errors,omitempty"    yaml:"errors,omitempty"`
	Diagram   string              `json:"diagram"             yaml:"diagram"`
}

// SummaryError is the serializable form of a [ParseError].
type SummaryError struct {
	Kind    string `json:"kind"             yaml:"kind"`
	Message string `json:"message"          yaml:"message"`
	Symbol  string `json:"symbol,omitempty" yaml:"symbol,omitempty"`
}

// Summary returns a digest of the result keyed by symbol name.
func (r *ParseResult) Summary() Summary {
	s := Summary{
		Values:    make(map[string][]string),
		Unmatched: r.UnmatchedTokens(),
		Diagram:   r.Diagram(),
	}

	for _, cmd := range r.CommandResult().Command().Path() {
		s.Command = append(s.Command, cmd.Name())
	}

	r.preorder(0, func(id int) bool {
		n := r.nodes[id]
		if n.symbol.Kind() == KindArgument {
			return true
		}

		res := r.handle(id)
		if vals := res.Values(); len(vals) > 0 {
			s.Values[n.symbol.Name()] = vals
		}

		if res.Implicit() {
			s.Implicit = append(s.Implicit, n.symbol.Name())
		}

		return true
	})

	for _, err := range r.errors {
		e := SummaryError{Kind: err.Kind.String(), Message: err.Message}
		if !err.result.IsZero() {
			e.Symbol = err.result.Symbol().Name()
		}

		s.Errors = append(s.Errors, e)
	}

	return s
}

// SymbolResult is a handle to the result of one matched symbol. The zero
// value refers to no result.
type SymbolResult struct {
	tree *ParseResult
	id   int
}

// IsZero reports whether the handle refers to no result.
func (s SymbolResult) IsZero() bool { return s.tree == nil }

func (s SymbolResult) node() *node { return &s.tree.nodes[s.id] }

// Symbol returns the matched symbol, or nil.
func (s SymbolResult) Symbol() Symbol {
	if s.IsZero() {
		return nil
	}

	return s.node().symbol
}

// Command returns the matched command, or nil if the symbol is not one.
func (s SymbolResult) Command() *Command {
	cmd, _ := s.Symbol().(*Command)

	return cmd
}

// Option returns the matched option, or nil if the symbol is not one.
func (s SymbolResult) Option() *Option {
	opt, _ := s.Symbol().(*Option)

	return opt
}

// Argument returns the matched argument, or nil if the symbol is not one.
func (s SymbolResult) Argument() *Argument {
	arg, _ := s.Symbol().(*Argument)

	return arg
}

// Parent returns the owning result. It is zero for the root command.
func (s SymbolResult) Parent() SymbolResult {
	if s.IsZero() {
		return s
	}

	return s.tree.handle(s.node().parent)
}

// Children returns the child results in the order they were created.
func (s SymbolResult) Children() []SymbolResult {
	if s.IsZero() {
		return nil
	}

	kids := s.node().children
	out := make([]SymbolResult, len(kids))

	for i, c := range kids {
		out[i] = s.tree.handle(c)
	}

	return out
}

// ArgumentResult returns the result of the symbol's argument. It is zero if
// the symbol has no argument. An argument result returns itself.
func (s SymbolResult) ArgumentResult() SymbolResult {
	if s.IsZero() || s.node().symbol.Kind() == KindArgument {
		return s
	}

	return s.tree.handle(s.tree.argumentOf(s.id))
}

// Tokens returns the tokens consumed by the result. For commands and options
// these are the tokens naming the symbol; for arguments, the values.
func (s SymbolResult) Tokens() []Token {
	if s.IsZero() {
		return nil
	}

	pos := s.node().tokens
	out := make([]Token, len(pos))

	for i, p := range pos {
		out[i] = s.tree.tokens[p]
	}

	return out
}

// Values returns the raw values of the result's argument. Applied defaults
// are rendered as text.
func (s SymbolResult) Values() []string {
	arg := s.ArgumentResult()
	if arg.IsZero() {
		return nil
	}

	n := arg.node()
	if n.implicit {
		return defaultText(n.defaultValue)
	}

	out := make([]string, len(n.tokens))
	for i, p := range n.tokens {
		out[i] = s.tree.tokens[p].Text
	}

	return out
}

// Implicit reports whether the result exists only because a default was
// applied.
func (s SymbolResult) Implicit() bool {
	if s.IsZero() {
		return false
	}

	return s.node().implicit
}

// Errors returns the parse errors scoped to this result.
func (s SymbolResult) Errors() []*ParseError {
	if s.IsZero() {
		return nil
	}

	return slices.Clone(s.node().errors)
}

// FindResultFor returns the first result, in pre-order from s, of sym.
func (s SymbolResult) FindResultFor(sym Symbol) SymbolResult {
	if s.IsZero() {
		return s
	}

	found := noNode

	s.tree.preorder(s.id, func(id int) bool {
		if s.tree.nodes[id].symbol == sym {
			found = id

			return false
		}

		return true
	})

	return s.tree.handle(found)
}

// String renders the diagram of the subtree rooted at s.
func (s SymbolResult) String() string {
	if s.IsZero() {
		return ""
	}

	var sb strings.Builder

	s.tree.diagram(&sb, s.id)

	return sb.String()
}

// defaultText renders a default value as raw values.
func defaultText(v any) []string {
	switch v := v.(type) {
	case nil:
		return nil
	case []string:
		return slices.Clone(v)
	case string:
		return []string{v}
	case fmt.Stringer:
		return []string{v.String()}
	default:
		return []string{fmt.Sprint(v)}
	}
}
