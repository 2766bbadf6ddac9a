package cmdline

import (
	"log/slog"
	"strings"

	"github.com/google/shlex"
)

// EndOfOptions is the raw argument after which every argument is a value.
const EndOfOptions = "--"

// TokenKind classifies a [Token].
type TokenKind int

const (
	TokenArgument TokenKind = iota
	TokenOption
	TokenCommand
	TokenEndOfOptions
)

// String returns the name of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenArgument:
		return "argument"
	case TokenOption:
		return "option"
	case TokenCommand:
		return "command"
	case TokenEndOfOptions:
		return "end-of-options"
	default:
		return "unknown"
	}
}

// Token is one classified unit of input.
type Token struct {
	Text string
	Kind TokenKind
	// Index is the position of the raw argument the token came from.
	Index int
	// Attached marks a value split off the option token before it, as in
	// "--opt=value" or "-ovalue". It always binds to that option.
	Attached bool
}

// String returns the token text.
func (t Token) String() string { return t.Text }

// LogValue implements slog.LogValuer.
func (t Token) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("text", t.Text),
		slog.String("kind", t.Kind.String()),
		slog.Int("index", t.Index),
	)
}

// scope maps the option aliases visible in a command to the option each
// invokes. An alias declared at several depths resolves to the innermost.
type scope map[string]*Option

// scopeOf returns the scope of cmd, made of the options of the commands from
// cmd up to and including root.
func scopeOf(cmd, root *Command) scope {
	sc := make(scope)

	for c := cmd; c != nil; {
		for _, opt := range c.Options() {
			for _, alias := range opt.aliases {
				if _, ok := sc[alias]; !ok {
					sc[alias] = opt
				}
			}
		}

		if c == root {
			break
		}

		c, _ = c.Parent().(*Command)
	}

	return sc
}

func (sc scope) known(alias string) bool {
	_, ok := sc[alias]

	return ok
}

// tokenizer classifies raw arguments one at a time against the options in
// scope of the command being matched.
type tokenizer struct {
	root  *Command
	scope scope
	ended bool
}

func newTokenizer(root *Command) *tokenizer {
	return &tokenizer{root: root, scope: scopeOf(root, root)}
}

// enter makes the options visible in cmd, a descendant of the root, the ones
// in scope.
func (tz *tokenizer) enter(cmd *Command) {
	tz.scope = scopeOf(cmd, tz.root)
}

// next returns the tokens of the raw argument arg at position index.
func (tz *tokenizer) next(arg string, index int) []Token {
	switch {
	case tz.ended:
		return []Token{{Text: arg, Kind: TokenArgument, Index: index}}

	case arg == EndOfOptions:
		tz.ended = true

		return []Token{{Text: arg, Kind: TokenEndOfOptions, Index: index}}

	case tz.scope.known(arg):
		return []Token{{Text: arg, Kind: TokenOption, Index: index}}
	}

	if split, ok := tz.scope.split(arg, index); ok {
		return split
	}

	if bundle, ok := tz.scope.unbundle(arg, index); ok {
		return bundle
	}

	if isDashed(arg) {
		return []Token{{Text: arg, Kind: TokenOption, Index: index}}
	}

	return []Token{{Text: arg, Kind: TokenArgument, Index: index}}
}

// Tokenize classifies raw arguments against the options in scope, starting
// at root. A bare argument naming a subcommand of the command in scope moves
// the scope into that subcommand, so the aliases of the innermost command
// win and options of sibling commands are unknown.
//
// Option values are not consumed, so a value spelled like a subcommand also
// moves the scope; the parser, which knows the values, tokenizes on its own
// as it matches. Bare arguments are returned as [TokenArgument]; the parser
// retags the ones it descends on as [TokenCommand]. Tokenize performs no I/O
// and returns the same tokens for the same input.
func Tokenize(args []string, root *Command) []Token {
	tz := newTokenizer(root)
	cmd := root
	tokens := make([]Token, 0, len(args))

	for i, arg := range args {
		bare := !tz.ended && cmd != nil

		toks := tz.next(arg, i)
		tokens = append(tokens, toks...)

		if !bare || len(toks) != 1 || toks[0].Kind != TokenArgument {
			continue
		}

		if sub, ok := cmd.Subcommand(arg); ok {
			cmd = sub
			tz.enter(sub)
		}
	}

	return tokens
}

// split separates "alias=value" or "alias:value" at the first delimiter when
// the left side is a known alias.
func (sc scope) split(arg string, index int) ([]Token, bool) {
	at := strings.IndexAny(arg, "=:")
	if at <= 0 || !sc.known(arg[:at]) {
		return nil, false
	}

	return []Token{
		{Text: arg[:at], Kind: TokenOption, Index: index},
		{Text: arg[at+1:], Kind: TokenArgument, Index: index, Attached: true},
	}, true
}

// unbundle expands a POSIX group such as "-abc" into "-a", "-b", "-c" when
// each is a known alias. Characters following an option that takes an
// argument become its attached value, as in "-ofile".
func (sc scope) unbundle(arg string, index int) ([]Token, bool) {
	if len(arg) < 3 || arg[0] != '-' || arg[1] == '-' {
		return nil, false
	}

	var tokens []Token

	for i, r := range arg[1:] {
		alias := "-" + string(r)

		opt, ok := sc[alias]
		if !ok {
			return nil, false
		}

		tokens = append(tokens, Token{Text: alias, Kind: TokenOption, Index: index})

		rest := arg[1+i+len(string(r)):]
		if opt.argument != nil && opt.argument.arity.Max != 0 && rest != "" {
			tokens = append(tokens, Token{
				Text: rest, Kind: TokenArgument, Index: index, Attached: true,
			})

			break
		}
	}

	return tokens, true
}

func isDashed(arg string) bool {
	return len(arg) > 1 && arg[0] == '-'
}

// SplitCommandLine splits line into arguments using shell quoting rules.
func SplitCommandLine(line string) ([]string, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return nil, ErrSplitCommandLine.Wrap(err).With(slog.String("line", line))
	}

	return args, nil
}
