package cmdline

import (
	"context"
	"log/slog"

	"github.com/ardnew/argot/log"
)

// Parser matches input against a command tree.
// A Parser holds no per-parse state and is safe for concurrent use.
type Parser struct {
	root *Command
	config
}

type config struct {
	fs     FileSystem
	logger log.Logger
}

// ParserOption configures a [Parser].
type ParserOption func(config) config

// WithFileSystem sets the file system queried by the built-in value filters.
// The default is [OSFileSystem].
func WithFileSystem(fs FileSystem) ParserOption {
	return func(c config) config {
		if fs == nil {
			fs = OSFileSystem{}
		}

		c.fs = fs

		return c
	}
}

// WithLogger sets the logger receiving a trace record per parse.
// The zero [log.Logger] discards everything.
func WithLogger(logger log.Logger) ParserOption {
	return func(c config) config {
		c.logger = logger

		return c
	}
}

// NewParser returns a parser for the tree rooted at root.
func NewParser(root *Command, opts ...ParserOption) *Parser {
	cfg := config{fs: OSFileSystem{}}

	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return &Parser{root: root, config: cfg}
}

// Root returns the command tree the parser matches against.
func (p *Parser) Root() *Command { return p.root }

// Parse matches args, typically the process arguments without the program
// name, against the command tree. It always returns a result; problems are
// reported by [ParseResult.Errors].
//
// The context is only passed to the logger.
func (p *Parser) Parse(ctx context.Context, args []string) *ParseResult {
	st := &parseState{
		config: p.config,
		args:   args,
		tz:     newTokenizer(p.root),
		result: &ParseResult{root: p.root, tokens: make([]Token, 0, len(args))},
	}

	st.run()
	st.resolve()

	p.logger.TraceContext(ctx, "parse complete",
		slog.String("command", st.result.CommandResult().Symbol().Name()),
		slog.Int("tokens", len(st.result.tokens)),
		slog.Int("unmatched", len(st.result.unmatched)),
		slog.Int("errors", len(st.result.errors)),
	)

	return st.result
}

// ParseLine splits line with shell quoting rules and parses the arguments.
func (p *Parser) ParseLine(ctx context.Context, line string) (*ParseResult, error) {
	args, err := SplitCommandLine(line)
	if err != nil {
		return nil, err
	}

	return p.Parse(ctx, args), nil
}

// Parse matches args against the tree rooted at root using the default
// parser configuration.
func Parse(root *Command, args ...string) *ParseResult {
	return NewParser(root).Parse(context.Background(), args)
}

// parseState is the state of a single parse.
type parseState struct {
	config

	// args are tokenized lazily, in the scope of the command being matched
	// when each is reached. next is the position of the first one left.
	args   []string
	next   int
	tz     *tokenizer
	result *ParseResult
	// current is the id of the innermost command result.
	current int
	ended   bool
	cursor  int
}

func (st *parseState) currentCommand() *Command {
	return st.result.nodes[st.current].symbol.(*Command)
}

func (st *parseState) run() {
	r := st.result
	r.command = r.addOwner(st.root(), noNode)
	st.current = r.command

	for st.fill() {
		tok := r.tokens[st.cursor]

		switch {
		case tok.Kind == TokenEndOfOptions && !st.ended:
			st.ended = true
			st.cursor++

		case st.ended:
			st.addArgument(st.cursor)
			st.cursor++

		case tok.Attached:
			// The option before it takes no value.
			st.unmatch(st.cursor, st.currentCommand().unmatched)
			st.cursor++

		default:
			st.match()
		}
	}

	r.command = st.current
}

func (st *parseState) root() *Command { return st.result.root }

// fill tokenizes raw arguments until a token exists at the cursor. It
// reports false when the input is exhausted.
func (st *parseState) fill() bool {
	r := st.result

	for st.cursor >= len(r.tokens) {
		if st.next >= len(st.args) {
			return false
		}

		r.tokens = append(r.tokens, st.tz.next(st.args[st.next], st.next)...)
		st.next++
	}

	return true
}

// match handles the token at the cursor, which is neither a value after the
// end of options nor attached to an option.
func (st *parseState) match() {
	r := st.result
	pos := st.cursor
	text := r.tokens[pos].Text

	if cmd, ok := st.currentCommand().Subcommand(text); ok {
		r.tokens[pos].Kind = TokenCommand
		st.current = r.addOwner(cmd, st.current)
		r.nodes[st.current].tokens = append(r.nodes[st.current].tokens, pos)
		st.tz.enter(cmd)
		st.cursor++

		return
	}

	if owner, opt, ok := st.lookupOption(text); ok {
		st.cursor++
		st.consumeOption(owner, opt, pos)

		return
	}

	st.addArgument(pos)
	st.cursor++
}

// lookupOption finds the option invoked by alias among the commands on the
// current path, innermost first. It returns the id of the declaring command's
// result.
func (st *parseState) lookupOption(alias string) (int, *Option, bool) {
	for id := st.current; id != noNode; id = st.result.nodes[id].parent {
		if opt, ok := st.result.nodes[id].symbol.(*Command).Option(alias); ok {
			return id, opt, true
		}
	}

	return noNode, nil, false
}

// consumeOption records an occurrence of opt, named by the token at pos, and
// greedily takes following tokens as its values.
func (st *parseState) consumeOption(owner int, opt *Option, pos int) {
	r := st.result
	r.tokens[pos].Kind = TokenOption

	id := r.childFor(owner, opt)
	if id == noNode {
		id = r.addOwner(opt, owner)
	}

	r.nodes[id].tokens = append(r.nodes[id].tokens, pos)

	arg := r.argumentOf(id)
	if arg == noNode {
		return
	}

	limit := opt.argument.arity.Max
	taken := 0

	for st.fill() {
		if limit != Unbounded && taken >= limit {
			return
		}

		tok := r.tokens[st.cursor]

		// Attached values bind to the option token right before them.
		if tok.Attached {
			if st.cursor != pos+1 {
				return
			}
		} else if !st.consumable(tok) {
			return
		}

		r.tokens[st.cursor].Kind = TokenArgument
		r.nodes[arg].tokens = append(r.nodes[arg].tokens, st.cursor)
		taken++
		st.cursor++
	}
}

// consumable reports whether tok may be taken as an option value.
func (st *parseState) consumable(tok Token) bool {
	if tok.Kind == TokenEndOfOptions || st.ended {
		return false
	}

	if st.tz.scope.known(tok.Text) {
		return false
	}

	_, isCommand := st.currentCommand().Subcommand(tok.Text)

	return !isCommand
}

// addArgument appends the token at pos to the current command's argument if
// it has capacity, and records it as unmatched otherwise.
func (st *parseState) addArgument(pos int) {
	r := st.result
	r.tokens[pos].Kind = TokenArgument

	if arg := r.argumentOf(st.current); arg != noNode {
		a := r.nodes[arg].symbol.(*Argument)
		if a.arity.Max == Unbounded || len(r.nodes[arg].tokens) < a.arity.Max {
			r.nodes[arg].tokens = append(r.nodes[arg].tokens, pos)

			return
		}
	}

	st.unmatch(pos, st.currentCommand().unmatched)
}

// unmatch records the token at pos as unmatched, reporting an error against
// the current command if asked to.
func (st *parseState) unmatch(pos int, report bool) {
	r := st.result
	r.unmatched = append(r.unmatched, pos)

	if report {
		text := r.tokens[pos].Text
		err := newParseError(UnrecognizedToken, r.handle(st.current),
			"Unrecognized command or argument '%s'.", text)
		err.Token = text
		r.fail(st.current, err)
	}
}
