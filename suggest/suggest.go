// Package suggest computes completions and "did you mean" candidates for
// [cmdline] command trees.
package suggest

import (
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/argot/cmdline"
)

// maxUnmatched limits the candidates reported per unmatched token.
const maxUnmatched = 3

// Complete returns the completions of word after the already typed args,
// best match first. An empty word returns every candidate in declaration
// order.
func Complete(root *cmdline.Command, args []string, word string) []string {
	matches := Rank(word, Candidates(root, args, word))

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}

	return out
}

// Rank orders candidates by how well they match word. An empty word matches
// all candidates in their given order.
func Rank(word string, candidates []string) fuzzy.Matches {
	if word == "" {
		matches := make(fuzzy.Matches, len(candidates))
		for i, c := range candidates {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches
	}

	return fuzzy.Find(word, candidates)
}

// Candidates returns the words that may follow args, in declaration order and
// without duplicates. Hidden symbols are never offered.
//
// When the last token is an option still expecting a value, only that
// option's argument is completed. Otherwise the candidates are the
// subcommands of the selected command, the options in scope and the values of
// the command's argument while it has capacity.
func Candidates(root *cmdline.Command, args []string, word string) []string {
	r := cmdline.Parse(root, args...)

	var out []string

	if arg, scope := pending(r); arg != nil {
		return unique(arg.Suggestions(cmdline.SuggestContext{
			Text:   word,
			Values: siblingValues(scope),
		}))
	}

	cmd := r.CommandResult()
	command := cmd.Command()

	for _, sub := range command.Subcommands() {
		if !sub.Hidden() {
			out = append(out, sub.Aliases()...)
		}
	}

	given := make(map[*cmdline.Option]bool)

	for _, res := range optionResults(r) {
		given[res.Option()] = true
	}

	path := command.Path()
	for _, c := range slices.Backward(path) {
		for _, opt := range c.Options() {
			if opt.Hidden() || (given[opt] && saturated(opt)) {
				continue
			}

			out = append(out, opt.Aliases()...)
		}
	}

	if arg := command.Argument(); arg != nil {
		res := cmd.ArgumentResult()
		if arg.Arity().Max == cmdline.Unbounded || len(res.Tokens()) < arg.Arity().Max {
			out = append(out, arg.Suggestions(cmdline.SuggestContext{
				Text:   word,
				Values: siblingValues(cmd),
			})...)
		}
	}

	return unique(out)
}

// Unmatched returns "did you mean" candidates for each unmatched token of r
// that resembles a known command or option alias in scope.
func Unmatched(r *cmdline.ParseResult) map[string][]string {
	tokens := r.UnmatchedTokens()
	if len(tokens) == 0 {
		return nil
	}

	var known []string

	command := r.CommandResult().Command()
	for _, sub := range command.Subcommands() {
		if !sub.Hidden() {
			known = append(known, sub.Aliases()...)
		}
	}

	for _, c := range command.Path() {
		for _, opt := range c.Options() {
			if !opt.Hidden() {
				known = append(known, opt.Aliases()...)
			}
		}
	}

	known = unique(known)
	out := make(map[string][]string)

	for _, tok := range tokens {
		word := strings.TrimLeft(tok, "-/")
		if word == "" {
			continue
		}

		matches := fuzzy.Find(word, known)

		var names []string

		for _, m := range matches[:min(len(matches), maxUnmatched)] {
			names = append(names, m.Str)
		}

		if len(names) > 0 {
			out[tok] = names
		}
	}

	return out
}

// pending returns the argument of an option named by the last token that can
// still take a value, and the result of the command declaring it.
func pending(r *cmdline.ParseResult) (*cmdline.Argument, cmdline.SymbolResult) {
	tokens := r.Tokens()
	if len(tokens) == 0 {
		return nil, cmdline.SymbolResult{}
	}

	last := tokens[len(tokens)-1]
	if last.Kind != cmdline.TokenOption {
		return nil, cmdline.SymbolResult{}
	}

	for _, res := range optionResults(r) {
		opt := res.Option()
		if !opt.HasAlias(last.Text) || opt.Argument() == nil {
			continue
		}

		if opt.Argument().Arity().Max != 0 {
			return opt.Argument(), res.Parent()
		}
	}

	return nil, cmdline.SymbolResult{}
}

// saturated reports whether an option already given is not worth repeating.
func saturated(opt *cmdline.Option) bool {
	arg := opt.Argument()

	return arg == nil || arg.Arity().Max != cmdline.Unbounded
}

// optionResults returns the explicit option results of the parse.
func optionResults(r *cmdline.ParseResult) []cmdline.SymbolResult {
	var out []cmdline.SymbolResult

	var walk func(cmdline.SymbolResult)

	walk = func(s cmdline.SymbolResult) {
		for _, c := range s.Children() {
			switch c.Symbol().Kind() {
			case cmdline.KindOption:
				if !c.Implicit() {
					out = append(out, c)
				}
			case cmdline.KindCommand:
				walk(c)
			}
		}
	}

	walk(r.RootCommandResult())

	return out
}

// siblingValues returns the values of the children of scope keyed by symbol
// name and by argument name.
func siblingValues(scope cmdline.SymbolResult) map[string][]string {
	values := make(map[string][]string)

	for _, c := range scope.Children() {
		if c.Symbol().Kind() == cmdline.KindCommand {
			continue
		}

		v := c.Values()
		values[c.Symbol().Name()] = v

		if arg := c.ArgumentResult(); !arg.IsZero() {
			values[arg.Symbol().Name()] = v
		}
	}

	return values
}

func unique(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := list[:0:0]

	for _, s := range list {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	return out
}
