package cmdline

import (
	"fmt"
	"slices"
	"strings"
)

// resolve runs the checks that need the complete result tree: value filters,
// implicit and required options, arity, required subcommands and validators.
func (st *parseState) resolve() {
	st.filterValues()
	st.addImplicitOptions()
	st.resolveArity()
	st.requireCommand()
	st.validate()

	slices.Sort(st.result.unmatched)
}

// filterValues applies the value filters of each argument.
func (st *parseState) filterValues() {
	r := st.result

	for id := range r.nodes {
		arg, ok := r.nodes[id].symbol.(*Argument)
		if !ok || len(arg.filters) == 0 {
			continue
		}

		kept := r.nodes[id].tokens[:0]

	values:
		for _, pos := range r.nodes[id].tokens {
			for _, filter := range arg.filters {
				switch filter(st.fs, r.tokens[pos].Text) {
				case unmatchValue:
					r.unmatched = append(r.unmatched, pos)

					continue values
				case dropValue:
					continue values
				}
			}

			kept = append(kept, pos)
		}

		r.nodes[id].tokens = kept
	}
}

// addImplicitOptions adds results for absent options of the commands on the
// selected path whose argument has a default, and reports absent required
// options.
func (st *parseState) addImplicitOptions() {
	r := st.result

	var path []int
	for id := r.command; id != noNode; id = r.nodes[id].parent {
		path = append(path, id)
	}

	slices.Reverse(path)

	for _, id := range path {
		for _, opt := range r.nodes[id].symbol.(*Command).Options() {
			if r.childFor(id, opt) != noNode {
				continue
			}

			if opt.argument != nil && opt.argument.hasDefault {
				oid := r.addOwner(opt, id)
				r.nodes[oid].implicit = true

				continue
			}

			if opt.required {
				r.fail(id, newParseError(MissingOption, r.handle(id),
					"Option '%s' is required.", opt.Name()))
			}
		}
	}
}

// resolveArity checks the value count of every argument result, children
// before parents, and applies defaults to the empty ones.
func (st *parseState) resolveArity() {
	r := st.result

	for id := len(r.nodes) - 1; id >= 0; id-- {
		arg, ok := r.nodes[id].symbol.(*Argument)
		if !ok {
			continue
		}

		owner := r.nodes[id].parent
		values := r.handle(id).Values()
		n := len(values)

		switch {
		case arg.arity.Exceeds(n):
			st.arityFailed(owner, TooManyArguments, st.tooMany(owner, arg, n))

		case len(arg.disallowed(values)) > 0:
			if arg.arity.Min >= 1 {
				st.arityFailed(owner, MissingArgument, st.missing(owner))

				continue
			}

			for _, v := range arg.disallowed(values) {
				r.fail(owner, newParseError(ValidatorFailed, r.handle(owner),
					"Argument '%s' not recognized. Must be one of: %s.",
					v, quoteList(arg.allowed)))
			}

		case n == 0 && arg.hasDefault:
			r.nodes[id].implicit = true
			r.nodes[id].defaultValue = arg.Default()

		case n < arg.arity.Min:
			st.arityFailed(owner, MissingArgument, st.missing(owner))
		}
	}
}

func (st *parseState) arityFailed(id int, kind ErrorKind, msg string) {
	r := st.result
	r.nodes[id].arityFailed = true

	if arg := r.argumentOf(id); arg != noNode {
		r.nodes[arg].arityFailed = true
	}

	r.fail(id, newParseError(kind, r.handle(id), "%s", msg))
}

// alias returns the text the user invoked the option with, or its name if it
// was not invoked.
func (st *parseState) alias(id int) string {
	n := st.result.nodes[id]
	if len(n.tokens) > 0 {
		return st.result.tokens[n.tokens[0]].Text
	}

	return n.symbol.Name()
}

func (st *parseState) tooMany(owner int, arg *Argument, n int) string {
	if st.result.nodes[owner].symbol.Kind() == KindCommand {
		return fmt.Sprintf("Command '%s' expects at most %d arguments but %d were provided.",
			st.result.nodes[owner].symbol.Name(), arg.arity.Max, n)
	}

	if arg.arity.Max == 1 {
		return fmt.Sprintf("Option '%s' expects a single argument but %d were provided.",
			st.alias(owner), n)
	}

	return fmt.Sprintf("Option '%s' expects at most %d arguments but %d were provided.",
		st.alias(owner), arg.arity.Max, n)
}

func (st *parseState) missing(owner int) string {
	if st.result.nodes[owner].symbol.Kind() == KindCommand {
		return "Required argument missing for command: " + st.result.nodes[owner].symbol.Name()
	}

	return "Required argument missing for option: " + st.alias(owner)
}

// requireCommand reports a selected command that needs a subcommand.
func (st *parseState) requireCommand() {
	r := st.result

	cmd := r.nodes[r.command].symbol.(*Command)
	if cmd.handler != nil || len(cmd.Subcommands()) == 0 {
		return
	}

	r.fail(r.command, newParseError(MissingCommand, r.handle(r.command),
		"Required command was not provided."))
}

// validate runs the validators of every result in pre-order, skipping those
// whose value count is already wrong.
func (st *parseState) validate() {
	r := st.result

	r.preorder(0, func(id int) bool {
		n := r.nodes[id]
		if n.arityFailed {
			return true
		}

		for _, v := range n.symbol.Validators() {
			if err := v(r.handle(id)); err != nil {
				r.fail(id, newParseError(ValidatorFailed, r.handle(id), "%s", err.Error()))
			}
		}

		return true
	})
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}

	return strings.Join(quoted, ", ")
}
