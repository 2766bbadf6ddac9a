package cmdline

import "strings"

// Diagram renders the result tree for diagnostics. Each command and option
// result is bracketed with its values in angle brackets, results that exist
// only because of a default are marked with '*', and unmatched tokens follow
// the tree wrapped in '!':
//
//	[ app [ add [ -x <a> <b> ] *[ -y <456> ] ] ] !extra!
func (r *ParseResult) Diagram() string {
	var sb strings.Builder

	r.diagram(&sb, 0)

	for _, tok := range r.UnmatchedTokens() {
		sb.WriteString(" !")
		sb.WriteString(tok)
		sb.WriteByte('!')
	}

	return sb.String()
}

func (r *ParseResult) diagram(sb *strings.Builder, id int) {
	n := r.nodes[id]

	if n.symbol.Kind() == KindArgument {
		r.diagramValues(sb, id)

		return
	}

	if n.implicit {
		sb.WriteByte('*')
	}

	sb.WriteString("[ ")
	sb.WriteString(n.symbol.Name())

	for _, c := range n.children {
		if r.nodes[c].symbol.Kind() == KindArgument {
			r.diagramValues(sb, c)

			continue
		}

		sb.WriteByte(' ')
		r.diagram(sb, c)
	}

	sb.WriteString(" ]")
}

func (r *ParseResult) diagramValues(sb *strings.Builder, id int) {
	for i, v := range r.handle(id).Values() {
		if i > 0 || sb.Len() > 0 {
			sb.WriteByte(' ')
		}

		sb.WriteByte('<')
		sb.WriteString(v)
		sb.WriteByte('>')
	}
}
