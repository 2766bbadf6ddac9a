package repl

import (
	"maps"
	"slices"
	"strings"

	"github.com/ardnew/argot/cmdline"
	"github.com/ardnew/argot/suggest"
)

// Report renders a parse result for people: the highlighted diagram, one line
// per error, unmatched tokens with their closest known aliases and the
// values by symbol name. Values that came from a default are marked.
func Report(r *cmdline.ParseResult, p Palette) string {
	s := r.Summary()

	var b strings.Builder

	b.WriteString(p.Highlight(s.Diagram))
	b.WriteByte('\n')

	for _, e := range s.Errors {
		b.WriteString(errorStyle.Render("error: " + e.Message))
		b.WriteByte('\n')
	}

	hints := suggest.Unmatched(r)

	for _, tok := range s.Unmatched {
		b.WriteString(hintStyle.Render("unmatched: " + tok))

		if alt := hints[tok]; len(alt) > 0 {
			b.WriteString(hintStyle.Render(" (did you mean " + strings.Join(alt, ", ") + "?)"))
		}

		b.WriteByte('\n')
	}

	for _, name := range slices.Sorted(maps.Keys(s.Values)) {
		b.WriteString("  " + p.Symbol.Render(name) + " = ")
		b.WriteString(p.Value.Render(strings.Join(s.Values[name], " ")))

		if slices.Contains(s.Implicit, name) {
			b.WriteString(hintStyle.Render(" (default)"))
		}

		b.WriteByte('\n')
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// Tree returns the usage line of every visible command under root, followed
// by its description, in pre-order.
func Tree(root *cmdline.Command) []string {
	var lines []string

	for cmd := range root.All() {
		if hidden(cmd) {
			continue
		}

		line := cmd.Usage()
		if d := cmd.Description(); d != "" {
			line += "  # " + d
		}

		lines = append(lines, line)
	}

	return lines
}

// hidden reports whether cmd or any of its ancestors is hidden.
func hidden(cmd *cmdline.Command) bool {
	return slices.ContainsFunc(cmd.Path(), (*cmdline.Command).Hidden)
}
