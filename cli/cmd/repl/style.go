package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// Palette styles the parts of a parse diagram.
type Palette struct {
	Bracket   lipgloss.Style
	Symbol    lipgloss.Style
	Value     lipgloss.Style
	Implicit  lipgloss.Style
	Unmatched lipgloss.Style
}

// NewPalette returns the diagram palette for output rendered by r. A nil
// renderer uses the default renderer.
func NewPalette(r *lipgloss.Renderer) Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	fg := func(c string) lipgloss.Style { return r.NewStyle().Foreground(lipgloss.Color(c)) }

	return Palette{
		Bracket:   fg("8"),
		Symbol:    fg("6").Bold(true),
		Value:     fg("2"),
		Implicit:  fg("3"),
		Unmatched: fg("1").Bold(true),
	}
}

// Highlight styles a diagram as rendered by cmdline.ParseResult.Diagram.
// Values and unmatched tokens run to their closing delimiter followed by a
// space or the end of the diagram.
func (p Palette) Highlight(diagram string) string {
	var b strings.Builder

	for i := 0; i < len(diagram); {
		switch c := diagram[i]; c {
		case '[', ']':
			b.WriteString(p.Bracket.Render(string(c)))
			i++

		case '*':
			b.WriteString(p.Implicit.Render("*"))
			i++

		case ' ':
			b.WriteByte(' ')
			i++

		case '<', '!':
			end := closing(diagram, i)
			style := p.Value

			if c == '!' {
				style = p.Unmatched
			}

			b.WriteString(style.Render(diagram[i:end]))
			i = end

		default:
			end := strings.IndexByte(diagram[i:], ' ')
			if end < 0 {
				end = len(diagram) - i
			}

			b.WriteString(p.Symbol.Render(diagram[i : i+end]))
			i += end
		}
	}

	return b.String()
}

// closing returns the offset just past the delimiter closing the span opened
// at start.
func closing(s string, start int) int {
	want := s[start]
	if want == '<' {
		want = '>'
	}

	for i := start + 1; i < len(s); i++ {
		if s[i] == want && (i+1 == len(s) || s[i+1] == ' ') {
			return i + 1
		}
	}

	return len(s)
}
