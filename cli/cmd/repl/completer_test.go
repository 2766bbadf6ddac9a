package repl

import (
	"context"
	"slices"
	"testing"

	"github.com/ardnew/argot/cmdline"
	"github.com/ardnew/argot/log"
)

func testTree() *cmdline.Command {
	return cmdline.NewCommand("git").
		AddOption(cmdline.NewOption("--verbose", "-v")).
		AddCommand(
			cmdline.NewCommand("clone").
				Describe("Clone a repository").
				SetArgument(cmdline.NewArgument("repository")).
				AddOption(cmdline.NewOption("--depth").SetArgument(cmdline.NewArgument("depth"))),
			cmdline.NewCommand("status"),
			cmdline.NewCommand("gc").Hide(),
		)
}

func testModel(t *testing.T, input string) model {
	t.Helper()

	m := newModel(context.Background(), "", testTree(), NewHistory(""), log.Make(nil))
	m.input.SetValue(input)
	m.input.SetCursor(len(input))

	return m
}

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "clone", 5, "clone", 0, 5},
		{"second", "clone --dep", 11, "--dep", 6, 11},
		{"empty_after_space", "clone ", 6, "", 6, 6},
		{"mid_word", "status", 3, "status", 0, 6},
		{"at_start", "clone", 0, "clone", 0, 5},
		{"attached", "clone --depth=1", 15, "--depth=1", 6, 15},
		{"cursor_past_end", "gc", 10, "gc", 0, 2},
		{"tab_separated", "clone\tre", 8, "re", 6, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{`clone "my repo"`, []string{"clone", "my repo"}},
		{`clone "unterminated`, []string{"clone", `"unterminated`}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := splitArgs(tt.line); !slices.Equal(got, tt.want) {
				t.Errorf("splitArgs(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestComputeMatches(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty line", "", nil},
		{"command", "sta", []string{"status"}},
		{"hidden", "gc", nil},
		{"after space", "clone ", []string{"--depth", "--verbose", "-v"}},
		{"option", "clone --d", []string{"--depth"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, _, _, _ := testModel(t, tt.input).computeMatches()

			var got []string
			for _, m := range matches {
				got = append(got, m.Str)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("computeMatches(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestComputeMatches_CtrlMode(t *testing.T) {
	m := testModel(t, "")
	m = m.switchToMode(modeCtrl)
	m.input.SetValue("rel")
	m.input.SetCursor(3)

	matches, _, _, _ := m.computeMatches()
	if len(matches) != 1 || matches[0].Str != "reload" {
		t.Errorf("computeMatches() = %v", matches)
	}
}

func TestCycle(t *testing.T) {
	m := testModel(t, "clone --")
	refreshMatches(&m, false)

	if len(m.matches) < 2 {
		t.Fatalf("matches = %v", m.matches)
	}

	first := m.cycle(1)
	if !first.tabActive || first.input.Value() != "clone "+m.matches[0].Str {
		t.Errorf("cycle(1) input = %q", first.input.Value())
	}

	last := m.cycle(-1)
	if last.input.Value() != "clone "+m.matches[len(m.matches)-1].Str {
		t.Errorf("cycle(-1) input = %q", last.input.Value())
	}
}
