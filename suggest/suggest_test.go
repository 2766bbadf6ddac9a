package suggest

import (
	"slices"
	"testing"

	"github.com/ardnew/argot/cmdline"
)

func tree() *cmdline.Command {
	colors := cmdline.NewArgument("color").FromAmong("red", "green", "blue")

	return cmdline.NewCommand("app").
		AddOption(cmdline.NewOption("--verbose", "-v")).
		AddOption(cmdline.NewOption("--secret").Hide()).
		AddCommand(
			cmdline.NewCommand("paint").
				SetArgument(cmdline.NewArgument("target").SetArity(cmdline.ZeroOrOne).
					SetSuggestions(func(ctx cmdline.SuggestContext) []string {
						if slices.Equal(ctx.Values["color"], []string{"red"}) {
							return []string{"barn"}
						}

						return []string{"fence", "wall"}
					})).
				AddOption(cmdline.NewOption("--color", "-c").SetArgument(colors)).
				AddOption(cmdline.NewOption("--tag").SetArgument(
					cmdline.NewArgument("tag").SetArity(cmdline.ZeroOrMore))),
			cmdline.NewCommand("status", "st"),
			cmdline.NewCommand("debug").Hide(),
		)
}

func TestComplete(t *testing.T) {
	root := tree()

	tests := []struct {
		name string
		args []string
		word string
		want []string
	}{
		{"root", nil, "", []string{"paint", "status", "st", "--verbose", "-v"}},
		{"root fuzzy", nil, "stat", []string{"status"}},
		{"option value", []string{"paint", "--color"}, "", []string{"red", "green", "blue"}},
		{"option value fuzzy", []string{"paint", "--color"}, "gr", []string{"green"}},
		{"command argument", []string{"paint"}, "", []string{"--color", "-c", "--tag", "--verbose", "-v", "fence", "wall"}},
		{"sibling values", []string{"paint", "-c", "red"}, "", []string{"--tag", "--verbose", "-v", "barn"}},
		{"argument full", []string{"paint", "fence"}, "", []string{"--color", "-c", "--tag", "--verbose", "-v"}},
		{"repeatable option", []string{"paint", "--tag", "a", "-v"}, "", []string{"--color", "-c", "--tag", "fence", "wall"}},
		{"leaf", []string{"status"}, "", []string{"--verbose", "-v"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Complete(root, tt.args, tt.word)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Complete(%q, %q) = %q, want %q", tt.args, tt.word, got, tt.want)
			}
		})
	}
}

func TestRank(t *testing.T) {
	matches := Rank("pt", []string{"status", "paint", "print"})

	if len(matches) != 2 {
		t.Fatalf("Rank() = %v", matches)
	}

	for _, m := range matches {
		if m.Str == "status" {
			t.Errorf("unexpected match %q", m.Str)
		}
	}

	if got := Rank("", []string{"b", "a"}); got[0].Str != "b" || got[1].Index != 1 {
		t.Errorf("Rank(empty) = %v", got)
	}
}

func TestUnmatched(t *testing.T) {
	root := tree().TreatUnmatchedAsErrors(false)

	r := cmdline.Parse(root, "--verbos", "stat", "zzz", "--")

	got := Unmatched(r)

	if !slices.Contains(got["--verbos"], "--verbose") {
		t.Errorf(`Unmatched()["--verbos"] = %v`, got["--verbos"])
	}

	if !slices.Contains(got["stat"], "status") {
		t.Errorf(`Unmatched()["stat"] = %v`, got["stat"])
	}

	if _, ok := got["zzz"]; ok {
		t.Errorf(`Unmatched()["zzz"] = %v, want none`, got["zzz"])
	}

	if Unmatched(cmdline.Parse(root, "-v")) != nil {
		t.Error("expected no candidates without unmatched tokens")
	}
}
