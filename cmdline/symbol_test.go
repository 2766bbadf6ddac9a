package cmdline

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestUsage(t *testing.T) {
	handler := func(context.Context, *ParseResult) error { return nil }

	add := NewCommand("add").
		SetHandler(handler).
		AddOption(NewOption("--force")).
		SetArgument(NewArgument("url"))
	remote := NewCommand("remote").
		AddCommand(add).
		SetArgument(NewArgument("names").SetArity(ZeroOrMore))
	root := NewCommand("git").SetHandler(handler).AddCommand(remote)

	tests := []struct {
		cmd  *Command
		want string
	}{
		{root, "git [command]"},
		{remote, "git remote [<names>...] <command>"},
		{add, "git remote add [options] <url>"},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.Name(), func(t *testing.T) {
			if got := tt.cmd.Usage(); got != tt.want {
				t.Errorf("Usage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommandAll(t *testing.T) {
	root := NewCommand("git").AddCommand(
		NewCommand("remote").AddCommand(NewCommand("add"), NewCommand("remove")),
		NewCommand("status"),
	)

	var names []string

	for cmd := range root.All() {
		names = append(names, cmd.Name())
		if cmd.Name() == "remove" {
			break
		}
	}

	if want := []string{"git", "remote", "add", "remove"}; !slices.Equal(names, want) {
		t.Errorf("All() = %v, want %v", names, want)
	}
}

func TestAliases(t *testing.T) {
	opt := NewOption("--exclude", "-x", "--exclude", "")

	if got := opt.Aliases(); !slices.Equal(got, []string{"--exclude", "-x"}) {
		t.Errorf("Aliases() = %q", got)
	}

	if opt.Name() != "--exclude" || !opt.HasAlias("-x") || opt.HasAlias("-y") {
		t.Error("alias lookup mismatch")
	}
}

func TestAddChildTwicePanics(t *testing.T) {
	opt := NewOption("-v")
	NewCommand("a").AddOption(opt)

	defer func() {
		if recover() == nil {
			t.Error("expected panic when re-parenting an option")
		}
	}()

	NewCommand("b").AddOption(opt)
}

func TestCommandValidate(t *testing.T) {
	tests := []struct {
		name string
		root *Command
		want error
	}{
		{
			name: "valid",
			root: NewCommand("app").
				AddOption(NewOption("-a"), NewOption("-b")).
				AddCommand(NewCommand("run")),
			want: nil,
		},
		{
			name: "duplicate alias",
			root: NewCommand("app").
				AddOption(NewOption("--all", "-a"), NewOption("--add", "-a")),
			want: ErrDuplicateAlias,
		},
		{
			name: "nested invalid arity",
			root: NewCommand("app").AddCommand(NewCommand("run").
				SetArgument(NewArgument("n").SetArity(Arity{Min: 3, Max: 1}))),
			want: ErrInvalidArity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.root.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}

				return
			}

			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSuggestions(t *testing.T) {
	arg := NewArgument("color").
		FromAmong("red", "green").
		SetSuggestions(func(ctx SuggestContext) []string {
			return []string{ctx.Text + "-custom"}
		})

	got := arg.Suggestions(SuggestContext{Text: "x"})
	if !slices.Equal(got, []string{"red", "green", "x-custom"}) {
		t.Errorf("Suggestions() = %q", got)
	}
}

func TestDefaultFuncRunsPerParse(t *testing.T) {
	calls := 0
	root := NewCommand("app").AddOption(NewOption("-n").SetArgument(
		NewArgument("n").SetDefaultFunc(func() any {
			calls++

			return calls
		}),
	))

	for want := 1; want <= 2; want++ {
		got, err := ValueFor[int](Parse(root), "-n")
		if err != nil || got != want {
			t.Errorf("parse %d: got %d, %v", want, got, err)
		}
	}
}
