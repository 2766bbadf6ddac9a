package cmdline

import (
	"context"
	"strings"
	"testing"
)

func TestDiagram(t *testing.T) {
	handler := func(context.Context, *ParseResult) error { return nil }

	root := NewCommand("app").
		TreatUnmatchedAsErrors(false).
		AddOption(NewOption("-y").SetArgument(NewArgument("y").SetDefault(456))).
		AddCommand(NewCommand("sub").
			SetHandler(handler).
			TreatUnmatchedAsErrors(false).
			SetArgument(NewArgument("file").SetArity(ZeroOrOne)).
			AddOption(NewOption("-x").SetArgument(NewArgument("x").SetArity(OneOrMore))))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "values under owners",
			args: []string{"sub", "-x", "a", "b"},
			want: "[ app [ sub [ -x <a> <b> ] ] *[ -y <456> ] ]",
		},
		{
			name: "command argument and unmatched",
			args: []string{"sub", "f.txt", "extra", "-x", "a", "--", "more"},
			want: "[ app [ sub <f.txt> [ -x <a> ] ] *[ -y <456> ] ] !extra! !more!",
		},
		{
			name: "explicit value",
			args: []string{"-y", "1", "sub"},
			want: "[ app [ -y <1> ] [ sub ] ]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse(root, tt.args...)

			if got := result.Diagram(); got != tt.want {
				t.Errorf("Diagram() =\n  %s\nwant\n  %s", got, tt.want)
			}
		})
	}
}

func TestDiagramListsEveryValue(t *testing.T) {
	root := NewCommand("app").
		SetArgument(NewArgument("rest").SetArity(ZeroOrMore)).
		AddOption(NewOption("--tag").SetArgument(NewArgument("tag").SetArity(OneOrMore)))

	args := []string{"one", "--tag", "t1", "t2", "--", "two", "three"}
	result := Parse(root, args...)

	diagram := result.Diagram()

	for _, v := range []string{"<one>", "<t1>", "<t2>", "<two>", "<three>"} {
		if !strings.Contains(diagram, v) {
			t.Errorf("diagram %q does not list %s", diagram, v)
		}
	}

	if got := result.FindResultFor(root.Options()[0]).String(); got != "[ --tag <t1> <t2> ]" {
		t.Errorf("String() = %q", got)
	}
}
