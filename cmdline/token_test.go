package cmdline

import (
	"errors"
	"slices"
	"testing"
)

func tokenTree() *Command {
	return NewCommand("app").
		AddOption(
			NewOption("--name", "-n").SetArgument(NewArgument("name")),
			NewOption("-v"),
			NewOption("-q"),
			NewOption("-o").SetArgument(NewArgument("file")),
		).
		AddCommand(
			NewCommand("sub").AddOption(
				NewOption("--deep").SetArgument(NewArgument("depth")),
				NewOption("-o"),
			),
			NewCommand("other").AddOption(NewOption("-z")),
		)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []Token
	}{
		{
			name: "known option and bare argument",
			args: []string{"--name", "x"},
			want: []Token{
				{Text: "--name", Kind: TokenOption, Index: 0},
				{Text: "x", Kind: TokenArgument, Index: 1},
			},
		},
		{
			name: "equals split on known alias",
			args: []string{"--name=a=b"},
			want: []Token{
				{Text: "--name", Kind: TokenOption, Index: 0},
				{Text: "a=b", Kind: TokenArgument, Index: 0, Attached: true},
			},
		},
		{
			name: "colon split on nested alias",
			args: []string{"sub", "--deep:3"},
			want: []Token{
				{Text: "sub", Kind: TokenArgument, Index: 0},
				{Text: "--deep", Kind: TokenOption, Index: 1},
				{Text: "3", Kind: TokenArgument, Index: 1, Attached: true},
			},
		},
		{
			name: "nested alias unknown at root",
			args: []string{"--deep:3"},
			want: []Token{
				{Text: "--deep:3", Kind: TokenOption, Index: 0},
			},
		},
		{
			name: "innermost alias decides bundle",
			args: []string{"sub", "-ofile"},
			want: []Token{
				{Text: "sub", Kind: TokenArgument, Index: 0},
				{Text: "-ofile", Kind: TokenOption, Index: 1},
			},
		},
		{
			name: "sibling alias unknown",
			args: []string{"sub", "-vz"},
			want: []Token{
				{Text: "sub", Kind: TokenArgument, Index: 0},
				{Text: "-vz", Kind: TokenOption, Index: 1},
			},
		},
		{
			name: "inherited and own aliases bundle",
			args: []string{"other", "-vz"},
			want: []Token{
				{Text: "other", Kind: TokenArgument, Index: 0},
				{Text: "-v", Kind: TokenOption, Index: 1},
				{Text: "-z", Kind: TokenOption, Index: 1},
			},
		},
		{
			name: "no scope change after end of options",
			args: []string{"--", "sub", "-ofile"},
			want: []Token{
				{Text: "--", Kind: TokenEndOfOptions, Index: 0},
				{Text: "sub", Kind: TokenArgument, Index: 1},
				{Text: "-ofile", Kind: TokenArgument, Index: 2},
			},
		},
		{
			name: "no split on unknown alias",
			args: []string{"--other=1", "key=value"},
			want: []Token{
				{Text: "--other=1", Kind: TokenOption, Index: 0},
				{Text: "key=value", Kind: TokenArgument, Index: 1},
			},
		},
		{
			name: "end of options",
			args: []string{"-v", "--", "-v", "--name=x"},
			want: []Token{
				{Text: "-v", Kind: TokenOption, Index: 0},
				{Text: "--", Kind: TokenEndOfOptions, Index: 1},
				{Text: "-v", Kind: TokenArgument, Index: 2},
				{Text: "--name=x", Kind: TokenArgument, Index: 3},
			},
		},
		{
			name: "bundled flags",
			args: []string{"-vq"},
			want: []Token{
				{Text: "-v", Kind: TokenOption, Index: 0},
				{Text: "-q", Kind: TokenOption, Index: 0},
			},
		},
		{
			name: "bundle with attached value",
			args: []string{"-vofile.txt"},
			want: []Token{
				{Text: "-v", Kind: TokenOption, Index: 0},
				{Text: "-o", Kind: TokenOption, Index: 0},
				{Text: "file.txt", Kind: TokenArgument, Index: 0, Attached: true},
			},
		},
		{
			name: "unknown bundle stays whole",
			args: []string{"-vz"},
			want: []Token{
				{Text: "-vz", Kind: TokenOption, Index: 0},
			},
		},
		{
			name: "single dash is an argument",
			args: []string{"-"},
			want: []Token{
				{Text: "-", Kind: TokenArgument, Index: 0},
			},
		},
	}

	root := tokenTree()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.args, root)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Tokenize(%q) =\n  %+v\nwant\n  %+v", tt.args, got, tt.want)
			}
		})
	}
}

func TestTokenizeIsDeterministic(t *testing.T) {
	root := tokenTree()
	args := []string{"sub", "--deep=2", "-vq", "--", "x"}

	first := Tokenize(args, root)
	second := Tokenize(args, root)

	if !slices.Equal(first, second) {
		t.Errorf("Tokenize not deterministic:\n  %+v\n  %+v", first, second)
	}
}

func TestTokenizeSubtreeRoot(t *testing.T) {
	sub, ok := tokenTree().Subcommand("sub")
	if !ok {
		t.Fatal("sub not found")
	}

	got := Tokenize([]string{"-vo"}, sub)
	want := []Token{{Text: "-vo", Kind: TokenOption, Index: 0}}

	if !slices.Equal(got, want) {
		t.Errorf("Tokenize from sub =\n  %+v\nwant\n  %+v", got, want)
	}
}

func TestSplitCommandLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    []string
		wantErr bool
	}{
		{"plain", "app run fast", []string{"app", "run", "fast"}, false},
		{"quoted", `app --name "two words"`, []string{"app", "--name", "two words"}, false},
		{"single quoted", `app 'a b' c`, []string{"app", "a b", "c"}, false},
		{"unterminated", `app "oops`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitCommandLine(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SplitCommandLine() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				if !errors.Is(err, ErrSplitCommandLine) {
					t.Errorf("error %v is not ErrSplitCommandLine", err)
				}

				return
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("SplitCommandLine(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}
