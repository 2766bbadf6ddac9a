package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/ardnew/argot/cmdline"
)

// Tokens prints the token stream of a command line.
type Tokens struct {
	Raw  bool     `help:"Show the tokenizer output without parsing."`
	Args []string `arg:"" help:"Command line to tokenize." optional:"" passthrough:""`
}

// Run executes the tokens command. Without --raw, token kinds are those
// assigned by a full parse, so values consumed by options are arguments and
// subcommand names are commands.
func (t *Tokens) Run(ctx context.Context) error {
	root, err := definitionFrom(ctx)
	if err != nil {
		return err
	}

	var tokens []cmdline.Token
	if t.Raw {
		tokens = cmdline.Tokenize(t.Args, root)
	} else {
		tokens = parser(root).Parse(ctx, t.Args).Tokens()
	}

	tw := tabwriter.NewWriter(outputFrom(ctx), 0, 4, 2, ' ', 0)

	for _, tok := range tokens {
		attached := ""
		if tok.Attached {
			attached = "attached"
		}

		fmt.Fprintf(tw, "%d\t%s\t%q\t%s\n", tok.Index, tok.Kind, tok.Text, attached)
	}

	if err := tw.Flush(); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
