package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/argot/log"
	"github.com/ardnew/argot/suggest"
)

// Complete prints the completions of a word following a command line, one
// per line, best match first.
type Complete struct {
	Word string   `default:"" help:"Partial word to complete." short:"w"`
	Args []string `arg:""     help:"Command line preceding the word." optional:"" passthrough:""`
}

// Run executes the complete command.
func (c *Complete) Run(ctx context.Context) error {
	root, err := definitionFrom(ctx)
	if err != nil {
		return err
	}

	words := suggest.Complete(root, c.Args, c.Word)

	log.TraceContext(ctx, "completions",
		slog.String("word", c.Word),
		slog.Int("count", len(words)),
	)

	w := outputFrom(ctx)

	for _, word := range words {
		if _, err := fmt.Fprintln(w, word); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}
