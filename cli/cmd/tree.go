package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/argot/cli/cmd/repl"
)

// Tree prints the usage line of every visible command of the definition.
type Tree struct{}

// Run executes the tree command.
func (*Tree) Run(ctx context.Context) error {
	root, err := definitionFrom(ctx)
	if err != nil {
		return err
	}

	w := outputFrom(ctx)

	for _, line := range repl.Tree(root) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}
