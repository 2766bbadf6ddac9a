package cmd

import (
	"context"
	"fmt"
)

// Check loads the definition and reports whether it is valid.
type Check struct{}

// Run executes the check command. Definition errors are returned as is.
func (*Check) Run(ctx context.Context) error {
	root, err := definitionFrom(ctx)
	if err != nil {
		return err
	}

	commands, options := 0, 0

	for cmd := range root.All() {
		commands++
		options += len(cmd.Options())
	}

	_, err = fmt.Fprintf(outputFrom(ctx), "ok: %s (%d commands, %d options)\n",
		root.Name(), commands, options)
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
