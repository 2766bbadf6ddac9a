package cmd

import (
	"context"

	"github.com/ardnew/argot/cli/cmd/repl"
	"github.com/ardnew/argot/log"
)

// Repl explores the definition interactively.
type Repl struct{}

// Run executes the repl command.
func (*Repl) Run(ctx context.Context) error {
	path, _ := ctx.Value(definitionKey{}).(string)
	if path == "" {
		return ErrNoDefinition
	}

	cacheDir := ""
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, path, cacheDir, log.Default())
}
