package cmd

import "github.com/ardnew/argot/cmdline"

// Error is the error type of the subcommands. Sentinels are matched with
// errors.Is after [Error.Wrap] or [Error.With].
type Error = cmdline.Error

var (
	ErrNoDefinition   = cmdline.NewError("no definition file (use --definition)")
	ErrFindDefinition = cmdline.NewError("definition file not found")
	ErrParse          = cmdline.NewError("command line has errors")
	ErrJSONMarshal    = cmdline.NewError("marshal JSON")
	ErrYAMLMarshal    = cmdline.NewError("marshal YAML")
	ErrWriteOutput    = cmdline.NewError("write output")
)
