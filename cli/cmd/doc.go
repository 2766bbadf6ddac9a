// Package cmd provides the subcommands of the argot CLI.
//
// Each subcommand parses command lines against the command tree of a
// definition file (see package define) and reports the result.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"

	// SearchPathIdentifier is the kong variable identifier containing the
	// list of directories searched for definition files.
	SearchPathIdentifier = "searchpath"
)
