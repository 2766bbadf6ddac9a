package cli

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/argot/cli/cmd"
	"github.com/ardnew/argot/log"
	"github.com/ardnew/argot/pkg"
)

// CLI is the top-level command-line interface for argot.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version    kong.VersionFlag `help:"Print version and exit."`
	Definition string           `help:"Definition file, or its name in the search path (${searchpath})." short:"d"`

	Parse    cmd.Parse    `cmd:"" help:"Parse a command line against the definition."`
	Tokens   cmd.Tokens   `cmd:"" help:"Print the tokens of a command line."`
	Complete cmd.Complete `cmd:"" help:"Print completions of a partial command line."`
	Tree     cmd.Tree     `cmd:"" help:"Print the command tree of the definition."`
	Check    cmd.Check    `cmd:"" help:"Validate the definition."`

	Repl cmd.Repl `cmd:"" default:"1" help:"Explore the definition interactively."`
}

// Run executes the argot CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)
	dirs := searchPath()

	vars := kong.Vars{
		"version":                pkg.Version,
		cmd.ConfigIdentifier:     configFilePath,
		cmd.CacheIdentifier:      cacheDir(),
		cmd.SearchPathIdentifier: strings.Join(dirs, string(os.PathListSeparator)),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve, configFilePath+".yaml", configFilePath+".yml"),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	definition, err := findDefinition(cli.Definition, dirs)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "definition resolved",
		slog.String("name", cli.Definition),
		slog.String("path", definition),
	)

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithDefinition(ctx, definition)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	// Execute the selected command
	return ktx.Run(ctx, &cli)
}
