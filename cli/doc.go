// Package cli contains the command line interface for argot.
//
// # Usage
//
//	argot [flags] <command> [args...]
//
// Every command works on a definition file given with -d/--definition:
//
//	argot -d git.yaml parse -- clone --depth 1 https://example.com/repo.git
//	argot -d git tokens -- remote add origin url
//	argot -d git complete --word=--de clone
//	argot -d git tree
//	argot -d git check
//	argot -d git
//
// Without a command, the interactive explorer (repl) starts.
//
// # Definition Search Path
//
// A definition name that is not a file is looked up in the directories
// listed in $ARGOT_PATH and then in the definitions directory of the
// configuration directory (~/.config/argot/definitions). In each directory
// the name is tried as is and with the extensions .yaml, .yml and .toml.
//
// # Configuration File
//
// Flag defaults are read from ~/.config/argot/config.json or
// ~/.config/argot/config.yaml. The YAML form nests flag prefixes:
//
//	definition: git
//	log:
//	  level: debug
//	  format: text
//
// Command-line flags override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output and indent JSON output
//
// Logging flags are applied before the rest of the command line is parsed,
// so they affect messages about parse errors wherever they appear.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o argot .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/argot/pprof)
package cli
