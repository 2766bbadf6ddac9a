// Package cmdline parses command-line input against a declarative tree of
// commands, options and arguments.
//
// # Symbols
//
// A tree is built from three kinds of [Symbol]:
//
//   - [Command] selects behavior and owns child commands, options and at
//     most one argument.
//   - [Option] is a named switch, usually dash-prefixed, owning at most one
//     argument.
//   - [Argument] carries values. Its [Arity] bounds how many it accepts.
//
//	root := cmdline.NewCommand("app").
//		AddOption(cmdline.NewOption("--output", "-o").
//			SetArgument(cmdline.NewArgument("path"))).
//		AddCommand(cmdline.NewCommand("run").
//			SetArgument(cmdline.NewArgument("target").SetArity(cmdline.OneOrMore)).
//			SetHandler(run))
//
// # Parsing
//
// [Parse] and [Parser.Parse] never fail. Every problem found in the input is
// collected into [ParseResult.Errors], and tokens claimed by no symbol are
// kept in [ParseResult.UnmatchedTokens]:
//
//	result := cmdline.Parse(root, os.Args[1:]...)
//	if err := result.Err(); err != nil {
//		// report every error at once
//	}
//
// Options declared by a command are recognized anywhere below it. When an
// input token could match at several depths, the innermost symbol wins.
//
// # Values
//
// Raw values are strings. [ValueFor] converts them on access, falling back
// to declared defaults, and [Bind] maps names to variables:
//
//	var out string
//	err := result.Bind(cmdline.Bind("--output", &out))
//
// Conversion errors are returned from those calls only; they never appear in
// [ParseResult.Errors].
package cmdline
