// Package define builds [cmdline.Command] trees from declarative definition
// files.
//
// A definition is a YAML or TOML document describing the root command:
//
//	name: git
//	treatUnmatchedAsErrors: true
//	options:
//	  - aliases: [--verbose, -v]
//	    argument: {name: level, arity: zero-or-one, default: 1}
//	commands:
//	  - name: clone
//	    handler: true
//	    argument: {name: repository, arity: exactly-one}
//	    options:
//	      - aliases: [--depth]
//	        argument: {name: depth, default: 0}
//	        validate:
//	          - expr: 'int(value("--depth")) >= 0'
//	            message: depth must not be negative
//
// Validation rules are [expr] boolean expressions compiled when the
// definition is built. Each rule sees the following environment:
//
//	name          name of the validated symbol
//	values        values of the validated symbol
//	count         len(values)
//	has(a)        whether a symbol with alias a was given in the same scope
//	value(a)      first value of that symbol, or ""
//	values_of(a)  all values of that symbol
//
// The scope of a command rule is the command itself; the scope of an option
// rule is the command declaring the option.
//
// [expr]: https://expr-lang.org
package define
