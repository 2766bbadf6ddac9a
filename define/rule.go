package define

import (
	"errors"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/argot/cmdline"
)

// ruleEnv is the compile-time shape of the rule environment.
var ruleEnv = map[string]any{
	"name":      "",
	"values":    []string{},
	"count":     0,
	"has":       func(string) bool { return false },
	"value":     func(string) string { return "" },
	"values_of": func(string) []string { return nil },
}

// compile compiles rules into validators.
func compile(path string, rules []Rule) ([]cmdline.Validator, error) {
	validators := make([]cmdline.Validator, 0, len(rules))

	for _, rule := range rules {
		program, err := expr.Compile(rule.Expr, expr.Env(ruleEnv), expr.AsBool())
		if err != nil {
			return nil, ErrExprCompile.Wrap(err).With(
				slog.String("path", path),
				slog.String("expr", rule.Expr),
			)
		}

		validators = append(validators, validator(rule, program))
	}

	return validators, nil
}

func validator(rule Rule, program *vm.Program) cmdline.Validator {
	message := rule.Message
	if message == "" {
		message = "Rule '" + rule.Expr + "' failed."
	}

	return func(r cmdline.SymbolResult) error {
		out, err := expr.Run(program, environment(r))
		if err != nil {
			return err
		}

		if ok, _ := out.(bool); !ok {
			return errors.New(message)
		}

		return nil
	}
}

// environment returns the rule environment of r.
func environment(r cmdline.SymbolResult) map[string]any {
	scope := r
	for !scope.IsZero() && scope.Symbol().Kind() != cmdline.KindCommand {
		scope = scope.Parent()
	}

	find := func(alias string) (cmdline.SymbolResult, bool) {
		for _, c := range scope.Children() {
			if c.Symbol().HasAlias(alias) || c.Symbol().Name() == alias {
				return c, !c.Implicit()
			}
		}

		return cmdline.SymbolResult{}, false
	}

	values := r.Values()

	return map[string]any{
		"name":   r.Symbol().Name(),
		"values": values,
		"count":  len(values),
		"has": func(alias string) bool {
			_, ok := find(alias)

			return ok
		},
		"value": func(alias string) string {
			c, _ := find(alias)
			if c.IsZero() {
				return ""
			}

			if v := c.Values(); len(v) > 0 {
				return v[0]
			}

			return ""
		},
		"values_of": func(alias string) []string {
			c, _ := find(alias)
			if c.IsZero() {
				return nil
			}

			return c.Values()
		},
	}
}
