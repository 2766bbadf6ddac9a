package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/argot/cmdline"
	"github.com/ardnew/argot/define"
	"github.com/ardnew/argot/log"
)

const defaultEditor = "vi"

// editDefinitionCommand implements [tea.ExecCommand] for the definition
// edit-load-retry loop. It opens the definition file in the user's editor and
// reloads it. On error the user is prompted to re-edit; declining exits the
// program.
type editDefinitionCommand struct {
	path    string
	ctxFunc func() context.Context
	root    *cmdline.Command
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editDefinitionCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editDefinitionCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editDefinitionCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-load-retry loop. If the user declines to re-edit
// after an error, it returns [ErrEditDeclined].
func (c *editDefinitionCommand) Run() error {
	ctx := c.ctxFunc()

	for {
		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, c.path); err != nil {
			return err
		}

		root, loadErr := define.Load(c.path)
		c.logger.TraceContext(
			ctx,
			"editor load attempt",
			slog.String("path", c.path),
			slog.Bool("success", loadErr == nil),
		)

		if loadErr == nil {
			c.root = root

			return nil
		}

		fmt.Fprintf(c.stderr, "\nDefinition error: %s\n", loadErr)
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if response == "n" || response == "no" {
			return ErrEditDeclined
		}
	}
}

// runEditor launches the user's editor on the given file path.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
