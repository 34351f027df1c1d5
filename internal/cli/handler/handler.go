// Package handler provides command execution abstraction to reduce boilerplate
package handler

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/madhankd/madhanboard-v2/internal/cli"
)

// Func is the body of a command. Errors it returns are reported through the
// formatter and carry an exit code.
type Func func(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error

// Command wraps common command execution logic
// Returns a cobra RunE compatible function
func Command(fn Func) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		formatter := cli.NewFormatter(cmd)

		cliInstance, err := cli.GetCLIFromContext(ctx)
		if err != nil {
			if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
				fmt.Fprintf(os.Stderr, "Error formatting error message: %v\n", fmtErr)
			}
			return cli.WithExitCode(cli.ExitError, err)
		}
		defer func() {
			if err := cliInstance.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Error closing CLI: %v\n", err)
			}
		}()

		err = fn(ctx, cmd, cliInstance, formatter)
		if err == nil {
			return nil
		}

		// Errors already reported carry their exit code
		var exitErr *cli.ExitCodeError
		if errors.As(err, &exitErr) {
			return err
		}
		return formatter.Fail(err)
	}
}
