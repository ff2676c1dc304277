// Command orso checks, inspects and catalogues ORSO reflectivity files.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/orso/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands report their own errors; only flag and argument
		// errors reach here unprinted.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
