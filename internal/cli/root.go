package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the orso CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "orso",
		Short: "ORSO reflectivity file tool",
		Long:  "Check, inspect and catalogue ORSO text files of reduced reflectivity data.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			setupLogging(cmd, opts)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewEmptyCommand(opts))
	cmd.AddCommand(NewDiffCommand(opts))
	cmd.AddCommand(NewIndexCommand(opts))
	cmd.AddCommand(NewListCommand(opts))

	return cmd
}

// setupLogging routes the default slog logger to the command's stderr.
func setupLogging(cmd *cobra.Command, opts *RootOptions) {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
