package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/orso/internal/doc"
	"github.com/roach88/orso/internal/header"
	"github.com/roach88/orso/internal/orso"
)

// NewEmptyCommand creates the empty command.
func NewEmptyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "empty",
		Short: "Print the skeleton ORSO header",
		Long: `Print the skeleton ORSO header: every required field filled with a
placeholder, every optional field left out. Useful as a starting point
for writing a header by hand.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmpty(rootOpts, cmd)
		},
	}

	return cmd
}

func runEmpty(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	skeleton, err := orso.Empty()
	if err != nil {
		return reportError(formatter, "failed to build skeleton", err)
	}
	m := header.ToDict(skeleton)

	if opts.Format == "json" {
		return formatter.Success(doc.Native(m))
	}

	text, err := doc.MarshalText(m)
	if err != nil {
		return reportError(formatter, "failed to render skeleton", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}
