package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/orso/internal/diff"
	"github.com/roach88/orso/internal/doc"
	"github.com/roach88/orso/internal/header"
	"github.com/roach88/orso/internal/orso"
)

// DatasetDelta is the header difference of one dataset against the first.
type DatasetDelta struct {
	Position int            `json:"position"`
	DataSet  string         `json:"data_set"`
	Delta    map[string]any `json:"delta"`

	text string
}

// DiffResult lists the deltas of every dataset after the first.
type DiffResult struct {
	File   string         `json:"file"`
	Deltas []DatasetDelta `json:"deltas"`
}

func (r DiffResult) String() string {
	if len(r.Deltas) == 0 {
		return fmt.Sprintf("%s: fewer than two datasets, nothing to compare", r.File)
	}
	var b strings.Builder
	for i, d := range r.Deltas {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "--- [%d] %s\n", d.Position, d.DataSet)
		b.WriteString(strings.TrimRight(d.text, "\n"))
	}
	return b.String()
}

// NewDiffCommand creates the diff command.
func NewDiffCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "diff <file>",
		Short: "Show how each dataset's header differs from the first",
		Long: `Read an ORSO file and print, for every dataset after the first, the
keys of its header that differ from the first dataset's header. This is
the delta the file stores between "# ---" separators.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.NoValidate, "no-validate", false, "skip schema cross-validation")

	return cmd
}

func runDiff(opts *CheckOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	validator, err := schemaValidator(opts.NoValidate)
	if err != nil {
		return reportError(formatter, "failed to load schema", err)
	}
	datasets, err := orso.Load(path, validator)
	if err != nil {
		return reportError(formatter, "diff "+path, err)
	}

	result := DiffResult{File: path, Deltas: []DatasetDelta{}}
	if len(datasets) < 2 {
		return formatter.Success(result)
	}
	first := header.ToDict(datasets[0].Info())
	for i, ds := range datasets[1:] {
		delta := diff.Diff(first, header.ToDict(ds.Info()))
		text, err := doc.MarshalText(delta)
		if err != nil {
			return reportError(formatter, "failed to render delta", err)
		}
		native, _ := doc.Native(delta).(map[string]any)
		result.Deltas = append(result.Deltas, DatasetDelta{
			Position: i + 1,
			DataSet:  dataSetName(ds.Info()),
			Delta:    native,
			text:     text,
		})
	}

	return formatter.Success(result)
}
