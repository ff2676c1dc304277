package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/orso/internal/container"
	"github.com/roach88/orso/internal/doc"
	"github.com/roach88/orso/internal/header"
	"github.com/roach88/orso/internal/orso"
	"github.com/roach88/orso/internal/validate"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	NoValidate bool
}

// DatasetSummary describes one dataset of a checked file.
type DatasetSummary struct {
	Position int      `json:"position"`
	DataSet  string   `json:"data_set"`
	Columns  []string `json:"columns"`
	Rows     int      `json:"rows"`
}

// CheckResult holds the outcome of a successful check.
type CheckResult struct {
	File     string           `json:"file"`
	Datasets []DatasetSummary `json:"datasets"`
}

func (r CheckResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "✓ %s: %d dataset(s)", r.File, len(r.Datasets))
	for _, ds := range r.Datasets {
		fmt.Fprintf(&b, "\n  [%d] %s  %d row(s)  %s", ds.Position, ds.DataSet, ds.Rows, strings.Join(ds.Columns, ", "))
	}
	return b.String()
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Read an ORSO file and report its datasets",
		Long: `Read every dataset of an ORSO text file, resolving each header into
typed records and checking the numeric block against its columns.

Headers are cross-validated against the published schema unless
--no-validate is given.

Examples:
  orso check scan.ort
  orso check scan.ort --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.NoValidate, "no-validate", false, "skip schema cross-validation")

	return cmd
}

func runCheck(opts *CheckOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	validator, err := schemaValidator(opts.NoValidate)
	if err != nil {
		return reportError(formatter, "failed to load schema", err)
	}

	datasets, err := orso.Load(path, validator)
	if err != nil {
		return reportError(formatter, "check "+path, err)
	}

	formatter.VerboseLog("Read %d dataset(s) from %s", len(datasets), path)
	return formatter.Success(CheckResult{File: path, Datasets: summarize(datasets)})
}

// schemaValidator returns the embedded schema, or nil when validation is
// switched off.
func schemaValidator(off bool) (container.Validator, error) {
	if off {
		return nil, nil
	}
	schema, err := validate.New()
	if err != nil {
		return nil, err
	}
	return schema, nil
}

func summarize(datasets []*container.Dataset) []DatasetSummary {
	out := make([]DatasetSummary, len(datasets))
	for i, ds := range datasets {
		labels := ds.Info().ColumnLabels()
		columns := make([]string, len(labels))
		for j, l := range labels {
			columns[j] = l.String()
		}
		out[i] = DatasetSummary{
			Position: i,
			DataSet:  dataSetName(ds.Info()),
			Columns:  columns,
			Rows:     ds.Data().Rows(),
		}
	}
	return out
}

func dataSetName(info header.Record) string {
	v, ok := header.ToDict(info).Get("data_set")
	if !ok {
		return ""
	}
	return fmt.Sprint(doc.Native(v))
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
