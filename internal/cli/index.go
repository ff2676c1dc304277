package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/orso/internal/orso"
	"github.com/roach88/orso/internal/store"
)

// IndexOptions holds flags for the index command.
type IndexOptions struct {
	*RootOptions
	Database   string
	NoValidate bool
}

// IndexedFile reports one file added to the catalogue.
type IndexedFile struct {
	Path     string `json:"path"`
	IngestID string `json:"ingest_id"`
}

// IndexResult lists the files added by one index run.
type IndexResult struct {
	Database string        `json:"database"`
	Files    []IndexedFile `json:"files"`
}

func (r IndexResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "✓ indexed %d file(s) into %s", len(r.Files), r.Database)
	for _, f := range r.Files {
		fmt.Fprintf(&b, "\n  %s  %s", f.IngestID, f.Path)
	}
	return b.String()
}

// NewIndexCommand creates the index command.
func NewIndexCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &IndexOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "index <file>...",
		Short: "Add ORSO files to a dataset catalogue",
		Long: `Read ORSO files and record every dataset they hold in a SQLite
catalogue. Files are indexed in argument order; the first file that
fails to read stops the run, leaving earlier files indexed.

Examples:
  orso index --db ./orso.db scan1.ort scan2.ort`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().BoolVar(&opts.NoValidate, "no-validate", false, "skip schema cross-validation")

	return cmd
}

func runIndex(opts *IndexOptions, paths []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := cmd.Context()

	validator, err := schemaValidator(opts.NoValidate)
	if err != nil {
		return reportError(formatter, "failed to load schema", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return reportError(formatter, "failed to open database", err)
	}
	defer st.Close()

	result := IndexResult{Database: opts.Database, Files: []IndexedFile{}}
	for _, path := range paths {
		id, err := st.IndexFile(ctx, path, orso.Format(validator))
		if err != nil {
			return reportError(formatter, "index "+path, err)
		}
		formatter.VerboseLog("Indexed %s as %s", path, id)
		result.Files = append(result.Files, IndexedFile{Path: path, IngestID: id})
	}

	return formatter.Success(result)
}
