package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/orso/internal/store"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Database string
	DataSet  string
	Path     string
}

// ListResult holds the catalogue entries matching a list query.
type ListResult struct {
	Entries []store.Entry `json:"entries"`
}

func (r ListResult) String() string {
	if len(r.Entries) == 0 {
		return "No datasets found"
	}
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SEQ\tPOS\tDATA SET\tROWS\tCOLUMNS\tPATH")
	for _, e := range r.Entries {
		fmt.Fprintf(w, "%d\t%d\t%s\t%d\t%s\t%s\n", e.Seq, e.Position, e.DataSet, e.Rows, strings.Join(e.Columns, ", "), e.Path)
	}
	_ = w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalogued datasets",
		Long: `List datasets recorded by "orso index", in indexing order.

Examples:
  orso list --db ./orso.db
  orso list --db ./orso.db --data-set spin_up --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.DataSet, "data-set", "", "only datasets with this data_set")
	cmd.Flags().StringVar(&opts.Path, "path", "", "only datasets from this file")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return reportError(formatter, "failed to open database", err)
	}
	defer st.Close()

	entries, err := st.List(cmd.Context(), store.Filter{DataSet: opts.DataSet, Path: opts.Path})
	if err != nil {
		return reportError(formatter, "failed to list datasets", err)
	}

	return formatter.Success(ListResult{Entries: entries})
}
