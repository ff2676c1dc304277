package orso

import (
	"fmt"

	"github.com/roach88/orso/internal/container"
	"github.com/roach88/orso/internal/header"
)

// Orso is the root header of one dataset.
type Orso struct {
	header.Base
	Creator    *Creator
	DataSource *DataSource
	Reduction  *Reduction
	Columns    []ColumnSpec
	DataSet    string
}

// OrsoType describes the root header. It is closed: unknown top-level keys
// are rejected.
var OrsoType = &header.Type{
	Name: "Orso",
	Fields: []header.Field{
		{Name: "creator", Kind: header.Nested("Creator"), Optional: true},
		{Name: "data_source", Kind: header.Nested("DataSource")},
		{Name: "reduction", Kind: header.Nested("Reduction")},
		{Name: "columns", Kind: header.ListOf(header.UnionOf(header.Nested("Column"), header.Nested("ErrorColumn")))},
		{Name: "data_set", Kind: header.Scalar(header.String), Description: "identifies the dataset within the file"},
	},
	New: func(v header.Values) (header.Record, error) {
		o := &Orso{
			Creator:    header.Get[*Creator](v, "creator"),
			DataSource: header.Get[*DataSource](v, "data_source"),
			Reduction:  header.Get[*Reduction](v, "reduction"),
			Columns:    header.List[ColumnSpec](v, "columns"),
			DataSet:    header.Get[string](v, "data_set"),
		}
		if len(o.Columns) == 0 {
			return nil, fmt.Errorf("columns: at least one column is required")
		}
		return o, nil
	},
}

func (*Orso) Type() *header.Type { return OrsoType }

func (o *Orso) Values() header.Values {
	return header.Values{
		"creator":     o.Creator,
		"data_source": o.DataSource,
		"reduction":   o.Reduction,
		"columns":     o.Columns,
		"data_set":    o.DataSet,
	}
}

// ColumnLabels implements container.Header.
func (o *Orso) ColumnLabels() []container.Label {
	out := make([]container.Label, len(o.Columns))
	for i, c := range o.Columns {
		out[i] = c.Label()
	}
	return out
}
