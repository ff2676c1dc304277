package container

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/roach88/orso/internal/doc"
	"github.com/roach88/orso/internal/errs"
	"github.com/roach88/orso/internal/header"
)

// Label names one data column in the column-header line.
type Label struct {
	Name string
	Unit string
}

// String renders "name (unit)", or just the name when there is no unit.
func (l Label) String() string {
	if l.Unit == "" {
		return l.Name
	}
	return fmt.Sprintf("%s (%s)", l.Name, l.Unit)
}

// Header is a root header record that declares the dataset's columns.
type Header interface {
	header.Record

	// ColumnLabels returns one label per declared column, in order.
	ColumnLabels() []Label
}

// Dataset pairs one resolved header with its numeric matrix.
//
// A Dataset exclusively owns both; treat it as immutable once constructed.
type Dataset struct {
	info Header
	data *Matrix
}

// NewDataset pairs info with data. It fails with SHAPE_MISMATCH when the
// matrix column count differs from the number of declared columns, and
// with the record's own error when a header check (such as the unit
// predicate) fails.
func NewDataset(info Header, data *Matrix) (*Dataset, error) {
	if info == nil {
		return nil, fmt.Errorf("dataset: nil header")
	}
	if data == nil {
		return nil, fmt.Errorf("dataset: nil matrix")
	}
	if want := len(info.ColumnLabels()); data.Cols() != want {
		return nil, errs.Newf(errs.CodeShapeMismatch, "",
			"matrix has %d columns, header declares %d", data.Cols(), want)
	}
	if err := header.Validate(info); err != nil {
		return nil, err
	}
	return &Dataset{info: info, data: data}, nil
}

// Info returns the dataset's header record.
func (d *Dataset) Info() Header { return d.info }

// Data returns the dataset's numeric matrix.
func (d *Dataset) Data() *Matrix { return d.data }

// Equal reports header equality and exact elementwise matrix equality.
func (d *Dataset) Equal(other *Dataset) bool {
	if d == nil || other == nil {
		return d == other
	}
	return header.Equal(d.info, other.info) && d.data.Equal(other.data)
}

// Header renders the dataset's complete header as it appears in a file:
// the full YAML block followed by the column-header line, every line
// carrying the comment marker.
func (d *Dataset) Header() (string, error) {
	var buf bytes.Buffer
	if err := writeHeaderBlock(&buf, header.ToDict(d.info)); err != nil {
		return "", err
	}
	buf.WriteString(commentMarker + ColumnHeader(d.info.ColumnLabels()) + "\n")
	return buf.String(), nil
}

// Save writes d alone to path in f's layout.
func (d *Dataset) Save(path string, f Format) error {
	return WriteFile(path, f, d)
}

// writeHeaderBlock encodes m as YAML with every line behind the marker.
func writeHeaderBlock(w io.Writer, m *doc.Map) error {
	text, err := doc.MarshalText(m)
	if err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if _, err := io.WriteString(w, strings.TrimRight(commentMarker+line, " ")+"\n"); err != nil {
			return err
		}
	}
	return nil
}
