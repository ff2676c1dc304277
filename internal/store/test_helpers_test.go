package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/orso/internal/container"
	"github.com/roach88/orso/internal/header"
)

// scan is a minimal root header with two fixed columns.
type scan struct {
	header.Base
	DataSet string
	Sample  string
}

func (*scan) Type() *header.Type { return scanType }

func (s *scan) Values() header.Values {
	return header.Values{"data_set": s.DataSet, "sample": s.Sample}
}

func (*scan) ColumnLabels() []container.Label {
	return []container.Label{{Name: "Qz", Unit: "1/angstrom"}, {Name: "R"}}
}

var (
	scanType = &header.Type{
		Name: "Scan",
		Fields: []header.Field{
			{Name: "data_set", Kind: header.Scalar(header.String)},
			{Name: "sample", Kind: header.Scalar(header.String)},
		},
		New: func(v header.Values) (header.Record, error) {
			return &scan{DataSet: header.Get[string](v, "data_set"), Sample: header.Get[string](v, "sample")}, nil
		},
	}

	scanFormat = container.Format{Registry: header.MustRegistry(scanType), Root: "Scan"}
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestDataset builds a dataset with the given number of rows.
func createTestDataset(t *testing.T, name, sample string, rows int) *container.Dataset {
	t.Helper()
	data := container.NewMatrix(rows, 2)
	for i := 0; i < rows; i++ {
		data.Set(i, 0, 0.01*float64(i+1))
		data.Set(i, 1, 1.0/float64(i+1))
	}
	ds, err := container.NewDataset(&scan{DataSet: name, Sample: sample}, data)
	require.NoError(t, err)
	return ds
}

// writeTestFile writes datasets to a container file and returns its path.
func writeTestFile(t *testing.T, name string, datasets ...*container.Dataset) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, container.WriteFile(path, scanFormat, datasets...))
	return path
}
