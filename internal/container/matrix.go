package container

import (
	"github.com/roach88/orso/internal/errs"
)

// Matrix is a dense row-major matrix of float64 values.
type Matrix struct {
	rows, cols int
	data       []float64
}

// NewMatrix returns a zero-filled rows x cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// MatrixFromRows copies rows into a matrix. All rows must have the same
// length; a ragged input is a SHAPE_MISMATCH.
func MatrixFromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return NewMatrix(0, 0), nil
	}
	cols := len(rows[0])
	m := &Matrix{rows: len(rows), cols: cols, data: make([]float64, 0, len(rows)*cols)}
	for i, row := range rows {
		if len(row) != cols {
			return nil, errs.Newf(errs.CodeShapeMismatch, "", "row %d has %d values, expected %d", i, len(row), cols)
		}
		m.data = append(m.data, row...)
	}
	return m, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// At returns the value at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.data[i*m.cols+j]
}

// Set stores v at row i, column j.
func (m *Matrix) Set(i, j int, v float64) {
	m.data[i*m.cols+j] = v
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	out := make([]float64, m.cols)
	copy(out, m.data[i*m.cols:(i+1)*m.cols])
	return out
}

// Column returns a copy of column j.
func (m *Matrix) Column(j int) []float64 {
	out := make([]float64, m.rows)
	for i := 0; i < m.rows; i++ {
		out[i] = m.data[i*m.cols+j]
	}
	return out
}

// Equal reports exact elementwise equality. NaN equals NaN so that a matrix
// read back from disk compares equal to the one written.
func (m *Matrix) Equal(other *Matrix) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i, a := range m.data {
		b := other.data[i]
		if a != b && !(a != a && b != b) {
			return false
		}
	}
	return true
}

// appendRow adds a row of exactly m.cols values.
func (m *Matrix) appendRow(row []float64) {
	m.data = append(m.data, row...)
	m.rows++
}
