package orso

import (
	"github.com/roach88/orso/internal/container"
	"github.com/roach88/orso/internal/header"
)

// ColumnSpec is one entry of the columns list: a Column or an ErrorColumn.
type ColumnSpec interface {
	header.Record
	Label() container.Label
}

// Column describes a data column.
type Column struct {
	header.Base
	Name             string
	Unit             *string
	PhysicalQuantity *string
}

// Label returns "name (unit)" label parts.
func (c *Column) Label() container.Label {
	l := container.Label{Name: c.Name}
	if c.Unit != nil {
		l.Unit = *c.Unit
	}
	return l
}

// Error column enumerations.
var (
	ErrorTypes    = []string{"uncertainty", "resolution"}
	ValueIs       = []string{"sigma", "FWHM"}
	Distributions = []string{"gaussian", "triangular", "uniform", "lorentzian"}
)

// ErrorColumn describes the uncertainty or resolution of another column.
type ErrorColumn struct {
	header.Base
	ErrorOf      string
	ErrorType    *string
	ValueIs      *string
	Distribution *string
}

// Label is "s" followed by the described column's name; error columns
// carry that column's unit implicitly and print none.
func (c *ErrorColumn) Label() container.Label {
	return container.Label{Name: "s" + c.ErrorOf}
}

var (
	ColumnType = &header.Type{
		Name: "Column",
		Fields: []header.Field{
			{Name: "name", Kind: header.Scalar(header.String)},
			{Name: "unit", Kind: header.Scalar(header.String), Optional: true, Description: "SI unit string"},
			{Name: "physical_quantity", Kind: header.Scalar(header.String), Optional: true},
		},
		New: func(v header.Values) (header.Record, error) {
			return &Column{
				Name:             header.Get[string](v, "name"),
				Unit:             header.Ptr[string](v, "unit"),
				PhysicalQuantity: header.Ptr[string](v, "physical_quantity"),
			}, nil
		},
	}

	ErrorColumnType = &header.Type{
		Name: "ErrorColumn",
		Fields: []header.Field{
			{Name: "error_of", Kind: header.Scalar(header.String)},
			{Name: "error_type", Kind: header.Enumeration(ErrorTypes...), Optional: true},
			{Name: "value_is", Kind: header.Enumeration(ValueIs...), Optional: true},
			{Name: "distribution", Kind: header.Enumeration(Distributions...), Optional: true},
		},
		New: func(v header.Values) (header.Record, error) {
			return &ErrorColumn{
				ErrorOf:      header.Get[string](v, "error_of"),
				ErrorType:    header.Ptr[string](v, "error_type"),
				ValueIs:      header.Ptr[string](v, "value_is"),
				Distribution: header.Ptr[string](v, "distribution"),
			}, nil
		},
	}
)

func (*Column) Type() *header.Type { return ColumnType }

func (c *Column) Values() header.Values {
	return header.Values{"name": c.Name, "unit": c.Unit, "physical_quantity": c.PhysicalQuantity}
}

func (c *Column) Check() error { return header.CheckUnit(c.Unit) }

func (*ErrorColumn) Type() *header.Type { return ErrorColumnType }

func (c *ErrorColumn) Values() header.Values {
	return header.Values{
		"error_of":     c.ErrorOf,
		"error_type":   c.ErrorType,
		"value_is":     c.ValueIs,
		"distribution": c.Distribution,
	}
}
