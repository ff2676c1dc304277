package orso

import (
	"github.com/roach88/orso/internal/header"
)

// Quantity is a physical value given either as a single magnitude or as a
// range: the Value|ValueRange union.
type Quantity interface {
	header.Record
	quantity()
}

// Value is a scalar magnitude with an optional unit.
type Value struct {
	header.Base
	Magnitude float64
	Unit      *string
}

// ValueRange is a closed interval with an optional unit.
type ValueRange struct {
	header.Base
	Min  float64
	Max  float64
	Unit *string
}

// ValueVector is a three-component vector with an optional unit.
type ValueVector struct {
	header.Base
	X, Y, Z float64
	Unit    *string
}

// ComplexValue is a complex magnitude; a missing imaginary part means zero.
type ComplexValue struct {
	header.Base
	Real float64
	Imag *float64
	Unit *string
}

var (
	ValueType = &header.Type{
		Name: "Value",
		Fields: []header.Field{
			{Name: "magnitude", Kind: header.Scalar(header.Float)},
			{Name: "unit", Kind: header.Scalar(header.String), Optional: true, Description: "SI unit string"},
		},
		New: func(v header.Values) (header.Record, error) {
			return &Value{
				Magnitude: header.Get[float64](v, "magnitude"),
				Unit:      header.Ptr[string](v, "unit"),
			}, nil
		},
	}

	ValueRangeType = &header.Type{
		Name: "ValueRange",
		Fields: []header.Field{
			{Name: "min", Kind: header.Scalar(header.Float)},
			{Name: "max", Kind: header.Scalar(header.Float)},
			{Name: "unit", Kind: header.Scalar(header.String), Optional: true, Description: "SI unit string"},
		},
		New: func(v header.Values) (header.Record, error) {
			return &ValueRange{
				Min:  header.Get[float64](v, "min"),
				Max:  header.Get[float64](v, "max"),
				Unit: header.Ptr[string](v, "unit"),
			}, nil
		},
	}

	ValueVectorType = &header.Type{
		Name: "ValueVector",
		Fields: []header.Field{
			{Name: "x", Kind: header.Scalar(header.Float)},
			{Name: "y", Kind: header.Scalar(header.Float)},
			{Name: "z", Kind: header.Scalar(header.Float)},
			{Name: "unit", Kind: header.Scalar(header.String), Optional: true, Description: "SI unit string"},
		},
		New: func(v header.Values) (header.Record, error) {
			return &ValueVector{
				X:    header.Get[float64](v, "x"),
				Y:    header.Get[float64](v, "y"),
				Z:    header.Get[float64](v, "z"),
				Unit: header.Ptr[string](v, "unit"),
			}, nil
		},
	}

	ComplexValueType = &header.Type{
		Name: "ComplexValue",
		Fields: []header.Field{
			{Name: "real", Kind: header.Scalar(header.Float)},
			{Name: "imag", Kind: header.Scalar(header.Float), Optional: true},
			{Name: "unit", Kind: header.Scalar(header.String), Optional: true, Description: "SI unit string"},
		},
		New: func(v header.Values) (header.Record, error) {
			return &ComplexValue{
				Real: header.Get[float64](v, "real"),
				Imag: header.Ptr[float64](v, "imag"),
				Unit: header.Ptr[string](v, "unit"),
			}, nil
		},
	}
)

func (*Value) Type() *header.Type { return ValueType }

func (v *Value) Values() header.Values {
	return header.Values{"magnitude": v.Magnitude, "unit": v.Unit}
}

func (v *Value) Check() error { return header.CheckUnit(v.Unit) }

func (*Value) quantity() {}

func (*ValueRange) Type() *header.Type { return ValueRangeType }

func (v *ValueRange) Values() header.Values {
	return header.Values{"min": v.Min, "max": v.Max, "unit": v.Unit}
}

func (v *ValueRange) Check() error { return header.CheckUnit(v.Unit) }

func (*ValueRange) quantity() {}

func (*ValueVector) Type() *header.Type { return ValueVectorType }

func (v *ValueVector) Values() header.Values {
	return header.Values{"x": v.X, "y": v.Y, "z": v.Z, "unit": v.Unit}
}

func (v *ValueVector) Check() error { return header.CheckUnit(v.Unit) }

func (*ValueVector) polarization() {}

func (*ComplexValue) Type() *header.Type { return ComplexValueType }

func (v *ComplexValue) Values() header.Values {
	return header.Values{"real": v.Real, "imag": v.Imag, "unit": v.Unit}
}

func (v *ComplexValue) Check() error { return header.CheckUnit(v.Unit) }
