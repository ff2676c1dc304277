package container

import (
	"github.com/roach88/orso/internal/header"
)

// plain is a root header whose projection holds only top-level scalars, so
// its YAML rendering is fixed and can be compared byte for byte.
type plain struct {
	header.Base
	DataSet    string
	Title      string
	Wavelength *float64
}

func (*plain) Type() *header.Type { return plainType }

func (p *plain) Values() header.Values {
	return header.Values{"data_set": p.DataSet, "title": p.Title, "wavelength": p.Wavelength}
}

func (*plain) ColumnLabels() []Label {
	return []Label{{Name: "Qz", Unit: "1/angstrom"}, {Name: "R"}}
}

type detector struct {
	header.Base
	Distance float64
	Unit     *string
}

func (*detector) Type() *header.Type { return detectorType }

func (d *detector) Values() header.Values {
	return header.Values{"distance": d.Distance, "unit": d.Unit}
}

func (d *detector) Check() error { return header.CheckUnit(d.Unit) }

type setup struct {
	header.Base
	Angle    float64
	Detector *detector
}

func (*setup) Type() *header.Type { return setupType }

func (s *setup) Values() header.Values {
	return header.Values{"angle": s.Angle, "detector": s.Detector}
}

type column struct {
	header.Base
	Name string
	Unit *string
}

func (*column) Type() *header.Type { return columnType }

func (c *column) Values() header.Values {
	return header.Values{"name": c.Name, "unit": c.Unit}
}

func (c *column) Check() error { return header.CheckUnit(c.Unit) }

type sheet struct {
	header.Base
	DataSet string
	Setup   *setup
	Columns []*column
}

func (*sheet) Type() *header.Type { return sheetType }

func (s *sheet) Values() header.Values {
	return header.Values{"data_set": s.DataSet, "setup": s.Setup, "columns": s.Columns}
}

func (s *sheet) ColumnLabels() []Label {
	out := make([]Label, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = Label{Name: c.Name}
		if c.Unit != nil {
			out[i].Unit = *c.Unit
		}
	}
	return out
}

var (
	plainType = &header.Type{
		Name: "Plain",
		Fields: []header.Field{
			{Name: "data_set", Kind: header.Scalar(header.String)},
			{Name: "title", Kind: header.Scalar(header.String)},
			{Name: "wavelength", Kind: header.Scalar(header.Float), Optional: true},
		},
		New: func(v header.Values) (header.Record, error) {
			return &plain{
				DataSet:    header.Get[string](v, "data_set"),
				Title:      header.Get[string](v, "title"),
				Wavelength: header.Ptr[float64](v, "wavelength"),
			}, nil
		},
	}

	detectorType = &header.Type{
		Name: "Detector",
		Fields: []header.Field{
			{Name: "distance", Kind: header.Scalar(header.Float)},
			{Name: "unit", Kind: header.Scalar(header.String), Optional: true},
		},
		New: func(v header.Values) (header.Record, error) {
			return &detector{Distance: header.Get[float64](v, "distance"), Unit: header.Ptr[string](v, "unit")}, nil
		},
	}

	setupType = &header.Type{
		Name: "Setup",
		Open: true,
		Fields: []header.Field{
			{Name: "angle", Kind: header.Scalar(header.Float)},
			{Name: "detector", Kind: header.Nested("Detector")},
		},
		New: func(v header.Values) (header.Record, error) {
			return &setup{Angle: header.Get[float64](v, "angle"), Detector: header.Get[*detector](v, "detector")}, nil
		},
	}

	columnType = &header.Type{
		Name: "Column",
		Fields: []header.Field{
			{Name: "name", Kind: header.Scalar(header.String)},
			{Name: "unit", Kind: header.Scalar(header.String), Optional: true},
		},
		New: func(v header.Values) (header.Record, error) {
			return &column{Name: header.Get[string](v, "name"), Unit: header.Ptr[string](v, "unit")}, nil
		},
	}

	sheetType = &header.Type{
		Name: "Sheet",
		Fields: []header.Field{
			{Name: "data_set", Kind: header.Scalar(header.String)},
			{Name: "setup", Kind: header.Nested("Setup")},
			{Name: "columns", Kind: header.ListOf(header.Nested("Column"))},
		},
		New: func(v header.Values) (header.Record, error) {
			return &sheet{
				DataSet: header.Get[string](v, "data_set"),
				Setup:   header.Get[*setup](v, "setup"),
				Columns: header.List[*column](v, "columns"),
			}, nil
		},
	}

	testTypes = header.MustRegistry(plainType, detectorType, setupType, columnType, sheetType)

	plainFormat = Format{Registry: testTypes, Root: "Plain"}
	sheetFormat = Format{Registry: testTypes, Root: "Sheet"}
)

func newSheet(name string, distance float64) *sheet {
	return &sheet{
		DataSet: name,
		Setup: &setup{
			Angle:    0.7,
			Detector: &detector{Distance: distance, Unit: header.Ref("m")},
		},
		Columns: []*column{
			{Name: "Qz", Unit: header.Ref("1/angstrom")},
			{Name: "R"},
			{Name: "sR"},
		},
	}
}
