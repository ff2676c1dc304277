package header

import (
	"time"
)

type amount struct {
	Base
	Magnitude float64
	Unit      *string
}

func (*amount) Type() *Type { return amountType }

func (a *amount) Values() Values {
	return Values{"magnitude": a.Magnitude, "unit": a.Unit}
}

func (a *amount) Check() error { return CheckUnit(a.Unit) }

type span struct {
	Base
	Min, Max float64
	Unit     *string
}

func (*span) Type() *Type { return spanType }

func (s *span) Values() Values {
	return Values{"min": s.Min, "max": s.Max, "unit": s.Unit}
}

type setting struct {
	Base
	Angle   Record
	Probe   string
	Tags    []string
	Started *time.Time
	Count   *int64
}

func (*setting) Type() *Type { return settingType }

func (s *setting) Values() Values {
	return Values{"angle": s.Angle, "probe": s.Probe, "tags": s.Tags, "started": s.Started, "count": s.Count}
}

type root struct {
	Base
	Setting *setting
	Items   []*amount
	Label   string
}

func (*root) Type() *Type { return rootType }

func (r *root) Values() Values {
	return Values{"setting": r.Setting, "items": r.Items, "label": r.Label}
}

var (
	amountType = &Type{
		Name: "Amount",
		Fields: []Field{
			{Name: "magnitude", Kind: Scalar(Float)},
			{Name: "unit", Kind: Scalar(String), Optional: true},
		},
		New: func(v Values) (Record, error) {
			return &amount{Magnitude: Get[float64](v, "magnitude"), Unit: Ptr[string](v, "unit")}, nil
		},
	}

	spanType = &Type{
		Name: "Span",
		Fields: []Field{
			{Name: "min", Kind: Scalar(Float)},
			{Name: "max", Kind: Scalar(Float)},
			{Name: "unit", Kind: Scalar(String), Optional: true},
		},
		New: func(v Values) (Record, error) {
			return &span{Min: Get[float64](v, "min"), Max: Get[float64](v, "max"), Unit: Ptr[string](v, "unit")}, nil
		},
	}

	settingType = &Type{
		Name: "Setting",
		Open: true,
		Fields: []Field{
			{Name: "angle", Kind: UnionOf(Nested("Amount"), Nested("Span"))},
			{Name: "probe", Kind: Enumeration("neutron", "x-ray")},
			{Name: "tags", Kind: ListOf(Scalar(String)), Optional: true},
			{Name: "started", Kind: Scalar(Time), Optional: true},
			{Name: "count", Kind: Scalar(Int), Optional: true},
		},
		New: func(v Values) (Record, error) {
			return &setting{
				Angle:   Get[Record](v, "angle"),
				Probe:   Get[string](v, "probe"),
				Tags:    List[string](v, "tags"),
				Started: Ptr[time.Time](v, "started"),
				Count:   Ptr[int64](v, "count"),
			}, nil
		},
	}

	rootType = &Type{
		Name: "Root",
		Fields: []Field{
			{Name: "setting", Kind: Nested("Setting")},
			{Name: "items", Kind: ListOf(Nested("Amount"))},
			{Name: "label", Kind: Scalar(String)},
		},
		New: func(v Values) (Record, error) {
			return &root{
				Setting: Get[*setting](v, "setting"),
				Items:   List[*amount](v, "items"),
				Label:   Get[string](v, "label"),
			}, nil
		},
	}
)

func testRegistry() *Registry {
	return MustRegistry(amountType, spanType, settingType, rootType)
}
