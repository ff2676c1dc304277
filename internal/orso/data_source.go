package orso

import (
	"fmt"
	"time"

	"github.com/roach88/orso/internal/header"
)

// Probes are the radiation probes of an experiment.
var Probes = []string{"neutron", "x-ray"}

// Schemes are the measurement schemes.
var Schemes = []string{"angle- and energy-dispersive", "angle-dispersive", "energy-dispersive"}

// Polarizations are the named polarization states: unpolarized, the
// neutron spin states (p/m) and the x-ray linear and circular states.
var Polarizations = []string{
	"unpolarized",
	"po", "mo", "op", "om", "mm", "mp", "pm", "pp",
	"pi", "sigma", "left", "right",
	"pi_pi", "sigma_sigma", "pi_sigma", "sigma_pi",
}

// PolarizationSpec is a named Polarization or a *ValueVector.
type PolarizationSpec interface {
	polarization()
}

// Polarization is one of Polarizations.
type Polarization string

func (Polarization) polarization() {}

// String returns the literal.
func (p Polarization) String() string { return string(p) }

// Experiment describes the beamtime.
type Experiment struct {
	header.Base
	Title      string
	Instrument string
	StartDate  time.Time
	Probe      string
	Facility   *string
	ProposalID *string
	DOI        *string
}

// Sample describes the measured sample.
type Sample struct {
	header.Base
	Name        string
	Category    *string
	Composition *string
	Description *string
	Size        *ValueVector
	Environment []string
}

// InstrumentSettings holds the settings that define the measured q range.
type InstrumentSettings struct {
	header.Base
	IncidentAngle Quantity
	Wavelength    Quantity
	Polarization  PolarizationSpec
	Configuration *string
}

// Measurement describes the raw data behind the reduced curve.
type Measurement struct {
	header.Base
	InstrumentSettings *InstrumentSettings
	DataFiles          []FileRef
	AdditionalFiles    []FileRef
	Scheme             *string
}

// DataSource groups everything about where the data came from.
type DataSource struct {
	header.Base
	Owner       *Person
	Experiment  *Experiment
	Sample      *Sample
	Measurement *Measurement
}

var (
	ExperimentType = &header.Type{
		Name: "Experiment",
		Open: true,
		Fields: []header.Field{
			{Name: "title", Kind: header.Scalar(header.String)},
			{Name: "instrument", Kind: header.Scalar(header.String)},
			{Name: "start_date", Kind: header.Scalar(header.Time)},
			{Name: "probe", Kind: header.Enumeration(Probes...)},
			{Name: "facility", Kind: header.Scalar(header.String), Optional: true},
			{Name: "proposalID", Kind: header.Scalar(header.String), Optional: true},
			{Name: "doi", Kind: header.Scalar(header.String), Optional: true},
		},
		New: func(v header.Values) (header.Record, error) {
			return &Experiment{
				Title:      header.Get[string](v, "title"),
				Instrument: header.Get[string](v, "instrument"),
				StartDate:  header.Get[time.Time](v, "start_date"),
				Probe:      header.Get[string](v, "probe"),
				Facility:   header.Ptr[string](v, "facility"),
				ProposalID: header.Ptr[string](v, "proposalID"),
				DOI:        header.Ptr[string](v, "doi"),
			}, nil
		},
	}

	SampleType = &header.Type{
		Name: "Sample",
		Open: true,
		Fields: []header.Field{
			{Name: "name", Kind: header.Scalar(header.String)},
			{Name: "category", Kind: header.Scalar(header.String), Optional: true, Description: "front (beam side) / back, solid / liquid"},
			{Name: "composition", Kind: header.Scalar(header.String), Optional: true},
			{Name: "description", Kind: header.Scalar(header.String), Optional: true},
			{Name: "size", Kind: header.Nested("ValueVector"), Optional: true},
			{Name: "environment", Kind: header.ListOf(header.Scalar(header.String)), Optional: true},
		},
		New: func(v header.Values) (header.Record, error) {
			return &Sample{
				Name:        header.Get[string](v, "name"),
				Category:    header.Ptr[string](v, "category"),
				Composition: header.Ptr[string](v, "composition"),
				Description: header.Ptr[string](v, "description"),
				Size:        header.Get[*ValueVector](v, "size"),
				Environment: header.List[string](v, "environment"),
			}, nil
		},
	}

	InstrumentSettingsType = &header.Type{
		Name: "InstrumentSettings",
		Open: true,
		Fields: []header.Field{
			{Name: "incident_angle", Kind: quantityKind},
			{Name: "wavelength", Kind: quantityKind},
			{Name: "polarization", Kind: header.UnionOf(header.Enumeration(Polarizations...), header.Nested("ValueVector")), Optional: true},
			{Name: "configuration", Kind: header.Scalar(header.String), Optional: true, Description: "half / full polarized | liquid_surface | etc"},
		},
		New: func(v header.Values) (header.Record, error) {
			s := &InstrumentSettings{
				IncidentAngle: header.Get[Quantity](v, "incident_angle"),
				Wavelength:    header.Get[Quantity](v, "wavelength"),
				Configuration: header.Ptr[string](v, "configuration"),
			}
			switch p := v["polarization"].(type) {
			case nil:
			case string:
				s.Polarization = Polarization(p)
			case *ValueVector:
				s.Polarization = p
			default:
				return nil, fmt.Errorf("polarization: unexpected %T", p)
			}
			return s, nil
		},
	}

	MeasurementType = &header.Type{
		Name: "Measurement",
		Open: true,
		Fields: []header.Field{
			{Name: "instrument_settings", Kind: header.Nested("InstrumentSettings")},
			{Name: "data_files", Kind: fileListKind},
			{Name: "additional_files", Kind: fileListKind, Optional: true},
			{Name: "scheme", Kind: header.Enumeration(Schemes...), Optional: true},
		},
		New: func(v header.Values) (header.Record, error) {
			return &Measurement{
				InstrumentSettings: header.Get[*InstrumentSettings](v, "instrument_settings"),
				DataFiles:          fileRefs(v, "data_files"),
				AdditionalFiles:    fileRefs(v, "additional_files"),
				Scheme:             header.Ptr[string](v, "scheme"),
			}, nil
		},
	}

	DataSourceType = &header.Type{
		Name: "DataSource",
		Open: true,
		Fields: []header.Field{
			{Name: "owner", Kind: header.Nested("Person")},
			{Name: "experiment", Kind: header.Nested("Experiment")},
			{Name: "sample", Kind: header.Nested("Sample")},
			{Name: "measurement", Kind: header.Nested("Measurement")},
		},
		New: func(v header.Values) (header.Record, error) {
			return &DataSource{
				Owner:       header.Get[*Person](v, "owner"),
				Experiment:  header.Get[*Experiment](v, "experiment"),
				Sample:      header.Get[*Sample](v, "sample"),
				Measurement: header.Get[*Measurement](v, "measurement"),
			}, nil
		},
	}

	quantityKind = header.UnionOf(header.Nested("Value"), header.Nested("ValueRange"))
	fileListKind = header.ListOf(header.UnionOf(header.Nested("File"), header.Scalar(header.String)))
)

func (*Experiment) Type() *header.Type { return ExperimentType }

func (e *Experiment) Values() header.Values {
	return header.Values{
		"title":      e.Title,
		"instrument": e.Instrument,
		"start_date": e.StartDate,
		"probe":      e.Probe,
		"facility":   e.Facility,
		"proposalID": e.ProposalID,
		"doi":        e.DOI,
	}
}

func (*Sample) Type() *header.Type { return SampleType }

func (s *Sample) Values() header.Values {
	return header.Values{
		"name":        s.Name,
		"category":    s.Category,
		"composition": s.Composition,
		"description": s.Description,
		"size":        s.Size,
		"environment": s.Environment,
	}
}

func (*InstrumentSettings) Type() *header.Type { return InstrumentSettingsType }

func (s *InstrumentSettings) Values() header.Values {
	return header.Values{
		"incident_angle": s.IncidentAngle,
		"wavelength":     s.Wavelength,
		"polarization":   s.Polarization,
		"configuration":  s.Configuration,
	}
}

// Check rejects polarization names outside Polarizations, which struct
// literals can otherwise introduce.
func (s *InstrumentSettings) Check() error {
	p, ok := s.Polarization.(Polarization)
	if !ok {
		return nil
	}
	for _, allowed := range Polarizations {
		if string(p) == allowed {
			return nil
		}
	}
	return fmt.Errorf("unknown polarization %q", string(p))
}

func (*Measurement) Type() *header.Type { return MeasurementType }

func (m *Measurement) Values() header.Values {
	return header.Values{
		"instrument_settings": m.InstrumentSettings,
		"data_files":          m.DataFiles,
		"additional_files":    m.AdditionalFiles,
		"scheme":              m.Scheme,
	}
}

func (*DataSource) Type() *header.Type { return DataSourceType }

func (d *DataSource) Values() header.Values {
	return header.Values{
		"owner":       d.Owner,
		"experiment":  d.Experiment,
		"sample":      d.Sample,
		"measurement": d.Measurement,
	}
}
