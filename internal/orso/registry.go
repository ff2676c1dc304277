package orso

import (
	"github.com/roach88/orso/internal/container"
	"github.com/roach88/orso/internal/header"
)

// registry is built once at package initialisation and never mutated, so
// it is safe to share between goroutines.
var registry = header.MustRegistry(
	ValueType,
	ValueRangeType,
	ValueVectorType,
	ComplexValueType,
	PersonType,
	CreatorType,
	SoftwareType,
	ReductionType,
	FileType,
	ColumnType,
	ErrorColumnType,
	ExperimentType,
	SampleType,
	InstrumentSettingsType,
	MeasurementType,
	DataSourceType,
	OrsoType,
)

// Registry returns the process-wide registry of ORSO record types.
func Registry() *header.Registry {
	return registry
}

// Format returns the codec configuration for ORSO files. validator may be
// nil to skip schema cross-validation.
func Format(validator container.Validator) container.Format {
	return container.Format{
		Registry:   registry,
		Root:       OrsoType.Name,
		DatasetKey: "data_set",
		Version:    container.DefaultVersion,
		Validator:  validator,
	}
}

// Resolve reifies a generic header document (or a plain Go map) into an
// Orso record.
func Resolve(raw any) (*Orso, error) {
	rec, err := registry.ResolveRecord(OrsoType.Name, raw)
	if err != nil {
		return nil, err
	}
	return rec.(*Orso), nil
}

// Empty returns the skeleton root header: every required field populated,
// every optional field absent.
func Empty() (*Orso, error) {
	rec, err := registry.Empty(OrsoType.Name)
	if err != nil {
		return nil, err
	}
	return rec.(*Orso), nil
}

// NewDataset pairs an ORSO header with its data matrix.
func NewDataset(info *Orso, data *container.Matrix) (*container.Dataset, error) {
	return container.NewDataset(info, data)
}

// Load reads every dataset of an ORSO text file.
func Load(path string, validator container.Validator) ([]*container.Dataset, error) {
	return container.ReadFile(path, Format(validator))
}

// Save writes datasets to path as an ORSO text file.
func Save(path string, datasets ...*container.Dataset) error {
	return container.WriteFile(path, Format(nil), datasets...)
}
