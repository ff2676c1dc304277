package orso

import (
	"log/slog"
	"os"
	"time"

	"github.com/roach88/orso/internal/header"
)

// Person is someone responsible for data: an owner or a reducer.
type Person struct {
	header.Base
	Name        string
	Affiliation string
	Contact     *string
}

// Creator records who or what wrote the file, and when.
type Creator struct {
	header.Base
	Name        string
	Affiliation string
	Time        time.Time
	Computer    string
	Contact     *string
}

// Software identifies a program used in the reduction.
type Software struct {
	header.Base
	Name     string
	Version  *string
	Platform *string
}

// Reduction describes how the reflectivity curve was derived.
type Reduction struct {
	header.Base
	Software    *Software
	Time        *time.Time
	Creator     *Person
	Corrections []string
	Computer    *string
	Call        *string
}

// FileRef is an entry of a file list: a *File or a bare FilePath.
type FileRef interface {
	fileRef()
}

// FilePath is a file given by name only.
type FilePath string

func (FilePath) fileRef() {}

// File is a referenced file with an optional modification timestamp.
type File struct {
	header.Base
	File      string
	Timestamp *time.Time
}

// NewFile returns a File record for path. A path that does not exist is
// accepted with a warning; the caller's value is kept as given.
func NewFile(path string, timestamp *time.Time) *File {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			slog.Warn("referenced file does not exist", "file", path)
		}
	}
	return &File{File: path, Timestamp: timestamp}
}

func (*File) fileRef() {}

var (
	PersonType = &header.Type{
		Name: "Person",
		Open: true,
		Fields: []header.Field{
			{Name: "name", Kind: header.Scalar(header.String)},
			{Name: "affiliation", Kind: header.Scalar(header.String)},
			{Name: "contact", Kind: header.Scalar(header.String), Optional: true},
		},
		New: func(v header.Values) (header.Record, error) {
			return &Person{
				Name:        header.Get[string](v, "name"),
				Affiliation: header.Get[string](v, "affiliation"),
				Contact:     header.Ptr[string](v, "contact"),
			}, nil
		},
	}

	CreatorType = &header.Type{
		Name: "Creator",
		Open: true,
		Fields: []header.Field{
			{Name: "name", Kind: header.Scalar(header.String)},
			{Name: "affiliation", Kind: header.Scalar(header.String)},
			{Name: "time", Kind: header.Scalar(header.Time)},
			{Name: "computer", Kind: header.Scalar(header.String)},
			{Name: "contact", Kind: header.Scalar(header.String), Optional: true},
		},
		New: func(v header.Values) (header.Record, error) {
			return &Creator{
				Name:        header.Get[string](v, "name"),
				Affiliation: header.Get[string](v, "affiliation"),
				Time:        header.Get[time.Time](v, "time"),
				Computer:    header.Get[string](v, "computer"),
				Contact:     header.Ptr[string](v, "contact"),
			}, nil
		},
	}

	SoftwareType = &header.Type{
		Name: "Software",
		Open: true,
		Fields: []header.Field{
			{Name: "name", Kind: header.Scalar(header.String)},
			{Name: "version", Kind: header.Scalar(header.String), Optional: true},
			{Name: "platform", Kind: header.Scalar(header.String), Optional: true},
		},
		New: func(v header.Values) (header.Record, error) {
			return &Software{
				Name:     header.Get[string](v, "name"),
				Version:  header.Ptr[string](v, "version"),
				Platform: header.Ptr[string](v, "platform"),
			}, nil
		},
	}

	ReductionType = &header.Type{
		Name: "Reduction",
		Open: true,
		Fields: []header.Field{
			{Name: "software", Kind: header.Nested("Software")},
			{Name: "time", Kind: header.Scalar(header.Time), Optional: true},
			{Name: "creator", Kind: header.Nested("Person"), Optional: true},
			{Name: "corrections", Kind: header.ListOf(header.Scalar(header.String)), Optional: true},
			{Name: "computer", Kind: header.Scalar(header.String), Optional: true},
			{Name: "call", Kind: header.Scalar(header.String), Optional: true, Description: "command line of the reduction"},
		},
		New: func(v header.Values) (header.Record, error) {
			return &Reduction{
				Software:    header.Get[*Software](v, "software"),
				Time:        header.Ptr[time.Time](v, "time"),
				Creator:     header.Get[*Person](v, "creator"),
				Corrections: header.List[string](v, "corrections"),
				Computer:    header.Ptr[string](v, "computer"),
				Call:        header.Ptr[string](v, "call"),
			}, nil
		},
	}

	FileType = &header.Type{
		Name: "File",
		Fields: []header.Field{
			{Name: "file", Kind: header.Scalar(header.String)},
			{Name: "timestamp", Kind: header.Scalar(header.Time), Optional: true},
		},
		New: func(v header.Values) (header.Record, error) {
			return NewFile(header.Get[string](v, "file"), header.Ptr[time.Time](v, "timestamp")), nil
		},
	}
)

func (*Person) Type() *header.Type { return PersonType }

func (p *Person) Values() header.Values {
	return header.Values{"name": p.Name, "affiliation": p.Affiliation, "contact": p.Contact}
}

func (*Creator) Type() *header.Type { return CreatorType }

func (c *Creator) Values() header.Values {
	return header.Values{
		"name":        c.Name,
		"affiliation": c.Affiliation,
		"time":        c.Time,
		"computer":    c.Computer,
		"contact":     c.Contact,
	}
}

func (*Software) Type() *header.Type { return SoftwareType }

func (s *Software) Values() header.Values {
	return header.Values{"name": s.Name, "version": s.Version, "platform": s.Platform}
}

func (*Reduction) Type() *header.Type { return ReductionType }

func (r *Reduction) Values() header.Values {
	return header.Values{
		"software":    r.Software,
		"time":        r.Time,
		"creator":     r.Creator,
		"corrections": r.Corrections,
		"computer":    r.Computer,
		"call":        r.Call,
	}
}

func (*File) Type() *header.Type { return FileType }

func (f *File) Values() header.Values {
	return header.Values{"file": f.File, "timestamp": f.Timestamp}
}

// fileRefs converts a resolved File|string list.
func fileRefs(v header.Values, name string) []FileRef {
	raw := header.List[any](v, name)
	if raw == nil {
		return nil
	}
	out := make([]FileRef, 0, len(raw))
	for _, elem := range raw {
		switch ref := elem.(type) {
		case *File:
			out = append(out, ref)
		case string:
			out = append(out, FilePath(ref))
		}
	}
	return out
}
