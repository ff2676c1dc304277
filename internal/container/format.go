package container

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/roach88/orso/internal/doc"
	"github.com/roach88/orso/internal/header"
)

const (
	// DefaultVersion is the format version written to the magic line.
	DefaultVersion = "1.0"

	// DefaultDatasetKey is the header key that discriminates datasets.
	DefaultDatasetKey = "data_set"

	commentMarker  = "# "
	boundaryLine   = "---"
	firstLabelWide = 19
	labelWide      = 23
	valueFormat    = "%22.16e"
)

var magicPattern = regexp.MustCompile(
	`^# ORSO reflectivity data file \| ([0-9]+(?:\.[0-9]+)*) standard \| YAML encoding \| https://www\.reflectometry\.org/$`)

// Validator cross-validates a decoded header document before it is resolved.
type Validator interface {
	Validate(m *doc.Map) error
}

// Format configures the codec for one header schema.
type Format struct {
	// Registry holds the header record types.
	Registry *header.Registry

	// Root names the registered type every header block resolves to.
	// Its records must implement Header.
	Root string

	// DatasetKey is always written in later header blocks, even when it
	// equals the first block's value. Defaults to DefaultDatasetKey.
	DatasetKey string

	// Version is written to the magic line. Defaults to DefaultVersion.
	Version string

	// Validator, when set, checks every folded header document on read.
	Validator Validator
}

func (f Format) datasetKey() string {
	if f.DatasetKey == "" {
		return DefaultDatasetKey
	}
	return f.DatasetKey
}

func (f Format) version() string {
	if f.Version == "" {
		return DefaultVersion
	}
	return f.Version
}

func (f Format) check() error {
	if f.Registry == nil {
		return fmt.Errorf("format: no registry")
	}
	if _, ok := f.Registry.Lookup(f.Root); !ok {
		return fmt.Errorf("format: root type %q is not registered", f.Root)
	}
	return nil
}

// MagicLine returns the first line of a file written with version.
func MagicLine(version string) string {
	return fmt.Sprintf("# ORSO reflectivity data file | %s standard | YAML encoding | https://www.reflectometry.org/", version)
}

// ParseMagicLine returns the version token of a magic line. Leading and
// trailing whitespace is ignored.
func ParseMagicLine(line string) (string, bool) {
	m := magicPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ColumnHeader renders the column-header line without its comment marker.
//
// The line is itself a YAML comment ("# Qz (1/angstrom)  R ..."). Labels are
// left-aligned so that each starts where its column's values start; the
// first is narrower by the width of the leading markers.
func ColumnHeader(labels []Label) string {
	var b strings.Builder
	b.WriteString(commentMarker)
	for i, l := range labels {
		width := labelWide
		if i == 0 {
			width = firstLabelWide
		}
		text := l.String()
		b.WriteString(text)
		if i == len(labels)-1 {
			break
		}
		if pad := width - len(text); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		} else {
			b.WriteString(" ")
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// FormatRow renders one numeric row: every value right-aligned in
// exponential notation with 16 fractional digits, separated by one space.
func FormatRow(row []float64) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = fmt.Sprintf(valueFormat, v)
	}
	return strings.Join(parts, " ")
}
