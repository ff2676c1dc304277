package validate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/orso/internal/doc"
	"github.com/roach88/orso/internal/errs"
)

func loadMinimal(t *testing.T) *doc.Map {
	t.Helper()
	text, err := os.ReadFile(filepath.Join("testdata", "minimal.yml"))
	require.NoError(t, err)
	v, err := doc.Decode(string(text))
	require.NoError(t, err)
	return v.(*doc.Map)
}

func get(t *testing.T, m *doc.Map, path ...string) *doc.Map {
	t.Helper()
	for _, key := range path {
		v, ok := m.Get(key)
		require.True(t, ok, "missing %s", key)
		m = v.(*doc.Map)
	}
	return m
}

func TestValidateAcceptsMinimalHeader(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	assert.NoError(t, s.Validate(loadMinimal(t)))
}

func TestValidateRejects(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	tests := []struct {
		name     string
		mutate   func(t *testing.T, m *doc.Map)
		wantPath string
	}{
		{
			name:     "unknown top-level key",
			mutate:   func(t *testing.T, m *doc.Map) { m.Set("colums", doc.List{}) },
			wantPath: "colums",
		},
		{
			name:     "missing data_set",
			mutate:   func(t *testing.T, m *doc.Map) { m.Delete("data_set") },
			wantPath: "data_set",
		},
		{
			name: "probe outside enumeration",
			mutate: func(t *testing.T, m *doc.Map) {
				get(t, m, "data_source", "experiment").Set("probe", doc.String("muon"))
			},
			wantPath: "data_source.experiment",
		},
		{
			name: "non-ASCII unit",
			mutate: func(t *testing.T, m *doc.Map) {
				get(t, m, "data_source", "measurement", "instrument_settings", "wavelength").Set("unit", doc.String("Å"))
			},
			wantPath: "data_source.measurement.instrument_settings.wavelength",
		},
		{
			name: "extension key on closed record",
			mutate: func(t *testing.T, m *doc.Map) {
				get(t, m, "reduction", "software").Set("extra", doc.Int(1))
				get(t, m, "data_source", "measurement", "instrument_settings", "wavelength").Set("error", doc.Float(0.01))
			},
			wantPath: "data_source.measurement.instrument_settings.wavelength",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := loadMinimal(t)
			tt.mutate(t, m)

			err := s.Validate(m)
			require.Error(t, err)
			assert.True(t, errs.IsSchemaValidation(err))

			var verr *Error
			require.ErrorAs(t, err, &verr)
			require.NotEmpty(t, verr.Findings)

			found := false
			for _, f := range verr.Findings {
				assert.False(t, strings.HasPrefix(f.Path, RootDefinition), "path %q names the schema definition", f.Path)
				if strings.HasPrefix(f.Path, tt.wantPath) {
					found = true
				}
			}
			assert.True(t, found, "no finding under %s in %v", tt.wantPath, verr.Findings)
		})
	}
}

func TestValidateAcceptsExtensionsOnOpenRecords(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	m := loadMinimal(t)
	get(t, m, "data_source", "sample").Set("sample_parameters", doc.MustFrom(map[string]any{
		"roughness": map[string]any{"magnitude": 3.5, "unit": "angstrom"},
	}))
	assert.NoError(t, s.Validate(m))
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile("#A: {", "#A")
	assert.Error(t, err)

	_, err = Compile("#A: {x: int}", "#B")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "#B")

	s, err := Compile("#A: {x: int}", "#A")
	require.NoError(t, err)
	assert.NoError(t, s.Validate(doc.MustFrom(map[string]any{"x": 1}).(*doc.Map)))
	assert.Error(t, s.Validate(doc.MustFrom(map[string]any{"x": "one"}).(*doc.Map)))
}

func TestFindingPathsAreDocumentRelative(t *testing.T) {
	s, err := Compile("#Outer: {inner: {n: int}}", "#Outer")
	require.NoError(t, err)

	err = s.Validate(doc.MustFrom(map[string]any{"inner": map[string]any{"n": "x"}}).(*doc.Map))
	var verr *Error
	require.ErrorAs(t, err, &verr)
	require.NotEmpty(t, verr.Findings)
	for _, f := range verr.Findings {
		assert.Equal(t, "inner.n", f.Path)
	}
}

func TestTrimPrefix(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, trimPrefix([]string{"#Orso", "a", "b"}, []string{"#Orso"}))
	assert.Equal(t, []string{"x", "a"}, trimPrefix([]string{"x", "a"}, []string{"#Orso"}))
	assert.Empty(t, trimPrefix([]string{"#Orso"}, []string{"#Orso"}))
}

func TestErrorMessage(t *testing.T) {
	e := &Error{Findings: []Finding{{Path: "a.b", Message: "conflict"}, {Message: "incomplete"}}}
	assert.Equal(t, "a.b: conflict; incomplete", e.Error())
}
