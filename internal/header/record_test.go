package header

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/orso/internal/doc"
	"github.com/roach88/orso/internal/errs"
)

func TestToDictOmitsAbsentOptionalKeepsZero(t *testing.T) {
	absent := ToDict(&setting{Angle: &amount{}, Probe: "neutron"})
	assert.Equal(t, []string{"angle", "probe"}, absent.Keys())

	zero := ToDict(&setting{Angle: &amount{}, Probe: "neutron", Count: Ref(int64(0)), Tags: []string{}})
	assert.Equal(t, []string{"angle", "probe", "tags", "count"}, zero.Keys())

	count, _ := zero.Get("count")
	assert.Equal(t, doc.Int(0), count)
	tags, _ := zero.Get("tags")
	assert.Equal(t, doc.List{}, tags)

	angle, _ := zero.Get("angle")
	assert.True(t, doc.Equal(doc.MustFrom(map[string]any{"magnitude": 0.0}), angle))
}

func TestToDictRequiredFieldNeverOmitted(t *testing.T) {
	m := ToDict(&root{Label: "x"})
	assert.Equal(t, []string{"setting", "items", "label"}, m.Keys())

	setting, _ := m.Get("setting")
	assert.Equal(t, doc.Null{}, setting)
}

func TestToDictExtraThenComment(t *testing.T) {
	extra := doc.NewMap()
	extra.Set("beamline", doc.String("B2"))

	s := &setting{
		Base:    Base{Comment: Ref("note"), Extra: extra},
		Angle:   &span{Min: 1, Max: 2},
		Probe:   "x-ray",
		Started: Ref(time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)),
	}

	m := ToDict(s)
	assert.Equal(t, []string{"angle", "probe", "started", "beamline", "comment"}, m.Keys())

	started, _ := m.Get("started")
	assert.Equal(t, doc.Time{Time: time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)}, started)

	// The projection owns its extension values.
	beamline, _ := m.Get("beamline")
	m.Set("beamline", doc.String("changed"))
	original, _ := extra.Get("beamline")
	assert.Equal(t, doc.String("B2"), original)
	assert.Equal(t, doc.String("B2"), beamline)
}

func TestEqualIncludesComment(t *testing.T) {
	a := &amount{Magnitude: 1, Unit: Ref("mm")}
	b := &amount{Magnitude: 1, Unit: Ref("mm")}
	assert.True(t, Equal(a, b))

	b.Comment = Ref("remeasured")
	assert.False(t, Equal(a, b))

	assert.False(t, Equal(a, &amount{Magnitude: 1}))
	assert.True(t, Equal(nil, (*amount)(nil)))
}

func TestResolveToDictRoundTrip(t *testing.T) {
	r := testRegistry()
	in := decode(t, `setting:
  angle: {min: 0.5, max: 3.5, unit: deg}
  probe: neutron
  operator: Jo
  comment: tilted
items:
  - magnitude: 1.25
    unit: mm
label: sample A
`)

	rec, err := r.ResolveRecord("Root", in)
	require.NoError(t, err)
	assert.True(t, doc.Equal(in, ToDict(rec)), "projection differs from input")

	again, err := r.ResolveRecord("Root", ToDict(rec))
	require.NoError(t, err)
	assert.True(t, Equal(rec, again))
}

func TestEmptySkeleton(t *testing.T) {
	r := testRegistry()

	for _, name := range r.Names() {
		t.Run(name, func(t *testing.T) {
			rec, err := r.Empty(name)
			require.NoError(t, err)
			assertSkeleton(t, rec)
		})
	}

	rec, err := r.Empty("Root")
	require.NoError(t, err)
	got := rec.(*root)
	require.NotNil(t, got.Setting)
	assert.IsType(t, &amount{}, got.Setting.Angle, "union takes its first alternative")
	assert.Equal(t, "neutron", got.Setting.Probe, "enumeration takes its first literal")
	assert.Len(t, got.Items, 1)
}

func TestEmptyUnregistered(t *testing.T) {
	_, err := testRegistry().Empty("Nope")
	assert.Error(t, err)
}

// assertSkeleton checks that every required field of rec and of its nested
// records is present and every optional field is absent.
func assertSkeleton(t *testing.T, rec Record) {
	t.Helper()
	m := ToDict(rec)
	for _, f := range rec.Type().Fields {
		v, ok := m.Get(f.Name)
		if f.Optional {
			assert.False(t, ok, "%s.%s should be absent", rec.Type().Name, f.Name)
			continue
		}
		require.True(t, ok, "%s.%s should be present", rec.Type().Name, f.Name)
		assert.False(t, doc.IsNull(v), "%s.%s should not be null", rec.Type().Name, f.Name)
	}
	assert.False(t, m.Has(CommentField))

	for _, v := range rec.Values() {
		switch val := v.(type) {
		case Record:
			if !isNil(val) {
				assertSkeleton(t, val)
			}
		case []*amount:
			for _, elem := range val {
				assertSkeleton(t, elem)
			}
		}
	}
}

func TestValidateReportsNestedPath(t *testing.T) {
	rec := &root{
		Setting: &setting{Angle: &amount{Magnitude: 1}, Probe: "neutron"},
		Items:   []*amount{{Magnitude: 1}, {Magnitude: 2, Unit: Ref("µm")}},
		Label:   "x",
	}

	err := Validate(rec)
	require.Error(t, err)
	assert.True(t, errs.IsUnitMismatch(err))

	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "items[1]", e.Path)

	rec.Items[1].Unit = Ref("um")
	assert.NoError(t, Validate(rec))
}

func TestCheckUnit(t *testing.T) {
	assert.NoError(t, CheckUnit(nil))
	assert.NoError(t, CheckUnit(Ref("1/angstrom")))
	assert.NoError(t, CheckUnit(Ref("")))
	assert.True(t, errs.IsUnitMismatch(CheckUnit(Ref("Å"))))
	assert.True(t, errs.IsUnitMismatch(CheckUnit(Ref("m\x00"))))
}
