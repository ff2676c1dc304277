// Package diff computes and applies structural deltas between generic documents.
//
// A file holding several datasets stores the first header in full and every
// later header as Diff(first, later). Reading folds each delta back with
// Apply(first, delta). Both functions are pure: inputs are never mutated and
// no state survives between calls.
//
// Limitation: a delta cannot express removal of a key present in the base.
// Apply(base, Diff(base, other)) == other holds only when other differs from
// base by changed or added values.
package diff

import (
	"github.com/roach88/orso/internal/doc"
)

// Diff returns the keys of other that differ from base.
//
// For each key of other, in other's order:
//   - equal in both: dropped
//   - mappings in both: replaced by their recursive diff, dropped if empty
//   - absent from base or any other difference: carried through verbatim
//
// Keys present only in base are not represented.
func Diff(base, other *doc.Map) *doc.Map {
	delta := doc.NewMap()
	for _, key := range other.Keys() {
		ov, _ := other.Get(key)
		bv, inBase := base.Get(key)
		if !inBase {
			delta.Set(key, doc.Clone(ov))
			continue
		}
		if doc.Equal(bv, ov) {
			continue
		}
		bm, baseIsMap := bv.(*doc.Map)
		om, otherIsMap := ov.(*doc.Map)
		if baseIsMap && otherIsMap {
			if nested := Diff(bm, om); nested.Len() > 0 {
				delta.Set(key, nested)
			}
			continue
		}
		delta.Set(key, doc.Clone(ov))
	}
	return delta
}

// Apply overlays delta onto a copy of base and returns the result.
//
// Where both sides hold a mapping the merge recurses; otherwise the delta's
// value replaces (or is appended to) the base's.
func Apply(base, delta *doc.Map) *doc.Map {
	merged, _ := doc.Clone(base).(*doc.Map)
	if merged == nil {
		merged = doc.NewMap()
	}
	for _, key := range delta.Keys() {
		dv, _ := delta.Get(key)
		bv, _ := merged.Get(key)
		bm, baseIsMap := bv.(*doc.Map)
		dm, deltaIsMap := dv.(*doc.Map)
		if baseIsMap && deltaIsMap {
			merged.Set(key, Apply(bm, dm))
			continue
		}
		merged.Set(key, doc.Clone(dv))
	}
	return merged
}
