package header

import (
	"fmt"
	"strings"
)

// Registry is a validated, read-only set of record types.
//
// It is built once, before first use, and never mutated afterwards, so
// concurrent reads from independent call stacks need no locking.
type Registry struct {
	types map[string]*Type
	order []string
}

// NewRegistry validates types and returns a registry over them.
//
// It fails on duplicate type or field names, a redeclared comment field,
// missing constructors, references to unregistered types, empty unions or
// enumerations, and any cycle in the type graph. Resolution and skeleton
// synthesis recurse without cycle checks, so acyclicity is enforced here.
func NewRegistry(types ...*Type) (*Registry, error) {
	r := &Registry{types: make(map[string]*Type, len(types))}

	for _, t := range types {
		if t == nil || t.Name == "" {
			return nil, fmt.Errorf("schema: type with empty name")
		}
		if _, dup := r.types[t.Name]; dup {
			return nil, fmt.Errorf("schema: duplicate type %q", t.Name)
		}
		if t.New == nil {
			return nil, fmt.Errorf("schema: type %q has no constructor", t.Name)
		}
		r.types[t.Name] = t
		r.order = append(r.order, t.Name)
	}

	for _, t := range types {
		if err := r.checkFields(t); err != nil {
			return nil, err
		}
	}

	if cycle := findCycle(r.graph()); cycle != nil {
		return nil, fmt.Errorf("schema: type graph has a cycle: %s", strings.Join(cycle, " -> "))
	}

	for _, t := range types {
		optional := make(map[string]bool)
		for _, f := range t.Fields {
			if f.Optional {
				optional[f.Name] = true
			}
		}
		t.optional = optional
	}

	return r, nil
}

// MustRegistry is NewRegistry for package-level declarations; it panics on
// an invalid schema.
func MustRegistry(types ...*Type) *Registry {
	r, err := NewRegistry(types...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the registered type called name.
func (r *Registry) Lookup(name string) (*Type, bool) {
	t, ok := r.types[name]
	return t, ok
}

// Names returns the registered type names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) checkFields(t *Type) error {
	seen := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		if f.Name == "" {
			return fmt.Errorf("schema: type %q has a field with empty name", t.Name)
		}
		if f.Name == CommentField {
			return fmt.Errorf("schema: type %q redeclares the implicit %q field", t.Name, CommentField)
		}
		if seen[f.Name] {
			return fmt.Errorf("schema: type %q declares field %q twice", t.Name, f.Name)
		}
		seen[f.Name] = true
		if err := r.checkKind(f.Kind); err != nil {
			return fmt.Errorf("schema: %s.%s: %w", t.Name, f.Name, err)
		}
	}
	return nil
}

func (r *Registry) checkKind(k Kind) error {
	switch k.Class {
	case ClassScalar:
		if k.Primitive < String || k.Primitive > Time {
			return fmt.Errorf("unknown primitive %d", int(k.Primitive))
		}
	case ClassNested:
		if _, ok := r.types[k.Record]; !ok {
			return fmt.Errorf("reference to unregistered type %q", k.Record)
		}
	case ClassList:
		if k.Elem == nil {
			return fmt.Errorf("list without element kind")
		}
		return r.checkKind(*k.Elem)
	case ClassUnion:
		if len(k.Alts) == 0 {
			return fmt.Errorf("union without alternatives")
		}
		for _, alt := range k.Alts {
			if err := r.checkKind(alt); err != nil {
				return err
			}
		}
	case ClassEnum:
		if len(k.Allowed) == 0 {
			return fmt.Errorf("enumeration without literals")
		}
	default:
		return fmt.Errorf("unknown kind class %d", int(k.Class))
	}
	return nil
}

// graph maps each type name to the type names its fields reference,
// in registration order.
func (r *Registry) graph() typeGraph {
	g := typeGraph{edges: make(map[string][]string, len(r.order)), nodes: r.order}
	for _, name := range r.order {
		var refs []string
		for _, f := range r.types[name].Fields {
			refs = f.Kind.references(refs)
		}
		g.edges[name] = refs
	}
	return g
}
