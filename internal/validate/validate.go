// Package validate cross-validates decoded ORSO header documents against the
// published schema, expressed in CUE and embedded in the binary.
//
// Validation reports every finding of a document at once; it never corrects
// the document.
package validate

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/roach88/orso/internal/doc"
	"github.com/roach88/orso/internal/errs"
)

//go:embed orso.cue
var orsoSchema string

// RootDefinition is the definition a whole header document must satisfy.
const RootDefinition = "#Orso"

// Finding is one schema violation.
type Finding struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error is the cause of a SCHEMA_VALIDATION_FAILURE; it lists every finding.
type Error struct {
	Findings []Finding
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Findings))
	for i, f := range e.Findings {
		if f.Path == "" {
			parts[i] = f.Message
			continue
		}
		parts[i] = f.Path + ": " + f.Message
	}
	return strings.Join(parts, "; ")
}

// Schema validates documents against one CUE definition.
//
// A cue.Context is not safe for concurrent use, so Validate serialises
// access to it.
type Schema struct {
	mu   sync.Mutex
	ctx  *cue.Context
	root cue.Value

	// prefix holds the selectors of the root definition, which CUE puts
	// in front of every error path.
	prefix []string
}

// New compiles the embedded ORSO schema.
func New() (*Schema, error) {
	return Compile(orsoSchema, RootDefinition)
}

// Compile builds a Schema from CUE source and the path of the definition
// documents are unified with.
func Compile(src, definition string) (*Schema, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(src, cue.Filename("orso.cue"))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	root := v.LookupPath(cue.ParsePath(definition))
	if !root.Exists() {
		return nil, fmt.Errorf("compile schema: definition %s not found", definition)
	}
	var prefix []string
	for _, sel := range cue.ParsePath(definition).Selectors() {
		prefix = append(prefix, sel.String())
	}
	return &Schema{ctx: ctx, root: root, prefix: prefix}, nil
}

// Validate checks m. Failures are SCHEMA_VALIDATION_FAILURE errors whose
// cause is an *Error holding every finding.
func (s *Schema) Validate(m *doc.Map) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.ctx.Encode(doc.Native(m))
	if err := data.Err(); err != nil {
		return errs.Wrap(errs.CodeSchemaValidation, "", "document cannot be encoded", err)
	}

	err := s.root.Unify(data).Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	findings := collect(err, s.prefix)
	return errs.Wrap(errs.CodeSchemaValidation, "",
		fmt.Sprintf("%d schema violation(s)", len(findings)), &Error{Findings: findings})
}

// collect flattens a CUE error list into sorted, de-duplicated findings
// with paths relative to the validated document.
func collect(err error, prefix []string) []Finding {
	seen := make(map[Finding]bool)
	var out []Finding
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		f := Finding{
			Path:    strings.Join(trimPrefix(e.Path(), prefix), "."),
			Message: fmt.Sprintf(format, args...),
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Message < out[j].Message
	})
	return out
}

func trimPrefix(path, prefix []string) []string {
	if len(path) < len(prefix) {
		return path
	}
	for i, sel := range prefix {
		if path[i] != sel {
			return path
		}
	}
	return path[len(prefix):]
}
