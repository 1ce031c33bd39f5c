package router

import (
	"context"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Params holds the values bound to `:name` pattern segments.
type Params map[string]string

// Loader lazily produces the page for a route. It runs only after every
// guard passed and receives the parameters extracted from the path.
type Loader func(ctx context.Context, params Params) (Page, error)

// Definition describes a navigable route. Pattern segments are either
// literals or `:name` parameters; the segment count is fixed, there are no
// wildcards or optional segments.
type Definition struct {
	Pattern             string
	Title               string
	Loader              Loader
	RequireAuth         bool
	RedirectIfAuth      string
	RequiredPermissions []string
}

type segment struct {
	literal string
	param   string
}

type route struct {
	def      Definition
	segments []segment
	literal  bool
}

// ErrDuplicatePattern is returned when a literal pattern is registered
// twice. Silent shadowing is rejected at registration time.
var ErrDuplicatePattern = goerrors.New("route pattern already registered", goerrors.CategoryConflict).
	WithCode(goerrors.CodeConflict)

func parsePattern(pattern string) ([]segment, error) {
	if pattern == "" || !strings.HasPrefix(pattern, "/") {
		return nil, goerrors.New("route pattern must start with '/'", goerrors.CategoryBadInput)
	}

	parts := strings.Split(pattern, "/")
	segments := make([]segment, 0, len(parts))
	for _, part := range parts {
		if strings.Contains(part, "*") {
			return nil, goerrors.New("route pattern must not contain wildcards", goerrors.CategoryBadInput)
		}
		if strings.HasPrefix(part, ":") {
			name := part[1:]
			if name == "" {
				return nil, goerrors.New("route parameter must be named", goerrors.CategoryBadInput)
			}
			segments = append(segments, segment{param: name})
			continue
		}
		segments = append(segments, segment{literal: part})
	}
	return segments, nil
}

func (r *route) match(path string) (Params, bool) {
	parts := strings.Split(path, "/")
	if len(parts) != len(r.segments) {
		return nil, false
	}

	params := Params{}
	for i, seg := range r.segments {
		if seg.param != "" {
			params[seg.param] = parts[i]
			continue
		}
		if seg.literal != parts[i] {
			return nil, false
		}
	}
	return params, true
}

// Table is the ordered registry of route definitions. Exact literal
// matches take priority; parameterized patterns match in registration
// order.
type Table struct {
	ordered   []*route
	byPattern map[string]*route
}

func NewTable() *Table {
	return &Table{byPattern: map[string]*route{}}
}

// Add registers a definition. Re-registering an identical pattern returns
// ErrDuplicatePattern instead of silently shadowing the earlier one.
func (t *Table) Add(def Definition) error {
	segments, err := parsePattern(def.Pattern)
	if err != nil {
		return err
	}
	if _, exists := t.byPattern[def.Pattern]; exists {
		return ErrDuplicatePattern
	}

	literal := true
	for _, seg := range segments {
		if seg.param != "" {
			literal = false
			break
		}
	}

	rt := &route{def: def, segments: segments, literal: literal}
	t.ordered = append(t.ordered, rt)
	t.byPattern[def.Pattern] = rt
	return nil
}

// Resolve matches a path. The exact literal pattern wins; otherwise the
// first registered pattern with matching segment count and literals binds
// its parameters.
func (t *Table) Resolve(path string) (Definition, Params, bool) {
	if rt, ok := t.byPattern[path]; ok && rt.literal {
		return rt.def, Params{}, true
	}

	for _, rt := range t.ordered {
		if params, ok := rt.match(path); ok {
			return rt.def, params, true
		}
	}
	return Definition{}, nil, false
}

// Patterns returns the registered patterns in registration order.
func (t *Table) Patterns() []string {
	out := make([]string, 0, len(t.ordered))
	for _, rt := range t.ordered {
		out = append(out, rt.def.Pattern)
	}
	return out
}
