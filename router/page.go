package router

import "context"

// Node is whatever the display technology mounts. The shell never
// inspects it beyond a nil check; rendering is out of scope here.
type Node = any

// Page is the single construction contract for route components: built by
// a Loader from route parameters, rendered to a mountable node, optionally
// initialized after mounting (see Initializer).
type Page interface {
	Render(ctx context.Context) (Node, error)
}

// Initializer is the optional post-mount lifecycle hook a Page may
// implement.
type Initializer interface {
	Init(ctx context.Context) error
}

// PageFunc adapts a render function to the Page interface.
type PageFunc func(ctx context.Context) (Node, error)

func (f PageFunc) Render(ctx context.Context) (Node, error) {
	return f(ctx)
}

// Display is where resolved pages end up: the shell's stand-in for the
// document. Implementations set titles, mount nodes, and render the two
// fallback surfaces.
type Display interface {
	SetTitle(title string)
	Mount(node Node) error
	// ShowError renders the generic error view with a reload affordance.
	ShowError(path string, err error)
	// ShowNotFound renders the not-found fallback when no route and no
	// not-found definition exist.
	ShowNotFound(path string)
}

// NoopDisplay discards everything; useful as a default and in tests that
// only assert on navigation outcomes.
type NoopDisplay struct{}

func (NoopDisplay) SetTitle(string)         {}
func (NoopDisplay) Mount(Node) error        { return nil }
func (NoopDisplay) ShowError(string, error) {}
func (NoopDisplay) ShowNotFound(string)     {}
