// Package router resolves navigation requests against a route table,
// enforcing the guard pipeline before any page loads: before-hooks, then
// the auth requirement, then redirect-if-authenticated, then permissions.
// The ordering is fixed; it is what guarantees an unauthenticated user
// asking for a permissioned route lands on the login page and never sees
// an access-denied notification.
package router

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	goerrors "github.com/goliatone/go-errors"
	idosoms "github.com/joaopanucci/IdosoMS"
)

// AuthState is the slice of the auth manager the router consumes.
// *idosoms.Manager satisfies it.
type AuthState interface {
	IsAuthenticated() bool
	HasPermission(name string) bool
}

// BeforeHook runs before any guard. Returning false stops the resolution:
// no guard evaluation, no page load, history left as already changed.
type BeforeHook func(ctx context.Context, def Definition, path string) bool

// AfterHook runs after the page mounted.
type AfterHook func(ctx context.Context, def Definition, path string)

// ActiveRoute is the single mounted view. It is replaced, never layered:
// at most one exists at a time.
type ActiveRoute struct {
	Definition Definition
	Path       string
	Params     Params
	Page       Page
	Node       Node
}

// Router owns the route table, the guard pipeline and the history
// integration.
type Router struct {
	table   *Table
	auth    AuthState
	history History
	display Display
	logger  idosoms.Logger
	sink    idosoms.ActivitySink

	loginPath   string
	defaultPath string
	notFound    *Definition

	mu          sync.Mutex
	beforeHooks []BeforeHook
	afterHooks  []AfterHook
	active      *ActiveRoute
	unsubPop    func()

	// generation serializes navigations: a resolution whose loader
	// finishes after a newer Navigate started mounts nothing.
	generation uint64
}

// NewRouter returns a router with in-memory history and a no-op display.
func NewRouter(auth AuthState) *Router {
	return &Router{
		table:       NewTable(),
		auth:        auth,
		history:     NewMemoryHistory("/"),
		display:     NoopDisplay{},
		logger:      idosoms.DefaultLogger(),
		sink:        idosoms.NormalizeActivitySink(nil),
		loginPath:   "/login",
		defaultPath: "/dashboard",
	}
}

func (r *Router) WithLogger(logger idosoms.Logger) *Router {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// WithActivitySink configures the sink navigation events (mounts, access
// denied, load errors) are emitted to.
func (r *Router) WithActivitySink(sink idosoms.ActivitySink) *Router {
	r.sink = idosoms.NormalizeActivitySink(sink)
	return r
}

func (r *Router) WithHistory(history History) *Router {
	if history != nil {
		r.history = history
	}
	return r
}

func (r *Router) WithDisplay(display Display) *Router {
	if display != nil {
		r.display = display
	}
	return r
}

// WithLoginPath sets the redirect target for unauthenticated access to
// auth-required routes.
func (r *Router) WithLoginPath(path string) *Router {
	if path != "" {
		r.loginPath = path
	}
	return r
}

// WithDefaultPath sets the redirect target after a permission denial.
func (r *Router) WithDefaultPath(path string) *Router {
	if path != "" {
		r.defaultPath = path
	}
	return r
}

// AddRoute registers a definition; duplicate literal patterns are
// rejected.
func (r *Router) AddRoute(def Definition) error {
	return r.table.Add(def)
}

// SetNotFound installs the fallback definition rendered when no pattern
// matches.
func (r *Router) SetNotFound(def Definition) {
	r.notFound = &def
}

// BeforeEach appends a before-hook; hooks run in registration order.
func (r *Router) BeforeEach(hook BeforeHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.beforeHooks = append(r.beforeHooks, hook)
}

// AfterEach appends an after-hook.
func (r *Router) AfterEach(hook AfterHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.afterHooks = append(r.afterHooks, hook)
}

// Start subscribes to back/forward traversal and resolves the current
// history path.
func (r *Router) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.unsubPop == nil {
		r.unsubPop = r.history.OnPop(func(path string) {
			_ = r.resolve(context.Background(), path)
		})
	}
	r.mu.Unlock()

	return r.resolve(ctx, r.history.Current())
}

// Stop detaches from history traversal events.
func (r *Router) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.unsubPop != nil {
		r.unsubPop()
		r.unsubPop = nil
	}
}

// Navigate pushes the path onto history and resolves it.
func (r *Router) Navigate(ctx context.Context, path string) error {
	r.history.Push(path)
	return r.resolve(ctx, path)
}

// NavigateReplace replaces the current history entry and resolves.
func (r *Router) NavigateReplace(ctx context.Context, path string) error {
	r.history.Replace(path)
	return r.resolve(ctx, path)
}

// Refresh re-resolves the current path, re-running the guard pipeline.
// Wire it to Manager.OnAuthStateChange so sign-in/sign-out re-evaluates
// the mounted route.
func (r *Router) Refresh(ctx context.Context) error {
	return r.resolve(ctx, r.history.Current())
}

// Back delegates to history; the pop subscription resolves the new path.
func (r *Router) Back() { r.history.Back() }

// Forward delegates to history.
func (r *Router) Forward() { r.history.Forward() }

// Active returns the currently mounted route, nil when nothing is
// mounted.
func (r *Router) Active() *ActiveRoute {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// CurrentPath returns the history's current path.
func (r *Router) CurrentPath() string {
	return r.history.Current()
}

func (r *Router) resolve(ctx context.Context, path string) error {
	gen := atomic.AddUint64(&r.generation, 1)

	def, params, ok := r.table.Resolve(path)
	if !ok {
		return r.handleNotFound(ctx, gen, path)
	}

	for _, hook := range r.snapshotBefore() {
		if !r.runBeforeHook(ctx, hook, def, path) {
			r.logger.Debug("navigation to %s stopped by before hook", path)
			return nil
		}
	}

	if def.RequireAuth && !r.auth.IsAuthenticated() {
		return r.Navigate(ctx, r.loginPath)
	}

	if def.RedirectIfAuth != "" && r.auth.IsAuthenticated() {
		return r.Navigate(ctx, def.RedirectIfAuth)
	}

	if len(def.RequiredPermissions) > 0 {
		for _, perm := range def.RequiredPermissions {
			if !r.auth.HasPermission(perm) {
				r.emit(ctx, idosoms.ActivityEvent{
					EventType: idosoms.ActivityEventAccessDenied,
					Path:      path,
					Metadata:  map[string]any{"permission": perm},
				})
				return r.Navigate(ctx, r.defaultPath)
			}
		}
	}

	return r.load(ctx, gen, def, params, path)
}

func (r *Router) handleNotFound(ctx context.Context, gen uint64, path string) error {
	r.emit(ctx, idosoms.ActivityEvent{
		EventType: idosoms.ActivityEventRouteNotFound,
		Path:      path,
	})

	if r.notFound != nil {
		return r.load(ctx, gen, *r.notFound, Params{}, path)
	}

	r.display.ShowNotFound(path)
	return nil
}

// load runs the lazy loader and mounts the page. Failures render the
// generic error view and leave the router usable.
func (r *Router) load(ctx context.Context, gen uint64, def Definition, params Params, path string) error {
	// a navigation superseded while it sat in the guard chain must not
	// touch the display or the active route
	r.mu.Lock()
	if gen != atomic.LoadUint64(&r.generation) {
		r.mu.Unlock()
		r.logger.Debug("stale navigation to %s discarded", path)
		return nil
	}
	// the outgoing view is discarded before the new one loads; there is
	// no unmount callback beyond dropping the reference
	r.active = nil
	r.mu.Unlock()

	r.display.SetTitle(def.Title)

	if def.Loader == nil {
		return r.fail(ctx, path, goerrors.New("route has no loader", goerrors.CategoryInternal))
	}

	page, err := def.Loader(ctx, params)
	if err != nil {
		return r.fail(ctx, path, err)
	}
	if page == nil {
		return r.fail(ctx, path, goerrors.New("route loader produced no page", goerrors.CategoryInternal))
	}

	node, err := page.Render(ctx)
	if err != nil {
		return r.fail(ctx, path, err)
	}
	if node == nil {
		return r.fail(ctx, path, goerrors.New("page rendered no mountable node", goerrors.CategoryInternal))
	}

	r.mu.Lock()
	if gen != atomic.LoadUint64(&r.generation) {
		r.mu.Unlock()
		r.logger.Debug("stale navigation to %s discarded", path)
		return nil
	}
	if err := r.display.Mount(node); err != nil {
		r.mu.Unlock()
		return r.fail(ctx, path, err)
	}
	r.active = &ActiveRoute{
		Definition: def,
		Path:       path,
		Params:     params,
		Page:       page,
		Node:       node,
	}
	r.mu.Unlock()

	if init, ok := page.(Initializer); ok {
		if err := init.Init(ctx); err != nil {
			return r.fail(ctx, path, err)
		}
	}

	for _, hook := range r.snapshotAfter() {
		r.runAfterHook(ctx, hook, def, path)
	}

	r.emit(ctx, idosoms.ActivityEvent{
		EventType: idosoms.ActivityEventRouteMounted,
		Path:      path,
	})
	return nil
}

func (r *Router) fail(ctx context.Context, path string, err error) error {
	r.logger.Error("route load failed for %s: %v", path, err)
	r.display.ShowError(path, err)
	r.emit(ctx, idosoms.ActivityEvent{
		EventType: idosoms.ActivityEventRouteLoadError,
		Path:      path,
		Metadata:  map[string]any{"error": err.Error()},
	})
	return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load route")
}

func (r *Router) runBeforeHook(ctx context.Context, hook BeforeHook, def Definition, path string) (proceed bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("before hook panicked on %s: %v", path, rec)
			proceed = false
		}
	}()
	return hook(ctx, def, path)
}

func (r *Router) runAfterHook(ctx context.Context, hook AfterHook, def Definition, path string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("after hook panicked on %s: %v", path, rec)
		}
	}()
	hook(ctx, def, path)
}

func (r *Router) snapshotBefore() []BeforeHook {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]BeforeHook, len(r.beforeHooks))
	copy(out, r.beforeHooks)
	return out
}

func (r *Router) snapshotAfter() []AfterHook {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]AfterHook, len(r.afterHooks))
	copy(out, r.afterHooks)
	return out
}

func (r *Router) emit(ctx context.Context, event idosoms.ActivityEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	if err := r.sink.Record(ctx, event); err != nil {
		r.logger.Error("activity sink record failed for %s: %v", event.EventType, err)
	}
}
