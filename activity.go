package idosoms

import (
	"context"
	"time"
)

// ActivityEventType enumerates supported activity categories.
type ActivityEventType string

const (
	ActivityEventSignInSuccess   ActivityEventType = "auth.signin.success"
	ActivityEventSignInFailure   ActivityEventType = "auth.signin.failure"
	ActivityEventSignUp          ActivityEventType = "auth.signup"
	ActivityEventSignOut         ActivityEventType = "auth.signout"
	ActivityEventPasswordChanged ActivityEventType = "auth.password.changed"
	ActivityEventPasswordReset   ActivityEventType = "auth.password.reset"
	ActivityEventProfileUpdated  ActivityEventType = "auth.profile.updated"
	ActivityEventAccessDenied    ActivityEventType = "nav.access.denied"
	ActivityEventRouteMounted    ActivityEventType = "nav.route.mounted"
	ActivityEventRouteNotFound   ActivityEventType = "nav.route.notfound"
	ActivityEventRouteLoadError  ActivityEventType = "nav.route.error"
)

// ActivityEvent captures audit-friendly information about an action.
type ActivityEvent struct {
	EventType  ActivityEventType
	UserID     string
	Path       string
	Metadata   map[string]any
	OccurredAt time.Time
}

// ActivitySink consumes activity events for auditing/telemetry purposes.
// Sinks run best-effort: errors are logged by the emitter, never returned
// to the operation that produced the event.
type ActivitySink interface {
	Record(ctx context.Context, event ActivityEvent) error
}

// ActivitySinkFunc adapts a function to the ActivitySink interface.
type ActivitySinkFunc func(ctx context.Context, event ActivityEvent) error

// Record implements ActivitySink.
func (f ActivitySinkFunc) Record(ctx context.Context, event ActivityEvent) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

type noopActivitySink struct{}

func (noopActivitySink) Record(context.Context, ActivityEvent) error {
	return nil
}

// NormalizeActivitySink substitutes a no-op sink for nil so emitters never
// have to branch.
func NormalizeActivitySink(s ActivitySink) ActivitySink {
	if s == nil {
		return noopActivitySink{}
	}
	return s
}
