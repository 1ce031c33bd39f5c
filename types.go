package idosoms

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of the provider's authenticated principal.
// It is a read-only handle owned by the identity provider; the session
// store keeps a reference and never mutates it.
type Identity interface {
	ID() string
	Email() string
	DisplayName() string
	EmailVerified() bool
}

// AuthChangeFunc receives the new identity on every provider auth event.
// A nil identity means the provider session ended.
type AuthChangeFunc func(identity Identity)

// IdentityProvider is the external credential authority the Manager
// consumes. Every operation may fail with a *ProviderError carrying one of
// the ProviderCode values; see MapProviderError.
type IdentityProvider interface {
	SignInWithPassword(ctx context.Context, email, password string) (Identity, error)
	CreateAccount(ctx context.Context, email, password string) (Identity, error)
	SignOut(ctx context.Context) error
	SendVerificationEmail(ctx context.Context) error
	SendPasswordReset(ctx context.Context, email string) error
	ChangePassword(ctx context.Context, newPassword string) error
	Reauthenticate(ctx context.Context, password string) error
	UpdateDisplayName(ctx context.Context, name string) error

	// SubscribeToAuthChanges registers fn on the provider's change stream
	// and returns an unsubscribe operation. Deliveries are serialized: the
	// provider never starts a second delivery while one is in flight.
	SubscribeToAuthChanges(fn AuthChangeFunc) (func(), error)
}

// ProfileStore is the backend document store holding application profiles
// keyed by identity id. GetDocument returns a not-found error (checkable
// via errors.IsNotFound) when no document exists; callers treat that as a
// normal outcome, not a failure.
type ProfileStore interface {
	GetDocument(ctx context.Context, id string) (*Profile, error)
	SetDocument(ctx context.Context, id string, profile *Profile) error
	UpdateDocument(ctx context.Context, id string, update ProfileUpdate) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] IDOSOMS "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] IDOSOMS "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] IDOSOMS "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}

// DefaultLogger returns the stdout logger components fall back to when no
// logger is configured.
func DefaultLogger() Logger {
	return defLogger{}
}
