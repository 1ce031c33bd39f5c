package idosoms

import (
	"context"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// profileLoadAttempts bounds the synchronous retry of a failed profile
// load inside the auth-change handler. After that the session stays
// authenticated with no profile and ReloadProfile is the manual retry.
const profileLoadAttempts = 3

// AuthListener is a callback registered against the Manager. Each
// registration gets its own opaque handle; unregistration goes through the
// unsubscribe operation returned by OnAuthStateChange.
type AuthListener func(identity Identity)

type listenerEntry struct {
	id uint64
	fn AuthListener
}

// Manager owns the session store, reconciles profiles from the backend
// store and fans auth-state changes out to registered listeners.
type Manager struct {
	provider IdentityProvider
	store    ProfileStore
	session  *SessionStore
	logger   Logger
	sink     ActivitySink

	initMu      sync.Mutex
	initialized bool
	unsubscribe func()

	// eventMu serializes provider event handling so a handler for a later
	// event never interleaves with a still-running profile load.
	eventMu sync.Mutex

	listenerMu sync.Mutex
	nextHandle uint64
	listeners  []listenerEntry
}

// NewManager wires the auth state manager to its provider and store.
func NewManager(provider IdentityProvider, store ProfileStore) *Manager {
	return &Manager{
		provider: provider,
		store:    store,
		session:  NewSessionStore(),
		logger:   defLogger{},
		sink:     noopActivitySink{},
	}
}

func (m *Manager) WithLogger(logger Logger) *Manager {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// WithActivitySink configures an ActivitySink for emitting auth events.
func (m *Manager) WithActivitySink(sink ActivitySink) *Manager {
	m.sink = NormalizeActivitySink(sink)
	return m
}

// Initialize subscribes once to the provider change stream. Subsequent
// calls are no-ops. A failed subscription is fatal for the shell and is
// surfaced, not retried.
func (m *Manager) Initialize() error {
	m.initMu.Lock()
	defer m.initMu.Unlock()

	if m.initialized {
		return nil
	}

	unsubscribe, err := m.provider.SubscribeToAuthChanges(m.handleAuthChange)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "cannot subscribe to auth changes").
			WithTextCode(textCodeSubscription)
	}

	m.unsubscribe = unsubscribe
	m.initialized = true
	return nil
}

// Shutdown detaches from the provider change stream.
func (m *Manager) Shutdown() {
	m.initMu.Lock()
	defer m.initMu.Unlock()
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.initialized = false
}

// handleAuthChange is the provider subscription callback. Identity is nil
// on sign-out/session loss.
func (m *Manager) handleAuthChange(identity Identity) {
	m.eventMu.Lock()
	defer m.eventMu.Unlock()

	if identity == nil {
		m.session.Clear()
		m.logger.Debug("auth state changed: %s", StateUnauthenticated)
		m.notify(nil)
		return
	}

	m.session.SetAuthenticated(identity)
	m.logger.Debug("auth state changed: %s email=%s", StateAuthenticated, identity.Email())

	// profile load failure is not fatal: the session stays authenticated
	// with no profile until a retry succeeds
	if err := m.loadProfile(context.Background(), identity); err != nil {
		m.logger.Error("profile load failed for %s: %v", identity.ID(), err)
	}

	m.notify(identity)
}

func (m *Manager) loadProfile(ctx context.Context, identity Identity) error {
	var lastErr error
	for attempt := 1; attempt <= profileLoadAttempts; attempt++ {
		profile, err := m.store.GetDocument(ctx, identity.ID())
		if err == nil {
			m.session.SetProfile(profile)
			return nil
		}

		if goerrors.IsNotFound(err) {
			// normal outcome: no backend record yet, fall back to defaults
			m.logger.Info("profile document not found for %s, using defaults", identity.ID())
			m.session.SetProfile(DefaultProfile(identity))
			return nil
		}

		lastErr = err
		m.logger.Debug("profile load attempt %d failed: %v", attempt, err)
	}

	return goerrors.Wrap(lastErr, goerrors.CategoryInternal, "failed to load profile").
		WithTextCode(textCodeProfileLoad)
}

// ReloadProfile retries the profile load for the current session.
func (m *Manager) ReloadProfile(ctx context.Context) error {
	m.eventMu.Lock()
	defer m.eventMu.Unlock()

	identity := m.session.Identity()
	if identity == nil {
		return ErrNotAuthenticated
	}
	return m.loadProfile(ctx, identity)
}

// SignIn authenticates against the provider. Local validation runs before
// any network call; provider success with an unverified email is rejected
// and the session is torn down so it never establishes.
func (m *Manager) SignIn(ctx context.Context, email, password string) (Identity, error) {
	if err := ValidateSignIn(email, password); err != nil {
		return nil, invalidInput(err)
	}

	identity, err := m.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		m.emit(ctx, ActivityEvent{
			EventType: ActivityEventSignInFailure,
			Metadata:  map[string]any{"email": email, "error": err.Error()},
		})
		return nil, MapProviderError(err)
	}

	if !identity.EmailVerified() {
		// the provider-level credential succeeded, but sign-in must not
		// stand: clear the provider session before anyone observes it
		if err := m.provider.SignOut(ctx); err != nil {
			m.logger.Error("sign out after unverified sign in failed: %v", err)
		}
		m.emit(ctx, ActivityEvent{
			EventType: ActivityEventSignInFailure,
			UserID:    identity.ID(),
			Metadata:  map[string]any{"email": email, "reason": "email-not-verified"},
		})
		return nil, ErrEmailNotVerified
	}

	m.emit(ctx, ActivityEvent{
		EventType: ActivityEventSignInSuccess,
		UserID:    identity.ID(),
	})
	return identity, nil
}

// SignUp validates the payload, creates the identity and its profile
// document, and requests a verification email. If identity creation
// succeeds but a later step fails, the error propagates with the identity
// already created server-side; the not-found fallback in the profile load
// reconciles it on the next sign-in.
func (m *Manager) SignUp(ctx context.Context, data SignUpData) (Identity, error) {
	if err := data.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	identity, err := m.provider.CreateAccount(ctx, data.Email, data.Password)
	if err != nil {
		return nil, MapProviderError(err)
	}

	if err := m.provider.UpdateDisplayName(ctx, data.Name); err != nil {
		return identity, MapProviderError(err)
	}

	role := data.Role
	if role == "" {
		role = RoleAgente
	}

	now := time.Now()
	profile := &Profile{
		ID:            identity.ID(),
		Name:          data.Name,
		Email:         data.Email,
		CPFHash:       HashCPF(data.CPF),
		Role:          role,
		IBGEMunicipio: data.IBGEMunicipio,
		Equipes:       []string{},
		CNESUnidades:  []string{},
		Active:        true,
		CreatedAt:     &now,
	}

	if err := m.store.SetDocument(ctx, identity.ID(), profile); err != nil {
		return identity, err
	}

	if err := m.provider.SendVerificationEmail(ctx); err != nil {
		return identity, MapProviderError(err)
	}

	m.emit(ctx, ActivityEvent{
		EventType: ActivityEventSignUp,
		UserID:    identity.ID(),
		Metadata:  map[string]any{"email": data.Email, "role": role},
	})
	return identity, nil
}

// SignOut clears the provider session; the session store empties through
// the normal change-event path.
func (m *Manager) SignOut(ctx context.Context) error {
	identity := m.session.Identity()
	if err := m.provider.SignOut(ctx); err != nil {
		return MapProviderError(err)
	}
	if identity != nil {
		m.emit(ctx, ActivityEvent{EventType: ActivityEventSignOut, UserID: identity.ID()})
	}
	return nil
}

// UpdatePassword reauthenticates with the current credential, then changes
// the password. RequiresRecentLogin and WrongPassword surface as distinct
// mapped errors.
func (m *Manager) UpdatePassword(ctx context.Context, current, newPassword string) error {
	identity := m.session.Identity()
	if identity == nil {
		return ErrNotAuthenticated
	}

	if err := validatePasswordStrength(newPassword); err != nil {
		return invalidInput(err)
	}

	if err := m.provider.Reauthenticate(ctx, current); err != nil {
		return MapProviderError(err)
	}

	if err := m.provider.ChangePassword(ctx, newPassword); err != nil {
		return MapProviderError(err)
	}

	m.emit(ctx, ActivityEvent{EventType: ActivityEventPasswordChanged, UserID: identity.ID()})
	return nil
}

// ResetPassword requests a password-reset email for the address.
func (m *Manager) ResetPassword(ctx context.Context, email string) error {
	if err := ValidateEmail(email); err != nil {
		return invalidInput(err)
	}
	if err := m.provider.SendPasswordReset(ctx, email); err != nil {
		return MapProviderError(err)
	}
	m.emit(ctx, ActivityEvent{
		EventType: ActivityEventPasswordReset,
		Metadata:  map[string]any{"email": email},
	})
	return nil
}

// ResendVerification re-issues the verification email for the current
// session.
func (m *Manager) ResendVerification(ctx context.Context) error {
	if m.session.Identity() == nil {
		return ErrNotAuthenticated
	}
	if err := m.provider.SendVerificationEmail(ctx); err != nil {
		return MapProviderError(err)
	}
	return nil
}

// UpdateProfile writes partial fields through to the backend record,
// pushes a display-name change to the identity provider, then reloads the
// full profile rather than trusting the local merge.
func (m *Manager) UpdateProfile(ctx context.Context, update ProfileUpdate) error {
	identity := m.session.Identity()
	if identity == nil {
		return ErrNotAuthenticated
	}

	if err := m.store.UpdateDocument(ctx, identity.ID(), update); err != nil {
		return err
	}

	if update.Name != nil && *update.Name != identity.DisplayName() {
		if err := m.provider.UpdateDisplayName(ctx, *update.Name); err != nil {
			return MapProviderError(err)
		}
	}

	m.eventMu.Lock()
	err := m.loadProfile(ctx, identity)
	m.eventMu.Unlock()
	if err != nil {
		return err
	}

	m.emit(ctx, ActivityEvent{EventType: ActivityEventProfileUpdated, UserID: identity.ID()})
	return nil
}

// HasPermission checks the current profile's role against the static
// allow-list. False, never an error, when no session or profile exists.
func (m *Manager) HasPermission(name PermissionName) bool {
	profile := m.session.Profile()
	if profile == nil {
		return false
	}
	return RoleHasPermission(profile.Role, name)
}

// CanAccessMunicipality applies the region rule for the current profile.
func (m *Manager) CanAccessMunicipality(ibgeCode string) bool {
	profile := m.session.Profile()
	if profile == nil {
		return false
	}
	return RoleCanAccessMunicipality(profile.Role, profile.IBGEMunicipio, ibgeCode)
}

// OnAuthStateChange registers a listener and returns its unregister
// operation. If a session is already established the listener is invoked
// synchronously with the current identity before this call returns, so
// late subscribers never miss the signed-in state.
func (m *Manager) OnAuthStateChange(listener AuthListener) (unsubscribe func()) {
	// registration is serialized with provider event handling: a listener
	// arriving while an event is mid-flight waits the event out, so it is
	// excluded from that event's fan-out and the replay below is its only
	// delivery of the settled state
	m.eventMu.Lock()
	defer m.eventMu.Unlock()

	m.listenerMu.Lock()
	m.nextHandle++
	handle := m.nextHandle
	m.listeners = append(m.listeners, listenerEntry{id: handle, fn: listener})
	m.listenerMu.Unlock()

	if identity := m.session.Identity(); identity != nil {
		m.deliver(listenerEntry{id: handle, fn: listener}, identity)
	}

	return func() {
		m.listenerMu.Lock()
		defer m.listenerMu.Unlock()
		for i, entry := range m.listeners {
			if entry.id == handle {
				m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}

// notify delivers the identity to every listener in registration order. A
// listener failure is isolated so delivery continues.
func (m *Manager) notify(identity Identity) {
	m.listenerMu.Lock()
	entries := make([]listenerEntry, len(m.listeners))
	copy(entries, m.listeners)
	m.listenerMu.Unlock()

	for _, entry := range entries {
		m.deliver(entry, identity)
	}
}

func (m *Manager) deliver(entry listenerEntry, identity Identity) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("auth state listener %d panicked: %v", entry.id, r)
		}
	}()
	entry.fn(identity)
}

func (m *Manager) emit(ctx context.Context, event ActivityEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	if err := m.sink.Record(ctx, event); err != nil {
		m.logger.Error("activity sink record failed for %s: %v", event.EventType, err)
	}
}

// State exposes the session lifecycle state.
func (m *Manager) State() AuthState { return m.session.State() }

// IsAuthenticated reports an established provider session.
func (m *Manager) IsAuthenticated() bool { return m.session.IsAuthenticated() }

// Identity returns the current provider handle, nil without a session.
func (m *Manager) Identity() Identity { return m.session.Identity() }

// Profile returns a snapshot of the current profile, nil when not loaded.
func (m *Manager) Profile() *Profile { return m.session.Profile() }

// Role returns the current profile role, empty without a profile.
func (m *Manager) Role() UserRole {
	if p := m.session.Profile(); p != nil {
		return p.Role
	}
	return ""
}

// Municipality returns the current profile's IBGE code, empty without one.
func (m *Manager) Municipality() string {
	if p := m.session.Profile(); p != nil {
		return p.IBGEMunicipio
	}
	return ""
}
