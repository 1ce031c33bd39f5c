package idosoms

import "sync"

// AuthState is the session lifecycle state
type AuthState = string

const (
	// StateUnknown holds until the first provider event arrives
	StateUnknown AuthState = "unknown"
	// StateAuthenticated means the provider reported a signed-in identity
	StateAuthenticated AuthState = "authenticated"
	// StateUnauthenticated means the provider session ended or never existed
	StateUnauthenticated AuthState = "unauthenticated"
)

// SessionStore holds the current identity and its denormalized profile.
// The identity is a read-only reference replaced wholesale on every auth
// event; the profile is cleared atomically with it.
type SessionStore struct {
	mu       sync.RWMutex
	state    AuthState
	identity Identity
	profile  *Profile
}

func NewSessionStore() *SessionStore {
	return &SessionStore{state: StateUnknown}
}

// State returns the current lifecycle state.
func (s *SessionStore) State() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsAuthenticated reports an established provider session.
func (s *SessionStore) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// Identity returns the current provider handle, nil when no session exists.
func (s *SessionStore) Identity() Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// Profile returns a read-only snapshot of the current profile, nil when no
// profile is loaded.
func (s *SessionStore) Profile() *Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Clone()
}

// SetAuthenticated replaces the identity and drops any stale profile. The
// profile for the new identity is attached separately once loaded.
func (s *SessionStore) SetAuthenticated(identity Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAuthenticated
	s.identity = identity
	s.profile = nil
}

// SetProfile attaches the loaded profile to the current session. It is a
// no-op when the session is no longer authenticated, which guards a slow
// profile load finishing after sign-out.
func (s *SessionStore) SetProfile(p *Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated {
		return
	}
	s.profile = p
}

// Clear transitions to Unauthenticated, dropping identity and profile in
// the same critical section.
func (s *SessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateUnauthenticated
	s.identity = nil
	s.profile = nil
}
