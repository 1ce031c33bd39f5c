package idosoms_test

import (
	"context"
	"sync"

	goerrors "github.com/goliatone/go-errors"

	idosoms "github.com/joaopanucci/IdosoMS"
)

func notFoundErr() error {
	return goerrors.New("profile document not found", goerrors.CategoryNotFound).
		WithCode(goerrors.CodeNotFound)
}

// testIdentity is a plain Identity implementation for tests.
type testIdentity struct {
	id            string
	email         string
	displayName   string
	emailVerified bool
}

func (t testIdentity) ID() string          { return t.id }
func (t testIdentity) Email() string       { return t.email }
func (t testIdentity) DisplayName() string { return t.displayName }
func (t testIdentity) EmailVerified() bool { return t.emailVerified }

func verifiedIdentity() testIdentity {
	return testIdentity{
		id:            "user-1",
		email:         "ana@example.com",
		displayName:   "Ana Lima",
		emailVerified: true,
	}
}

// fakeProvider scripts an IdentityProvider and records calls. The emit
// method simulates the provider's auth-change stream.
type fakeProvider struct {
	mu sync.Mutex

	signInIdentity idosoms.Identity
	signInErr      error
	createIdentity idosoms.Identity
	createErr      error
	signOutErr     error
	reauthErr      error
	changeErr      error
	resetErr       error
	verifyErr      error
	displayErr     error

	signInCalls  []string
	signOutCalls int
	displayNames []string
	resetEmails  []string
	verifyCalls  int

	subscriber idosoms.AuthChangeFunc
}

var _ idosoms.IdentityProvider = (*fakeProvider)(nil)

func (f *fakeProvider) SignInWithPassword(_ context.Context, email, _ string) (idosoms.Identity, error) {
	f.mu.Lock()
	f.signInCalls = append(f.signInCalls, email)
	f.mu.Unlock()
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return f.signInIdentity, nil
}

func (f *fakeProvider) CreateAccount(_ context.Context, _, _ string) (idosoms.Identity, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createIdentity, nil
}

func (f *fakeProvider) SignOut(context.Context) error {
	f.mu.Lock()
	f.signOutCalls++
	f.mu.Unlock()
	return f.signOutErr
}

func (f *fakeProvider) SendVerificationEmail(context.Context) error {
	f.mu.Lock()
	f.verifyCalls++
	f.mu.Unlock()
	return f.verifyErr
}

func (f *fakeProvider) SendPasswordReset(_ context.Context, email string) error {
	f.mu.Lock()
	f.resetEmails = append(f.resetEmails, email)
	f.mu.Unlock()
	return f.resetErr
}

func (f *fakeProvider) ChangePassword(context.Context, string) error {
	return f.changeErr
}

func (f *fakeProvider) Reauthenticate(context.Context, string) error {
	return f.reauthErr
}

func (f *fakeProvider) UpdateDisplayName(_ context.Context, name string) error {
	f.mu.Lock()
	f.displayNames = append(f.displayNames, name)
	f.mu.Unlock()
	return f.displayErr
}

func (f *fakeProvider) SubscribeToAuthChanges(fn idosoms.AuthChangeFunc) (func(), error) {
	f.subscriber = fn
	return func() { f.subscriber = nil }, nil
}

// emit pushes an auth change to the manager the way a real provider would.
func (f *fakeProvider) emit(identity idosoms.Identity) {
	if f.subscriber != nil {
		f.subscriber(identity)
	}
}

func (f *fakeProvider) signOutCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signOutCalls
}

// fakeStore is an in-memory ProfileStore with programmable failures.
type fakeStore struct {
	mu       sync.Mutex
	profiles map[string]*idosoms.Profile

	getErr      error
	getFailures int
	setErr      error
	updateErr   error

	// when set, GetDocument announces entry on getStarted and then
	// parks until blockGet is closed
	getStarted chan struct{}
	blockGet   chan struct{}

	getCalls    int
	lastSet     *idosoms.Profile
	lastUpdate  idosoms.ProfileUpdate
	updateCalls int
}

var _ idosoms.ProfileStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{profiles: map[string]*idosoms.Profile{}}
}

func (f *fakeStore) GetDocument(_ context.Context, id string) (*idosoms.Profile, error) {
	if f.getStarted != nil {
		f.getStarted <- struct{}{}
	}
	if f.blockGet != nil {
		<-f.blockGet
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getFailures > 0 {
		f.getFailures--
		return nil, f.getErr
	}
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.profiles[id]
	if !ok {
		return nil, notFoundErr()
	}
	return p.Clone(), nil
}

func (f *fakeStore) SetDocument(_ context.Context, id string, profile *idosoms.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.profiles[id] = profile.Clone()
	f.lastSet = profile.Clone()
	return nil
}

func (f *fakeStore) UpdateDocument(_ context.Context, id string, update idosoms.ProfileUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	f.lastUpdate = update
	if f.updateErr != nil {
		return f.updateErr
	}
	p, ok := f.profiles[id]
	if !ok {
		return notFoundErr()
	}
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.IBGEMunicipio != nil {
		p.IBGEMunicipio = *update.IBGEMunicipio
	}
	if update.MunicipioNome != nil {
		p.MunicipioNome = *update.MunicipioNome
	}
	if update.Equipes != nil {
		p.Equipes = append([]string(nil), (*update.Equipes)...)
	}
	if update.CNESUnidades != nil {
		p.CNESUnidades = append([]string(nil), (*update.CNESUnidades)...)
	}
	if update.Active != nil {
		p.Active = *update.Active
	}
	return nil
}

// collectSink gathers emitted activity events.
type collectSink struct {
	mu     sync.Mutex
	events []idosoms.ActivityEvent
}

func (c *collectSink) Record(_ context.Context, event idosoms.ActivityEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *collectSink) byType(t idosoms.ActivityEventType) []idosoms.ActivityEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []idosoms.ActivityEvent
	for _, e := range c.events {
		if e.EventType == t {
			out = append(out, e)
		}
	}
	return out
}
