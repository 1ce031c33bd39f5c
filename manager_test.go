package idosoms_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	idosoms "github.com/joaopanucci/IdosoMS"
)

func newTestManager(t *testing.T, provider *fakeProvider, store *fakeStore) *idosoms.Manager {
	t.Helper()
	manager := idosoms.NewManager(provider, store)
	require.NoError(t, manager.Initialize())
	t.Cleanup(manager.Shutdown)
	return manager
}

func TestManagerLifecycle(t *testing.T) {
	provider := &fakeProvider{}
	store := newFakeStore()
	manager := newTestManager(t, provider, store)

	assert.Equal(t, idosoms.StateUnknown, manager.State())
	assert.False(t, manager.IsAuthenticated())

	identity := verifiedIdentity()
	provider.emit(identity)

	assert.Equal(t, idosoms.StateAuthenticated, manager.State())
	assert.True(t, manager.IsAuthenticated())
	require.NotNil(t, manager.Identity())
	assert.Equal(t, identity.ID(), manager.Identity().ID())

	provider.emit(nil)

	assert.Equal(t, idosoms.StateUnauthenticated, manager.State())
	assert.Nil(t, manager.Identity())
	assert.Nil(t, manager.Profile())
}

func TestManagerInitializeIdempotent(t *testing.T) {
	provider := &fakeProvider{}
	manager := idosoms.NewManager(provider, newFakeStore())
	require.NoError(t, manager.Initialize())
	require.NoError(t, manager.Initialize())
	manager.Shutdown()
	assert.Nil(t, provider.subscriber)
}

func TestSignInValidationBeforeNetwork(t *testing.T) {
	provider := &fakeProvider{}
	manager := newTestManager(t, provider, newFakeStore())

	_, err := manager.SignIn(context.Background(), "not-an-email", "pass")
	require.Error(t, err)
	assert.True(t, idosoms.IsInvalidInput(err))
	assert.Empty(t, provider.signInCalls, "validation failure must not reach the provider")

	_, err = manager.SignIn(context.Background(), "ana@example.com", "")
	require.Error(t, err)
	assert.True(t, idosoms.IsInvalidInput(err))
	assert.Empty(t, provider.signInCalls)
}

func TestSignInUnverifiedEmail(t *testing.T) {
	identity := verifiedIdentity()
	identity.emailVerified = false
	provider := &fakeProvider{signInIdentity: identity}
	sink := &collectSink{}
	manager := idosoms.NewManager(provider, newFakeStore()).WithActivitySink(sink)
	require.NoError(t, manager.Initialize())
	defer manager.Shutdown()

	_, err := manager.SignIn(context.Background(), "ana@example.com", "Senha123!")
	require.ErrorIs(t, err, idosoms.ErrEmailNotVerified)
	assert.Equal(t, 1, provider.signOutCount(), "provider session must be torn down")
	assert.Len(t, sink.byType(idosoms.ActivityEventSignInFailure), 1)
	assert.False(t, manager.IsAuthenticated())
}

func TestSignInProviderErrorMapping(t *testing.T) {
	provider := &fakeProvider{
		signInErr: idosoms.NewProviderError(idosoms.CodeWrongPassword, "credential mismatch"),
	}
	sink := &collectSink{}
	manager := idosoms.NewManager(provider, newFakeStore()).WithActivitySink(sink)
	require.NoError(t, manager.Initialize())
	defer manager.Shutdown()

	_, err := manager.SignIn(context.Background(), "ana@example.com", "Senha123!")
	require.Error(t, err)
	assert.True(t, idosoms.IsProviderCode(err, idosoms.CodeWrongPassword))
	assert.Contains(t, err.Error(), "Senha incorreta")
	assert.Len(t, sink.byType(idosoms.ActivityEventSignInFailure), 1)
}

func TestSignInSuccess(t *testing.T) {
	identity := verifiedIdentity()
	provider := &fakeProvider{signInIdentity: identity}
	sink := &collectSink{}
	manager := idosoms.NewManager(provider, newFakeStore()).WithActivitySink(sink)
	require.NoError(t, manager.Initialize())
	defer manager.Shutdown()

	got, err := manager.SignIn(context.Background(), "ana@example.com", "Senha123!")
	require.NoError(t, err)
	assert.Equal(t, identity.ID(), got.ID())
	assert.Len(t, sink.byType(idosoms.ActivityEventSignInSuccess), 1)
}

func TestProfileLoadNotFoundUsesDefaults(t *testing.T) {
	provider := &fakeProvider{}
	store := newFakeStore()
	manager := newTestManager(t, provider, store)

	provider.emit(verifiedIdentity())

	profile := manager.Profile()
	require.NotNil(t, profile)
	assert.Equal(t, idosoms.RoleAgente, profile.Role)
	assert.True(t, profile.Active)
	assert.Equal(t, "Ana Lima", profile.Name)
	assert.Equal(t, 1, store.getCalls, "not-found is terminal, no retry")
}

func TestProfileLoadRetriesThenGivesUp(t *testing.T) {
	provider := &fakeProvider{}
	store := newFakeStore()
	store.getErr = errors.New("backend unavailable")
	manager := newTestManager(t, provider, store)

	provider.emit(verifiedIdentity())

	// session survives the failed load
	assert.True(t, manager.IsAuthenticated())
	assert.Nil(t, manager.Profile())
	assert.Equal(t, 3, store.getCalls)
}

func TestReloadProfileRecovers(t *testing.T) {
	provider := &fakeProvider{}
	store := newFakeStore()
	store.getErr = errors.New("backend unavailable")
	manager := newTestManager(t, provider, store)

	identity := verifiedIdentity()
	provider.emit(identity)
	require.Nil(t, manager.Profile())

	store.getErr = nil
	store.profiles[identity.ID()] = &idosoms.Profile{
		ID:   identity.ID(),
		Name: "Ana Lima",
		Role: idosoms.RoleCoord,
	}

	require.NoError(t, manager.ReloadProfile(context.Background()))
	profile := manager.Profile()
	require.NotNil(t, profile)
	assert.Equal(t, idosoms.RoleCoord, profile.Role)
}

func TestReloadProfileRequiresSession(t *testing.T) {
	manager := newTestManager(t, &fakeProvider{}, newFakeStore())
	err := manager.ReloadProfile(context.Background())
	assert.ErrorIs(t, err, idosoms.ErrNotAuthenticated)
}

func TestSignUpCreatesProfileAndSendsVerification(t *testing.T) {
	identity := testIdentity{id: "user-2", email: "joao@example.com"}
	provider := &fakeProvider{createIdentity: identity}
	store := newFakeStore()
	sink := &collectSink{}
	manager := idosoms.NewManager(provider, store).WithActivitySink(sink)
	require.NoError(t, manager.Initialize())
	defer manager.Shutdown()

	got, err := manager.SignUp(context.Background(), idosoms.SignUpData{
		Name:     "João Pereira",
		Email:    "joao@example.com",
		Password: "Senha123!",
		CPF:      "529.982.247-25",
		Role:     idosoms.RoleCoord,
	})
	require.NoError(t, err)
	assert.Equal(t, identity.ID(), got.ID())

	require.NotNil(t, store.lastSet)
	assert.Equal(t, idosoms.RoleCoord, store.lastSet.Role)
	assert.Equal(t, idosoms.HashCPF("52998224725"), store.lastSet.CPFHash)
	assert.True(t, store.lastSet.Active)
	assert.Equal(t, []string{"João Pereira"}, provider.displayNames)
	assert.Equal(t, 1, provider.verifyCalls)
	assert.Len(t, sink.byType(idosoms.ActivityEventSignUp), 1)
}

func TestSignUpDefaultsRoleToAgente(t *testing.T) {
	provider := &fakeProvider{createIdentity: testIdentity{id: "user-3", email: "x@example.com"}}
	store := newFakeStore()
	manager := newTestManager(t, provider, store)

	_, err := manager.SignUp(context.Background(), idosoms.SignUpData{
		Name:     "Maria Silva",
		Email:    "x@example.com",
		Password: "Senha123!",
	})
	require.NoError(t, err)
	assert.Equal(t, idosoms.RoleAgente, store.lastSet.Role)
}

func TestSignUpPartialFailureReturnsIdentity(t *testing.T) {
	identity := testIdentity{id: "user-4", email: "y@example.com"}
	provider := &fakeProvider{createIdentity: identity}
	store := newFakeStore()
	store.setErr = errors.New("store offline")
	manager := newTestManager(t, provider, store)

	got, err := manager.SignUp(context.Background(), idosoms.SignUpData{
		Name:     "Pedro Alves",
		Email:    "y@example.com",
		Password: "Senha123!",
	})
	require.Error(t, err)
	require.NotNil(t, got, "identity already exists server-side")
	assert.Equal(t, identity.ID(), got.ID())
}

func TestSignUpValidationShortCircuits(t *testing.T) {
	provider := &fakeProvider{}
	manager := newTestManager(t, provider, newFakeStore())

	_, err := manager.SignUp(context.Background(), idosoms.SignUpData{
		Name:     "X",
		Email:    "invalid",
		Password: "fraca",
	})
	require.Error(t, err)
	assert.True(t, idosoms.IsInvalidInput(err))
}

func TestUpdatePasswordFlow(t *testing.T) {
	provider := &fakeProvider{}
	manager := newTestManager(t, provider, newFakeStore())

	err := manager.UpdatePassword(context.Background(), "old", "Nova123!")
	assert.ErrorIs(t, err, idosoms.ErrNotAuthenticated)

	provider.emit(verifiedIdentity())

	err = manager.UpdatePassword(context.Background(), "old", "fraca")
	require.Error(t, err)
	assert.True(t, idosoms.IsInvalidInput(err))

	provider.reauthErr = idosoms.NewProviderError(idosoms.CodeWrongPassword, "")
	err = manager.UpdatePassword(context.Background(), "wrong", "Nova123!")
	assert.True(t, idosoms.IsProviderCode(err, idosoms.CodeWrongPassword))

	provider.reauthErr = nil
	require.NoError(t, manager.UpdatePassword(context.Background(), "old", "Nova123!"))
}

func TestResetPassword(t *testing.T) {
	provider := &fakeProvider{}
	manager := newTestManager(t, provider, newFakeStore())

	err := manager.ResetPassword(context.Background(), "not-an-email")
	require.Error(t, err)
	assert.True(t, idosoms.IsInvalidInput(err))
	assert.Empty(t, provider.resetEmails)

	require.NoError(t, manager.ResetPassword(context.Background(), "ana@example.com"))
	assert.Equal(t, []string{"ana@example.com"}, provider.resetEmails)
}

func TestUpdateProfileReloadsFromStore(t *testing.T) {
	identity := verifiedIdentity()
	provider := &fakeProvider{}
	store := newFakeStore()
	store.profiles[identity.ID()] = &idosoms.Profile{
		ID:   identity.ID(),
		Name: "Ana Lima",
		Role: idosoms.RoleAgente,
	}
	manager := newTestManager(t, provider, store)
	provider.emit(identity)

	name := "Ana Lima Souza"
	ibge := "5002704"
	require.NoError(t, manager.UpdateProfile(context.Background(), idosoms.ProfileUpdate{
		Name:          &name,
		IBGEMunicipio: &ibge,
	}))

	profile := manager.Profile()
	require.NotNil(t, profile)
	assert.Equal(t, "Ana Lima Souza", profile.Name)
	assert.Equal(t, "5002704", profile.IBGEMunicipio)
	assert.Equal(t, []string{"Ana Lima Souza"}, provider.displayNames)
}

func TestUpdateProfileSkipsDisplayNameWhenUnchanged(t *testing.T) {
	identity := verifiedIdentity()
	provider := &fakeProvider{}
	store := newFakeStore()
	store.profiles[identity.ID()] = &idosoms.Profile{ID: identity.ID(), Name: "Ana Lima"}
	manager := newTestManager(t, provider, store)
	provider.emit(identity)

	name := identity.DisplayName()
	require.NoError(t, manager.UpdateProfile(context.Background(), idosoms.ProfileUpdate{Name: &name}))
	assert.Empty(t, provider.displayNames)
}

func TestHasPermissionWithoutProfile(t *testing.T) {
	manager := newTestManager(t, &fakeProvider{}, newFakeStore())
	assert.False(t, manager.HasPermission(idosoms.PermCreatePatient))
	assert.False(t, manager.CanAccessMunicipality("5002704"))
}

func TestHasPermissionByRole(t *testing.T) {
	identity := verifiedIdentity()
	provider := &fakeProvider{}
	store := newFakeStore()
	store.profiles[identity.ID()] = &idosoms.Profile{
		ID:            identity.ID(),
		Role:          idosoms.RoleCoord,
		IBGEMunicipio: "5002704",
	}
	manager := newTestManager(t, provider, store)
	provider.emit(identity)

	assert.True(t, manager.HasPermission(idosoms.PermCreateUser))
	assert.False(t, manager.HasPermission(idosoms.PermDeleteUser))
	assert.True(t, manager.CanAccessMunicipality("5002704"))
	assert.False(t, manager.CanAccessMunicipality("5008305"))
}

func TestOnAuthStateChangeReplayAndUnsubscribe(t *testing.T) {
	provider := &fakeProvider{}
	manager := newTestManager(t, provider, newFakeStore())

	identity := verifiedIdentity()
	provider.emit(identity)

	var calls []idosoms.Identity
	unsubscribe := manager.OnAuthStateChange(func(id idosoms.Identity) {
		calls = append(calls, id)
	})

	// synchronous replay of the established session, exactly once
	require.Len(t, calls, 1)
	assert.Equal(t, identity.ID(), calls[0].ID())

	provider.emit(nil)
	require.Len(t, calls, 2)
	assert.Nil(t, calls[1])

	unsubscribe()
	provider.emit(identity)
	assert.Len(t, calls, 2, "unsubscribed listener must not fire")
}

func TestListenerRegisteredMidEventDeliversOnce(t *testing.T) {
	provider := &fakeProvider{}
	store := newFakeStore()
	store.getStarted = make(chan struct{}, 1)
	store.blockGet = make(chan struct{})
	manager := newTestManager(t, provider, store)

	// an auth event stalled inside its profile load
	eventDone := make(chan struct{})
	go func() {
		provider.emit(verifiedIdentity())
		close(eventDone)
	}()
	<-store.getStarted

	var mu sync.Mutex
	var calls int
	registered := make(chan struct{})
	go func() {
		manager.OnAuthStateChange(func(idosoms.Identity) {
			mu.Lock()
			calls++
			mu.Unlock()
		})
		close(registered)
	}()

	// registration waits the in-flight event out instead of joining its fan-out
	select {
	case <-registered:
		t.Fatal("registration completed while an auth event was mid-flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(store.blockGet)
	select {
	case <-eventDone:
	case <-time.After(2 * time.Second):
		t.Fatal("auth event never finished")
	}
	select {
	case <-registered:
	case <-time.After(2 * time.Second):
		t.Fatal("registration never completed")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls, "replay must deliver the settled state exactly once")
}

func TestListenerPanicIsolated(t *testing.T) {
	provider := &fakeProvider{}
	manager := newTestManager(t, provider, newFakeStore())

	manager.OnAuthStateChange(func(idosoms.Identity) { panic("boom") })
	var called bool
	manager.OnAuthStateChange(func(idosoms.Identity) { called = true })

	provider.emit(verifiedIdentity())
	assert.True(t, called, "panic in one listener must not stop delivery")
	assert.True(t, manager.IsAuthenticated())
}

func TestSignOutEmitsEvent(t *testing.T) {
	provider := &fakeProvider{}
	sink := &collectSink{}
	manager := idosoms.NewManager(provider, newFakeStore()).WithActivitySink(sink)
	require.NoError(t, manager.Initialize())
	defer manager.Shutdown()

	provider.emit(verifiedIdentity())
	require.NoError(t, manager.SignOut(context.Background()))
	assert.Len(t, sink.byType(idosoms.ActivityEventSignOut), 1)
}
