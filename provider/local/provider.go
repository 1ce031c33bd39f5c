// Package local implements the shell's IdentityProvider contract on top of
// an embedded account table: bun persistence, bcrypt credentials, signed
// single-purpose action tokens, and per-identifier sign-in rate limiting.
// It keeps a stateful client session like the remote provider it stands in
// for: sign-in/sign-out mutate the current identity and every change is
// delivered, serialized, to auth-change subscribers.
package local

import (
	"context"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	idosoms "github.com/joaopanucci/IdosoMS"
)

const (
	defaultBcryptCost     = 14
	defaultReauthWindow   = 5 * time.Minute
	defaultActionTokenTTL = 24 * time.Hour
	defaultRatePerMinute  = 10
	defaultRateBurst      = 5

	// minPasswordLength is the provider-level floor; the application
	// enforces its stronger policy before ever reaching us.
	minPasswordLength = 8
)

type session struct {
	identity   accountIdentity
	lastAuthAt time.Time
}

// Provider is a stateful IdentityProvider backed by bun.
type Provider struct {
	db       *bun.DB
	accounts repository.Repository[*Account]
	tokens   *tokenService
	mailer   Mailer
	logger   idosoms.Logger

	bcryptCost   int
	reauthWindow time.Duration

	ratePerMin int
	rateBurst  int
	limiterMu  sync.Mutex
	limiters   map[string]*rate.Limiter

	mu      sync.RWMutex
	current *session

	subMu   sync.Mutex
	nextSub uint64
	subs    map[uint64]idosoms.AuthChangeFunc

	// emitMu guarantees at most one in-flight auth-change delivery.
	emitMu sync.Mutex
}

var _ idosoms.IdentityProvider = (*Provider)(nil)

// New builds a provider over db. signingKey signs the action tokens
// embedded in verification and reset emails.
func New(db *bun.DB, signingKey []byte) *Provider {
	logger := idosoms.DefaultLogger()
	return &Provider{
		db:           db,
		accounts:     NewAccountsRepository(db),
		tokens:       newTokenService(signingKey, defaultActionTokenTTL, logger),
		mailer:       logMailer{logger: logger},
		logger:       logger,
		bcryptCost:   defaultBcryptCost,
		reauthWindow: defaultReauthWindow,
		ratePerMin:   defaultRatePerMinute,
		rateBurst:    defaultRateBurst,
		limiters:     map[string]*rate.Limiter{},
		subs:         map[uint64]idosoms.AuthChangeFunc{},
	}
}

func (p *Provider) WithLogger(logger idosoms.Logger) *Provider {
	if logger != nil {
		p.logger = logger
		p.tokens.logger = logger
	}
	return p
}

func (p *Provider) WithMailer(mailer Mailer) *Provider {
	if mailer != nil {
		p.mailer = mailer
	}
	return p
}

// WithBcryptCost overrides the hash cost; tests use bcrypt.MinCost.
func (p *Provider) WithBcryptCost(cost int) *Provider {
	if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
		p.bcryptCost = cost
	}
	return p
}

// WithReauthWindow sets how long a Reauthenticate grants access to
// sensitive operations.
func (p *Provider) WithReauthWindow(window time.Duration) *Provider {
	if window > 0 {
		p.reauthWindow = window
	}
	return p
}

// WithRateLimit sets the per-identifier sign-in budget.
func (p *Provider) WithRateLimit(perMinute, burst int) *Provider {
	if perMinute > 0 && burst > 0 {
		p.ratePerMin = perMinute
		p.rateBurst = burst
	}
	return p
}

// WithActionTokenTTL sets the validity of verification/reset tokens.
func (p *Provider) WithActionTokenTTL(ttl time.Duration) *Provider {
	if ttl > 0 {
		p.tokens.ttl = ttl
	}
	return p
}

// EnsureSchema creates the accounts table if missing.
func (p *Provider) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, AccountSchemaSQL); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create accounts schema")
	}
	return nil
}

func (p *Provider) limiter(email string) *rate.Limiter {
	p.limiterMu.Lock()
	defer p.limiterMu.Unlock()
	lim, ok := p.limiters[email]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(float64(p.ratePerMin)/60.0), p.rateBurst)
		p.limiters[email] = lim
	}
	return lim
}

// SignInWithPassword verifies the credential and establishes the client
// session. Rate limiting applies per identifier before the store lookup.
func (p *Provider) SignInWithPassword(ctx context.Context, email, password string) (idosoms.Identity, error) {
	if !p.limiter(email).Allow() {
		return nil, idosoms.NewProviderError(idosoms.CodeRateLimited, "too many sign-in attempts")
	}

	account, err := p.accounts.GetByIdentifier(ctx, email)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return nil, idosoms.NewProviderError(idosoms.CodeUserNotFound, "no account for identifier")
		}
		return nil, idosoms.NewProviderError(idosoms.CodeNetworkFailure, err.Error())
	}

	if account.Disabled {
		return nil, idosoms.NewProviderError(idosoms.CodeUserDisabled, "account disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, idosoms.NewProviderError(idosoms.CodeWrongPassword, "credential mismatch")
	}

	identity := identityFromAccount(account)
	p.mu.Lock()
	p.current = &session{identity: identity, lastAuthAt: time.Now()}
	p.mu.Unlock()

	p.emit(identity)
	return identity, nil
}

// CreateAccount registers a new identity and signs it in, mirroring the
// remote provider's create-then-session behavior.
func (p *Provider) CreateAccount(ctx context.Context, email, password string) (idosoms.Identity, error) {
	if err := idosoms.ValidateEmail(email); err != nil {
		return nil, idosoms.NewProviderError(idosoms.CodeInvalidEmail, "malformed email address")
	}
	if len(password) < minPasswordLength {
		return nil, idosoms.NewProviderError(idosoms.CodeWeakPassword, "password below minimum length")
	}

	if _, err := p.accounts.GetByIdentifier(ctx, email); err == nil {
		return nil, idosoms.NewProviderError(idosoms.CodeEmailAlreadyInUse, "email already registered")
	} else if !goerrors.IsNotFound(err) {
		return nil, idosoms.NewProviderError(idosoms.CodeNetworkFailure, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.bcryptCost)
	if err != nil {
		return nil, idosoms.NewProviderError(idosoms.CodeWeakPassword, err.Error())
	}

	id, err := hashid.NewUUID(email)
	if err != nil {
		id = uuid.New()
	}

	now := time.Now()
	account := &Account{
		ID:           id,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    &now,
	}
	if account, err = p.accounts.Create(ctx, account); err != nil {
		return nil, idosoms.NewProviderError(idosoms.CodeNetworkFailure, err.Error())
	}

	identity := identityFromAccount(account)
	p.mu.Lock()
	p.current = &session{identity: identity, lastAuthAt: now}
	p.mu.Unlock()

	p.emit(identity)
	return identity, nil
}

// SignOut drops the client session and notifies subscribers.
func (p *Provider) SignOut(context.Context) error {
	p.mu.Lock()
	had := p.current != nil
	p.current = nil
	p.mu.Unlock()

	if had {
		p.emit(nil)
	}
	return nil
}

// SendVerificationEmail mints a verify-email token for the current
// session and hands it to the mailer.
func (p *Provider) SendVerificationEmail(ctx context.Context) error {
	sess, err := p.requireSession()
	if err != nil {
		return err
	}

	token, err := p.tokens.mint(sess.identity.id, purposeVerifyEmail)
	if err != nil {
		return idosoms.NewProviderError(idosoms.CodeNetworkFailure, err.Error())
	}
	if err := p.mailer.SendVerificationEmail(ctx, sess.identity.email, token); err != nil {
		return idosoms.NewProviderError(idosoms.CodeNetworkFailure, err.Error())
	}
	return nil
}

// SendPasswordReset mints a reset token for the address and mails it.
func (p *Provider) SendPasswordReset(ctx context.Context, email string) error {
	account, err := p.accounts.GetByIdentifier(ctx, email)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return idosoms.NewProviderError(idosoms.CodeUserNotFound, "no account for identifier")
		}
		return idosoms.NewProviderError(idosoms.CodeNetworkFailure, err.Error())
	}

	token, err := p.tokens.mint(account.ID, purposeResetPassword)
	if err != nil {
		return idosoms.NewProviderError(idosoms.CodeNetworkFailure, err.Error())
	}
	if err := p.mailer.SendPasswordReset(ctx, email, token); err != nil {
		return idosoms.NewProviderError(idosoms.CodeNetworkFailure, err.Error())
	}
	return nil
}

// ChangePassword requires a recent Reauthenticate; stale sessions get
// requires-recent-login, matching the remote provider contract.
func (p *Provider) ChangePassword(ctx context.Context, newPassword string) error {
	sess, err := p.requireSession()
	if err != nil {
		return err
	}

	if time.Since(sess.lastAuthAt) > p.reauthWindow {
		return idosoms.NewProviderError(idosoms.CodeRequiresRecentLogin, "session too old for sensitive operation")
	}
	if len(newPassword) < minPasswordLength {
		return idosoms.NewProviderError(idosoms.CodeWeakPassword, "password below minimum length")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), p.bcryptCost)
	if err != nil {
		return idosoms.NewProviderError(idosoms.CodeWeakPassword, err.Error())
	}

	if err := p.updateAccount(ctx, sess.identity.id, func(acc *Account) []string {
		acc.PasswordHash = string(hash)
		return []string{"password_hash"}
	}); err != nil {
		return err
	}
	return nil
}

// Reauthenticate re-verifies the current credential and refreshes the
// recent-login window.
func (p *Provider) Reauthenticate(ctx context.Context, password string) error {
	sess, err := p.requireSession()
	if err != nil {
		return err
	}

	account, err := p.accounts.GetByIdentifier(ctx, sess.identity.email)
	if err != nil {
		return idosoms.NewProviderError(idosoms.CodeNetworkFailure, err.Error())
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return idosoms.NewProviderError(idosoms.CodeWrongPassword, "credential mismatch")
	}

	p.mu.Lock()
	if p.current != nil {
		p.current.lastAuthAt = time.Now()
	}
	p.mu.Unlock()
	return nil
}

// UpdateDisplayName writes the name on the account and the session
// snapshot.
func (p *Provider) UpdateDisplayName(ctx context.Context, name string) error {
	sess, err := p.requireSession()
	if err != nil {
		return err
	}

	if err := p.updateAccount(ctx, sess.identity.id, func(acc *Account) []string {
		acc.DisplayName = name
		return []string{"display_name"}
	}); err != nil {
		return err
	}

	p.mu.Lock()
	if p.current != nil {
		p.current.identity.displayName = name
	}
	p.mu.Unlock()
	return nil
}

// SubscribeToAuthChanges registers fn and delivers the current state to it
// immediately, the way the remote provider replays state on subscription.
func (p *Provider) SubscribeToAuthChanges(fn idosoms.AuthChangeFunc) (func(), error) {
	if fn == nil {
		return nil, goerrors.New("auth change callback must not be nil", goerrors.CategoryBadInput)
	}

	p.subMu.Lock()
	p.nextSub++
	id := p.nextSub
	p.subs[id] = fn
	p.subMu.Unlock()

	p.emitMu.Lock()
	p.mu.RLock()
	var current idosoms.Identity
	if p.current != nil {
		identity := p.current.identity
		current = identity
	}
	p.mu.RUnlock()
	fn(current)
	p.emitMu.Unlock()

	return func() {
		p.subMu.Lock()
		defer p.subMu.Unlock()
		delete(p.subs, id)
	}, nil
}

// VerifyEmail consumes a verify-email action token and flips the flag.
func (p *Provider) VerifyEmail(ctx context.Context, token string) error {
	id, err := p.tokens.validate(token, purposeVerifyEmail)
	if err != nil {
		return err
	}

	if err := p.updateAccount(ctx, id, func(acc *Account) []string {
		acc.EmailVerified = true
		return []string{"is_email_verified"}
	}); err != nil {
		return err
	}

	p.mu.Lock()
	if p.current != nil && p.current.identity.id == id {
		p.current.identity.emailVerified = true
	}
	p.mu.Unlock()
	return nil
}

// ConfirmPasswordReset consumes a reset token and installs the new
// password.
func (p *Provider) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	id, err := p.tokens.validate(token, purposeResetPassword)
	if err != nil {
		return err
	}
	if len(newPassword) < minPasswordLength {
		return idosoms.NewProviderError(idosoms.CodeWeakPassword, "password below minimum length")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), p.bcryptCost)
	if err != nil {
		return idosoms.NewProviderError(idosoms.CodeWeakPassword, err.Error())
	}

	return p.updateAccount(ctx, id, func(acc *Account) []string {
		acc.PasswordHash = string(hash)
		return []string{"password_hash"}
	})
}

// CurrentIdentity exposes the client session, mainly for tests.
func (p *Provider) CurrentIdentity() idosoms.Identity {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == nil {
		return nil
	}
	identity := p.current.identity
	return identity
}

func (p *Provider) requireSession() (session, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == nil {
		return session{}, idosoms.NewProviderError(idosoms.CodeUserNotFound, "no current session")
	}
	return *p.current, nil
}

func (p *Provider) updateAccount(ctx context.Context, id uuid.UUID, mutate func(*Account) []string) error {
	now := time.Now()
	account := &Account{ID: id, UpdatedAt: &now}
	columns := append(mutate(account), "updated_at")

	res, err := p.db.NewUpdate().
		Model(account).
		Column(columns...).
		Where("id = ?", id.String()).
		Exec(ctx)
	if err != nil {
		return idosoms.NewProviderError(idosoms.CodeNetworkFailure, err.Error())
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return idosoms.NewProviderError(idosoms.CodeUserNotFound, "no account for id")
	}
	return nil
}

// emit delivers the change to every subscriber, one delivery in flight at
// a time, registration order.
func (p *Provider) emit(identity idosoms.Identity) {
	p.emitMu.Lock()
	defer p.emitMu.Unlock()

	p.subMu.Lock()
	subs := make([]idosoms.AuthChangeFunc, 0, len(p.subs))
	for id := uint64(1); id <= p.nextSub; id++ {
		if fn, ok := p.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	p.subMu.Unlock()

	for _, fn := range subs {
		fn(identity)
	}
}

type accountIdentity struct {
	id            uuid.UUID
	email         string
	displayName   string
	emailVerified bool
}

var _ idosoms.Identity = accountIdentity{}

func (a accountIdentity) ID() string          { return a.id.String() }
func (a accountIdentity) Email() string       { return a.email }
func (a accountIdentity) DisplayName() string { return a.displayName }
func (a accountIdentity) EmailVerified() bool { return a.emailVerified }

func identityFromAccount(account *Account) accountIdentity {
	return accountIdentity{
		id:            account.ID,
		email:         account.Email,
		displayName:   account.DisplayName,
		emailVerified: account.EmailVerified,
	}
}
