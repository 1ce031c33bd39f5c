package idosoms

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeEmailNotVerified = "auth_email_not_verified"
	textCodeNotAuthenticated = "auth_not_authenticated"
	textCodeInvalidInput     = "auth_invalid_input"
	textCodeProfileLoad      = "auth_profile_load_failed"
	textCodeSubscription     = "auth_subscription_failed"
)

// ErrEmailNotVerified is returned by SignIn when the credential check
// succeeded but the identity's email was never verified. The session is not
// established in that case.
var ErrEmailNotVerified = goerrors.New("email não verificado. Verifique sua caixa de entrada", goerrors.CategoryAuth).
	WithTextCode(textCodeEmailNotVerified).
	WithCode(goerrors.CodeForbidden)

// ErrNotAuthenticated is returned by operations that require an active
// session when none exists.
var ErrNotAuthenticated = goerrors.New("usuário não autenticado", goerrors.CategoryAuth).
	WithTextCode(textCodeNotAuthenticated).
	WithCode(goerrors.CodeUnauthorized)

// ProviderCode identifies a failure class reported by the identity
// provider. The set is fixed; anything outside it falls through
// MapProviderError with its raw message.
type ProviderCode string

const (
	CodeUserNotFound        ProviderCode = "user-not-found"
	CodeWrongPassword       ProviderCode = "wrong-password"
	CodeEmailAlreadyInUse   ProviderCode = "email-already-in-use"
	CodeWeakPassword        ProviderCode = "weak-password"
	CodeInvalidEmail        ProviderCode = "invalid-email"
	CodeUserDisabled        ProviderCode = "user-disabled"
	CodeRateLimited         ProviderCode = "rate-limited"
	CodeNetworkFailure      ProviderCode = "network-failure"
	CodeRequiresRecentLogin ProviderCode = "requires-recent-login"
)

// ProviderError is the error shape every IdentityProvider implementation
// reports operational failures with.
type ProviderError struct {
	Code    ProviderCode
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// NewProviderError builds a ProviderError with the provider's raw message.
func NewProviderError(code ProviderCode, message string) *ProviderError {
	return &ProviderError{Code: code, Message: message}
}

// providerMessages is the fixed user-presentable translation table. The
// application surface is Brazilian Portuguese, so the messages are too.
var providerMessages = map[ProviderCode]string{
	CodeUserNotFound:        "Usuário não encontrado",
	CodeWrongPassword:       "Senha incorreta",
	CodeEmailAlreadyInUse:   "Email já está em uso",
	CodeWeakPassword:        "Senha muito fraca",
	CodeInvalidEmail:        "Email inválido",
	CodeUserDisabled:        "Usuário desabilitado",
	CodeRateLimited:         "Muitas tentativas. Tente novamente mais tarde",
	CodeNetworkFailure:      "Erro de conexão. Verifique sua internet",
	CodeRequiresRecentLogin: "Operação sensível. Faça login novamente",
}

// UserMessage resolves a ProviderCode to its presentable text; ok is false
// for codes outside the fixed table.
func UserMessage(code ProviderCode) (string, bool) {
	msg, ok := providerMessages[code]
	return msg, ok
}

// MapProviderError converts a provider failure into a single
// user-presentable auth error. Mapped codes use the fixed translation
// table; unmapped codes keep the provider's raw message. Non-provider
// errors are wrapped as internal so raw provider exceptions never escape
// the operation boundary.
func MapProviderError(err error) error {
	if err == nil {
		return nil
	}

	var perr *ProviderError
	if goerrors.As(err, &perr) {
		msg, ok := providerMessages[perr.Code]
		if !ok {
			msg = perr.Error()
		}
		return goerrors.Wrap(perr, goerrors.CategoryAuth, msg).
			WithTextCode("auth_provider_" + string(perr.Code))
	}

	return goerrors.Wrap(err, goerrors.CategoryInternal, "falha inesperada do provedor de identidade")
}

// IsProviderCode reports whether err carries the given provider code,
// before or after MapProviderError.
func IsProviderCode(err error, code ProviderCode) bool {
	var perr *ProviderError
	if goerrors.As(err, &perr) {
		return perr.Code == code
	}
	return false
}

// invalidInput wraps a local validation failure. No network call was made.
func invalidInput(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "dados inválidos").
		WithTextCode(textCodeInvalidInput).
		WithCode(goerrors.CodeBadRequest)
}

// IsInvalidInput reports whether err is a local validation failure raised
// before any provider/store side effect.
func IsInvalidInput(err error) bool {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.TextCode == textCodeInvalidInput
	}
	return false
}
