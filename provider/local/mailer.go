package local

import (
	"context"

	idosoms "github.com/joaopanucci/IdosoMS"
)

// Mailer delivers the provider's action emails. The token is the signed
// single-purpose credential the recipient presents back to the provider.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, email, token string) error
	SendPasswordReset(ctx context.Context, email, token string) error
}

// logMailer is the default for development: it logs instead of sending.
type logMailer struct {
	logger idosoms.Logger
}

func (m logMailer) SendVerificationEmail(_ context.Context, email, token string) error {
	m.logger.Info("verification email to %s token=%s", email, token)
	return nil
}

func (m logMailer) SendPasswordReset(_ context.Context, email, token string) error {
	m.logger.Info("password reset email to %s token=%s", email, token)
	return nil
}
