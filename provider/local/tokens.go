package local

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	idosoms "github.com/joaopanucci/IdosoMS"
)

// Action token purposes. A token minted for one purpose never validates
// for another.
const (
	purposeVerifyEmail   = "verify-email"
	purposeResetPassword = "reset-password"
)

type actionClaims struct {
	jwt.RegisteredClaims
	Purpose string `json:"purpose"`
}

// tokenService mints and validates the signed single-purpose tokens the
// provider embeds in verification and reset emails.
type tokenService struct {
	signingKey []byte
	ttl        time.Duration
	issuer     string
	logger     idosoms.Logger
}

func newTokenService(signingKey []byte, ttl time.Duration, logger idosoms.Logger) *tokenService {
	if logger == nil {
		logger = idosoms.DefaultLogger()
	}
	return &tokenService{
		signingKey: signingKey,
		ttl:        ttl,
		issuer:     "idosoms.local",
		logger:     logger,
	}
}

func (ts *tokenService) mint(accountID uuid.UUID, purpose string) (string, error) {
	now := time.Now()
	claims := &actionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   accountID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
		},
		Purpose: purpose,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign action token")
	}
	return signed, nil
}

func (ts *tokenService) validate(tokenString, purpose string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &actionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("action token with unexpected signing method: %v", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, jwt.WithIssuer(ts.issuer))
	if err != nil {
		return uuid.Nil, goerrors.Wrap(err, goerrors.CategoryAuth, "invalid action token")
	}

	claims, ok := token.Claims.(*actionClaims)
	if !ok || !token.Valid {
		return uuid.Nil, goerrors.New("invalid action token claims", goerrors.CategoryAuth)
	}
	if claims.Purpose != purpose {
		return uuid.Nil, goerrors.New("action token purpose mismatch", goerrors.CategoryAuth)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, goerrors.Wrap(err, goerrors.CategoryAuth, "invalid action token subject")
	}
	return id, nil
}
