package local

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionTokenRoundTrip(t *testing.T) {
	ts := newTokenService([]byte("key"), time.Hour, nil)
	id := uuid.New()

	token, err := ts.mint(id, purposeVerifyEmail)
	require.NoError(t, err)

	got, err := ts.validate(token, purposeVerifyEmail)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestActionTokenPurposeMismatch(t *testing.T) {
	ts := newTokenService([]byte("key"), time.Hour, nil)

	token, err := ts.mint(uuid.New(), purposeResetPassword)
	require.NoError(t, err)

	_, err = ts.validate(token, purposeVerifyEmail)
	assert.Error(t, err)
}

func TestActionTokenExpired(t *testing.T) {
	ts := newTokenService([]byte("key"), -time.Minute, nil)

	token, err := ts.mint(uuid.New(), purposeVerifyEmail)
	require.NoError(t, err)

	_, err = ts.validate(token, purposeVerifyEmail)
	assert.Error(t, err)
}

func TestActionTokenWrongKey(t *testing.T) {
	minter := newTokenService([]byte("key-a"), time.Hour, nil)
	checker := newTokenService([]byte("key-b"), time.Hour, nil)

	token, err := minter.mint(uuid.New(), purposeVerifyEmail)
	require.NoError(t, err)

	_, err = checker.validate(token, purposeVerifyEmail)
	assert.Error(t, err)
}

func TestActionTokenGarbage(t *testing.T) {
	ts := newTokenService([]byte("key"), time.Hour, nil)
	_, err := ts.validate("not-a-jwt", purposeVerifyEmail)
	assert.Error(t, err)
}
