package auth

import (
	"strings"
	"testing"
	"time"

	"campuseats/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T, secret string) *jwtSessionSigner {
	t.Helper()

	cfg := &config.Config{}
	cfg.Env.ServiceName = "campuseats"
	cfg.Session.Secret = secret

	signer, err := NewJWTSessionSigner(cfg)
	require.NoError(t, err)

	return signer.(*jwtSessionSigner)
}

func TestJWTSessionSigner_SignAndVerify(t *testing.T) {
	signer := newTestSigner(t, "test_session_secret_key_for_testing")

	value, err := signer.Sign("3f1c0d9e-session", time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.NotContains(t, value, "3f1c0d9e-session")

	sid, err := signer.Verify(value)
	require.NoError(t, err)
	assert.Equal(t, "3f1c0d9e-session", sid)
}

func TestJWTSessionSigner_RejectsTamperedValue(t *testing.T) {
	signer := newTestSigner(t, "test_session_secret_key_for_testing")

	value, err := signer.Sign("sid-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	parts := strings.Split(value, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	_, err = signer.Verify(tampered)
	assert.Error(t, err)

	_, err = signer.Verify("not-a-jwt")
	assert.Error(t, err)
}

func TestJWTSessionSigner_RejectsOtherSecret(t *testing.T) {
	signer := newTestSigner(t, "test_session_secret_key_for_testing")
	other := newTestSigner(t, "another_secret_key_that_differs_xx")

	value, err := other.Sign("sid-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = signer.Verify(value)
	assert.Error(t, err)
}

func TestJWTSessionSigner_RejectsExpired(t *testing.T) {
	signer := newTestSigner(t, "test_session_secret_key_for_testing")
	issued := time.Now()
	signer.now = func() time.Time { return issued }

	value, err := signer.Sign("sid-1", issued.Add(time.Minute))
	require.NoError(t, err)

	signer.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = signer.Verify(value)
	assert.Error(t, err)
}

func TestNewJWTSessionSigner_RequiresSecret(t *testing.T) {
	_, err := NewJWTSessionSigner(&config.Config{})
	assert.Error(t, err)
}
