package auth

import (
	"testing"

	"catalog/config"
	domainerrors "catalog/internal/domain/errors"
	"catalog/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStateSigner(t *testing.T, secret string) service.StateSigner {
	t.Helper()

	cfg := &config.Config{}
	cfg.Auth.StateSecret = secret

	signer, err := NewStateSigner(cfg)
	require.NoError(t, err)

	return signer
}

func TestStateSigner_RoundTrip(t *testing.T) {
	signer := newTestStateSigner(t, "test-secret")

	for _, client := range []service.ClientType{service.ClientTypeWeb, service.ClientTypeIOS} {
		state, err := signer.Sign(client)
		require.NoError(t, err)
		require.NotEmpty(t, state)

		got, err := signer.Verify(state)
		require.NoError(t, err)
		assert.Equal(t, client, got)
	}
}

func TestStateSigner_RejectsTamperedState(t *testing.T) {
	signer := newTestStateSigner(t, "test-secret")

	state, err := signer.Sign(service.ClientTypeWeb)
	require.NoError(t, err)

	_, err = signer.Verify(state + "x")
	assert.ErrorIs(t, err, domainerrors.ErrOAuthStateInvalid)
}

func TestStateSigner_RejectsForeignSecret(t *testing.T) {
	signer := newTestStateSigner(t, "test-secret")
	other := newTestStateSigner(t, "another-secret")

	state, err := other.Sign(service.ClientTypeIOS)
	require.NoError(t, err)

	_, err = signer.Verify(state)
	assert.ErrorIs(t, err, domainerrors.ErrOAuthStateInvalid)
}

func TestStateSigner_RejectsGarbage(t *testing.T) {
	signer := newTestStateSigner(t, "test-secret")

	_, err := signer.Verify("not-a-jwt")
	assert.ErrorIs(t, err, domainerrors.ErrOAuthStateInvalid)
}

func TestNewStateSigner_RequiresSecret(t *testing.T) {
	cfg := &config.Config{}

	_, err := NewStateSigner(cfg)
	assert.Error(t, err)
}
