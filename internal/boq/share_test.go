package boq

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/boqworks/boqworks/internal/shared"
)

func TestShareSignerRoundTrip(t *testing.T) {
	signer := NewShareSigner("secret")
	projectID := uuid.New()

	token, err := signer.Mint(projectID)
	require.NoError(t, err)
	require.Contains(t, token, ".")

	id, err := signer.Verify(token, projectID)
	require.NoError(t, err)
	require.NotEmpty(t, id)
}

func TestShareSignerRejectsTamperedToken(t *testing.T) {
	signer := NewShareSigner("secret")
	projectID := uuid.New()

	token, err := signer.Mint(projectID)
	require.NoError(t, err)

	_, err = signer.Verify(token+"x", projectID)
	require.ErrorIs(t, err, shared.ErrInvalidShareToken)

	_, err = signer.Verify("no-separator", projectID)
	require.ErrorIs(t, err, shared.ErrInvalidShareToken)
}

func TestShareSignerBindsProject(t *testing.T) {
	signer := NewShareSigner("secret")
	token, err := signer.Mint(uuid.New())
	require.NoError(t, err)

	_, err = signer.Verify(token, uuid.New())
	require.ErrorIs(t, err, shared.ErrInvalidShareToken)
}

func TestShareSignerKeyMatters(t *testing.T) {
	projectID := uuid.New()
	token, err := NewShareSigner("secret-a").Mint(projectID)
	require.NoError(t, err)

	_, err = NewShareSigner("secret-b").Verify(token, projectID)
	require.ErrorIs(t, err, shared.ErrInvalidShareToken)
}
