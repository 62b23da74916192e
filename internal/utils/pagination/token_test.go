package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/SscSPs/referral_pipeline/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	createdAt := time.Date(2024, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(createdAt, "0b5d7f0e-1c2a-4a55-9b7a-3a9d1c9d1e11")
	assert.NotEmpty(t, token)

	at, id, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(at))
	assert.Equal(t, "0b5d7f0e-1c2a-4a55-9b7a-3a9d1c9d1e11", id)

	// Non-UTC times are normalised
	sydney := time.FixedZone("AEST", 10*60*60)
	local := time.Date(2024, 5, 16, 0, 30, 0, 0, sydney)
	at, _, err = DecodeToken(EncodeToken(local, "x"))
	require.NoError(t, err)
	assert.True(t, local.Equal(at))
	assert.Equal(t, time.UTC, at.Location())
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.URLEncoding.EncodeToString([]byte("2024-05-15T00:00:00Z"))
	_, _, err = DecodeToken(noSeparator)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "split")

	emptyID := base64.URLEncoding.EncodeToString([]byte("2024-05-15T00:00:00Z|"))
	_, _, err = DecodeToken(emptyID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	badTime := base64.URLEncoding.EncodeToString([]byte("notadate|abc"))
	_, _, err = DecodeToken(badTime)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "time parse")
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ClampLimit(0))
	assert.Equal(t, DefaultLimit, ClampLimit(-5))
	assert.Equal(t, 7, ClampLimit(7))
	assert.Equal(t, MaxLimit, ClampLimit(1000))
}
