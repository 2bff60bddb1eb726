package model

import (
	"testing"

	domainerrors "finance/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretCodec(t *testing.T) {
	raw := []byte{0x1c, 0xd7, 0xd5, 0x88, 0xe5, 0x85, 0x24, 0x2a}

	encoded := EncodeSecret(raw)
	decoded, err := DecodeSecret(encoded)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestDecodeSecret_Malformed(t *testing.T) {
	_, err := DecodeSecret("not*base64")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrCredentialDecode)
}
