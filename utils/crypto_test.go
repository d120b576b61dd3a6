package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretBox(t *testing.T) {
	box := NewSecretBox("local-encryption-key")

	t.Run("decrypts what it encrypted", func(t *testing.T) {
		sealed, err := box.Encrypt("9f2c1a7d3be04aa")
		require.NoError(t, err)
		assert.NotContains(t, sealed, "9f2c1a7d3be04aa")

		plain, err := box.Decrypt(sealed)
		require.NoError(t, err)
		assert.Equal(t, "9f2c1a7d3be04aa", plain)
	})

	t.Run("uses a fresh nonce each time", func(t *testing.T) {
		a, err := box.Encrypt("same")
		require.NoError(t, err)
		b, err := box.Encrypt("same")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("rejects another key", func(t *testing.T) {
		sealed, err := box.Encrypt("secret")
		require.NoError(t, err)

		_, err = NewSecretBox("different-key").Decrypt(sealed)
		assert.ErrorIs(t, err, ErrDecrypt)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		_, err := box.Decrypt("not base64!")
		assert.ErrorIs(t, err, ErrDecrypt)
		_, err = box.Decrypt("c2hvcnQ=")
		assert.ErrorIs(t, err, ErrDecrypt)
	})
}
