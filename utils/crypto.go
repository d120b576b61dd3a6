package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

var ErrDecrypt = errors.New("decryption failed")

// SecretBox seals short secrets (API secrets) for storage at rest.
type SecretBox struct {
	key [32]byte
}

// NewSecretBox accepts a base64 encoded 32-byte key; any other string is
// hashed down to 32 bytes.
func NewSecretBox(key string) *SecretBox {
	sb := &SecretBox{}
	if raw, err := base64.StdEncoding.DecodeString(key); err == nil && len(raw) == 32 {
		copy(sb.key[:], raw)
	} else {
		sb.key = sha256.Sum256([]byte(key))
	}
	return sb
}

func (s *SecretBox) Encrypt(plain string) (string, error) {
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", err
	}
	sealed := secretbox.Seal(nonce[:], []byte(plain), &nonce, &s.key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (s *SecretBox) Decrypt(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(raw) < 24 {
		return "", ErrDecrypt
	}
	var nonce [24]byte
	copy(nonce[:], raw[:24])
	plain, ok := secretbox.Open(nil, raw[24:], &nonce, &s.key)
	if !ok {
		return "", ErrDecrypt
	}
	return string(plain), nil
}
