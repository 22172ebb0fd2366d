// Package crypto seals credentials for storage at rest: AES-GCM
// encryption plus an HMAC signature over the ciphertext, both keyed
// from one caller-held key string.
package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/gtank/cryptopasta"
)

// A key string feeds two independent 32-byte keys: the first half
// encrypts, the second half signs.
const keyLength = 64

// NewKey generates a random key string suitable for Seal and Open.
func NewKey() (string, error) {
	raw := make([]byte, 48)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Seal encrypts plaintext and appends an HMAC signature, returning a
// printable "cipher.signature" string.
func Seal(plaintext []byte, key string) (string, error) {
	enc, sig, err := splitKey(key)
	if err != nil {
		return "", err
	}

	cipher, err := cryptopasta.Encrypt(plaintext, enc)
	if err != nil {
		return "", err
	}
	signature := cryptopasta.GenerateHMAC(cipher, sig)

	return fmt.Sprintf(
		"%s.%s",
		base64.RawURLEncoding.EncodeToString(cipher),
		base64.RawURLEncoding.EncodeToString(signature),
	), nil
}

// Open verifies the HMAC and decrypts a string produced by Seal.
func Open(sealed, key string) ([]byte, error) {
	enc, sig, err := splitKey(key)
	if err != nil {
		return nil, err
	}

	bits := strings.SplitN(sealed, ".", 2)
	if len(bits) != 2 {
		return nil, fmt.Errorf("sealed value is malformed")
	}

	cipher, err := base64.RawURLEncoding.DecodeString(bits[0])
	if err != nil {
		return nil, err
	}
	signature, err := base64.RawURLEncoding.DecodeString(bits[1])
	if err != nil {
		return nil, err
	}

	if !cryptopasta.CheckHMAC(cipher, signature, sig) {
		return nil, fmt.Errorf("signature validation failed")
	}
	return cryptopasta.Decrypt(cipher, enc)
}

// splitKey derives the encryption and signing keys from one string of
// at least keyLength characters.
func splitKey(key string) (*[32]byte, *[32]byte, error) {
	if len(key) < keyLength {
		return nil, nil, fmt.Errorf("key too short: want at least %d chars", keyLength)
	}
	enc := &[32]byte{}
	sig := &[32]byte{}
	copy(enc[:], key[:32])
	copy(sig[:], key[len(key)-32:])
	return enc, sig, nil
}
