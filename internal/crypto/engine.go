package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	perrors "github.com/riverfold/privydash/internal/errors"
)

const (
	// KeySize is the symmetric key length in bytes (AES-256).
	KeySize = 32

	// NonceSize is the GCM nonce length in bytes.
	NonceSize = 12

	// TagSize is the GCM authentication tag length in bytes.
	TagSize = 16
)

// CreateSymmetricKey generates a new random symmetric key.
func CreateSymmetricKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}

	return key, nil
}

// Encrypt encrypts the report with AES-256-GCM under a freshly generated
// random key. It returns hex(nonce || ciphertext || tag) and the hex-encoded
// key. The key is generated per call and never reused; the recipient is
// expected to know the algorithm and key length out of band.
func Encrypt(plaintext []byte) (payloadHex string, keyHex string, err error) {
	key, err := CreateSymmetricKey()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate symmetric key: %w", err)
	}

	payloadHex, err = EncryptWithKey(plaintext, key)
	if err != nil {
		return "", "", err
	}

	return payloadHex, hex.EncodeToString(key), nil
}

// EncryptWithKey encrypts the report with the provided 32-byte key and a
// random 12-byte nonce, returning hex(nonce || ciphertext || tag).
func EncryptWithKey(plaintext, key []byte) (string, error) {
	if len(key) != KeySize {
		return "", fmt.Errorf("%w: expected %d bytes, got %d bytes", perrors.ErrInvalidKeyLength, KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to initialize cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to initialize GCM: %w", err)
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Seal appends ciphertext || tag after the nonce prefix.
	sealed := gcm.Seal(nonce, nonce, plaintext, nil)

	return hex.EncodeToString(sealed), nil
}

// Decrypt is the authenticated inverse of Encrypt. The leading 12 bytes of
// the decoded payload are the nonce; the trailing 16 bytes are the GCM tag.
// Any tampering with the ciphertext or tag fails closed with
// ErrDecryptFailed rather than returning corrupted plaintext.
func Decrypt(payloadHex, keyHex string) ([]byte, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: key is not valid hex", perrors.ErrInvalidKeyLength)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d bytes", perrors.ErrInvalidKeyLength, KeySize, len(key))
	}

	payload, err := hex.DecodeString(payloadHex)
	if err != nil {
		return nil, fmt.Errorf("%w: payload is not valid hex", perrors.ErrInvalidPayload)
	}
	if len(payload) < NonceSize+TagSize {
		return nil, fmt.Errorf("%w: payload too short (%d bytes)", perrors.ErrInvalidPayload, len(payload))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCM: %w", err)
	}

	nonce := payload[:NonceSize]
	plaintext, err := gcm.Open(nil, nonce, payload[NonceSize:], nil)
	if err != nil {
		return nil, perrors.ErrDecryptFailed
	}

	return plaintext, nil
}
