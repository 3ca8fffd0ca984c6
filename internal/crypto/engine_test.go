package crypto

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	perrors "github.com/riverfold/privydash/internal/errors"
)

func TestCreateSymmetricKey(t *testing.T) {
	key, err := CreateSymmetricKey()
	if err != nil {
		t.Fatalf("CreateSymmetricKey failed: %v", err)
	}
	if len(key) != KeySize {
		t.Fatalf("Expected key length %d, got %d", KeySize, len(key))
	}

	other, err := CreateSymmetricKey()
	if err != nil {
		t.Fatalf("CreateSymmetricKey failed: %v", err)
	}
	if string(key) == string(other) {
		t.Error("Two generated keys are identical")
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	plaintexts := []string{
		"",
		"x",
		"<html><body>Monthly report</body></html>",
		strings.Repeat("expense row\n", 5000),
	}

	for _, plaintext := range plaintexts {
		payloadHex, keyHex, err := Encrypt([]byte(plaintext))
		if err != nil {
			t.Fatalf("Encrypt failed: %v", err)
		}

		decrypted, err := Decrypt(payloadHex, keyHex)
		if err != nil {
			t.Fatalf("Decrypt failed: %v", err)
		}
		if string(decrypted) != plaintext {
			t.Errorf("Round trip mismatch for %d-byte plaintext", len(plaintext))
		}
	}
}

func TestEncryptPayloadLayout(t *testing.T) {
	plaintext := "report body"
	payloadHex, keyHex, err := Encrypt([]byte(plaintext))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if len(keyHex) != KeySize*2 {
		t.Errorf("Expected hex key length %d, got %d", KeySize*2, len(keyHex))
	}

	payload, err := hex.DecodeString(payloadHex)
	if err != nil {
		t.Fatalf("Payload is not valid hex: %v", err)
	}

	// nonce || ciphertext || tag, where ciphertext length equals plaintext length.
	expected := NonceSize + len(plaintext) + TagSize
	if len(payload) != expected {
		t.Errorf("Expected payload length %d, got %d", expected, len(payload))
	}
}

func TestEncryptGeneratesFreshNonceAndKey(t *testing.T) {
	plaintext := []byte("same input")

	payload1, key1, err := Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	payload2, key2, err := Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if key1 == key2 {
		t.Error("Keys were reused across publish cycles")
	}
	if payload1 == payload2 {
		t.Error("Payloads are identical for independent encryptions")
	}
}

func TestDecryptTamperedPayloadFailsClosed(t *testing.T) {
	payloadHex, keyHex, err := Encrypt([]byte("confidential report"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	payload, err := hex.DecodeString(payloadHex)
	if err != nil {
		t.Fatalf("Payload is not valid hex: %v", err)
	}

	// Flip a single bit in every region of the payload: nonce, ciphertext,
	// and tag. Each must cause authentication failure, never corrupt output.
	offsets := []int{0, NonceSize, len(payload) - TagSize, len(payload) - 1}
	for _, offset := range offsets {
		tampered := make([]byte, len(payload))
		copy(tampered, payload)
		tampered[offset] ^= 0x01

		_, err := Decrypt(hex.EncodeToString(tampered), keyHex)
		if !errors.Is(err, perrors.ErrDecryptFailed) {
			t.Errorf("Expected ErrDecryptFailed for bit flip at offset %d, got: %v", offset, err)
		}
	}
}

func TestDecryptWrongKey(t *testing.T) {
	payloadHex, _, err := Encrypt([]byte("confidential report"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	wrongKey, err := CreateSymmetricKey()
	if err != nil {
		t.Fatalf("CreateSymmetricKey failed: %v", err)
	}

	_, err = Decrypt(payloadHex, hex.EncodeToString(wrongKey))
	if !errors.Is(err, perrors.ErrDecryptFailed) {
		t.Errorf("Expected ErrDecryptFailed with mismatched key, got: %v", err)
	}
}

func TestDecryptMalformedInputs(t *testing.T) {
	_, keyHex, err := Encrypt([]byte("report"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	// Not hex.
	if _, err := Decrypt("zzzz", keyHex); !errors.Is(err, perrors.ErrInvalidPayload) {
		t.Errorf("Expected ErrInvalidPayload for non-hex payload, got: %v", err)
	}

	// Shorter than nonce + tag.
	short := hex.EncodeToString(make([]byte, NonceSize+TagSize-1))
	if _, err := Decrypt(short, keyHex); !errors.Is(err, perrors.ErrInvalidPayload) {
		t.Errorf("Expected ErrInvalidPayload for short payload, got: %v", err)
	}

	// Wrong key length.
	payloadHex, _, err := Encrypt([]byte("report"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if _, err := Decrypt(payloadHex, "abcd"); !errors.Is(err, perrors.ErrInvalidKeyLength) {
		t.Errorf("Expected ErrInvalidKeyLength for short key, got: %v", err)
	}
}

func TestEncryptWithKeyRejectsBadKeyLength(t *testing.T) {
	_, err := EncryptWithKey([]byte("report"), make([]byte, 16))
	if !errors.Is(err, perrors.ErrInvalidKeyLength) {
		t.Errorf("Expected ErrInvalidKeyLength, got: %v", err)
	}
}
