package errors

import "errors"

// Configuration errors indicate the pipeline cannot start at all.
var (
	// ErrConfigurationMissing indicates required credentials or settings are absent.
	ErrConfigurationMissing = errors.New("required configuration is missing")

	// ErrPublishLocked indicates another publish run holds the lock.
	ErrPublishLocked = errors.New("another publish run is in progress")
)

// Key store errors indicate failures talking to the authorization document store.
var (
	// ErrKeyStoreWriteFailed indicates the encryption key could not be stored.
	// The pipeline must abort before any ciphertext reaches the template.
	ErrKeyStoreWriteFailed = errors.New("failed to store encryption key")

	// ErrAccessDenied indicates the store's rules rejected a read of the
	// authorization document.
	ErrAccessDenied = errors.New("access to the authorization document was denied")

	// ErrKeyUnavailable indicates the authorization document or its key is absent.
	ErrKeyUnavailable = errors.New("encryption key is not available")
)

// Template errors indicate issues with the hosting template on disk.
var (
	// ErrTemplateMissing indicates the hosting directory or template file does not exist.
	ErrTemplateMissing = errors.New("hosting template not found")

	// ErrPlaceholderMissing indicates an expected placeholder was absent after injection.
	ErrPlaceholderMissing = errors.New("template placeholder not substituted")
)

// Deploy errors indicate failures invoking the external hosting tool.
var (
	// ErrDeployNotFound indicates the hosting command binary could not be located.
	ErrDeployNotFound = errors.New("hosting command not found")

	// ErrDeployTimeout indicates the hosting command exceeded its time budget.
	ErrDeployTimeout = errors.New("hosting deploy timed out")

	// ErrDeployFailed indicates the hosting command exited non-zero.
	ErrDeployFailed = errors.New("hosting deploy failed")

	// ErrURLUnparseable indicates the deploy exited cleanly but no published
	// URL could be recovered from its output or local configuration.
	ErrURLUnparseable = errors.New("published URL could not be determined")
)

// Cryptographic errors indicate failures during encryption or decryption.
var (
	// ErrEncryptFailed indicates the report artifact could not be encrypted.
	ErrEncryptFailed = errors.New("failed to encrypt report")

	// ErrDecryptFailed indicates the payload failed authenticated decryption.
	ErrDecryptFailed = errors.New("failed to decrypt payload")

	// ErrInvalidKeyLength indicates the symmetric key has an unexpected length.
	ErrInvalidKeyLength = errors.New("invalid symmetric key length")

	// ErrInvalidPayload indicates the payload is malformed (bad hex or too short).
	ErrInvalidPayload = errors.New("invalid encrypted payload")
)

// Artifact errors indicate issues with the report artifact input.
var (
	// ErrArtifactNotFound indicates the report artifact file could not be located.
	ErrArtifactNotFound = errors.New("report artifact not found")

	// ErrArtifactEmpty indicates the report artifact file is empty.
	ErrArtifactEmpty = errors.New("report artifact is empty")
)
