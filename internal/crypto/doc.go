// Package crypto provides authenticated encryption for the report artifact.
//
// # Payload Format
//
// Reports are encrypted with AES-256-GCM under a random per-publish key.
// The wire format is hex(nonce || ciphertext || tag) with a 12-byte nonce
// and a 16-byte tag. No algorithm metadata is embedded; the viewer knows
// the algorithm and key length out of band.
//
// # Key Lifecycle
//
// A fresh 32-byte key is generated for every publish cycle and handed to
// the authorization key store. Keys are never reused across cycles and
// never written into the published material.
//
// GCM binds confidentiality to an integrity tag: any modification of the
// ciphertext or tag causes decryption to fail closed with ErrDecryptFailed
// rather than producing corrupted plaintext.
package crypto
