package keystore

import (
	"context"
	"time"
)

// Record is the single authorization document. It pairs the current
// encryption key with the identity allowlist the store's server-side rules
// evaluate. Every publish overwrites it in full; nothing is merged.
type Record struct {
	EncryptionKey    string    `firestore:"encryptionKey"`
	AuthorizedEmails []string  `firestore:"authorizedEmails"`
	UpdatedAt        time.Time `firestore:"updatedAt,serverTimestamp"`
}

// Store is the authorization key store. Put must succeed before any
// ciphertext is injected into the template; Get is the viewer-side read,
// which the store's own rules may deny.
type Store interface {
	Put(ctx context.Context, keyHex string, emails []string) error
	Get(ctx context.Context) (*Record, error)
}
