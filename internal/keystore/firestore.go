package keystore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/riverfold/privydash/internal/configs"
	perrors "github.com/riverfold/privydash/internal/errors"
	logger "github.com/riverfold/privydash/internal/logging"
)

const (
	// The well-known location of the authorization document.
	collectionName = "config"
	documentName   = "dashboard"

	// putTimeout bounds the network write so a stalled store cannot hang
	// the pipeline indefinitely.
	putTimeout = 30 * time.Second
)

// FirestoreStore is the production Store backed by Firestore. Access
// enforcement is delegated entirely to Firestore security rules keyed off
// the authorizedEmails field; this client only supplies their input.
type FirestoreStore struct {
	client *firestore.Client
	logger logger.Logger
}

// NewFirestoreStore builds a store from the service account credentials in
// the environment. Returns ErrConfigurationMissing when no credentials are
// configured, before any network traffic.
func NewFirestoreStore(ctx context.Context, env *configs.Env, log logger.Logger) (*FirestoreStore, error) {
	if env.ServiceAccountJSON == "" {
		return nil, fmt.Errorf("%w: FIREBASE_SERVICE_ACCOUNT is not set", perrors.ErrConfigurationMissing)
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON([]byte(env.ServiceAccountJSON)))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firestore client: %w", err)
	}

	log.Debugf("Firestore client initialized")
	return &FirestoreStore{client: client, logger: log}, nil
}

// Put overwrites the authorization document with the new key and allowlist.
// The write is a full replace: the previous key and identity list are
// superseded in one operation. UpdatedAt is assigned by the server.
func (s *FirestoreStore) Put(ctx context.Context, keyHex string, emails []string) error {
	ctx, cancel := context.WithTimeout(ctx, putTimeout)
	defer cancel()

	record := Record{
		EncryptionKey:    keyHex,
		AuthorizedEmails: emails,
	}

	if _, err := s.client.Collection(collectionName).Doc(documentName).Set(ctx, record); err != nil {
		return fmt.Errorf("%w: %v", perrors.ErrKeyStoreWriteFailed, err)
	}

	s.logger.Debugf("Encryption key stored for %d authorized identities", len(emails))
	return nil
}

// Get fetches the authorization document. The store's rules decide whether
// the caller may read it at all; a denial surfaces as ErrAccessDenied and
// is never re-checked client-side.
func (s *FirestoreStore) Get(ctx context.Context) (*Record, error) {
	snapshot, err := s.client.Collection(collectionName).Doc(documentName).Get(ctx)
	if err != nil {
		return nil, mapReadError(err)
	}

	var record Record
	if err := snapshot.DataTo(&record); err != nil {
		return nil, fmt.Errorf("failed to decode authorization document: %w", err)
	}

	if record.EncryptionKey == "" {
		return nil, perrors.ErrKeyUnavailable
	}

	return &record, nil
}

// Close releases the underlying client.
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

// mapReadError translates store-level errors into the pipeline taxonomy.
func mapReadError(err error) error {
	switch status.Code(err) {
	case codes.PermissionDenied:
		return fmt.Errorf("%w: %v", perrors.ErrAccessDenied, err)
	case codes.NotFound:
		return fmt.Errorf("%w: %v", perrors.ErrKeyUnavailable, err)
	default:
		return fmt.Errorf("failed to fetch authorization document: %w", err)
	}
}
