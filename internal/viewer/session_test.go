package viewer

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/riverfold/privydash/internal/crypto"
	perrors "github.com/riverfold/privydash/internal/errors"
	"github.com/riverfold/privydash/internal/keystore"
)

type fakeProvider struct {
	identity Identity
	err      error
}

func (f *fakeProvider) SignIn(ctx context.Context) (Identity, error) {
	if f.err != nil {
		return Identity{}, f.err
	}
	return f.identity, nil
}

type fakeStore struct {
	record *keystore.Record
	err    error
	gets   int
}

func (f *fakeStore) Put(ctx context.Context, keyHex string, emails []string) error {
	return nil
}

func (f *fakeStore) Get(ctx context.Context) (*keystore.Record, error) {
	f.gets++
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

// encryptReport produces a payload/record pair as the publish pipeline would.
func encryptReport(t *testing.T, markup string) (string, *keystore.Record) {
	t.Helper()
	payloadHex, keyHex, err := crypto.Encrypt([]byte(markup))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	return payloadHex, &keystore.Record{
		EncryptionKey:    keyHex,
		AuthorizedEmails: []string{"alice@example.com"},
	}
}

func TestViewHappyPath(t *testing.T) {
	markup := "<html><body><h1>May report</h1></body></html>"
	payloadHex, record := encryptReport(t, markup)

	session := NewSession(
		&fakeProvider{identity: Identity{Email: "alice@example.com"}},
		&fakeStore{record: record},
		nil,
	)

	rendered, err := session.View(context.Background(), payloadHex)
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if rendered != markup {
		t.Error("Rendered markup does not match original report")
	}
	if session.State() != Rendered {
		t.Errorf("Expected Rendered state, got %s", session.State())
	}
	if session.Identity().Email != "alice@example.com" {
		t.Errorf("Expected confirmed identity, got %q", session.Identity().Email)
	}
}

func TestViewSignInFailureReturnsToSignedOut(t *testing.T) {
	payloadHex, record := encryptReport(t, "<html></html>")
	store := &fakeStore{record: record}
	session := NewSession(&fakeProvider{err: errors.New("popup closed")}, store, nil)

	if _, err := session.View(context.Background(), payloadHex); err == nil {
		t.Fatal("Expected sign-in error")
	}
	if session.State() != SignedOut {
		t.Errorf("Expected SignedOut after failed sign-in, got %s", session.State())
	}
	if store.gets != 0 {
		t.Error("Key store consulted before identity confirmation")
	}
}

func TestViewAccessDenied(t *testing.T) {
	payloadHex, _ := encryptReport(t, "<html></html>")
	session := NewSession(
		&fakeProvider{identity: Identity{Email: "mallory@example.com"}},
		&fakeStore{err: fmt.Errorf("%w: rules rejected read", perrors.ErrAccessDenied)},
		nil,
	)

	_, err := session.View(context.Background(), payloadHex)
	if !errors.Is(err, perrors.ErrAccessDenied) {
		t.Fatalf("Expected ErrAccessDenied, got: %v", err)
	}
	if session.State() != AccessDenied {
		t.Errorf("Expected AccessDenied state, got %s", session.State())
	}
	if !session.State().Failed() {
		t.Error("AccessDenied should be a terminal error state")
	}
}

func TestViewKeyUnavailable(t *testing.T) {
	payloadHex, _ := encryptReport(t, "<html></html>")
	session := NewSession(
		&fakeProvider{identity: Identity{Email: "alice@example.com"}},
		&fakeStore{err: perrors.ErrKeyUnavailable},
		nil,
	)

	_, err := session.View(context.Background(), payloadHex)
	if !errors.Is(err, perrors.ErrKeyUnavailable) {
		t.Fatalf("Expected ErrKeyUnavailable, got: %v", err)
	}
	if session.State() != KeyUnavailable {
		t.Errorf("Expected KeyUnavailable state, got %s", session.State())
	}
}

func TestViewTamperedPayloadFailsClosed(t *testing.T) {
	payloadHex, record := encryptReport(t, "<html><body>secret</body></html>")

	// Flip one bit in the ciphertext region.
	payload, err := hex.DecodeString(payloadHex)
	if err != nil {
		t.Fatalf("Payload is not valid hex: %v", err)
	}
	payload[crypto.NonceSize] ^= 0x01

	session := NewSession(
		&fakeProvider{identity: Identity{Email: "alice@example.com"}},
		&fakeStore{record: record},
		nil,
	)

	_, err = session.View(context.Background(), hex.EncodeToString(payload))
	if !errors.Is(err, perrors.ErrDecryptFailed) {
		t.Fatalf("Expected ErrDecryptFailed, got: %v", err)
	}
	if session.State() != DecryptFailed {
		t.Errorf("Expected DecryptFailed state, got %s", session.State())
	}
	if session.Rendered() != "" {
		t.Error("Tampered payload must never produce rendered content")
	}
}

func TestViewMismatchedKey(t *testing.T) {
	payloadHex, _ := encryptReport(t, "<html></html>")
	_, staleRecord := encryptReport(t, "<html></html>") // different key

	session := NewSession(
		&fakeProvider{identity: Identity{Email: "alice@example.com"}},
		&fakeStore{record: staleRecord},
		nil,
	)

	_, err := session.View(context.Background(), payloadHex)
	if !errors.Is(err, perrors.ErrDecryptFailed) {
		t.Fatalf("Expected ErrDecryptFailed for mismatched key, got: %v", err)
	}
}

func TestSignOutClearsState(t *testing.T) {
	markup := "<html><body>report</body></html>"
	payloadHex, record := encryptReport(t, markup)

	session := NewSession(
		&fakeProvider{identity: Identity{Email: "alice@example.com"}},
		&fakeStore{record: record},
		nil,
	)

	if _, err := session.View(context.Background(), payloadHex); err != nil {
		t.Fatalf("View failed: %v", err)
	}

	session.SignOut()
	if session.State() != SignedOut {
		t.Errorf("Expected SignedOut, got %s", session.State())
	}
	if session.Rendered() != "" {
		t.Error("Rendered content not cleared on sign-out")
	}
	if session.Identity().Email != "" {
		t.Error("Identity not cleared on sign-out")
	}
}

func TestSignOutFromErrorState(t *testing.T) {
	payloadHex, _ := encryptReport(t, "<html></html>")
	session := NewSession(
		&fakeProvider{identity: Identity{Email: "mallory@example.com"}},
		&fakeStore{err: perrors.ErrAccessDenied},
		nil,
	)

	_, _ = session.View(context.Background(), payloadHex)
	session.SignOut()

	if session.State() != SignedOut {
		t.Errorf("Expected SignedOut from error state, got %s", session.State())
	}
}
