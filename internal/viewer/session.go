package viewer

import (
	"context"
	"errors"

	"github.com/riverfold/privydash/internal/crypto"
	perrors "github.com/riverfold/privydash/internal/errors"
	"github.com/riverfold/privydash/internal/keystore"
)

// State is the viewer session state.
type State int

const (
	SignedOut State = iota
	Authenticating
	FetchingKey
	Decrypting
	Rendered

	// Terminal error states.
	AccessDenied
	DecryptFailed
	KeyUnavailable
)

func (s State) String() string {
	switch s {
	case SignedOut:
		return "signed-out"
	case Authenticating:
		return "authenticating"
	case FetchingKey:
		return "fetching-key"
	case Decrypting:
		return "decrypting"
	case Rendered:
		return "rendered"
	case AccessDenied:
		return "access-denied"
	case DecryptFailed:
		return "decrypt-failed"
	case KeyUnavailable:
		return "key-unavailable"
	default:
		return "unknown"
	}
}

// Failed reports whether the session reached a terminal error state.
func (s State) Failed() bool {
	return s == AccessDenied || s == DecryptFailed || s == KeyUnavailable
}

// Identity is a confirmed viewer identity.
type Identity struct {
	Email string
}

// IdentityProvider confirms the viewer's identity with an external
// provider. The provider's answer is taken as-is; authorization is decided
// later by the key store's own rules, never here.
type IdentityProvider interface {
	SignIn(ctx context.Context) (Identity, error)
}

// Session drives a single viewer through the decryption runtime:
// SignedOut → Authenticating → FetchingKey → Decrypting → Rendered, with
// AccessDenied, DecryptFailed, and KeyUnavailable as terminal error
// states. A sign-out from any state returns to SignedOut and discards
// rendered content.
type Session struct {
	provider IdentityProvider
	store    keystore.Store
	loader   ScriptLoader

	state    State
	identity Identity
	rendered string
}

// NewSession constructs a session. loader may be nil, in which case
// decrypted markup is held but its scripts are not mounted.
func NewSession(provider IdentityProvider, store keystore.Store, loader ScriptLoader) *Session {
	return &Session{provider: provider, store: store, loader: loader, state: SignedOut}
}

// State returns the current session state.
func (s *Session) State() State {
	return s.state
}

// Identity returns the confirmed identity, valid once past Authenticating.
func (s *Session) Identity() Identity {
	return s.identity
}

// Rendered returns the decrypted markup, non-empty only in Rendered state.
func (s *Session) Rendered() string {
	return s.rendered
}

// View runs the full decryption flow for the given encrypted payload.
//
// The key store's server-side rules decide whether the viewer may read the
// authorization document; a denial lands in AccessDenied without any
// client-side re-check. A failed authentication tag lands in
// DecryptFailed; ciphertext is never rendered as if it were plaintext.
func (s *Session) View(ctx context.Context, payloadHex string) (string, error) {
	s.state = Authenticating
	identity, err := s.provider.SignIn(ctx)
	if err != nil {
		s.state = SignedOut
		return "", err
	}
	s.identity = identity

	s.state = FetchingKey
	record, err := s.store.Get(ctx)
	if err != nil {
		switch {
		case errors.Is(err, perrors.ErrAccessDenied):
			s.state = AccessDenied
		default:
			s.state = KeyUnavailable
		}
		return "", err
	}

	s.state = Decrypting
	plaintext, err := crypto.Decrypt(payloadHex, record.EncryptionKey)
	if err != nil {
		s.state = DecryptFailed
		return "", err
	}

	markup := string(plaintext)
	if s.loader != nil {
		if err := MountScripts(ctx, markup, s.loader); err != nil {
			s.state = DecryptFailed
			return "", err
		}
	}

	s.rendered = markup
	s.state = Rendered
	return markup, nil
}

// SignOut transitions any state back to SignedOut and clears rendered
// content. In-flight work is simply discarded; no cancellation protocol
// is needed beyond the caller's context.
func (s *Session) SignOut() {
	s.state = SignedOut
	s.identity = Identity{}
	s.rendered = ""
}
