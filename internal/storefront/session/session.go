// Package session establishes and maintains the shopper's authenticated
// session: local credential check or remote token exchange, third-party
// identity sign-in, and idle-timeout expiry.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"metromobiles/internal/pkg/clock"
	"metromobiles/internal/pkg/errs"
	"metromobiles/internal/storefront/kv"
)

const (
	// SessionKey holds the active session snapshot, TokenKey the bearer token.
	SessionKey = "metromobiles_user_session"
	TokenKey   = "metromobiles_auth_token"

	// CheckoutRedirectKey marks that a checkout was interrupted by a login;
	// it survives auth failures so the flow can resume afterwards.
	CheckoutRedirectKey = "checkout_redirect"

	DefaultTTL = 30 * time.Minute
)

var (
	ErrInvalidCredentials = errs.New("invalid email or password")
	ErrRemoteRejected     = errs.New("authentication rejected by server")
)

type State int

const (
	StateLoggedOut State = iota
	StatePending
	StateActive
	StateExpired
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateActive:
		return "active"
	case StateExpired:
		return "expired"
	default:
		return "logged_out"
	}
}

// Identity is the denormalized profile snapshot kept for display.
type Identity struct {
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
}

// Session is the persisted authenticated state. IssuedAt slides forward on
// every successful validity check, so the TTL is an idle timeout rather than
// an absolute one.
type Session struct {
	Identity Identity  `json:"user"`
	Token    string    `json:"token,omitempty"`
	IssuedAt time.Time `json:"issued_at"`
}

// Backend performs the actual credential verification. Exactly one backend is
// live per storefront instance; the legacy parallel local/remote code paths
// were folded into this interface.
type Backend interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	Register(ctx context.Context, name, email, password string) (*Session, error)
	GoogleSignIn(ctx context.Context, identity GoogleIdentity) (*Session, error)
}

type Handshake struct {
	backend Backend
	store   kv.Store
	clock   clock.Clock
	ttl     time.Duration
	logger  *slog.Logger

	state   State
	current *Session
}

func NewHandshake(backend Backend, store kv.Store, clk clock.Clock, ttl time.Duration, logger *slog.Logger) *Handshake {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handshake{
		backend: backend,
		store:   store,
		clock:   clk,
		ttl:     ttl,
		logger:  logger,
		state:   StateLoggedOut,
	}
	h.restore()
	return h
}

func (h *Handshake) State() State {
	return h.state
}

// Current returns the active session, or nil when not authenticated.
func (h *Handshake) Current() *Session {
	if h.state != StateActive {
		return nil
	}
	return h.current
}

func (h *Handshake) Login(ctx context.Context, email, password string) (*Session, error) {
	return h.establish(ctx, func() (*Session, error) {
		return h.backend.Login(ctx, email, password)
	})
}

func (h *Handshake) Register(ctx context.Context, name, email, password string) (*Session, error) {
	return h.establish(ctx, func() (*Session, error) {
		return h.backend.Register(ctx, name, email, password)
	})
}

// GoogleSignIn decodes the provider's ID token payload and exchanges the
// extracted identity for a session of our own.
func (h *Handshake) GoogleSignIn(ctx context.Context, rawIDToken string) (*Session, error) {
	identity, err := DecodeIdentityToken(rawIDToken)
	if err != nil {
		h.toLoggedOut(ctx)
		return nil, errs.Mark(err, errs.ErrIdentityDecode)
	}
	return h.establish(ctx, func() (*Session, error) {
		return h.backend.GoogleSignIn(ctx, identity)
	})
}

// Valid reports whether the session is active and unexpired. A successful
// check refreshes the issuance timestamp, sliding the expiry forward; an
// elapsed TTL clears the persisted session.
func (h *Handshake) Valid(ctx context.Context) bool {
	if h.state != StateActive || h.current == nil {
		return false
	}

	now := h.clock.Now()
	if now.Sub(h.current.IssuedAt) > h.ttl {
		h.expire(ctx)
		return false
	}

	h.current.IssuedAt = now
	if err := h.persist(ctx); err != nil {
		h.logger.Warn("failed to persist session refresh", "error", err.Error())
	}
	return true
}

func (h *Handshake) Logout(ctx context.Context) {
	h.toLoggedOut(ctx)
}

// SetCheckoutRedirect records that checkout should resume after login.
func (h *Handshake) SetCheckoutRedirect(ctx context.Context) {
	if err := h.store.Set(ctx, CheckoutRedirectKey, []byte("true")); err != nil {
		h.logger.Warn("failed to persist checkout redirect marker", "error", err.Error())
	}
}

// TakeCheckoutRedirect consumes the marker, reporting whether it was set.
func (h *Handshake) TakeCheckoutRedirect(ctx context.Context) bool {
	if _, err := h.store.Get(ctx, CheckoutRedirectKey); err != nil {
		return false
	}
	_ = h.store.Delete(ctx, CheckoutRedirectKey)
	return true
}

func (h *Handshake) establish(ctx context.Context, exchange func() (*Session, error)) (*Session, error) {
	h.state = StatePending

	sess, err := exchange()
	if err != nil {
		// Any failure returns to unauthenticated; the checkout redirect
		// marker is left in place deliberately.
		h.toLoggedOut(ctx)
		return nil, err
	}

	sess.IssuedAt = h.clock.Now()
	h.current = sess
	h.state = StateActive

	if err := h.persist(ctx); err != nil {
		h.logger.Warn("failed to persist session", "error", err.Error())
	}
	return sess, nil
}

func (h *Handshake) restore() {
	ctx := context.Background()
	data, err := h.store.Get(ctx, SessionKey)
	if err != nil {
		return
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		h.logger.Warn("discarding corrupt session blob", "error", err.Error())
		h.clearPersisted(ctx)
		return
	}

	if h.clock.Now().Sub(sess.IssuedAt) > h.ttl {
		h.clearPersisted(ctx)
		h.state = StateExpired
		return
	}

	h.current = &sess
	h.state = StateActive
}

func (h *Handshake) persist(ctx context.Context) error {
	data, err := json.Marshal(h.current)
	if err != nil {
		return err
	}
	if err := h.store.Set(ctx, SessionKey, data); err != nil {
		return err
	}
	if h.current.Token != "" {
		return h.store.Set(ctx, TokenKey, []byte(h.current.Token))
	}
	return nil
}

func (h *Handshake) expire(ctx context.Context) {
	h.clearPersisted(ctx)
	h.current = nil
	h.state = StateExpired
}

func (h *Handshake) toLoggedOut(ctx context.Context) {
	h.clearPersisted(ctx)
	h.current = nil
	h.state = StateLoggedOut
}

func (h *Handshake) clearPersisted(ctx context.Context) {
	_ = h.store.Delete(ctx, SessionKey)
	_ = h.store.Delete(ctx, TokenKey)
}
