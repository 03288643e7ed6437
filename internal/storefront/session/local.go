package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"metromobiles/internal/pkg/clock"
	"metromobiles/internal/pkg/errs"
	"metromobiles/internal/pkg/password"
	"metromobiles/internal/storefront/kv"

	"github.com/google/uuid"
)

// UsersKey holds the local account list used by the offline backend.
const UsersKey = "metromobiles_users"

type localUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Digest  string `json:"digest,omitempty"`
	Google  string `json:"google_id,omitempty"`
	Picture string `json:"picture,omitempty"`
}

// LocalBackend verifies credentials against a locally persisted account list
// using the legacy salted-digest scheme. It is a development fallback, not a
// security boundary, and is never production-equivalent to the remote flow.
type LocalBackend struct {
	store kv.Store
	clock clock.Clock
}

func NewLocalBackend(store kv.Store, clk clock.Clock) *LocalBackend {
	return &LocalBackend{store: store, clock: clk}
}

func (b *LocalBackend) Login(ctx context.Context, email, pw string) (*Session, error) {
	users := b.loadUsers(ctx)
	u := findByEmail(users, email)
	// Same error for unknown account and wrong password.
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := password.CompareLocal(u.Digest, pw); err != nil {
		return nil, ErrInvalidCredentials
	}
	return b.mint(u), nil
}

func (b *LocalBackend) Register(ctx context.Context, name, email, pw string) (*Session, error) {
	users := b.loadUsers(ctx)
	if findByEmail(users, email) != nil {
		return nil, errs.ErrEmailTaken
	}

	u := localUser{
		ID:     uuid.NewString(),
		Name:   name,
		Email:  email,
		Digest: password.DigestLocal(pw),
	}
	users = append(users, u)
	if err := b.saveUsers(ctx, users); err != nil {
		return nil, err
	}
	return b.mint(&u), nil
}

func (b *LocalBackend) GoogleSignIn(ctx context.Context, identity GoogleIdentity) (*Session, error) {
	users := b.loadUsers(ctx)
	u := findByEmail(users, identity.Email)
	if u == nil {
		created := localUser{
			ID:      uuid.NewString(),
			Name:    identity.Name,
			Email:   identity.Email,
			Google:  identity.Sub,
			Picture: identity.Picture,
		}
		users = append(users, created)
		if err := b.saveUsers(ctx, users); err != nil {
			return nil, err
		}
		u = &created
	}
	return b.mint(u), nil
}

// mint issues a local timestamp-based token; the Handshake stamps IssuedAt.
func (b *LocalBackend) mint(u *localUser) *Session {
	return &Session{
		Identity: Identity{
			UserID:  u.ID,
			Name:    u.Name,
			Email:   u.Email,
			Picture: u.Picture,
		},
		Token: fmt.Sprintf("local-%d", b.clock.Now().UnixNano()),
	}
}

func (b *LocalBackend) loadUsers(ctx context.Context) []localUser {
	data, err := b.store.Get(ctx, UsersKey)
	if err != nil {
		return nil
	}
	var users []localUser
	if err := json.Unmarshal(data, &users); err != nil {
		return nil
	}
	return users
}

func (b *LocalBackend) saveUsers(ctx context.Context, users []localUser) error {
	data, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return b.store.Set(ctx, UsersKey, data)
}

func findByEmail(users []localUser, email string) *localUser {
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i]
		}
	}
	return nil
}
