package session

import (
	"context"
	"errors"

	"metromobiles/internal/pkg/errs"
	"metromobiles/internal/storefront/apiclient"
)

// RemoteBackend exchanges credentials with the API; local state keeps only the
// issued bearer token and a profile snapshot for display.
type RemoteBackend struct {
	api *apiclient.Client
}

func NewRemoteBackend(api *apiclient.Client) *RemoteBackend {
	return &RemoteBackend{api: api}
}

func (b *RemoteBackend) Login(ctx context.Context, email, password string) (*Session, error) {
	result, err := b.api.Login(ctx, email, password)
	if err != nil {
		return nil, mapAuthErr(err)
	}
	return fromAuthResult(result), nil
}

func (b *RemoteBackend) Register(ctx context.Context, name, email, password string) (*Session, error) {
	result, err := b.api.Register(ctx, name, email, password)
	if err != nil {
		return nil, mapAuthErr(err)
	}
	return fromAuthResult(result), nil
}

func (b *RemoteBackend) GoogleSignIn(ctx context.Context, identity GoogleIdentity) (*Session, error) {
	result, err := b.api.GoogleSignIn(ctx, apiclient.GoogleSignInRequest{
		Email:    identity.Email,
		Name:     identity.Name,
		Picture:  identity.Picture,
		GoogleID: identity.Sub,
	})
	if err != nil {
		return nil, mapAuthErr(err)
	}
	return fromAuthResult(result), nil
}

func fromAuthResult(result *apiclient.AuthResult) *Session {
	return &Session{
		Identity: Identity{
			UserID:  result.User.ID,
			Name:    result.User.Name,
			Email:   result.User.Email,
			Picture: result.User.Picture,
		},
		Token: result.Token,
	}
}

func mapAuthErr(err error) error {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		return errs.Mark(err, ErrInvalidCredentials)
	}
	var rejected *apiclient.RejectedError
	if errors.As(err, &rejected) {
		return errs.Mark(err, ErrRemoteRejected)
	}
	return err
}
