package commands

import (
	"context"
	"log/slog"

	"metromobiles/internal/domain/user"
	"metromobiles/internal/infra"
	"metromobiles/internal/pkg/errs"
	"metromobiles/internal/pkg/jwt"
	"metromobiles/internal/pkg/password"
	"metromobiles/internal/usecase/queries"
	"metromobiles/internal/usecase/shared"
)

var (
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrEmailTaken           = errs.New("email already registered")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type AuthResult struct {
	User  *queries.AuthorizedUserView
	Token string
}

// GoogleProfile is the identity the storefront extracted from the provider's
// ID token; the server trusts it the way the original backend did and mints
// its own session token.
type GoogleProfile struct {
	Email    string
	Name     string
	Picture  string
	GoogleID string
}

type AuthCommands interface {
	Register(ctx context.Context, name string, credentials user.Credentials) (*AuthResult, error)
	Login(ctx context.Context, credentials user.Credentials) (*AuthResult, error)
	GoogleSignIn(ctx context.Context, profile GoogleProfile) (*AuthResult, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	readStore  queries.UserReadStore
	jwtService *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, readStore queries.UserReadStore, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		readStore:  readStore,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, name string, credentials user.Credentials) (*AuthResult, error) {
	if name == "" {
		return nil, errs.Mark(user.ErrInvalidName, ErrAuthenticationFailed)
	}

	existing, _, err := a.readStore.FindByEmail(ctx, credentials.Email().Value())
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := password.HashPassword(credentials.Password().Value())
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	u := user.NewUser(name, credentials.Email(), hash, user.RoleCustomer)
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, u)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return a.issue(&queries.AuthorizedUserView{
		ID:       u.ID(),
		Name:     u.Name(),
		Email:    u.Email().Value(),
		Role:     u.Role().String(),
		IsActive: true,
	}, u.Role())
}

func (a *authCommandsImpl) Login(ctx context.Context, credentials user.Credentials) (*AuthResult, error) {
	view, hash, err := a.readStore.FindByEmail(ctx, credentials.Email().Value())
	if err != nil || view == nil {
		// Same error as a password mismatch to prevent account enumeration.
		return nil, ErrInvalidCredentials
	}
	if !view.IsActive {
		return nil, ErrUserInactive
	}

	if err := password.ComparePassword(hash, credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	a.touchLastLogin(ctx, view)

	return a.issue(view, role)
}

func (a *authCommandsImpl) GoogleSignIn(ctx context.Context, profile GoogleProfile) (*AuthResult, error) {
	email, err := user.NewEmail(profile.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	view, _, err := a.readStore.FindByEmail(ctx, email.Value())
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return nil, err
	}

	if view == nil {
		u := user.NewGoogleUser(profile.Name, email, profile.GoogleID, profile.Picture)
		err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Users().Create(ctx, u)
		})
		if err != nil {
			return nil, err
		}
		view = &queries.AuthorizedUserView{
			ID:       u.ID(),
			Name:     u.Name(),
			Email:    u.Email().Value(),
			Picture:  u.Picture(),
			Role:     u.Role().String(),
			IsActive: true,
		}
		return a.issue(view, u.Role())
	}

	if !view.IsActive {
		return nil, ErrUserInactive
	}

	// Returning Google user: link the identity and refresh the picture.
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().LinkGoogle(ctx, view.ID, profile.GoogleID, profile.Picture)
	})
	if err != nil {
		slog.Warn("failed to link google identity", "user_id", view.ID, "error", err.Error())
		// Continue without failing - sign-in itself succeeded
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	a.touchLastLogin(ctx, view)

	return a.issue(view, role)
}

func (a *authCommandsImpl) issue(view *queries.AuthorizedUserView, role user.Role) (*AuthResult, error) {
	token, err := a.jwtService.GenerateToken(view.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &AuthResult{User: view, Token: token}, nil
}

func (a *authCommandsImpl) touchLastLogin(ctx context.Context, view *queries.AuthorizedUserView) {
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, view.ID)
	})
	if err != nil {
		slog.Warn("failed to update last login", "user_id", view.ID, "error", err.Error())
		// Continue without failing - this is not critical
	}
}
