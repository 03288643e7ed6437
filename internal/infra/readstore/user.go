package readstore

import (
	"context"
	"errors"

	"metromobiles/internal/infra"
	"metromobiles/internal/infra/db"
	"metromobiles/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) queries.UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (s *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, email, COALESCE(picture, ''), role, is_active, last_login
		FROM users WHERE id = $1`,
		id,
	)
	var view queries.AuthorizedUserView
	err := row.Scan(&view.ID, &view.Name, &view.Email, &view.Picture,
		&view.Role, &view.IsActive, &view.LastLogin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &view, nil
}

func (s *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, email, COALESCE(picture, ''), role, is_active, last_login,
		       COALESCE(password_hash, '')
		FROM users WHERE email = $1`,
		email,
	)

	var (
		view queries.AuthorizedUserView
		hash string
	)
	err := row.Scan(&view.ID, &view.Name, &view.Email, &view.Picture,
		&view.Role, &view.IsActive, &view.LastLogin, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	return &view, hash, nil
}
