package repository

import (
	"context"
	"errors"

	"metromobiles/internal/domain/user"
	"metromobiles/internal/infra"
	"metromobiles/internal/infra/db"
	"metromobiles/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgErrCodeUniqueViolation = "23505"

func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation
}

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) shared.UserRepository {
	return &UserRepository{db: dbtx}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, google_id, picture, role, is_active)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)`,
		u.ID(), u.Name(), u.Email().Value(), u.PasswordHash(),
		u.GoogleID(), u.Picture(), u.Role().String(), u.IsActive(),
	)
	if err != nil {
		if isDuplicateKey(err) {
			return infra.WrapRepoErr("email already registered", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1`,
		id,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update user last login", err)
	}
	return nil
}

func (r *UserRepository) LinkGoogle(ctx context.Context, id uuid.UUID, googleID, picture string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET google_id = $2, picture = $3, updated_at = now() WHERE id = $1`,
		id, googleID, picture,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to link google identity", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}
