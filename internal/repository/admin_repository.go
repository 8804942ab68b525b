package repository

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avinashh10x/invoiceGen/internal/entity"
)

func (r *Repository) CreateAdmin(ctx context.Context, a entity.Admin) error {
	const q = `
	INSERT INTO admins (id, name, email, password_hash, role, is_active, last_login, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(
		ctx,
		q,
		a.ID,
		a.Name,
		a.Email,
		a.PasswordHash,
		a.Role,
		a.IsActive,
		a.LastLogin,
		a.CreatedAt,
		a.UpdatedAt,
	)

	return err
}

func (r *Repository) Admin(ctx context.Context, id uuid.UUID) (entity.Admin, error) {
	q := selectAdmin + " WHERE id = $1"
	return scanAdmin(r.db.QueryRow(ctx, q, id))
}

func (r *Repository) AdminByEmail(ctx context.Context, email string) (entity.Admin, error) {
	q := selectAdmin + " WHERE email = $1"
	return scanAdmin(r.db.QueryRow(ctx, q, email))
}

func (r *Repository) UpdateAdminProfile(ctx context.Context, id uuid.UUID, name, email string, updatedAt time.Time) error {
	const q = `UPDATE admins SET name = $1, email = $2, updated_at = $3 WHERE id = $4`

	result, err := r.db.Exec(ctx, q, name, email, updatedAt, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *Repository) UpdateAdminLastLogin(ctx context.Context, id uuid.UUID, lastLogin time.Time) error {
	const q = `UPDATE admins SET last_login = $1, updated_at = $1 WHERE id = $2`

	result, err := r.db.Exec(ctx, q, lastLogin, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}
