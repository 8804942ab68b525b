package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/gofrs/uuid/v5"

	"github.com/avinashh10x/invoiceGen/internal/entity"
)

func (r *Repository) CreateClient(ctx context.Context, c entity.Client) error {
	const q = `
	INSERT INTO clients (
		id,
		name,
		email,
		company,
		phone,
		street,
		city,
		state,
		zip_code,
		country,
		is_active,
		notes,
		created_at,
		updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(
		ctx,
		q,
		c.ID,
		c.Name,
		c.Email,
		c.Company,
		c.Phone,
		c.Address.Street,
		c.Address.City,
		c.Address.State,
		c.Address.ZipCode,
		c.Address.Country,
		c.IsActive,
		c.Notes,
		c.CreatedAt,
		c.UpdatedAt,
	)

	return err
}

func (r *Repository) Client(ctx context.Context, id uuid.UUID) (entity.Client, error) {
	q := selectClient + " WHERE id = $1"
	return scanClient(r.db.QueryRow(ctx, q, id))
}

func (r *Repository) ClientByEmail(ctx context.Context, email string) (entity.Client, error) {
	q := selectClient + " WHERE email = $1"
	return scanClient(r.db.QueryRow(ctx, q, email))
}

func (r *Repository) UpdateClient(ctx context.Context, c entity.Client) error {
	const q = `
	UPDATE clients SET
		name = $1,
		email = $2,
		company = $3,
		phone = $4,
		street = $5,
		city = $6,
		state = $7,
		zip_code = $8,
		country = $9,
		is_active = $10,
		notes = $11,
		updated_at = $12
	WHERE id = $13
	`

	result, err := r.db.Exec(
		ctx,
		q,
		c.Name,
		c.Email,
		c.Company,
		c.Phone,
		c.Address.Street,
		c.Address.City,
		c.Address.State,
		c.Address.ZipCode,
		c.Address.Country,
		c.IsActive,
		c.Notes,
		c.UpdatedAt,
		c.ID,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *Repository) DeleteClient(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM clients WHERE id = $1`

	result, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *Repository) Clients(ctx context.Context, f entity.ClientFilter) ([]entity.Client, int, error) {
	stmt := sq.Select(
		"id",
		"name",
		"email",
		"company",
		"phone",
		"street",
		"city",
		"state",
		"zip_code",
		"country",
		"is_active",
		"notes",
		"created_at",
		"updated_at",
		"COUNT(*) OVER() AS total_count",
	).From("clients").PlaceholderFormat(sq.Dollar)

	stmt = applyClientFilter(stmt, f).
		Limit(f.Limit).
		Offset(f.Page*f.Limit - f.Limit).
		OrderBy("created_at DESC")

	sql, args, err := stmt.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	clients := make([]entity.Client, 0, f.Limit)

	var totalCount int

	for rows.Next() {
		var c entity.Client

		var count int

		err = rows.Scan(
			&c.ID,
			&c.Name,
			&c.Email,
			&c.Company,
			&c.Phone,
			&c.Address.Street,
			&c.Address.City,
			&c.Address.State,
			&c.Address.ZipCode,
			&c.Address.Country,
			&c.IsActive,
			&c.Notes,
			&c.CreatedAt,
			&c.UpdatedAt,
			&count,
		)
		if err != nil {
			return nil, 0, err
		}

		totalCount = count

		clients = append(clients, c)
	}

	return clients, totalCount, nil
}

func applyClientFilter(stmt sq.SelectBuilder, f entity.ClientFilter) sq.SelectBuilder {
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		stmt = stmt.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"company": pattern},
			sq.ILike{"email": pattern},
		})
	}

	if f.IsActive != nil {
		stmt = stmt.Where(sq.Eq{"is_active": *f.IsActive})
	}

	return stmt
}

func (r *Repository) CountClients(ctx context.Context, activeOnly bool) (int, error) {
	q := `SELECT COUNT(*) FROM clients`
	if activeOnly {
		q += ` WHERE is_active`
	}

	var count int

	err := r.db.QueryRow(ctx, q).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
