package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avinashh10x/invoiceGen/internal/entity"
)

type Repository struct {
	db *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{
		db: pool,
	}
}

func scanInvoice(row pgx.Row) (inv entity.Invoice, err error) {
	err = row.Scan(
		&inv.ID,
		&inv.Number,
		&inv.ClientID,
		&inv.Items,
		&inv.Subtotal,
		&inv.TaxRate,
		&inv.TaxAmount,
		&inv.TotalAmount,
		&inv.Status,
		&inv.Currency,
		&inv.DueDate,
		&inv.PaidDate,
		&inv.Notes,
		&inv.EmailSent,
		&inv.EmailSentDate,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Invoice{}, entity.ErrNotFound
		}

		return entity.Invoice{}, err
	}

	return inv, nil
}

func scanClient(row pgx.Row) (c entity.Client, err error) {
	err = row.Scan(
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
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Client{}, entity.ErrNotFound
		}

		return entity.Client{}, err
	}

	return c, nil
}

func scanAdmin(row pgx.Row) (a entity.Admin, err error) {
	err = row.Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.PasswordHash,
		&a.Role,
		&a.IsActive,
		&a.LastLogin,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Admin{}, entity.ErrNotFound
		}

		return entity.Admin{}, err
	}

	return a, nil
}
