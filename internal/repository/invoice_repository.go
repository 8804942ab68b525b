package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/gofrs/uuid/v5"

	"github.com/avinashh10x/invoiceGen/internal/entity"
)

func (r *Repository) CreateInvoice(ctx context.Context, inv entity.Invoice) error {
	const q = `
	INSERT INTO invoices (
		id,
		invoice_number,
		client_id,
		items,
		subtotal,
		tax_rate,
		tax_amount,
		total_amount,
		status,
		currency,
		due_date,
		paid_date,
		notes,
		email_sent,
		email_sent_date,
		created_at,
		updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.db.Exec(
		ctx,
		q,
		inv.ID,
		inv.Number,
		inv.ClientID,
		inv.Items,
		inv.Subtotal,
		inv.TaxRate,
		inv.TaxAmount,
		inv.TotalAmount,
		inv.Status,
		inv.Currency,
		inv.DueDate,
		inv.PaidDate,
		inv.Notes,
		inv.EmailSent,
		inv.EmailSentDate,
		inv.CreatedAt,
		inv.UpdatedAt,
	)

	return err
}

func (r *Repository) Invoice(ctx context.Context, id uuid.UUID) (entity.Invoice, error) {
	q := selectInvoice + " WHERE id = $1"
	return scanInvoice(r.db.QueryRow(ctx, q, id))
}

func (r *Repository) UpdateInvoice(ctx context.Context, inv entity.Invoice) error {
	const q = `
	UPDATE invoices SET
		client_id = $1,
		items = $2,
		subtotal = $3,
		tax_rate = $4,
		tax_amount = $5,
		total_amount = $6,
		status = $7,
		currency = $8,
		due_date = $9,
		paid_date = $10,
		notes = $11,
		updated_at = $12
	WHERE id = $13
	`

	result, err := r.db.Exec(
		ctx,
		q,
		inv.ClientID,
		inv.Items,
		inv.Subtotal,
		inv.TaxRate,
		inv.TaxAmount,
		inv.TotalAmount,
		inv.Status,
		inv.Currency,
		inv.DueDate,
		inv.PaidDate,
		inv.Notes,
		inv.UpdatedAt,
		inv.ID,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *Repository) UpdateInvoiceStatus(
	ctx context.Context,
	id uuid.UUID,
	status entity.InvoiceStatus,
	paidDate *time.Time,
	updatedAt time.Time,
) error {
	const q = `UPDATE invoices SET status = $1, paid_date = $2, updated_at = $3 WHERE id = $4`

	result, err := r.db.Exec(ctx, q, status, paidDate, updatedAt, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

// StampInvoiceSent records a successful e-mail delivery and the resulting
// status in one statement.
func (r *Repository) StampInvoiceSent(
	ctx context.Context,
	id uuid.UUID,
	status entity.InvoiceStatus,
	sentAt time.Time,
) error {
	const q = `
	UPDATE invoices SET status = $1, email_sent = TRUE, email_sent_date = $2, updated_at = $2
	WHERE id = $3
	`

	result, err := r.db.Exec(ctx, q, status, sentAt, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *Repository) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM invoices WHERE id = $1`

	result, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *Repository) Invoices(ctx context.Context, f entity.InvoiceFilter) ([]entity.Invoice, int, error) {
	stmt := sq.Select(
		"i.id",
		"i.invoice_number",
		"i.client_id",
		"i.items",
		"i.subtotal",
		"i.tax_rate",
		"i.tax_amount",
		"i.total_amount",
		"i.status",
		"i.currency",
		"i.due_date",
		"i.paid_date",
		"i.notes",
		"i.email_sent",
		"i.email_sent_date",
		"i.created_at",
		"i.updated_at",
		"COUNT(*) OVER() AS total_count",
	).From("invoices i").
		LeftJoin("clients c ON c.id = i.client_id").
		PlaceholderFormat(sq.Dollar)

	stmt = applyInvoiceFilter(stmt, f).
		Limit(f.Limit).
		Offset(f.Page*f.Limit - f.Limit).
		OrderBy("i.created_at DESC")

	sql, args, err := stmt.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	invoices := make([]entity.Invoice, 0, f.Limit)

	var totalCount int

	for rows.Next() {
		var inv entity.Invoice

		var count int

		err = rows.Scan(
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
			&count,
		)
		if err != nil {
			return nil, 0, err
		}

		totalCount = count

		invoices = append(invoices, inv)
	}

	return invoices, totalCount, nil
}

// InvoiceStats aggregates total, paid and pending sums over the same filter
// the invoice list uses.
func (r *Repository) InvoiceStats(ctx context.Context, f entity.InvoiceFilter) (entity.InvoiceStats, error) {
	stmt := sq.Select(
		"COALESCE(SUM(i.total_amount), 0)",
		"COALESCE(SUM(CASE WHEN i.status = 'paid' THEN i.total_amount ELSE 0 END), 0)",
		"COALESCE(SUM(CASE WHEN i.status <> 'paid' THEN i.total_amount ELSE 0 END), 0)",
	).From("invoices i").
		LeftJoin("clients c ON c.id = i.client_id").
		PlaceholderFormat(sq.Dollar)

	stmt = applyInvoiceFilter(stmt, f)

	sql, args, err := stmt.ToSql()
	if err != nil {
		return entity.InvoiceStats{}, err
	}

	var stats entity.InvoiceStats

	err = r.db.QueryRow(ctx, sql, args...).Scan(&stats.TotalAmount, &stats.PaidAmount, &stats.PendingAmount)
	if err != nil {
		return entity.InvoiceStats{}, err
	}

	return stats, nil
}

func applyInvoiceFilter(stmt sq.SelectBuilder, f entity.InvoiceFilter) sq.SelectBuilder {
	if f.Status != nil {
		stmt = stmt.Where(sq.Eq{"i.status": *f.Status})
	}

	if f.ClientID != nil {
		stmt = stmt.Where(sq.Eq{"i.client_id": *f.ClientID})
	}

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		stmt = stmt.Where(sq.Or{
			sq.ILike{"i.invoice_number": pattern},
			sq.ILike{"i.notes": pattern},
			sq.ILike{"c.name": pattern},
			sq.ILike{"c.company": pattern},
			sq.ILike{"c.email": pattern},
		})
	}

	if f.StartDate != nil {
		stmt = stmt.Where(sq.GtOrEq{"i.created_at": *f.StartDate})
	}

	if f.EndDate != nil {
		stmt = stmt.Where(sq.LtOrEq{"i.created_at": *f.EndDate})
	}

	return stmt
}

// NextInvoiceSeq atomically draws the next number in the monthly sequence
// scoped to (prefix, year, month). The upsert makes concurrent creations
// serialize on the counter row, so duplicates cannot be produced.
func (r *Repository) NextInvoiceSeq(ctx context.Context, prefix string, year int, month time.Month) (int64, error) {
	const q = `
	INSERT INTO invoice_sequences (prefix, year, month, seq)
	VALUES ($1, $2, $3, 1)
	ON CONFLICT (prefix, year, month) DO UPDATE SET seq = invoice_sequences.seq + 1
	RETURNING seq
	`

	var seq int64

	err := r.db.QueryRow(ctx, q, prefix, year, int(month)).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next invoice seq for %s %d-%02d: %w", prefix, year, int(month), err)
	}

	return seq, nil
}

func (r *Repository) CountInvoicesByClient(ctx context.Context, clientID uuid.UUID) (int, error) {
	const q = `SELECT COUNT(*) FROM invoices WHERE client_id = $1`

	var count int

	err := r.db.QueryRow(ctx, q, clientID).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *Repository) ClientInvoiceStats(ctx context.Context, clientID uuid.UUID) (entity.ClientInvoiceStats, error) {
	const q = `
	SELECT
		COUNT(*),
		COALESCE(SUM(total_amount), 0),
		COALESCE(SUM(CASE WHEN status = 'paid' THEN total_amount ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status <> 'paid' THEN total_amount ELSE 0 END), 0)
	FROM invoices
	WHERE client_id = $1
	`

	var stats entity.ClientInvoiceStats

	err := r.db.QueryRow(ctx, q, clientID).
		Scan(&stats.TotalInvoices, &stats.TotalAmount, &stats.PaidAmount, &stats.PendingAmount)
	if err != nil {
		return entity.ClientInvoiceStats{}, err
	}

	return stats, nil
}

// MarkOverdue flips sent invoices past their due date to overdue.
func (r *Repository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	const q = `UPDATE invoices SET status = $1, updated_at = $2 WHERE status = $3 AND due_date < $2`

	result, err := r.db.Exec(ctx, q, entity.InvoiceStatusOverdue, now, entity.InvoiceStatusSent)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}

func (r *Repository) InvoiceStatusCounts(ctx context.Context) ([]entity.StatusCount, error) {
	const q = `SELECT status, COUNT(*), COALESCE(SUM(total_amount), 0) FROM invoices GROUP BY status`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []entity.StatusCount

	for rows.Next() {
		var sc entity.StatusCount

		err = rows.Scan(&sc.Status, &sc.Count, &sc.TotalAmount)
		if err != nil {
			return nil, err
		}

		counts = append(counts, sc)
	}

	return counts, nil
}

func (r *Repository) CountInvoices(ctx context.Context) (int, error) {
	const q = `SELECT COUNT(*) FROM invoices`

	var count int

	err := r.db.QueryRow(ctx, q).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *Repository) RecentInvoices(ctx context.Context, limit int) ([]entity.Invoice, error) {
	q := selectInvoice + " ORDER BY created_at DESC LIMIT $1"

	rows, err := r.db.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := make([]entity.Invoice, 0, limit)

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}

		invoices = append(invoices, inv)
	}

	return invoices, nil
}

func (r *Repository) MonthlyRevenue(ctx context.Context, since time.Time) ([]entity.MonthlyRevenue, error) {
	const q = `
	SELECT
		EXTRACT(YEAR FROM paid_date)::int,
		EXTRACT(MONTH FROM paid_date)::int,
		SUM(total_amount)
	FROM invoices
	WHERE status = 'paid' AND paid_date >= $1
	GROUP BY 1, 2
	ORDER BY 1, 2
	`

	rows, err := r.db.Query(ctx, q, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var revenue []entity.MonthlyRevenue

	for rows.Next() {
		var mr entity.MonthlyRevenue

		var month int

		err = rows.Scan(&mr.Year, &month, &mr.Revenue)
		if err != nil {
			return nil, err
		}

		mr.Month = time.Month(month)

		revenue = append(revenue, mr)
	}

	return revenue, nil
}
