package repository

const (
	selectInvoice = `SELECT
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
	FROM invoices`

	selectClient = `SELECT
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
	FROM clients`

	selectAdmin = `SELECT
		id,
		name,
		email,
		password_hash,
		role,
		is_active,
		last_login,
		created_at,
		updated_at
	FROM admins`
)
