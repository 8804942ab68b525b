package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/avinashh10x/invoiceGen/internal/entity"
	"github.com/avinashh10x/invoiceGen/internal/render"
	"github.com/avinashh10x/invoiceGen/pkg/config"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=service.go -destination=../mocks/service.go -package=mocks

type Repository interface {
	CreateInvoice(ctx context.Context, inv entity.Invoice) error
	Invoice(ctx context.Context, id uuid.UUID) (entity.Invoice, error)
	UpdateInvoice(ctx context.Context, inv entity.Invoice) error
	UpdateInvoiceStatus(ctx context.Context, id uuid.UUID, status entity.InvoiceStatus, paidDate *time.Time, updatedAt time.Time) error
	StampInvoiceSent(ctx context.Context, id uuid.UUID, status entity.InvoiceStatus, sentAt time.Time) error
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
	Invoices(ctx context.Context, f entity.InvoiceFilter) ([]entity.Invoice, int, error)
	InvoiceStats(ctx context.Context, f entity.InvoiceFilter) (entity.InvoiceStats, error)
	NextInvoiceSeq(ctx context.Context, prefix string, year int, month time.Month) (int64, error)
	CountInvoicesByClient(ctx context.Context, clientID uuid.UUID) (int, error)
	ClientInvoiceStats(ctx context.Context, clientID uuid.UUID) (entity.ClientInvoiceStats, error)
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
	InvoiceStatusCounts(ctx context.Context) ([]entity.StatusCount, error)
	CountInvoices(ctx context.Context) (int, error)
	RecentInvoices(ctx context.Context, limit int) ([]entity.Invoice, error)
	MonthlyRevenue(ctx context.Context, since time.Time) ([]entity.MonthlyRevenue, error)

	CreateClient(ctx context.Context, c entity.Client) error
	Client(ctx context.Context, id uuid.UUID) (entity.Client, error)
	ClientByEmail(ctx context.Context, email string) (entity.Client, error)
	UpdateClient(ctx context.Context, c entity.Client) error
	DeleteClient(ctx context.Context, id uuid.UUID) error
	Clients(ctx context.Context, f entity.ClientFilter) ([]entity.Client, int, error)
	CountClients(ctx context.Context, activeOnly bool) (int, error)

	CreateAdmin(ctx context.Context, a entity.Admin) error
	Admin(ctx context.Context, id uuid.UUID) (entity.Admin, error)
	AdminByEmail(ctx context.Context, email string) (entity.Admin, error)
	UpdateAdminProfile(ctx context.Context, id uuid.UUID, name, email string, updatedAt time.Time) error
	UpdateAdminLastLogin(ctx context.Context, id uuid.UUID, lastLogin time.Time) error
}

type Mailer interface {
	SendHTML(subject, body string, recipients []string) error
}

type Producer interface {
	InvoicePaid(ctx context.Context, invoiceID, clientID uuid.UUID, number string, total decimal.Decimal, currency string, paidAt time.Time)
}

type Service struct {
	cfg      config.Config
	repo     Repository
	mailer   Mailer
	producer Producer
}

func New(cfg config.Config, repo Repository, mailer Mailer, producer Producer) *Service {
	return &Service{
		cfg:      cfg,
		repo:     repo,
		mailer:   mailer,
		producer: producer,
	}
}

const (
	defaultPage  uint64 = 1
	defaultLimit uint64 = 10
)

func (s *Service) CreateInvoice(ctx context.Context, in entity.InvoiceInput) (entity.Invoice, error) {
	if in.Status == "" {
		in.Status = entity.InvoiceStatusDraft
	}

	if in.Currency == "" {
		in.Currency = entity.CurrencyUSD
	}

	err := ValidateInvoiceInput(in)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("validate invoice input: %w", err)
	}

	client, err := s.repo.Client(ctx, in.ClientID)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("get client %q: %w", in.ClientID, err)
	}

	now := time.Now()

	seq, err := s.repo.NextInvoiceSeq(ctx, s.cfg.Invoice.NumberPrefix, now.Year(), now.Month())
	if err != nil {
		return entity.Invoice{}, err
	}

	number, err := entity.FormatInvoiceNumber(s.cfg.Invoice.NumberPrefix, now, seq)
	if err != nil {
		return entity.Invoice{}, err
	}

	totals := entity.CalculateTotals(in.Items, in.TaxRate)

	inv := entity.Invoice{
		ID:          uuid.Must(uuid.NewV4()),
		Number:      number,
		ClientID:    client.ID,
		Items:       totals.Items,
		Subtotal:    totals.Subtotal,
		TaxRate:     in.TaxRate,
		TaxAmount:   totals.TaxAmount,
		TotalAmount: totals.TotalAmount,
		Status:      in.Status,
		Currency:    in.Currency,
		DueDate:     in.DueDate,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if in.Status == entity.InvoiceStatusPaid {
		inv.ApplyStatus(entity.InvoiceStatusPaid, in.PaidDate, now)
	}

	err = s.repo.CreateInvoice(ctx, inv)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("create invoice: %w", err)
	}

	if inv.Status == entity.InvoiceStatusPaid {
		s.producer.InvoicePaid(ctx, inv.ID, inv.ClientID, inv.Number, inv.TotalAmount, inv.Currency.String(), *inv.PaidDate)
	}

	slog.InfoContext(ctx, "invoice created",
		"number", inv.Number, "client_id", inv.ClientID, "total", inv.TotalAmount)

	return inv, nil
}

// Invoice returns an invoice together with the referenced client.
func (s *Service) Invoice(ctx context.Context, id uuid.UUID) (entity.Invoice, entity.Client, error) {
	inv, err := s.repo.Invoice(ctx, id)
	if err != nil {
		return entity.Invoice{}, entity.Client{}, fmt.Errorf("get invoice %q: %w", id, err)
	}

	client, err := s.repo.Client(ctx, inv.ClientID)
	if err != nil {
		return entity.Invoice{}, entity.Client{}, fmt.Errorf("get client %q: %w", inv.ClientID, err)
	}

	return inv, client, nil
}

// UpdateInvoice applies a partial update. A paid invoice rejects any update
// through this path; the status-update and mark-paid operations are the
// only ways to touch it.
func (s *Service) UpdateInvoice(ctx context.Context, id uuid.UUID, upd entity.InvoiceUpdate) (entity.Invoice, error) {
	inv, err := s.repo.Invoice(ctx, id)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("get invoice %q: %w", id, err)
	}

	if inv.Locked() {
		return entity.Invoice{}, fmt.Errorf("update invoice %q: %w", inv.Number, entity.ErrInvoicePaid)
	}

	err = ValidateInvoiceUpdate(upd)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("validate invoice update: %w", err)
	}

	if upd.ClientID != nil && *upd.ClientID != inv.ClientID {
		_, err = s.repo.Client(ctx, *upd.ClientID)
		if err != nil {
			return entity.Invoice{}, fmt.Errorf("get client %q: %w", *upd.ClientID, err)
		}

		inv.ClientID = *upd.ClientID
	}

	now := time.Now()

	switch {
	case upd.Items != nil:
		if upd.TaxRate != nil {
			inv.TaxRate = *upd.TaxRate
		}

		totals := entity.CalculateTotals(upd.Items, inv.TaxRate)
		inv.Items = totals.Items
		inv.Subtotal = totals.Subtotal
		inv.TaxAmount = totals.TaxAmount
		inv.TotalAmount = totals.TotalAmount

	case upd.TaxRate != nil:
		// Tax rate changed with the item list untouched: reuse the stored
		// subtotal instead of recomputing from items.
		inv.TaxRate = *upd.TaxRate
		inv.TaxAmount, inv.TotalAmount = entity.RecalculateTax(inv.Subtotal, inv.TaxRate)
	}

	if upd.DueDate != nil {
		inv.DueDate = *upd.DueDate
	}

	if upd.Notes != nil {
		inv.Notes = *upd.Notes
	}

	if upd.Currency != nil {
		inv.Currency = *upd.Currency
	}

	enteredPaid := false

	if upd.Status != nil {
		enteredPaid = *upd.Status == entity.InvoiceStatusPaid && inv.Status != entity.InvoiceStatusPaid
		inv.ApplyStatus(*upd.Status, nil, now)
	}

	inv.UpdatedAt = now

	err = s.repo.UpdateInvoice(ctx, inv)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("update invoice %q: %w", inv.Number, err)
	}

	if enteredPaid {
		s.producer.InvoicePaid(ctx, inv.ID, inv.ClientID, inv.Number, inv.TotalAmount, inv.Currency.String(), *inv.PaidDate)
	}

	return inv, nil
}

// UpdateInvoiceStatus moves an invoice to any valid status. Deliberately
// exempt from the paid lock, matching the dedicated status endpoint.
func (s *Service) UpdateInvoiceStatus(
	ctx context.Context,
	id uuid.UUID,
	status entity.InvoiceStatus,
	paidDate *time.Time,
) (entity.Invoice, error) {
	err := status.Validate()
	if err != nil {
		return entity.Invoice{}, err
	}

	inv, err := s.repo.Invoice(ctx, id)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("get invoice %q: %w", id, err)
	}

	enteredPaid := status == entity.InvoiceStatusPaid && inv.Status != entity.InvoiceStatusPaid

	now := time.Now()
	inv.ApplyStatus(status, paidDate, now)
	inv.UpdatedAt = now

	err = s.repo.UpdateInvoiceStatus(ctx, inv.ID, inv.Status, inv.PaidDate, now)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("update invoice %q status to %q: %w", inv.Number, status, err)
	}

	if enteredPaid {
		s.producer.InvoicePaid(ctx, inv.ID, inv.ClientID, inv.Number, inv.TotalAmount, inv.Currency.String(), *inv.PaidDate)
	}

	return inv, nil
}

// MarkInvoicePaid is idempotent-rejecting: marking an already paid invoice
// is an explicit error, not a no-op.
func (s *Service) MarkInvoicePaid(ctx context.Context, id uuid.UUID) (entity.Invoice, error) {
	inv, err := s.repo.Invoice(ctx, id)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("get invoice %q: %w", id, err)
	}

	if inv.Status == entity.InvoiceStatusPaid {
		return entity.Invoice{}, fmt.Errorf("invoice %q: %w", inv.Number, entity.ErrAlreadyPaid)
	}

	now := time.Now()
	inv.ApplyStatus(entity.InvoiceStatusPaid, nil, now)
	inv.UpdatedAt = now

	err = s.repo.UpdateInvoiceStatus(ctx, inv.ID, inv.Status, inv.PaidDate, now)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("mark invoice %q paid: %w", inv.Number, err)
	}

	s.producer.InvoicePaid(ctx, inv.ID, inv.ClientID, inv.Number, inv.TotalAmount, inv.Currency.String(), *inv.PaidDate)

	slog.InfoContext(ctx, "invoice marked as paid", "number", inv.Number, "total", inv.TotalAmount)

	return inv, nil
}

func (s *Service) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	inv, err := s.repo.Invoice(ctx, id)
	if err != nil {
		return fmt.Errorf("get invoice %q: %w", id, err)
	}

	if inv.Locked() {
		return fmt.Errorf("delete invoice %q: %w", inv.Number, entity.ErrInvoicePaid)
	}

	err = s.repo.DeleteInvoice(ctx, id)
	if err != nil {
		return fmt.Errorf("delete invoice %q: %w", inv.Number, err)
	}

	return nil
}

func (s *Service) Invoices(ctx context.Context, f entity.InvoiceFilter) ([]entity.Invoice, int, entity.InvoiceStats, error) {
	if f.Page == 0 {
		f.Page = defaultPage
	}

	if f.Limit == 0 {
		f.Limit = defaultLimit
	}

	invoices, total, err := s.repo.Invoices(ctx, f)
	if err != nil {
		return nil, 0, entity.InvoiceStats{}, fmt.Errorf("get invoices: %w", err)
	}

	stats, err := s.repo.InvoiceStats(ctx, f)
	if err != nil {
		return nil, 0, entity.InvoiceStats{}, fmt.Errorf("get invoice stats: %w", err)
	}

	return invoices, total, stats, nil
}

// SendInvoice e-mails the invoice to the client. On success it stamps the
// e-mail fields and advances a draft invoice to sent. A mail failure is
// reported to the caller but rolls nothing back.
func (s *Service) SendInvoice(ctx context.Context, id uuid.UUID) (entity.Invoice, error) {
	inv, client, err := s.Invoice(ctx, id)
	if err != nil {
		return entity.Invoice{}, err
	}

	if client.Email == "" {
		return entity.Invoice{}, fmt.Errorf("%w: client %q has no email address", entity.ErrInvalidArgument, client.Name)
	}

	body, err := render.InvoiceEmail(inv, client)
	if err != nil {
		return entity.Invoice{}, err
	}

	err = s.mailer.SendHTML(render.EmailSubject(inv, s.cfg.Company), body, []string{client.Email})
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("send invoice %q email: %w", inv.Number, err)
	}

	status := inv.Status
	if status == entity.InvoiceStatusDraft {
		status = entity.InvoiceStatusSent
	}

	now := time.Now()

	err = s.repo.StampInvoiceSent(ctx, inv.ID, status, now)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("stamp invoice %q sent: %w", inv.Number, err)
	}

	inv.Status = status
	inv.EmailSent = true
	inv.EmailSentDate = &now
	inv.UpdatedAt = now

	slog.InfoContext(ctx, "invoice emailed", "number", inv.Number, "to", client.Email)

	return inv, nil
}

// InvoiceDocument renders the downloadable plain-text document for an
// invoice and returns it with a file name.
func (s *Service) InvoiceDocument(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	inv, client, err := s.Invoice(ctx, id)
	if err != nil {
		return nil, "", err
	}

	doc := render.InvoiceDocument(inv, client, s.cfg.Company)
	filename := fmt.Sprintf("invoice-%s.pdf", inv.Number)

	return doc, filename, nil
}

func (s *Service) DashboardStats(ctx context.Context) (entity.DashboardStats, error) {
	const recentLimit = 5

	statusCounts, err := s.repo.InvoiceStatusCounts(ctx)
	if err != nil {
		return entity.DashboardStats{}, fmt.Errorf("get invoice status counts: %w", err)
	}

	totalClients, err := s.repo.CountClients(ctx, true)
	if err != nil {
		return entity.DashboardStats{}, fmt.Errorf("count clients: %w", err)
	}

	totalInvoices, err := s.repo.CountInvoices(ctx)
	if err != nil {
		return entity.DashboardStats{}, fmt.Errorf("count invoices: %w", err)
	}

	recent, err := s.repo.RecentInvoices(ctx, recentLimit)
	if err != nil {
		return entity.DashboardStats{}, fmt.Errorf("get recent invoices: %w", err)
	}

	now := time.Now()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)

	revenue, err := s.repo.MonthlyRevenue(ctx, since)
	if err != nil {
		return entity.DashboardStats{}, fmt.Errorf("get monthly revenue: %w", err)
	}

	return entity.DashboardStats{
		InvoiceStats:   statusCounts,
		TotalClients:   totalClients,
		TotalInvoices:  totalInvoices,
		RecentInvoices: recent,
		MonthlyRevenue: revenue,
	}, nil
}

// MarkOverdueInvoices is a background job: sent invoices past their due
// date become overdue.
func (s *Service) MarkOverdueInvoices(ctx context.Context) error {
	count, err := s.repo.MarkOverdue(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("mark overdue invoices: %w", err)
	}

	if count > 0 {
		slog.InfoContext(ctx, "invoices marked overdue", "count", count)
	}

	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, entity.ErrNotFound)
}
