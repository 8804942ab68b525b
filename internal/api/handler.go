package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avinashh10x/invoiceGen/internal/entity"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=../mocks/handler.go -package=mocks

type Service interface {
	CreateInvoice(ctx context.Context, in entity.InvoiceInput) (entity.Invoice, error)
	Invoice(ctx context.Context, id uuid.UUID) (entity.Invoice, entity.Client, error)
	UpdateInvoice(ctx context.Context, id uuid.UUID, upd entity.InvoiceUpdate) (entity.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, id uuid.UUID, status entity.InvoiceStatus, paidDate *time.Time) (entity.Invoice, error)
	MarkInvoicePaid(ctx context.Context, id uuid.UUID) (entity.Invoice, error)
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
	Invoices(ctx context.Context, f entity.InvoiceFilter) ([]entity.Invoice, int, entity.InvoiceStats, error)
	SendInvoice(ctx context.Context, id uuid.UUID) (entity.Invoice, error)
	InvoiceDocument(ctx context.Context, id uuid.UUID) ([]byte, string, error)
	DashboardStats(ctx context.Context) (entity.DashboardStats, error)

	CreateClient(ctx context.Context, in entity.ClientInput) (entity.Client, error)
	ClientStats(ctx context.Context, id uuid.UUID) (entity.Client, entity.ClientInvoiceStats, error)
	UpdateClient(ctx context.Context, id uuid.UUID, in entity.ClientInput) (entity.Client, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error
	Clients(ctx context.Context, f entity.ClientFilter) ([]entity.Client, int, error)

	Register(ctx context.Context, name, email, password string) (entity.Admin, string, error)
	Login(ctx context.Context, email, password string) (entity.Admin, string, error)
	Profile(ctx context.Context) (entity.Admin, error)
	UpdateProfile(ctx context.Context, name, email string) (entity.Admin, error)
}

type Handler struct {
	s Service
}

func NewHandler(s Service) *Handler {
	return &Handler{s: s}
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, err := w.Write([]byte("OK\n"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Service is unhealthy")
		return
	}
}

// Pagination mirrors the shape list endpoints return alongside their rows.
type Pagination struct {
	Current int `json:"current"`
	Pages   int `json:"pages"`
	Total   int `json:"total"`
	Limit   int `json:"limit"`
}

func newPagination(page, limit uint64, total int) Pagination {
	pages := total / int(limit)
	if total%int(limit) != 0 {
		pages++
	}

	return Pagination{
		Current: int(page),
		Pages:   pages,
		Total:   total,
		Limit:   int(limit),
	}
}

// sendServiceErr maps a service error to an HTTP response. Handlers with
// endpoint-specific cases handle those first and fall back here.
func sendServiceErr(ctx context.Context, w http.ResponseWriter, err error, fallbackMsg string) {
	var hasInvoices *entity.ClientHasInvoicesError

	switch {
	case errors.Is(err, entity.ErrNotFound):
		SendJSONErr(ctx, w, http.StatusNotFound, err, "Not found")
	case errors.Is(err, entity.ErrInvalidArgument):
		SendJSONErr(ctx, w, http.StatusUnprocessableEntity, err, "Invalid input")
	case errors.Is(err, entity.ErrUnauthenticated):
		SendJSONErr(ctx, w, http.StatusUnauthorized, err, "Authentication required")
	case errors.Is(err, entity.ErrForbidden):
		SendJSONErr(ctx, w, http.StatusForbidden, err, "Forbidden")
	case errors.Is(err, entity.ErrEmailTaken):
		SendJSONErr(ctx, w, http.StatusConflict, err, "Email is already in use")
	case errors.Is(err, entity.ErrInvoicePaid):
		SendJSONErr(ctx, w, http.StatusConflict, err, "Paid invoices cannot be modified or deleted")
	case errors.Is(err, entity.ErrAlreadyPaid):
		SendJSONErr(ctx, w, http.StatusConflict, err, "Invoice is already marked as paid")
	case errors.Is(err, entity.ErrSequenceOverflow):
		SendJSONErr(ctx, w, http.StatusConflict, err, "Invoice number sequence exhausted for this month")
	case errors.As(err, &hasInvoices):
		SendJSONErr(ctx, w, http.StatusConflict, err, "Client has invoices and cannot be deleted")
	default:
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, fallbackMsg)
	}
}
