package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/avinashh10x/invoiceGen/internal/entity"
	"github.com/avinashh10x/invoiceGen/internal/repository"
	"github.com/avinashh10x/invoiceGen/pkg/postgres"
)

func TestRepository_CreateInvoice(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)
	now := time.Now().Truncate(time.Millisecond)

	client := newTestClient(t, repo)

	inv := entity.Invoice{
		ID:       uuid.Must(uuid.NewV4()),
		Number:   "INV" + uuid.Must(uuid.NewV4()).String()[:10],
		ClientID: client.ID,
		Items: []entity.InvoiceItem{
			{
				Description: "Consulting",
				Quantity:    decimal.RequireFromString("2"),
				Price:       decimal.RequireFromString("50.005"),
				Total:       decimal.RequireFromString("100.01"),
			},
		},
		Subtotal:    decimal.RequireFromString("100.01"),
		TaxRate:     decimal.RequireFromString("10"),
		TaxAmount:   decimal.RequireFromString("10"),
		TotalAmount: decimal.RequireFromString("110.01"),
		Status:      entity.InvoiceStatusDraft,
		Currency:    entity.CurrencyUSD,
		DueDate:     now.AddDate(0, 0, 30),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := repo.CreateInvoice(context.Background(), inv)
	require.NoError(t, err)

	got, err := repo.Invoice(context.Background(), inv.ID)
	require.NoError(t, err)

	require.Equal(t, inv.Number, got.Number)
	require.Equal(t, inv.ClientID, got.ClientID)
	require.Equal(t, entity.InvoiceStatusDraft, got.Status)
	require.True(t, got.TotalAmount.Equal(inv.TotalAmount), "totalAmount = %s", got.TotalAmount)
	require.Len(t, got.Items, 1)
	require.Equal(t, "Consulting", got.Items[0].Description)
	require.Nil(t, got.PaidDate)
}

func TestRepository_Invoice_NotFound(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)

	_, err := repo.Invoice(context.Background(), uuid.Must(uuid.NewV4()))
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestRepository_UpdateInvoiceStatus(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)

	inv := newTestInvoice(t, repo, entity.InvoiceStatusSent)

	paidAt := time.Now().Truncate(time.Millisecond)

	err := repo.UpdateInvoiceStatus(context.Background(), inv.ID, entity.InvoiceStatusPaid, &paidAt, paidAt)
	require.NoError(t, err)

	got, err := repo.Invoice(context.Background(), inv.ID)
	require.NoError(t, err)

	require.Equal(t, entity.InvoiceStatusPaid, got.Status)
	require.NotNil(t, got.PaidDate)

	// Leaving paid clears the paid date.
	err = repo.UpdateInvoiceStatus(context.Background(), inv.ID, entity.InvoiceStatusSent, nil, time.Now())
	require.NoError(t, err)

	got, err = repo.Invoice(context.Background(), inv.ID)
	require.NoError(t, err)

	require.Equal(t, entity.InvoiceStatusSent, got.Status)
	require.Nil(t, got.PaidDate)
}

func TestRepository_NextInvoiceSeq(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)

	// A unique prefix isolates the sequence from other tests.
	prefix := uuid.Must(uuid.NewV4()).String()[:8]

	seq, err := repo.NextInvoiceSeq(context.Background(), prefix, 2026, time.March)
	require.NoError(t, err)
	require.Equal(t, int64(1), seq)

	seq, err = repo.NextInvoiceSeq(context.Background(), prefix, 2026, time.March)
	require.NoError(t, err)
	require.Equal(t, int64(2), seq)

	// A new month starts its own sequence.
	seq, err = repo.NextInvoiceSeq(context.Background(), prefix, 2026, time.April)
	require.NoError(t, err)
	require.Equal(t, int64(1), seq)
}

func TestRepository_NextInvoiceSeq_Concurrent(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)

	prefix := uuid.Must(uuid.NewV4()).String()[:8]

	const workers = 10

	seqs := make(chan int64, workers)

	for range workers {
		go func() {
			seq, err := repo.NextInvoiceSeq(context.Background(), prefix, 2026, time.May)
			require.NoError(t, err)
			seqs <- seq
		}()
	}

	seen := make(map[int64]struct{}, workers)

	for range workers {
		seq := <-seqs
		_, dup := seen[seq]
		require.False(t, dup, "duplicate sequence %d", seq)
		seen[seq] = struct{}{}
	}
}

func TestRepository_MarkOverdue(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)

	pastDue := newTestInvoice(t, repo, entity.InvoiceStatusSent)
	draft := newTestInvoice(t, repo, entity.InvoiceStatusDraft)

	_, err := repo.MarkOverdue(context.Background(), time.Now().AddDate(0, 2, 0))
	require.NoError(t, err)

	got, err := repo.Invoice(context.Background(), pastDue.ID)
	require.NoError(t, err)
	require.Equal(t, entity.InvoiceStatusOverdue, got.Status)

	// Draft invoices are not touched even when past due.
	got, err = repo.Invoice(context.Background(), draft.ID)
	require.NoError(t, err)
	require.Equal(t, entity.InvoiceStatusDraft, got.Status)
}

func TestRepository_Invoices_Filter(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)

	// Draft keeps the invoice out of reach of the overdue sweep running in
	// parallel tests.
	inv := newTestInvoice(t, repo, entity.InvoiceStatusDraft)

	status := entity.InvoiceStatusDraft

	invoices, total, err := repo.Invoices(context.Background(), entity.InvoiceFilter{
		Status:   &status,
		ClientID: &inv.ClientID,
		Page:     1,
		Limit:    10,
	})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, invoices, 1)
	require.Equal(t, inv.ID, invoices[0].ID)
}

func TestRepository_Invoices_SearchByNumber(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)

	inv := newTestInvoice(t, repo, entity.InvoiceStatusDraft)

	invoices, total, err := repo.Invoices(context.Background(), entity.InvoiceFilter{
		Search: inv.Number,
		Page:   1,
		Limit:  10,
	})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, inv.ID, invoices[0].ID)
}

func TestRepository_ClientCRUD(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)
	now := time.Now().Truncate(time.Millisecond)

	client := entity.Client{
		ID:      uuid.Must(uuid.NewV4()),
		Name:    "Acme Corp",
		Email:   uuid.Must(uuid.NewV4()).String() + "@example.com",
		Company: "Acme",
		Phone:   "+1 555 0100",
		Address: entity.Address{
			Street:  "1 Main St",
			City:    "Springfield",
			Country: "USA",
		},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := repo.CreateClient(context.Background(), client)
	require.NoError(t, err)

	got, err := repo.Client(context.Background(), client.ID)
	require.NoError(t, err)
	require.Equal(t, client.Name, got.Name)
	require.Equal(t, client.Address, got.Address)

	got, err = repo.ClientByEmail(context.Background(), client.Email)
	require.NoError(t, err)
	require.Equal(t, client.ID, got.ID)

	client.Name = "Acme Corp Renamed"
	client.UpdatedAt = time.Now().Truncate(time.Millisecond)

	err = repo.UpdateClient(context.Background(), client)
	require.NoError(t, err)

	got, err = repo.Client(context.Background(), client.ID)
	require.NoError(t, err)
	require.Equal(t, "Acme Corp Renamed", got.Name)

	err = repo.DeleteClient(context.Background(), client.ID)
	require.NoError(t, err)

	_, err = repo.Client(context.Background(), client.ID)
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestRepository_AdminByEmail(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)
	now := time.Now().Truncate(time.Millisecond)

	admin := entity.Admin{
		ID:           uuid.Must(uuid.NewV4()),
		Name:         "Test admin",
		Email:        uuid.Must(uuid.NewV4()).String() + "@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         entity.AdminRoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := repo.CreateAdmin(context.Background(), admin)
	require.NoError(t, err)

	got, err := repo.AdminByEmail(context.Background(), admin.Email)
	require.NoError(t, err)
	require.Equal(t, admin.ID, got.ID)
	require.Nil(t, got.LastLogin)

	lastLogin := time.Now().Truncate(time.Millisecond)

	err = repo.UpdateAdminLastLogin(context.Background(), admin.ID, lastLogin)
	require.NoError(t, err)

	got, err = repo.Admin(context.Background(), admin.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)
}

func newTestClient(t *testing.T, repo *repository.Repository) entity.Client {
	t.Helper()

	now := time.Now().Truncate(time.Millisecond)

	client := entity.Client{
		ID:        uuid.Must(uuid.NewV4()),
		Name:      "Test client",
		Email:     uuid.Must(uuid.NewV4()).String() + "@example.com",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := repo.CreateClient(context.Background(), client)
	require.NoError(t, err)

	return client
}

func newTestInvoice(t *testing.T, repo *repository.Repository, status entity.InvoiceStatus) entity.Invoice {
	t.Helper()

	client := newTestClient(t, repo)
	now := time.Now().Truncate(time.Millisecond)

	inv := entity.Invoice{
		ID:       uuid.Must(uuid.NewV4()),
		Number:   "INV" + uuid.Must(uuid.NewV4()).String()[:10],
		ClientID: client.ID,
		Items: []entity.InvoiceItem{
			{
				Description: "Work",
				Quantity:    decimal.RequireFromString("1"),
				Price:       decimal.RequireFromString("100"),
				Total:       decimal.RequireFromString("100"),
			},
		},
		Subtotal:    decimal.RequireFromString("100"),
		TaxRate:     decimal.Zero,
		TaxAmount:   decimal.Zero,
		TotalAmount: decimal.RequireFromString("100"),
		Status:      status,
		Currency:    entity.CurrencyUSD,
		DueDate:     now.AddDate(0, 1, 0),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := repo.CreateInvoice(context.Background(), inv)
	require.NoError(t, err)

	return inv
}

func newRepository(t *testing.T) *repository.Repository {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN is not set")
	}

	err := postgres.UpMigrations(dsn)
	require.NoError(t, err)

	pool, err := postgres.Connect(context.Background(), dsn, 10)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return repository.New(pool)
}
