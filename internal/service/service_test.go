package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/avinashh10x/invoiceGen/internal/entity"
	"github.com/avinashh10x/invoiceGen/internal/mocks"
	"github.com/avinashh10x/invoiceGen/internal/service"
	"github.com/avinashh10x/invoiceGen/pkg/config"
)

type Tester struct {
	s        *service.Service
	repo     *mocks.MockRepository
	mailer   *mocks.MockMailer
	producer *mocks.MockProducer
}

func NewTester(t *testing.T) Tester {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	mailer := mocks.NewMockMailer(ctrl)
	producer := mocks.NewMockProducer(ctrl)

	cfg := config.Config{
		Auth:    config.Auth{JWTSecret: "test-secret", TokenTTL: time.Hour},
		Invoice: config.Invoice{NumberPrefix: "INV"},
		Company: config.Company{Name: "Test Company"},
	}

	return Tester{
		s:        service.New(cfg, repo, mailer, producer),
		repo:     repo,
		mailer:   mailer,
		producer: producer,
	}
}

func testClient() entity.Client {
	return entity.Client{
		ID:       uuid.Must(uuid.NewV4()),
		Name:     "Test client",
		Email:    "client@example.com",
		IsActive: true,
	}
}

func TestService_CreateInvoice(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	client := testClient()

	c.repo.EXPECT().Client(gomock.Any(), client.ID).Return(client, nil)
	c.repo.EXPECT().NextInvoiceSeq(gomock.Any(), "INV", gomock.Any(), gomock.Any()).Return(int64(42), nil)
	c.repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(nil)

	now := time.Now()

	inv, err := c.s.CreateInvoice(context.Background(), entity.InvoiceInput{
		ClientID: client.ID,
		Items: []entity.InvoiceItem{
			{Description: "Consulting", Quantity: decimal.RequireFromString("2"), Price: decimal.RequireFromString("50.005")},
		},
		TaxRate: decimal.RequireFromString("10"),
		DueDate: now.AddDate(0, 0, 30),
	})
	require.NoError(t, err)

	require.Equal(t, entity.InvoiceStatusDraft, inv.Status)
	require.Equal(t, entity.CurrencyUSD, inv.Currency)
	require.Contains(t, inv.Number, "INV")
	require.Contains(t, inv.Number, "0042")
	require.True(t, inv.Subtotal.Equal(decimal.RequireFromString("100.01")), "subtotal = %s", inv.Subtotal)
	require.True(t, inv.TaxAmount.Equal(decimal.RequireFromString("10")), "taxAmount = %s", inv.TaxAmount)
	require.True(t, inv.TotalAmount.Equal(decimal.RequireFromString("110.01")), "totalAmount = %s", inv.TotalAmount)
	require.Nil(t, inv.PaidDate)
}

func TestService_CreateInvoice_Paid(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	client := testClient()

	c.repo.EXPECT().Client(gomock.Any(), client.ID).Return(client, nil)
	c.repo.EXPECT().NextInvoiceSeq(gomock.Any(), "INV", gomock.Any(), gomock.Any()).Return(int64(1), nil)
	c.repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(nil)
	c.producer.EXPECT().InvoicePaid(gomock.Any(), gomock.Any(), client.ID, gomock.Any(), gomock.Any(), "USD", gomock.Any())

	inv, err := c.s.CreateInvoice(context.Background(), entity.InvoiceInput{
		ClientID: client.ID,
		Items: []entity.InvoiceItem{
			{Description: "Work", Quantity: decimal.RequireFromString("1"), Price: decimal.RequireFromString("100")},
		},
		DueDate: time.Now().AddDate(0, 0, 14),
		Status:  entity.InvoiceStatusPaid,
	})
	require.NoError(t, err)

	require.Equal(t, entity.InvoiceStatusPaid, inv.Status)
	require.NotNil(t, inv.PaidDate)
}

func TestService_CreateInvoice_UnknownClient(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	clientID := uuid.Must(uuid.NewV4())

	c.repo.EXPECT().Client(gomock.Any(), clientID).Return(entity.Client{}, entity.ErrNotFound)

	_, err := c.s.CreateInvoice(context.Background(), entity.InvoiceInput{
		ClientID: clientID,
		Items: []entity.InvoiceItem{
			{Description: "Work", Quantity: decimal.RequireFromString("1"), Price: decimal.RequireFromString("100")},
		},
		DueDate: time.Now().AddDate(0, 0, 14),
	})
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestService_CreateInvoice_SequenceOverflow(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	client := testClient()

	c.repo.EXPECT().Client(gomock.Any(), client.ID).Return(client, nil)
	c.repo.EXPECT().NextInvoiceSeq(gomock.Any(), "INV", gomock.Any(), gomock.Any()).Return(int64(10000), nil)

	_, err := c.s.CreateInvoice(context.Background(), entity.InvoiceInput{
		ClientID: client.ID,
		Items: []entity.InvoiceItem{
			{Description: "Work", Quantity: decimal.RequireFromString("1"), Price: decimal.RequireFromString("100")},
		},
		DueDate: time.Now().AddDate(0, 0, 14),
	})
	require.ErrorIs(t, err, entity.ErrSequenceOverflow)
}

func TestService_UpdateInvoice_PaidRejected(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	paidAt := time.Now()
	inv := entity.Invoice{
		ID:       uuid.Must(uuid.NewV4()),
		Number:   "INV2026010001",
		Status:   entity.InvoiceStatusPaid,
		PaidDate: &paidAt,
	}

	c.repo.EXPECT().Invoice(gomock.Any(), inv.ID).Return(inv, nil)

	notes := "updated"

	_, err := c.s.UpdateInvoice(context.Background(), inv.ID, entity.InvoiceUpdate{Notes: &notes})
	require.ErrorIs(t, err, entity.ErrInvoicePaid)
}

func TestService_UpdateInvoice_TaxRateOnly(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	inv := entity.Invoice{
		ID:       uuid.Must(uuid.NewV4()),
		Number:   "INV2026010001",
		ClientID: uuid.Must(uuid.NewV4()),
		Items: []entity.InvoiceItem{
			{Description: "Work", Quantity: decimal.RequireFromString("2"), Price: decimal.RequireFromString("50.005"), Total: decimal.RequireFromString("100.01")},
		},
		Subtotal:    decimal.RequireFromString("100.01"),
		TaxRate:     decimal.RequireFromString("10"),
		TaxAmount:   decimal.RequireFromString("10"),
		TotalAmount: decimal.RequireFromString("110.01"),
		Status:      entity.InvoiceStatusDraft,
		Currency:    entity.CurrencyUSD,
	}

	c.repo.EXPECT().Invoice(gomock.Any(), inv.ID).Return(inv, nil)

	var saved entity.Invoice

	c.repo.EXPECT().UpdateInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got entity.Invoice) error {
			saved = got
			return nil
		})

	newRate := decimal.RequireFromString("20")

	got, err := c.s.UpdateInvoice(context.Background(), inv.ID, entity.InvoiceUpdate{TaxRate: &newRate})
	require.NoError(t, err)

	// The stored subtotal is reused, not recomputed from items.
	require.True(t, got.Subtotal.Equal(decimal.RequireFromString("100.01")), "subtotal = %s", got.Subtotal)
	require.True(t, got.TaxAmount.Equal(decimal.RequireFromString("20")), "taxAmount = %s", got.TaxAmount)
	require.True(t, got.TotalAmount.Equal(decimal.RequireFromString("120.01")), "totalAmount = %s", got.TotalAmount)
	require.True(t, saved.TotalAmount.Equal(got.TotalAmount))
}

func TestService_UpdateInvoice_ItemsRecompute(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	inv := entity.Invoice{
		ID:       uuid.Must(uuid.NewV4()),
		Number:   "INV2026010001",
		ClientID: uuid.Must(uuid.NewV4()),
		Subtotal: decimal.RequireFromString("100"),
		TaxRate:  decimal.RequireFromString("10"),
		Status:   entity.InvoiceStatusSent,
		Currency: entity.CurrencyUSD,
	}

	c.repo.EXPECT().Invoice(gomock.Any(), inv.ID).Return(inv, nil)
	c.repo.EXPECT().UpdateInvoice(gomock.Any(), gomock.Any()).Return(nil)

	got, err := c.s.UpdateInvoice(context.Background(), inv.ID, entity.InvoiceUpdate{
		Items: []entity.InvoiceItem{
			{Description: "New work", Quantity: decimal.RequireFromString("3"), Price: decimal.RequireFromString("100")},
		},
	})
	require.NoError(t, err)

	require.True(t, got.Subtotal.Equal(decimal.RequireFromString("300")), "subtotal = %s", got.Subtotal)
	require.True(t, got.TaxAmount.Equal(decimal.RequireFromString("30")), "taxAmount = %s", got.TaxAmount)
	require.True(t, got.TotalAmount.Equal(decimal.RequireFromString("330")), "totalAmount = %s", got.TotalAmount)
}

func TestService_UpdateInvoiceStatus_OnPaidInvoice(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	paidAt := time.Now()
	inv := entity.Invoice{
		ID:       uuid.Must(uuid.NewV4()),
		Number:   "INV2026010001",
		ClientID: uuid.Must(uuid.NewV4()),
		Status:   entity.InvoiceStatusPaid,
		PaidDate: &paidAt,
	}

	c.repo.EXPECT().Invoice(gomock.Any(), inv.ID).Return(inv, nil)
	c.repo.EXPECT().UpdateInvoiceStatus(gomock.Any(), inv.ID, entity.InvoiceStatusSent, nil, gomock.Any()).Return(nil)

	// The status endpoint is exempt from the paid lock.
	got, err := c.s.UpdateInvoiceStatus(context.Background(), inv.ID, entity.InvoiceStatusSent, nil)
	require.NoError(t, err)

	require.Equal(t, entity.InvoiceStatusSent, got.Status)
	require.Nil(t, got.PaidDate)
}

func TestService_UpdateInvoiceStatus_EnteringPaidPublishes(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	inv := entity.Invoice{
		ID:          uuid.Must(uuid.NewV4()),
		Number:      "INV2026010001",
		ClientID:    uuid.Must(uuid.NewV4()),
		Status:      entity.InvoiceStatusSent,
		TotalAmount: decimal.RequireFromString("110.01"),
		Currency:    entity.CurrencyUSD,
	}

	c.repo.EXPECT().Invoice(gomock.Any(), inv.ID).Return(inv, nil)
	c.repo.EXPECT().UpdateInvoiceStatus(gomock.Any(), inv.ID, entity.InvoiceStatusPaid, gomock.Any(), gomock.Any()).Return(nil)
	c.producer.EXPECT().InvoicePaid(gomock.Any(), inv.ID, inv.ClientID, inv.Number, inv.TotalAmount, "USD", gomock.Any())

	got, err := c.s.UpdateInvoiceStatus(context.Background(), inv.ID, entity.InvoiceStatusPaid, nil)
	require.NoError(t, err)
	require.NotNil(t, got.PaidDate)
}

func TestService_MarkInvoicePaid(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	inv := entity.Invoice{
		ID:          uuid.Must(uuid.NewV4()),
		Number:      "INV2026010001",
		ClientID:    uuid.Must(uuid.NewV4()),
		Status:      entity.InvoiceStatusOverdue,
		TotalAmount: decimal.RequireFromString("500"),
		Currency:    entity.CurrencyEUR,
	}

	c.repo.EXPECT().Invoice(gomock.Any(), inv.ID).Return(inv, nil)
	c.repo.EXPECT().UpdateInvoiceStatus(gomock.Any(), inv.ID, entity.InvoiceStatusPaid, gomock.Any(), gomock.Any()).Return(nil)
	c.producer.EXPECT().InvoicePaid(gomock.Any(), inv.ID, inv.ClientID, inv.Number, inv.TotalAmount, "EUR", gomock.Any())

	got, err := c.s.MarkInvoicePaid(context.Background(), inv.ID)
	require.NoError(t, err)

	require.Equal(t, entity.InvoiceStatusPaid, got.Status)
	require.NotNil(t, got.PaidDate)
}

func TestService_MarkInvoicePaid_AlreadyPaid(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	paidAt := time.Now()
	inv := entity.Invoice{
		ID:       uuid.Must(uuid.NewV4()),
		Number:   "INV2026010001",
		Status:   entity.InvoiceStatusPaid,
		PaidDate: &paidAt,
	}

	c.repo.EXPECT().Invoice(gomock.Any(), inv.ID).Return(inv, nil)

	_, err := c.s.MarkInvoicePaid(context.Background(), inv.ID)
	require.ErrorIs(t, err, entity.ErrAlreadyPaid)
}

func TestService_DeleteInvoice_PaidRejected(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	paidAt := time.Now()
	inv := entity.Invoice{
		ID:       uuid.Must(uuid.NewV4()),
		Number:   "INV2026010001",
		Status:   entity.InvoiceStatusPaid,
		PaidDate: &paidAt,
	}

	c.repo.EXPECT().Invoice(gomock.Any(), inv.ID).Return(inv, nil)

	err := c.s.DeleteInvoice(context.Background(), inv.ID)
	require.ErrorIs(t, err, entity.ErrInvoicePaid)
}

func TestService_SendInvoice(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	client := testClient()
	inv := entity.Invoice{
		ID:          uuid.Must(uuid.NewV4()),
		Number:      "INV2026010001",
		ClientID:    client.ID,
		Status:      entity.InvoiceStatusDraft,
		Currency:    entity.CurrencyUSD,
		TotalAmount: decimal.RequireFromString("110.01"),
		DueDate:     time.Now().AddDate(0, 0, 30),
	}

	c.repo.EXPECT().Invoice(gomock.Any(), inv.ID).Return(inv, nil)
	c.repo.EXPECT().Client(gomock.Any(), client.ID).Return(client, nil)
	c.mailer.EXPECT().SendHTML(gomock.Any(), gomock.Any(), []string{client.Email}).Return(nil)
	c.repo.EXPECT().StampInvoiceSent(gomock.Any(), inv.ID, entity.InvoiceStatusSent, gomock.Any()).Return(nil)

	got, err := c.s.SendInvoice(context.Background(), inv.ID)
	require.NoError(t, err)

	require.Equal(t, entity.InvoiceStatusSent, got.Status)
	require.True(t, got.EmailSent)
	require.NotNil(t, got.EmailSentDate)
}

func TestService_SendInvoice_KeepsNonDraftStatus(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	client := testClient()
	inv := entity.Invoice{
		ID:       uuid.Must(uuid.NewV4()),
		Number:   "INV2026010001",
		ClientID: client.ID,
		Status:   entity.InvoiceStatusOverdue,
		Currency: entity.CurrencyUSD,
		DueDate:  time.Now().AddDate(0, 0, -10),
	}

	c.repo.EXPECT().Invoice(gomock.Any(), inv.ID).Return(inv, nil)
	c.repo.EXPECT().Client(gomock.Any(), client.ID).Return(client, nil)
	c.mailer.EXPECT().SendHTML(gomock.Any(), gomock.Any(), []string{client.Email}).Return(nil)
	c.repo.EXPECT().StampInvoiceSent(gomock.Any(), inv.ID, entity.InvoiceStatusOverdue, gomock.Any()).Return(nil)

	got, err := c.s.SendInvoice(context.Background(), inv.ID)
	require.NoError(t, err)
	require.Equal(t, entity.InvoiceStatusOverdue, got.Status)
}

func TestService_SendInvoice_MailFailure(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	client := testClient()
	inv := entity.Invoice{
		ID:       uuid.Must(uuid.NewV4()),
		Number:   "INV2026010001",
		ClientID: client.ID,
		Status:   entity.InvoiceStatusDraft,
		Currency: entity.CurrencyUSD,
		DueDate:  time.Now().AddDate(0, 0, 30),
	}

	c.repo.EXPECT().Invoice(gomock.Any(), inv.ID).Return(inv, nil)
	c.repo.EXPECT().Client(gomock.Any(), client.ID).Return(client, nil)
	c.mailer.EXPECT().SendHTML(gomock.Any(), gomock.Any(), []string{client.Email}).Return(errors.New("smtp: connection refused"))

	// No StampInvoiceSent expected: nothing is persisted on mail failure.
	_, err := c.s.SendInvoice(context.Background(), inv.ID)
	require.Error(t, err)
}

func TestService_SendInvoice_NoClientEmail(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	client := testClient()
	client.Email = ""

	inv := entity.Invoice{
		ID:       uuid.Must(uuid.NewV4()),
		Number:   "INV2026010001",
		ClientID: client.ID,
		Status:   entity.InvoiceStatusDraft,
	}

	c.repo.EXPECT().Invoice(gomock.Any(), inv.ID).Return(inv, nil)
	c.repo.EXPECT().Client(gomock.Any(), client.ID).Return(client, nil)

	_, err := c.s.SendInvoice(context.Background(), inv.ID)
	require.ErrorIs(t, err, entity.ErrInvalidArgument)
}

func TestService_DeleteClient_WithInvoices(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	client := testClient()

	c.repo.EXPECT().Client(gomock.Any(), client.ID).Return(client, nil)
	c.repo.EXPECT().CountInvoicesByClient(gomock.Any(), client.ID).Return(3, nil)

	err := c.s.DeleteClient(context.Background(), client.ID)

	var hasInvoices *entity.ClientHasInvoicesError

	require.ErrorAs(t, err, &hasInvoices)
	require.Equal(t, 3, hasInvoices.InvoiceCount)
}

func TestService_DeleteClient(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	client := testClient()

	c.repo.EXPECT().Client(gomock.Any(), client.ID).Return(client, nil)
	c.repo.EXPECT().CountInvoicesByClient(gomock.Any(), client.ID).Return(0, nil)
	c.repo.EXPECT().DeleteClient(gomock.Any(), client.ID).Return(nil)

	err := c.s.DeleteClient(context.Background(), client.ID)
	require.NoError(t, err)
}

func TestService_CreateClient_EmailTaken(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	existing := testClient()

	c.repo.EXPECT().ClientByEmail(gomock.Any(), existing.Email).Return(existing, nil)

	_, err := c.s.CreateClient(context.Background(), entity.ClientInput{
		Name:  "Another client",
		Email: existing.Email,
	})
	require.ErrorIs(t, err, entity.ErrEmailTaken)
}

// Client email is optional: creating a client without one must not run the
// e-mail uniqueness lookup, or two e-mail-less clients would collide.
func TestService_CreateClient_NoEmail(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	var saved entity.Client

	c.repo.EXPECT().CreateClient(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, client entity.Client) error {
			saved = client
			return nil
		})

	client, err := c.s.CreateClient(context.Background(), entity.ClientInput{Name: "Walk-in client"})
	require.NoError(t, err)

	require.Empty(t, saved.Email)
	require.True(t, client.IsActive)
}

func TestService_UpdateClient_ClearEmail(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	existing := testClient()

	c.repo.EXPECT().Client(gomock.Any(), existing.ID).Return(existing, nil)
	c.repo.EXPECT().UpdateClient(gomock.Any(), gomock.Any()).Return(nil)

	client, err := c.s.UpdateClient(context.Background(), existing.ID, entity.ClientInput{
		Name: existing.Name,
	})
	require.NoError(t, err)
	require.Empty(t, client.Email)
}

func TestService_MarkOverdueInvoices(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	c.repo.EXPECT().MarkOverdue(gomock.Any(), gomock.Any()).Return(int64(2), nil)

	err := c.s.MarkOverdueInvoices(context.Background())
	require.NoError(t, err)
}
