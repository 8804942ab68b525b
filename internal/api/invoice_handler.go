package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/avinashh10x/invoiceGen/internal/entity"
)

type InvoiceItemEntity struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

type InvoiceEntity struct {
	ID            string              `json:"id"`
	InvoiceNumber string              `json:"invoiceNumber"`
	ClientID      string              `json:"clientId"`
	Items         []InvoiceItemEntity `json:"items"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	TaxRate       decimal.Decimal     `json:"taxRate"`
	TaxAmount     decimal.Decimal     `json:"taxAmount"`
	TotalAmount   decimal.Decimal     `json:"totalAmount"`
	Status        string              `json:"status"`
	Currency      string              `json:"currency"`
	DueDate       time.Time           `json:"dueDate"`
	PaidDate      *time.Time          `json:"paidDate,omitempty"`
	Notes         string              `json:"notes,omitempty"`
	EmailSent     bool                `json:"emailSent"`
	EmailSentDate *time.Time          `json:"emailSentDate,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

func invoiceToAPI(inv entity.Invoice) InvoiceEntity {
	items := make([]InvoiceItemEntity, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, InvoiceItemEntity{
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Total:       item.Total,
		})
	}

	return InvoiceEntity{
		ID:            inv.ID.String(),
		InvoiceNumber: inv.Number,
		ClientID:      inv.ClientID.String(),
		Items:         items,
		Subtotal:      inv.Subtotal,
		TaxRate:       inv.TaxRate,
		TaxAmount:     inv.TaxAmount,
		TotalAmount:   inv.TotalAmount,
		Status:        inv.Status.String(),
		Currency:      inv.Currency.String(),
		DueDate:       inv.DueDate,
		PaidDate:      inv.PaidDate,
		Notes:         inv.Notes,
		EmailSent:     inv.EmailSent,
		EmailSentDate: inv.EmailSentDate,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

func invoicesToAPI(invoices []entity.Invoice) []InvoiceEntity {
	res := make([]InvoiceEntity, 0, len(invoices))
	for _, inv := range invoices {
		res = append(res, invoiceToAPI(inv))
	}

	return res
}

type InvoiceItemRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type CreateInvoiceRequest struct {
	ClientID uuid.UUID            `json:"clientId"`
	Items    []InvoiceItemRequest `json:"items"`
	TaxRate  decimal.Decimal      `json:"taxRate"`
	DueDate  time.Time            `json:"dueDate"`
	Notes    string               `json:"notes"`
	Currency string               `json:"currency"`
	Status   string               `json:"status"`
	PaidDate *time.Time           `json:"paidDate"`
}

type InvoiceResponse struct {
	Message string        `json:"message"`
	Invoice InvoiceEntity `json:"invoice"`
}

func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateInvoiceRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	items := make([]entity.InvoiceItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, entity.InvoiceItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	invoice, err := h.s.CreateInvoice(ctx, entity.InvoiceInput{
		ClientID: req.ClientID,
		Items:    items,
		TaxRate:  req.TaxRate,
		DueDate:  req.DueDate,
		Notes:    req.Notes,
		Currency: entity.Currency(req.Currency),
		Status:   entity.InvoiceStatus(req.Status),
		PaidDate: req.PaidDate,
	})
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to create invoice")
		return
	}

	SendJSON(ctx, w, http.StatusCreated, InvoiceResponse{
		Message: "Invoice created successfully",
		Invoice: invoiceToAPI(invoice),
	})
}

type GetInvoiceResponse struct {
	Invoice InvoiceEntity `json:"invoice"`
	Client  ClientEntity  `json:"client"`
}

func (h *Handler) Invoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "'id' must be a UUID")
		return
	}

	invoice, client, err := h.s.Invoice(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to get invoice")
		return
	}

	SendJSON(ctx, w, http.StatusOK, GetInvoiceResponse{
		Invoice: invoiceToAPI(invoice),
		Client:  clientToAPI(client),
	})
}

type UpdateInvoiceRequest struct {
	ClientID *uuid.UUID           `json:"clientId"`
	Items    []InvoiceItemRequest `json:"items"`
	TaxRate  *decimal.Decimal     `json:"taxRate"`
	DueDate  *time.Time           `json:"dueDate"`
	Notes    *string              `json:"notes"`
	Currency *string              `json:"currency"`
	Status   *string              `json:"status"`
}

func (h *Handler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "'id' must be a UUID")
		return
	}

	var req UpdateInvoiceRequest

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	upd := entity.InvoiceUpdate{
		ClientID: req.ClientID,
		TaxRate:  req.TaxRate,
		DueDate:  req.DueDate,
		Notes:    req.Notes,
	}

	if req.Items != nil {
		items := make([]entity.InvoiceItem, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, entity.InvoiceItem{
				Description: item.Description,
				Quantity:    item.Quantity,
				Price:       item.Price,
			})
		}

		upd.Items = items
	}

	if req.Currency != nil {
		currency := entity.Currency(*req.Currency)
		upd.Currency = &currency
	}

	if req.Status != nil {
		status := entity.InvoiceStatus(*req.Status)
		upd.Status = &status
	}

	invoice, err := h.s.UpdateInvoice(ctx, id, upd)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to update invoice")
		return
	}

	SendJSON(ctx, w, http.StatusOK, InvoiceResponse{
		Message: "Invoice updated successfully",
		Invoice: invoiceToAPI(invoice),
	})
}

type UpdateInvoiceStatusRequest struct {
	Status   string     `json:"status"`
	PaidDate *time.Time `json:"paidDate"`
}

func (h *Handler) UpdateInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "'id' must be a UUID")
		return
	}

	var req UpdateInvoiceStatusRequest

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	invoice, err := h.s.UpdateInvoiceStatus(ctx, id, entity.InvoiceStatus(req.Status), req.PaidDate)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to update invoice status")
		return
	}

	SendJSON(ctx, w, http.StatusOK, InvoiceResponse{
		Message: "Invoice status updated successfully",
		Invoice: invoiceToAPI(invoice),
	})
}

func (h *Handler) MarkInvoicePaid(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "'id' must be a UUID")
		return
	}

	invoice, err := h.s.MarkInvoicePaid(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to mark invoice as paid")
		return
	}

	SendJSON(ctx, w, http.StatusOK, InvoiceResponse{
		Message: "Invoice marked as paid",
		Invoice: invoiceToAPI(invoice),
	})
}

type DeleteInvoiceResponse struct {
	Message string `json:"message"`
}

func (h *Handler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "'id' must be a UUID")
		return
	}

	err = h.s.DeleteInvoice(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to delete invoice")
		return
	}

	SendJSON(ctx, w, http.StatusOK, DeleteInvoiceResponse{Message: "Invoice deleted successfully"})
}

type InvoiceStatsEntity struct {
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	PendingAmount decimal.Decimal `json:"pendingAmount"`
}

type InvoicesResponse struct {
	Invoices   []InvoiceEntity    `json:"invoices"`
	Pagination Pagination         `json:"pagination"`
	Stats      InvoiceStatsEntity `json:"stats"`
}

func (h *Handler) Invoices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := parseInvoiceFilter(r.URL.Query())
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid filter")
		return
	}

	invoices, total, stats, err := h.s.Invoices(ctx, filter)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to get invoices")
		return
	}

	SendJSON(ctx, w, http.StatusOK, InvoicesResponse{
		Invoices:   invoicesToAPI(invoices),
		Pagination: newPagination(filter.Page, filter.Limit, total),
		Stats: InvoiceStatsEntity{
			TotalAmount:   stats.TotalAmount,
			PaidAmount:    stats.PaidAmount,
			PendingAmount: stats.PendingAmount,
		},
	})
}

func parseInvoiceFilter(url url.Values) (entity.InvoiceFilter, error) {
	const (
		defaultLimit uint64 = 10
		maxLimit     uint64 = 100
		defaultPage  uint64 = 1
	)

	limit, err := strconv.ParseUint(url.Get("limit"), 10, 64)
	if err != nil || limit == 0 {
		limit = defaultLimit
	}

	if limit > maxLimit {
		limit = maxLimit
	}

	page, err := strconv.ParseUint(url.Get("page"), 10, 64)
	if err != nil || page == 0 {
		page = defaultPage
	}

	filter := entity.InvoiceFilter{
		Search: url.Get("search"),
		Page:   page,
		Limit:  limit,
	}

	if s := url.Get("status"); s != "" {
		status := entity.InvoiceStatus(s)

		err = status.Validate()
		if err != nil {
			return entity.InvoiceFilter{}, err
		}

		filter.Status = &status
	}

	if s := url.Get("clientId"); s != "" {
		clientID, err := uuid.FromString(s)
		if err != nil {
			return entity.InvoiceFilter{}, fmt.Errorf("invalid clientId: %w", err)
		}

		filter.ClientID = &clientID
	}

	if s := url.Get("startDate"); s != "" {
		start, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return entity.InvoiceFilter{}, fmt.Errorf("invalid startDate: %w", err)
		}

		filter.StartDate = &start
	}

	if s := url.Get("endDate"); s != "" {
		end, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return entity.InvoiceFilter{}, fmt.Errorf("invalid endDate: %w", err)
		}

		// Date-only upper bound includes the whole day.
		end = end.AddDate(0, 0, 1)
		filter.EndDate = &end
	}

	return filter, nil
}

type SendInvoiceResponse struct {
	Message string        `json:"message"`
	Invoice InvoiceEntity `json:"invoice"`
}

func (h *Handler) SendInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "'id' must be a UUID")
		return
	}

	invoice, err := h.s.SendInvoice(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to send invoice email")
		return
	}

	SendJSON(ctx, w, http.StatusOK, SendInvoiceResponse{
		Message: "Invoice email sent successfully",
		Invoice: invoiceToAPI(invoice),
	})
}

func (h *Handler) DownloadInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "'id' must be a UUID")
		return
	}

	doc, filename, err := h.s.InvoiceDocument(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to generate invoice document")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))

	_, err = w.Write(doc)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to write invoice document")
		return
	}
}

type StatusCountEntity struct {
	Status      string          `json:"status"`
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

type MonthlyRevenueEntity struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

type DashboardStatsResponse struct {
	InvoiceStats   []StatusCountEntity    `json:"invoiceStats"`
	TotalClients   int                    `json:"totalClients"`
	TotalInvoices  int                    `json:"totalInvoices"`
	RecentInvoices []InvoiceEntity        `json:"recentInvoices"`
	MonthlyRevenue []MonthlyRevenueEntity `json:"monthlyRevenue"`
}

func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.s.DashboardStats(ctx)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to get dashboard stats")
		return
	}

	statusCounts := make([]StatusCountEntity, 0, len(stats.InvoiceStats))
	for _, sc := range stats.InvoiceStats {
		statusCounts = append(statusCounts, StatusCountEntity{
			Status:      sc.Status.String(),
			Count:       sc.Count,
			TotalAmount: sc.TotalAmount,
		})
	}

	revenue := make([]MonthlyRevenueEntity, 0, len(stats.MonthlyRevenue))
	for _, mr := range stats.MonthlyRevenue {
		revenue = append(revenue, MonthlyRevenueEntity{
			Year:    mr.Year,
			Month:   int(mr.Month),
			Revenue: mr.Revenue,
		})
	}

	SendJSON(ctx, w, http.StatusOK, DashboardStatsResponse{
		InvoiceStats:   statusCounts,
		TotalClients:   stats.TotalClients,
		TotalInvoices:  stats.TotalInvoices,
		RecentInvoices: invoicesToAPI(stats.RecentInvoices),
		MonthlyRevenue: revenue,
	})
}
