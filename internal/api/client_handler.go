package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/avinashh10x/invoiceGen/internal/entity"
)

type AddressEntity struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

type ClientEntity struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Company   string        `json:"company,omitempty"`
	Phone     string        `json:"phone,omitempty"`
	Address   AddressEntity `json:"address"`
	IsActive  bool          `json:"isActive"`
	Notes     string        `json:"notes,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func clientToAPI(c entity.Client) ClientEntity {
	return ClientEntity{
		ID:      c.ID.String(),
		Name:    c.Name,
		Email:   c.Email,
		Company: c.Company,
		Phone:   c.Phone,
		Address: AddressEntity{
			Street:  c.Address.Street,
			City:    c.Address.City,
			State:   c.Address.State,
			ZipCode: c.Address.ZipCode,
			Country: c.Address.Country,
		},
		IsActive:  c.IsActive,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type ClientRequest struct {
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Company  string        `json:"company"`
	Phone    string        `json:"phone"`
	Address  AddressEntity `json:"address"`
	Notes    string        `json:"notes"`
	IsActive *bool         `json:"isActive"`
}

func (r ClientRequest) toInput() entity.ClientInput {
	return entity.ClientInput{
		Name:    r.Name,
		Email:   r.Email,
		Company: r.Company,
		Phone:   r.Phone,
		Address: entity.Address{
			Street:  r.Address.Street,
			City:    r.Address.City,
			State:   r.Address.State,
			ZipCode: r.Address.ZipCode,
			Country: r.Address.Country,
		},
		Notes:    r.Notes,
		IsActive: r.IsActive,
	}
}

type ClientResponse struct {
	Message string       `json:"message"`
	Client  ClientEntity `json:"client"`
}

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ClientRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	client, err := h.s.CreateClient(ctx, req.toInput())
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to create client")
		return
	}

	SendJSON(ctx, w, http.StatusCreated, ClientResponse{
		Message: "Client created successfully",
		Client:  clientToAPI(client),
	})
}

type ClientInvoiceStatsEntity struct {
	TotalInvoices int             `json:"totalInvoices"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	PendingAmount decimal.Decimal `json:"pendingAmount"`
}

type GetClientResponse struct {
	Client ClientEntity             `json:"client"`
	Stats  ClientInvoiceStatsEntity `json:"stats"`
}

func (h *Handler) Client(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "'id' must be a UUID")
		return
	}

	client, stats, err := h.s.ClientStats(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to get client")
		return
	}

	SendJSON(ctx, w, http.StatusOK, GetClientResponse{
		Client: clientToAPI(client),
		Stats: ClientInvoiceStatsEntity{
			TotalInvoices: stats.TotalInvoices,
			TotalAmount:   stats.TotalAmount,
			PaidAmount:    stats.PaidAmount,
			PendingAmount: stats.PendingAmount,
		},
	})
}

func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "'id' must be a UUID")
		return
	}

	var req ClientRequest

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	client, err := h.s.UpdateClient(ctx, id, req.toInput())
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to update client")
		return
	}

	SendJSON(ctx, w, http.StatusOK, ClientResponse{
		Message: "Client updated successfully",
		Client:  clientToAPI(client),
	})
}

type DeleteClientResponse struct {
	Message string `json:"message"`
}

func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "'id' must be a UUID")
		return
	}

	err = h.s.DeleteClient(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to delete client")
		return
	}

	SendJSON(ctx, w, http.StatusOK, DeleteClientResponse{Message: "Client deleted successfully"})
}

type ClientsResponse struct {
	Clients    []ClientEntity `json:"clients"`
	Pagination Pagination     `json:"pagination"`
}

func (h *Handler) Clients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := parseClientFilter(r.URL.Query())

	clients, total, err := h.s.Clients(ctx, filter)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to get clients")
		return
	}

	res := make([]ClientEntity, 0, len(clients))
	for _, c := range clients {
		res = append(res, clientToAPI(c))
	}

	SendJSON(ctx, w, http.StatusOK, ClientsResponse{
		Clients:    res,
		Pagination: newPagination(filter.Page, filter.Limit, total),
	})
}

func parseClientFilter(url url.Values) entity.ClientFilter {
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

	filter := entity.ClientFilter{
		Search: url.Get("search"),
		Page:   page,
		Limit:  limit,
	}

	if s := url.Get("isActive"); s != "" {
		isActive := s == "true"
		filter.IsActive = &isActive
	}

	return filter
}
