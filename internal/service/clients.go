package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avinashh10x/invoiceGen/internal/entity"
)

func (s *Service) CreateClient(ctx context.Context, in entity.ClientInput) (entity.Client, error) {
	err := ValidateClientInput(in)
	if err != nil {
		return entity.Client{}, fmt.Errorf("validate client input: %w", err)
	}

	if in.Email != "" {
		_, err = s.repo.ClientByEmail(ctx, in.Email)
		if err == nil {
			return entity.Client{}, fmt.Errorf("client email %q: %w", in.Email, entity.ErrEmailTaken)
		}

		if !isNotFound(err) {
			return entity.Client{}, fmt.Errorf("get client by email: %w", err)
		}
	}

	now := time.Now()

	client := entity.Client{
		ID:        uuid.Must(uuid.NewV4()),
		Name:      in.Name,
		Company:   in.Company,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Notes:     in.Notes,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if in.IsActive != nil {
		client.IsActive = *in.IsActive
	}

	err = s.repo.CreateClient(ctx, client)
	if err != nil {
		return entity.Client{}, fmt.Errorf("create client: %w", err)
	}

	slog.InfoContext(ctx, "client created", "client_id", client.ID, "email", client.Email)

	return client, nil
}

// ClientStats returns a client together with totals over its invoices.
func (s *Service) ClientStats(ctx context.Context, id uuid.UUID) (entity.Client, entity.ClientInvoiceStats, error) {
	client, err := s.repo.Client(ctx, id)
	if err != nil {
		return entity.Client{}, entity.ClientInvoiceStats{}, fmt.Errorf("get client %q: %w", id, err)
	}

	stats, err := s.repo.ClientInvoiceStats(ctx, id)
	if err != nil {
		return entity.Client{}, entity.ClientInvoiceStats{}, fmt.Errorf("get client %q invoice stats: %w", id, err)
	}

	return client, stats, nil
}

func (s *Service) UpdateClient(ctx context.Context, id uuid.UUID, in entity.ClientInput) (entity.Client, error) {
	err := ValidateClientInput(in)
	if err != nil {
		return entity.Client{}, fmt.Errorf("validate client input: %w", err)
	}

	client, err := s.repo.Client(ctx, id)
	if err != nil {
		return entity.Client{}, fmt.Errorf("get client %q: %w", id, err)
	}

	if in.Email != "" && in.Email != client.Email {
		_, err = s.repo.ClientByEmail(ctx, in.Email)
		if err == nil {
			return entity.Client{}, fmt.Errorf("client email %q: %w", in.Email, entity.ErrEmailTaken)
		}

		if !isNotFound(err) {
			return entity.Client{}, fmt.Errorf("get client by email: %w", err)
		}
	}

	client.Name = in.Name
	client.Company = in.Company
	client.Email = in.Email
	client.Phone = in.Phone
	client.Address = in.Address
	client.Notes = in.Notes

	if in.IsActive != nil {
		client.IsActive = *in.IsActive
	}

	client.UpdatedAt = time.Now()

	err = s.repo.UpdateClient(ctx, client)
	if err != nil {
		return entity.Client{}, fmt.Errorf("update client %q: %w", id, err)
	}

	return client, nil
}

// DeleteClient refuses to delete a client that any invoice still references.
func (s *Service) DeleteClient(ctx context.Context, id uuid.UUID) error {
	_, err := s.repo.Client(ctx, id)
	if err != nil {
		return fmt.Errorf("get client %q: %w", id, err)
	}

	count, err := s.repo.CountInvoicesByClient(ctx, id)
	if err != nil {
		return fmt.Errorf("count client %q invoices: %w", id, err)
	}

	if count > 0 {
		return &entity.ClientHasInvoicesError{InvoiceCount: count}
	}

	err = s.repo.DeleteClient(ctx, id)
	if err != nil {
		return fmt.Errorf("delete client %q: %w", id, err)
	}

	return nil
}

func (s *Service) Clients(ctx context.Context, f entity.ClientFilter) ([]entity.Client, int, error) {
	if f.Page == 0 {
		f.Page = defaultPage
	}

	if f.Limit == 0 {
		f.Limit = defaultLimit
	}

	clients, total, err := s.repo.Clients(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("get clients: %w", err)
	}

	return clients, total, nil
}
