package service

import (
	"context"
	"errors"

	"order-portal/internal/core/apperror"
	"order-portal/internal/features/clients/domain"
	"order-portal/internal/features/clients/ports"
)

// ClientServiceImpl implements ports.ClientService.
type ClientServiceImpl struct {
	repo ports.ClientRepository
}

// NewClientService creates a new ClientServiceImpl.
func NewClientService(repo ports.ClientRepository) *ClientServiceImpl {
	return &ClientServiceImpl{
		repo: repo,
	}
}

// List returns every client ordered by id.
func (s *ClientServiceImpl) List(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err, "listing clients")
	}
	return clients, nil
}

// Get returns a single client.
func (s *ClientServiceImpl) Get(ctx context.Context, id uint) (*domain.Client, error) {
	client, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err, "fetching client")
	}
	return client, nil
}

// Save creates the client when it has no id, otherwise updates it.
func (s *ClientServiceImpl) Save(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	client.Normalize()
	if err := client.Validate(); err != nil {
		return nil, apperror.Validation(err, err.Error())
	}

	var err error
	if client.ID == 0 {
		err = s.repo.Create(ctx, client)
	} else {
		err = s.repo.Update(ctx, client)
	}
	if err != nil {
		return nil, mapError(err, "saving client")
	}
	return client, nil
}

// Delete removes a client without orders.
func (s *ClientServiceImpl) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err, "deleting client")
	}
	return nil
}

func mapError(err error, op string) error {
	switch {
	case errors.Is(err, domain.ErrClientNotFound):
		return apperror.NotFound(err, err.Error())
	case errors.Is(err, domain.ErrDuplicateCode), errors.Is(err, domain.ErrClientInUse):
		return apperror.Conflict(err, err.Error())
	default:
		return apperror.Internal(err, op)
	}
}
