package ports

import (
	"context"

	"order-portal/internal/features/clients/domain"
)

// ClientService defines the primary port for client account operations.
type ClientService interface {
	List(ctx context.Context) ([]domain.Client, error)
	Get(ctx context.Context, id uint) (*domain.Client, error)
	Save(ctx context.Context, client *domain.Client) (*domain.Client, error)
	Delete(ctx context.Context, id uint) error
}

// ClientRepository defines the secondary port for client storage.
type ClientRepository interface {
	List(ctx context.Context) ([]domain.Client, error)
	GetByID(ctx context.Context, id uint) (*domain.Client, error)
	// FirstActive returns the active client with the lowest id.
	FirstActive(ctx context.Context) (*domain.Client, error)
	Create(ctx context.Context, client *domain.Client) error
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id uint) error
}
