package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) (*Patient, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns patients ordered by created_at DESC; query filters by
	// first or last name (case-insensitive substring) when non-empty.
	List(ctx context.Context, query string, limit, offset int) ([]*Patient, int, error)
	SetSync(ctx context.Context, id uuid.UUID, crmContactID, syncStatus string) error
}
