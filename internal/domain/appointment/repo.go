package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) (*Appointment, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) (*Appointment, error)
	SetCalendarEvent(ctx context.Context, id uuid.UUID, eventID string) error
	// List returns appointments ordered by start_time ASC.
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Appointment, int, error)
	CountOnDate(ctx context.Context, day time.Time) (int, error)
}
