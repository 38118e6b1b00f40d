package dashboard

import (
	"context"
	"time"
)

type Repository interface {
	CountPatients(ctx context.Context) (int, error)
	CountIntakesByStatus(ctx context.Context) (map[string]int, error)
	CountOpenInvoices(ctx context.Context) (int, error)
	CountAppointmentsOn(ctx context.Context, day time.Time) (int, error)
}
