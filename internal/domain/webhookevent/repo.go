package webhookevent

import "context"

type Repository interface {
	Create(ctx context.Context, e *Event) error
	// List returns events ordered by received_at DESC; a non-empty source
	// filters to one vendor.
	List(ctx context.Context, source string, limit, offset int) ([]*Event, int, error)
}
