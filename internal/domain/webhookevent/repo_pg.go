package webhookevent

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) Create(ctx context.Context, e *Event) error {
	e.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO webhook_events (id, source, payload, outcome, error)
		VALUES ($1,$2,$3,$4,$5)`,
		e.ID, e.Source, []byte(e.Payload), e.Outcome, e.Error)
	return err
}

func (r *repoPG) List(ctx context.Context, source string, limit, offset int) ([]*Event, int, error) {
	where := ``
	args := []interface{}{}
	if source != "" {
		where = ` WHERE source = $1`
		args = append(args, source)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM webhook_events`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	rows, err := r.pool.Query(ctx,
		`SELECT id, source, payload, outcome, error, received_at FROM webhook_events`+where+
			` ORDER BY received_at DESC, id LIMIT $`+strconv.Itoa(n+1)+` OFFSET $`+strconv.Itoa(n+2),
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Event
	for rows.Next() {
		var e Event
		var payload []byte
		if err := rows.Scan(&e.ID, &e.Source, &payload, &e.Outcome, &e.Error, &e.ReceivedAt); err != nil {
			return nil, 0, err
		}
		e.Payload = payload
		items = append(items, &e)
	}
	return items, total, rows.Err()
}
