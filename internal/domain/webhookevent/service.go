package webhookevent

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Ingest records the inbound payload and its processing outcome. It never
// returns an error: malformed payloads and storage failures are logged and
// recorded where possible, and the caller acknowledges 200 regardless.
func (s *Service) Ingest(ctx context.Context, source string, payload []byte) *Event {
	e := &Event{
		Source:     source,
		Payload:    payload,
		Outcome:    OutcomeProcessed,
		ReceivedAt: time.Now().UTC(),
	}
	if !json.Valid(payload) {
		e.Outcome = OutcomeError
		e.Error = "payload is not valid JSON"
		// Store the raw bytes as a JSON string so the jsonb column accepts
		// them.
		quoted, _ := json.Marshal(string(payload))
		e.Payload = quoted
	}

	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Error().Err(err).Str("source", source).Msg("webhook event not recorded")
	}
	return e
}

func (s *Service) List(ctx context.Context, source string, limit, offset int) ([]*Event, int, error) {
	return s.repo.List(ctx, source, limit, offset)
}
