// Package webhookevent ingests inbound webhooks from the integrated SaaS
// vendors. Ingestion always acknowledges 200 so upstreams do not retry into
// a failing system; the payload and the processing outcome are recorded for
// the dashboard instead of being surfaced to the sender.
package webhookevent

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	OutcomeProcessed = "processed"
	OutcomeError     = "error"
)

type Event struct {
	ID         uuid.UUID       `json:"id"`
	Source     string          `json:"source"`
	Payload    json.RawMessage `json:"payload"`
	Outcome    string          `json:"outcome"`
	Error      string          `json:"error,omitempty"`
	ReceivedAt time.Time       `json:"received_at"`
}
