// Package appointment manages clinic appointment scheduling. Appointments
// are local rows; pushing one onto the CRM calendar is an explicit action.
package appointment

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
)

type Appointment struct {
	ID           uuid.UUID `json:"id"`
	PatientID    uuid.UUID `json:"patientId"`
	Practitioner string    `json:"practitioner"`
	Reason       string    `json:"reason,omitempty"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	Status       string    `json:"status"`

	CalendarEventID string    `json:"calendar_event_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Filter narrows appointment listings; zero values mean "no filter".
type Filter struct {
	Practitioner string
	From         time.Time
	To           time.Time
}
