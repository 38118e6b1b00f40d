// Package patient manages clinic patient records. Writes land locally first;
// the CRM contact sync is best-effort and its outcome is recorded on the row.
package patient

import (
	"time"

	"github.com/google/uuid"
)

// Sync states for the CRM mirror of a patient record.
const (
	SyncPending = "pending"
	SyncSynced  = "synced"
	SyncError   = "error"
)

type Patient struct {
	ID                uuid.UUID `json:"id"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	DateOfBirth       string    `json:"dateOfBirth,omitempty"`
	Email             string    `json:"email,omitempty"`
	Phone             string    `json:"phone,omitempty"`
	Address           string    `json:"address,omitempty"`
	EmployerName      string    `json:"employerName,omitempty"`
	InsuranceProvider string    `json:"insuranceProvider,omitempty"`
	MemberID          string    `json:"memberId,omitempty"`

	CRMContactID string    `json:"crm_contact_id,omitempty"`
	SyncStatus   string    `json:"sync_status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
