// Package doctor covers the physician-facing surface: clinical notes tied to
// intake submissions, plus demo-mode e-prescription and secure-email sends.
//
// The e-Rx and secure-email paths are explicit mocks. They fabricate
// deterministic confirmations and never reach an outside network; swapping in
// a real vendor means implementing ERxSender or SecureMailer.
package doctor

import (
	"time"

	"github.com/google/uuid"
)

type ClinicalNote struct {
	ID        uuid.UUID `json:"id"`
	IntakeID  uuid.UUID `json:"intakeId"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type Prescription struct {
	PatientID  uuid.UUID `json:"patientId"`
	Medication string    `json:"medication"`
	Dosage     string    `json:"dosage"`
	Quantity   int       `json:"quantity"`
	Refills    int       `json:"refills"`
	Pharmacy   string    `json:"pharmacy,omitempty"`
}

type ERxConfirmation struct {
	ConfirmationID string `json:"confirmationId"`
	Status         string `json:"status"`
	DemoMode       bool   `json:"demoMode"`
}

type SecureEmail struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type MailConfirmation struct {
	MessageID string `json:"messageId"`
	Status    string `json:"status"`
	DemoMode  bool   `json:"demoMode"`
}
