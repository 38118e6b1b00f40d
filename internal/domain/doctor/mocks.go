package doctor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ERxSender submits an e-prescription and returns the vendor confirmation.
type ERxSender interface {
	Send(ctx context.Context, p *Prescription) (*ERxConfirmation, error)
}

// SecureMailer delivers a message over a HIPAA-compliant mail channel.
type SecureMailer interface {
	Send(ctx context.Context, m *SecureEmail) (*MailConfirmation, error)
}

// DemoERxSender fabricates confirmations without contacting any pharmacy
// network. The confirmation id is a stable digest of the prescription so
// repeated demo submissions are recognizable.
type DemoERxSender struct{}

func (DemoERxSender) Send(_ context.Context, p *Prescription) (*ERxConfirmation, error) {
	digest := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%d", p.PatientID, p.Medication, p.Dosage, p.Quantity)))
	return &ERxConfirmation{
		ConfirmationID: "demo-erx-" + hex.EncodeToString(digest[:6]),
		Status:         "transmitted",
		DemoMode:       true,
	}, nil
}

// DemoSecureMailer fabricates delivery confirmations; nothing is sent.
type DemoSecureMailer struct{}

func (DemoSecureMailer) Send(_ context.Context, m *SecureEmail) (*MailConfirmation, error) {
	digest := sha256.Sum256([]byte(m.To + "|" + m.Subject))
	return &MailConfirmation{
		MessageID: "demo-mail-" + hex.EncodeToString(digest[:6]),
		Status:    "queued",
		DemoMode:  true,
	}, nil
}
