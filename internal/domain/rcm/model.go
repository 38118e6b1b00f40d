// Package rcm holds revenue-cycle tooling: a demo-mode insurance eligibility
// check and synchronous table exports for billing staff.
//
// The eligibility check is an explicit mock. It keys entirely off the parity
// of the trailing digit of the member id and fabricates the rest of the
// payload; a real clearinghouse client would implement the same handler
// contract.
package rcm

import "time"

type EligibilityRequest struct {
	MemberID  string `json:"member_id"`
	Payer     string `json:"payer,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type EligibilityResponse struct {
	MemberID   string    `json:"member_id"`
	Status     string    `json:"status"` // "active" or "inactive"
	Payer      string    `json:"payer"`
	PlanName   string    `json:"plan_name"`
	CopayCents int64     `json:"copay_cents"`
	Deductible int64     `json:"deductible_cents"`
	CheckedAt  time.Time `json:"checked_at"`
	DemoMode   bool      `json:"demo_mode"`
}

// Export tables and formats accepted by POST /rcm/export.
const (
	TablePatients = "patients"
	TableInvoices = "invoices"
	TablePayments = "payments"

	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

type ExportRequest struct {
	Table  string `json:"table"`
	Format string `json:"format"`
	From   string `json:"from,omitempty"` // YYYY-MM-DD
	To     string `json:"to,omitempty"`   // YYYY-MM-DD
}

// Dataset is a flat table ready for serialization in any export format.
type Dataset struct {
	Headers []string
	Rows    [][]string
}
