// Package dashboard serves the aggregate counters for the admin landing
// page. The four counts are independent reads, so they are fanned out
// concurrently; any single failure fails the whole request.
package dashboard

type Stats struct {
	Patients          int            `json:"patients"`
	IntakesByStatus   map[string]int `json:"intakes_by_status"`
	OpenInvoices      int            `json:"open_invoices"`
	AppointmentsToday int            `json:"appointments_today"`
}
