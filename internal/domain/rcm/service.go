package rcm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrBadRequest marks validation failures the handler maps to 400.
var ErrBadRequest = errors.New("bad request")

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CheckEligibility returns the demo eligibility verdict. Coverage is active
// when the trailing digit of the member id is even, inactive when odd. The
// rest of the payload is fabricated but stable for a given member id.
func (s *Service) CheckEligibility(req *EligibilityRequest) (*EligibilityResponse, error) {
	memberID := strings.TrimSpace(req.MemberID)
	if memberID == "" {
		return nil, fmt.Errorf("member_id is required")
	}

	last := memberID[len(memberID)-1]
	if last < '0' || last > '9' {
		return nil, fmt.Errorf("member_id must end in a digit")
	}

	resp := &EligibilityResponse{
		MemberID:  memberID,
		Payer:     req.Payer,
		CheckedAt: time.Now().UTC(),
		DemoMode:  true,
	}
	if resp.Payer == "" {
		resp.Payer = "Demo Health Plan"
	}

	if (last-'0')%2 == 0 {
		resp.Status = "active"
		resp.PlanName = "Workers Comp PPO"
		resp.CopayCents = 2500
		resp.Deductible = 50000
	} else {
		resp.Status = "inactive"
		resp.PlanName = "Workers Comp PPO"
	}
	return resp, nil
}

// Export fetches the requested table and serializes it synchronously. The
// response is built fully in memory; these tables are small clinic datasets,
// not warehouse extracts.
func (s *Service) Export(ctx context.Context, req *ExportRequest) ([]byte, string, error) {
	from, to, err := parseExportRange(req.From, req.To)
	if err != nil {
		return nil, "", err
	}

	var ds *Dataset
	switch req.Table {
	case TablePatients:
		ds, err = s.repo.FetchPatients(ctx, from, to)
	case TableInvoices:
		ds, err = s.repo.FetchInvoices(ctx, from, to)
	case TablePayments:
		ds, err = s.repo.FetchPayments(ctx, from, to)
	default:
		return nil, "", fmt.Errorf("%w: unknown table %q, want patients|invoices|payments", ErrBadRequest, req.Table)
	}
	if err != nil {
		return nil, "", err
	}

	switch req.Format {
	case FormatCSV:
		out, err := marshalCSV(ds)
		return out, "text/csv", err
	case FormatJSON:
		out, err := marshalJSON(ds)
		return out, "application/json", err
	case FormatXLSX:
		out, err := marshalXLSX(ds, req.Table)
		return out, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", err
	default:
		return nil, "", fmt.Errorf("%w: unknown format %q, want csv|json|xlsx", ErrBadRequest, req.Format)
	}
}

func parseExportRange(fromStr, toStr string) (time.Time, time.Time, error) {
	var from, to time.Time
	if fromStr != "" {
		t, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return from, to, fmt.Errorf("%w: invalid from date, want YYYY-MM-DD", ErrBadRequest)
		}
		from = t
	}
	if toStr != "" {
		t, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return from, to, fmt.Errorf("%w: invalid to date, want YYYY-MM-DD", ErrBadRequest)
		}
		to = t.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}
