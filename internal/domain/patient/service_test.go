package patient

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/occucare/clinic/internal/integrations/gohl"
)

type mockRepo struct {
	patients map[uuid.UUID]*Patient
	seq      int
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	m.seq++
	p.CreatedAt = time.Unix(int64(m.seq), 0)
	p.UpdatedAt = p.CreatedAt
	copied := *p
	m.patients[p.ID] = &copied
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *p
	return &copied, nil
}

func (m *mockRepo) Update(_ context.Context, p *Patient) (*Patient, error) {
	existing, ok := m.patients[p.ID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *p
	copied.CreatedAt = existing.CreatedAt
	copied.SyncStatus = existing.SyncStatus
	copied.CRMContactID = existing.CRMContactID
	copied.UpdatedAt = time.Now()
	m.patients[p.ID] = &copied
	out := copied
	return &out, nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.patients[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.patients, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, query string, limit, offset int) ([]*Patient, int, error) {
	var all []*Patient
	for _, p := range m.patients {
		if query == "" ||
			strings.Contains(strings.ToLower(p.FirstName), strings.ToLower(query)) ||
			strings.Contains(strings.ToLower(p.LastName), strings.ToLower(query)) {
			all = append(all, p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (m *mockRepo) SetSync(_ context.Context, id uuid.UUID, crmContactID, syncStatus string) error {
	p, ok := m.patients[id]
	if !ok {
		return pgx.ErrNoRows
	}
	p.CRMContactID = crmContactID
	p.SyncStatus = syncStatus
	return nil
}

type fakeCRM struct {
	err      error
	upserted []gohl.Contact
}

func (f *fakeCRM) UpsertContact(_ context.Context, c *gohl.Contact) (*gohl.Contact, error) {
	if f.err != nil {
		return nil, f.err
	}
	created := *c
	created.ID = "crm-42"
	f.upserted = append(f.upserted, created)
	return &created, nil
}

func TestCreate_SyncSuccess(t *testing.T) {
	repo := newMockRepo()
	crm := &fakeCRM{}
	svc := NewService(repo, crm, zerolog.Nop())

	p := &Patient{FirstName: "Ana", LastName: "Diaz", Email: "ana@example.com"}
	syncErr, err := svc.Create(context.Background(), p)
	if err != nil || syncErr != nil {
		t.Fatalf("unexpected errors: sync=%v err=%v", syncErr, err)
	}
	if p.SyncStatus != SyncSynced || p.CRMContactID != "crm-42" {
		t.Errorf("expected synced row, got status=%q crm=%q", p.SyncStatus, p.CRMContactID)
	}
	if len(crm.upserted) != 1 || crm.upserted[0].Email != "ana@example.com" {
		t.Errorf("crm upsert did not receive patient details: %+v", crm.upserted)
	}
}

func TestCreate_CRMFailureKeepsLocalRow(t *testing.T) {
	repo := newMockRepo()
	crm := &fakeCRM{err: errors.New("rate limited")}
	svc := NewService(repo, crm, zerolog.Nop())

	p := &Patient{FirstName: "Ben", LastName: "Okafor"}
	syncErr, err := svc.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("create must not fail on crm error: %v", err)
	}
	if syncErr == nil || !strings.Contains(syncErr.Error(), "rate limited") {
		t.Fatalf("expected crm error surfaced, got %v", syncErr)
	}

	stored, err := repo.GetByID(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("local row must be kept: %v", err)
	}
	if stored.SyncStatus != SyncError {
		t.Errorf("expected sync_status=error, got %q", stored.SyncStatus)
	}
}

func TestCreate_NilCRMSkipsSync(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil, zerolog.Nop())

	p := &Patient{FirstName: "Cara", LastName: "Lind"}
	syncErr, err := svc.Create(context.Background(), p)
	if err != nil || syncErr != nil {
		t.Fatalf("unexpected errors: sync=%v err=%v", syncErr, err)
	}
	if p.SyncStatus != SyncPending {
		t.Errorf("expected pending without a crm client, got %q", p.SyncStatus)
	}
}

func TestList_SearchByName(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil, zerolog.Nop())
	for _, name := range []string{"Smith", "Smythe", "Jones"} {
		svc.Create(context.Background(), &Patient{FirstName: "Pat", LastName: name})
	}

	items, total, err := svc.List(context.Background(), "smi", 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].LastName != "Smith" {
		t.Errorf("expected only Smith, got total=%d items=%+v", total, items)
	}
}
