package admin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/simple-admin/pkg/domain"
	"github.com/tendant/simple-admin/pkg/query"
)

// In-memory fakes for service tests. They store value copies so a rejected
// operation observably leaves no state change, and they record the order of
// store calls so tests can assert the company status is persisted before the
// cascade runs.

type fakeCompanyStore struct {
	companies map[uuid.UUID]domain.Company
	calls     *[]string

	searchPred  query.Predicate
	searchPage  query.PageRequest
	searchItems []*domain.Company
	searchTotal int64
}

func newFakeCompanyStore(calls *[]string) *fakeCompanyStore {
	return &fakeCompanyStore{companies: make(map[uuid.UUID]domain.Company), calls: calls}
}

func (f *fakeCompanyStore) record(op string) {
	if f.calls != nil {
		*f.calls = append(*f.calls, op)
	}
}

func (f *fakeCompanyStore) Create(_ context.Context, c *domain.Company) error {
	f.record("companies.Create")
	f.companies[c.ID] = *c
	return nil
}

func (f *fakeCompanyStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	copied := c
	return &copied, nil
}

func (f *fakeCompanyStore) Update(_ context.Context, c *domain.Company) error {
	f.record("companies.Update")
	if _, ok := f.companies[c.ID]; !ok {
		return domain.ErrCompanyNotFound
	}
	f.companies[c.ID] = *c
	return nil
}

func (f *fakeCompanyStore) Search(_ context.Context, pred query.Predicate, page query.PageRequest) ([]*domain.Company, int64, error) {
	f.searchPred = pred
	f.searchPage = page
	return f.searchItems, f.searchTotal, nil
}

type fakeUserStore struct {
	users map[uuid.UUID]domain.User
	calls *[]string

	bulkByCompanyCalls int
	bulkByIDsCalls     int

	searchPred  query.Predicate
	searchPage  query.PageRequest
	searchItems []*domain.User
	searchTotal int64
}

func newFakeUserStore(calls *[]string) *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]domain.User), calls: calls}
}

func (f *fakeUserStore) record(op string) {
	if f.calls != nil {
		*f.calls = append(*f.calls, op)
	}
}

func (f *fakeUserStore) Create(_ context.Context, u *domain.User) error {
	f.record("users.Create")
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := u
	return &copied, nil
}

func (f *fakeUserStore) Update(_ context.Context, u *domain.User) error {
	f.record("users.Update")
	if _, ok := f.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserStore) Search(_ context.Context, pred query.Predicate, page query.PageRequest) ([]*domain.User, int64, error) {
	f.searchPred = pred
	f.searchPage = page
	return f.searchItems, f.searchTotal, nil
}

func (f *fakeUserStore) BulkUpdateStatusByCompany(_ context.Context, companyID uuid.UUID, status domain.UserStatus, actor string, at time.Time) error {
	f.record("users.BulkUpdateStatusByCompany")
	f.bulkByCompanyCalls++
	for id, u := range f.users {
		if u.CompanyID != nil && *u.CompanyID == companyID {
			u.Status = status
			u.UpdatedBy = actor
			u.UpdatedAt = at
			f.users[id] = u
		}
	}
	return nil
}

func (f *fakeUserStore) BulkUpdateStatusByIDs(_ context.Context, companyID uuid.UUID, ids []uuid.UUID, status domain.UserStatus, actor string, at time.Time) error {
	f.record("users.BulkUpdateStatusByIDs")
	f.bulkByIDsCalls++
	selected := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		selected[id] = struct{}{}
	}
	for id, u := range f.users {
		if _, ok := selected[id]; !ok {
			continue
		}
		if u.CompanyID == nil || *u.CompanyID != companyID {
			continue
		}
		u.Status = status
		u.UpdatedBy = actor
		u.UpdatedAt = at
		f.users[id] = u
	}
	return nil
}

type fakeAuditStore struct {
	entries []*domain.AuditLog
}

func (f *fakeAuditStore) Create(_ context.Context, entry *domain.AuditLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}
