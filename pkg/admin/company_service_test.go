package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/simple-admin/pkg/domain"
	"github.com/tendant/simple-admin/pkg/query"
)

func strPtr(s string) *string { return &s }

func newCompanyFixture(t *testing.T) (*CompanyService, *fakeCompanyStore, *fakeUserStore, *fakeAuditStore, *[]string) {
	t.Helper()
	calls := &[]string{}
	companies := newFakeCompanyStore(calls)
	users := newFakeUserStore(calls)
	audit := &fakeAuditStore{}
	svc := NewCompanyService(companies, users, nil, NewRecorder(audit, nil))
	svc.clock = fixedClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	return svc, companies, users, audit, calls
}

func seedCompany(store *fakeCompanyStore, status domain.CompanyStatus) *domain.Company {
	email := "info@alpha.example"
	c := domain.Company{
		ID:          uuid.New(),
		Name:        "Alpha Insurance",
		CountryCode: "USA",
		Email:       &email,
		Status:      status,
		CreatedBy:   "seeder",
		UpdatedBy:   "seeder",
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	store.companies[c.ID] = c
	return &c
}

func seedUser(store *fakeUserStore, companyID uuid.UUID, status domain.UserStatus) *domain.User {
	u := domain.User{
		ID:        uuid.New(),
		CompanyID: &companyID,
		FirstName: "Jane",
		LastName:  "Doe",
		Username:  "jane-" + uuid.NewString()[:8],
		Email:     uuid.NewString()[:8] + "@example.com",
		SSN:       uuid.NewString()[:11],
		Status:    status,
	}
	store.users[u.ID] = u
	return &u
}

func TestCreateCompany(t *testing.T) {
	svc, companies, _, audit, _ := newCompanyFixture(t)

	created, err := svc.Create(context.Background(), "admin-1", CreateCompanyInput{
		Name:        "  Alpha Insurance  ",
		CountryCode: "usa",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if created.Status != domain.CompanyStatusActive {
		t.Errorf("Status = %q, want active", created.Status)
	}
	if created.Name != "Alpha Insurance" {
		t.Errorf("Name = %q, want trimmed", created.Name)
	}
	if created.CountryCode != "USA" {
		t.Errorf("CountryCode = %q, want USA", created.CountryCode)
	}
	if created.ID == uuid.Nil {
		t.Error("ID should be generated")
	}
	if created.CreatedBy != "admin-1" || created.UpdatedBy != "admin-1" {
		t.Errorf("audit fields = %q/%q, want admin-1", created.CreatedBy, created.UpdatedBy)
	}
	if _, ok := companies.companies[created.ID]; !ok {
		t.Error("company was not persisted")
	}
	if len(audit.entries) != 1 || audit.entries[0].Action != domain.AuditActionCreate {
		t.Errorf("audit entries = %+v, want one create", audit.entries)
	}
}

func TestCreateCompany_Validation(t *testing.T) {
	svc, _, _, _, _ := newCompanyFixture(t)

	tests := []struct {
		name    string
		input   CreateCompanyInput
		wantErr error
	}{
		{
			name:    "empty name",
			input:   CreateCompanyInput{Name: "  ", CountryCode: "USA"},
			wantErr: domain.ErrInvalidName,
		},
		{
			name:    "empty country code",
			input:   CreateCompanyInput{Name: "Alpha", CountryCode: ""},
			wantErr: domain.ErrInvalidCountryCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), "admin-1", tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateCompany_SetIfPresent(t *testing.T) {
	svc, companies, _, _, _ := newCompanyFixture(t)
	seeded := seedCompany(companies, domain.CompanyStatusActive)

	updated, err := svc.Update(context.Background(), "admin-2", seeded.ID, UpdateCompanyInput{
		Website: strPtr("https://alpha.example"),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if updated.Name != seeded.Name {
		t.Errorf("Name changed: %q", updated.Name)
	}
	if updated.CountryCode != seeded.CountryCode {
		t.Errorf("CountryCode changed: %q", updated.CountryCode)
	}
	if updated.Email == nil || *updated.Email != *seeded.Email {
		t.Errorf("Email changed: %v", updated.Email)
	}
	if updated.Website == nil || *updated.Website != "https://alpha.example" {
		t.Errorf("Website = %v, want replaced", updated.Website)
	}
	if updated.UpdatedBy != "admin-2" {
		t.Errorf("UpdatedBy = %q, want admin-2", updated.UpdatedBy)
	}
}

func TestUpdateCompany_ReplacesListsWholesale(t *testing.T) {
	svc, companies, _, _, _ := newCompanyFixture(t)
	seeded := seedCompany(companies, domain.CompanyStatusActive)

	withAddress := companies.companies[seeded.ID]
	withAddress.Addresses = []domain.Address{{Country: "USA", City: "Boston"}}
	withAddress.Phones = []domain.Phone{{Code: "+1", Number: "5550100"}}
	companies.companies[seeded.ID] = withAddress

	// An explicitly empty list replaces; an absent (nil) list preserves.
	updated, err := svc.Update(context.Background(), "admin-2", seeded.ID, UpdateCompanyInput{
		Addresses: []domain.Address{},
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if len(updated.Addresses) != 0 {
		t.Errorf("Addresses = %v, want replaced with empty list", updated.Addresses)
	}
	if len(updated.Phones) != 1 {
		t.Errorf("Phones = %v, want preserved", updated.Phones)
	}
}

func TestUpdateCompany_DeactivatedRejected(t *testing.T) {
	svc, companies, _, _, _ := newCompanyFixture(t)
	seeded := seedCompany(companies, domain.CompanyStatusDeactivated)

	_, err := svc.Update(context.Background(), "admin-2", seeded.ID, UpdateCompanyInput{
		Name: strPtr("New Name"),
	})
	if !errors.Is(err, domain.ErrCompanyDeactivated) {
		t.Fatalf("err = %v, want ErrCompanyDeactivated", err)
	}

	if companies.companies[seeded.ID].Name != seeded.Name {
		t.Error("rejected update must leave the company unchanged")
	}
}

func TestUpdateCompany_NotFound(t *testing.T) {
	svc, _, _, _, _ := newCompanyFixture(t)

	_, err := svc.Update(context.Background(), "admin-2", uuid.New(), UpdateCompanyInput{Name: strPtr("X")})
	if !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Fatalf("err = %v, want ErrCompanyNotFound", err)
	}
}

func TestDeactivate_CascadesAllUsersInactive(t *testing.T) {
	svc, companies, users, audit, calls := newCompanyFixture(t)
	seeded := seedCompany(companies, domain.CompanyStatusActive)
	for i := 0; i < 3; i++ {
		seedUser(users, seeded.ID, domain.UserStatusActive)
	}
	other := seedCompany(companies, domain.CompanyStatusActive)
	foreign := seedUser(users, other.ID, domain.UserStatusActive)

	updated, err := svc.Deactivate(context.Background(), "admin-3", seeded.ID)
	if err != nil {
		t.Fatalf("Deactivate returned error: %v", err)
	}

	if updated.Status != domain.CompanyStatusDeactivated {
		t.Errorf("Status = %q, want deactivated", updated.Status)
	}
	cascadeTime := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for id, u := range users.users {
		if u.CompanyID == nil || *u.CompanyID != seeded.ID {
			continue
		}
		if u.Status != domain.UserStatusInactive {
			t.Errorf("user %s status = %q, want inactive", id, u.Status)
		}
		if !u.UpdatedAt.Equal(cascadeTime) {
			t.Errorf("user %s UpdatedAt = %v, want the service clock time", id, u.UpdatedAt)
		}
	}
	if updated.UpdatedAt != cascadeTime {
		t.Errorf("company UpdatedAt = %v, want the service clock time", updated.UpdatedAt)
	}
	if users.users[foreign.ID].Status != domain.UserStatusActive {
		t.Error("users of other companies must not be cascaded")
	}
	if users.bulkByCompanyCalls != 1 {
		t.Errorf("bulk update calls = %d, want exactly 1", users.bulkByCompanyCalls)
	}

	// Company status is persisted before the cascade runs.
	want := []string{"companies.Update", "users.BulkUpdateStatusByCompany"}
	if len(*calls) != 2 || (*calls)[0] != want[0] || (*calls)[1] != want[1] {
		t.Errorf("call order = %v, want %v", *calls, want)
	}
	if len(audit.entries) != 1 || audit.entries[0].Action != domain.AuditActionDeactivate {
		t.Errorf("audit entries = %+v, want one deactivate", audit.entries)
	}
}

func TestDeactivate_AlreadyDeactivated(t *testing.T) {
	svc, companies, users, _, _ := newCompanyFixture(t)
	seeded := seedCompany(companies, domain.CompanyStatusDeactivated)
	u := seedUser(users, seeded.ID, domain.UserStatusActive)

	_, err := svc.Deactivate(context.Background(), "admin-3", seeded.ID)
	if !errors.Is(err, domain.ErrCompanyAlreadyDeactivated) {
		t.Fatalf("err = %v, want ErrCompanyAlreadyDeactivated", err)
	}

	if users.users[u.ID].Status != domain.UserStatusActive {
		t.Error("rejected transition must not cascade")
	}
}

func TestDeactivate_NotFound(t *testing.T) {
	svc, _, _, _, _ := newCompanyFixture(t)

	_, err := svc.Deactivate(context.Background(), "admin-3", uuid.New())
	if !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Fatalf("err = %v, want ErrCompanyNotFound", err)
	}
}

func TestReactivate_AllCascades(t *testing.T) {
	svc, companies, users, _, _ := newCompanyFixture(t)
	seeded := seedCompany(companies, domain.CompanyStatusDeactivated)
	seedUser(users, seeded.ID, domain.UserStatusInactive)
	seedUser(users, seeded.ID, domain.UserStatusActive)
	seedUser(users, seeded.ID, domain.UserStatusInactive)

	updated, err := svc.Reactivate(context.Background(), "admin-4", seeded.ID, ReactivateInput{Mode: ReactivateAll})
	if err != nil {
		t.Fatalf("Reactivate returned error: %v", err)
	}

	if updated.Status != domain.CompanyStatusActive {
		t.Errorf("Status = %q, want active", updated.Status)
	}
	for id, u := range users.users {
		if u.Status != domain.UserStatusActive {
			t.Errorf("user %s status = %q, want active", id, u.Status)
		}
	}
}

func TestReactivate_NoneLeavesUsersUntouched(t *testing.T) {
	svc, companies, users, _, _ := newCompanyFixture(t)
	seeded := seedCompany(companies, domain.CompanyStatusDeactivated)
	u := seedUser(users, seeded.ID, domain.UserStatusInactive)

	updated, err := svc.Reactivate(context.Background(), "admin-4", seeded.ID, ReactivateInput{Mode: ReactivateNone})
	if err != nil {
		t.Fatalf("Reactivate returned error: %v", err)
	}

	if updated.Status != domain.CompanyStatusActive {
		t.Errorf("Status = %q, want active", updated.Status)
	}
	if users.users[u.ID].Status != domain.UserStatusInactive {
		t.Error("none mode must not cascade")
	}
}

func TestReactivate_SelectedRequiresUserIDs(t *testing.T) {
	tests := []struct {
		name string
		ids  []uuid.UUID
	}{
		{name: "nil ids", ids: nil},
		{name: "empty ids", ids: []uuid.UUID{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, companies, users, _, _ := newCompanyFixture(t)
			seeded := seedCompany(companies, domain.CompanyStatusDeactivated)
			u := seedUser(users, seeded.ID, domain.UserStatusInactive)

			_, err := svc.Reactivate(context.Background(), "admin-4", seeded.ID, ReactivateInput{
				Mode:            ReactivateSelected,
				SelectedUserIDs: tt.ids,
			})
			if !errors.Is(err, domain.ErrNoUsersSelected) {
				t.Fatalf("err = %v, want ErrNoUsersSelected", err)
			}

			if companies.companies[seeded.ID].Status != domain.CompanyStatusDeactivated {
				t.Error("rejected reactivation must leave the company deactivated")
			}
			if users.users[u.ID].Status != domain.UserStatusInactive {
				t.Error("rejected reactivation must not cascade")
			}
		})
	}
}

func TestReactivate_SelectedActivatesOnlyGivenIDs(t *testing.T) {
	svc, companies, users, _, _ := newCompanyFixture(t)
	seeded := seedCompany(companies, domain.CompanyStatusDeactivated)
	chosen := seedUser(users, seeded.ID, domain.UserStatusInactive)
	left := seedUser(users, seeded.ID, domain.UserStatusInactive)

	_, err := svc.Reactivate(context.Background(), "admin-4", seeded.ID, ReactivateInput{
		Mode:            ReactivateSelected,
		SelectedUserIDs: []uuid.UUID{chosen.ID},
	})
	if err != nil {
		t.Fatalf("Reactivate returned error: %v", err)
	}

	if users.users[chosen.ID].Status != domain.UserStatusActive {
		t.Error("selected user should be activated")
	}
	if users.users[left.ID].Status != domain.UserStatusInactive {
		t.Error("unselected user must stay inactive")
	}
	if users.bulkByIDsCalls != 1 {
		t.Errorf("bulk update calls = %d, want exactly 1", users.bulkByIDsCalls)
	}
}

func TestReactivate_SelectedIgnoresForeignUsers(t *testing.T) {
	svc, companies, users, _, _ := newCompanyFixture(t)
	seeded := seedCompany(companies, domain.CompanyStatusDeactivated)
	other := seedCompany(companies, domain.CompanyStatusActive)
	foreign := seedUser(users, other.ID, domain.UserStatusInactive)

	_, err := svc.Reactivate(context.Background(), "admin-4", seeded.ID, ReactivateInput{
		Mode:            ReactivateSelected,
		SelectedUserIDs: []uuid.UUID{foreign.ID},
	})
	if err != nil {
		t.Fatalf("Reactivate returned error: %v", err)
	}

	if users.users[foreign.ID].Status != domain.UserStatusInactive {
		t.Error("ids belonging to another company must be ignored")
	}
}

func TestReactivate_AlreadyActive(t *testing.T) {
	svc, companies, _, _, _ := newCompanyFixture(t)
	seeded := seedCompany(companies, domain.CompanyStatusActive)

	_, err := svc.Reactivate(context.Background(), "admin-4", seeded.ID, ReactivateInput{Mode: ReactivateAll})
	if !errors.Is(err, domain.ErrCompanyAlreadyActive) {
		t.Fatalf("err = %v, want ErrCompanyAlreadyActive", err)
	}

	if companies.companies[seeded.ID].Status != domain.CompanyStatusActive {
		t.Error("rejected transition must leave the company unchanged")
	}
}

func TestReactivate_NotFound(t *testing.T) {
	svc, _, _, _, _ := newCompanyFixture(t)

	_, err := svc.Reactivate(context.Background(), "admin-4", uuid.New(), ReactivateInput{Mode: ReactivateAll})
	if !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Fatalf("err = %v, want ErrCompanyNotFound", err)
	}
}

func TestReactivate_InvalidMode(t *testing.T) {
	svc, companies, _, _, _ := newCompanyFixture(t)
	seeded := seedCompany(companies, domain.CompanyStatusDeactivated)

	_, err := svc.Reactivate(context.Background(), "admin-4", seeded.ID, ReactivateInput{Mode: "sometimes"})
	if !errors.Is(err, domain.ErrInvalidReactivationMode) {
		t.Fatalf("err = %v, want ErrInvalidReactivationMode", err)
	}
}

func TestSearchCompanies_PreservesStoreTotals(t *testing.T) {
	svc, companies, _, _, _ := newCompanyFixture(t)
	companies.searchItems = []*domain.Company{{Name: "Alpha"}, {Name: "Beta"}}
	companies.searchTotal = 42

	page, err := svc.Search(context.Background(), domain.CompanyFilter{}, query.PageRequest{Page: 2, Size: 2})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if page.TotalCount != 42 {
		t.Errorf("TotalCount = %d, want store-reported 42", page.TotalCount)
	}
	if page.PageNumber != 2 || page.Size != 2 {
		t.Errorf("page metadata = %d/%d, want 2/2", page.PageNumber, page.Size)
	}
	if len(page.Items) != 2 {
		t.Errorf("Items = %d, want 2", len(page.Items))
	}
	if companies.searchPage != (query.PageRequest{Page: 2, Size: 2}) {
		t.Errorf("store page = %+v, want normalized passthrough", companies.searchPage)
	}
}

func TestParseUserReactivation(t *testing.T) {
	tests := []struct {
		in      string
		want    UserReactivation
		wantErr bool
	}{
		{in: "all", want: ReactivateAll},
		{in: "ALL", want: ReactivateAll},
		{in: " None ", want: ReactivateNone},
		{in: "selected", want: ReactivateSelected},
		{in: "bogus", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseUserReactivation(tt.in)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidReactivationMode) {
					t.Errorf("err = %v, want ErrInvalidReactivationMode", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseUserReactivation(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}
