package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tendant/simple-admin/pkg/domain"
	"github.com/tendant/simple-admin/pkg/query"
)

// UserReactivation selects which of a company's users are cascade-activated
// when the company is reactivated.
type UserReactivation string

const (
	ReactivateAll      UserReactivation = "all"
	ReactivateNone     UserReactivation = "none"
	ReactivateSelected UserReactivation = "selected"
)

// ParseUserReactivation parses a reactivation option case-insensitively.
func ParseUserReactivation(s string) (UserReactivation, error) {
	switch UserReactivation(strings.ToLower(strings.TrimSpace(s))) {
	case ReactivateAll:
		return ReactivateAll, nil
	case ReactivateNone:
		return ReactivateNone, nil
	case ReactivateSelected:
		return ReactivateSelected, nil
	default:
		return "", domain.ErrInvalidReactivationMode
	}
}

// CompanyService owns the company status state machine and orchestrates the
// cascading user status changes on deactivate and reactivate.
type CompanyService struct {
	companies CompanyStore
	users     UserStore
	tx        TxManager
	audit     *Recorder
	clock     Clock
}

// NewCompanyService creates a new company service. tx may be nil, in which
// case operations run without an explicit transaction boundary.
func NewCompanyService(companies CompanyStore, users UserStore, tx TxManager, audit *Recorder) *CompanyService {
	if tx == nil {
		tx = noopTxManager{}
	}
	return &CompanyService{
		companies: companies,
		users:     users,
		tx:        tx,
		audit:     audit,
		clock:     realClock{},
	}
}

// CreateCompanyInput carries the fields of a company create request.
type CreateCompanyInput struct {
	Name        string
	CountryCode string
	Addresses   []domain.Address
	Phones      []domain.Phone
	Email       *string
	Website     *string
}

// UpdateCompanyInput carries a partial update. Nil fields leave the existing
// value unchanged; non-nil address/phone lists (including empty ones) replace
// the stored lists wholesale.
type UpdateCompanyInput struct {
	Name        *string
	CountryCode *string
	Addresses   []domain.Address
	Phones      []domain.Phone
	Email       *string
	Website     *string
}

// ReactivateInput carries the reactivation directive.
type ReactivateInput struct {
	Mode            UserReactivation
	SelectedUserIDs []uuid.UUID
}

// Create creates a new company. Status is force-set to active regardless of
// any caller-supplied value.
func (s *CompanyService) Create(ctx context.Context, actor string, in CreateCompanyInput) (*domain.Company, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	countryCode := strings.ToUpper(strings.TrimSpace(in.CountryCode))
	if countryCode == "" {
		return nil, domain.ErrInvalidCountryCode
	}

	now := s.clock.Now()
	company := &domain.Company{
		ID:          uuid.New(),
		Name:        name,
		CountryCode: countryCode,
		Addresses:   in.Addresses,
		Phones:      in.Phones,
		Email:       in.Email,
		Website:     in.Website,
		Status:      domain.CompanyStatusActive,
		CreatedBy:   actor,
		UpdatedBy:   actor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.companies.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("create company: %w", err)
	}

	s.audit.Record(ctx, actor, domain.AuditActionCreate, domain.AuditResourceCompany, company.ID.String(), "")
	return company, nil
}

// Get retrieves a company by ID.
func (s *CompanyService) Get(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	return s.companies.GetByID(ctx, id)
}

// Search returns one page of companies matching the filter. The page
// metadata and total count come from the store unchanged.
func (s *CompanyService) Search(ctx context.Context, filter domain.CompanyFilter, page query.PageRequest) (*query.Page[*domain.Company], error) {
	page = page.Normalize()
	companies, total, err := s.companies.Search(ctx, query.Companies(filter), page)
	if err != nil {
		return nil, fmt.Errorf("search companies: %w", err)
	}
	return &query.Page[*domain.Company]{
		Items:      companies,
		PageNumber: page.Page,
		Size:       page.Size,
		TotalCount: total,
	}, nil
}

// Update applies a partial update to an active company. A deactivated
// company cannot be modified until it is reactivated.
func (s *CompanyService) Update(ctx context.Context, actor string, id uuid.UUID, in UpdateCompanyInput) (*domain.Company, error) {
	var updated *domain.Company
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		company, err := s.companies.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if company.IsDeactivated() {
			return domain.ErrCompanyDeactivated
		}

		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.ErrInvalidName
			}
			company.Name = name
		}
		if in.CountryCode != nil {
			countryCode := strings.ToUpper(strings.TrimSpace(*in.CountryCode))
			if countryCode == "" {
				return domain.ErrInvalidCountryCode
			}
			company.CountryCode = countryCode
		}
		if in.Addresses != nil {
			company.Addresses = in.Addresses
		}
		if in.Phones != nil {
			company.Phones = in.Phones
		}
		if in.Email != nil {
			company.Email = in.Email
		}
		if in.Website != nil {
			company.Website = in.Website
		}

		company.UpdatedBy = actor
		company.UpdatedAt = s.clock.Now()

		if err := s.companies.Update(txCtx, company); err != nil {
			return err
		}
		updated = company
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, domain.AuditActionUpdate, domain.AuditResourceCompany, id.String(), "")
	return updated, nil
}

// Deactivate transitions the company to deactivated and cascades every one
// of its users to inactive in a single bulk update. The company status and
// the cascade commit atomically.
func (s *CompanyService) Deactivate(ctx context.Context, actor string, id uuid.UUID) (*domain.Company, error) {
	var updated *domain.Company
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		company, err := s.companies.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if company.IsDeactivated() {
			return domain.ErrCompanyAlreadyDeactivated
		}

		now := s.clock.Now()
		company.Status = domain.CompanyStatusDeactivated
		company.UpdatedBy = actor
		company.UpdatedAt = now

		if err := s.companies.Update(txCtx, company); err != nil {
			return err
		}
		if err := s.users.BulkUpdateStatusByCompany(txCtx, id, domain.UserStatusInactive, actor, now); err != nil {
			return fmt.Errorf("cascade deactivate users: %w", err)
		}
		updated = company
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, domain.AuditActionDeactivate, domain.AuditResourceCompany, id.String(), "")
	return updated, nil
}

// Reactivate transitions the company back to active. The directive selects
// which users are cascade-activated: all of the company's users, a selected
// non-empty list of ids, or none. Selected ids that do not belong to the
// company are ignored.
func (s *CompanyService) Reactivate(ctx context.Context, actor string, id uuid.UUID, in ReactivateInput) (*domain.Company, error) {
	switch in.Mode {
	case ReactivateAll, ReactivateNone, ReactivateSelected:
	default:
		return nil, domain.ErrInvalidReactivationMode
	}

	var updated *domain.Company
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		company, err := s.companies.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if !company.IsDeactivated() {
			return domain.ErrCompanyAlreadyActive
		}
		if in.Mode == ReactivateSelected && len(in.SelectedUserIDs) == 0 {
			return domain.ErrNoUsersSelected
		}

		now := s.clock.Now()
		company.Status = domain.CompanyStatusActive
		company.UpdatedBy = actor
		company.UpdatedAt = now

		if err := s.companies.Update(txCtx, company); err != nil {
			return err
		}

		switch in.Mode {
		case ReactivateAll:
			if err := s.users.BulkUpdateStatusByCompany(txCtx, id, domain.UserStatusActive, actor, now); err != nil {
				return fmt.Errorf("cascade reactivate users: %w", err)
			}
		case ReactivateSelected:
			if err := s.users.BulkUpdateStatusByIDs(txCtx, id, in.SelectedUserIDs, domain.UserStatusActive, actor, now); err != nil {
				return fmt.Errorf("cascade reactivate selected users: %w", err)
			}
		}
		updated = company
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, domain.AuditActionReactivate, domain.AuditResourceCompany, id.String(), string(in.Mode))
	return updated, nil
}
