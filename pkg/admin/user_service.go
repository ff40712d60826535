package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/simple-admin/pkg/domain"
	"github.com/tendant/simple-admin/pkg/query"
)

// UserService manages user creation, partial updates and filtered search.
type UserService struct {
	users     UserStore
	companies CompanyStore
	tx        TxManager
	audit     *Recorder
	clock     Clock
}

// NewUserService creates a new user service.
func NewUserService(users UserStore, companies CompanyStore, tx TxManager, audit *Recorder) *UserService {
	if tx == nil {
		tx = noopTxManager{}
	}
	return &UserService{
		users:     users,
		companies: companies,
		tx:        tx,
		audit:     audit,
		clock:     realClock{},
	}
}

// CreateUserInput carries the fields of a user create request.
type CreateUserInput struct {
	FirstName   string
	LastName    string
	Username    string
	Email       string
	SSN         string
	DateOfBirth time.Time
	Addresses   []domain.Address
	Phones      []domain.Phone
	Functions   []domain.UserFunction
	CompanyID   *uuid.UUID
}

// UpdateUserInput carries a partial update. Status, functions, ssn and date
// of birth are deliberately not part of the update contract.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Username  *string
	Email     *string
	Addresses []domain.Address
	Phones    []domain.Phone
}

// Create creates a new user. Status is force-set to active regardless of any
// caller-supplied value; requested functions are observed as a set. When a
// company id is supplied, the company must exist.
func (s *UserService) Create(ctx context.Context, actor string, in CreateUserInput) (*domain.User, error) {
	if err := validateCreateUser(in); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &domain.User{
		ID:          uuid.New(),
		CompanyID:   in.CompanyID,
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Username:    strings.TrimSpace(in.Username),
		Email:       strings.TrimSpace(in.Email),
		SSN:         strings.TrimSpace(in.SSN),
		DateOfBirth: in.DateOfBirth,
		Addresses:   in.Addresses,
		Phones:      in.Phones,
		Functions:   dedupeFunctions(in.Functions),
		Status:      domain.UserStatusActive,
		CreatedBy:   actor,
		UpdatedBy:   actor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if user.CompanyID != nil {
			if _, err := s.companies.GetByID(txCtx, *user.CompanyID); err != nil {
				return err
			}
		}
		return s.users.Create(txCtx, user)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, domain.AuditActionCreate, domain.AuditResourceUser, user.ID.String(), "")
	return user, nil
}

// Get retrieves a user by ID.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// Update applies a partial update to a user.
func (s *UserService) Update(ctx context.Context, actor string, id uuid.UUID, in UpdateUserInput) (*domain.User, error) {
	var updated *domain.User
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		user, err := s.users.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if in.FirstName != nil {
			name := strings.TrimSpace(*in.FirstName)
			if name == "" {
				return domain.ErrInvalidName
			}
			user.FirstName = name
		}
		if in.LastName != nil {
			name := strings.TrimSpace(*in.LastName)
			if name == "" {
				return domain.ErrInvalidName
			}
			user.LastName = name
		}
		if in.Username != nil {
			username := strings.TrimSpace(*in.Username)
			if username == "" {
				return domain.ErrInvalidUsername
			}
			user.Username = username
		}
		if in.Email != nil {
			email := strings.TrimSpace(*in.Email)
			if email == "" {
				return domain.ErrInvalidEmail
			}
			user.Email = email
		}
		if in.Addresses != nil {
			user.Addresses = in.Addresses
		}
		if in.Phones != nil {
			user.Phones = in.Phones
		}

		user.UpdatedBy = actor
		user.UpdatedAt = s.clock.Now()

		if err := s.users.Update(txCtx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, domain.AuditActionUpdate, domain.AuditResourceUser, id.String(), "")
	return updated, nil
}

// Search returns one page of users matching the filter.
func (s *UserService) Search(ctx context.Context, filter domain.UserFilter, page query.PageRequest) (*query.Page[*domain.User], error) {
	page = page.Normalize()
	users, total, err := s.users.Search(ctx, query.Users(filter), page)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return &query.Page[*domain.User]{
		Items:      users,
		PageNumber: page.Page,
		Size:       page.Size,
		TotalCount: total,
	}, nil
}

func validateCreateUser(in CreateUserInput) error {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return domain.ErrInvalidName
	}
	if strings.TrimSpace(in.Username) == "" {
		return domain.ErrInvalidUsername
	}
	if strings.TrimSpace(in.Email) == "" {
		return domain.ErrInvalidEmail
	}
	if strings.TrimSpace(in.SSN) == "" {
		return domain.ErrInvalidSSN
	}
	if in.DateOfBirth.IsZero() {
		return domain.ErrInvalidDateOfBirth
	}
	return nil
}

// dedupeFunctions drops duplicate function tags, preserving first-seen order.
func dedupeFunctions(functions []domain.UserFunction) []domain.UserFunction {
	seen := make(map[domain.UserFunction]struct{}, len(functions))
	var out []domain.UserFunction
	for _, fn := range functions {
		if _, ok := seen[fn]; ok {
			continue
		}
		seen[fn] = struct{}{}
		out = append(out, fn)
	}
	return out
}
