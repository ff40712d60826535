package domain

import (
	"time"

	"github.com/google/uuid"
)

// CompanyFilter is a read-only query object. Every field is optional; a nil
// field means no constraint on that dimension.
type CompanyFilter struct {
	Name        *string
	CountryCode *string
	Status      *CompanyStatus
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	UpdatedFrom *time.Time
	UpdatedTo   *time.Time
}

// UserFilter is a read-only query object with the same optional-field
// semantics as CompanyFilter. Name matches either first or last name.
type UserFilter struct {
	CompanyID   *uuid.UUID
	Name        *string
	Email       *string
	SSN         *string
	DateOfBirth *time.Time
	Status      *UserStatus
	Functions   []UserFunction
}
