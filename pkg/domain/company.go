package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CompanyStatus represents the lifecycle state of a company.
type CompanyStatus string

const (
	CompanyStatusActive      CompanyStatus = "active"
	CompanyStatusDeactivated CompanyStatus = "deactivated"
)

// ParseCompanyStatus parses a status string case-insensitively.
func ParseCompanyStatus(s string) (CompanyStatus, error) {
	switch CompanyStatus(strings.ToLower(strings.TrimSpace(s))) {
	case CompanyStatusActive:
		return CompanyStatusActive, nil
	case CompanyStatusDeactivated:
		return CompanyStatusDeactivated, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Address is an embedded value object. Address lists are replaced wholesale
// on update, never merged.
type Address struct {
	Country  string `json:"country,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Street   string `json:"street,omitempty"`
	Building string `json:"building,omitempty"`
	Room     string `json:"room,omitempty"`
}

// Phone is an embedded value object with the same replace-wholesale semantics
// as Address.
type Phone struct {
	Code   string `json:"code,omitempty"`
	Number string `json:"number,omitempty"`
}

// Company represents an insurance company owning a set of users.
type Company struct {
	ID          uuid.UUID
	Name        string
	CountryCode string
	Addresses   []Address
	Phones      []Phone
	Email       *string
	Website     *string
	Status      CompanyStatus
	CreatedBy   string
	UpdatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsDeactivated returns true if the company is in the deactivated state.
func (c *Company) IsDeactivated() bool {
	return c.Status == CompanyStatusDeactivated
}
