package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserStatus represents the lifecycle state of a user.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// ParseUserStatus parses a status string case-insensitively.
func ParseUserStatus(s string) (UserStatus, error) {
	switch UserStatus(strings.ToLower(strings.TrimSpace(s))) {
	case UserStatusActive:
		return UserStatusActive, nil
	case UserStatusInactive:
		return UserStatusInactive, nil
	default:
		return "", ErrInvalidStatus
	}
}

// UserFunction is a role tag assigned to a user. A user holds a set of them.
type UserFunction string

const (
	FunctionManager     UserFunction = "manager"
	FunctionConsumer    UserFunction = "consumer"
	FunctionAgent       UserFunction = "agent"
	FunctionUnderwriter UserFunction = "underwriter"
)

// ParseUserFunction parses a function tag case-insensitively.
func ParseUserFunction(s string) (UserFunction, error) {
	switch UserFunction(strings.ToLower(strings.TrimSpace(s))) {
	case FunctionManager:
		return FunctionManager, nil
	case FunctionConsumer:
		return FunctionConsumer, nil
	case FunctionAgent:
		return FunctionAgent, nil
	case FunctionUnderwriter:
		return FunctionUnderwriter, nil
	default:
		return "", ErrInvalidFunction
	}
}

// User represents an individual associated with a company.
// Username, Email and SSN are unique across all users (enforced by the store).
type User struct {
	ID          uuid.UUID
	CompanyID   *uuid.UUID
	FirstName   string
	LastName    string
	Username    string
	Email       string
	SSN         string
	DateOfBirth time.Time
	Addresses   []Address
	Phones      []Phone
	Functions   []UserFunction
	Status      UserStatus
	CreatedBy   string
	UpdatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasFunction returns true if the user holds the given function tag.
func (u *User) HasFunction(fn UserFunction) bool {
	for _, f := range u.Functions {
		if f == fn {
			return true
		}
	}
	return false
}
