package domain

import "errors"

// Not-found errors
var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrUserNotFound    = errors.New("user not found")
)

// Business-rule (precondition) errors
var (
	ErrCompanyDeactivated        = errors.New("cannot modify a deactivated company")
	ErrCompanyAlreadyDeactivated = errors.New("company is already deactivated")
	ErrCompanyAlreadyActive      = errors.New("company is already active")
	ErrNoUsersSelected           = errors.New("selected reactivation requires at least one user id")
	ErrUsernameAlreadyExists     = errors.New("username already exists")
	ErrEmailAlreadyExists        = errors.New("email already exists")
	ErrSSNAlreadyExists          = errors.New("ssn already exists")
)

// Validation errors
var (
	ErrInvalidName             = errors.New("name is required")
	ErrInvalidCountryCode      = errors.New("country code is required")
	ErrInvalidStatus           = errors.New("invalid status")
	ErrInvalidFunction         = errors.New("invalid user function")
	ErrInvalidEmail            = errors.New("email is required")
	ErrInvalidUsername         = errors.New("username is required")
	ErrInvalidSSN              = errors.New("ssn is required")
	ErrInvalidDateOfBirth      = errors.New("date of birth is required")
	ErrInvalidReactivationMode = errors.New("invalid user reactivation option")
	ErrInvalidTimestamp        = errors.New("invalid timestamp")
	ErrInvalidCompanyID        = errors.New("invalid company id")
)

var notFoundErrors = []error{
	ErrCompanyNotFound,
	ErrUserNotFound,
}

var preconditionErrors = []error{
	ErrCompanyDeactivated,
	ErrCompanyAlreadyDeactivated,
	ErrCompanyAlreadyActive,
	ErrNoUsersSelected,
	ErrUsernameAlreadyExists,
	ErrEmailAlreadyExists,
	ErrSSNAlreadyExists,
}

var validationErrors = []error{
	ErrInvalidName,
	ErrInvalidCountryCode,
	ErrInvalidStatus,
	ErrInvalidFunction,
	ErrInvalidEmail,
	ErrInvalidUsername,
	ErrInvalidSSN,
	ErrInvalidDateOfBirth,
	ErrInvalidReactivationMode,
	ErrInvalidTimestamp,
	ErrInvalidCompanyID,
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err is a missing-entity error.
func IsNotFound(err error) bool { return isAny(err, notFoundErrors) }

// IsPrecondition reports whether err is a violated business rule.
func IsPrecondition(err error) bool { return isAny(err, preconditionErrors) }

// IsValidation reports whether err is a rejected-input error.
func IsValidation(err error) bool { return isAny(err, validationErrors) }
