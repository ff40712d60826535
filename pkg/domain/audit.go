package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records a single mutating operation: who did what to which
// resource. Entries are append-only.
type AuditLog struct {
	ID         uuid.UUID
	Actor      string
	Action     string
	Resource   string
	ResourceID string
	Metadata   string
	CreatedAt  time.Time
}

// Audit actions recorded by the services.
const (
	AuditActionCreate     = "create"
	AuditActionUpdate     = "update"
	AuditActionDeactivate = "deactivate"
	AuditActionReactivate = "reactivate"
)

// Audit resource names.
const (
	AuditResourceCompany = "company"
	AuditResourceUser    = "user"
)
