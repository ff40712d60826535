// Package admin implements the company and user administration services:
// creation, set-if-present updates, the company status state machine with
// cascading user status changes, and filtered paginated search.
package admin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/simple-admin/pkg/domain"
	"github.com/tendant/simple-admin/pkg/query"
)

// CompanyStore is the persistence surface the company service requires.
type CompanyStore interface {
	Create(ctx context.Context, c *domain.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	Update(ctx context.Context, c *domain.Company) error
	Search(ctx context.Context, pred query.Predicate, page query.PageRequest) ([]*domain.Company, int64, error)
}

// UserStore is the persistence surface the user service and the company
// cascades require. Bulk updates are single set-based statements, not loops.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Search(ctx context.Context, pred query.Predicate, page query.PageRequest) ([]*domain.User, int64, error)
	BulkUpdateStatusByCompany(ctx context.Context, companyID uuid.UUID, status domain.UserStatus, actor string, at time.Time) error
	BulkUpdateStatusByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID, status domain.UserStatus, actor string, at time.Time) error
}

// AuditStore persists audit log entries.
type AuditStore interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

// TxManager runs a function inside one atomic transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// noopTxManager runs the function directly. Used when no transactional store
// is wired, e.g. in tests against in-memory fakes.
type noopTxManager struct{}

func (noopTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Clock provides the current time. Injected so tests are deterministic.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}
