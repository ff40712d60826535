package admin

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tendant/simple-admin/pkg/domain"
)

// Recorder appends audit log entries for mutating operations. Recording is
// best-effort: failures are logged and never surface to the caller, so an
// audit outage cannot block business operations.
type Recorder struct {
	logs   AuditStore
	logger *slog.Logger
	clock  Clock
}

// NewRecorder creates an audit recorder. logs may be nil, in which case
// recording is a no-op.
func NewRecorder(logs AuditStore, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{logs: logs, logger: logger, clock: realClock{}}
}

// Record writes one audit entry.
func (r *Recorder) Record(ctx context.Context, actor, action, resource, resourceID, metadata string) {
	if r == nil || r.logs == nil {
		return
	}
	entry := &domain.AuditLog{
		ID:         uuid.New(),
		Actor:      actor,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Metadata:   metadata,
		CreatedAt:  r.clock.Now(),
	}
	if err := r.logs.Create(ctx, entry); err != nil {
		r.logger.Error("failed to record audit entry",
			"error", err,
			"action", action,
			"resource", resource,
			"resource_id", resourceID,
		)
	}
}
