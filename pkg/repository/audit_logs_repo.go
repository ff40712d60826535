package repository

import (
	"context"
	"fmt"

	"github.com/tendant/simple-admin/pkg/domain"
	"github.com/tendant/simple-admin/pkg/query"
)

// AuditLogsRepository handles audit log persistence. Entries are append-only.
type AuditLogsRepository struct {
	pool Queryer
}

// NewAuditLogsRepository creates a new audit logs repository.
func NewAuditLogsRepository(pool Queryer) *AuditLogsRepository {
	return &AuditLogsRepository{pool: pool}
}

// Create inserts an audit log entry.
func (r *AuditLogsRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	q := `
		INSERT INTO audit_logs (id, actor, action, resource, resource_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := queryerFrom(ctx, r.pool).Exec(ctx, q,
		entry.ID, entry.Actor, entry.Action, entry.Resource, entry.ResourceID,
		entry.Metadata, entry.CreatedAt,
	)
	return err
}

// List returns one page of audit log entries, newest first, plus the total
// count.
func (r *AuditLogsRepository) List(ctx context.Context, page query.PageRequest) ([]*domain.AuditLog, int64, error) {
	exec := queryerFrom(ctx, r.pool)

	var total int64
	if err := exec.QueryRow(ctx, `SELECT count(*) FROM audit_logs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	q := `
		SELECT id, actor, action, resource, resource_id, metadata, created_at
		FROM audit_logs
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := exec.Query(ctx, q, page.Size, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var entries []*domain.AuditLog
	for rows.Next() {
		var e domain.AuditLog
		if err := rows.Scan(&e.ID, &e.Actor, &e.Action, &e.Resource, &e.ResourceID, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
