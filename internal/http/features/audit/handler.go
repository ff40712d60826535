// Package audit exposes the audit trail endpoint.
package audit

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/simple-admin/internal/http/features/common"
	"github.com/tendant/simple-admin/internal/httputil"
	"github.com/tendant/simple-admin/pkg/domain"
	"github.com/tendant/simple-admin/pkg/repository"
)

// Handler handles audit endpoints.
type Handler struct {
	logger *slog.Logger
	logs   *repository.AuditLogsRepository
}

// NewHandler creates a new audit handler.
func NewHandler(logger *slog.Logger, logs *repository.AuditLogsRepository) *Handler {
	return &Handler{logger: logger, logs: logs}
}

// EntryResponse represents one audit entry.
type EntryResponse struct {
	ID         uuid.UUID `json:"id"`
	Actor      string    `json:"actor"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resource_id"`
	Metadata   string    `json:"metadata,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListResponse is one page of audit entries, newest first.
type ListResponse struct {
	Items      []EntryResponse `json:"items"`
	Page       int             `json:"page"`
	Size       int             `json:"size"`
	TotalCount int64           `json:"total_count"`
}

// List returns the audit trail, newest first.
// GET /v1/audit
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := common.ParsePage(r)

	entries, total, err := h.logs.List(r.Context(), page)
	if err != nil {
		common.WriteDomainError(w, r, h.logger, err)
		return
	}

	items := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, toResponse(e))
	}
	httputil.JSON(w, http.StatusOK, ListResponse{
		Items:      items,
		Page:       page.Page,
		Size:       page.Size,
		TotalCount: total,
	})
}

func toResponse(e *domain.AuditLog) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		Actor:      e.Actor,
		Action:     e.Action,
		Resource:   e.Resource,
		ResourceID: e.ResourceID,
		Metadata:   e.Metadata,
		CreatedAt:  e.CreatedAt,
	}
}
