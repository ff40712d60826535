// Package companies exposes the company admin endpoints.
package companies

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/simple-admin/internal/http/features/common"
	"github.com/tendant/simple-admin/internal/http/middleware"
	"github.com/tendant/simple-admin/internal/httputil"
	"github.com/tendant/simple-admin/pkg/admin"
	"github.com/tendant/simple-admin/pkg/domain"
)

// Handler handles company endpoints.
type Handler struct {
	logger  *slog.Logger
	service *admin.CompanyService
}

// NewHandler creates a new companies handler.
func NewHandler(logger *slog.Logger, service *admin.CompanyService) *Handler {
	return &Handler{logger: logger, service: service}
}

// CompanyResponse represents a company in API responses.
type CompanyResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	CountryCode string           `json:"country_code"`
	Addresses   []domain.Address `json:"addresses"`
	Phones      []domain.Phone   `json:"phones"`
	Email       *string          `json:"email,omitempty"`
	Website     *string          `json:"website,omitempty"`
	Status      string           `json:"status"`
	CreatedBy   string           `json:"created_by"`
	UpdatedBy   string           `json:"updated_by"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func toResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		CountryCode: c.CountryCode,
		Addresses:   c.Addresses,
		Phones:      c.Phones,
		Email:       c.Email,
		Website:     c.Website,
		Status:      string(c.Status),
		CreatedBy:   c.CreatedBy,
		UpdatedBy:   c.UpdatedBy,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// SearchResponse is one page of companies.
type SearchResponse struct {
	Items      []CompanyResponse `json:"items"`
	Page       int               `json:"page"`
	Size       int               `json:"size"`
	TotalCount int64             `json:"total_count"`
}

// CreateRequest represents a company create request. Any supplied status is
// ignored: new companies always start active.
type CreateRequest struct {
	Name        string           `json:"name"`
	CountryCode string           `json:"country_code"`
	Addresses   []domain.Address `json:"addresses,omitempty"`
	Phones      []domain.Phone   `json:"phones,omitempty"`
	Email       *string          `json:"email,omitempty"`
	Website     *string          `json:"website,omitempty"`
}

// UpdateRequest represents a partial company update. Omitted fields are left
// unchanged; supplied address or phone lists replace the stored lists.
type UpdateRequest struct {
	Name        *string          `json:"name,omitempty"`
	CountryCode *string          `json:"country_code,omitempty"`
	Addresses   []domain.Address `json:"addresses,omitempty"`
	Phones      []domain.Phone   `json:"phones,omitempty"`
	Email       *string          `json:"email,omitempty"`
	Website     *string          `json:"website,omitempty"`
}

// ReactivateRequest selects which users are reactivated with the company.
type ReactivateRequest struct {
	UserReactivation string      `json:"user_reactivation"`
	SelectedUserIDs  []uuid.UUID `json:"selected_user_ids,omitempty"`
}

// Create creates a company.
// POST /v1/companies
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, r, http.StatusBadRequest, common.CodeValidationFailed, "invalid request body")
		return
	}

	company, err := h.service.Create(r.Context(), middleware.GetActor(r.Context()), admin.CreateCompanyInput{
		Name:        req.Name,
		CountryCode: req.CountryCode,
		Addresses:   req.Addresses,
		Phones:      req.Phones,
		Email:       req.Email,
		Website:     req.Website,
	})
	if err != nil {
		common.WriteDomainError(w, r, h.logger, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, toResponse(company))
}

// Get returns a company by id.
// GET /v1/companies/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := common.IDParam(r)
	if err != nil {
		httputil.Error(w, r, http.StatusBadRequest, common.CodeValidationFailed, "invalid company id")
		return
	}

	company, err := h.service.Get(r.Context(), id)
	if err != nil {
		common.WriteDomainError(w, r, h.logger, err)
		return
	}

	httputil.JSON(w, http.StatusOK, toResponse(company))
}

// Update applies a partial update to a company.
// PATCH /v1/companies/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := common.IDParam(r)
	if err != nil {
		httputil.Error(w, r, http.StatusBadRequest, common.CodeValidationFailed, "invalid company id")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, r, http.StatusBadRequest, common.CodeValidationFailed, "invalid request body")
		return
	}

	company, err := h.service.Update(r.Context(), middleware.GetActor(r.Context()), id, admin.UpdateCompanyInput{
		Name:        req.Name,
		CountryCode: req.CountryCode,
		Addresses:   req.Addresses,
		Phones:      req.Phones,
		Email:       req.Email,
		Website:     req.Website,
	})
	if err != nil {
		common.WriteDomainError(w, r, h.logger, err)
		return
	}

	httputil.JSON(w, http.StatusOK, toResponse(company))
}

// Search returns one page of companies matching the query parameters.
// GET /v1/companies
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		common.WriteDomainError(w, r, h.logger, err)
		return
	}

	result, err := h.service.Search(r.Context(), filter, common.ParsePage(r))
	if err != nil {
		common.WriteDomainError(w, r, h.logger, err)
		return
	}

	items := make([]CompanyResponse, 0, len(result.Items))
	for _, c := range result.Items {
		items = append(items, toResponse(c))
	}
	httputil.JSON(w, http.StatusOK, SearchResponse{
		Items:      items,
		Page:       result.PageNumber,
		Size:       result.Size,
		TotalCount: result.TotalCount,
	})
}

// Deactivate deactivates a company and all of its users.
// POST /v1/companies/{id}/deactivate
func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := common.IDParam(r)
	if err != nil {
		httputil.Error(w, r, http.StatusBadRequest, common.CodeValidationFailed, "invalid company id")
		return
	}

	company, err := h.service.Deactivate(r.Context(), middleware.GetActor(r.Context()), id)
	if err != nil {
		common.WriteDomainError(w, r, h.logger, err)
		return
	}

	httputil.JSON(w, http.StatusOK, toResponse(company))
}

// Reactivate reactivates a company with the requested user cascade.
// POST /v1/companies/{id}/reactivate
func (h *Handler) Reactivate(w http.ResponseWriter, r *http.Request) {
	id, err := common.IDParam(r)
	if err != nil {
		httputil.Error(w, r, http.StatusBadRequest, common.CodeValidationFailed, "invalid company id")
		return
	}

	var req ReactivateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, r, http.StatusBadRequest, common.CodeValidationFailed, "invalid request body")
		return
	}
	mode, err := admin.ParseUserReactivation(req.UserReactivation)
	if err != nil {
		common.WriteDomainError(w, r, h.logger, err)
		return
	}

	company, err := h.service.Reactivate(r.Context(), middleware.GetActor(r.Context()), id, admin.ReactivateInput{
		Mode:            mode,
		SelectedUserIDs: req.SelectedUserIDs,
	})
	if err != nil {
		common.WriteDomainError(w, r, h.logger, err)
		return
	}

	httputil.JSON(w, http.StatusOK, toResponse(company))
}

func parseFilter(r *http.Request) (domain.CompanyFilter, error) {
	filter := domain.CompanyFilter{
		Name:        common.QueryString(r, "name"),
		CountryCode: common.QueryString(r, "country_code"),
	}

	if s := common.QueryString(r, "status"); s != nil {
		status, err := domain.ParseCompanyStatus(*s)
		if err != nil {
			return domain.CompanyFilter{}, err
		}
		filter.Status = &status
	}

	var err error
	if filter.CreatedFrom, err = common.QueryTime(r, "created_from"); err != nil {
		return domain.CompanyFilter{}, domain.ErrInvalidTimestamp
	}
	if filter.CreatedTo, err = common.QueryTime(r, "created_to"); err != nil {
		return domain.CompanyFilter{}, domain.ErrInvalidTimestamp
	}
	if filter.UpdatedFrom, err = common.QueryTime(r, "updated_from"); err != nil {
		return domain.CompanyFilter{}, domain.ErrInvalidTimestamp
	}
	if filter.UpdatedTo, err = common.QueryTime(r, "updated_to"); err != nil {
		return domain.CompanyFilter{}, domain.ErrInvalidTimestamp
	}
	return filter, nil
}
