// Package users exposes the user admin endpoints.
package users

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/simple-admin/internal/http/features/common"
	"github.com/tendant/simple-admin/internal/http/middleware"
	"github.com/tendant/simple-admin/internal/httputil"
	"github.com/tendant/simple-admin/pkg/admin"
	"github.com/tendant/simple-admin/pkg/domain"
)

const dateOnly = "2006-01-02"

// Handler handles user endpoints.
type Handler struct {
	logger  *slog.Logger
	service *admin.UserService
}

// NewHandler creates a new users handler.
func NewHandler(logger *slog.Logger, service *admin.UserService) *Handler {
	return &Handler{logger: logger, service: service}
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID          uuid.UUID        `json:"id"`
	CompanyID   *uuid.UUID       `json:"company_id,omitempty"`
	FirstName   string           `json:"first_name"`
	LastName    string           `json:"last_name"`
	Username    string           `json:"username"`
	Email       string           `json:"email"`
	SSN         string           `json:"ssn"`
	DateOfBirth string           `json:"date_of_birth"`
	Addresses   []domain.Address `json:"addresses"`
	Phones      []domain.Phone   `json:"phones"`
	Functions   []string         `json:"functions"`
	Status      string           `json:"status"`
	CreatedBy   string           `json:"created_by"`
	UpdatedBy   string           `json:"updated_by"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func toResponse(u *domain.User) UserResponse {
	functions := make([]string, 0, len(u.Functions))
	for _, fn := range u.Functions {
		functions = append(functions, string(fn))
	}
	return UserResponse{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Username:    u.Username,
		Email:       u.Email,
		SSN:         u.SSN,
		DateOfBirth: u.DateOfBirth.Format(dateOnly),
		Addresses:   u.Addresses,
		Phones:      u.Phones,
		Functions:   functions,
		Status:      string(u.Status),
		CreatedBy:   u.CreatedBy,
		UpdatedBy:   u.UpdatedBy,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// SearchResponse is one page of users.
type SearchResponse struct {
	Items      []UserResponse `json:"items"`
	Page       int            `json:"page"`
	Size       int            `json:"size"`
	TotalCount int64          `json:"total_count"`
}

// CreateRequest represents a user create request. Any supplied status is
// ignored: new users always start active.
type CreateRequest struct {
	CompanyID   *uuid.UUID       `json:"company_id,omitempty"`
	FirstName   string           `json:"first_name"`
	LastName    string           `json:"last_name"`
	Username    string           `json:"username"`
	Email       string           `json:"email"`
	SSN         string           `json:"ssn"`
	DateOfBirth string           `json:"date_of_birth"`
	Addresses   []domain.Address `json:"addresses,omitempty"`
	Phones      []domain.Phone   `json:"phones,omitempty"`
	Functions   []string         `json:"functions,omitempty"`
}

// UpdateRequest represents a partial user update. Status, functions, ssn and
// date of birth cannot be changed through this endpoint.
type UpdateRequest struct {
	FirstName *string          `json:"first_name,omitempty"`
	LastName  *string          `json:"last_name,omitempty"`
	Username  *string          `json:"username,omitempty"`
	Email     *string          `json:"email,omitempty"`
	Addresses []domain.Address `json:"addresses,omitempty"`
	Phones    []domain.Phone   `json:"phones,omitempty"`
}

// Create creates a user.
// POST /v1/users
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, r, http.StatusBadRequest, common.CodeValidationFailed, "invalid request body")
		return
	}

	dob, err := time.Parse(dateOnly, req.DateOfBirth)
	if err != nil {
		common.WriteDomainError(w, r, h.logger, domain.ErrInvalidDateOfBirth)
		return
	}
	functions, err := parseFunctions(req.Functions)
	if err != nil {
		common.WriteDomainError(w, r, h.logger, err)
		return
	}

	user, err := h.service.Create(r.Context(), middleware.GetActor(r.Context()), admin.CreateUserInput{
		CompanyID:   req.CompanyID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Username:    req.Username,
		Email:       req.Email,
		SSN:         req.SSN,
		DateOfBirth: dob,
		Addresses:   req.Addresses,
		Phones:      req.Phones,
		Functions:   functions,
	})
	if err != nil {
		common.WriteDomainError(w, r, h.logger, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, toResponse(user))
}

// Get returns a user by id.
// GET /v1/users/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := common.IDParam(r)
	if err != nil {
		httputil.Error(w, r, http.StatusBadRequest, common.CodeValidationFailed, "invalid user id")
		return
	}

	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		common.WriteDomainError(w, r, h.logger, err)
		return
	}

	httputil.JSON(w, http.StatusOK, toResponse(user))
}

// Update applies a partial update to a user.
// PATCH /v1/users/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := common.IDParam(r)
	if err != nil {
		httputil.Error(w, r, http.StatusBadRequest, common.CodeValidationFailed, "invalid user id")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, r, http.StatusBadRequest, common.CodeValidationFailed, "invalid request body")
		return
	}

	user, err := h.service.Update(r.Context(), middleware.GetActor(r.Context()), id, admin.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Addresses: req.Addresses,
		Phones:    req.Phones,
	})
	if err != nil {
		common.WriteDomainError(w, r, h.logger, err)
		return
	}

	httputil.JSON(w, http.StatusOK, toResponse(user))
}

// Search returns one page of users matching the query parameters.
// GET /v1/users
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

	items := make([]UserResponse, 0, len(result.Items))
	for _, u := range result.Items {
		items = append(items, toResponse(u))
	}
	httputil.JSON(w, http.StatusOK, SearchResponse{
		Items:      items,
		Page:       result.PageNumber,
		Size:       result.Size,
		TotalCount: result.TotalCount,
	})
}

func parseFunctions(names []string) ([]domain.UserFunction, error) {
	functions := make([]domain.UserFunction, 0, len(names))
	for _, name := range names {
		fn, err := domain.ParseUserFunction(name)
		if err != nil {
			return nil, err
		}
		functions = append(functions, fn)
	}
	return functions, nil
}

func parseFilter(r *http.Request) (domain.UserFilter, error) {
	filter := domain.UserFilter{
		Name:  common.QueryString(r, "name"),
		Email: common.QueryString(r, "email"),
		SSN:   common.QueryString(r, "ssn"),
	}

	if s := common.QueryString(r, "company_id"); s != nil {
		id, err := uuid.Parse(*s)
		if err != nil {
			return domain.UserFilter{}, domain.ErrInvalidCompanyID
		}
		filter.CompanyID = &id
	}
	if s := common.QueryString(r, "status"); s != nil {
		status, err := domain.ParseUserStatus(*s)
		if err != nil {
			return domain.UserFilter{}, err
		}
		filter.Status = &status
	}
	if s := common.QueryString(r, "date_of_birth"); s != nil {
		dob, err := time.Parse(dateOnly, *s)
		if err != nil {
			return domain.UserFilter{}, domain.ErrInvalidDateOfBirth
		}
		filter.DateOfBirth = &dob
	}
	if s := common.QueryString(r, "functions"); s != nil {
		functions, err := parseFunctions(strings.Split(*s, ","))
		if err != nil {
			return domain.UserFilter{}, err
		}
		filter.Functions = functions
	}
	return filter, nil
}
