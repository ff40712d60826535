// Package common holds helpers shared by the feature handlers.
package common

import (
	"log/slog"
	"net/http"

	"github.com/tendant/simple-admin/internal/httputil"
	"github.com/tendant/simple-admin/pkg/domain"
)

// Error codes returned in the error envelope.
const (
	CodeNotFound           = "NOT_FOUND"
	CodePreconditionFailed = "PRECONDITION_FAILED"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeUnexpected         = "UNEXPECTED"
)

// WriteDomainError maps a service error onto the HTTP error envelope.
// Unclassified errors are logged and reported as 500s with the original
// message kept in the payload for diagnosability.
func WriteDomainError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case domain.IsNotFound(err):
		httputil.Error(w, r, http.StatusNotFound, CodeNotFound, err.Error())
	case domain.IsPrecondition(err):
		httputil.Error(w, r, http.StatusConflict, CodePreconditionFailed, err.Error())
	case domain.IsValidation(err):
		httputil.Error(w, r, http.StatusBadRequest, CodeValidationFailed, err.Error())
	default:
		logger.Error("unexpected error", "error", err, "path", r.URL.Path, "method", r.Method)
		httputil.Error(w, r, http.StatusInternalServerError, CodeUnexpected, err.Error())
	}
}
