package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"courtbook/internal/model"
	"courtbook/internal/services/directory"
	"courtbook/internal/services/session"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidSlot        = "INVALID_SLOT"
	CodeInvalidDate        = "INVALID_DATE"
	CodeSlotUnavailable    = "SLOT_UNAVAILABLE"
	CodeNoSlotsSelected    = "NO_SLOTS_SELECTED"
	CodeDayNotFound        = "DAY_NOT_FOUND"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeDuplicateUser      = "DUPLICATE_USER"
	CodePasswordTooShort   = "PASSWORD_TOO_SHORT"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrInvalidSlot):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSlot, "Hour must be 8-20 and court A or B"}}
	case errors.Is(err, model.ErrInvalidDate):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDate, "Date must be YYYY-MM-DD"}}
	case errors.Is(err, model.ErrSlotUnavailable):
		return &httpError{http.StatusConflict, APIError{CodeSlotUnavailable, "Slot is already confirmed"}}
	case errors.Is(err, model.ErrNoSlotsSelected):
		return &httpError{http.StatusBadRequest, APIError{CodeNoSlotsSelected, "Select at least one slot"}}
	case errors.Is(err, model.ErrDayNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeDayNotFound, "No reservations for this date"}}
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrDuplicateUser):
		return &httpError{http.StatusConflict, APIError{CodeDuplicateUser, "This name is already registered"}}
	case errors.Is(err, model.ErrPasswordTooShort):
		return &httpError{http.StatusBadRequest, APIError{CodePasswordTooShort, "Password must be at least 4 characters"}}
	case errors.Is(err, model.ErrNotAuthenticated):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Login required"}}

	// Map auth errors
	case errors.Is(err, directory.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid name or password"}}
	case errors.Is(err, session.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
