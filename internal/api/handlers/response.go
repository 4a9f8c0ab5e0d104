package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/heavyrent/rental-service/internal/domain"
)

const maxBodyBytes = 1 << 20

// Error codes of the {success:false} envelope.
const (
	CodeValidation        = "validation_error"
	CodeUnauthorized      = "unauthorized"
	CodeNotFound          = "not_found"
	CodeConflict          = "conflict"
	CodeForbidden         = "forbidden"
	CodeExternalService   = "payment_gateway_error"
	CodeSignatureMismatch = "signature_mismatch"
	CodeConfiguration     = "configuration_error"
	CodeInternal          = "internal_error"
)

const msgInternalError = "internal server error"

// Envelope is a successful response body. "success": true is added by RespondOK.
type Envelope map[string]interface{}

type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

// DecodeJSON decodes a single JSON object from the request body, rejecting unknown fields.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}

func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// RespondOK writes {"success": true, ...body} with the given status.
func RespondOK(w http.ResponseWriter, status int, body Envelope) {
	out := make(Envelope, len(body)+1)
	for k, v := range body {
		out[k] = v
	}
	out["success"] = true
	RespondJSON(w, status, out)
}

func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Success: false, Error: message, Code: code})
}

// RespondBadRequest answers 400 for malformed input.
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, CodeValidation, message)
}

// RespondValidation answers 400 with per-field details.
func RespondValidation(w http.ResponseWriter, message string, verr *domain.ValidationError) {
	RespondJSON(w, http.StatusBadRequest, ErrorResponse{
		Success: false,
		Error:   message,
		Code:    CodeValidation,
		Details: verr.Fields,
	})
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, CodeUnauthorized, message)
}

// Business rule failures are answered with 200 and success=false.

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusOK, CodeNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusOK, CodeConflict, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusOK, CodeForbidden, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternal, msgInternalError)
}

// RespondCategorized answers according to the domain error category err wraps.
// message replaces the error text for business failures; unknown errors become 500.
func RespondCategorized(w http.ResponseWriter, err error, message string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		RespondValidation(w, message, verr)
	case errors.Is(err, domain.ErrValidation):
		RespondBadRequest(w, message)
	case errors.Is(err, domain.ErrUnauthorized):
		RespondUnauthorized(w, message)
	case errors.Is(err, domain.ErrNotFound):
		RespondNotFound(w, message)
	case errors.Is(err, domain.ErrConflict):
		RespondConflict(w, message)
	case errors.Is(err, domain.ErrForbidden):
		RespondForbidden(w, message)
	case errors.Is(err, domain.ErrSignatureMismatch):
		RespondError(w, http.StatusOK, CodeSignatureMismatch, message)
	case errors.Is(err, domain.ErrExternalService):
		RespondError(w, http.StatusOK, CodeExternalService, message)
	case errors.Is(err, domain.ErrConfiguration):
		RespondError(w, http.StatusOK, CodeConfiguration, message)
	default:
		RespondInternalError(w)
	}
}

// IsBusinessError reports whether err belongs to a known category, i.e. is not an unexpected failure.
func IsBusinessError(err error) bool {
	for _, target := range []error{
		domain.ErrValidation, domain.ErrUnauthorized, domain.ErrNotFound, domain.ErrConflict,
		domain.ErrForbidden, domain.ErrSignatureMismatch, domain.ErrExternalService, domain.ErrConfiguration,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ParsePagination reads page and limit query parameters.
func ParsePagination(r *http.Request, defaultLimit int) (page, limit int, err error) {
	page, limit = 1, defaultLimit
	q := r.URL.Query()

	if v := q.Get("page"); v != "" {
		page, err = strconv.Atoi(v)
		if err != nil || page < 1 || page > domain.MaxPage {
			return 0, 0, fmt.Errorf("%w: page must be between 1 and %d", domain.ErrValidation, domain.MaxPage)
		}
	}
	if v := q.Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 1 || limit > domain.MaxPageLimit {
			return 0, 0, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrValidation, domain.MaxPageLimit)
		}
	}
	return page, limit, nil
}

// Pagination is the paging block of list responses.
type Pagination struct {
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"hasMore"`
}
