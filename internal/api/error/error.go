// Package error contains the API error taxonomy and response encoding.
package error

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error is the JSON body written for every failed request.
type Error struct {
	Code    ErrorCode `json:"code"`
	Status  int       `json:"-"`
	Message string    `json:"message"`
	ErrorID string    `json:"error_id"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// EncodeError writes an error response with the status mapped from the code.
func EncodeError(w http.ResponseWriter, code ErrorCode, message, requestID string) error {
	body := Error{
		Code:    code,
		Status:  code.StatusCode(),
		Message: message,
		ErrorID: requestID,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(body.Status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		return fmt.Errorf("encoding error response: %w", err)
	}
	return nil
}

// EncodeInternalError writes a generic internal server error response.
func EncodeInternalError(w http.ResponseWriter, requestID string) error {
	return EncodeError(w, InternalServerError, "internal server error", requestID)
}

// EncodeValidationError writes a validation failure with per-field detail
// when the error comes from the validator.
func EncodeValidationError(w http.ResponseWriter, err error, requestID string) error {
	var verrs validator.ValidationErrors
	if !isValidationErrors(err, &verrs) {
		return EncodeError(w, ValidationFailed, "invalid request body", requestID)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s: failed %q", fe.Field(), fe.Tag()))
	}
	return EncodeError(w, ValidationFailed, strings.Join(fields, "; "), requestID)
}

func isValidationErrors(err error, dst *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors) //nolint:errorlint
	if !ok {
		return false
	}
	*dst = verrs
	return true
}
