package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "ageutil/pkg/domain-errors"
)

// ErrorResponse is the JSON body written for failed requests.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Errors after WriteHeader cannot change the status code, so encoding errors are ignored.
	_ = json.NewEncoder(w).Encode(response)
}

// WriteError centralizes domain error translation to HTTP responses.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		WriteJSON(w, DomainCodeToHTTPStatus(domainErr.Code), ErrorResponse{
			Error:            DomainCodeToHTTPCode(domainErr.Code),
			ErrorDescription: domainErr.Message,
		})
		return
	}

	// Unexpected errors never leak their message.
	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: DomainCodeToHTTPCode(dErrors.CodeInternal),
	})
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeInvalidArgument, dErrors.CodeInvalidDate, dErrors.CodeBadRequest, dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// DomainCodeToHTTPCode translates domain error codes to the "error" field of responses.
func DomainCodeToHTTPCode(code dErrors.Code) string {
	switch code {
	case dErrors.CodeInvalidArgument:
		return "invalid_argument"
	case dErrors.CodeInvalidDate:
		return "invalid_date"
	case dErrors.CodeBadRequest:
		return "bad_request"
	case dErrors.CodeValidation:
		return "validation_error"
	case dErrors.CodeNotFound:
		return "not_found"
	case dErrors.CodeTimeout:
		return "timeout"
	default:
		return "internal_error"
	}
}
