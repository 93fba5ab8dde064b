package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-ats/internal/parsing"
)

// Error codes returned in the response envelope.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeMissingFields  = "MISSING_FIELDS"
	CodeUploadFailed   = "UPLOAD_FAILED"
	CodeNoResume       = "NO_RESUME"
	CodeInternal       = "INTERNAL_ERROR"
	CodeRateLimited    = "RATE_LIMITED"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeNotFound       = "NOT_FOUND"
)

const (
	msgBodyRequired   = "Request body is required"
	msgMissingFields  = "jobRole and company are required"
	msgNoResume       = "Either resumeFile or resumeText is required"
	msgInternal       = "An error occurred during analysis"
	msgUnauthorized   = "A valid bearer token is required"
	msgRateLimited    = "Rate limit exceeded. Please try again later."
	msgAnalysisAbsent = "Analysis not found"
)

// APIError is an error with a stable code and HTTP status.
type APIError struct {
	Status  int
	Code    string
	Message string
	Cause   error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return e.Code + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

func badRequest(code, message string, cause error) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: code, Message: message, Cause: cause}
}

// HTTPStatus returns the status code for err.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return classify(err).Status
}

// classify maps pipeline and validation errors to API errors. Anything it
// does not recognize is an internal error.
func classify(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var upErr *parsing.UploadError
	if errors.As(err, &upErr) {
		return badRequest(CodeUploadFailed, upErr.Message, err)
	}
	if errors.Is(err, parsing.ErrNoResume) {
		return badRequest(CodeNoResume, msgNoResume, err)
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == "JobRole" || fe.Field() == "Company" {
				return badRequest(CodeMissingFields, msgMissingFields, err)
			}
		}
		return badRequest(CodeInvalidRequest, "Invalid "+verrs[0].Field()+": failed "+verrs[0].Tag()+" check", err)
	}

	var exErr *parsing.ExtractError
	if errors.As(err, &exErr) {
		return &APIError{Status: http.StatusInternalServerError, Code: CodeInternal, Message: exErr.Message, Cause: err}
	}

	return &APIError{Status: http.StatusInternalServerError, Code: CodeInternal, Message: msgInternal, Cause: err}
}
