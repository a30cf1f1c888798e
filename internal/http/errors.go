package http

import (
	stdhttp "net/http"

	"github.com/danielgtaylor/huma/v2"
)

const (
	codeNotFound       = "not_found"
	codeInvalidContent = "invalid_content"
	codeRateLimited    = "rate_limited"
	codeInternal       = "internal_error"
)

// apiError is the JSON body every failing endpoint returns: a stable machine
// code under "error" and a human-readable "message".
type apiError struct {
	status  int
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *apiError) Error() string { return e.Message }

func (e *apiError) GetStatus() int { return e.status }

func (e *apiError) ContentType(string) string { return "application/json" }

func newAPIError(status int, code, message string) *apiError {
	return &apiError{status: status, Code: code, Message: message}
}

func notFoundError(message string) *apiError {
	return newAPIError(stdhttp.StatusNotFound, codeNotFound, message)
}

func invalidContentError(message string) *apiError {
	return newAPIError(stdhttp.StatusUnprocessableEntity, codeInvalidContent, message)
}

func internalError(message string) *apiError {
	return newAPIError(stdhttp.StatusInternalServerError, codeInternal, message)
}

func codeForStatus(status int) string {
	switch status {
	case stdhttp.StatusNotFound:
		return codeNotFound
	case stdhttp.StatusUnprocessableEntity:
		return codeInvalidContent
	case stdhttp.StatusTooManyRequests:
		return codeRateLimited
	default:
		return codeInternal
	}
}

// Errors Huma raises itself (body parsing, unknown routes) must come out in
// the same {error, message} shape as ours.
func init() {
	huma.NewError = func(status int, message string, _ ...error) huma.StatusError {
		if message == "" {
			message = stdhttp.StatusText(status)
		}
		return newAPIError(status, codeForStatus(status), message)
	}
}
