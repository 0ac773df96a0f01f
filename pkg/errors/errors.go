package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	CodeUnsupportedPlatform = "UNSUPPORTED_PLATFORM"
	CodeTimeout             = "TIMEOUT"
	CodeNotFound            = "NOT_FOUND"
	CodeForbidden           = "FORBIDDEN"
	CodeRateLimited         = "RATE_LIMITED"
	CodeAPIError            = "API_ERROR"
	CodeNetwork             = "NETWORK_ERROR"
	CodeAllEndpointsFailed  = "ALL_ENDPOINTS_FAILED"
	CodeValidation          = "VALIDATION_ERROR"
)

// ScrapeError is one classified failure of a fetch. Endpoint, StatusCode and Body
// are set when the failure came from a specific API call.
type ScrapeError struct {
	Code       string
	Message    string
	Platform   string
	Endpoint   string
	StatusCode int
	Body       string
	Cause      error
}

func (e *ScrapeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ScrapeError) Unwrap() error {
	return e.Cause
}

func NewUnsupportedPlatformError(platform, url string) *ScrapeError {
	return &ScrapeError{
		Code:     CodeUnsupportedPlatform,
		Message:  fmt.Sprintf("platform %s is not supported (%s)", platform, url),
		Platform: platform,
	}
}

func NewTimeoutError(platform, endpoint string, cause error) *ScrapeError {
	return &ScrapeError{
		Code:     CodeTimeout,
		Message:  fmt.Sprintf("timed out waiting for %s response", platform),
		Platform: platform,
		Endpoint: endpoint,
		Cause:    cause,
	}
}

func NewNetworkError(endpoint string, cause error) *ScrapeError {
	return &ScrapeError{
		Code:     CodeNetwork,
		Message:  "network error",
		Endpoint: endpoint,
		Cause:    cause,
	}
}

// NewStatusError classifies a non-2xx response by its status code.
func NewStatusError(statusCode int, body, endpoint string) *ScrapeError {
	var message, code string
	switch statusCode {
	case http.StatusNotFound:
		message, code = "content not found or unavailable (404)", CodeNotFound
	case http.StatusForbidden:
		message, code = "access forbidden, possibly private account (403)", CodeForbidden
	case http.StatusTooManyRequests:
		message, code = "API rate limit exceeded (429)", CodeRateLimited
	default:
		message, code = fmt.Sprintf("API error %d", statusCode), CodeAPIError
	}
	if body != "" {
		message = fmt.Sprintf("%s - %s", message, body)
	}

	return &ScrapeError{
		Code:       code,
		Message:    message,
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Body:       body,
	}
}

// NewInvalidResponseError reports a 2xx response whose body is not a JSON document.
func NewInvalidResponseError(statusCode int, body, endpoint string) *ScrapeError {
	return &ScrapeError{
		Code:       CodeAPIError,
		Message:    "API returned a non-JSON body",
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Body:       body,
	}
}

type AllEndpointsFailedError struct {
	*ScrapeError
	Platform string
	Attempts int
}

// NewAllEndpointsFailedError wraps the last classified failure; CodeOf on the result
// yields that failure's code.
func NewAllEndpointsFailedError(platform string, attempts int, last error) *AllEndpointsFailedError {
	message := "all endpoints failed"
	if last != nil {
		message = fmt.Sprintf("all %d %s endpoints failed", attempts, platform)
	}
	return &AllEndpointsFailedError{
		ScrapeError: &ScrapeError{
			Code:     CodeAllEndpointsFailed,
			Message:  message,
			Platform: platform,
			Cause:    last,
		},
		Platform: platform,
		Attempts: attempts,
	}
}

type ValidationError struct {
	*ScrapeError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		ScrapeError: &ScrapeError{
			Code:    CodeValidation,
			Message: fmt.Sprintf("%s (%s=%v)", message, field, value),
		},
		Field: field,
		Value: value,
	}
}

type scrapeErrorer interface {
	scrapeError() *ScrapeError
}

func (e *ScrapeError) scrapeError() *ScrapeError {
	return e
}

// AsScrapeError finds the first ScrapeError in the chain, including ones embedded
// in typed wrappers such as AllEndpointsFailedError.
func AsScrapeError(err error) (*ScrapeError, bool) {
	var target scrapeErrorer
	if !stderrors.As(err, &target) {
		return nil, false
	}
	return target.scrapeError(), true
}

// Innermost returns the deepest ScrapeError in the chain, i.e. the classified
// failure behind any wrappers.
func Innermost(err error) (*ScrapeError, bool) {
	var last *ScrapeError
	for err != nil {
		se, ok := AsScrapeError(err)
		if !ok {
			break
		}
		last = se
		err = se.Cause
	}
	return last, last != nil
}

// CodeOf returns the most specific code in the error chain, or "" when err carries none.
func CodeOf(err error) string {
	if se, ok := Innermost(err); ok {
		return se.Code
	}
	return ""
}

// HasCode reports whether any ScrapeError in the chain carries code.
func HasCode(err error, code string) bool {
	for err != nil {
		se, ok := AsScrapeError(err)
		if !ok {
			return false
		}
		if se.Code == code {
			return true
		}
		err = se.Cause
	}
	return false
}
