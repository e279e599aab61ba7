package generation

import (
	"errors"
	"net/http"

	"resume-generator/internal/llm"
)

// Messages returned to callers on validation failures.
const (
	MsgMissingInput  = "Missing candidate_data or job_description"
	MsgNameRequired  = "candidate_data.name is required"
	msgInvalidPrefix = "invalid request: "
)

// ValidationError is a client-caused failure detected before any external call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(detail string) *ValidationError {
	return &ValidationError{Message: msgInvalidPrefix + detail}
}

// Kind classifies a pipeline failure.
type Kind int

const (
	KindNone Kind = iota
	KindValidation
	KindCredential
	KindTransport
	KindService
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindCredential:
		return "credential"
	case KindTransport:
		return "upstream_transport"
	case KindService:
		return "upstream_service"
	default:
		return "internal"
	}
}

// KindOf classifies err.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var validationErr *ValidationError
	var transportErr *llm.TransportError
	var serviceErr *llm.ServiceError
	switch {
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.Is(err, llm.ErrMissingCredential):
		return KindCredential
	case errors.As(err, &transportErr):
		return KindTransport
	case errors.As(err, &serviceErr):
		return KindService
	default:
		return KindInternal
	}
}

// StatusFor maps a failure kind to the response status code.
func StatusFor(kind Kind) int {
	switch kind {
	case KindNone:
		return http.StatusOK
	case KindValidation:
		return http.StatusBadRequest
	case KindCredential, KindTransport, KindService, KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
