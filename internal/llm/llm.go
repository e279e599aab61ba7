package llm

import (
	"context"
	"errors"
	"fmt"
)

// Client abstracts the text-generation provider used for resume content.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Request carries the system instruction and the user prompt.
type Request struct {
	System string
	User   string
}

// ErrMissingCredential is returned when no API credential is configured.
var ErrMissingCredential = errors.New("OpenAI API key not found in environment variables")

// TransportError reports a network failure or a non-success HTTP status.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		if e.Err != nil {
			return fmt.Sprintf("OpenAI API request failed: http status %d: %v", e.StatusCode, e.Err)
		}
		return fmt.Sprintf("OpenAI API request failed: http status %d", e.StatusCode)
	}
	if e.Err == nil {
		return "OpenAI API request failed"
	}
	return "OpenAI API request failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError reports an error condition carried in the service payload.
type ServiceError struct {
	Message string
	Type    string
}

func (e *ServiceError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("OpenAI API error: %s (%s)", e.Message, e.Type)
	}
	return "OpenAI API error: " + e.Message
}
