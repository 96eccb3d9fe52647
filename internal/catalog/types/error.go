package types

import (
	"errors"
	"fmt"
)

var (
	// Configuration errors
	ErrInvalidProviderID   = errors.New("invalid provider ID")
	ErrInvalidProviderName = errors.New("invalid provider name")
	ErrInvalidAPIHost      = errors.New("invalid API host")
	ErrMissingRapidAPIHost = errors.New("missing RapidAPI host")

	ErrProviderNotFound = errors.New("provider not found")
)

// UpstreamErrorKind classifies why an upstream call failed
type UpstreamErrorKind string

const (
	// KindUnreachable covers timeouts, DNS failures and refused connections
	KindUnreachable UpstreamErrorKind = "UNREACHABLE"
	// KindStatus means the upstream answered with a non-2xx status
	KindStatus UpstreamErrorKind = "STATUS"
	// KindInvalidResponse means the body could not be understood
	KindInvalidResponse UpstreamErrorKind = "INVALID_RESPONSE"
)

// UpstreamError wraps upstream failures
type UpstreamError struct {
	Provider ProviderID
	Kind     UpstreamErrorKind
	Status   int
	Message  string
	Err      error
}

func (e *UpstreamError) Error() string {
	code := string(e.Kind)
	if e.Kind == KindStatus {
		code = fmt.Sprintf("HTTP_%d", e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Provider, code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Provider, code, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
