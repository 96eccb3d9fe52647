package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_HTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"query required", New(ErrQueryRequired), http.StatusBadRequest},
		{"rate limited", New(ErrUpstreamRateLimited), http.StatusTooManyRequests},
		{"unreachable", New(ErrUpstreamUnreachable), http.StatusServiceUnavailable},
		{"status override", New(ErrUpstreamUnavailable).WithStatus(http.StatusGatewayTimeout), http.StatusGatewayTimeout},
		{"unknown code", New(424242), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	wrapped := Wrap(cause, ErrUpstreamUnreachable)
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, ErrUpstreamUnreachable, ExtractCode(wrapped))
	assert.Equal(t, http.StatusServiceUnavailable, ExtractStatus(wrapped))

	assert.Nil(t, Wrap(nil, ErrInternalServer))

	// Wrapping an AppError keeps the original code.
	again := Wrap(wrapped, ErrInternalServer, "second pass")
	assert.Equal(t, ErrUpstreamUnreachable, again.Code)
	assert.Equal(t, "second pass", again.Details)
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Search term (?q=) is required", PublicMessage(New(ErrQueryRequired)))
	assert.Equal(t, "Invalid filter value: minPrice must be a number",
		PublicMessage(New(ErrInvalidFilter, "minPrice must be a number")))

	// Server-side causes never leak into the public message.
	err := Wrap(errors.New("secret upstream body"), ErrUpstreamUnavailable, "upstream said no")
	assert.Equal(t, "External product service is currently unavailable.", PublicMessage(err))

	assert.Equal(t, "Internal server error", PublicMessage(errors.New("boom")))
}
