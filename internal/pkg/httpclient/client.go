package httpclient

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds a whole request, including reading the body
const DefaultTimeout = 10 * time.Second

// New creates an HTTP client with the specified timeout. A non-positive
// timeout falls back to DefaultTimeout.
func New(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
