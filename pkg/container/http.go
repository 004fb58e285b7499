package container

import (
	"net/http"
	"time"
)

// HTTPClient performs a single request. *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient returns a client with the given overall timeout. A zero
// timeout means none; the timeout covers reading the body, so keep it
// generous for large objects.
func NewHTTPClient(timeOut time.Duration) HTTPClient {
	return &http.Client{Timeout: timeOut}
}
