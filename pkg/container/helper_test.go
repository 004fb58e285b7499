package container

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/k3s-io/swiftclient/pkg/auth"
)

const testToken = "AUTH_tk0123"

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// fakeSwift records every request and answers with the handler, if any.
type fakeSwift struct {
	*httptest.Server
	mu       sync.Mutex
	requests []recordedRequest
	handler  http.HandlerFunc
}

func newFakeSwift(t *testing.T, handler http.HandlerFunc) *fakeSwift {
	t.Helper()
	f := &fakeSwift{handler: handler}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
		}
		if f.handler != nil {
			f.handler(w, r)
		} else {
			rec.Body, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusNoContent)
		}
		f.mu.Lock()
		f.requests = append(f.requests, rec)
		f.mu.Unlock()
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeSwift) Requests() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

type countingAuth struct {
	calls atomic.Int32
	lease auth.Lease
	err   error
}

func (c *countingAuth) Authenticate(context.Context) (auth.Lease, error) {
	c.calls.Add(1)
	return c.lease, c.err
}

func newContainer(t *testing.T, f *fakeSwift, opts ...Option) (*Container, *countingAuth) {
	t.Helper()
	a := &countingAuth{lease: auth.Lease{URL: f.URL + "/v1/AUTH_test", Token: testToken}}
	return New("backups", a, opts...), a
}

// trackingCloser records whether the transport closed the caller's stream.
type trackingCloser struct {
	io.Reader
	closed atomic.Bool
}

func (t *trackingCloser) Close() error {
	t.closed.Store(true)
	return nil
}
