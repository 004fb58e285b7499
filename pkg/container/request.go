package container

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/k3s-io/swiftclient/pkg/util"
	"github.com/pkg/errors"
)

// maxErrorBody bounds how much of an error response is kept in a StatusError.
const maxErrorBody = 512

// objectURL returns {base}{suffix}/{name}[?query]. Each path segment of name
// is escaped; slashes are kept so pseudo-directories work.
func (c *Container) objectURL(base, name string, query Query) (string, error) {
	if _, err := util.ParseURL(base); err != nil {
		return "", errors.Wrap(ErrInvalidLease, err.Error())
	}

	segments := strings.Split(name, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}

	u := strings.TrimRight(base, "/") + c.entity.URLSuffix() + "/" + strings.Join(segments, "/")
	if q := query.Encode(); q != "" {
		u += "?" + q
	}
	return u, nil
}

func (c *Container) newRequest(ctx context.Context, method, uri string, header http.Header, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, uri, body)
	if err != nil {
		return nil, err
	}
	for k, v := range header {
		req.Header[k] = v
	}
	return req, nil
}

// do sends req and returns the response when its status satisfies ok. On any
// other status the body is consumed and closed and a StatusError returned.
func (c *Container) do(req *http.Request, name string, ok func(int) bool) (*http.Response, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "swift %s %s", req.Method, name)
	}
	if !ok(resp.StatusCode) {
		return nil, statusError(req.Method, name, resp)
	}
	return resp, nil
}

func statusError(method, name string, resp *http.Response) error {
	defer closeBody(resp)
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		Method:  method,
		Name:    name,
		Status:  resp.StatusCode,
		Message: strings.TrimSpace(string(msg)),
	}
}

// closeBody drains what is left of a small body so the connection can be
// reused, then closes it.
func closeBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4*maxErrorBody))
	_ = resp.Body.Close()
}

func is2xx(code int) bool {
	return code >= 200 && code <= 299
}

func is201(code int) bool {
	return code == http.StatusCreated
}

// countingReader hides any Close method of the wrapped reader so the
// transport never closes the caller's stream.
// The transport may still be reading when Do returns, hence the atomic.
type countingReader struct {
	r io.Reader
	n atomic.Int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n.Add(int64(n))
	return n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
