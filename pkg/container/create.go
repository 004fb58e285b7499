package container

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/k3s-io/swiftclient/pkg/log"
	"github.com/k3s-io/swiftclient/pkg/metrics"
	"github.com/pkg/errors"
)

// Create uploads an object, replacing any existing object with the same name.
// The stream is read as the transport sends it; it is never buffered whole
// and never closed. A 201 response yields the object's ETag.
func (c *Container) Create(ctx context.Context, opts CreateOptions) (res CreateResult, err error) {
	if opts.Name == "" {
		return res, ErrNameRequired
	}
	if opts.Stream == nil && opts.Content == nil {
		return res, ErrStreamRequired
	}
	if opts.Stream != nil && opts.Content != nil {
		return res, ErrStreamAndContent
	}

	start := time.Now()
	var sent int64
	defer func() {
		dur := time.Since(start)
		metrics.ObserveOperation(start, "create", opts.Name, err)
		metrics.ObserveTransfer(metrics.DirectionUpload, sent)
		log.Debugf(ctx, "PUT %s/%s, meta=%d, extra=%d => etag=%s, size=%d, err=%v, duration=%s",
			c.name, opts.Name, len(opts.Meta), len(opts.Extra), res.ETag, sent, err, dur)
	}()

	lease, err := c.authenticate(ctx)
	if err != nil {
		return res, err
	}

	uri, err := c.objectURL(lease.URL, opts.Name, opts.Query)
	if err != nil {
		return res, err
	}

	header := c.entity.Headers(opts.Meta, opts.Extra, lease.Token)

	var (
		body   io.Reader
		length = int64(-1)
	)
	if opts.Content != nil {
		data, jerr := json.Marshal(opts.Content)
		if jerr != nil {
			return res, errors.Wrap(jerr, "swift-container: encoding content")
		}
		body = bytes.NewReader(data)
		length = int64(len(data))
		header.Set("Content-Type", "application/json")
	} else {
		body = opts.Stream
		if opts.ContentLength != nil {
			length = *opts.ContentLength
		} else if l, ok := opts.Stream.(interface{ Len() int }); ok {
			length = int64(l.Len())
		}
		if opts.ContentType != "" {
			header.Set("Content-Type", opts.ContentType)
		}
	}

	counter := &countingReader{r: body}
	var reqBody io.Reader = counter
	if length == 0 {
		// a nil body sends Content-Length: 0 instead of a chunked empty body
		reqBody = nil
	}

	req, err := c.newRequest(ctx, http.MethodPut, uri, header, reqBody)
	if err != nil {
		return res, err
	}
	if length > 0 {
		req.ContentLength = length
	}

	resp, err := c.do(req, opts.Name, is201)
	sent = counter.n.Load()
	if err != nil {
		return res, err
	}
	defer closeBody(resp)

	res.ETag = resp.Header.Get("Etag")
	return res, nil
}
