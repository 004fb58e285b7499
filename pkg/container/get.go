package container

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/k3s-io/swiftclient/pkg/log"
	"github.com/k3s-io/swiftclient/pkg/metrics"
	"github.com/pkg/errors"
)

// Get downloads an object into opts.Sink, writing each chunk as it arrives.
// Only the auth token is sent. A non-2xx answer is returned as a StatusError
// and nothing is written to the sink.
func (c *Container) Get(ctx context.Context, opts GetOptions) (err error) {
	if opts.Name == "" {
		return ErrNameRequired
	}
	if opts.Sink == nil {
		return ErrSinkRequired
	}

	start := time.Now()
	sink := &countingWriter{w: opts.Sink}
	defer func() {
		dur := time.Since(start)
		metrics.ObserveOperation(start, "get", opts.Name, err)
		metrics.ObserveTransfer(metrics.DirectionDownload, sink.n)
		log.Debugf(ctx, "GET %s/%s => size=%d, err=%v, duration=%s", c.name, opts.Name, sink.n, err, dur)
	}()

	lease, err := c.authenticate(ctx)
	if err != nil {
		return err
	}

	uri, err := c.objectURL(lease.URL, opts.Name, opts.Query)
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodGet, uri, c.entity.Headers(nil, nil, lease.Token), nil)
	if err != nil {
		return err
	}

	resp, err := c.do(req, opts.Name, is2xx)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err = io.Copy(sink, resp.Body); err != nil {
		return errors.Wrapf(err, "swift GET %s: transfer", opts.Name)
	}

	return nil
}
