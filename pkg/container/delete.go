package container

import (
	"context"
	"net/http"
	"time"

	"github.com/k3s-io/swiftclient/pkg/log"
	"github.com/k3s-io/swiftclient/pkg/metrics"
)

// Delete removes an object. With a When directive the object is not removed
// now: the directive is posted as X-Delete-At or X-Delete-After metadata and
// the service expires the object later.
func (c *Container) Delete(ctx context.Context, opts DeleteOptions) (err error) {
	if opts.Name == "" {
		return ErrNameRequired
	}

	var extra map[string]string
	method, operation := http.MethodDelete, "delete"
	if opts.When != nil {
		k, v, herr := opts.When.header()
		if herr != nil {
			return herr
		}
		extra = map[string]string{k: v}
		method, operation = http.MethodPost, "schedule_delete"
	}

	start := time.Now()
	defer func() {
		dur := time.Since(start)
		metrics.ObserveOperation(start, operation, opts.Name, err)
		log.Debugf(ctx, "%s %s/%s, when=%v => err=%v, duration=%s", method, c.name, opts.Name, opts.When, err, dur)
	}()

	lease, err := c.authenticate(ctx)
	if err != nil {
		return err
	}

	uri, err := c.objectURL(lease.URL, opts.Name, opts.Query)
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, method, uri, c.entity.Headers(nil, extra, lease.Token), nil)
	if err != nil {
		return err
	}

	resp, err := c.do(req, opts.Name, is2xx)
	if err != nil {
		return err
	}
	closeBody(resp)

	return nil
}
