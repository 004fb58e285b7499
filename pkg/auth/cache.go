package auth

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

const (
	leaseKey = "lease"

	// expirySkew is subtracted from a lease's expiry so a token is never
	// handed out just before it runs out.
	expirySkew = 60 * time.Second
)

// CachedAuthenticator reuses a lease from its parent until the ttl or the
// lease's own expiry passes, whichever comes first.
type CachedAuthenticator struct {
	parent Authenticator
	ttl    time.Duration
	mu     sync.Mutex
	leases *cache.Cache
}

func Cached(parent Authenticator, ttl time.Duration) *CachedAuthenticator {
	return &CachedAuthenticator{
		parent: parent,
		ttl:    ttl,
		leases: cache.New(ttl, 2*ttl),
	}
}

func (c *CachedAuthenticator) Authenticate(ctx context.Context) (Lease, error) {
	if lease, ok := c.cached(); ok {
		return lease, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// another caller may have refreshed while we waited
	if lease, ok := c.cached(); ok {
		return lease, nil
	}

	lease, err := c.parent.Authenticate(ctx)
	if err != nil {
		return Lease{}, err
	}

	ttl := c.ttl
	if !lease.Expires.IsZero() {
		if untilExpiry := time.Until(lease.Expires) - expirySkew; untilExpiry < ttl {
			ttl = untilExpiry
		}
	}
	if ttl > 0 {
		c.leases.Set(leaseKey, lease, ttl)
	}
	logrus.Tracef("swift-auth: cached lease for %s, ttl=%s", lease.URL, ttl)

	return lease, nil
}

// Invalidate drops the cached lease so the next call re-authenticates.
func (c *CachedAuthenticator) Invalidate() {
	c.leases.Delete(leaseKey)
}

func (c *CachedAuthenticator) cached() (Lease, bool) {
	v, ok := c.leases.Get(leaseKey)
	if !ok {
		return Lease{}, false
	}
	lease, ok := v.(Lease)
	return lease, ok
}
