package keystone

import (
	"context"
	"sync"

	"github.com/k3s-io/swiftclient/pkg/auth"
	"github.com/k3s-io/swiftclient/pkg/log"
	"github.com/ncw/swift/v2"
	"github.com/pkg/errors"
)

func init() {
	auth.Register("swift", New)
}

var ErrAuthURLRequired = errors.New("swift-auth: keystone provider requires an auth url")

// Authenticator obtains leases from a swift auth endpoint (v1 tempauth or
// v2/v3 keystone). Every call re-authenticates; wrap it with auth.Cached to
// reuse tokens.
type Authenticator struct {
	mu         sync.Mutex
	conn       *swift.Connection
	storageURL string
	token      string
}

func New(_ context.Context, cfg auth.Config) (auth.Authenticator, error) {
	if cfg.AuthURL == "" {
		return nil, ErrAuthURLRequired
	}

	// Keep these in the same order as auth.Config for ease of checking
	conn := &swift.Connection{
		AuthUrl:      cfg.AuthURL,
		UserName:     cfg.User,
		ApiKey:       cfg.Key,
		UserId:       cfg.UserID,
		Domain:       cfg.Domain,
		Tenant:       cfg.Tenant,
		TenantId:     cfg.TenantID,
		TenantDomain: cfg.TenantDomain,
		Region:       cfg.Region,
		AuthVersion:  cfg.AuthVersion,
		Internal:     cfg.Internal,
	}
	if cfg.Timeout > 0 {
		conn.ConnectTimeout = cfg.Timeout
		conn.Timeout = cfg.Timeout
	}

	return &Authenticator{
		conn:       conn,
		storageURL: cfg.StorageURL,
		token:      cfg.Token,
	}, nil
}

func (a *Authenticator) Authenticate(ctx context.Context) (lease auth.Lease, err error) {
	defer func() {
		log.Debugf(ctx, "swift-auth: keystone AUTHENTICATE %s => storage-url=%s, expires=%v, err=%v", a.conn.AuthUrl, lease.URL, lease.Expires, err)
	}()

	a.mu.Lock()
	defer a.mu.Unlock()

	a.conn.UnAuthenticate()
	if err = a.conn.Authenticate(ctx); err != nil {
		return auth.Lease{}, errors.Wrap(err, "swift-auth: keystone")
	}

	lease = auth.Lease{
		URL:     a.conn.StorageUrl,
		Token:   a.conn.AuthToken,
		Expires: a.conn.Expires,
	}
	if a.storageURL != "" {
		lease.URL = a.storageURL
	}
	if a.token != "" {
		lease.Token = a.token
	}
	if !lease.Valid() {
		return auth.Lease{}, auth.ErrEmptyLease
	}

	return lease, nil
}
