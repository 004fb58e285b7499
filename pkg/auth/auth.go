package auth

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrUnknownProvider    = errors.New("swift-auth: unknown provider")
	ErrMissingStaticLease = errors.New("swift-auth: static provider requires a storage url and token")
	ErrEmptyLease         = errors.New("swift-auth: provider returned an empty storage url or token")
)

// Lease is the storage URL and token returned by an Authenticator. Expires is
// zero when the provider does not know when the token runs out.
type Lease struct {
	URL     string
	Token   string
	Expires time.Time
}

func (l Lease) Valid() bool {
	return l.URL != "" && l.Token != ""
}

// Authenticator hands out leases. Implementations must be safe for concurrent
// use; the container client calls Authenticate once per operation.
type Authenticator interface {
	Authenticate(ctx context.Context) (Lease, error)
}

type AuthenticatorFunc func(ctx context.Context) (Lease, error)

func (f AuthenticatorFunc) Authenticate(ctx context.Context) (Lease, error) {
	return f(ctx)
}

// Config carries everything any registered provider may need.
type Config struct {
	AuthURL      string
	User         string
	Key          string
	UserID       string
	Domain       string
	Tenant       string
	TenantID     string
	TenantDomain string
	Region       string
	AuthVersion  int
	Internal     bool
	Timeout      time.Duration

	// StorageURL and Token, when set, override whatever the provider returns.
	StorageURL string
	Token      string
}
