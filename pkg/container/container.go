package container

import (
	"context"
	"net/http"
	"time"

	"github.com/k3s-io/swiftclient/pkg/auth"
	"github.com/k3s-io/swiftclient/pkg/entity"
)

// Entity is the part of an entity descriptor the container client needs.
type Entity interface {
	URLSuffix() string
	Headers(meta, extra map[string]string, token string) http.Header
}

// Container creates, deletes and downloads objects in one container. It holds
// no per-call state, so a single value may serve concurrent callers.
type Container struct {
	name   string
	entity Entity
	auth   auth.Authenticator
	client HTTPClient
}

type Option func(*Container)

func WithHTTPClient(client HTTPClient) Option {
	return func(c *Container) {
		c.client = client
	}
}

// WithTimeout sets an overall per-request timeout, including the transfer.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Container) {
		c.client = NewHTTPClient(timeout)
	}
}

// WithEntityKind overrides the path segment in front of the container name.
func WithEntityKind(kind string) Option {
	return func(c *Container) {
		c.entity = entity.New(kind, c.name)
	}
}

func New(name string, authenticator auth.Authenticator, opts ...Option) *Container {
	c := &Container{
		name:   name,
		entity: entity.New(entity.KindObject, name),
		auth:   authenticator,
		client: NewHTTPClient(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Container) Name() string {
	return c.name
}

func (c *Container) authenticate(ctx context.Context) (auth.Lease, error) {
	lease, err := c.auth.Authenticate(ctx)
	if err != nil {
		return auth.Lease{}, err
	}
	if !lease.Valid() {
		return auth.Lease{}, ErrInvalidLease
	}
	return lease, nil
}
