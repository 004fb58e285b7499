package auth

import "context"

func init() {
	Register("static", func(_ context.Context, cfg Config) (Authenticator, error) {
		return Static(cfg.StorageURL, cfg.Token)
	})
}

type staticAuth struct {
	lease Lease
}

// Static returns an Authenticator that always hands out the same lease.
func Static(storageURL, token string) (Authenticator, error) {
	lease := Lease{URL: storageURL, Token: token}
	if !lease.Valid() {
		return nil, ErrMissingStaticLease
	}
	return &staticAuth{lease: lease}, nil
}

func (s *staticAuth) Authenticate(ctx context.Context) (Lease, error) {
	if err := ctx.Err(); err != nil {
		return Lease{}, err
	}
	return s.lease, nil
}
