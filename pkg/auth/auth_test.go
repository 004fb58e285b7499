package auth

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingAuth struct {
	calls atomic.Int32
	lease Lease
	fails int32
}

func (c *countingAuth) Authenticate(ctx context.Context) (Lease, error) {
	n := c.calls.Add(1)
	if n <= c.fails {
		return Lease{}, errors.New("auth endpoint unavailable")
	}
	return c.lease, nil
}

func TestNewDefaultsToStatic(t *testing.T) {
	a, err := New(context.Background(), "", Config{StorageURL: "http://swift/v1/AUTH_test", Token: "tk"})
	require.NoError(t, err)

	lease, err := a.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Lease{URL: "http://swift/v1/AUTH_test", Token: "tk"}, lease)
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), "kerberos", Config{})
	assert.ErrorIs(t, err, ErrUnknownProvider)
	assert.Equal(t, ErrUnknownProvider, errors.Cause(err))
	assert.EqualError(t, err, "kerberos: swift-auth: unknown provider")
}

func TestRegister(t *testing.T) {
	Register("test-provider", func(_ context.Context, cfg Config) (Authenticator, error) {
		return AuthenticatorFunc(func(context.Context) (Lease, error) {
			return Lease{URL: cfg.AuthURL, Token: cfg.User}, nil
		}), nil
	})

	_, ok := Get("test-provider")
	assert.True(t, ok)
	assert.Contains(t, Names(), "test-provider")

	a, err := New(context.Background(), "test-provider", Config{AuthURL: "http://auth", User: "bob"})
	require.NoError(t, err)
	lease, err := a.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bob", lease.Token)
}

func TestStaticRequiresLease(t *testing.T) {
	_, err := Static("", "tk")
	assert.ErrorIs(t, err, ErrMissingStaticLease)

	_, err = Static("http://swift", "")
	assert.ErrorIs(t, err, ErrMissingStaticLease)
}

func TestStaticCancelled(t *testing.T) {
	a, err := Static("http://swift", "tk")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = a.Authenticate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCached(t *testing.T) {
	parent := &countingAuth{lease: Lease{URL: "http://swift", Token: "tk"}}
	a := Cached(parent, time.Minute)

	for i := 0; i < 5; i++ {
		lease, err := a.Authenticate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "tk", lease.Token)
	}
	assert.EqualValues(t, 1, parent.calls.Load())

	a.Invalidate()
	_, err := a.Authenticate(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, parent.calls.Load())
}

func TestCachedHonoursExpiry(t *testing.T) {
	// expires inside the skew window, so it must never be cached
	parent := &countingAuth{lease: Lease{URL: "http://swift", Token: "tk", Expires: time.Now().Add(30 * time.Second)}}
	a := Cached(parent, time.Hour)

	for i := 0; i < 3; i++ {
		_, err := a.Authenticate(context.Background())
		require.NoError(t, err)
	}
	assert.EqualValues(t, 3, parent.calls.Load())
}

func TestCachedDoesNotCacheErrors(t *testing.T) {
	parent := &countingAuth{lease: Lease{URL: "http://swift", Token: "tk"}, fails: 1}
	a := Cached(parent, time.Minute)

	_, err := a.Authenticate(context.Background())
	assert.Error(t, err)

	lease, err := a.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tk", lease.Token)
}

func TestRetrying(t *testing.T) {
	parent := &countingAuth{lease: Lease{URL: "http://swift", Token: "tk"}, fails: 2}
	a := Retrying(parent, 5, time.Millisecond)

	lease, err := a.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tk", lease.Token)
	assert.EqualValues(t, 3, parent.calls.Load())
}

func TestRetryingGivesUp(t *testing.T) {
	parent := &countingAuth{fails: 1000}
	a := Retrying(parent, 3, time.Millisecond)

	_, err := a.Authenticate(context.Background())
	assert.Error(t, err)
	assert.EqualValues(t, 3, parent.calls.Load())
}

func TestRetryingCancelled(t *testing.T) {
	parent := &countingAuth{fails: 1000}
	a := Retrying(parent, 3, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := a.Authenticate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.EqualValues(t, 0, parent.calls.Load())
}

func TestRetryingCancelledDuringBackoff(t *testing.T) {
	parent := &countingAuth{fails: 1000}
	a := Retrying(parent, 3, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	time.AfterFunc(20*time.Millisecond, cancel)

	start := time.Now()
	_, err := a.Authenticate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.EqualValues(t, 1, parent.calls.Load())
}

func TestRetryingSingleAttemptIsParent(t *testing.T) {
	parent := &countingAuth{}
	assert.Same(t, Authenticator(parent), Retrying(parent, 1, time.Second))
}
