package keystone

import (
	"context"
	"strings"
	"testing"

	"github.com/k3s-io/swiftclient/pkg/auth"
	"github.com/ncw/swift/v2/swifttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *swifttest.SwiftServer {
	t.Helper()
	srv, err := swifttest.NewSwiftServer("localhost")
	require.NoError(t, err)
	t.Cleanup(srv.Close)
	return srv
}

func TestAuthenticate(t *testing.T) {
	srv := newServer(t)

	a, err := auth.New(context.Background(), "swift", auth.Config{
		AuthURL:     srv.AuthURL,
		User:        swifttest.TEST_ACCOUNT,
		Key:         swifttest.TEST_ACCOUNT,
		AuthVersion: 1,
	})
	require.NoError(t, err)

	first, err := a.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/AUTH_"+swifttest.TEST_ACCOUNT, first.URL)
	assert.True(t, strings.HasPrefix(first.Token, "AUTH_tk"))

	// every call gets a fresh token
	second, err := a.Authenticate(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)
}

func TestAuthenticateOverrides(t *testing.T) {
	srv := newServer(t)

	a, err := New(context.Background(), auth.Config{
		AuthURL:     srv.AuthURL,
		User:        swifttest.TEST_ACCOUNT,
		Key:         swifttest.TEST_ACCOUNT,
		AuthVersion: 1,
		StorageURL:  "http://proxy.example/v1/AUTH_other",
	})
	require.NoError(t, err)

	lease, err := a.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "http://proxy.example/v1/AUTH_other", lease.URL)
	assert.NotEmpty(t, lease.Token)
}

func TestAuthenticateBadKey(t *testing.T) {
	srv := newServer(t)

	a, err := New(context.Background(), auth.Config{
		AuthURL:     srv.AuthURL,
		User:        swifttest.TEST_ACCOUNT,
		Key:         "wrong",
		AuthVersion: 1,
	})
	require.NoError(t, err)

	_, err = a.Authenticate(context.Background())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "swift-auth: keystone: "), err.Error())
}

func TestNewRequiresAuthURL(t *testing.T) {
	_, err := New(context.Background(), auth.Config{User: "u", Key: "k"})
	assert.ErrorIs(t, err, ErrAuthURLRequired)
}
