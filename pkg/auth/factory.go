package auth

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// New resolves the named provider and builds an Authenticator with it. An
// empty name selects the static provider.
func New(ctx context.Context, providerName string, cfg Config) (Authenticator, error) {
	if providerName == "" {
		providerName = DefaultProvider
	}

	provider, ok := Get(providerName)
	if !ok {
		return nil, errors.Wrap(ErrUnknownProvider, providerName)
	}

	logrus.Debugf("swift-auth: using provider %s, auth-url=%s", providerName, cfg.AuthURL)

	return provider(ctx, cfg)
}
