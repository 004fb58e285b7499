package auth

import (
	"context"
	"sort"
	"sync"
)

// Provider builds an Authenticator from the given config.
type Provider func(ctx context.Context, cfg Config) (Authenticator, error)

const DefaultProvider = "static"

var (
	providerLock     sync.RWMutex
	providerRegistry = map[string]Provider{}
)

// Register registers a provider for the given name
func Register(name string, provider Provider) {
	providerLock.Lock()
	defer providerLock.Unlock()
	providerRegistry[name] = provider
}

// Get returns the provider for the given name
// The second return value is true if the name is registered, false otherwise
func Get(name string) (Provider, bool) {
	providerLock.RLock()
	defer providerLock.RUnlock()
	provider, ok := providerRegistry[name]
	return provider, ok
}

// Names returns the registered provider names, sorted.
func Names() []string {
	providerLock.RLock()
	defer providerLock.RUnlock()
	names := make([]string, 0, len(providerRegistry))
	for name := range providerRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
