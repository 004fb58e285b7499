package util

import (
	"strings"

	"github.com/pkg/errors"
)

// ParseKeyValues turns a list of key=value strings into a map. Later
// duplicates win. Values may contain '='.
func ParseKeyValues(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	kv := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, errors.Errorf("invalid key=value pair %q", pair)
		}
		kv[k] = v
	}
	return kv, nil
}
