package util

import (
	"net/url"

	"github.com/pkg/errors"
)

// ParseURL parses an absolute http(s) URL such as a storage or auth endpoint.
func ParseURL(urlStr string) (*url.URL, error) {
	u, err := url.Parse(urlStr)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing URL. Ensure that any embedded values such as username & password have been URL encoded")
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("unsupported URL scheme %q in %q, expected http or https", u.Scheme, urlStr)
	}
	if u.Host == "" {
		return nil, errors.Errorf("missing host in URL %q", urlStr)
	}

	return u, nil
}
