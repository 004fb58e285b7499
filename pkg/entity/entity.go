package entity

import (
	"net/http"
	"strings"
)

const (
	// KindObject is the entity kind used for objects stored in a container.
	KindObject = "Object"

	AuthTokenHeader = "X-Auth-Token"
	MetaPrefix      = "X-Object-Meta-"
)

// Entity describes a kind of resource inside a named container. It is
// immutable once built and safe to share between goroutines.
type Entity struct {
	kind      string
	container string
	suffix    string
}

func New(kind, container string) Entity {
	return Entity{
		kind:      kind,
		container: container,
		suffix:    "/" + kind + "/" + container,
	}
}

func (e Entity) Kind() string {
	return e.kind
}

func (e Entity) Container() string {
	return e.container
}

// URLSuffix returns /{kind}/{container}.
func (e Entity) URLSuffix() string {
	return e.suffix
}

// Headers merges user metadata, extra protocol headers and the auth token
// into a single header set. The token is applied last so neither map can
// replace it.
func (e Entity) Headers(meta, extra map[string]string, token string) http.Header {
	h := make(http.Header, len(meta)+len(extra)+1)

	for k, v := range meta {
		if k == "" {
			continue
		}
		h.Set(metaKey(k), v)
	}

	for k, v := range extra {
		if k == "" {
			continue
		}
		h.Set(k, v)
	}

	h.Set(AuthTokenHeader, token)

	return h
}

func metaKey(k string) string {
	k = strings.ToLower(k)
	if strings.HasPrefix(k, strings.ToLower(MetaPrefix)) {
		return k
	}
	return MetaPrefix + k
}
