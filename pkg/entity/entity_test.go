package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURLSuffix(t *testing.T) {
	e := New(KindObject, "backups")

	assert.Equal(t, "/Object/backups", e.URLSuffix())
	assert.Equal(t, KindObject, e.Kind())
	assert.Equal(t, "backups", e.Container())
}

func TestHeaders(t *testing.T) {
	e := New(KindObject, "backups")

	h := e.Headers(
		map[string]string{"Owner": "ops", "x-object-meta-Color": "blue", "": "skipped"},
		map[string]string{"X-Delete-After": "60", "Content-Type": "text/plain"},
		"tk",
	)

	assert.Equal(t, "ops", h.Get("X-Object-Meta-Owner"))
	assert.Equal(t, "blue", h.Get("X-Object-Meta-Color"))
	assert.Equal(t, "60", h.Get("X-Delete-After"))
	assert.Equal(t, "text/plain", h.Get("Content-Type"))
	assert.Equal(t, "tk", h.Get(AuthTokenHeader))
	assert.Len(t, h, 5)
}

func TestHeadersTokenCannotBeShadowed(t *testing.T) {
	e := New(KindObject, "backups")

	h := e.Headers(nil, map[string]string{"x-auth-token": "forged"}, "real")

	assert.Equal(t, []string{"real"}, h.Values(AuthTokenHeader))
}

func TestHeadersNilMaps(t *testing.T) {
	h := New(KindObject, "c").Headers(nil, nil, "tk")

	assert.Len(t, h, 1)
	assert.Equal(t, "tk", h.Get(AuthTokenHeader))
}
