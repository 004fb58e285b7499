package container

import (
	"io"
	"net/url"
)

// Query holds URL query parameters. Keys are encoded in sorted order, so
// {prefix: a, limit: 5} always becomes ?limit=5&prefix=a.
type Query map[string]string

func (q Query) Encode() string {
	if len(q) == 0 {
		return ""
	}
	v := make(url.Values, len(q))
	for key, value := range q {
		v.Set(key, value)
	}
	return v.Encode()
}

// CreateOptions describes an upload. Exactly one of Stream and Content must
// be set.
type CreateOptions struct {
	// Name of the object inside the container. Required.
	Name string
	// Stream is read incrementally and sent as the object body.
	Stream io.Reader
	// Content is JSON encoded and sent as the body instead of Stream.
	Content any
	// Meta is stored as X-Object-Meta-* headers.
	Meta map[string]string
	// Extra headers are sent verbatim.
	Extra map[string]string
	Query Query
	// ContentType defaults to whatever the service guesses. It only applies
	// to Stream: a Content upload is always sent as application/json and
	// this field is ignored.
	ContentType string
	// ContentLength, when known, avoids chunked transfer encoding.
	ContentLength *int64
}

type CreateResult struct {
	ETag string
}

// DeleteOptions describes a deletion. A nil When deletes immediately.
type DeleteOptions struct {
	Name  string
	When  DeleteDirective
	Query Query
}

// GetOptions describes a download. The object body is written to Sink.
type GetOptions struct {
	Name  string
	Sink  io.Writer
	Query Query
}
