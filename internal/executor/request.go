package executor

import (
	"net/http"
	"slices"
	"strings"
)

// Header is a single request header.
type Header struct {
	// Name is the header name.
	Name string
	// Value is the header value.
	Value string
}

// Request describes one HTTP request. Use RequestBuilder to construct it;
// a built request is not modified by the executor.
type Request struct {
	// URL is the absolute target URL.
	URL string
	// Method is sent verbatim, it is never inferred from the presence of a body.
	Method string
	// Headers are all sent, duplicates included. Values of a repeated name keep their order;
	// distinct names are written sorted by name, as net/http writes every header block.
	Headers []Header
	// Body is the request body. Nil means no body, an empty non-nil slice is a zero-length body.
	Body []byte
}

// RequestBuilder assembles a Request.
type RequestBuilder struct {
	url     string
	method  string
	headers []Header
	body    []byte
}

// NewRequestBuilder creates a builder for a GET request to url.
func NewRequestBuilder(url string) *RequestBuilder {
	return &RequestBuilder{
		url:    url,
		method: http.MethodGet,
	}
}

// WithMethod sets the request method. Surrounding spaces are trimmed; case is kept.
func (b *RequestBuilder) WithMethod(method string) *RequestBuilder {
	if method = strings.TrimSpace(method); method != "" {
		b.method = method
	}

	return b
}

// WithHeader appends a header, keeping earlier headers with the same name.
func (b *RequestBuilder) WithHeader(name, value string) *RequestBuilder {
	b.headers = append(b.headers, Header{Name: name, Value: value})

	return b
}

// WithBody sets the request body.
func (b *RequestBuilder) WithBody(body []byte) *RequestBuilder {
	b.body = body

	return b
}

// Build returns a request that does not share memory with the builder.
func (b *RequestBuilder) Build() *Request {
	var body []byte
	if b.body != nil {
		body = slices.Clone(b.body)
		if body == nil {
			body = []byte{}
		}
	}

	return &Request{
		URL:     b.url,
		Method:  b.method,
		Headers: slices.Clone(b.headers),
		Body:    body,
	}
}
