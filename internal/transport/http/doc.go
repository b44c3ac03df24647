// Package http provides http.RoundTripper decorators wrapped around the transport engine:
// request/response debug logging and User-Agent injection.
package http
