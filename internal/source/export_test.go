package source

import (
	"net/http"

	"resty.dev/v3"
)

// SetClient swaps the HTTP client on a URL source for tests.
func SetClient(s Source, client *resty.Client) {
	s.(*urlSource).client = client
}

// RoundTripFunc adapts a function to http.RoundTripper for test mocking.
type RoundTripFunc func(*http.Request) *http.Response

// RoundTrip implements http.RoundTripper.
func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

// NewMockRestyClient creates a resty client with a custom round-trip handler.
func NewMockRestyClient(handler RoundTripFunc) *resty.Client {
	client := resty.New()
	client.SetTransport(handler)

	return client
}
