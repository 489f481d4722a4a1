// Package utils holds small helpers shared by the transport layer and the
// test backend: the HTTP client, JSON response writing and id generation.
package utils

import (
	"net/http/cookiejar"
	"time"

	"github.com/go-resty/resty/v2"
)

// TraceIDHeader carries a per-request identifier so that client log entries
// can be matched with backend logs.
const TraceIDHeader = "X-Trace-ID"

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
// Every client owns a cookie jar: the backend authenticates with an ambient
// session cookie, so whatever Set-Cookie the login answer carries is sent
// back on all later requests of the same client.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an HTTPClient with its own cookie jar, the given
// base URL and request timeout. A zero timeout leaves resty's default.
//
// Example usage:
//
//	client := utils.NewHTTPClient("http://localhost:5000", 15*time.Second)
//	resp, err := client.R().Get("/api/auth/status")
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	jar, _ := cookiejar.New(nil) // never fails with nil options
	ids := NewUUIDGenerator()

	c := resty.New().
		SetCookieJar(jar).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			if r.Header.Get(TraceIDHeader) == "" {
				r.SetHeader(TraceIDHeader, ids.Generate())
			}
			return nil
		})

	if timeout > 0 {
		c.SetTimeout(timeout)
	}

	return &HTTPClient{Client: c}
}
