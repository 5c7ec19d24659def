package utils

import (
	"github.com/go-resty/resty/v2"
)

// UserAgent is sent with every request made through [HTTPClient].
const UserAgent = "go-blog-sync"

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
// Example usage:
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().Get("https://example.com/v1/health")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient instance with the
// application User-Agent and no retries. Retrying is left to the sync
// engines, which decide between the remote store and the local cache.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient() *HTTPClient {
	client := resty.New().
		SetHeader("User-Agent", UserAgent).
		SetRetryCount(0)

	return &HTTPClient{Client: client}
}
