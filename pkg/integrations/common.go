// Package integrations provides shared HTTP functionality for the remote
// manifest source: a thin client with status mapping, retries, and response
// caching.
package integrations

import (
	"errors"
	"net/http"
	"time"

	"github.com/matzehuels/depscope/pkg/httputil"
)

// Per-request timeout for manifest API calls. The traversal awaits each fetch
// before the next dequeue, so this bounds one BFS iteration.
const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the requested resource doesn't exist
	// upstream (HTTP 404, or a success envelope without content).
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for transport failures (timeouts, connection
	// errors, DNS failures).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with the standard per-request timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// NewCache creates a file-based cache with the given TTL in the default cache
// directory. See [httputil.NewCache] for cache location and behavior.
func NewCache(ttl time.Duration) (*httputil.Cache, error) {
	return httputil.NewCache("", ttl)
}
