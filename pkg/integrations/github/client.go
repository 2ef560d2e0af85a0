// Package github provides access to the GitHub contents API for fetching
// manifest files at a specific ref.
package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	xerrors "github.com/matzehuels/depscope/pkg/errors"
	"github.com/matzehuels/depscope/pkg/integrations"
)

// userAgent identifies this client to the API; GitHub rejects requests
// without a User-Agent header.
const userAgent = "depscope"

// Client fetches repository file content through the GitHub contents API.
// It handles HTTP requests with caching, automatic retries, and optional
// authentication.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a GitHub contents client with optional authentication.
// Pass an empty string for token to use unauthenticated requests (lower rate
// limits).
func NewClient(token string, cacheTTL time.Duration) (*Client, error) {
	cache, err := integrations.NewCache(cacheTTL)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{
		"Accept":     "application/vnd.github.v3+json",
		"User-Agent": userAgent,
	}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}

	return &Client{
		Client:  integrations.NewClient(cache, headers),
		baseURL: "https://api.github.com",
	}, nil
}

// SetBaseURL overrides the API base URL, for self-hosted API-compatible
// instances.
func (c *Client) SetBaseURL(base string) {
	c.baseURL = strings.TrimSuffix(base, "/")
}

// FetchFile retrieves the content of path in owner/repo at the given ref,
// decoded from the base64 envelope the contents API returns.
//
// Error mapping follows the source contract: a 404 response and a success
// envelope without a content field both yield [integrations.ErrNotFound];
// other non-2xx statuses yield an [xerrors.UpstreamError] with the status;
// transport failures yield [integrations.ErrNetwork].
// If refresh is true, cached data is bypassed.
func (c *Client) FetchFile(ctx context.Context, owner, repo, path, ref string, refresh bool) (string, error) {
	key := fmt.Sprintf("github:%s/%s/%s@%s", owner, repo, path, ref)

	var envelope contentResponse
	err := c.Cached(ctx, key, refresh, &envelope, func() error {
		reqURL := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, owner, repo, path)
		if ref != "" {
			reqURL += "?ref=" + url.QueryEscape(ref)
		}
		return c.GetJSON(ctx, reqURL, &envelope)
	})
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return "", fmt.Errorf("%w: %s in %s/%s@%s", err, path, owner, repo, ref)
		}
		return "", err
	}

	if envelope.Content == "" {
		return "", fmt.Errorf("%w: no content for %s in %s/%s@%s",
			integrations.ErrNotFound, path, owner, repo, ref)
	}

	// The API wraps base64 at 60 columns with embedded newlines.
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(envelope.Content, "\n", ""))
	if err != nil {
		return "", xerrors.Wrap(xerrors.ErrCodeInternal, err, "decode content for %s/%s", owner, repo)
	}
	return string(decoded), nil
}

// contentResponse is the contents API envelope. Only the fields the fetch
// path needs are decoded.
type contentResponse struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}
