package source

import (
	"context"
	"errors"
	"time"

	xerrors "github.com/matzehuels/depscope/pkg/errors"
	"github.com/matzehuels/depscope/pkg/integrations"
	"github.com/matzehuels/depscope/pkg/integrations/github"
	"github.com/matzehuels/depscope/pkg/manifest"
)

// ManifestPath is the manifest file fetched for every package.
const ManifestPath = "Cargo.toml"

// DefaultCacheTTL is how long fetched manifests stay valid in the HTTP
// response cache. Tagged refs rarely change, so a day is conservative.
const DefaultCacheTTL = 24 * time.Hour

// RemoteSource fetches manifests through the GitHub contents API.
//
// The repository identity is resolved once from the configured URL at
// construction. The root package is fetched from exactly that repository;
// every other package is assumed to live in a sibling repository named after
// the package under the same owner. Packages hosted elsewhere simply 404 and
// degrade to leaves, which the traversal absorbs.
type RemoteSource struct {
	client  *github.Client
	owner   string
	repo    string
	rootPkg string
	refresh bool
}

// RemoteOptions configures a RemoteSource.
type RemoteOptions struct {
	Token      string        // optional API token (higher rate limits)
	CacheTTL   time.Duration // response cache TTL (0 = never expires)
	Refresh    bool          // bypass cached responses
	APIBaseURL string        // override the contents API base (default api.github.com)
}

// NewRemoteSource resolves repoURL and prepares a source for a traversal
// rooted at rootPkg. An URL shape that cannot be resolved fails here with an
// UNSUPPORTED_REPO_URL error, before any traversal starts.
func NewRemoteSource(repoURL, rootPkg string, opts RemoteOptions) (*RemoteSource, error) {
	owner, repo, err := github.ResolveRepoURL(repoURL)
	if err != nil {
		return nil, err
	}

	client, err := github.NewClient(opts.Token, opts.CacheTTL)
	if err != nil {
		return nil, err
	}
	if opts.APIBaseURL != "" {
		client.SetBaseURL(opts.APIBaseURL)
	}

	return &RemoteSource{
		client:  client,
		owner:   owner,
		repo:    repo,
		rootPkg: rootPkg,
		refresh: opts.Refresh,
	}, nil
}

// Fetch retrieves and parses the manifest for pkg at ref.
func (s *RemoteSource) Fetch(ctx context.Context, pkg, ref string) (manifest.Record, error) {
	repo := s.repo
	if pkg != s.rootPkg {
		repo = pkg
	}

	raw, err := s.client.FetchFile(ctx, s.owner, repo, ManifestPath, ref, s.refresh)
	if err != nil {
		return nil, classifyFetchError(err, pkg, ref)
	}
	return manifest.Parse(raw), nil
}

// classifyFetchError translates transport-layer sentinels into the coded
// errors the traversal and the CLI report on.
func classifyFetchError(err error, pkg, ref string) error {
	switch {
	case errors.Is(err, integrations.ErrNotFound):
		return xerrors.Wrap(xerrors.ErrCodeNotFound, err, "no manifest for %s@%s", pkg, ref)
	case errors.Is(err, integrations.ErrNetwork):
		return xerrors.Wrap(xerrors.ErrCodeNetwork, err, "fetch manifest for %s@%s", pkg, ref)
	case xerrors.UpstreamStatus(err) != 0:
		return xerrors.Wrap(xerrors.ErrCodeUpstream, err, "fetch manifest for %s@%s", pkg, ref)
	}
	return err
}
