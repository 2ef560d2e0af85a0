package github

import (
	"regexp"
	"strings"

	xerrors "github.com/matzehuels/depscope/pkg/errors"
)

// Accepted repository URL shapes. Anything else is unsupported.
var (
	// https://host/OWNER/REPO, optionally with .git, a trailing path, query,
	// or fragment.
	httpsRepoRe = regexp.MustCompile(`^https?://[^/]+/([^/]+)/([^/?#]+?)(?:\.git)?(?:[/?#].*)?$`)

	// git@host:OWNER/REPO.git (the .git suffix is optional in practice).
	sshRepoRe = regexp.MustCompile(`^git@[^:]+:([^/]+)/([^/]+?)(?:\.git)?$`)
)

// ResolveRepoURL extracts the owner and repository name from a repository
// URL. Two shapes are accepted: an HTTPS web URL and an SSH-style remote.
// Any other shape fails with an UNSUPPORTED_REPO_URL error.
func ResolveRepoURL(rawURL string) (owner, repo string, err error) {
	rawURL = strings.TrimSpace(rawURL)

	for _, re := range []*regexp.Regexp{httpsRepoRe, sshRepoRe} {
		if m := re.FindStringSubmatch(rawURL); m != nil {
			return m[1], m[2], nil
		}
	}
	return "", "", xerrors.New(xerrors.ErrCodeUnsupportedRepoURL,
		"unsupported repository URL: %q (expected https://host/owner/repo or git@host:owner/repo.git)", rawURL)
}
