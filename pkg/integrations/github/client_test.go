package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	xerrors "github.com/matzehuels/depscope/pkg/errors"
	"github.com/matzehuels/depscope/pkg/httputil"
	"github.com/matzehuels/depscope/pkg/integrations"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	cache, err := httputil.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	headers := map[string]string{
		"Accept":     "application/vnd.github.v3+json",
		"User-Agent": userAgent,
	}
	return &Client{
		Client:  integrations.NewClient(cache, headers),
		baseURL: baseURL,
	}
}

// wrap encodes s the way the contents API does: base64 with embedded newlines.
func wrap(s string) string {
	enc := base64.StdEncoding.EncodeToString([]byte(s))
	return enc[:len(enc)/2] + "\n" + enc[len(enc)/2:]
}

func TestFetchFile(t *testing.T) {
	const manifestText = "[dependencies]\nserde = \"1.0\"\n"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != userAgent {
			t.Errorf("User-Agent = %q, want %q", r.Header.Get("User-Agent"), userAgent)
		}
		switch r.URL.Path {
		case "/repos/serde-rs/serde/contents/Cargo.toml":
			if got := r.URL.Query().Get("ref"); got != "v1.0.219" {
				t.Errorf("ref = %q, want v1.0.219", got)
			}
			json.NewEncoder(w).Encode(contentResponse{
				Name:     "Cargo.toml",
				Path:     "Cargo.toml",
				Content:  wrap(manifestText),
				Encoding: "base64",
			})
		case "/repos/serde-rs/empty/contents/Cargo.toml":
			json.NewEncoder(w).Encode(contentResponse{Name: "Cargo.toml"})
		case "/repos/serde-rs/broken/contents/Cargo.toml":
			w.WriteHeader(http.StatusForbidden)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	ctx := context.Background()

	t.Run("success decodes base64 envelope", func(t *testing.T) {
		got, err := c.FetchFile(ctx, "serde-rs", "serde", "Cargo.toml", "v1.0.219", true)
		if err != nil {
			t.Fatalf("FetchFile: %v", err)
		}
		if got != manifestText {
			t.Errorf("content = %q, want %q", got, manifestText)
		}
	})

	t.Run("404 maps to not found", func(t *testing.T) {
		_, err := c.FetchFile(ctx, "serde-rs", "missing", "Cargo.toml", "main", true)
		if !errors.Is(err, integrations.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("missing content field maps to not found", func(t *testing.T) {
		_, err := c.FetchFile(ctx, "serde-rs", "empty", "Cargo.toml", "main", true)
		if !errors.Is(err, integrations.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("other status maps to upstream error with code", func(t *testing.T) {
		_, err := c.FetchFile(ctx, "serde-rs", "broken", "Cargo.toml", "main", true)
		if got := xerrors.UpstreamStatus(err); got != http.StatusForbidden {
			t.Errorf("UpstreamStatus = %d, want %d (err = %v)", got, http.StatusForbidden, err)
		}
	})
}

func TestFetchFileUsesCache(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(contentResponse{Content: wrap("[dependencies]\n")})
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	ctx := context.Background()

	for range 2 {
		if _, err := c.FetchFile(ctx, "o", "r", "Cargo.toml", "main", false); err != nil {
			t.Fatalf("FetchFile: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("server calls = %d, want 1 (second fetch should hit cache)", calls)
	}
}

func TestResolveRepoURL(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{"https plain", "https://github.com/serde-rs/serde", "serde-rs", "serde", false},
		{"https with .git", "https://github.com/serde-rs/serde.git", "serde-rs", "serde", false},
		{"https with trailing path", "https://github.com/serde-rs/serde/tree/master", "serde-rs", "serde", false},
		{"https with fragment", "https://github.com/serde-rs/serde#readme", "serde-rs", "serde", false},
		{"http", "http://github.com/foo/bar", "foo", "bar", false},
		{"ssh", "git@github.com:serde-rs/serde.git", "serde-rs", "serde", false},
		{"ssh without .git", "git@github.com:serde-rs/serde", "serde-rs", "serde", false},
		{"other host", "https://gitlab.example.com/group/project", "group", "project", false},

		{"bare owner/repo", "serde-rs/serde", "", "", true},
		{"scheme only", "https://", "", "", true},
		{"missing repo", "https://github.com/serde-rs", "", "", true},
		{"ftp", "ftp://github.com/a/b", "", "", true},
		{"empty", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := ResolveRepoURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveRepoURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !xerrors.Is(err, xerrors.ErrCodeUnsupportedRepoURL) {
					t.Errorf("code = %v, want UNSUPPORTED_REPO_URL", xerrors.GetCode(err))
				}
				return
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("got %s/%s, want %s/%s", owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}
