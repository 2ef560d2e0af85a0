package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	xerrors "github.com/matzehuels/depscope/pkg/errors"
)

const validYAML = `package_name: serde
repo_url: https://github.com/serde-rs/serde
mode: remote
version: v1.0.0
output_image: graph.png
filter_substring: ""
`

const validTOML = `package_name = "serde"
repo_url = "https://github.com/serde-rs/serde"
mode = "remote"
version = "v1.0.0"
output_image = "graph.png"
filter_substring = ""
`

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(validYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PackageName != "serde" || cfg.Mode != ModeRemote || cfg.Version != "v1.0.0" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.UsesFixture() {
		t.Error("remote config must not report fixture mode")
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(validTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PackageName != "serde" || cfg.OutputImage != "graph.png" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !xerrors.Is(err, xerrors.ErrCodeInvalidConfig) {
		t.Errorf("code = %v, want INVALID_CONFIG", xerrors.GetCode(err))
	}
}

func TestParseMissingKeys(t *testing.T) {
	data := []byte("package_name: serde\nmode: remote\n")

	_, err := Parse(data, ".yaml")
	if !xerrors.Is(err, xerrors.ErrCodeInvalidConfig) {
		t.Fatalf("code = %v, want INVALID_CONFIG", xerrors.GetCode(err))
	}
	msg := err.Error()
	for _, key := range []string{"repo_url", "version", "output_image", "filter_substring"} {
		if !strings.Contains(msg, key) {
			t.Errorf("error %q does not name missing key %s", msg, key)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse([]byte(":[not yaml"), ".yaml"); !xerrors.Is(err, xerrors.ErrCodeInvalidConfig) {
		t.Errorf("yaml: code = %v, want INVALID_CONFIG", xerrors.GetCode(err))
	}
	if _, err := Parse([]byte("= broken"), ".toml"); !xerrors.Is(err, xerrors.ErrCodeInvalidConfig) {
		t.Errorf("toml: code = %v, want INVALID_CONFIG", xerrors.GetCode(err))
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		PackageName:     "serde",
		RepoURL:         "https://github.com/serde-rs/serde",
		Mode:            ModeRemote,
		Version:         "v1.0.0",
		OutputImage:     "graph.png",
		FilterSubstring: "",
	}

	tests := []struct {
		name     string
		mutate   func(*Config)
		wantCode xerrors.Code
	}{
		{"valid remote", func(*Config) {}, ""},
		{"valid local", func(c *Config) { c.Mode = ModeLocal; c.RepoURL = "fixture.txt" }, ""},
		{"valid test mode", func(c *Config) { c.Mode = ModeTest; c.RepoURL = "fixture.txt" }, ""},
		{"empty package", func(c *Config) { c.PackageName = "  " }, xerrors.ErrCodeInvalidPackage},
		{"bad mode", func(c *Config) { c.Mode = "offline" }, xerrors.ErrCodeInvalidMode},
		{"bad repo url", func(c *Config) { c.RepoURL = "ftp://x/y/z" }, xerrors.ErrCodeUnsupportedRepoURL},
		{"empty fixture path", func(c *Config) { c.Mode = ModeLocal; c.RepoURL = "" }, xerrors.ErrCodeInvalidConfig},
		{"empty version", func(c *Config) { c.Version = "" }, xerrors.ErrCodeInvalidInput},
		{"non-png output", func(c *Config) { c.OutputImage = "graph.svg" }, xerrors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !xerrors.Is(err, tt.wantCode) {
				t.Errorf("code = %v, want %v", xerrors.GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestEmptyFilterSubstringAllowed(t *testing.T) {
	cfg, err := Parse([]byte(validYAML), ".yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.FilterSubstring != "" {
		t.Errorf("FilterSubstring = %q, want empty", cfg.FilterSubstring)
	}
}
