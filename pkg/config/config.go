// Package config loads and validates the analysis configuration file.
//
// A configuration names one root package, where its manifests come from, the
// ref to fetch at, the image file to produce, and an optional expansion
// filter. Both YAML and TOML files are accepted, selected by extension.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	xerrors "github.com/matzehuels/depscope/pkg/errors"
)

// Traversal modes.
const (
	// ModeRemote fetches manifests from the GitHub contents API.
	ModeRemote = "remote"
	// ModeLocal reads a fixture adjacency file; RepoURL is the fixture path.
	ModeLocal = "local"
	// ModeTest behaves like ModeLocal. Kept as a distinct value so configs
	// written for test harnesses keep working.
	ModeTest = "test"
)

// requiredKeys must all be present in a configuration file, even when the
// value is empty (filter_substring may legitimately be "").
var requiredKeys = []string{
	"package_name",
	"repo_url",
	"mode",
	"version",
	"output_image",
	"filter_substring",
}

// Config is the validated analysis configuration.
type Config struct {
	PackageName     string `yaml:"package_name" toml:"package_name"`
	RepoURL         string `yaml:"repo_url" toml:"repo_url"`
	Mode            string `yaml:"mode" toml:"mode"`
	Version         string `yaml:"version" toml:"version"`
	OutputImage     string `yaml:"output_image" toml:"output_image"`
	FilterSubstring string `yaml:"filter_substring" toml:"filter_substring"`
}

// UsesFixture reports whether manifests come from a local fixture file
// rather than the remote API.
func (c *Config) UsesFixture() bool {
	return c.Mode == ModeLocal || c.Mode == ModeTest
}

// Load reads, parses, and validates the configuration at path.
// Files ending in .toml are parsed as TOML; everything else as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, xerrors.New(xerrors.ErrCodeInvalidConfig, "config file not found: %s", path)
		}
		return nil, xerrors.Wrap(xerrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes and validates configuration bytes. ext selects the format
// (".toml" for TOML, anything else for YAML).
func Parse(data []byte, ext string) (*Config, error) {
	// Decode twice: once into a map to distinguish a missing key from an
	// empty value, once into the typed struct.
	raw := map[string]any{}
	var cfg Config

	if strings.EqualFold(ext, ".toml") {
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, xerrors.Wrap(xerrors.ErrCodeInvalidConfig, err, "malformed TOML config")
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, xerrors.Wrap(xerrors.ErrCodeInvalidConfig, err, "malformed TOML config")
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, xerrors.Wrap(xerrors.ErrCodeInvalidConfig, err, "malformed YAML config")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, xerrors.Wrap(xerrors.ErrCodeInvalidConfig, err, "malformed YAML config")
		}
	}

	if err := checkRequiredKeys(raw); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func checkRequiredKeys(raw map[string]any) error {
	var missing []string
	for _, key := range requiredKeys {
		if _, ok := raw[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return xerrors.New(xerrors.ErrCodeInvalidConfig,
			"missing required config keys: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Validate checks every field. In remote mode RepoURL must look like a
// repository URL; in fixture modes it is a filesystem path and only needs to
// be non-empty.
func (c *Config) Validate() error {
	if err := xerrors.ValidatePackageName(c.PackageName); err != nil {
		return err
	}

	switch c.Mode {
	case ModeRemote:
		if err := xerrors.ValidateRepoURL(c.RepoURL); err != nil {
			return err
		}
	case ModeLocal, ModeTest:
		if strings.TrimSpace(c.RepoURL) == "" {
			return xerrors.New(xerrors.ErrCodeInvalidConfig, "repo_url (fixture path) cannot be empty")
		}
	default:
		return xerrors.New(xerrors.ErrCodeInvalidMode,
			"mode must be one of %q, %q, %q; got %q", ModeLocal, ModeRemote, ModeTest, c.Mode)
	}

	if err := xerrors.ValidateVersion(c.Version); err != nil {
		return err
	}
	if err := xerrors.ValidateOutputImage(c.OutputImage); err != nil {
		return err
	}
	return nil
}

// String renders the config for verbose logging, one key per line.
func (c *Config) String() string {
	return fmt.Sprintf("package=%s mode=%s version=%s output=%s filter=%q",
		c.PackageName, c.Mode, c.Version, c.OutputImage, c.FilterSubstring)
}
