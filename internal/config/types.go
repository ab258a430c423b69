package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ZebulonRouseFrantzich/fridamanager/internal/release"
)

// DefaultWorkers is the number of concurrent downloads when the config does not say.
const DefaultWorkers = 4

// Config is the parsed fridamanager configuration.
type Config struct {
	// UserAgent is sent on every upstream request.
	UserAgent string

	// Workers limits concurrent downloads. Zero means unbounded.
	Workers int

	GitHub GitHub

	Assets Assets

	// VersionCommand is the program and arguments that print the
	// installed frida version, e.g. {"frida", "--version"}.
	VersionCommand []string
}

// GitHub holds the release source settings.
type GitHub struct {
	BaseURL string
	Owner   string
	Repo    string
	Token   string
}

// Assets controls which release assets are fetched.
type Assets struct {
	Prefix    string
	Platforms []string
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		UserAgent: release.DefaultUserAgent,
		Workers:   DefaultWorkers,
		GitHub: GitHub{
			BaseURL: release.DefaultBaseURL,
			Owner:   release.DefaultOwner,
			Repo:    release.DefaultRepo,
		},
		Assets: Assets{
			Prefix: release.ServerAssetPrefix,
		},
		VersionCommand: []string{"frida", "--version"},
	}
}

// Filter returns the asset filter described by the config.
func (c *Config) Filter() release.Filter {
	return release.Filter{
		Prefix:    c.Assets.Prefix,
		Platforms: c.Assets.Platforms,
	}
}

// Validate performs basic validation on a Config.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.UserAgent) == "" {
		return &ValidationError{Field: luaFieldUserAgent, Message: "cannot be empty"}
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return &ValidationError{
			Field:   luaFieldWorkers,
			Message: fmt.Sprintf("must be between 0 and %d (got %d)", MaxWorkers, c.Workers),
		}
	}

	if err := validateBaseURL(c.GitHub.BaseURL); err != nil {
		return &ValidationError{Field: "github.base_url", Message: err.Error()}
	}

	if c.GitHub.Owner == "" || c.GitHub.Repo == "" {
		return &ValidationError{Field: "github.repo", Message: "expected owner/name"}
	}

	if c.Assets.Prefix == "" {
		return &ValidationError{Field: "assets.prefix", Message: "cannot be empty"}
	}

	if len(c.Assets.Platforms) > MaxPlatforms {
		return &ValidationError{
			Field:   "assets.platforms",
			Message: fmt.Sprintf("too many platforms (%d), maximum is %d", len(c.Assets.Platforms), MaxPlatforms),
		}
	}
	for i, p := range c.Assets.Platforms {
		if strings.TrimSpace(p) == "" {
			return &ValidationError{Field: fmt.Sprintf("assets.platforms[%d]", i), Message: "cannot be empty"}
		}
	}

	if len(c.VersionCommand) == 0 || c.VersionCommand[0] == "" {
		return &ValidationError{Field: luaFieldVersionCmd, Message: "expected a program name"}
	}

	return nil
}

// ValidationError represents a config validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "config validation failed for " + e.Field + ": " + e.Message
	}
	return "config validation failed: " + e.Message
}

// splitRepo parses "owner/name".
func splitRepo(s string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(s, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid repo %q (expected owner/name)", s)
	}
	return owner, name, nil
}

// validateBaseURL requires an absolute http(s) URL.
func validateBaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("URL must use https:// or http:// scheme (got: %s)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host: %s", raw)
	}

	return nil
}
