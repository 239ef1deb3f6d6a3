// Package config handles the XDG configuration directory, the API location and view settings.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const (
	// AppName is the application directory name.
	AppName = "tasker"

	// ViewFile stores the filters and page between invocations.
	ViewFile = "view.json"

	// DefaultAPIURL is the base URL of the task API when nothing else is configured.
	DefaultAPIURL = "http://localhost:5080/api"

	// EnvAPIURL overrides the API base URL.
	EnvAPIURL = "TASKER_API_URL"

	// DefaultPageSize is the fixed number of tasks per page.
	DefaultPageSize = 5
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the base URL of the task API; "/tasks" is appended to it.
	APIURL string

	// PageSize is the number of tasks shown per page.
	PageSize int

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config.
// If configDir is empty, uses XDG_CONFIG_HOME/tasker or $HOME/.config/tasker.
// If apiURL is empty, uses $TASKER_API_URL or DefaultAPIURL.
func New(configDir, apiURL string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	if apiURL == "" {
		apiURL = os.Getenv(EnvAPIURL)
	}
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	apiURL, err := normalizeAPIURL(apiURL)
	if err != nil {
		return nil, err
	}

	return &Config{
		Dir:      dir,
		APIURL:   apiURL,
		PageSize: DefaultPageSize,
	}, nil
}

// normalizeAPIURL requires an absolute http(s) URL and drops a trailing slash.
func normalizeAPIURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid api url: %s", raw)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("invalid api url: %s", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ViewPath returns the path to the saved view file.
func (c *Config) ViewPath() string {
	return filepath.Join(c.Dir, ViewFile)
}
