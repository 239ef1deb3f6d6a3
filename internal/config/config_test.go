package config_test

import (
	"path/filepath"
	"testing"

	"tasker/internal/config"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv(config.EnvAPIURL, "")

	cfg, err := config.New("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != filepath.Join("/tmp/xdg", "tasker") {
		t.Errorf("expected XDG config dir, got %q", cfg.Dir)
	}
	if cfg.APIURL != config.DefaultAPIURL {
		t.Errorf("expected default api url, got %q", cfg.APIURL)
	}
	if cfg.PageSize != config.DefaultPageSize {
		t.Errorf("expected page size %d, got %d", config.DefaultPageSize, cfg.PageSize)
	}
}

func TestNew_APIURLPrecedence(t *testing.T) {
	t.Setenv(config.EnvAPIURL, "http://env.example:9000/api")

	cfg, err := config.New(t.TempDir(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://env.example:9000/api" {
		t.Errorf("expected env api url, got %q", cfg.APIURL)
	}

	cfg, err = config.New(t.TempDir(), "https://flag.example/v1/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "https://flag.example/v1" {
		t.Errorf("expected flag api url without trailing slash, got %q", cfg.APIURL)
	}
}

func TestNew_InvalidAPIURL(t *testing.T) {
	for _, raw := range []string{"localhost:5080", "ftp://example.com", "http://"} {
		if _, err := config.New(t.TempDir(), raw); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}

func TestViewPath(t *testing.T) {
	cfg := &config.Config{Dir: "/home/u/.config/tasker"}
	if got := cfg.ViewPath(); got != filepath.Join("/home/u/.config/tasker", "view.json") {
		t.Errorf("unexpected view path %q", got)
	}
}
