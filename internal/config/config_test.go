package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/justyntemme/sanpustaka-t/internal/api"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Endpoint != api.DefaultEndpoint {
		t.Fatalf("Endpoint = %q, want %q", cfg.Endpoint, api.DefaultEndpoint)
	}
	if cfg.MaxResults != 24 {
		t.Fatalf("MaxResults = %d, want 24", cfg.MaxResults)
	}
	if cfg.InitialQuery != DefaultInitialQuery || cfg.HomeQuery != DefaultHomeQuery {
		t.Fatalf("queries = %q/%q, want defaults", cfg.InitialQuery, cfg.HomeQuery)
	}
	if cfg.RequestTimeout != 0 {
		t.Fatalf("RequestTimeout = %s, want 0", cfg.RequestTimeout)
	}
	if !reflect.DeepEqual(cfg.Categories, DefaultCategories) {
		t.Fatalf("Categories = %v, want %v", cfg.Categories, DefaultCategories)
	}
	if cfg.Path() != path {
		t.Fatalf("Path = %q, want %q", cfg.Path(), path)
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	path := writeConfig(t, `
endpoint: http://127.0.0.1:9999/volumes
max_results: 12
initial_query: sejarah indonesia
request_timeout: 5s
categories:
  - Puisi
  - "  "
  - Komik
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Endpoint != "http://127.0.0.1:9999/volumes" {
		t.Fatalf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.MaxResults != 12 {
		t.Fatalf("MaxResults = %d, want 12", cfg.MaxResults)
	}
	if cfg.InitialQuery != "sejarah indonesia" {
		t.Fatalf("InitialQuery = %q", cfg.InitialQuery)
	}
	if cfg.HomeQuery != DefaultHomeQuery {
		t.Fatalf("HomeQuery = %q, want default", cfg.HomeQuery)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Fatalf("RequestTimeout = %s, want 5s", cfg.RequestTimeout)
	}
	if !reflect.DeepEqual(cfg.Categories, []string{"Puisi", "Komik"}) {
		t.Fatalf("Categories = %v", cfg.Categories)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "home_query: from file\n")
	t.Setenv("SANPUSTAKA_HOME_QUERY", "from env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.HomeQuery != "from env" {
		t.Fatalf("HomeQuery = %q, want %q", cfg.HomeQuery, "from env")
	}
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	path := writeConfig(t, "max_results: 8\n")
	t.Setenv("SANPUSTAKA_CONFIG", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.MaxResults != 8 {
		t.Fatalf("MaxResults = %d, want 8", cfg.MaxResults)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	for name, contents := range map[string]string{
		"too many results": "max_results: 100\n",
		"negative timeout": "request_timeout: -1s\n",
		"malformed yaml":   "endpoint: [unclosed\n",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, contents)); err == nil {
				t.Fatalf("Load returned nil error")
			}
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	cfg.HomeQuery = "Sastra"
	cfg.RequestTimeout = 3 * time.Second
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	again, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if again.HomeQuery != "Sastra" || again.RequestTimeout != 3*time.Second {
		t.Fatalf("reloaded config = %+v", again)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := ExpandHome("~/logs/app.log"); got != filepath.Join(home, "logs", "app.log") {
		t.Fatalf("ExpandHome = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Fatalf("ExpandHome = %q", got)
	}
}
