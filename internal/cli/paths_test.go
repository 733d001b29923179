package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err := configDir()
	if err != nil {
		t.Fatalf("configDir() error: %v", err)
	}
	if !strings.HasSuffix(dir, filepath.Join(".config", appName)) {
		t.Errorf("configDir() = %q, want suffix .config/%s", dir, appName)
	}

	custom := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", custom)
	dir, err = configDir()
	if err != nil {
		t.Fatalf("configDir() error: %v", err)
	}
	if want := filepath.Join(custom, appName); dir != want {
		t.Errorf("configDir() with XDG_CONFIG_HOME = %q, want %q", dir, want)
	}
}
