package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/officegen-labs/officegen/internal/scaffold"
)

func TestLoad_Defaults(t *testing.T) {
	setupHome(t)
	Load()

	if got := Get(KeyHost); got != "https://localhost:8443" {
		t.Errorf("Get(host) = %q", got)
	}
	if got := Get(KeyTech); got != scaffold.TechNg {
		t.Errorf("Get(tech) = %q", got)
	}
	if got := Get(KeyProviderName); got != "Contoso" {
		t.Errorf("Get(provider-name) = %q", got)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	setupHome(t)
	t.Setenv("OFFICEGEN_ICON_URL", "https://cdn.example.com/icon.png")
	Load()

	if got := Get(KeyIconURL); got != "https://cdn.example.com/icon.png" {
		t.Errorf("Get(icon-url) = %q", got)
	}
}

func TestSet_PersistsToFile(t *testing.T) {
	home := setupHome(t)
	Load()

	if err := Set(KeyTech, scaffold.TechHTML); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(home, ".officegen", "config.yaml"))
	if err != nil {
		t.Fatalf("reading config file: %v", err)
	}
	if want := "tech: html"; !strings.Contains(string(data), want) {
		t.Errorf("config file missing %q:\n%s", want, data)
	}

	// A fresh load sees the stored value.
	viper.Reset()
	Load()
	if got := Get(KeyTech); got != scaffold.TechHTML {
		t.Errorf("Get(tech) after reload = %q", got)
	}
}

func TestSet_Rejects(t *testing.T) {
	setupHome(t)
	Load()

	if err := Set("mirror", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
	if err := Set(KeyTech, "react"); !errors.Is(err, scaffold.ErrUnknownTech) {
		t.Errorf("Set(tech, react) error = %v, want ErrUnknownTech", err)
	}
}

func TestKeys(t *testing.T) {
	got := Keys()
	want := []string{"host", "icon-url", "provider-name", "tech"}
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// --- helpers ---

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return home
}
