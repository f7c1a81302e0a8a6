package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func newTestViper(t *testing.T) (*viper.Viper, *pflag.FlagSet) {
	t.Helper()
	v := viper.New()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(v, fs); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	return v, fs
}

func TestLoadDefaultsDataPathUnderHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	v, _ := newTestViper(t)

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := filepath.Join("/home/tester", ".passvault.json")
	if cfg.DataPath != want {
		t.Fatalf("got %q, want %q", cfg.DataPath, want)
	}
	if cfg.DictPath != DefaultDictPath {
		t.Fatalf("got dict path %q, want %q", cfg.DictPath, DefaultDictPath)
	}
}

func TestLoadPrefersFlagOverDefault(t *testing.T) {
	v, fs := newTestViper(t)
	if err := fs.Parse([]string{"--data", "/tmp/custom.json", "--dict-path", "/tmp/words.txt"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataPath != "/tmp/custom.json" {
		t.Fatalf("got %q, want /tmp/custom.json", cfg.DataPath)
	}
	if cfg.DictPath != "/tmp/words.txt" {
		t.Fatalf("got %q, want /tmp/words.txt", cfg.DictPath)
	}
}

func TestLoadPrefersEnvOverFlagDefault(t *testing.T) {
	t.Setenv("PASSVAULT_WORK_FACTOR", "15")
	v, _ := newTestViper(t)

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WorkFactor != 15 {
		t.Fatalf("got work factor %d, want 15", cfg.WorkFactor)
	}
}

func TestLoadReadsExplicitConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("data: /from/config-file.json\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	v, fs := newTestViper(t)
	if err := fs.Parse([]string{"--config", path}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataPath != "/from/config-file.json" {
		t.Fatalf("got %q, want /from/config-file.json", cfg.DataPath)
	}
}

func TestLoadMissingExplicitConfigFileFails(t *testing.T) {
	v, fs := newTestViper(t)
	if err := fs.Parse([]string{"--config", "/no/such/file.yaml"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if _, err := Load(v); err == nil {
		t.Fatal("Load: expected an error for a missing explicit --config file, got nil")
	}
}

func TestLoadFallsBackToHomeConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, ".passvault.yaml")
	if err := os.WriteFile(path, []byte("jobs: 4\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	v, _ := newTestViper(t)
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Jobs != 4 {
		t.Fatalf("got jobs %d, want 4", cfg.Jobs)
	}
}

func TestLoadToleratesMissingHomeConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	v, _ := newTestViper(t)

	if _, err := Load(v); err != nil {
		t.Fatalf("Load: %v", err)
	}
}
