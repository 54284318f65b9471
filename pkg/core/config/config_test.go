package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "edgar.yaml", "table_ratio: 0.25\nworkers: 8\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TableRatio != 0.25 || cfg.Workers != 8 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.OutputRoot != Default().OutputRoot || cfg.MinSectionLen != Default().MinSectionLen {
		t.Errorf("unset fields should keep defaults: %+v", cfg)
	}
}

func TestLoad_HJSON(t *testing.T) {
	path := writeConfig(t, "edgar.hjson", `{
  // corpus location
  output_root: data
  min_section_length: 1000
}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputRoot != "data" || cfg.MinSectionLen != 1000 {
		t.Errorf("hjson values not applied: %+v", cfg)
	}
}

func TestLoad_ClampsInvalidValues(t *testing.T) {
	path := writeConfig(t, "edgar.yaml", "workers: 0\ntable_ratio: -1\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Workers != 1 {
		t.Errorf("Workers = %d, want clamp to 1", cfg.Workers)
	}
	if cfg.TableRatio != Default().TableRatio {
		t.Errorf("TableRatio = %v, want default", cfg.TableRatio)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
