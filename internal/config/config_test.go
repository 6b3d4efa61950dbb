package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/goliatone/go-serviceform/internal/logging"
	"github.com/goliatone/go-serviceform/pkg/form"
	"github.com/goliatone/go-serviceform/pkg/renderers/tui"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{
		Variant:   "multi",
		Output:    "json",
		LogLevel:  "info",
		LogFormat: "console",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.FormVariant() != form.VariantMulti || cfg.OutputFormat() != tui.OutputFormatJSON {
		t.Fatalf("unexpected derived values %q %q", cfg.FormVariant(), cfg.OutputFormat())
	}
}

func TestLoad_DefaultLevelKeepsSingleVariantDump(t *testing.T) {
	cfg, err := Load("", map[string]string{KeyVariant: "single"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	// The single layout writes the saved record at info level.
	if !log.Core().Enabled(zap.InfoLevel) {
		t.Fatalf("default level %q drops the saved sub-service dump", cfg.LogLevel)
	}
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "serviceform.yaml")
	data := "variant: single\noutput: form\nlog_level: info\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("SERVICEFORM_OUTPUT", "pretty")
	t.Setenv("SERVICEFORM_LOG_FORMAT", "json")

	cfg, err := Load(path, map[string]string{
		KeyLogLevel: "debug",
		KeyVariant:  "",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{
		Variant:   "single",
		Output:    "pretty",
		LogLevel:  "debug",
		LogFormat: "json",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.FormVariant() != form.VariantSingle {
		t.Fatalf("expected single variant")
	}
}

func TestLoad_RejectsUnknownValues(t *testing.T) {
	_, err := Load("", map[string]string{KeyVariant: "triple", KeyOutput: "xml"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"variant must be one of", "output must be one of"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err, want)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestConfig_Catalog(t *testing.T) {
	cfg := Config{}
	c, err := cfg.Catalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if !c.HasService("Core Laundry Services") {
		t.Fatalf("expected embedded catalog")
	}

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("clothingTypes:\n  - Curtain\n"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	cfg.CatalogPath = path
	c, err = cfg.Catalog()
	if err != nil {
		t.Fatalf("catalog overlay: %v", err)
	}
	if !c.HasClothingType("Curtain") || !c.HasService("Fabric Care") {
		t.Fatalf("expected overlay merged over defaults, got %+v", c)
	}
}
