package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"calc/internal/diagfmt"
)

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	root := &cobra.Command{Use: "calc"}
	registerGlobalFlags(root)
	cmd := &cobra.Command{Use: "check"}
	cmd.Flags().String("format", "pretty", "")
	cmd.Flags().Int("jobs", 0, "")
	cmd.Flags().String("ui", "auto", "")
	root.AddCommand(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calc.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadSettingsManifestDefaults(t *testing.T) {
	path := writeManifest(t, `
[check]
max_diagnostics = 5
format = "short"
jobs = 3
`)
	cmd := newTestCommand(t, "--config", path, "--color", "off")
	s, err := loadSettings(cmd)
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if s.maxDiagnostics != 5 || s.format != diagfmt.FormatShort || s.jobs != 3 {
		t.Fatalf("settings = %+v, want manifest values", s)
	}
}

func TestLoadSettingsFlagsOverrideManifest(t *testing.T) {
	path := writeManifest(t, `
[check]
max_diagnostics = 5
format = "short"
`)
	cmd := newTestCommand(t, "--config", path, "--color", "off", "--max-diagnostics", "2", "--format", "json")
	s, err := loadSettings(cmd)
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if s.maxDiagnostics != 2 || s.format != diagfmt.FormatJSON {
		t.Fatalf("settings = %+v, want flag values", s)
	}
}

func TestLoadSettingsRejectsNegativeLimit(t *testing.T) {
	path := writeManifest(t, "")
	cmd := newTestCommand(t, "--config", path, "--color", "off", "--max-diagnostics=-1")
	if _, err := loadSettings(cmd); err == nil {
		t.Fatal("expected error for negative --max-diagnostics")
	}
}

func TestResolveColor(t *testing.T) {
	if on, err := resolveColor("always"); err != nil || !on {
		t.Fatalf("resolveColor(always) = %v, %v", on, err)
	}
	if on, err := resolveColor("OFF"); err != nil || on {
		t.Fatalf("resolveColor(OFF) = %v, %v", on, err)
	}
	if _, err := resolveColor("sometimes"); err == nil {
		t.Fatal("expected error for unknown color mode")
	}
}

func TestResolveUI(t *testing.T) {
	for in, want := range map[string]bool{"on": true, " ON ": true, "off": false} {
		got, err := resolveUI(in)
		if err != nil || got != want {
			t.Fatalf("resolveUI(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := resolveUI("maybe"); err == nil {
		t.Fatal("expected error for unknown ui mode")
	}
}

func TestLoadSettingsUIFromManifest(t *testing.T) {
	path := writeManifest(t, "[check]\nui = \"on\"\n")

	s, err := loadSettings(newTestCommand(t, "--config", path, "--color", "off"))
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if !s.tui {
		t.Error("[check].ui = on must enable the progress view")
	}

	s, err = loadSettings(newTestCommand(t, "--config", path, "--color", "off", "--ui", "off"))
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if s.tui {
		t.Error("--ui off must override the manifest")
	}

	s, err = loadSettings(newTestCommand(t, "--config", path, "--color", "off", "--format", "msgpack"))
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if s.tui {
		t.Error("binary output must disable the progress view")
	}
}

func TestVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := renderVersionJSON(&buf); err != nil {
		t.Fatalf("renderVersionJSON: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"tool": "calc"`) || !strings.Contains(out, `"version": `) {
		t.Fatalf("unexpected payload:\n%s", out)
	}
}
