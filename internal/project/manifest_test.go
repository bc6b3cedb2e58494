package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, text string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSearchesUpward(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `
[package]
name = "demo"

[check]
root = "src"
max_diagnostics = 5
format = "short"

[trace]
level = "phase"
`)
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := Load(nested)
	if err != nil || !ok {
		t.Fatalf("Load = %v, %v", ok, err)
	}
	if m.Config.Package.Name != "demo" || m.Config.Check.MaxDiagnostics != 5 || m.Config.Check.Format != "short" {
		t.Errorf("config = %+v", m.Config)
	}
	if m.Config.Trace.Level != "phase" {
		t.Errorf("trace level = %q", m.Config.Trace.Level)
	}
	wantRoot, _ := filepath.Abs(filepath.Join(root, "src"))
	if m.CheckRoot() != wantRoot {
		t.Errorf("CheckRoot = %q, want %q", m.CheckRoot(), wantRoot)
	}
}

func TestLoadWithoutManifest(t *testing.T) {
	// TempDir lives outside any project in the test environment
	_, ok, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Skip("a calc.toml exists above the temp dir")
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"syntax", "[check\n", "failed to parse TOML"},
		{"unknown key", "[check]\ncolour = true\n", "unknown keys: check.colour"},
		{"negative limit", "[check]\nmax_diagnostics = -1\n", "max_diagnostics"},
		{"negative jobs", "[check]\njobs = -2\n", "jobs"},
		{"bad ui", "[check]\nui = \"sometimes\"\n", "[check].ui"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.text)
			_, err := LoadFile(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}
