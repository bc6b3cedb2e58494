package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file FindManifest looks for.
const ManifestName = "calc.toml"

// Manifest is a loaded calc.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the calc.toml layout. Zero values mean "not set".
type Config struct {
	Package PackageConfig `toml:"package"`
	Check   CheckConfig   `toml:"check"`
	Trace   TraceConfig   `toml:"trace"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type CheckConfig struct {
	Root           string `toml:"root"` // каталог с *.calc относительно манифеста
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Format         string `toml:"format"`
	Jobs           int    `toml:"jobs"`
	UI             string `toml:"ui"` // auto|on|off, прогресс для каталогов
}

type TraceConfig struct {
	Level string `toml:"level"`
}

// FindManifest walks up from startDir to locate calc.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load finds and decodes the manifest above startDir. ok is false when there is none.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadFile(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// LoadFile decodes the manifest at path. Unknown keys are an error.
func LoadFile(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Check.MaxDiagnostics < 0 {
		return nil, fmt.Errorf("%s: [check].max_diagnostics must be >= 0", path)
	}
	if cfg.Check.Jobs < 0 {
		return nil, fmt.Errorf("%s: [check].jobs must be >= 0", path)
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Check.UI)) {
	case "", "auto", "on", "off":
	default:
		return nil, fmt.Errorf("%s: [check].ui must be auto, on or off, got %q", path, cfg.Check.UI)
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

// CheckRoot returns the directory `calc check` scans by default.
func (m *Manifest) CheckRoot() string {
	root := strings.TrimSpace(m.Config.Check.Root)
	if root == "" {
		return m.Root
	}
	return filepath.Join(m.Root, filepath.FromSlash(root))
}
