package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ZaydH/cis561/pkg/typechecker"
)

// ConfigFileName is the file FindConfig looks for.
const ConfigFileName = "quack.yml"

// Config represents the parsed contents of quack.yml.
type Config struct {
	Path               string
	MaxInferencePasses int
	Debug              bool
	Dump               DumpMode
}

// DumpMode selects what is written after a file checks cleanly.
type DumpMode string

const (
	DumpNone      DumpMode = "none"
	DumpSource    DumpMode = "source"
	DumpAnnotated DumpMode = "annotated"
)

// IsValid reports whether the dump mode is recognised.
func (m DumpMode) IsValid() bool {
	switch m {
	case DumpNone, DumpSource, DumpAnnotated:
		return true
	default:
		return false
	}
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

var ErrNoConfig = errors.New("config: no " + ConfigFileName + " found")

// DefaultConfig returns the settings used when no quack.yml is present.
func DefaultConfig() *Config {
	return &Config{
		MaxInferencePasses: typechecker.DefaultMaxPasses,
		Dump:               DumpNone,
	}
}

// LoadConfig parses quack.yml from disk, returning a validated config.
// Settings missing from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: %s is empty", absPath)
		}
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	cfg := raw.toConfig(absPath)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfig walks from dir towards the filesystem root and returns the
// first quack.yml it finds.
func FindConfig(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("config: resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(absDir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("config: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(absDir)
		if parent == absDir {
			return "", ErrNoConfig
		}
		absDir = parent
	}
}

// CheckerOptions converts the config into typechecker options. Trace output
// is only wired when debugging is enabled.
func (c *Config) CheckerOptions(trace io.Writer) typechecker.Options {
	opts := typechecker.Options{MaxPasses: c.MaxInferencePasses}
	if c.Debug {
		opts.Trace = trace
	}
	return opts
}

func (c *Config) validate() error {
	var errs ValidationError
	if c.MaxInferencePasses <= 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_inference_passes must be positive, got %d", c.MaxInferencePasses))
	}
	if !c.Dump.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("dump has unsupported mode %q", c.Dump))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

type configFile struct {
	MaxInferencePasses *int   `yaml:"max_inference_passes"`
	Debug              *bool  `yaml:"debug"`
	Dump               string `yaml:"dump"`
}

func (f configFile) toConfig(path string) *Config {
	cfg := DefaultConfig()
	cfg.Path = path
	if f.MaxInferencePasses != nil {
		cfg.MaxInferencePasses = *f.MaxInferencePasses
	}
	if f.Debug != nil {
		cfg.Debug = *f.Debug
	}
	if dump := strings.TrimSpace(f.Dump); dump != "" {
		cfg.Dump = DumpMode(strings.ToLower(dump))
	}
	return cfg
}
