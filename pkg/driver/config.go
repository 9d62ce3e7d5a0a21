package driver

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"xslang/interpreter-go/pkg/stdlib"
)

// DefaultConfigName is the file looked up when no config path is given.
const DefaultConfigName = "xslang.yml"

// ErrConfigNotFound reports a missing configuration file.
var ErrConfigNotFound = errors.New("config: file not found")

// Mode selects the argument evaluation strategy.
type Mode string

const (
	ModeEager Mode = "eager"
	ModeLazy  Mode = "lazy"
)

// IsValid reports whether the mode is recognised.
func (m Mode) IsValid() bool {
	return m == ModeEager || m == ModeLazy
}

// Config is a validated run configuration.
type Config struct {
	Path     string
	Entry    string
	Mode     Mode
	MaxSteps int
	Trace    bool
	LogLevel string
	Stdlib   []string
	History  string
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

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Mode:     ModeEager,
		LogLevel: "info",
		Stdlib:   slices.Clone(stdlib.Groups),
	}
}

// LoadConfig parses an xslang.yml file. Relative entry and history paths are
// resolved against the directory holding the file.
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
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, absPath)
		}
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
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs ValidationError
	if !c.Mode.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("mode must be %q or %q, got %q", ModeEager, ModeLazy, c.Mode))
	}
	if c.MaxSteps < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_steps must not be negative, got %d", c.MaxSteps))
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs.Issues = append(errs.Issues, err.Error())
	}
	for i, group := range c.Stdlib {
		if !slices.Contains(stdlib.Groups, group) {
			errs.Issues = append(errs.Issues, fmt.Sprintf("stdlib[%d]: unknown group %q", i, group))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

type configFile struct {
	Entry    string   `yaml:"entry"`
	Mode     string   `yaml:"mode"`
	MaxSteps int      `yaml:"max_steps"`
	Trace    bool     `yaml:"trace"`
	LogLevel string   `yaml:"log_level"`
	Stdlib   []string `yaml:"stdlib"`
	History  string   `yaml:"history"`
}

func (cf configFile) toConfig(path string) *Config {
	cfg := DefaultConfig()
	cfg.Path = path
	dir := filepath.Dir(path)
	if entry := strings.TrimSpace(cf.Entry); entry != "" {
		cfg.Entry = resolve(dir, entry)
	}
	if mode := strings.TrimSpace(cf.Mode); mode != "" {
		cfg.Mode = Mode(strings.ToLower(mode))
	}
	cfg.MaxSteps = cf.MaxSteps
	cfg.Trace = cf.Trace
	if level := strings.TrimSpace(cf.LogLevel); level != "" {
		cfg.LogLevel = level
	}
	if cf.Stdlib != nil {
		cfg.Stdlib = make([]string, 0, len(cf.Stdlib))
		for _, group := range cf.Stdlib {
			cfg.Stdlib = append(cfg.Stdlib, strings.TrimSpace(group))
		}
	}
	if history := strings.TrimSpace(cf.History); history != "" {
		cfg.History = resolve(dir, history)
	}
	return cfg
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
