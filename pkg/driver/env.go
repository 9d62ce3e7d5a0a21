package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override configuration values.
const (
	EnvMode     = "XSLANG_MODE"
	EnvMaxSteps = "XSLANG_MAX_STEPS"
	EnvLogLevel = "XSLANG_LOG_LEVEL"
	EnvTrace    = "XSLANG_TRACE"
)

// ApplyEnv overlays values from envFile and the process environment onto cfg.
// Process variables win over the file; a missing file is not an error.
func ApplyEnv(cfg *Config, envFile string) error {
	values := map[string]string{}
	if envFile != "" {
		read, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("env: read %s: %w", envFile, err)
		}
		for k, v := range read {
			values[k] = v
		}
	}
	for _, key := range []string{EnvMode, EnvMaxSteps, EnvLogLevel, EnvTrace} {
		if v, ok := os.LookupEnv(key); ok {
			values[key] = v
		}
	}

	if v, ok := values[EnvMode]; ok && v != "" {
		cfg.Mode = Mode(strings.ToLower(strings.TrimSpace(v)))
	}
	if v, ok := values[EnvMaxSteps]; ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("env: %s: %w", EnvMaxSteps, err)
		}
		cfg.MaxSteps = n
	}
	if v, ok := values[EnvLogLevel]; ok && v != "" {
		cfg.LogLevel = strings.TrimSpace(v)
	}
	if v, ok := values[EnvTrace]; ok && v != "" {
		trace, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("env: %s: %w", EnvTrace, err)
		}
		cfg.Trace = trace
	}
	return cfg.Validate()
}
