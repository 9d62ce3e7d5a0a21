package driver

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/diag"
	"xslang/interpreter-go/pkg/interpreter"
	"xslang/interpreter-go/pkg/runtime"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, DefaultConfigName, `
entry: src/main.js
mode: lazy
max_steps: 1000
trace: true
log_level: debug
stdlib: [core, math]
history: .xslang_history.db
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "src", "main.js"), cfg.Entry)
	require.Equal(t, ModeLazy, cfg.Mode)
	require.Equal(t, 1000, cfg.MaxSteps)
	require.True(t, cfg.Trace)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, []string{"core", "math"}, cfg.Stdlib)
	require.Equal(t, filepath.Join(dir, ".xslang_history.db"), cfg.History)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), DefaultConfigName, "entry: main.json\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, ModeEager, cfg.Mode)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"core", "math", "string", "array"}, cfg.Stdlib)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yml"))
	require.ErrorIs(t, err, ErrConfigNotFound)

	_, err = LoadConfig(writeFile(t, dir, "empty.yml", ""))
	require.ErrorContains(t, err, "is empty")

	_, err = LoadConfig(writeFile(t, dir, "unknown.yml", "entrypoint: x.js\n"))
	require.ErrorContains(t, err, "entrypoint")

	_, err = LoadConfig(writeFile(t, dir, "invalid.yml", "mode: speculative\nmax_steps: -1\nlog_level: loud\nstdlib: [core, net]\n"))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	require.Len(t, verr.Issues, 4)
	require.Contains(t, err.Error(), `unknown group "net"`)
}

func TestApplyEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "XSLANG_MODE=lazy\nXSLANG_MAX_STEPS=50\nXSLANG_LOG_LEVEL=warn\n")
	t.Setenv(EnvMaxSteps, "75")
	t.Setenv(EnvTrace, "true")

	cfg := DefaultConfig()
	require.NoError(t, ApplyEnv(cfg, envFile))
	require.Equal(t, ModeLazy, cfg.Mode)
	require.Equal(t, 75, cfg.MaxSteps, "process environment wins over the file")
	require.Equal(t, "warn", cfg.LogLevel)
	require.True(t, cfg.Trace)
}

func TestApplyEnvMissingFileAndBadValues(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, ApplyEnv(cfg, filepath.Join(t.TempDir(), "absent.env")))

	t.Setenv(EnvMaxSteps, "lots")
	require.ErrorContains(t, ApplyEnv(DefaultConfig(), ""), EnvMaxSteps)

	t.Setenv(EnvMaxSteps, "")
	t.Setenv(EnvMode, "quantum")
	var verr *ValidationError
	require.ErrorAs(t, ApplyEnv(DefaultConfig(), ""), &verr)
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := ParseLogLevel("chatty")
	require.Error(t, err)
}

func TestLoadProgram(t *testing.T) {
	dir := t.TempDir()
	js := writeFile(t, dir, "main.js", "var x = 1;\n")
	program, err := LoadProgram(js)
	require.NoError(t, err)
	require.Len(t, program.Body, 1)

	estree := writeFile(t, dir, "main.json", `{"type": "Program", "body": [{"type": "EmptyStatement"}]}`)
	program, err = LoadProgram(estree)
	require.NoError(t, err)
	require.Equal(t, ast.NodeEmptyStatement, program.Body[0].NodeType())

	_, err = LoadProgram(writeFile(t, dir, "main.py", "print(1)"))
	require.ErrorContains(t, err, "unsupported file type")

	_, err = LoadProgram(filepath.Join(dir, "nope.js"))
	require.Error(t, err)
}

func newRunner(t *testing.T, cfg *Config) (*Runner, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	r, err := NewRunner(cfg, &out, nil)
	require.NoError(t, err)
	return r, &out
}

func TestRunnerRunsProgram(t *testing.T) {
	r, out := newRunner(t, DefaultConfig())
	program, err := LoadProgramSource("var total = 0;\nfor (var i = 1; i <= 4; i++) { total += i; }\ndisplay(total);\ntotal;")
	require.NoError(t, err)
	val, err := r.Run(context.Background(), program)
	require.NoError(t, err)
	require.Equal(t, runtime.Number(10), val)
	require.Equal(t, "10\n", out.String())
}

func TestRunnerStepLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSteps = 200
	r, _ := newRunner(t, cfg)
	program, err := LoadProgramSource("while (true) {}")
	require.NoError(t, err)
	_, err = r.Run(context.Background(), program)
	require.ErrorIs(t, err, ErrStepLimit)

	ctx := r.Interpreter().Context()
	require.Equal(t, ctx.NumberOfOuterEnvironments, ctx.Depth())
}

func TestRunnerCancellation(t *testing.T) {
	r, _ := newRunner(t, DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	seen := 0
	r.OnCheckpoint = func(interpreter.Checkpoint) {
		seen++
		if seen == 10 {
			cancel()
		}
	}
	program, err := LoadProgramSource("while (true) {}")
	require.NoError(t, err)
	_, err = r.Run(ctx, program)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunnerTraceLogsCheckpoints(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trace = true
	var logs bytes.Buffer
	logger, err := NewLogger(&logs, cfg)
	require.NoError(t, err)
	r, err := NewRunner(cfg, &bytes.Buffer{}, logger)
	require.NoError(t, err)

	program, err := LoadProgramSource("1 + 2;")
	require.NoError(t, err)
	_, err = r.Run(context.Background(), program)
	require.NoError(t, err)
	require.Contains(t, logs.String(), "phase=visit node=Program")
	require.Contains(t, logs.String(), "node=BinaryExpression line=1")
}

func TestRunnerKeepsStateAcrossRuns(t *testing.T) {
	r, _ := newRunner(t, DefaultConfig())
	run := func(src string) (runtime.Value, error) {
		program, err := LoadProgramSource(src)
		require.NoError(t, err)
		return r.Run(context.Background(), program)
	}

	_, err := run("function sq(x) { return x * x; }")
	require.NoError(t, err)
	_, err = run("missing + 1;")
	require.True(t, diag.IsKind(err, diag.UndefinedVariable), "got %v", err)
	val, err := run("sq(7);")
	require.NoError(t, err)
	require.Equal(t, runtime.Number(49), val)
}

func TestRunnerLazyMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = ModeLazy
	r, out := newRunner(t, cfg)
	program, err := LoadProgramSource("function first(a, b) { return a; }\nfirst(1, display(\"never\"));")
	require.NoError(t, err)
	val, err := r.Run(context.Background(), program)
	require.NoError(t, err)
	require.Equal(t, runtime.Number(1), val)
	require.False(t, strings.Contains(out.String(), "never"))
}
