package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"xslang/interpreter-go/pkg/driver"
	"xslang/interpreter-go/pkg/history"
)

type cliResult struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	envFile := filepath.Join(t.TempDir(), "absent.env")
	code := run(append([]string{"--env", envFile}, args...), strings.NewReader(""), &stdout, &stderr)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeProgram(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	res := runCLI(t, "version")
	require.Equal(t, 0, res.code)
	require.Equal(t, cliToolVersion+"\n", res.stdout)
}

func TestRunFile(t *testing.T) {
	path := writeProgram(t, "main.js", "function sq(x) { return x * x; }\ndisplay(sq(3));\nsq(4);\n")

	res := runCLI(t, "run", path)
	require.Equal(t, 0, res.code, res.stderr)
	require.Equal(t, "9\n", res.stdout)

	res = runCLI(t, "run", "--print", path)
	require.Equal(t, 0, res.code, res.stderr)
	require.Equal(t, "9\n16\n", res.stdout)
}

func TestRunUsesConfigEntry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.js"), []byte("display(\"from config\");"), 0o644))
	cfgPath := filepath.Join(dir, driver.DefaultConfigName)
	require.NoError(t, os.WriteFile(cfgPath, []byte("entry: main.js\n"), 0o644))

	res := runCLI(t, "--config", cfgPath, "run")
	require.Equal(t, 0, res.code, res.stderr)
	require.Equal(t, "from config\n", res.stdout)
}

func TestRunReportsErrors(t *testing.T) {
	res := runCLI(t, "run", writeProgram(t, "bad.js", "var a = 1;\nmissing;\n"))
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "Line 2: Name missing not declared. (UndefinedVariable)")

	res = runCLI(t, "run")
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "no program given")

	res = runCLI(t, "--config", filepath.Join(t.TempDir(), "nope.yml"), "run", "x.js")
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "nope.yml")
}

func TestRunStepLimit(t *testing.T) {
	res := runCLI(t, "--max-steps", "100", "run", writeProgram(t, "loop.js", "while (true) {}"))
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, driver.ErrStepLimit.Error())
}

func TestRunRejectsBadFlags(t *testing.T) {
	res := runCLI(t, "--mode", "speculative", "run", writeProgram(t, "x.js", "1;"))
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "speculative")
}

func TestTrace(t *testing.T) {
	res := runCLI(t, "trace", writeProgram(t, "add.js", "1 + 2;"))
	require.Equal(t, 0, res.code, res.stderr)
	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.True(t, strings.HasPrefix(lines[0], "visit"), lines[0])
	require.Contains(t, lines[0], "Program")
	require.Contains(t, res.stdout, "BinaryExpression")
	require.Equal(t, "=> 3", lines[len(lines)-1])
}

type fakeReader struct {
	lines   []string
	history []string
}

func (f *fakeReader) Prompt(string) (string, error) {
	if len(f.lines) == 0 {
		return "", io.EOF
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func (f *fakeReader) AppendHistory(item string) {
	f.history = append(f.history, item)
}

func newTestCLI(t *testing.T) (*cli, *driver.Runner, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	c := &cli{stdout: &stdout, stderr: &stderr}
	runner, err := driver.NewRunner(driver.DefaultConfig(), &stdout, nil)
	require.NoError(t, err)
	return c, runner, &stdout, &stderr
}

func TestReplKeepsState(t *testing.T) {
	c, runner, stdout, stderr := newTestCLI(t)
	in := &fakeReader{lines: []string{
		"function sq(x) { return x * x; }",
		"",
		"nope + 1;",
		"sq(5);",
		":quit",
		"sq(6);",
	}}
	require.NoError(t, c.repl(context.Background(), runner, in, nil, nil))

	require.Equal(t, "undefined\n25\n", stdout.String())
	require.Contains(t, stderr.String(), "Name nope not declared.")
	require.Equal(t, []string{"function sq(x) { return x * x; }", "nope + 1;", "sq(5);"}, in.history)

	ctx := runner.Interpreter().Context()
	require.Equal(t, ctx.NumberOfOuterEnvironments, ctx.Depth())
}

func TestReplParseErrorContinues(t *testing.T) {
	c, runner, stdout, stderr := newTestCLI(t)
	in := &fakeReader{lines: []string{"function (", "1 + 1;"}}
	require.NoError(t, c.repl(context.Background(), runner, in, nil, nil))
	require.Contains(t, stderr.String(), "parse")
	require.Equal(t, "2\n", stdout.String())
}

func TestReplRecordsHistory(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	c, runner, _, _ := newTestCLI(t)
	in := &fakeReader{lines: []string{"var a = 1;", "a + 1;"}}
	require.NoError(t, c.repl(context.Background(), runner, in, store, nil))

	cmds, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	require.Equal(t, "a + 1;", cmds[1].Text)

	preloaded := &fakeReader{}
	preload(preloaded, store, nil)
	require.Equal(t, []string{"var a = 1;", "a + 1;"}, preloaded.history)
}

func TestHelpNamesAcceptedSyntax(t *testing.T) {
	res := runCLI(t, "repl", "--help")
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, "parsed as ES5")

	res = runCLI(t, "run", "--help")
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, "ESTree JSON")
}
