package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"xslang/interpreter-go/pkg/diag"
	"xslang/interpreter-go/pkg/driver"
)

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	envFile    string
	mode       string
	maxSteps   int
	logLevel   string
	trace      bool
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}
	root := &cobra.Command{
		Use:           "xslang",
		Short:         "xslang evaluates programs written in a small JavaScript subset",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", driver.DefaultConfigName, "path to the run configuration")
	flags.StringVar(&c.envFile, "env", ".env", "dotenv file with XSLANG_* overrides")
	flags.StringVar(&c.mode, "mode", "", "argument evaluation: eager or lazy")
	flags.IntVar(&c.maxSteps, "max-steps", 0, "abort after this many checkpoints (0 means unlimited)")
	flags.StringVar(&c.logLevel, "log-level", "", "debug, info, warn or error")
	flags.BoolVar(&c.trace, "trace", false, "log every checkpoint at debug level")

	root.AddCommand(c.runCmd(), c.traceCmd(), c.replCmd(), c.versionCmd())
	return root
}

// settings layers the config file, the environment and explicit flags, in
// that order.
func (c *cli) settings(cmd *cobra.Command) (*driver.Config, *slog.Logger, error) {
	cfg, err := driver.LoadConfig(c.configPath)
	if err != nil {
		if !errors.Is(err, driver.ErrConfigNotFound) || cmd.Flags().Changed("config") {
			return nil, nil, err
		}
		cfg = driver.DefaultConfig()
	}
	if err := driver.ApplyEnv(cfg, c.envFile); err != nil {
		return nil, nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Mode = driver.Mode(c.mode)
	}
	if flags.Changed("max-steps") {
		cfg.MaxSteps = c.maxSteps
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if flags.Changed("trace") {
		cfg.Trace = c.trace
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	logger, err := driver.NewLogger(c.stderr, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(c.stdout, cliToolVersion)
		},
	}
}

// report prints err to stderr, in red when stderr is a terminal.
func (c *cli) report(err error) error {
	msg := err.Error()
	var rt *diag.RuntimeError
	if errors.As(err, &rt) && !rt.Span.IsZero() && rt.Kind != diag.ExceptionError {
		msg = fmt.Sprintf("%s (%s)", msg, rt.Kind)
	}
	if colorEnabled(c.stderr) {
		msg = "\x1b[31m" + msg + "\x1b[0m"
	}
	fmt.Fprintln(c.stderr, msg)
	return err
}

func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
