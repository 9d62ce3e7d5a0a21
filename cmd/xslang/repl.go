package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"xslang/interpreter-go/pkg/driver"
	"xslang/interpreter-go/pkg/history"
	"xslang/interpreter-go/pkg/stringify"
)

const (
	promptMain   = "xs> "
	historyLimit = 500
)

// lineReader is the part of liner the loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// scanReader reads lines when stdin is not a terminal.
type scanReader struct {
	sc *bufio.Scanner
}

func (s *scanReader) Prompt(string) (string, error) {
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.sc.Text(), nil
}

func (s *scanReader) AppendHistory(string) {}

func (c *cli) replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Long: `Each line is evaluated as a program in the same session, so functions and
variables from earlier lines stay visible. An error abandons only the current
line. Type :quit to leave.

Input is parsed as ES5, so let, const and arrow functions are not accepted
here. Programs using them can be run from ESTree JSON with "xslang run".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := c.settings(cmd)
			if err != nil {
				return c.report(err)
			}
			runner, err := driver.NewRunner(cfg, c.stdout, logger)
			if err != nil {
				return c.report(err)
			}

			var store *history.Store
			if cfg.History != "" {
				store, err = history.Open(cfg.History)
				if err != nil {
					return c.report(err)
				}
				defer store.Close()
			}

			var in lineReader
			if f, ok := c.stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
				ln := liner.NewLiner()
				defer ln.Close()
				ln.SetCtrlCAborts(true)
				if store != nil {
					preload(ln, store, logger)
				}
				in = ln
			} else {
				in = &scanReader{sc: bufio.NewScanner(c.stdin)}
			}
			return c.repl(cmd.Context(), runner, in, store, logger)
		},
	}
}

func preload(in lineReader, store *history.Store, logger *slog.Logger) {
	cmds, err := store.Recent(historyLimit)
	if err != nil {
		logger.Warn("history unavailable", "err", err)
		return
	}
	for _, cmd := range cmds {
		in.AppendHistory(cmd.Text)
	}
}

func (c *cli) repl(ctx context.Context, runner *driver.Runner, in lineReader, store *history.Store, logger *slog.Logger) error {
	for {
		line, err := in.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return err
		}
		src := strings.TrimSpace(line)
		switch src {
		case "":
			continue
		case ":quit":
			return nil
		}
		in.AppendHistory(src)
		if store != nil {
			if _, err := store.AddCmd(src); err != nil {
				logger.Warn("history write failed", "err", err)
			}
		}
		c.evalLine(ctx, runner, src)
	}
}

// evalLine runs one input. Errors are reported and the session continues.
func (c *cli) evalLine(ctx context.Context, runner *driver.Runner, src string) {
	program, err := driver.LoadProgramSource(src)
	if err != nil {
		c.report(err)
		return
	}
	val, err := runner.Run(ctx, program)
	if err != nil {
		c.report(err)
		return
	}
	fmt.Fprintln(c.stdout, stringify.Value(val))
}
