package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/driver"
	"xslang/interpreter-go/pkg/interpreter"
	"xslang/interpreter-go/pkg/stringify"
)

func (c *cli) runCmd() *cobra.Command {
	var printResult bool
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Run a program (.js source or .json ESTree)",
		Long: `Run evaluates a program file. Without an argument the entry named in
xslang.yml is used. Output produced by display() goes to stdout.

.js files are parsed as ES5 source. For let, const and arrow functions, pass
the program as ESTree JSON (.json), for example from acorn with locations on.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, program, err := c.prepare(cmd, args)
			if err != nil {
				return c.report(err)
			}
			val, err := runner.Run(cmd.Context(), program)
			if err != nil {
				return c.report(err)
			}
			if printResult {
				fmt.Fprintln(c.stdout, stringify.Value(val))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&printResult, "print", "p", false, "print the value of the program")
	return cmd
}

func (c *cli) traceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trace [file]",
		Short: "Run a program and print every checkpoint",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, program, err := c.prepare(cmd, args)
			if err != nil {
				return c.report(err)
			}
			runner.OnCheckpoint = func(cp interpreter.Checkpoint) {
				fmt.Fprintf(c.stdout, "%-8s %-24s line %-4d depth %-3d envs %d\n",
					cp.Phase, cp.Node.NodeType(), cp.Node.Span().Start.Line, cp.Depth, cp.Environments)
			}
			val, err := runner.Run(cmd.Context(), program)
			if err != nil {
				return c.report(err)
			}
			fmt.Fprintf(c.stdout, "=> %s\n", stringify.Value(val))
			return nil
		},
	}
}

func (c *cli) prepare(cmd *cobra.Command, args []string) (*driver.Runner, *ast.Program, error) {
	cfg, logger, err := c.settings(cmd)
	if err != nil {
		return nil, nil, err
	}
	path := cfg.Entry
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return nil, nil, fmt.Errorf("no program given and no entry in %s", c.configPath)
	}
	program, err := driver.LoadProgram(path)
	if err != nil {
		return nil, nil, err
	}
	runner, err := driver.NewRunner(cfg, c.stdout, logger)
	if err != nil {
		return nil, nil, err
	}
	return runner, program, nil
}
