// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dalzilio/aadd"
	"github.com/dalzilio/aadd/internal/expr"
)

// EvalOptions holds the flags of the eval command.
type EvalOptions struct {
	Dot   string // name of a variable to print in DOT format
	Docs  string // file where to write the documentation of the session
	Stats bool
}

// Result is the value of one statement of a script. Min and Max are set for
// real values that are not a trap; True and False count the paths of Boolean
// values.
type Result struct {
	Name   string   `json:"name,omitempty"`
	Line   int      `json:"line"`
	Kind   string   `json:"kind"`
	Range  string   `json:"range,omitempty"`
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
	Value  string   `json:"value,omitempty"`
	True   int      `json:"true,omitempty"`
	False  int      `json:"false,omitempty"`
	Leaves int      `json:"leaves"`
	Height int      `json:"height"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{}
	cmd := &cobra.Command{
		Use:   "eval [file|-]",
		Short: "Evaluate a script and print the bounds of its values",
		Long: `Evaluate a script and print the bounds of every declared variable and
of every expression statement. The script is read from the standard input
when no file is given, or when the file is "-".

Example:

  var x := range(1, 2, "x", "m")
  var y := ite(x > 1.5, x * 2, x)
  y - x`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			return runEval(rootOpts, opts, input, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Dot, "dot", "", "print the diagram of a variable in DOT format")
	cmd.Flags().StringVar(&opts.Docs, "docs", "", "write the documentation of symbols and conditions (YAML)")
	cmd.Flags().BoolVar(&opts.Stats, "stats", false, "print statistics on the standard error")

	return cmd
}

func runEval(rootOpts *RootOptions, opts *EvalOptions, input string, cmd *cobra.Command) error {
	formatter := NewOutputFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := newLogger(rootOpts, formatter.GetErrWriter())

	src, err := readInput(input, cmd.InOrStdin())
	if err != nil {
		formatter.Error(ErrCodeIO, err.Error(), nil)
		return WrapExitError(ExitCommandError, "reading script", err)
	}

	m, err := newManager(rootOpts, logger)
	if err != nil {
		formatter.Error(ErrCodeConfig, err.Error(), nil)
		return WrapExitError(ExitCommandError, "configuration", err)
	}

	prog, err := expr.Parse(src)
	if err != nil {
		formatter.Error(ErrCodeParse, err.Error(), map[string]string{"file": input})
		return WrapExitError(ExitFailure, "parsing "+input, err)
	}
	formatter.VerboseLog("Parsed %d statement(s) from %s", prog.Len(), input)

	bindings, err := expr.NewEvaluator(m, logger).Run(prog)
	if err != nil {
		formatter.Error(ErrCodeEval, err.Error(), map[string]string{"file": input})
		return WrapExitError(ExitFailure, "evaluating "+input, err)
	}

	if opts.Stats {
		fmt.Fprintln(formatter.GetErrWriter(), m.Stats())
	}
	if opts.Docs != "" {
		if err := writeDocs(m, opts.Docs); err != nil {
			formatter.Error(ErrCodeIO, err.Error(), nil)
			return WrapExitError(ExitCommandError, "writing documentation", err)
		}
	}
	if opts.Dot != "" {
		return printDot(formatter, bindings, opts.Dot)
	}

	results := make([]Result, len(bindings))
	for k, b := range bindings {
		results[k] = describe(m, b)
	}
	if formatter.Format == "json" {
		return formatter.Success(results)
	}
	return formatter.Success(formatResults(formatter, results))
}

func readInput(input string, stdin io.Reader) (string, error) {
	if input == "-" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(input)
	return string(b), err
}

func writeDocs(m *aadd.Manager, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.WriteDocs(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printDot(formatter *OutputFormatter, bindings []expr.Binding, name string) error {
	for _, b := range bindings {
		if b.Name != name {
			continue
		}
		if b.Value.IsBool() {
			return b.Value.Bool.PrintDot(formatter.Writer)
		}
		return b.Value.Real.PrintDot(formatter.Writer)
	}
	msg := fmt.Sprintf("no variable called %s", name)
	formatter.Error(ErrCodeEval, msg, nil)
	return NewExitError(ExitFailure, msg)
}

// describe computes the bounds of a real value, or the paths of a Boolean
// value.
func describe(m *aadd.Manager, b expr.Binding) Result {
	res := Result{Name: b.Name, Line: b.Pos.Line}
	if b.Value.IsBool() {
		d := b.Value.Bool
		res.Kind = "bool"
		res.Leaves, res.Height = d.NumLeaves(), d.Height()
		res.True, res.False = m.NumTrue(d), m.NumFalse(d)
		switch {
		case d.IsInfeasible():
			res.Value = "infeasible"
		case d.IsLeaf():
			res.Value = strings.ToLower(d.Value().String())
		default:
			res.Value = "unknown"
		}
		return res
	}
	d := b.Value.Real
	r := m.Bounds(d)
	res.Kind = "real"
	res.Leaves, res.Height = d.NumLeaves(), d.Height()
	res.Range = r.String()
	if !r.IsTrap() {
		lo, hi := r.Min(), r.Max()
		res.Min, res.Max = &lo, &hi
	}
	return res
}

func formatResults(formatter *OutputFormatter, results []Result) string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	for _, r := range results {
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("line %d", r.Line)
		}
		if r.Kind == "bool" {
			fmt.Fprintf(tw, "%s\t%s\ttrue=%d false=%d\n", formatter.Bold(name), r.Value, r.True, r.False)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\tleaves=%d height=%d\n", formatter.Bold(name), r.Range, r.Leaves, r.Height)
	}
	tw.Flush()
	return strings.TrimRight(sb.String(), "\n")
}
