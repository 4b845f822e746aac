package cmd

import (
	"fmt"

	"github.com/cottand/rewrite/ir"
	"github.com/cottand/rewrite/library"
	"github.com/cottand/rewrite/strategy"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var EvalCmd = &cobra.Command{
	Use:          "eval [file.term|-]",
	Short:        "Simplify terms, then compute their value",
	RunE:         runEval,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
}

var (
	evalSettings   *settingsFlags
	evalNoSimplify *bool
)

func init() {
	evalSettings = addSettingsFlags(EvalCmd)
	evalNoSimplify = EvalCmd.Flags().Bool("no-simplify", false, "evaluate terms as written")
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := evalSettings.load()
	if err != nil {
		return err
	}
	table := library.Table()
	for symbol, file := range cfg.Eval.Impls {
		if err := table.LoadFile(ir.Symbol(symbol), file); err != nil {
			return err
		}
	}
	rules, err := library.RuleSet(cfg.Simplify.Rules...)
	if err != nil {
		return err
	}
	cases, err := evalSettings.cases(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, c := range cases {
		term := c.Input
		if !*evalNoSimplify {
			if term, _, err = strategy.Simplify(term, rules, strategy.Options{Fuel: cfg.Fuel()}); err != nil {
				return errors.Wrapf(err, "%s: simplifying %s", c.Pos, ir.ExprString(c.Input))
			}
		}
		v, err := table.Eval(term)
		if err != nil {
			return errors.WithMessage(err, c.Pos)
		}
		_, _ = fmt.Fprintln(out, library.Show(v))
	}
	return nil
}
