package cmd

import (
	"fmt"

	"github.com/cottand/rewrite/ir"
	"github.com/cottand/rewrite/library"
	"github.com/cottand/rewrite/strategy"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var SimplifyCmd = &cobra.Command{
	Use:          "simplify [file.term|-]",
	Short:        "Rewrite terms until no rule applies",
	Long:         "Rewrite every term of the file until no rule applies. Terms followed by '=> expected' are checked against it.",
	RunE:         runSimplify,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
}

var (
	simplifySettings *settingsFlags
	simplifyTrace    *bool
	simplifyRules    *[]string
	simplifyTyped    *bool
)

func init() {
	simplifySettings = addSettingsFlags(SimplifyCmd)
	simplifyTrace = SimplifyCmd.Flags().BoolP("trace", "t", false, "print every rewrite step")
	simplifyTyped = SimplifyCmd.Flags().Bool("types", false, "print the type of every operation")
	simplifyRules = SimplifyCmd.Flags().StringSliceP("rules", "r", nil, "rule groups to use, overrides the configuration")
}

func runSimplify(cmd *cobra.Command, args []string) error {
	cfg, err := simplifySettings.load()
	if err != nil {
		return err
	}
	groups := cfg.Simplify.Rules
	if len(*simplifyRules) > 0 {
		groups = *simplifyRules
	}
	rules, err := library.RuleSet(groups...)
	if err != nil {
		return err
	}
	cases, err := simplifySettings.cases(cmd, args)
	if err != nil {
		return err
	}

	show := ir.ExprString
	if *simplifyTyped {
		show = ir.ExprStringTyped
	}
	out := cmd.OutOrStdout()
	failed := 0
	for _, c := range cases {
		result, trace, err := strategy.Simplify(c.Input, rules, strategy.Options{Fuel: cfg.Fuel()})
		if *simplifyTrace {
			for _, step := range trace {
				_, _ = fmt.Fprintf(out, "  %s\n", step)
			}
		}
		if err != nil {
			return errors.Wrapf(err, "%s: simplifying %s", c.Pos, ir.ExprString(c.Input))
		}
		_, _ = fmt.Fprintln(out, show(result))
		if c.Expected != nil && !ir.Equal(result, c.Expected) {
			failed++
			_, _ = fmt.Fprintf(out, "%s: expected %s\n", c.Pos, show(c.Expected))
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d terms did not simplify to what was expected", failed, len(cases))
	}
	return nil
}
