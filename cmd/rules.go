package cmd

import (
	"fmt"

	"github.com/cottand/rewrite/library"
	"github.com/spf13/cobra"
)

var RulesCmd = &cobra.Command{
	Use:          "rules [group...]",
	Short:        "List operations and the rules of each group",
	RunE:         runRules,
	SilenceUsage: true,
}

func runRules(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "operations:")
	for _, op := range library.Env().Operations() {
		_, _ = fmt.Fprintf(out, "  %s\n", op)
	}
	groups := args
	if len(groups) == 0 {
		groups = library.Groups
	}
	for _, group := range groups {
		rs, err := library.RuleSet(group)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "%s:\n", group)
		for _, r := range rs.Rules() {
			_, _ = fmt.Fprintf(out, "  %s\n", r)
		}
	}
	return nil
}
