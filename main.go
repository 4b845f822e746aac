package main

import (
	"os"

	"github.com/cottand/rewrite/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "rewrite [subcommand]",
	Short:        "rewrite simplifies typed terms with rewrite rules",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.SimplifyCmd)
	rootCmd.AddCommand(cmd.EvalCmd)
	rootCmd.AddCommand(cmd.RulesCmd)
}
