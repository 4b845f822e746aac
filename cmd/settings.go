package cmd

import (
	"io"
	"os"

	"github.com/cottand/rewrite/config"
	"github.com/cottand/rewrite/internal/log"
	"github.com/cottand/rewrite/library"
	"github.com/cottand/rewrite/syntax"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// common flags of every subcommand
type settingsFlags struct {
	configPath *string
	logLevel   *string
	expr       *string
}

func addSettingsFlags(c *cobra.Command) *settingsFlags {
	return &settingsFlags{
		configPath: c.Flags().StringP("config", "c", "", "path to a YAML configuration file"),
		logLevel:   c.Flags().StringP("log-level", "l", "", "log level, overrides the configuration"),
		expr:       c.Flags().StringP("expr", "e", "", "term to process instead of reading a file"),
	}
}

// load reads the configuration and applies its logging settings
func (f *settingsFlags) load() (*config.Config, error) {
	cfg := config.Default()
	if *f.configPath != "" {
		loaded, err := config.Load(*f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if *f.logLevel != "" {
		cfg.Log.Level = *f.logLevel
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, errors.Wrap(err, "invalid log level")
	}
	log.SetLevel(level)
	if len(cfg.Log.Sections) > 0 {
		log.EnableSections(cfg.Log.Sections...)
	}
	log.DefaultLogger.Debug("loaded configuration", "section", "cmd", "fuel", cfg.Fuel(), "rules", cfg.Simplify.Rules)
	return cfg, nil
}

// cases reads the terms to process, from --expr or from the file named by args
func (f *settingsFlags) cases(c *cobra.Command, args []string) ([]syntax.Case, error) {
	parser := syntax.NewParser(library.Env())
	if *f.expr != "" {
		term, err := parser.ParseTerm(*f.expr)
		if err != nil {
			return nil, err
		}
		return []syntax.Case{{Pos: "expr", Input: term}}, nil
	}
	if len(args) == 0 {
		return nil, errors.New("expected a file to read terms from, or --expr")
	}
	var src []byte
	var err error
	if args[0] == "-" {
		src, err = io.ReadAll(c.InOrStdin())
	} else {
		src, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", args[0])
	}
	return parser.ParseCases(args[0], string(src))
}
