package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/cheerioskun/findninja/internal/config"
	"github.com/cheerioskun/findninja/internal/regex"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newInitCmd(a *app) *cobra.Command {
	var (
		output string
		force  bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the current settings to a config file",
		Long: `Save the resolved settings (config file, environment and the flags given here)
so later runs use them as defaults.

Examples:
  findninja init
  findninja init --regextype posix-extended --ignore-case
  findninja init --output ~/.findninja.yaml --workers 4 --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := writeSettings(a, output, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to: %s\n", output)
			return nil
		},
	}

	dialect := regex.DefaultDialect()
	flags := initCmd.Flags()
	flags.StringVarP(&output, "output", "o", ".findninja.yaml", "config file to write (.yaml, .json or .toml)")
	flags.BoolVar(&force, "force", false, "overwrite an existing file")
	flags.Var(&dialect, config.KeyRegexType, "default pattern dialect")
	flags.BoolP(config.KeyIgnoreCase, "i", false, "match case-insensitively by default")
	flags.Int(config.KeyMaxDepth, -1, "default maximum depth (-1 for no limit)")
	flags.Int(config.KeyMinDepth, 0, "default minimum depth")
	flags.Int(config.KeyWorkers, 0, "default number of evaluation goroutines")
	flags.Duration(config.KeyMatchTimeout, 0, "default per-match timeout (0 for no limit)")

	return initCmd
}

// writeSettings stores the resolved settings at path through a fresh viper
// instance, so only findninja keys end up in the file.
func writeSettings(a *app, path string, force bool) error {
	exists, err := afero.Exists(a.fs, path)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}
	if exists && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml", ".json", ".toml":
	default:
		return fmt.Errorf("unsupported config format %q (use .yaml, .json or .toml)", filepath.Ext(path))
	}

	s := a.settings
	out := viper.New()
	out.SetFs(a.fs)
	out.Set(config.KeyRegexType, s.Dialect.String())
	out.Set(config.KeyIgnoreCase, s.IgnoreCase)
	out.Set(config.KeyMaxDepth, s.MaxDepth)
	out.Set(config.KeyMinDepth, s.MinDepth)
	out.Set(config.KeyWorkers, s.Workers)
	out.Set(config.KeyMatchTimeout, s.MatchTimeout.String())

	if err := out.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return nil
}
