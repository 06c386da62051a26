package cmd

import (
	"fmt"

	"github.com/cheerioskun/findninja/internal/config"
	"github.com/cheerioskun/findninja/internal/regex"
	"github.com/cheerioskun/findninja/internal/utils"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries what every command needs once configuration is resolved
type app struct {
	v        *viper.Viper
	fs       afero.Fs
	cfgFile  string
	settings *config.Settings
}

// Execute runs the findninja CLI against the real filesystem
func Execute() error {
	return NewRootCmd(viper.GetViper(), afero.NewOsFs()).Execute()
}

// NewRootCmd builds the command tree. Each call returns independent commands.
func NewRootCmd(v *viper.Viper, fs afero.Fs) *cobra.Command {
	a := &app{v: v, fs: fs}
	v.SetFs(fs)

	rootCmd := &cobra.Command{
		Use:   "findninja",
		Short: "Find files whose full path matches a regex, in emacs, grep or POSIX syntax",
		Long: `findninja walks directory trees and reports every entry whose full path
matches a regular expression, written in one of four classic dialects:

  emacs           (default) \( \) groups, \{m,n\} intervals, + and ? operators
  grep            like posix-basic plus \| \+ \? and word operators
  posix-basic     \( \) groups and \{m,n\} intervals only
  posix-extended  ( ) groups, {m,n} intervals, + ? and |

Defaults can be set in .findninja.yaml, FINDNINJA_* environment variables or a .env file.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default .findninja.yaml in . or $HOME)")
	rootCmd.PersistentFlags().BoolP(config.KeyVerbose, "v", false, "verbose output")
	rootCmd.PersistentFlags().String(config.KeyLogFile, utils.DefaultLogPath, "log file path")

	// Bind flags to viper
	v.BindPFlag(config.KeyVerbose, rootCmd.PersistentFlags().Lookup(config.KeyVerbose))
	v.BindPFlag(config.KeyLogFile, rootCmd.PersistentFlags().Lookup(config.KeyLogFile))

	rootCmd.AddCommand(
		newFindCmd(a),
		newTestCmd(a),
		newDialectsCmd(a),
		newInitCmd(a),
		newTUICmd(a),
	)
	return rootCmd
}

// setup resolves configuration before any command runs
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	if err := config.Init(a.v, a.cfgFile); err != nil {
		return err
	}

	s, err := config.Load(a.v)
	if err != nil {
		return err
	}
	if err := applyFlagOverrides(cmd, s); err != nil {
		return err
	}

	utils.SetLogFile(s.LogFile)
	utils.SetDebug(s.Verbose)
	a.settings = s

	utils.Debug("command %s: regextype=%s ignore-case=%t workers=%d max-depth=%d",
		cmd.Name(), s.Dialect, s.IgnoreCase, s.Workers, s.MaxDepth)
	return nil
}

// applyFlagOverrides lets flags the user actually set win over config values.
// Commands name their flags after the config keys.
func applyFlagOverrides(cmd *cobra.Command, s *config.Settings) error {
	flags := cmd.Flags()

	if f := flags.Lookup(config.KeyRegexType); f != nil && f.Changed {
		d, err := regex.ParseDialect(f.Value.String())
		if err != nil {
			return err
		}
		s.Dialect = d
	}

	var err error
	if flags.Changed(config.KeyIgnoreCase) {
		if s.IgnoreCase, err = flags.GetBool(config.KeyIgnoreCase); err != nil {
			return err
		}
	}
	if flags.Changed(config.KeyMaxDepth) {
		if s.MaxDepth, err = flags.GetInt(config.KeyMaxDepth); err != nil {
			return err
		}
	}
	if flags.Changed(config.KeyMinDepth) {
		if s.MinDepth, err = flags.GetInt(config.KeyMinDepth); err != nil {
			return err
		}
	}
	if flags.Changed(config.KeyWorkers) {
		if s.Workers, err = flags.GetInt(config.KeyWorkers); err != nil {
			return err
		}
		if s.Workers < 1 {
			return fmt.Errorf("--workers must be at least 1, got %d", s.Workers)
		}
	}
	if flags.Changed(config.KeyMatchTimeout) {
		if s.MatchTimeout, err = flags.GetDuration(config.KeyMatchTimeout); err != nil {
			return err
		}
	}
	return nil
}

// startingPoint returns the path argument or "." like find does
func startingPoint(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}
