package cmd

import (
	"fmt"

	"github.com/cheerioskun/findninja/internal/config"
	"github.com/cheerioskun/findninja/internal/regex"
	"github.com/spf13/cobra"
)

func newTestCmd(a *app) *cobra.Command {
	dialect := regex.DefaultDialect()

	testCmd := &cobra.Command{
		Use:   "test <pattern> <path>...",
		Short: "Check paths against a pattern without touching the filesystem",
		Long: `Compile a pattern once and report, for every path argument, whether it matches.

Useful for seeing how the dialects differ:
  findninja test --regextype posix-basic '.*/ab\{1,3\}c' /tmp/abbbc
  findninja test --regextype posix-extended '.*/ab{1,3}c' /tmp/abbbc`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.settings
			m, err := regex.Compile(s.Dialect, args[0], s.IgnoreCase, regex.WithMatchTimeout(s.MatchTimeout))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range args[1:] {
				verdict := "no match"
				if m.Matches(path) {
					verdict = "match"
				}
				fmt.Fprintf(out, "%s\t%s\n", verdict, path)
			}
			return nil
		},
	}

	testCmd.Flags().Var(&dialect, config.KeyRegexType, "pattern dialect: emacs, grep, posix-basic or posix-extended")
	testCmd.Flags().BoolP(config.KeyIgnoreCase, "i", false, "match case-insensitively")
	testCmd.Flags().Duration(config.KeyMatchTimeout, 0, "abandon the match after this long (0 for no limit)")
	return testCmd
}
