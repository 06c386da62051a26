package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cheerioskun/findninja/internal/config"
	"github.com/cheerioskun/findninja/internal/models"
	"github.com/cheerioskun/findninja/internal/scanner"
	"github.com/cheerioskun/findninja/internal/utils"
	"github.com/cheerioskun/findninja/ui"
	"github.com/spf13/cobra"
)

func newTUICmd(a *app) *cobra.Command {
	opts := &findOptions{}

	tuiCmd := &cobra.Command{
		Use:   "tui [path]",
		Short: "Try patterns interactively against a directory tree",
		Long: `Walk a directory tree once, then edit include and exclude patterns and watch
the matching paths update as you type.

Keys:
  a / A   add an include / exclude pattern
  e / d   edit / delete the selected pattern
  r       cycle the dialect (emacs, grep, posix-basic, posix-extended)
  i       toggle case-insensitive matching
  Tab     switch between patterns and matches

Examples:
  findninja tui /var/log
  findninja tui . --regextype posix-extended --regex '.*\.(go|mod)$'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, entries, err := scanForTUI(cmd.Context(), a, opts, startingPoint(args))
			if err != nil {
				return err
			}

			program := tea.NewProgram(ui.NewAppModel(q, entries), tea.WithAltScreen())
			utils.Debug("starting TUI over %d entries", len(entries))
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("TUI error: %w", err)
			}
			return nil
		},
	}

	flags := tuiCmd.Flags()
	flags.Var(&opts.dialect, config.KeyRegexType, "initial pattern dialect")
	flags.StringArrayVar(&opts.regexes, "regex", nil, "initial include pattern (repeatable)")
	flags.StringArrayVar(&opts.excludes, "exclude-regex", nil, "initial exclude pattern (repeatable)")
	flags.BoolP(config.KeyIgnoreCase, "i", false, "start with case-insensitive matching")
	flags.StringVar(&opts.entryType, "type", "", "only consider files (f) or directories (d)")
	flags.Int(config.KeyMaxDepth, -1, "descend at most this many levels (-1 for no limit)")
	flags.Int(config.KeyMinDepth, 0, "ignore entries above this depth")

	return tuiCmd
}

// scanForTUI walks root once. Initial patterns are not applied here; the
// tester re-evaluates them itself so they stay editable.
func scanForTUI(ctx context.Context, a *app, opts *findOptions, root string) (*models.Query, []*models.Entry, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	q, err := buildQuery(a.settings, opts, root)
	if err != nil {
		return nil, nil, err
	}

	var entries []*models.Entry
	err = scanner.NewWalker(a.fs).Walk(ctx, q,
		func(e *models.Entry) error {
			entries = append(entries, e)
			return nil
		},
		func(path string, err error) {
			utils.Warning("failed to read directory %s: %v", path, err)
		})
	if err != nil {
		return nil, nil, err
	}
	return q, entries, nil
}
