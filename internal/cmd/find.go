package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/cheerioskun/findninja/internal/config"
	"github.com/cheerioskun/findninja/internal/export"
	"github.com/cheerioskun/findninja/internal/matchers"
	"github.com/cheerioskun/findninja/internal/models"
	"github.com/cheerioskun/findninja/internal/regex"
	"github.com/cheerioskun/findninja/internal/scanner"
	"github.com/cheerioskun/findninja/internal/utils"
	"github.com/spf13/cobra"
)

type findOptions struct {
	dialect    regex.RegexDialect
	regexes    []string
	iregexes   []string
	excludes   []string
	entryType  string
	print0     bool
	jsonOutput bool
	copyTo     string
	overwrite  bool
	quit       bool
}

func newFindCmd(a *app) *cobra.Command {
	opts := &findOptions{dialect: regex.DefaultDialect()}

	findCmd := &cobra.Command{
		Use:   "find [path]",
		Short: "List entries whose full path matches a pattern",
		Long: `Walk a directory tree and print every entry whose full path matches.

Patterns are matched against the whole path as traversal produces it, starting
with the path argument exactly as given, so a pattern for a file name usually
starts with '.*/'. A match anywhere in the path counts unless the pattern
anchors itself with ^ or $.

Examples:
  findninja find /var/log --regex '.*\.log$'
  findninja find . --regextype posix-extended --regex '.*/[a-z]{3}\.go$'
  findninja find . --iregex '.*/readme.*' --type f
  findninja find src --regex '.*\.go$' --exclude-regex '_test\.go$' --print0`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd.Context(), a, opts, startingPoint(args), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := findCmd.Flags()
	flags.Var(&opts.dialect, config.KeyRegexType, "pattern dialect: emacs, grep, posix-basic or posix-extended")
	flags.StringArrayVar(&opts.regexes, "regex", nil, "path must match this pattern (repeatable)")
	flags.StringArrayVar(&opts.iregexes, "iregex", nil, "like --regex but case-insensitive (repeatable)")
	flags.StringArrayVar(&opts.excludes, "exclude-regex", nil, "drop paths matching this pattern (repeatable)")
	flags.BoolP(config.KeyIgnoreCase, "i", false, "match all patterns case-insensitively")
	flags.StringVar(&opts.entryType, "type", "", "only report files (f) or directories (d)")
	flags.Int(config.KeyMaxDepth, -1, "descend at most this many levels (-1 for no limit)")
	flags.Int(config.KeyMinDepth, 0, "do not report entries above this depth")
	flags.Int(config.KeyWorkers, 0, "goroutines evaluating entries (default from config, number of CPUs)")
	flags.Duration(config.KeyMatchTimeout, 0, "abandon a single match after this long, counting it as a miss (0 for no limit)")
	flags.BoolVar(&opts.print0, "print0", false, "separate paths with NUL instead of newline")
	flags.BoolVar(&opts.jsonOutput, "json", false, "print the result set as JSON")
	flags.BoolVar(&opts.quit, "quit", false, "stop after the first match")
	flags.StringVar(&opts.copyTo, "copy-to", "", "also copy matched entries into this directory, keeping their layout below path")
	flags.BoolVar(&opts.overwrite, "overwrite", false, "let --copy-to replace existing files")

	return findCmd
}

// buildQuery turns resolved settings and find flags into a Query
func buildQuery(s *config.Settings, opts *findOptions, root string) (*models.Query, error) {
	if len(opts.regexes) > 0 && len(opts.iregexes) > 0 {
		return nil, fmt.Errorf("--regex and --iregex cannot be combined; use --ignore-case to fold case for every pattern")
	}

	q := models.NewQuery(root)
	q.Dialect = s.Dialect
	q.IgnoreCase = s.IgnoreCase || len(opts.iregexes) > 0
	q.Type = models.EntryType(opts.entryType)
	q.MinDepth = s.MinDepth
	q.MaxDepth = s.MaxDepth
	q.MatchTimeout = s.MatchTimeout
	q.Quit = opts.quit

	for _, p := range opts.regexes {
		q.AddIncludeRegex(p)
	}
	for _, p := range opts.iregexes {
		q.AddIncludeRegex(p)
	}
	for _, p := range opts.excludes {
		q.AddExcludeRegex(p)
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

func runFind(ctx context.Context, a *app, opts *findOptions, root string, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	q, err := buildQuery(a.settings, opts, root)
	if err != nil {
		return err
	}

	// Every pattern is compiled here, before the first directory is read.
	m, err := matchers.Build(q)
	if err != nil {
		return err
	}

	walker := scanner.NewWalker(a.fs)
	walker.SetWorkers(a.settings.Workers)

	start := time.Now()
	result, err := walker.Find(ctx, q, m, matchers.NewMatcherIO())
	if err != nil {
		return err
	}
	utils.Debug("find %s finished in %s", root, time.Since(start))

	if opts.copyTo != "" {
		summary, err := export.NewService(a.fs).ExportResults(result, export.ExportOptions{
			DestinationPath: opts.copyTo,
			Overwrite:       opts.overwrite,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(errOut, "Copied %d files and %d directories (%d bytes) to %s\n",
			summary.FileCount, summary.DirCount, summary.TotalSize, summary.DestinationPath)
	}

	if opts.jsonOutput {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	sep := "\n"
	if opts.print0 {
		sep = "\x00"
	}
	for _, path := range result.Paths() {
		if _, err := io.WriteString(out, path+sep); err != nil {
			return err
		}
	}
	return nil
}
