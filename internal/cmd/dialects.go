package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/cheerioskun/findninja/internal/regex"
	"github.com/spf13/cobra"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	defaultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var dialectSummaries = map[regex.RegexDialect]string{
	regex.EmacsStyle:    `\( \) groups, \| alternation, \{m,n\} intervals, bare + and ?`,
	regex.GrepStyle:     `\( \) groups, \| alternation, \{m,n\} intervals, \+ \?, \< \> \w \b`,
	regex.PosixBasic:    `\( \) groups, \{m,n\} intervals, no alternation, + and ? are literal`,
	regex.PosixExtended: `( ) groups, | alternation, {m,n} intervals, bare + and ?`,
}

func newDialectsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the supported regex dialects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headerStyle.Render("Regex dialects"))
			for _, d := range regex.AllDialects() {
				name := fmt.Sprintf("  %-16s", d.String())
				if d == a.settings.Dialect {
					name = defaultStyle.Render(fmt.Sprintf("* %-16s", d.String()))
				}
				fmt.Fprintf(out, "%s %s\n", name, mutedStyle.Render(dialectSummaries[d]))
			}
			return nil
		},
	}
}
