package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"pulse/style"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			logo := lipgloss.NewStyle().
				Bold(true).
				Foreground(style.Primary).
				Render(`
  ┌─┐┬ ┬┬  ┌─┐┌─┐
  ├─┘│ ││  └─┐├┤
  ┴  └─┘┴─┘└─┘└─┘`)

			fmt.Fprintln(cmd.OutOrStdout(), logo)
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", style.Key.Render("Version"), style.Val.Render(Version))
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", style.Key.Render("API"), style.Val.Render(a.client.APIBase))
			fmt.Fprintln(cmd.OutOrStdout())
		},
	}
}
