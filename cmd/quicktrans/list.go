package main

import (
	"fmt"

	"github.com/oukeidos/quicktrans/internal/language"
	"github.com/oukeidos/quicktrans/internal/metadata"
	"github.com/oukeidos/quicktrans/internal/provider"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List known languages and providers",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Known Languages (any other name is passed to the model as-is):")
			for _, l := range language.List() {
				fmt.Fprintf(out, "  %-35s [%s]\n", l.Name, l.Code)
			}
			fmt.Fprintln(out, "\nProviders and known models:")
			for _, name := range provider.Default.Names() {
				def, _ := metadata.DefaultModel(name)
				fmt.Fprintf(out, "  %s\n", name)
				for _, m := range metadata.ForProvider(name) {
					mark := ""
					if m.ID == def {
						mark = " (default)"
					}
					fmt.Fprintf(out, "    %-28s %s%s\n", m.ID, m.Label, mark)
				}
			}
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), cmd.Root().Version)
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
