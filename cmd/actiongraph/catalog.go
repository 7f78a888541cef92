package main

import (
	"os"

	"github.com/aretw0/actiongraph/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [kind]",
	Short: "Describe the built-in node kinds",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var kind string
		if len(args) > 0 {
			kind = args[0]
		}
		plain, _ := cmd.Flags().GetBool("plain")
		styled := !plain && cmd.OutOrStdout() == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
		return cli.Catalog(kind, styled, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().Bool("plain", false, "Print raw markdown even on a terminal")
}
