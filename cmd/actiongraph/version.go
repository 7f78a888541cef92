package main

import (
	"github.com/aretw0/actiongraph"
	"github.com/aretw0/actiongraph/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of actiongraph",
	Run: func(cmd *cobra.Command, args []string) {
		tui.PrintBanner(cmd.OutOrStdout(), actiongraph.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
