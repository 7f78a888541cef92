package main

import (
	"github.com/aretw0/actiongraph/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <graph>",
	Short: "Fire entries and tick a graph for a number of frames",
	Long: `Loads the graph, invokes every --fire entry in order, then ticks --frames
frames of --dt each, printing the --watch sockets after every frame.`,
	Example: `  actiongraph run door.yaml --fire fade.Start --frames 4 --dt 250ms --watch fade.Value`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		fire, _ := cmd.Flags().GetStringArray("fire")
		watch, _ := cmd.Flags().GetStringArray("watch")
		frames, _ := cmd.Flags().GetInt("frames")
		dt, _ := cmd.Flags().GetDuration("dt")
		state, _ := cmd.Flags().GetString("state")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		return cli.Execute(ctx, cli.RunOptions{
			GraphPath: args[0],
			Fire:      fire,
			Frames:    frames,
			DT:        dt,
			State:     state,
			Watch:     watch,
			Debug:     debug,
			Out:       cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringArray("fire", nil, "Entry to invoke as node.Entry (repeatable)")
	runCmd.Flags().StringArray("watch", nil, "Socket to print as node.Socket (repeatable)")
	runCmd.Flags().Int("frames", 0, "Number of frames to tick")
	runCmd.Flags().Duration("dt", 0, "Elapsed time per frame (default 1/60s)")
	runCmd.Flags().String("state", "", "Initial state override")
}
