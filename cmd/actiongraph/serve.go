package main

import (
	"encoding/hex"
	"fmt"
	"net"
	"os"

	"github.com/aretw0/actiongraph/internal/cli"
	"github.com/aretw0/actiongraph/pkg/runner"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve <graph>",
	Short: "Run the graph and expose it over HTTP",
	Long: `Ticks the graph on a fixed frame rate and exposes invocation, socket
access, snapshots, an SSE event stream and optional Prometheus metrics.
Set ACTIONGRAPH_SNAPSHOT_KEY to a hex-encoded 32-byte key to encrypt snapshots.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		port, _ := cmd.Flags().GetString("port")
		fps, _ := cmd.Flags().GetInt("fps")
		state, _ := cmd.Flags().GetString("state")
		redisAddr, _ := cmd.Flags().GetString("redis")
		ttl, _ := cmd.Flags().GetDuration("snapshot-ttl")
		dir, _ := cmd.Flags().GetString("snapshots")
		metrics, _ := cmd.Flags().GetBool("metrics")
		redact, _ := cmd.Flags().GetStringArray("redact")

		var key []byte
		if hexKey := os.Getenv("ACTIONGRAPH_SNAPSHOT_KEY"); hexKey != "" {
			var err error
			if key, err = hex.DecodeString(hexKey); err != nil {
				return fmt.Errorf("ACTIONGRAPH_SNAPSHOT_KEY: %w", err)
			}
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		return cli.Serve(ctx, cli.ServeOptions{
			GraphPath:   args[0],
			Addr:        net.JoinHostPort("", port),
			FPS:         fps,
			State:       state,
			RedisAddr:   redisAddr,
			SnapshotDir: dir,
			SnapshotTTL: ttl,
			SnapshotKey: key,
			Redact:      redact,
			Metrics:     metrics,
			Debug:       debug,
			Out:         cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().Int("fps", runner.DefaultFPS, "Frames per second")
	serveCmd.Flags().String("state", "", "Initial state override")
	serveCmd.Flags().String("redis", "", "Redis address for snapshots (default: files)")
	serveCmd.Flags().Duration("snapshot-ttl", 0, "Expiry for redis snapshots (0 keeps them)")
	serveCmd.Flags().String("snapshots", "", "Snapshot directory (default .actiongraph/snapshots)")
	serveCmd.Flags().StringArray("redact", nil, "Regexp of cell names left out of snapshots (repeatable)")
	serveCmd.Flags().Bool("metrics", false, "Expose Prometheus metrics on /metrics")
}
