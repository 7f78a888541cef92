package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/actiongraph/pkg/adapters/file"
	httpAdapter "github.com/aretw0/actiongraph/pkg/adapters/http"
	"github.com/aretw0/actiongraph/pkg/adapters/redis"
	"github.com/aretw0/actiongraph/pkg/domain"
	"github.com/aretw0/actiongraph/pkg/observability"
	"github.com/aretw0/actiongraph/pkg/persistence/middleware"
	"github.com/aretw0/actiongraph/pkg/ports"
	"github.com/aretw0/actiongraph/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ServeOptions contains all the configuration for the serve command.
type ServeOptions struct {
	GraphPath    string
	Addr         string // host:port to listen on
	FPS          int
	State        string
	RedisAddr    string // snapshots go to redis when set, to SnapshotDir otherwise
	SnapshotDir  string
	SnapshotTTL  time.Duration
	SnapshotKey  []byte   // seals snapshots with AES-256-GCM when set
	Redact       []string // cell name patterns left out of snapshots
	Metrics      bool
	Debug        bool
	Out          io.Writer
	ShutdownTime time.Duration

	// Listener overrides Addr; tests pass a pre-bound listener.
	Listener net.Listener
}

// Serve runs the graph on a frame ticker and exposes it over HTTP until ctx
// is cancelled.
func Serve(ctx context.Context, opts ServeOptions) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ShutdownTime <= 0 {
		opts.ShutdownTime = 5 * time.Second
	}
	logger := createLogger(opts.Debug)

	streams := httpAdapter.NewStreamManager(logger)
	hooks := []domain.LifecycleHooks{streams.Hooks()}
	handlerOpts := []httpAdapter.Option{httpAdapter.WithStreams(streams), httpAdapter.WithLogger(logger)}

	if opts.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m, err := observability.NewMetrics(reg)
		if err != nil {
			return err
		}
		hooks = append(hooks, m.Hooks())
		handlerOpts = append(handlerOpts, httpAdapter.WithMetrics(reg))
	}

	store, closeStore, err := createStore(opts)
	if err != nil {
		return err
	}
	defer closeStore()
	handlerOpts = append(handlerOpts, httpAdapter.WithStore(store))

	rt, err := createRuntime(opts.GraphPath, opts.State, opts.Debug, logger, hooks...)
	if err != nil {
		return err
	}
	defer rt.Close()

	loop := runner.New(rt, runner.WithFPS(opts.FPS), runner.WithLogger(logger))
	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           httpAdapter.NewHandler(rt, loop, handlerOpts...),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln := opts.Listener
	if ln == nil {
		if ln, err = net.Listen("tcp", opts.Addr); err != nil {
			return fmt.Errorf("failed to listen on %s: %w", opts.Addr, err)
		}
	}

	loopCtx, stopLoop := context.WithCancel(ctx)
	defer stopLoop()
	go func() { _ = loop.Run(loopCtx) }()

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Serve(ln)
	}()
	printSystemMessage(opts.Out, "Serving %q on %s at %d fps", rt.Name, ln.Addr(), opts.FPS)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), opts.ShutdownTime)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown did not complete", "timeout", opts.ShutdownTime, "error", err)
		_ = srv.Close()
	}
	printSystemMessage(opts.Out, "Server stopped")
	return nil
}

// createStore picks the snapshot backend and wraps it with redaction, then
// encryption, so redacted cells never reach the ciphertext.
func createStore(opts ServeOptions) (ports.SnapshotStore, func(), error) {
	var mws []middleware.Middleware
	if len(opts.Redact) > 0 {
		mw, err := middleware.NewRedaction(opts.Redact)
		if err != nil {
			return nil, nil, err
		}
		mws = append(mws, mw)
	}
	if len(opts.SnapshotKey) > 0 {
		mw, err := middleware.NewEncryption(middleware.EncryptionConfig{ActiveKey: opts.SnapshotKey})
		if err != nil {
			return nil, nil, err
		}
		mws = append(mws, mw)
	}

	if opts.RedisAddr != "" {
		var ropts []redis.Option
		if opts.SnapshotTTL > 0 {
			ropts = append(ropts, redis.WithTTL(opts.SnapshotTTL))
		}
		s := redis.New(opts.RedisAddr, "", 0, ropts...)
		return middleware.Chain(s, mws...), func() { _ = s.Close() }, nil
	}
	return middleware.Chain(file.NewStore(opts.SnapshotDir), mws...), func() {}, nil
}
