// ont-viewer serves the paginated history of ONT deletions recorded by
// ont-cleaner.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nanoncore/ont-cleaner/config"
	"github.com/nanoncore/ont-cleaner/logging"
	"github.com/nanoncore/ont-cleaner/store"
	"github.com/nanoncore/ont-cleaner/viewer"
)

const (
	storeTimeout    = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

type options struct {
	addr    string
	envFile string
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "ont-viewer",
		Short:         "Serve the ONT deletion history over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, opts, stdout)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address, overrides VIEWER_ADDR")
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "file with environment variables, ignored if missing")

	return cmd
}

func serve(ctx context.Context, opts *options, stdout io.Writer) error {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.ViewerAddr = opts.addr
	}

	log, closer, err := logging.New(logging.Options{Level: cfg.LogLevel, Stdout: stdout})
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := cfg.ValidateStore(); err != nil {
		log.WithError(err).Error("Invalid configuration")
		return err
	}

	connectCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	mongo, err := store.ConnectMongo(connectCtx, cfg.Mongo)
	cancel()
	if err != nil {
		log.WithError(err).Error("Failed to connect to MongoDB")
		return err
	}
	defer mongo.Close(context.Background())

	handler, err := viewer.NewHandler(viewer.NewService(mongo), log)
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.ViewerAddr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Warning("Listening on " + cfg.ViewerAddr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Warning("Stopping ONT viewer")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ont-viewer failed:", err)
		os.Exit(1)
	}
}
