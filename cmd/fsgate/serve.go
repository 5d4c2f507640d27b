package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yanmxa/fsgate/internal/config"
	"github.com/yanmxa/fsgate/internal/log"
	"github.com/yanmxa/fsgate/internal/mcp"
	"github.com/yanmxa/fsgate/internal/metrics"
	"github.com/yanmxa/fsgate/internal/policy"
	"github.com/yanmxa/fsgate/internal/tool"
)

var (
	serveWatch       bool
	serveMetricsAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the file tools over MCP on stdin/stdout",
	Long: `Serve read_file, list_directory, get_file_info and search_files as an
MCP server speaking newline-delimited JSON-RPC on stdin/stdout.

Examples:
  fsgate serve
  fsgate serve --watch
  fsgate serve --metrics-addr 127.0.0.1:9464`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func init() {
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "Reload settings when a settings file changes")
	serveCmd.Flags().StringVar(&serveMetricsAddr, "metrics-addr", "", "Expose Prometheus metrics at http://<addr>/metrics")

	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	loader := newLoader()
	settings, p, err := loadPolicy(loader)
	if err != nil {
		return err
	}
	store := policy.NewStore(p)
	collector := metrics.NewCollector(nil)

	if serveMetricsAddr != "" {
		srv := &http.Server{
			Addr:              serveMetricsAddr,
			Handler:           metricsMux(collector),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.LogError("metrics server", err)
				fmt.Fprintf(os.Stderr, "metrics server: %v\n", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	if serveWatch {
		watcher, err := config.NewWatcher(loader, store, config.WatcherOptions{
			OnReload: collector.ObserveReload,
		})
		if err != nil {
			return err
		}
		defer watcher.Stop()
		go func() {
			if err := watcher.Watch(ctx); err != nil {
				log.LogError("settings watcher", err)
				fmt.Fprintf(os.Stderr, "settings watcher disabled: %v\n", err)
			}
		}()
	}

	exec := newExecutor(settings, store, collector)
	server := mcp.NewServer(tool.NewFileRegistry(exec), version)

	if log.IsEnabled() {
		log.Logger().Info("serving MCP on stdio",
			zap.Bool("watch", serveWatch),
			zap.String("metrics_addr", serveMetricsAddr))
	}
	// SIGINT and SIGTERM cancel ctx.
	if err := server.Serve(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func metricsMux(collector *metrics.Collector) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	return mux
}
