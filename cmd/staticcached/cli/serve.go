package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meigma/filecache/cache"
	"github.com/meigma/filecache/internal/httpfs"
)

const shutdownGrace = 5 * time.Second

func init() {
	serveCmd.Flags().String("root", "", "directory to serve (overrides config)")
	serveCmd.Flags().String("addr", "", "listen address (overrides config)")
	serveCmd.Flags().Int("cache-bytes", 0, "size limit for resident bytes (overrides config)")
	serveCmd.Flags().Int("min-file-bytes", 0, "never retain files smaller than this")
	serveCmd.Flags().Int("max-file-bytes", 0, "never retain files larger than this")

	//nolint:errcheck // flags are defined above, Lookup cannot return nil here
	viper.BindPFlag("root", serveCmd.Flags().Lookup("root"))
	viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("cache_bytes", serveCmd.Flags().Lookup("cache-bytes"))
	viper.BindPFlag("min_file_bytes", serveCmd.Flags().Lookup("min-file-bytes"))
	viper.BindPFlag("max_file_bytes", serveCmd.Flags().Lookup("max-file-bytes"))

	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a directory over HTTP through the in-memory cache",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	root := viper.GetString("root")
	addr := viper.GetString("addr")
	cacheBytes := viper.GetInt("cache_bytes")
	minFileBytes := viper.GetInt("min_file_bytes")
	maxFileBytes := viper.GetInt("max_file_bytes")

	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	builder := cache.NewBuilder(cacheBytes).WithLogger(logger)
	if minFileBytes > 0 {
		builder = builder.WithMinFileBytes(minFileBytes)
	}
	if maxFileBytes > 0 {
		builder = builder.WithMaxFileBytes(maxFileBytes)
	}
	engine, err := builder.Build()
	if err != nil {
		return err
	}

	handler := httpfs.NewHandler(engine, root, logger)
	mux := http.NewServeMux()
	mux.Handle("/", handler)
	mux.Handle("/debug/cache", httpfs.StatsHandler(engine))

	srv := &http.Server{Addr: addr, Handler: mux}

	logger.Info("serving",
		"root", root,
		"addr", addr,
		"cache_limit", humanize.IBytes(uint64(cacheBytes)), //nolint:gosec // cacheBytes is validated > 0 by Builder
	)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down",
			"resident_entries", engine.Stats().ResidentEntries,
			"used_bytes", humanize.IBytes(uint64(engine.Stats().UsedBytes))) //nolint:gosec // UsedBytes is never negative
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	}
}
