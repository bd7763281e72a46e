package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lzjever/open189/internal/callback"
	"github.com/lzjever/open189/internal/config"
	"github.com/lzjever/open189/internal/observability"
	"github.com/lzjever/open189/internal/store"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "open189-callback",
	Short: "Receiver for platform-generated open.189.cn verification codes",
	Long: `open189-callback accepts the verification codes open.189.cn posts to the
callback URL of a randcode send, and serves them back by identifier.

Configuration is read from OPEN189_* environment variables, after the file
named by --env-file.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadCallback(envFile)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		serve(cfg)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file loaded before OPEN189_* variables are read")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(cfg config.Callback) {

	log, _ := observability.NewLogger(cfg.LogLevel)
	defer log.Sync()

	zap.ReplaceGlobals(log)

	reg := prometheus.DefaultRegisterer
	observability.RegisterAll(reg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var codes callback.CodeStore
	if cfg.DBDSN != "" {
		pool, err := store.NewPool(ctx, cfg.DBDSN)
		if err != nil {
			log.Fatal("db connect failed", zap.Error(err))
		}
		defer pool.Close()

		pg := store.NewCodeStore(pool, cfg.CodeTTL)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatal("db schema failed", zap.Error(err))
		}
		codes = pg
	} else {
		log.Warn("OPEN189_DB_DSN not set, keeping codes in memory")
		codes = store.NewMemoryStore(cfg.CodeTTL)
	}

	apiHandler := callback.NewAPI(codes, log, cfg.CodeTTL)
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      apiHandler.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	metricsSrv := &http.Server{
		Addr:    cfg.MetricsAddr,
		Handler: mux,
	}

	go func() {
		log.Info("metrics server starting", zap.String("addr", cfg.MetricsAddr))
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		log.Info("callback server starting", zap.String("addr", cfg.HTTPAddr), zap.Duration("code_ttl", cfg.CodeTTL))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("callback server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down callback server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	_ = metricsSrv.Shutdown(shutdownCtx)

	log.Info("callback server stopped")
}
