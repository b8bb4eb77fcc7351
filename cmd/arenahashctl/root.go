// Command arenahashctl is a small operational front end for arenahash
// tables persisted as flat files: create a fixed-size file, then put, get,
// remove, probe and inspect keys in it without ever growing the file.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gostonefire/arenahash/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var (
	metricsAddr string
	logLevel    string

	logger   *slog.Logger
	observer *observability.PrometheusObserver
)

var rootCmd = &cobra.Command{
	Use:   "arenahashctl",
	Short: "Inspect and manipulate fixed-memory arenahash table files",
	Long: `arenahashctl operates on flat files laid out by arenahash.Create: a
fixed-size buffer holding a header, bucket array and record arena. It never
resizes the file; every command either fits within the existing buffer or
fails with no_space.`,
	Version:           "0.1.0",
	PersistentPreRunE: setup,
}

func setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if logLevel == "debug" {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if metricsAddr != "" {
		reg := prometheus.NewRegistry()
		observer = observability.NewPrometheusObserver(reg)

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			logger.Info("metrics server listening", "addr", metricsAddr)
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				logger.Error("metrics server exited", "error", err)
			}
		}()
	}

	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Address to serve Prometheus metrics on (e.g. :9090); disabled if empty")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: info or debug")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	execute()
}
