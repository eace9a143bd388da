package cmd

import (
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/nekorytaylor666/infobuh-sub000/internal/platform/metrics"
)

// metricsCmd serves the Prometheus metrics endpoint.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Serve Prometheus metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())

		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			<-cmd.Context().Done()
			_ = srv.Close()
		}()

		logger.Info("Serving metrics", "addr", cfg.MetricsAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}
