package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/spf13/cobra"

	"hf-council/internal/http"
)

const shutdownTimeout = 10 * time.Second

var portFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serve the council over HTTP:

  POST /api/ask          ask one model
  POST /api/council      convene the council
  GET  /api/runs         list recent runs
  GET  /api/runs/{id}    one run as JSON
  GET  /runs/{id}        one run as an HTML page
  GET  /api/health       health check`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := loadDependencies()
		if err != nil {
			return err
		}
		defer func() {
			_ = deps.Close()
		}()

		port := deps.APIPort
		if portFlag != "" {
			port = portFlag
		}
		return runServe(cmd.Context(), deps, ":"+port)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&portFlag, "port", "p", "", "Port to listen on (default API_PORT)")
}

// runServe serves until ctx is done, then shuts down gracefully.
func runServe(ctx context.Context, deps *Dependencies, addr string) error {
	server := &nethttp.Server{
		Addr:              addr,
		Handler:           http.NewRouter(&http.Deps{CouncilService: deps.Service}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("starting API server", "addr", addr, "members", len(deps.Service.Members()))
	fmt.Fprintf(deps.Out, "Listening on %s\n", addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, nethttp.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("API server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("API server shutdown: %w", err)
	}
	return nil
}
