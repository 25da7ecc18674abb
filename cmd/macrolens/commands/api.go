package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/macrolens/backend/internal/api"
)

// apiCmd represents the api command.
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP API server",
	Long: `Starts the read-only REST API with the scheduler running in
the same process.

Endpoints:
  GET /health                   - health check
  GET /api/v1/bias/{symbol}     - macro bias and narrative
  GET /api/v1/tactical          - tactical table for the universe
  GET /api/v1/radar             - ranked opportunities
  GET /api/v1/diagnostics       - invariant checks and job stats
  GET /api/v1/history/{symbol}  - historical signal confidence

Example:
  go run ./cmd/macrolens api
  go run ./cmd/macrolens api --port 8090`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== MacroLens API Server ===")

	a, err := initApp()
	if err != nil {
		return err
	}
	defer a.close()

	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	sched, err := buildScheduler(a)
	if err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	server := api.NewServer(a.cfg, a.engine, sched, a.db, a.log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
