package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/macrolens/backend/internal/scheduler"
	"github.com/macrolens/backend/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command.
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run and inspect the refresh scheduler",
	Long: `Starts the scheduler daemon or manages its jobs.

Registered jobs:
  series_ingestion         - weekdays 22:30 UTC (provider series)
  correlation_refresh      - weekdays 23:00 UTC (rolling windows)
  factor_snapshot_refresh  - weekdays 23:30 UTC (macro factors)
  calendar_scrape          - every 4 hours (upcoming events)
  diagnostics              - weekdays 06:00 UTC (invariant checks)

Example:
  go run ./cmd/macrolens scheduler start
  go run ./cmd/macrolens scheduler run correlation_refresh`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the scheduler daemon",
		RunE:  runScheduler,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "Run one job immediately and wait for it",
		Args:  cobra.ExactArgs(1),
		RunE:  runSingleJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

// buildJobs wires every scheduled job.
func buildJobs(a *app) []scheduler.Job {
	return []scheduler.Job{
		jobs.NewIngestionJob(a.provider, a.observations, nil, a.cfg, a.log),
		jobs.NewCorrelationRefreshJob(a.observations, a.correlations, a.universe, a.log),
		jobs.NewSnapshotRefreshJob(a.deriver, a.snapshots, a.universe, a.log),
		jobs.NewCalendarScrapeJob(a.scraper, a.calendar, a.log),
		jobs.NewDiagnosticsJob(a.engine, a.log),
	}
}

// buildScheduler registers every job with a fresh scheduler.
func buildScheduler(a *app) (*scheduler.Scheduler, error) {
	sched := scheduler.New(a.log)
	for _, job := range buildJobs(a) {
		if err := sched.AddJob(job); err != nil {
			return nil, fmt.Errorf("register job %s: %w", job.Name(), err)
		}
	}
	return sched, nil
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== MacroLens Scheduler ===")

	a, err := initApp()
	if err != nil {
		return err
	}
	defer a.close()

	sched, err := buildScheduler(a)
	if err != nil {
		return err
	}

	sched.Start()

	fmt.Println("Scheduler started. Registered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Printf("  - %s\n", jobName)
	}
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}

func runSingleJob(cmd *cobra.Command, args []string) error {
	a, err := initApp()
	if err != nil {
		return err
	}
	defer a.close()

	jobName := args[0]
	for _, job := range buildJobs(a) {
		if job.Name() != jobName {
			continue
		}
		fmt.Printf("Running job %s...\n", jobName)
		if err := job.Run(context.Background()); err != nil {
			return fmt.Errorf("job %s: %w", jobName, err)
		}
		fmt.Println("Done")
		return nil
	}
	return fmt.Errorf("job %s not found", jobName)
}
