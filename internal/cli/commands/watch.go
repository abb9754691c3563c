package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/jobdeck-dev/jobdeck/internal/logger"
)

func newJobsWatchCmd() *cobra.Command {
	var schedule, status, backendAlias string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Periodically poll for new job postings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobsWatch(schedule, status, backendAlias)
		},
	}

	cmd.Flags().StringVar(&schedule, "schedule", "@every 5m", "Cron schedule for polling (e.g. '@every 1m' or '0 * * * *')")
	cmd.Flags().StringVar(&status, "status", "open", "Status filter for polled jobs")
	cmd.Flags().StringVar(&backendAlias, "backend", "", "Backend alias from jobdeck.json")

	return cmd
}

func runJobsWatch(schedule, status, backendAlias string) error {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	env, err := newSessionEnv(backendAlias, false)
	if err != nil {
		return err
	}

	if err := env.requireAuth(); err != nil {
		return err
	}

	log := logger.GetLogger()
	seen := make(map[string]bool)

	// One cache handle for the whole watch; opening per tick would leak a
	// connection pool on every poll of a long-running process.
	jobCache, err := openCache()
	if err != nil {
		log.Warn().Err(err).Msg("Cache unavailable, polling without it")
	} else {
		defer jobCache.Close()
	}

	tick := func() {
		// Keep the profile (and mirrored credentials) fresh while the
		// watcher runs; failures are logged inside and never stop the watch.
		env.manager.RefreshProfile(cmdContext())

		jobs, err := env.client.Jobs(cmdContext(), env.accessToken(), status)
		if err != nil {
			log.Warn().Err(err).Msg("Job poll failed")
			return
		}

		for _, job := range jobs {
			if seen[job.ID] {
				continue
			}
			seen[job.ID] = true
			fmt.Printf("NEW  %s  %s @ %s (%s)\n", job.ID, job.Title, job.Company, job.Location)
		}

		if jobCache != nil {
			if err := jobCache.ReplaceJobs(jobs); err != nil {
				log.Warn().Err(err).Msg("Failed to update job cache")
			}
		}
	}

	// Baseline run so only postings that appear after start are reported as new.
	jobs, err := env.client.Jobs(cmdContext(), env.accessToken(), status)
	if err != nil {
		return fmt.Errorf("initial job fetch failed: %w", err)
	}
	for _, job := range jobs {
		seen[job.ID] = true
	}
	fmt.Printf("Watching for new jobs (%d currently listed, schedule %q). Ctrl-C to stop.\n", len(jobs), schedule)

	c := cron.New()
	if _, err := c.AddFunc(schedule, tick); err != nil {
		return fmt.Errorf("failed to schedule watch: %w", err)
	}
	c.Start()
	defer c.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nStopped watching")
	return nil
}
