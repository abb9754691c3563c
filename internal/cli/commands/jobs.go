package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jobdeck-dev/jobdeck/internal/api"
	"github.com/jobdeck-dev/jobdeck/internal/cache"
	"github.com/jobdeck-dev/jobdeck/internal/logger"
)

// NewJobsCmd creates the jobs command group
func NewJobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Browse and manage job postings",
	}

	cmd.AddCommand(newJobsListCmd())
	cmd.AddCommand(newJobsPostCmd())
	cmd.AddCommand(newJobsCloseCmd())
	cmd.AddCommand(newJobsWatchCmd())

	return cmd
}

func newJobsListCmd() *cobra.Command {
	var status, backendAlias string
	var offline bool

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List job postings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobsList(status, backendAlias, offline)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (open|closed)")
	cmd.Flags().StringVar(&backendAlias, "backend", "", "Backend alias from jobdeck.json")
	cmd.Flags().BoolVar(&offline, "offline", false, "Read from the local cache instead of the backend")

	return cmd
}

func runJobsList(status, backendAlias string, offline bool) error {
	if offline {
		c, err := openCache()
		if err != nil {
			return err
		}
		defer c.Close()
		jobs, err := c.Jobs(status)
		if err != nil {
			return err
		}
		printJobs(jobs)
		return nil
	}

	env, err := newSessionEnv(backendAlias, false)
	if err != nil {
		return err
	}

	if err := env.requireAuth(); err != nil {
		return err
	}

	jobs, err := env.client.Jobs(cmdContext(), env.accessToken(), status)
	if err != nil {
		return fmt.Errorf("failed to list jobs: %w", err)
	}

	// Cache failures never break the listing.
	if c, err := openCache(); err == nil {
		if err := c.ReplaceJobs(jobs); err != nil {
			log := logger.GetLogger()
			log.Warn().Err(err).Msg("Failed to update job cache")
		}
		c.Close()
	}

	printJobs(jobs)
	return nil
}

func printJobs(jobs []api.Job) {
	if len(jobs) == 0 {
		fmt.Println("No jobs found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCOMPANY\tLOCATION\tSTATUS\tPOSTED")
	for _, job := range jobs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			job.ID, job.Title, job.Company, job.Location, job.Status,
			job.CreatedAt.Format("2006-01-02"))
	}
	w.Flush()
}

// openCache opens the local cache at the configured or default path.
func openCache() (*cache.Cache, error) {
	path := os.Getenv("JOBDECK_CACHE_PATH")
	if path == "" {
		var err error
		path, err = cache.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return cache.Open(path)
}

func newJobsPostCmd() *cobra.Command {
	var title, company, location, description, backendAlias string

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a new job listing (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobsPost(title, company, location, description, backendAlias)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Job title")
	cmd.Flags().StringVar(&company, "company", "", "Company name")
	cmd.Flags().StringVar(&location, "location", "", "Job location")
	cmd.Flags().StringVar(&description, "description", "", "Job description")
	cmd.Flags().StringVar(&backendAlias, "backend", "", "Backend alias from jobdeck.json")

	return cmd
}

func runJobsPost(title, company, location, description, backendAlias string) error {
	if title == "" || company == "" {
		return fmt.Errorf("title and company are required (use --title and --company flags)")
	}

	env, err := newSessionEnv(backendAlias, false)
	if err != nil {
		return err
	}

	if err := env.requireAuth(); err != nil {
		return err
	}
	if !env.manager.State().User.IsAdministrative() {
		return fmt.Errorf("posting jobs requires an administrative account")
	}

	job, err := env.client.CreateJob(cmdContext(), env.accessToken(), api.CreateJobRequest{
		Title:       title,
		Company:     company,
		Location:    location,
		Description: description,
	})
	if err != nil {
		return fmt.Errorf("failed to post job: %w", err)
	}

	fmt.Println("✓ Job posted!")
	fmt.Printf("  ID:    %s\n", job.ID)
	fmt.Printf("  Title: %s @ %s\n", job.Title, job.Company)

	return nil
}

func newJobsCloseCmd() *cobra.Command {
	var backendAlias string

	cmd := &cobra.Command{
		Use:   "close <job-id>",
		Short: "Close a job posting (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobsClose(args[0], backendAlias)
		},
	}

	cmd.Flags().StringVar(&backendAlias, "backend", "", "Backend alias from jobdeck.json")

	return cmd
}

func runJobsClose(jobID, backendAlias string) error {
	env, err := newSessionEnv(backendAlias, false)
	if err != nil {
		return err
	}

	if err := env.requireAuth(); err != nil {
		return err
	}
	if !env.manager.State().User.IsAdministrative() {
		return fmt.Errorf("closing jobs requires an administrative account")
	}

	if err := env.client.CloseJob(cmdContext(), env.accessToken(), jobID); err != nil {
		return fmt.Errorf("failed to close job: %w", err)
	}

	fmt.Printf("✓ Job %s closed\n", jobID)
	return nil
}
