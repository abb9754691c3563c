package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jobdeck-dev/jobdeck/internal/api"
	"github.com/jobdeck-dev/jobdeck/internal/logger"
)

// NewPlansCmd creates the plans command
func NewPlansCmd() *cobra.Command {
	var backendAlias string
	var offline bool

	cmd := &cobra.Command{
		Use:   "plans",
		Short: "List subscription plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlans(backendAlias, offline)
		},
	}

	cmd.Flags().StringVar(&backendAlias, "backend", "", "Backend alias from jobdeck.json")
	cmd.Flags().BoolVar(&offline, "offline", false, "Read from the local cache instead of the backend")

	return cmd
}

func runPlans(backendAlias string, offline bool) error {
	if offline {
		c, err := openCache()
		if err != nil {
			return err
		}
		defer c.Close()
		plans, err := c.Plans()
		if err != nil {
			return err
		}
		printPlans(plans)
		return nil
	}

	env, err := newSessionEnv(backendAlias, false)
	if err != nil {
		return err
	}

	plans, err := env.client.Plans(cmdContext())
	if err != nil {
		return fmt.Errorf("failed to list plans: %w", err)
	}

	if c, err := openCache(); err == nil {
		if err := c.ReplacePlans(plans); err != nil {
			log := logger.GetLogger()
			log.Warn().Err(err).Msg("Failed to update plan cache")
		}
		c.Close()
	}

	printPlans(plans)
	return nil
}

func printPlans(plans []api.Plan) {
	if len(plans) == 0 {
		fmt.Println("No plans found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tINTERVAL\tJOB LIMIT")
	for _, plan := range plans {
		fmt.Fprintf(w, "%s\t%s\t%.2f %s\t%s\t%d\n",
			plan.ID, plan.Name, float64(plan.PriceCents)/100, plan.Currency,
			plan.Interval, plan.JobLimit)
	}
	w.Flush()
}
