package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

func newRunsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect function runs",
	}
	cmd.AddCommand(
		newRunsGetCmd(a),
		newRunsListCmd(a),
		newRunsJobsCmd(a),
		newRunsWatchCmd(a),
	)
	return cmd
}

func newRunsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "get <run-id>",
		Short:   "Fetch one run by id",
		Aliases: []string{"status"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("Run ID is required")
			}
			run, err := a.client.GetRun(args[0])
			if err != nil {
				return err
			}
			return a.fmtr.Write(run)
		},
	}
}

func newRunsListCmd(a *app) *cobra.Command {
	var eventID string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List the runs triggered by an event",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if eventID == "" {
				return errors.New("--event is required")
			}
			runs, err := a.client.ListEventRuns(eventID)
			if err != nil {
				return err
			}
			return a.fmtr.Write(runs)
		},
	}

	cmd.Flags().StringVar(&eventID, "event", "", "Event id whose runs to list")
	return cmd
}

func newRunsJobsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "jobs <run-id>",
		Short: "List the jobs of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("Run ID is required")
			}
			jobs, err := a.client.ListRunJobs(args[0])
			if err != nil {
				return err
			}
			return a.fmtr.Write(jobs)
		},
	}
}
