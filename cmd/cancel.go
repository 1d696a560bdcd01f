package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pulse/api"
)

func newCancelCmd(a *app) *cobra.Command {
	var (
		appID  string
		fnID   string
		after  string
		before string
		ifExpr string
	)

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Bulk-cancel the runs of a function",
		Long: `Cancel every run of a function, optionally bounded by a start-time window.

Window bounds accept an RFC 3339 timestamp or a relative duration like 30m,
12h or 7d, resolved against the current time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if appID == "" {
				return errors.New("--app is required")
			}
			if fnID == "" {
				return errors.New("--function is required")
			}

			now := time.Now()
			opts := api.CancelOptions{
				AppID:      appID,
				FunctionID: fnID,
				If:         ifExpr,
			}
			if after != "" {
				ts, err := api.ResolveTimestamp(after, now)
				if err != nil {
					return fmt.Errorf("--started-after: %w", err)
				}
				opts.After = ts
			}
			if before != "" {
				ts, err := api.ResolveTimestamp(before, now)
				if err != nil {
					return fmt.Errorf("--started-before: %w", err)
				}
				opts.Before = ts
			}

			res, err := a.client.CancelRuns(opts)
			if err != nil {
				return err
			}
			return a.fmtr.Write(res)
		},
	}

	cmd.Flags().StringVar(&appID, "app", "", "App id owning the function")
	cmd.Flags().StringVar(&fnID, "function", "", "Function id whose runs to cancel")
	cmd.Flags().StringVar(&after, "started-after", "", "Only runs started at or after this time (inclusive)")
	cmd.Flags().StringVar(&before, "started-before", "", "Only runs started before this time (exclusive)")
	cmd.Flags().StringVar(&ifExpr, "if", "", "Filter expression evaluated against each run's event")
	return cmd
}
