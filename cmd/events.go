package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pulse/api"
)

func newEventsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Send and inspect events",
	}
	cmd.AddCommand(
		newEventsSendCmd(a),
		newEventsGetCmd(a),
		newEventsListCmd(a),
	)
	return cmd
}

func newEventsSendCmd(a *app) *cobra.Command {
	var (
		name     string
		data     string
		dataFile string
		user     string
		id       string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send an event to the ingest gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return errors.New("--name is required")
			}
			if data == "" && dataFile == "" {
				return errors.New("--data or --data-file is required")
			}

			raw := []byte(data)
			source := "--data"
			if dataFile != "" {
				b, err := os.ReadFile(dataFile)
				if err != nil {
					return fmt.Errorf("read --data-file (%s): %w", dataFile, err)
				}
				raw = b
				source = fmt.Sprintf("--data-file (%s)", dataFile)
			}

			var payload any
			if err := json.Unmarshal(raw, &payload); err != nil {
				return fmt.Errorf("invalid JSON in %s: %w", source, err)
			}

			var userMap map[string]any
			if user != "" {
				if err := json.Unmarshal([]byte(user), &userMap); err != nil {
					return fmt.Errorf("invalid JSON in --user: %w", err)
				}
			}

			res, err := a.client.SendEvent(api.SendOptions{
				ID:   id,
				Name: name,
				Data: payload,
				User: userMap,
			})
			if err != nil {
				return err
			}
			return a.fmtr.Write(res)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Event name")
	cmd.Flags().StringVar(&data, "data", "", "Event payload as a JSON string")
	cmd.Flags().StringVar(&dataFile, "data-file", "", "Read the event payload from a JSON file")
	cmd.Flags().StringVar(&user, "user", "", "User attribution as a JSON object")
	cmd.Flags().StringVar(&id, "id", "", "Dedup id (generated when omitted)")
	return cmd
}

func newEventsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <event-id>",
		Short: "Fetch one event by id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("Event ID is required")
			}
			ev, err := a.client.GetEvent(args[0])
			if err != nil {
				return err
			}
			return a.fmtr.Write(ev)
		},
	}
}

func newEventsListCmd(a *app) *cobra.Command {
	var (
		name  string
		limit int
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List recent events",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := a.client.ListEvents(api.ListEventsOptions{
				Name:  name,
				Limit: limit,
			})
			if err != nil {
				return err
			}
			return a.fmtr.Write(events)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Filter by event name")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of events")
	return cmd
}
