package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"pulse/api"
	"pulse/format"
)

// Version is set via ldflags at build time.
var Version = "dev"

// app carries the flag state and the per-invocation client/formatter shared
// by every command in the tree.
type app struct {
	pretty  bool
	output  string
	dev     bool
	port    int
	verbose bool

	client *api.Client
	fmtr   *format.Formatter
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	a := &app{}
	root := newRootCmd(a)
	if err := root.Execute(); err != nil {
		f := a.fmtr
		if f == nil {
			// Flag parsing failed before the formatter existed.
			f = format.New(false, "")
		}
		f.Error(err)
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "pulse",
		Short: "Client for the Pulse event and workflow platform",
		Long: `Pulse CLI — send events, inspect function runs, and cancel work in bulk.

Talks to the hosted platform by default; pass --dev to target a local dev
server instead.`,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.WarnLevel)
			}
			a.client = api.New(api.Options{Dev: a.dev, Port: a.port})
			a.fmtr = format.New(a.pretty, a.output)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			cmd.SilenceUsage = false
			return fmt.Errorf("Unknown command %q", args[0])
		},
	}

	root.PersistentFlags().BoolVar(&a.pretty, "pretty", false, "Render results as colorized text")
	root.PersistentFlags().StringVar(&a.output, "output", "", "Write the JSON result to a file")
	root.PersistentFlags().BoolVar(&a.dev, "dev", false, "Target a local dev server")
	root.PersistentFlags().IntVar(&a.port, "port", 0, "Dev server port (implies a localhost base URL)")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "Log requests at debug level")

	root.AddCommand(
		newEventsCmd(a),
		newRunsCmd(a),
		newCancelCmd(a),
		newVersionCmd(a),
	)
	return root
}
