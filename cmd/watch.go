package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"pulse/api"
	"pulse/format"
	"pulse/style"
)

const pollInterval = 2 * time.Second

func newRunsWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <run-id>",
		Short: "Watch a run until it reaches a terminal status",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("Run ID is required")
			}

			m := newWatchModel(a.client, args[0])
			final, err := tea.NewProgram(m).Run()
			if err != nil {
				return err
			}

			wm := final.(watchModel)
			if wm.err != nil {
				return wm.err
			}
			if wm.run != nil && isFailed(wm.run.Status) {
				return fmt.Errorf("run %s failed", wm.run.ID)
			}
			return nil
		},
	}
}

func isTerminal(status string) bool {
	switch strings.ToLower(status) {
	case "completed", "succeeded", "failed", "errored", "cancelled", "canceled":
		return true
	}
	return false
}

func isFailed(status string) bool {
	switch strings.ToLower(status) {
	case "failed", "errored":
		return true
	}
	return false
}

// --- Messages ---

type runUpdate struct{ run *api.Run }
type pollTick struct{}
type watchError struct{ err error }

// --- Model ---

type watchModel struct {
	runID   string
	client  *api.Client
	spinner spinner.Model
	run     *api.Run
	err     error
	start   time.Time
}

func newWatchModel(client *api.Client, runID string) watchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(style.Primary)

	return watchModel{
		runID:   runID,
		client:  client,
		spinner: s,
		start:   time.Now(),
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, pollRun(m.client, m.runID))
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case runUpdate:
		m.run = msg.run
		if isTerminal(m.run.Status) {
			return m, tea.Quit
		}
		return m, tea.Tick(pollInterval, func(time.Time) tea.Msg { return pollTick{} })

	case pollTick:
		return m, pollRun(m.client, m.runID)

	case watchError:
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(style.Banner.Render("⚡ WATCH"))
	b.WriteString("\n")

	b.WriteString(style.Key.Render("Run"))
	b.WriteString(style.Bold.Render(m.runID))
	b.WriteString("\n")

	if m.run != nil {
		if m.run.FunctionID != "" {
			b.WriteString(style.Key.Render("Function"))
			b.WriteString(style.Val.Render(m.run.FunctionID))
			b.WriteString("\n")
		}
		b.WriteString(style.Key.Render("Status"))
		b.WriteString(format.StatusBadge(m.run.Status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	elapsed := time.Since(m.start).Round(time.Second)

	switch {
	case m.err != nil:
		b.WriteString(style.ErrorBox.Render("✗ " + m.err.Error()))
	case m.run == nil:
		b.WriteString(m.spinner.View() + style.DimText.Render(" Fetching run..."))
	case !isTerminal(m.run.Status):
		b.WriteString(m.spinner.View() + style.DimText.Render(fmt.Sprintf(" Waiting... (%s)", elapsed)))
	case isFailed(m.run.Status):
		b.WriteString(style.ErrorBox.Render(fmt.Sprintf("✗ Run failed after %s", format.Elapsed(m.run.StartedAt, m.run.EndedAt, time.Now()))))
	default:
		b.WriteString(style.SuccessBox.Render(fmt.Sprintf("✓ Run %s in %s", strings.ToLower(m.run.Status), format.Elapsed(m.run.StartedAt, m.run.EndedAt, time.Now()))))
	}

	b.WriteString("\n")
	return b.String()
}

// --- Commands ---

func pollRun(client *api.Client, runID string) tea.Cmd {
	return func() tea.Msg {
		run, err := client.GetRun(runID)
		if err != nil {
			return watchError{err: err}
		}
		return runUpdate{run: run}
	}
}
