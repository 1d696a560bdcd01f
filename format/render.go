package format

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pulse/api"
	"pulse/style"
)

// StatusBadge maps a run/job status to a fixed badge. Unrecognized statuses
// render as-is.
func StatusBadge(status string) string {
	switch strings.ToLower(status) {
	case "completed", "succeeded", "finished":
		return style.BadgeOK.Render("OK")
	case "failed", "errored", "error":
		return style.BadgeErr.Render("ERR")
	case "running", "queued", "started":
		return style.BadgeRun.Render("RUN")
	case "cancelled", "canceled":
		return style.BadgeCxl.Render("CXL")
	}
	return status
}

// Elapsed renders the interval between two RFC 3339 timestamps. An empty end
// marks a still-open interval, shown as elapsed-so-far plus "(running)".
func Elapsed(start, end string, now time.Time) string {
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return ""
	}
	if end == "" {
		return formatDuration(now.Sub(s)) + " (running)"
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return ""
	}
	return formatDuration(e.Sub(s))
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
}

func renderEvent(e *api.Event) string {
	var b strings.Builder

	b.WriteString(style.Bold.Render(e.Name))
	b.WriteString("\n\n")

	kv := kvWriter(&b)
	kv("ID", e.ID)
	kv("Received", e.ReceivedAt)
	if e.Data != nil {
		kv("Data", compactJSON(e.Data))
	}
	if e.User != nil {
		kv("User", compactJSON(e.User))
	}

	return style.CardStyle.Render(b.String())
}

func renderEventTable(events []api.Event) string {
	if len(events) == 0 {
		return style.DimText.Render("No events found.")
	}

	var b strings.Builder
	b.WriteString(style.Banner.Render("⚡ EVENTS") + style.Subtitle.Render(fmt.Sprintf("  %d event(s)", len(events))))
	b.WriteString("\n\n")

	header := fmt.Sprintf("  %-28s %-32s %s", "ID", "NAME", "RECEIVED")
	b.WriteString(style.TableHeader.Render(header))
	b.WriteString("\n")

	for _, e := range events {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			style.Accent.Render(padRight(e.ID, 28)),
			style.Bold.Render(padRight(e.Name, 32)),
			style.DimText.Render(e.ReceivedAt),
		))
	}

	return b.String()
}

func renderRun(r *api.Run, now time.Time) string {
	var b strings.Builder

	b.WriteString(StatusBadge(r.Status))
	b.WriteString("  ")
	b.WriteString(style.Bold.Render(r.FunctionID))
	b.WriteString("\n\n")

	kv := kvWriter(&b)
	kv("Run", r.ID)
	kv("Status", r.Status)
	if r.FunctionVersion > 0 {
		kv("Version", fmt.Sprintf("v%d", r.FunctionVersion))
	}
	kv("Event", r.EventID)
	kv("Started", r.StartedAt)
	kv("Ended", r.EndedAt)
	kv("Elapsed", Elapsed(r.StartedAt, r.EndedAt, now))
	if r.Output != nil {
		kv("Output", compactJSON(r.Output))
	}

	return style.CardStyle.Render(b.String())
}

func renderRunTable(runs []api.Run, now time.Time) string {
	if len(runs) == 0 {
		return style.DimText.Render("No runs found.")
	}

	var b strings.Builder
	b.WriteString(style.Banner.Render("⚡ RUNS") + style.Subtitle.Render(fmt.Sprintf("  %d run(s)", len(runs))))
	b.WriteString("\n\n")

	header := fmt.Sprintf("  %-4s %-28s %-28s %s", "", "ID", "FUNCTION", "ELAPSED")
	b.WriteString(style.TableHeader.Render(header))
	b.WriteString("\n")

	for _, r := range runs {
		b.WriteString(fmt.Sprintf("  %s %s %s %s\n",
			padRight(StatusBadge(r.Status), 4),
			style.Accent.Render(padRight(r.ID, 28)),
			style.Bold.Render(padRight(r.FunctionID, 28)),
			style.DimText.Render(Elapsed(r.StartedAt, r.EndedAt, now)),
		))
	}

	return b.String()
}

func renderJobTable(jobs []api.Job, now time.Time) string {
	if len(jobs) == 0 {
		return style.DimText.Render("No jobs found.")
	}

	var b strings.Builder
	b.WriteString(style.Banner.Render("⚡ JOBS") + style.Subtitle.Render(fmt.Sprintf("  %d job(s)", len(jobs))))
	b.WriteString("\n\n")

	header := fmt.Sprintf("  %-4s %-28s %-24s %s", "", "ID", "STEP", "ELAPSED")
	b.WriteString(style.TableHeader.Render(header))
	b.WriteString("\n")

	for _, j := range jobs {
		b.WriteString(fmt.Sprintf("  %s %s %s %s\n",
			padRight(StatusBadge(j.Status), 4),
			style.Accent.Render(padRight(j.ID, 28)),
			style.Bold.Render(padRight(j.StepID, 24)),
			style.DimText.Render(Elapsed(j.StartedAt, j.EndedAt, now)),
		))
		if j.Error != "" {
			b.WriteString("       " + style.Bad.Render(j.Error) + "\n")
		}
	}

	return b.String()
}

func renderSend(r *api.SendResult) string {
	switch len(r.IDs) {
	case 0:
		return style.SuccessBox.Render("✓ event sent")
	case 1:
		return style.SuccessBox.Render("✓ event sent: " + r.IDs[0])
	}
	return style.SuccessBox.Render(fmt.Sprintf("✓ %d events sent: %s", len(r.IDs), strings.Join(r.IDs, ", ")))
}

func renderCancel(r *api.CancelResult) string {
	return style.SuccessBox.Render(fmt.Sprintf("✓ cancelled %d run(s)", r.CancelledCount))
}

func kvWriter(b *strings.Builder) func(k, v string) {
	return func(k, v string) {
		if v == "" {
			return
		}
		b.WriteString(style.Key.Render(k))
		b.WriteString(style.Val.Render(v))
		b.WriteString("\n")
	}
}

func compactJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
