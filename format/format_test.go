package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pulse/api"
)

func TestStatusBadge(t *testing.T) {
	cases := []struct {
		status string
		want   string
	}{
		{"Completed", "OK"},
		{"Failed", "ERR"},
		{"Errored", "ERR"},
		{"Running", "RUN"},
		{"Queued", "RUN"},
		{"Cancelled", "CXL"},
		{"Paused", "Paused"},
	}
	for _, c := range cases {
		if got := StatusBadge(c.status); !strings.Contains(got, c.want) {
			t.Errorf("StatusBadge(%q) = %q, want %q", c.status, got, c.want)
		}
	}
}

func TestElapsedOpenInterval(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 30, 0, time.UTC)

	got := Elapsed("2026-03-01T10:00:00Z", "", now)
	if !strings.HasSuffix(got, "(running)") {
		t.Errorf("Elapsed = %q, want (running) suffix", got)
	}
	if !strings.Contains(got, "30.0s") {
		t.Errorf("Elapsed = %q, want elapsed-so-far", got)
	}
}

func TestElapsedClosedInterval(t *testing.T) {
	got := Elapsed("2026-03-01T10:00:00Z", "2026-03-01T10:00:05Z", time.Now())
	if got != "5.0s" {
		t.Errorf("Elapsed = %q", got)
	}
	if strings.Contains(got, "running") {
		t.Errorf("Elapsed = %q, closed interval must not be marked running", got)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{250 * time.Millisecond, "250ms"},
		{12300 * time.Millisecond, "12.3s"},
		{4*time.Minute + 12*time.Second, "4m12s"},
		{3*time.Hour + 5*time.Minute, "3h05m"},
		{-2 * time.Second, "0ms"},
	}
	for _, c := range cases {
		if got := formatDuration(c.d); got != c.want {
			t.Errorf("formatDuration(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}

func TestWriteCompactJSON(t *testing.T) {
	var out bytes.Buffer
	f := &Formatter{Out: &out}

	if err := f.Write(&api.Run{ID: "r1", Status: "Completed"}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got["id"] != "r1" || got["status"] != "Completed" {
		t.Errorf("output = %v", got)
	}
	if n := strings.Count(out.String(), "\n"); n != 1 {
		t.Errorf("compact output spans %d lines", n)
	}
}

func TestWriteFileTakesPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	var out bytes.Buffer
	f := &Formatter{Pretty: true, OutputPath: path, Out: &out}

	if err := f.Write(&api.Run{ID: "r1", Status: "Completed"}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if out.Len() != 0 {
		t.Errorf("stdout = %q, want nothing when writing a file", out.String())
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read result: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("file is not JSON: %v", err)
	}
	if got["id"] != "r1" {
		t.Errorf("file = %v", got)
	}
}

func TestPrettyRunMarksOpenInterval(t *testing.T) {
	start := time.Now().Add(-10 * time.Second).UTC().Format(time.RFC3339)

	var out bytes.Buffer
	f := &Formatter{Pretty: true, Out: &out}
	if err := f.Write(&api.Run{ID: "r1", Status: "Running", FunctionID: "fn", StartedAt: start}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(out.String(), "(running)") {
		t.Errorf("pretty output missing (running): %q", out.String())
	}
}

func TestPrettyCompletedRunHasNoRunningMark(t *testing.T) {
	var out bytes.Buffer
	f := &Formatter{Pretty: true, Out: &out}
	run := &api.Run{
		ID:         "r1",
		Status:     "Completed",
		FunctionID: "fn",
		StartedAt:  "2026-03-01T10:00:00Z",
		EndedAt:    "2026-03-01T10:00:05Z",
	}
	if err := f.Write(run); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if strings.Contains(out.String(), "(running)") {
		t.Errorf("completed run rendered as running: %q", out.String())
	}
}

func TestPrettyJobTableShowsErrors(t *testing.T) {
	var out bytes.Buffer
	f := &Formatter{Pretty: true, Out: &out}
	jobs := []api.Job{
		{ID: "j1", StepID: "charge", Status: "Completed"},
		{ID: "j2", StepID: "notify", Status: "Failed", Error: "smtp timeout"},
	}
	if err := f.Write(jobs); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(out.String(), "smtp timeout") {
		t.Errorf("job error missing from output: %q", out.String())
	}
}

func TestPrettyCancellationSummary(t *testing.T) {
	var out bytes.Buffer
	f := &Formatter{Pretty: true, Out: &out}
	if err := f.Write(&api.CancelResult{CancelledCount: 7}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(out.String(), "7 run(s)") {
		t.Errorf("cancellation summary = %q", out.String())
	}
}

func TestErrorJSON(t *testing.T) {
	var errOut bytes.Buffer
	f := &Formatter{Err: &errOut}

	f.Error(errors.New("boom"))

	var got map[string]string
	if err := json.Unmarshal(errOut.Bytes(), &got); err != nil {
		t.Fatalf("stderr is not JSON: %v", err)
	}
	if got["error"] != "boom" {
		t.Errorf("error object = %v", got)
	}
}

func TestErrorPretty(t *testing.T) {
	var errOut bytes.Buffer
	f := &Formatter{Pretty: true, Err: &errOut}

	f.Error(errors.New("boom"))

	if !strings.Contains(errOut.String(), "boom") {
		t.Errorf("stderr = %q", errOut.String())
	}
	if json.Valid(bytes.TrimSpace(errOut.Bytes())) {
		t.Errorf("pretty error should not be JSON: %q", errOut.String())
	}
}
