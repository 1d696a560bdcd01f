package api

import (
	"net/http"
	"net/url"
)

// Run is one execution of a function.
type Run struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	FunctionID      string `json:"functionId,omitempty"`
	FunctionVersion int    `json:"functionVersion,omitempty"`
	EventID         string `json:"eventId,omitempty"`
	StartedAt       string `json:"startedAt,omitempty"`
	EndedAt         string `json:"endedAt,omitempty"`
	Output          any    `json:"output,omitempty"`
}

// Job is one step of work within a run.
type Job struct {
	ID        string `json:"id"`
	StepID    string `json:"stepId,omitempty"`
	Status    string `json:"status"`
	StartedAt string `json:"startedAt,omitempty"`
	EndedAt   string `json:"endedAt,omitempty"`
	Output    any    `json:"output,omitempty"`
	Error     string `json:"error,omitempty"`
}

// GetRun fetches a single run by id.
func (c *Client) GetRun(id string) (*Run, error) {
	var env envelope
	if err := c.call(http.MethodGet, "/v1/runs/"+url.PathEscape(id), nil, nil, &env); err != nil {
		return nil, err
	}
	m, err := env.object()
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, &NotFoundError{Kind: "run", ID: id}
	}
	return runFromWire(m), nil
}

// ListEventRuns fetches the runs triggered by an event.
func (c *Client) ListEventRuns(eventID string) ([]Run, error) {
	var env envelope
	if err := c.call(http.MethodGet, "/v1/events/"+url.PathEscape(eventID)+"/runs", nil, nil, &env); err != nil {
		return nil, err
	}
	l, err := env.list()
	if err != nil {
		return nil, err
	}

	runs := make([]Run, 0, len(l))
	for _, m := range l {
		runs = append(runs, *runFromWire(m))
	}
	return runs, nil
}

// ListRunJobs fetches the jobs of a run in execution order.
func (c *Client) ListRunJobs(runID string) ([]Job, error) {
	var env envelope
	if err := c.call(http.MethodGet, "/v1/runs/"+url.PathEscape(runID)+"/jobs", nil, nil, &env); err != nil {
		return nil, err
	}
	l, err := env.list()
	if err != nil {
		return nil, err
	}

	jobs := make([]Job, 0, len(l))
	for _, m := range l {
		jobs = append(jobs, *jobFromWire(m))
	}
	return jobs, nil
}

func runFromWire(m map[string]any) *Run {
	return &Run{
		ID:              pickString(m, "run_id", "runId", "id"),
		Status:          pickString(m, "status"),
		FunctionID:      pickString(m, "function_id", "functionId"),
		FunctionVersion: pickInt(m, "function_version", "functionVersion"),
		EventID:         pickString(m, "event_id", "eventId"),
		StartedAt:       pickTime(m, "run_started_at", "started_at", "startedAt"),
		EndedAt:         pickTime(m, "ended_at", "endedAt"),
		Output:          pickAny(m, "output"),
	}
}

func jobFromWire(m map[string]any) *Job {
	j := &Job{
		ID:        pickString(m, "job_id", "jobId", "id"),
		StepID:    pickString(m, "step_id", "stepId"),
		Status:    pickString(m, "status"),
		StartedAt: pickTime(m, "started_at", "startedAt"),
		EndedAt:   pickTime(m, "ended_at", "endedAt"),
		Output:    pickAny(m, "output"),
	}
	// Errors arrive as a bare string or as an object with a message.
	switch v := pickAny(m, "error").(type) {
	case string:
		j.Error = v
	case map[string]any:
		j.Error = pickString(v, "message", "error")
	}
	return j
}
