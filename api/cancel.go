package api

import "net/http"

// CancelOptions selects the runs of one function to cancel. Window bounds
// are RFC 3339 timestamps, already resolved by ResolveTimestamp.
type CancelOptions struct {
	AppID      string
	FunctionID string
	After      string // inclusive lower bound on run start
	Before     string // exclusive upper bound on run start
	If         string // optional filter expression
}

// CancelResult reports how many runs a bulk cancellation affected.
type CancelResult struct {
	CancelledCount int `json:"cancelledCount"`
}

// CancelRuns issues a bulk cancellation for runs of a function.
func (c *Client) CancelRuns(opts CancelOptions) (*CancelResult, error) {
	body := map[string]any{
		"app_id":      opts.AppID,
		"function_id": opts.FunctionID,
	}
	if opts.After != "" {
		body["started_after"] = opts.After
	}
	if opts.Before != "" {
		body["started_before"] = opts.Before
	}
	if opts.If != "" {
		body["if"] = opts.If
	}

	var raw map[string]any
	if err := c.call(http.MethodPost, "/v1/cancellations", nil, body, &raw); err != nil {
		return nil, err
	}
	return &CancelResult{
		CancelledCount: pickInt(raw, "cancelled_count", "cancelledCount", "count"),
	}, nil
}
