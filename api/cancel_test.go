package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCancelRuns(t *testing.T) {
	clearKeys(t)

	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/cancellations" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		b, _ := io.ReadAll(r.Body)
		json.Unmarshal(b, &gotBody)
		w.Write([]byte(`{"cancelled_count":4}`))
	}))
	defer srv.Close()

	c := New(Options{Dev: true})
	c.APIBase = srv.URL

	res, err := c.CancelRuns(CancelOptions{
		AppID:      "billing",
		FunctionID: "fn-invoice",
		After:      "2026-03-01T00:00:00Z",
		Before:     "2026-03-02T00:00:00Z",
		If:         `event.data.plan == "pro"`,
	})
	if err != nil {
		t.Fatalf("CancelRuns: %v", err)
	}

	if res.CancelledCount != 4 {
		t.Errorf("CancelledCount = %d", res.CancelledCount)
	}

	// Request body goes out snake_case.
	if gotBody["app_id"] != "billing" || gotBody["function_id"] != "fn-invoice" {
		t.Errorf("body = %v", gotBody)
	}
	if gotBody["started_after"] != "2026-03-01T00:00:00Z" {
		t.Errorf("started_after = %v", gotBody["started_after"])
	}
	if gotBody["started_before"] != "2026-03-02T00:00:00Z" {
		t.Errorf("started_before = %v", gotBody["started_before"])
	}
	if gotBody["if"] != `event.data.plan == "pro"` {
		t.Errorf("if = %v", gotBody["if"])
	}
}

func TestCancelRunsOmitsEmptyWindow(t *testing.T) {
	clearKeys(t)

	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		json.Unmarshal(b, &gotBody)
		w.Write([]byte(`{"cancelledCount":0}`))
	}))
	defer srv.Close()

	c := New(Options{Dev: true})
	c.APIBase = srv.URL

	res, err := c.CancelRuns(CancelOptions{AppID: "billing", FunctionID: "fn-invoice"})
	if err != nil {
		t.Fatalf("CancelRuns: %v", err)
	}
	if res.CancelledCount != 0 {
		t.Errorf("CancelledCount = %d", res.CancelledCount)
	}

	for _, k := range []string{"started_after", "started_before", "if"} {
		if _, ok := gotBody[k]; ok {
			t.Errorf("body unexpectedly contains %q", k)
		}
	}
}
