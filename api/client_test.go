package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func clearKeys(t *testing.T) {
	t.Helper()
	t.Setenv(EnvEventKey, "")
	t.Setenv(EnvSigningKey, "")
	t.Setenv(EnvDevServerURL, "")
}

func TestNewProductionBases(t *testing.T) {
	clearKeys(t)

	c := New(Options{})
	if c.APIBase != "https://api.pulse.dev" {
		t.Errorf("APIBase = %q", c.APIBase)
	}
	if c.IngestBase != "https://events.pulse.dev" {
		t.Errorf("IngestBase = %q", c.IngestBase)
	}
}

func TestNewDevBaseResolution(t *testing.T) {
	clearKeys(t)

	// Default port.
	c := New(Options{Dev: true})
	if c.APIBase != "http://localhost:8788" {
		t.Errorf("default dev APIBase = %q", c.APIBase)
	}

	// Explicit port beats the default.
	c = New(Options{Dev: true, Port: 9123})
	if c.APIBase != "http://localhost:9123" {
		t.Errorf("port dev APIBase = %q", c.APIBase)
	}

	// Env override beats the port.
	t.Setenv(EnvDevServerURL, "http://devbox:8000")
	c = New(Options{Dev: true, Port: 9123})
	if c.APIBase != "http://devbox:8000" {
		t.Errorf("env dev APIBase = %q", c.APIBase)
	}
	if c.IngestBase != "http://devbox:8000" {
		t.Errorf("env dev IngestBase = %q", c.IngestBase)
	}
}

func TestMissingSigningKey(t *testing.T) {
	clearKeys(t)

	c := New(Options{})
	_, err := c.GetRun("r1")
	if err == nil {
		t.Fatal("expected error for missing signing key")
	}

	var mk *MissingKeyError
	if !errors.As(err, &mk) {
		t.Fatalf("error = %T, want *MissingKeyError", err)
	}
	if !strings.Contains(err.Error(), EnvSigningKey) {
		t.Errorf("error = %q, want mention of %s", err, EnvSigningKey)
	}
}

func TestBearerHeader(t *testing.T) {
	clearKeys(t)
	t.Setenv(EnvSigningKey, "sk-test")

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":{"run_id":"r1","status":"Completed"}}`))
	}))
	defer srv.Close()

	c := New(Options{})
	c.APIBase = srv.URL

	if _, err := c.GetRun("r1"); err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q, want Bearer sk-test", gotAuth)
	}
}

func TestHTTPErrorWithJSONBody(t *testing.T) {
	clearKeys(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"malformed run id"}`))
	}))
	defer srv.Close()

	c := New(Options{Dev: true})
	c.APIBase = srv.URL

	_, err := c.GetRun("r1")
	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("error = %T, want *HTTPError", err)
	}
	if he.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d", he.StatusCode)
	}
	if he.Message != "malformed run id" {
		t.Errorf("Message = %q, want server error field", he.Message)
	}
}

func TestHTTPErrorWithRawBody(t *testing.T) {
	clearKeys(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream exploded\n"))
	}))
	defer srv.Close()

	c := New(Options{Dev: true})
	c.APIBase = srv.URL

	_, err := c.GetRun("r1")
	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("error = %T, want *HTTPError", err)
	}
	if he.Message != "upstream exploded" {
		t.Errorf("Message = %q, want raw body text", he.Message)
	}
}
