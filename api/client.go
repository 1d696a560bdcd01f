package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultAPIBase    = "https://api.pulse.dev"
	defaultIngestBase = "https://events.pulse.dev"
	defaultDevPort    = 8788

	// EnvEventKey holds the ingest credential embedded in the /e/<key> path.
	EnvEventKey = "PULSE_EVENT_KEY"
	// EnvSigningKey holds the query credential sent as a bearer token.
	EnvSigningKey = "PULSE_SIGNING_KEY"
	// EnvDevServerURL overrides the dev-mode base URL.
	EnvDevServerURL = "PULSE_DEV_SERVER_URL"
)

// Options selects which deployment of the platform the client talks to.
type Options struct {
	Dev  bool
	Port int
}

// Client is a stateless HTTP client for the platform API. Credentials are
// read from the environment at construction and validated only when a
// request actually needs them.
type Client struct {
	APIBase    string
	IngestBase string
	Dev        bool

	signingKey string
	eventKey   string

	HTTPClient *http.Client
}

func New(opts Options) *Client {
	apiBase, ingestBase := defaultAPIBase, defaultIngestBase
	if opts.Dev {
		// Dev server carries both the query API and the ingest gateway.
		base := devBase(opts.Port)
		apiBase, ingestBase = base, base
	}
	return &Client{
		APIBase:    strings.TrimRight(apiBase, "/"),
		IngestBase: strings.TrimRight(ingestBase, "/"),
		Dev:        opts.Dev,
		signingKey: os.Getenv(EnvSigningKey),
		eventKey:   os.Getenv(EnvEventKey),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func devBase(port int) string {
	if v := os.Getenv(EnvDevServerURL); v != "" {
		return v
	}
	if port > 0 {
		return fmt.Sprintf("http://localhost:%d", port)
	}
	return fmt.Sprintf("http://localhost:%d", defaultDevPort)
}

func (c *Client) resolveEventKey() (string, error) {
	if c.eventKey != "" {
		return c.eventKey, nil
	}
	if c.Dev {
		// The dev server accepts any key.
		return "dev", nil
	}
	return "", &MissingKeyError{Env: EnvEventKey}
}

// call performs one authenticated request against the query API. Single-shot
// semantics: no retries, no backoff.
func (c *Client) call(method, path string, query url.Values, body, out any) error {
	if !c.Dev && c.signingKey == "" {
		return &MissingKeyError{Env: EnvSigningKey}
	}

	u := c.APIBase + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, u, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.signingKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.signingKey)
	}

	return c.send(req, out)
}

// send executes a prepared request and decodes the response into out.
func (c *Client) send(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	logrus.WithFields(logrus.Fields{
		"method":   req.Method,
		"url":      req.URL.String(),
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("api request")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// errorMessage extracts the server's {"error": "..."} message, falling back
// to the raw body text.
func errorMessage(raw []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(raw))
}
