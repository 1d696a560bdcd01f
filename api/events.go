package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Event is a named payload received by the platform.
type Event struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	ReceivedAt string         `json:"receivedAt,omitempty"`
	Data       any            `json:"data,omitempty"`
	User       map[string]any `json:"user,omitempty"`
}

// SendOptions describes an event to submit to the ingest gateway.
type SendOptions struct {
	ID   string // dedup id; generated when empty
	Name string
	Data any
	User map[string]any
}

// SendResult is the gateway's acknowledgement of an ingested event.
type SendResult struct {
	IDs    []string `json:"ids"`
	Status int      `json:"status,omitempty"`
}

// ListEventsOptions filters the event listing.
type ListEventsOptions struct {
	Name  string
	Limit int
}

// SendEvent submits one event through the unauthenticated ingest gateway;
// the event credential is carried in the URL path.
func (c *Client) SendEvent(opts SendOptions) (*SendResult, error) {
	key, err := c.resolveEventKey()
	if err != nil {
		return nil, err
	}

	if opts.ID == "" {
		// Client-side dedup id: a retried invocation cannot double-ingest.
		opts.ID = uuid.NewString()
	}

	payload := map[string]any{
		"id":   opts.ID,
		"name": opts.Name,
		"data": opts.Data,
		"ts":   time.Now().UnixMilli(),
	}
	if opts.User != nil {
		payload["user"] = opts.User
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.IngestBase+"/e/"+url.PathEscape(key), bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var res SendResult
	if err := c.send(req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetEvent fetches a single event by id.
func (c *Client) GetEvent(id string) (*Event, error) {
	var env envelope
	if err := c.call(http.MethodGet, "/v1/events/"+url.PathEscape(id), nil, nil, &env); err != nil {
		return nil, err
	}
	m, err := env.object()
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, &NotFoundError{Kind: "event", ID: id}
	}
	return eventFromWire(m), nil
}

// ListEvents fetches recent events, newest first.
func (c *Client) ListEvents(opts ListEventsOptions) ([]Event, error) {
	q := url.Values{}
	if opts.Name != "" {
		q.Set("name", opts.Name)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}

	var env envelope
	if err := c.call(http.MethodGet, "/v1/events", q, nil, &env); err != nil {
		return nil, err
	}
	l, err := env.list()
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(l))
	for _, m := range l {
		events = append(events, *eventFromWire(m))
	}
	return events, nil
}

func eventFromWire(m map[string]any) *Event {
	return &Event{
		ID:         pickString(m, "internal_id", "internalId", "id"),
		Name:       pickString(m, "name"),
		ReceivedAt: pickTime(m, "received_at", "receivedAt", "ts"),
		Data:       pickAny(m, "data"),
		User:       pickObject(m, "user"),
	}
}
