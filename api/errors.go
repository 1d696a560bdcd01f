package api

import "fmt"

// HTTPError is a non-2xx response from the platform.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// NotFoundError marks a by-id lookup whose response payload was null.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// MissingKeyError marks a credential required by the selected mode that is
// absent from the environment.
type MissingKeyError struct {
	Env string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("%s is not set (required outside dev mode)", e.Env)
}
