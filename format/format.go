package format

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"pulse/api"
	"pulse/style"
)

// Formatter writes results as compact JSON, ANSI text or a JSON file.
// An output path takes precedence over pretty mode.
type Formatter struct {
	Pretty     bool
	OutputPath string
	Out        io.Writer
	Err        io.Writer
}

func New(pretty bool, outputPath string) *Formatter {
	return &Formatter{
		Pretty:     pretty,
		OutputPath: outputPath,
		Out:        os.Stdout,
		Err:        os.Stderr,
	}
}

// Write renders one result to the selected sink.
func (f *Formatter) Write(v any) error {
	if f.OutputPath != "" {
		return f.writeFile(v)
	}
	if f.Pretty {
		return f.pretty(v)
	}
	return json.NewEncoder(f.Out).Encode(v)
}

// Error reports a failure: a colorized one-liner in pretty mode, a JSON
// {"error": ...} object otherwise. Always goes to stderr.
func (f *Formatter) Error(err error) {
	if f.Pretty {
		fmt.Fprintln(f.Err, style.Bad.Render("✗ "+err.Error()))
		return
	}
	json.NewEncoder(f.Err).Encode(map[string]string{"error": err.Error()})
}

func (f *Formatter) writeFile(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	if err := os.WriteFile(f.OutputPath, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.OutputPath, err)
	}
	return nil
}

func (f *Formatter) pretty(v any) error {
	now := time.Now()

	var s string
	switch r := v.(type) {
	case *api.Event:
		s = renderEvent(r)
	case []api.Event:
		s = renderEventTable(r)
	case *api.Run:
		s = renderRun(r, now)
	case []api.Run:
		s = renderRunTable(r, now)
	case []api.Job:
		s = renderJobTable(r, now)
	case *api.SendResult:
		s = renderSend(r)
	case *api.CancelResult:
		s = renderCancel(r)
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		s = string(b)
	}

	_, err := fmt.Fprintln(f.Out, s)
	return err
}
