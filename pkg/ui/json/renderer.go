// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/mydot/pkg/errors"
	"github.com/arthur-debert/mydot/pkg/types"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	output  io.Writer
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) (*Renderer, error) {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{
		output:  output,
		encoder: encoder,
	}, nil
}

type syncResult struct {
	types.SyncResult
	Error string `json:"error,omitempty"`
}

type syncReport struct {
	*types.SyncReport
	Results []syncResult `json:"results"`
}

// RenderResult renders any result type as JSON
func (r *Renderer) RenderResult(result interface{}) error {
	if report, ok := result.(*types.SyncReport); ok {
		return r.encoder.Encode(withErrors(report))
	}
	return r.encoder.Encode(result)
}

// withErrors carries per-file errors into the output, SyncResult.Err does
// not marshal by itself.
func withErrors(report *types.SyncReport) syncReport {
	out := syncReport{SyncReport: report, Results: make([]syncResult, 0, len(report.Results))}
	for _, res := range report.Results {
		sr := syncResult{SyncResult: res}
		if res.Err != nil {
			sr.Error = errors.Describe(res.Err)
		}
		out.Results = append(out.Results, sr)
	}
	return out
}

// RenderError renders an error as JSON, with its code and details when it
// carries them.
func (r *Renderer) RenderError(err error) error {
	errorObj := map[string]interface{}{
		"error": errors.Describe(err),
		"code":  string(errors.GetErrorCode(err)),
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		errorObj["details"] = details
	}
	return r.encoder.Encode(errorObj)
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	messageObj := map[string]string{
		"message": msg,
	}
	return r.encoder.Encode(messageObj)
}
