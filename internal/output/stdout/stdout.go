package stdout

import (
	"context"
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/crimson-sun/funnelscope/internal/output"
)

// Output writes the report to stdout, either as the rendered text report
// or as indented JSON.
type Output struct {
	format string // "text" or "json"
}

// New creates a stdout Output with the given format.
func New(format string) *Output {
	return &Output{format: format}
}

func (o *Output) Write(_ context.Context, report output.Report) error {
	if o.format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.Wrap(err, "stdout output")
		}
		return nil
	}
	if err := report.RenderText(os.Stdout); err != nil {
		return errors.Wrap(err, "stdout output")
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}
