package multi

import (
	"context"

	"github.com/pkg/errors"

	"github.com/crimson-sun/funnelscope/internal/output"
)

// Output fans a report out to several destinations. Every destination is
// attempted; the first error encountered is returned.
type Output struct {
	outs []output.Output
}

// New creates a multi Output over the given destinations.
func New(outs ...output.Output) *Output {
	return &Output{outs: outs}
}

func (m *Output) Write(ctx context.Context, report output.Report) error {
	var firstErr error
	for i, out := range m.outs {
		if err := out.Write(ctx, report); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "multi output: destination %d", i)
		}
	}
	return firstErr
}

// Close closes all destinations, returning the first error.
func (m *Output) Close() error {
	var firstErr error
	for _, out := range m.outs {
		if err := out.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
