package output

import "context"

// Output defines the interface for finished report destinations.
type Output interface {
	Write(ctx context.Context, report Report) error
	Close() error
}
