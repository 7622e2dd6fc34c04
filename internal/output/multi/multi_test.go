package multi

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/funnelscope/internal/output"
)

type recording struct {
	reports  []output.Report
	writeErr error
	closed   bool
}

func (r *recording) Write(_ context.Context, report output.Report) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	r.reports = append(r.reports, report)
	return nil
}

func (r *recording) Close() error {
	r.closed = true
	return nil
}

func TestWriteFansOut(t *testing.T) {
	a, b := &recording{}, &recording{}
	m := New(a, b)

	require.NoError(t, m.Write(context.Background(), output.Report{RunID: "run-1"}))
	require.Len(t, a.reports, 1)
	require.Len(t, b.reports, 1)
	assert.Equal(t, "run-1", b.reports[0].RunID)
}

func TestWriteContinuesPastFailure(t *testing.T) {
	failing := &recording{writeErr: errors.New("disk full")}
	healthy := &recording{}
	m := New(failing, healthy)

	err := m.Write(context.Background(), output.Report{RunID: "run-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Len(t, healthy.reports, 1, "later destinations still receive the report")
}

func TestCloseClosesAll(t *testing.T) {
	a, b := &recording{}, &recording{}
	m := New(a, b)

	require.NoError(t, m.Close())
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}
