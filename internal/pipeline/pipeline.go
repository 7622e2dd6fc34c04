package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/crimson-sun/funnelscope/internal/engine"
	"github.com/crimson-sun/funnelscope/internal/output"
	"github.com/crimson-sun/funnelscope/internal/store"
)

// Pipeline connects the event log store, the reduction engine, and a
// report output into one batch analysis.
type Pipeline struct {
	store  *store.EventLog
	engine *engine.Engine
	output output.Output
}

// New creates a Pipeline from the given components.
func New(eventLog *store.EventLog, eng *engine.Engine, out output.Output) *Pipeline {
	return &Pipeline{
		store:  eventLog,
		engine: eng,
		output: out,
	}
}

// Run executes one analysis: read the event log, reduce it, and write the
// report. Each run is tagged with a fresh run ID in the logs and report.
func (p *Pipeline) Run(ctx context.Context) error {
	runID := uuid.NewString()
	logCtx := log.WithFields(log.Fields{"run_id": runID, "path": p.store.Path()})

	events, err := p.store.Read()
	if err != nil {
		return errors.Wrap(err, "pipeline read")
	}
	logCtx.WithField("events", len(events)).Info("loaded event log")

	result, err := p.engine.Analyze(events)
	if err != nil {
		return errors.Wrap(err, "pipeline analyze")
	}

	report := output.Build(result, runID)
	if err := p.output.Write(ctx, report); err != nil {
		return errors.Wrap(err, "pipeline output")
	}

	logCtx.WithFields(log.Fields{
		"users":    result.Users,
		"checkout": result.StageCounts.Checkout,
	}).Info("analysis complete")
	return nil
}

// Close shuts down the output.
func (p *Pipeline) Close() error {
	return p.output.Close()
}
