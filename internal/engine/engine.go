package engine

import (
	"math"

	"github.com/crimson-sun/funnelscope/internal/engine/aggregate"
	"github.com/crimson-sun/funnelscope/internal/engine/classify"
	"github.com/crimson-sun/funnelscope/internal/engine/segment"
	"github.com/crimson-sun/funnelscope/internal/model"
)

// Result is the structured outcome of one analysis run. Formatting and
// printing are a separate concern; the engine only computes.
type Result struct {
	Events         int
	Users          int
	StageCounts    aggregate.Counts
	ConversionRate float64 // checkout users / signup users, NaN when no signups
	Records        []model.FunnelRecord
	Distributions  []segment.DimensionDistribution
	Metrics        segment.Metrics
}

// Engine orchestrates the aggregate → classify → join → analyze reduction.
type Engine struct {
	analyzer *segment.Analyzer
}

// New creates an Engine using the provided analyzer.
func New(analyzer *segment.Analyzer) *Engine {
	return &Engine{analyzer: analyzer}
}

// Analyze reduces an unordered event log into per-user funnel records and
// segment metrics. Aggregation or join failures abort the whole run; no
// partial results are returned for malformed input.
func (e *Engine) Analyze(events []model.Event) (Result, error) {
	states, err := aggregate.Aggregate(events)
	if err != nil {
		return Result{}, err
	}

	records, err := segment.Join(states, events)
	if err != nil {
		return Result{}, err
	}
	for i := range records {
		records[i].Drop = classify.DropStage(records[i].State)
	}

	counts := aggregate.Count(states)
	conversion := math.NaN()
	if counts.Signup > 0 {
		conversion = float64(counts.Checkout) / float64(counts.Signup)
	}

	return Result{
		Events:         len(events),
		Users:          len(states),
		StageCounts:    counts,
		ConversionRate: conversion,
		Records:        records,
		Distributions:  e.analyzer.Distributions(records),
		Metrics:        e.analyzer.ExecutiveMetrics(records),
	}, nil
}
