// Package funnel is the public facade over the clickstream generator and
// the funnel reduction engine, for embedding in other programs without
// touching internal packages.
package funnel

import (
	"time"

	"github.com/crimson-sun/funnelscope/internal/engine"
	"github.com/crimson-sun/funnelscope/internal/engine/segment"
	"github.com/crimson-sun/funnelscope/internal/generator"
	"github.com/crimson-sun/funnelscope/internal/model"
)

// Event is one clickstream row.
type Event struct {
	UserID    int
	SessionID string
	Timestamp time.Time
	Name      string // signup, product_view, add_to_cart, checkout
	Device    string // mobile or desktop
	City      string
}

// Metrics are the executive point metrics. Empty segments yield NaN.
type Metrics struct {
	MobileCartDropRate  float64
	DesktopCartDropRate float64
	LateNightConversion float64
	DaytimeConversion   float64
}

// Summary is the outcome of analyzing a clickstream.
type Summary struct {
	Events         int
	Users          int
	Signup         int
	View           int
	Cart           int
	Checkout       int
	ConversionRate float64
	Metrics        Metrics
}

// Generate synthesizes a clickstream for the given population. The same
// users/seed/start always reproduce the same events.
func Generate(users int, seed int64, start time.Time) []Event {
	gen := generator.New(generator.Config{Users: users, Seed: seed, Start: start})
	internal := gen.Generate()
	events := make([]Event, len(internal))
	for i, e := range internal {
		events[i] = Event{
			UserID:    e.UserID,
			SessionID: e.SessionID,
			Timestamp: e.Timestamp,
			Name:      string(e.Name),
			Device:    string(e.Device),
			City:      e.City,
		}
	}
	return events
}

// Analyze reduces a clickstream into a funnel summary. It fails on an
// event name outside the four funnel stages.
func Analyze(events []Event) (Summary, error) {
	internal := make([]model.Event, len(events))
	for i, e := range events {
		internal[i] = model.Event{
			UserID:    e.UserID,
			SessionID: e.SessionID,
			Timestamp: e.Timestamp,
			Name:      model.EventName(e.Name),
			Device:    model.Device(e.Device),
			City:      e.City,
		}
	}

	eng := engine.New(segment.NewAnalyzer())
	res, err := eng.Analyze(internal)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Events:         res.Events,
		Users:          res.Users,
		Signup:         res.StageCounts.Signup,
		View:           res.StageCounts.View,
		Cart:           res.StageCounts.Cart,
		Checkout:       res.StageCounts.Checkout,
		ConversionRate: res.ConversionRate,
		Metrics: Metrics{
			MobileCartDropRate:  res.Metrics.MobileCartDropRate,
			DesktopCartDropRate: res.Metrics.DesktopCartDropRate,
			LateNightConversion: res.Metrics.LateNightConversion,
			DaytimeConversion:   res.Metrics.DaytimeConversion,
		},
	}, nil
}
