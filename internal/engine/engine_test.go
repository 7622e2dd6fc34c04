package engine

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/funnelscope/internal/engine/segment"
	"github.com/crimson-sun/funnelscope/internal/generator"
	"github.com/crimson-sun/funnelscope/internal/model"
)

var t0 = time.Date(2024, 2, 1, 14, 0, 0, 0, time.UTC)
var t1 = time.Date(2024, 2, 3, 9, 0, 0, 0, time.UTC)

func TestAnalyzeTwoUserScenario(t *testing.T) {
	events := []model.Event{
		{UserID: 1, SessionID: "1_0", Timestamp: t0, Name: model.EventSignup, Device: model.DeviceMobile, City: model.CityDelhi},
		{UserID: 1, SessionID: "1_0", Timestamp: t0.Add(2 * time.Minute), Name: model.EventProductView, Device: model.DeviceMobile, City: model.CityDelhi},
		{UserID: 2, SessionID: "2_0", Timestamp: t1, Name: model.EventSignup, Device: model.DeviceDesktop, City: model.CityJaipur},
	}

	res, err := New(segment.NewAnalyzer()).Analyze(events)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Events)
	assert.Equal(t, 2, res.Users)
	assert.Equal(t, 2, res.StageCounts.Signup)
	assert.Equal(t, 1, res.StageCounts.View)
	assert.Equal(t, 0, res.StageCounts.Cart)
	assert.Equal(t, 0, res.StageCounts.Checkout)
	assert.InDelta(t, 0.0, res.ConversionRate, 1e-9)

	require.Len(t, res.Records, 2)
	assert.Equal(t, model.DropProductView, res.Records[0].Drop, "user 1 viewed but never carted")
	assert.Equal(t, model.DropSignup, res.Records[1].Drop, "user 2 never viewed")
}

func TestAnalyzeEmptyLog(t *testing.T) {
	res, err := New(segment.NewAnalyzer()).Analyze(nil)
	require.NoError(t, err)
	assert.Zero(t, res.Users)
	assert.Empty(t, res.Records)
	assert.True(t, math.IsNaN(res.ConversionRate), "conversion undefined with no signups")
}

func TestAnalyzeRejectsMalformedLog(t *testing.T) {
	events := []model.Event{
		{UserID: 1, SessionID: "1_0", Timestamp: t0, Name: "hover", Device: model.DeviceMobile, City: model.CityDelhi},
	}
	_, err := New(segment.NewAnalyzer()).Analyze(events)
	assert.Error(t, err)
}

func TestAnalyzeGeneratedPopulation(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	events := generator.New(generator.Config{Users: 800, Seed: 42, Start: start}).Generate()

	res, err := New(segment.NewAnalyzer()).Analyze(events)
	require.NoError(t, err)

	assert.Equal(t, 800, res.Users)
	assert.Equal(t, 800, res.StageCounts.Signup)
	assert.LessOrEqual(t, res.StageCounts.View, res.StageCounts.Signup)
	assert.LessOrEqual(t, res.StageCounts.Cart, res.StageCounts.View)
	assert.LessOrEqual(t, res.StageCounts.Checkout, res.StageCounts.Cart)

	// Every record carries a label and a consistent late-night flag.
	for _, r := range res.Records {
		assert.Contains(t, model.DropStages(), r.Drop)
		assert.Equal(t, model.IsLateNight(r.Hour), r.LateNight)
	}

	// Distribution rows normalize per dimension value.
	for _, dist := range res.Distributions {
		for _, row := range dist.Rows {
			sum := 0.0
			for _, share := range row.Shares {
				sum += share
			}
			assert.InDelta(t, 1.0, sum, 1e-9, "%s=%s", dist.Dimension, row.Value)
		}
	}
}
