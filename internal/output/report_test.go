package output

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/funnelscope/internal/engine"
	"github.com/crimson-sun/funnelscope/internal/engine/aggregate"
	"github.com/crimson-sun/funnelscope/internal/engine/segment"
	"github.com/crimson-sun/funnelscope/internal/model"
)

func sampleResult() engine.Result {
	return engine.Result{
		Events:         10,
		Users:          4,
		StageCounts:    aggregate.Counts{Signup: 4, View: 3, Cart: 2, Checkout: 1},
		ConversionRate: 0.25,
		Distributions: []segment.DimensionDistribution{
			{
				Dimension: "device",
				Rows: []segment.ValueDistribution{
					{Value: "desktop", Total: 1, Shares: segment.Distribution{model.DropCompleted: 1}},
					{Value: "mobile", Total: 3, Shares: segment.Distribution{model.DropSignup: 1.0 / 3, model.DropProductView: 2.0 / 3}},
				},
			},
		},
		Metrics: segment.Metrics{
			MobileCartDropRate:  0.5,
			DesktopCartDropRate: math.NaN(),
			LateNightConversion: 0.1,
			DaytimeConversion:   0.3,
		},
	}
}

func TestBuild(t *testing.T) {
	report := Build(sampleResult(), "run-1")

	assert.Equal(t, "run-1", report.RunID)
	assert.False(t, report.GeneratedAt.IsZero())
	assert.Equal(t, 10, report.Events)
	assert.Equal(t, 4, report.Users)
	assert.InDelta(t, 0.25, float64(report.ConversionRate), 1e-9)
	assert.True(t, math.IsNaN(float64(report.Metrics.DesktopCartDropRate)))
}

func TestRenderText(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Build(sampleResult(), "run-1").RenderText(&sb))
	out := sb.String()

	assert.Contains(t, out, "FUNNEL SUMMARY")
	assert.Contains(t, out, "Checkout conversion: 25.00%")
	assert.Contains(t, out, "DROP-OFF BY DEVICE")
	assert.Contains(t, out, "desktop")
	assert.Contains(t, out, "mobile")
	assert.Contains(t, out, "EXECUTIVE INSIGHTS")
	assert.Contains(t, out, "Mobile add-to-cart drop-off: 50.00%")
	assert.Contains(t, out, "Desktop add-to-cart drop-off: n/a")
}

// NaN metrics marshal as null instead of failing the JSON encoder.
func TestReportMarshalsWithNaN(t *testing.T) {
	data, err := json.Marshal(Build(sampleResult(), "run-1"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"desktop_cart_drop_rate":null`)
	assert.Contains(t, string(data), `"mobile_cart_drop_rate":0.5`)
}
