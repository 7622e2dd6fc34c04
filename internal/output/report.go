package output

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/crimson-sun/funnelscope/internal/engine"
	"github.com/crimson-sun/funnelscope/internal/engine/aggregate"
	"github.com/crimson-sun/funnelscope/internal/engine/segment"
	"github.com/crimson-sun/funnelscope/internal/model"
)

// Rate is a fraction that marshals NaN (an undefined metric over an empty
// segment) as JSON null instead of failing the encoder.
type Rate float64

// MarshalJSON implements json.Marshaler.
func (r Rate) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(r)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(r))
}

// Metrics are the executive point metrics in report form.
type Metrics struct {
	MobileCartDropRate  Rate `json:"mobile_cart_drop_rate"`
	DesktopCartDropRate Rate `json:"desktop_cart_drop_rate"`
	LateNightConversion Rate `json:"late_night_conversion"`
	DaytimeConversion   Rate `json:"daytime_conversion"`
}

// Report is the user-facing summary of one analysis run.
type Report struct {
	RunID          string                          `json:"run_id"`
	GeneratedAt    time.Time                       `json:"generated_at"`
	Events         int                             `json:"events"`
	Users          int                             `json:"users"`
	Stages         aggregate.Counts                `json:"stages"`
	ConversionRate Rate                            `json:"conversion_rate"`
	Distributions  []segment.DimensionDistribution `json:"distributions"`
	Metrics        Metrics                         `json:"metrics"`
}

// Build converts an engine result into a report.
func Build(res engine.Result, runID string) Report {
	return Report{
		RunID:          runID,
		GeneratedAt:    time.Now().UTC(),
		Events:         res.Events,
		Users:          res.Users,
		Stages:         res.StageCounts,
		ConversionRate: Rate(res.ConversionRate),
		Distributions:  res.Distributions,
		Metrics: Metrics{
			MobileCartDropRate:  Rate(res.Metrics.MobileCartDropRate),
			DesktopCartDropRate: Rate(res.Metrics.DesktopCartDropRate),
			LateNightConversion: Rate(res.Metrics.LateNightConversion),
			DaytimeConversion:   Rate(res.Metrics.DaytimeConversion),
		},
	}
}

// RenderText writes the human-readable report: the funnel summary, one
// drop-stage table per dimension, and the executive metrics.
func (r Report) RenderText(w io.Writer) error {
	fmt.Fprintf(w, "Loaded %d events across %d users\n\n", r.Events, r.Users)

	fmt.Fprintln(w, "--- FUNNEL SUMMARY ---")
	fmt.Fprintf(w, "signup    %d\n", r.Stages.Signup)
	fmt.Fprintf(w, "view      %d\n", r.Stages.View)
	fmt.Fprintf(w, "cart      %d\n", r.Stages.Cart)
	fmt.Fprintf(w, "checkout  %d\n", r.Stages.Checkout)
	fmt.Fprintf(w, "\nCheckout conversion: %s\n", formatRate(float64(r.ConversionRate)))

	for _, dist := range r.Distributions {
		title := strings.ToUpper(strings.ReplaceAll(dist.Dimension, "_", " "))
		fmt.Fprintf(w, "\n--- DROP-OFF BY %s ---\n", title)

		table := tablewriter.NewWriter(w)
		header := []string{dist.Dimension}
		for _, stage := range model.DropStages() {
			header = append(header, string(stage))
		}
		table.SetHeader(header)
		for _, row := range dist.Rows {
			cells := []string{row.Value}
			for _, stage := range model.DropStages() {
				cells = append(cells, fmt.Sprintf("%.4f", row.Shares[stage]))
			}
			table.Append(cells)
		}
		table.Render()
	}

	fmt.Fprintln(w, "\n--- EXECUTIVE INSIGHTS ---")
	fmt.Fprintf(w, "Mobile add-to-cart drop-off: %s\n", formatRate(float64(r.Metrics.MobileCartDropRate)))
	fmt.Fprintf(w, "Desktop add-to-cart drop-off: %s\n", formatRate(float64(r.Metrics.DesktopCartDropRate)))
	fmt.Fprintf(w, "Late-night conversion: %s\n", formatRate(float64(r.Metrics.LateNightConversion)))
	fmt.Fprintf(w, "Daytime conversion: %s\n", formatRate(float64(r.Metrics.DaytimeConversion)))
	return nil
}

// formatRate renders a fraction as a percentage, or "n/a" for an
// undefined (empty segment) metric.
func formatRate(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", v*100)
}
