package segment

import (
	"math"
	"sort"
	"strconv"

	"github.com/crimson-sun/funnelscope/internal/model"
)

// Dimension is a named record attribute used to partition records for
// conditional analysis.
type Dimension struct {
	Name string
	Key  func(model.FunnelRecord) string
}

// Dimensions returns the default segmentation dimensions: device,
// late-night flag and city.
func Dimensions() []Dimension {
	return []Dimension{
		{Name: "device", Key: func(r model.FunnelRecord) string { return string(r.Device) }},
		{Name: "is_late_night", Key: func(r model.FunnelRecord) string { return strconv.FormatBool(r.LateNight) }},
		{Name: "city", Key: func(r model.FunnelRecord) string { return r.City }},
	}
}

// Distribution is the normalized share of each drop stage within one
// dimension value. Shares sum to 1.0 for any value with at least one
// record, since counts are divided by the value's row total.
type Distribution map[model.DropStage]float64

// ValueDistribution is one dimension value's drop-stage distribution.
type ValueDistribution struct {
	Value  string       `json:"value"`
	Total  int          `json:"total"`
	Shares Distribution `json:"shares"`
}

// DimensionDistribution holds the distributions of every observed value
// of one dimension, sorted by value for deterministic output.
type DimensionDistribution struct {
	Dimension string              `json:"dimension"`
	Rows      []ValueDistribution `json:"rows"`
}

// Metrics are the named executive point metrics. Each is the fraction of
// a segment's records carrying the named drop stage; an empty segment
// yields NaN rather than failing the rest of the analysis.
type Metrics struct {
	MobileCartDropRate  float64 `json:"mobile_cart_drop_rate"`
	DesktopCartDropRate float64 `json:"desktop_cart_drop_rate"`
	LateNightConversion float64 `json:"late_night_conversion"`
	DaytimeConversion   float64 `json:"daytime_conversion"`
}

// Analyzer computes segment-conditional drop-stage distributions and the
// executive metrics over a finished set of funnel records. Pure: running
// it twice on the same records yields identical output.
type Analyzer struct {
	dims []Dimension
}

// NewAnalyzer creates an Analyzer for the given dimensions, defaulting to
// Dimensions() when none are passed.
func NewAnalyzer(dims ...Dimension) *Analyzer {
	if len(dims) == 0 {
		dims = Dimensions()
	}
	return &Analyzer{dims: dims}
}

// Distributions computes, per dimension, the conditional distribution of
// drop stages among records sharing each dimension value.
func (a *Analyzer) Distributions(records []model.FunnelRecord) []DimensionDistribution {
	out := make([]DimensionDistribution, 0, len(a.dims))
	for _, dim := range a.dims {
		counts := make(map[string]map[model.DropStage]int)
		totals := make(map[string]int)
		for _, r := range records {
			v := dim.Key(r)
			if counts[v] == nil {
				counts[v] = make(map[model.DropStage]int)
			}
			counts[v][r.Drop]++
			totals[v]++
		}

		rows := make([]ValueDistribution, 0, len(counts))
		for v, stageCounts := range counts {
			shares := make(Distribution, len(stageCounts))
			for stage, n := range stageCounts {
				shares[stage] = float64(n) / float64(totals[v])
			}
			rows = append(rows, ValueDistribution{Value: v, Total: totals[v], Shares: shares})
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].Value < rows[j].Value })

		out = append(out, DimensionDistribution{Dimension: dim.Name, Rows: rows})
	}
	return out
}

// ExecutiveMetrics computes the four named point metrics.
func (a *Analyzer) ExecutiveMetrics(records []model.FunnelRecord) Metrics {
	mobile := func(r model.FunnelRecord) bool { return r.Device == model.DeviceMobile }
	desktop := func(r model.FunnelRecord) bool { return r.Device == model.DeviceDesktop }
	lateNight := func(r model.FunnelRecord) bool { return r.LateNight }
	daytime := func(r model.FunnelRecord) bool { return !r.LateNight }

	return Metrics{
		MobileCartDropRate:  rate(records, mobile, model.DropAddToCart),
		DesktopCartDropRate: rate(records, desktop, model.DropAddToCart),
		LateNightConversion: rate(records, lateNight, model.DropCompleted),
		DaytimeConversion:   rate(records, daytime, model.DropCompleted),
	}
}

// rate is (# records in the segment with the named drop stage) / (# records
// in the segment), NaN when the segment is empty.
func rate(records []model.FunnelRecord, in func(model.FunnelRecord) bool, stage model.DropStage) float64 {
	total, hits := 0, 0
	for _, r := range records {
		if !in(r) {
			continue
		}
		total++
		if r.Drop == stage {
			hits++
		}
	}
	if total == 0 {
		return math.NaN()
	}
	return float64(hits) / float64(total)
}
